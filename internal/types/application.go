package types

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the review state of an application.
type ApplicationStatus string

// Application statuses. Every application starts out pending.
const (
	StatusPending  ApplicationStatus = "pending"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Application is a single applicant's submission against a single job.
type Application struct {
	ID          uuid.UUID         `json:"id"`
	JobID       uuid.UUID         `json:"job_id"`
	UserID      uuid.UUID         `json:"user_id"`
	CoverLetter string            `json:"cover_letter,omitempty"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ApplicationReview is an application joined with its job and applicant contact data.
type ApplicationReview struct {
	Application
	JobTitle       string `json:"job_title"`
	Company        string `json:"company"`
	ApplicantName  string `json:"name"`
	ApplicantEmail string `json:"email"`
	ApplicantPhone string `json:"phone,omitempty"`
}

// UserApplication is an application joined with the job it targets.
type UserApplication struct {
	Application
	JobTitle string `json:"job_title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	JobType  string `json:"type"`
}

// ApplyRequest is the body of an application submission.
type ApplyRequest struct {
	JobID       uuid.UUID `json:"job_id" validate:"required"`
	CoverLetter string    `json:"cover_letter,omitempty" validate:"max=10000"`
}

// Validate validates the ApplyRequest using the validator.
func (r *ApplyRequest) Validate() error {
	return validate.Struct(r)
}

// ApplyResponse is returned after an application is stored.
type ApplyResponse struct {
	Message     string       `json:"message"`
	ID          uuid.UUID    `json:"id"`
	Application *Application `json:"application"`
}

// SetStatusRequest is the body of an administrative status change.
type SetStatusRequest struct {
	Status ApplicationStatus `json:"status" validate:"required,oneof=pending accepted rejected"`
}

// Validate validates the SetStatusRequest using the validator.
func (r *SetStatusRequest) Validate() error {
	return validate.Struct(r)
}

// ApplicationEvent describes a newly stored application. It is the payload
// handed to notifiers and serialized into queued notification tasks.
type ApplicationEvent struct {
	Application Application `json:"application"`
	Job         Job         `json:"job"`
	Applicant   User        `json:"applicant"`
}
