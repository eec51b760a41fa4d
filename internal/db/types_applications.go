package db

import (
	"time"

	"github.com/google/uuid"
)

// Application status values, mirrored by the applications_status_check constraint
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Application represents an application row
type Application struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"job_id"`
	UserID      uuid.UUID `json:"user_id"`
	CoverLetter string    `json:"cover_letter,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ApplicationReview is an application joined with job and applicant details
type ApplicationReview struct {
	Application
	JobTitle       string `json:"job_title"`
	Company        string `json:"company"`
	ApplicantName  string `json:"name"`
	ApplicantEmail string `json:"email"`
	ApplicantPhone string `json:"phone,omitempty"`
}

// UserApplication is an application joined with job details
type UserApplication struct {
	Application
	JobTitle string `json:"job_title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	JobType  string `json:"type"`
}
