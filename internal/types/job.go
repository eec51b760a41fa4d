package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Conventional job types. The catalog accepts any non-empty value.
const (
	JobTypeFullTime = "Full-time"
	JobTypePartTime = "Part-time"
	JobTypeContract = "Contract"
	JobTypeRemote   = "Remote"
)

// Job is a posting in the catalog.
type Job struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	Type         string    `json:"type"`
	Salary       string    `json:"salary,omitempty"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateJobRequest carries the fields of a new posting. Salary is the only optional field.
type CreateJobRequest struct {
	Title        string `json:"title" validate:"required"`
	Company      string `json:"company" validate:"required"`
	Location     string `json:"location" validate:"required"`
	Type         string `json:"type" validate:"required"`
	Salary       string `json:"salary,omitempty"`
	Description  string `json:"description" validate:"required"`
	Requirements string `json:"requirements" validate:"required"`
}

// Normalize trims surrounding whitespace so blank fields fail the required check.
func (r *CreateJobRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Company = strings.TrimSpace(r.Company)
	r.Location = strings.TrimSpace(r.Location)
	r.Type = strings.TrimSpace(r.Type)
	r.Salary = strings.TrimSpace(r.Salary)
	r.Description = strings.TrimSpace(r.Description)
	r.Requirements = strings.TrimSpace(r.Requirements)
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	return validate.Struct(r)
}

// CreateJobResponse is returned after a posting is stored.
type CreateJobResponse struct {
	Message string    `json:"message"`
	ID      uuid.UUID `json:"id"`
	Job     *Job      `json:"job"`
}
