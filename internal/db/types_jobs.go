package db

import (
	"time"

	"github.com/google/uuid"
)

// Job represents a job posting row
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

// JobCreateInput holds the fields for a new posting
type JobCreateInput struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	Type         string `json:"type"`
	Salary       string `json:"salary,omitempty"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}
