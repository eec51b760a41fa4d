package server

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/types"
)

// JobService manages the job catalog
type JobService struct {
	db JobStore
}

// NewJobService creates a new JobService
func NewJobService(db JobStore) *JobService {
	return &JobService{db: db}
}

// Create validates and stores a new posting. Nothing is written when a
// mandatory field is empty or whitespace.
func (s *JobService) Create(ctx context.Context, req *types.CreateJobRequest) (*types.Job, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}

	j, err := s.db.CreateJob(ctx, &db.JobCreateInput{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Type:         req.Type,
		Salary:       req.Salary,
		Description:  req.Description,
		Requirements: req.Requirements,
	})
	if err != nil {
		return nil, storeError("create job", err)
	}

	logrus.WithFields(logrus.Fields{"job_id": j.ID, "company": j.Company}).Info("job created")
	return convertDBJob(j), nil
}

// List returns every posting, newest first
func (s *JobService) List(ctx context.Context) ([]types.Job, error) {
	rows, err := s.db.ListJobs(ctx)
	if err != nil {
		return nil, storeError("list jobs", err)
	}

	jobs := make([]types.Job, 0, len(rows))
	for i := range rows {
		jobs = append(jobs, *convertDBJob(&rows[i]))
	}
	return jobs, nil
}

// Get returns one posting or *ErrNotFound
func (s *JobService) Get(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	j, err := s.db.GetJob(ctx, id)
	if err != nil {
		return nil, storeError("get job", err)
	}
	if j == nil {
		return nil, &ErrNotFound{Resource: "job", ID: id.String()}
	}
	return convertDBJob(j), nil
}

// Seed inserts jobs only when the catalog is empty and reports how many were written
func (s *JobService) Seed(ctx context.Context, jobs []types.CreateJobRequest) (int, error) {
	inputs := make([]db.JobCreateInput, 0, len(jobs))
	for i := range jobs {
		req := jobs[i]
		req.Normalize()
		if err := req.Validate(); err != nil {
			return 0, validationError(err)
		}
		inputs = append(inputs, db.JobCreateInput{
			Title:        req.Title,
			Company:      req.Company,
			Location:     req.Location,
			Type:         req.Type,
			Salary:       req.Salary,
			Description:  req.Description,
			Requirements: req.Requirements,
		})
	}

	n, err := s.db.SeedJobs(ctx, inputs)
	if err != nil {
		return 0, storeError("seed jobs", err)
	}
	if n > 0 {
		logrus.WithField("count", n).Info("job catalog seeded")
	}
	return n, nil
}
