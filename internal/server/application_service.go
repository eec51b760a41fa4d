package server

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/metrics"
	"github.com/jonathan/jobboard/internal/types"
)

// ApplicationService manages applications and their review status
type ApplicationService struct {
	db       ApplicationStore
	notifier Notifier
}

// NewApplicationService creates a new ApplicationService. notifier may be nil.
func NewApplicationService(db ApplicationStore, notifier Notifier) *ApplicationService {
	return &ApplicationService{db: db, notifier: notifier}
}

// Apply records a pending application of userID to jobID. The job must
// exist and the pair must be new; concurrent duplicates are settled by the
// store so exactly one succeeds. The applicant is notified without
// delaying or failing the call.
func (s *ApplicationService) Apply(ctx context.Context, userID uuid.UUID, req *types.ApplyRequest) (*types.Application, error) {
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}

	job, err := s.db.GetJob(ctx, req.JobID)
	if err != nil {
		metrics.ObserveApply(metrics.ApplyError)
		return nil, storeError("get job", err)
	}
	if job == nil {
		metrics.ObserveApply(metrics.ApplyNotFound)
		return nil, &ErrNotFound{Resource: "job", ID: req.JobID.String()}
	}

	app, err := s.db.CreateApplication(ctx, req.JobID, userID, req.CoverLetter)
	if err != nil {
		var refErr *db.ReferenceError
		switch {
		case db.IsConflict(err, db.ApplicationsJobUserKey):
			metrics.ObserveApply(metrics.ApplyDuplicate)
			return nil, &ErrDuplicateApplication{JobID: req.JobID}
		case errors.As(err, &refErr) && refErr.Constraint == db.ApplicationsJobFKey:
			// Job deleted between lookup and insert
			metrics.ObserveApply(metrics.ApplyNotFound)
			return nil, &ErrNotFound{Resource: "job", ID: req.JobID.String()}
		case errors.As(err, &refErr):
			metrics.ObserveApply(metrics.ApplyNotFound)
			return nil, &ErrNotFound{Resource: "user", ID: userID.String()}
		default:
			metrics.ObserveApply(metrics.ApplyError)
			return nil, storeError("create application", err)
		}
	}
	metrics.ObserveApply(metrics.ApplyAccepted)

	result := convertDBApplication(&app.Application)
	logrus.WithFields(logrus.Fields{
		"application_id": app.ID,
		"job_id":         app.JobID,
		"user_id":        app.UserID,
	}).Info("application submitted")

	s.notify(ctx, result, job, app)
	return result, nil
}

// notify hands the committed application to the notifier. The applicant
// details come from the insert itself, so nothing else touches the store.
func (s *ApplicationService) notify(ctx context.Context, app *types.Application, job *db.Job, stored *db.ApplicationReview) {
	if s.notifier == nil {
		return
	}

	s.notifier.ApplicationSubmitted(ctx, types.ApplicationEvent{
		Application: *app,
		Job:         *convertDBJob(job),
		Applicant: types.User{
			ID:    stored.UserID,
			Name:  stored.ApplicantName,
			Email: stored.ApplicantEmail,
			Phone: stored.ApplicantPhone,
		},
	})
}

// ListAll returns every application with job and applicant details, newest first
func (s *ApplicationService) ListAll(ctx context.Context) ([]types.ApplicationReview, error) {
	rows, err := s.db.ListApplications(ctx)
	if err != nil {
		return nil, storeError("list applications", err)
	}

	reviews := make([]types.ApplicationReview, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		reviews = append(reviews, types.ApplicationReview{
			Application:    *convertDBApplication(&r.Application),
			JobTitle:       r.JobTitle,
			Company:        r.Company,
			ApplicantName:  r.ApplicantName,
			ApplicantEmail: r.ApplicantEmail,
			ApplicantPhone: r.ApplicantPhone,
		})
	}
	return reviews, nil
}

// ListForUser returns the caller's applications with job details, newest first
func (s *ApplicationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]types.UserApplication, error) {
	rows, err := s.db.ListApplicationsByUser(ctx, userID)
	if err != nil {
		return nil, storeError("list user applications", err)
	}

	apps := make([]types.UserApplication, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		apps = append(apps, types.UserApplication{
			Application: *convertDBApplication(&r.Application),
			JobTitle:    r.JobTitle,
			Company:     r.Company,
			Location:    r.Location,
			JobType:     r.JobType,
		})
	}
	return apps, nil
}

// SetStatus moves an application to any of the known statuses.
func (s *ApplicationService) SetStatus(ctx context.Context, id uuid.UUID, req *types.SetStatusRequest) error {
	if err := req.Validate(); err != nil {
		return validationError(err)
	}

	err := s.db.UpdateApplicationStatus(ctx, id, string(req.Status))
	if errors.Is(err, db.ErrNotFound) {
		return &ErrNotFound{Resource: "application", ID: id.String()}
	}
	if err != nil {
		return storeError("update application status", err)
	}

	logrus.WithFields(logrus.Fields{"application_id": id, "status": req.Status}).Info("application status updated")
	return nil
}
