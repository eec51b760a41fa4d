package server

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/types"
)

// UserStore is the persistence the credential service needs.
type UserStore interface {
	CreateUser(ctx context.Context, input *db.UserCreateInput) (*db.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
}

// JobStore is the persistence the job catalog needs.
type JobStore interface {
	CreateJob(ctx context.Context, input *db.JobCreateInput) (*db.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
	ListJobs(ctx context.Context) ([]db.Job, error)
	SeedJobs(ctx context.Context, inputs []db.JobCreateInput) (int, error)
}

// ApplicationStore is the persistence the application ledger needs.
type ApplicationStore interface {
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
	CreateApplication(ctx context.Context, jobID, userID uuid.UUID, coverLetter string) (*db.ApplicationReview, error)
	ListApplications(ctx context.Context) ([]db.ApplicationReview, error)
	ListApplicationsByUser(ctx context.Context, userID uuid.UUID) ([]db.UserApplication, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string) error
}

// StatsStore is the persistence the aggregation reporter needs.
type StatsStore interface {
	CountJobs(ctx context.Context) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	CountApplications(ctx context.Context) (int64, error)
	CountApplicationsSince(ctx context.Context, since time.Time) (int64, error)
}

// Store is everything the server needs from persistence. Both *db.DB and
// *memdb.Store satisfy it.
type Store interface {
	UserStore
	JobStore
	ApplicationStore
	StatsStore
	Ping(ctx context.Context) error
}

// Notifier receives application events after they are committed. It must
// return promptly and never fail the caller.
type Notifier interface {
	ApplicationSubmitted(ctx context.Context, event types.ApplicationEvent)
}

// -----------------------------------------------------------------------------
// Conversions from store rows to API types
// -----------------------------------------------------------------------------

// convertDBUserToTypesUser converts db.User to types.User, excluding password hash
func convertDBUserToTypesUser(dbUser *db.User) *types.User {
	if dbUser == nil {
		return nil
	}
	return &types.User{
		ID:        dbUser.ID,
		Name:      dbUser.Name,
		Email:     dbUser.Email,
		Phone:     dbUser.Phone,
		CreatedAt: dbUser.CreatedAt,
	}
}

func convertDBJob(j *db.Job) *types.Job {
	if j == nil {
		return nil
	}
	return &types.Job{
		ID:           j.ID,
		Title:        j.Title,
		Company:      j.Company,
		Location:     j.Location,
		Type:         j.Type,
		Salary:       j.Salary,
		Description:  j.Description,
		Requirements: j.Requirements,
		CreatedAt:    j.CreatedAt,
	}
}

func convertDBApplication(a *db.Application) *types.Application {
	if a == nil {
		return nil
	}
	return &types.Application{
		ID:          a.ID,
		JobID:       a.JobID,
		UserID:      a.UserID,
		CoverLetter: a.CoverLetter,
		Status:      types.ApplicationStatus(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
