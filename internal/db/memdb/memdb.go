// Package memdb is an in-memory implementation of the db store methods. It is
// safe for concurrent use and is intended for tests and local development.
package memdb

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/jobboard/internal/db"
)

// Store mirrors the constraint behaviour of the PostgreSQL schema: unique
// emails, one application per (job, user) pair, and foreign keys from
// applications to jobs and users.
type Store struct {
	// Now supplies timestamps. Tests may replace it to backdate rows.
	Now func() time.Time

	mu           sync.RWMutex
	seq          int64
	users        map[uuid.UUID]db.User
	usersByEmail map[string]uuid.UUID
	jobs         map[uuid.UUID]db.Job
	apps         map[uuid.UUID]db.Application
	appPairs     map[[2]uuid.UUID]uuid.UUID
	order        map[uuid.UUID]int64
	down         bool
}

// New creates an empty store.
func New() *Store {
	return &Store{
		Now:          time.Now,
		users:        make(map[uuid.UUID]db.User),
		usersByEmail: make(map[string]uuid.UUID),
		jobs:         make(map[uuid.UUID]db.Job),
		apps:         make(map[uuid.UUID]db.Application),
		appPairs:     make(map[[2]uuid.UUID]uuid.UUID),
		order:        make(map[uuid.UUID]int64),
	}
}

// SetUnavailable makes every subsequent call fail with *db.UnavailableError
// until it is called again with false.
func (s *Store) SetUnavailable(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down = down
}

func (s *Store) check(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return &db.UnavailableError{Op: op, Err: err}
	}
	if s.down {
		return &db.UnavailableError{Op: op, Err: context.DeadlineExceeded}
	}
	return nil
}

func (s *Store) track(id uuid.UUID) {
	s.seq++
	s.order[id] = s.seq
}

// newer orders by creation time then insertion order, both descending.
func (s *Store) newer(aID uuid.UUID, aAt time.Time, bID uuid.UUID, bAt time.Time) bool {
	if !aAt.Equal(bAt) {
		return aAt.After(bAt)
	}
	return s.order[aID] > s.order[bID]
}

// Ping reports whether the store is accepting calls.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.check(ctx, "ping")
}

// Users -----------------------------------------------------------------------

func (s *Store) CreateUser(ctx context.Context, input *db.UserCreateInput) (*db.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "create user"); err != nil {
		return nil, err
	}

	if _, exists := s.usersByEmail[input.Email]; exists {
		return nil, &db.ConflictError{Constraint: db.UsersEmailKey}
	}

	u := db.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: input.PasswordHash,
		CreatedAt:    s.Now(),
	}
	s.users[u.ID] = u
	s.usersByEmail[u.Email] = u.ID
	s.track(u.ID)
	return &u, nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*db.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx, "get user"); err != nil {
		return nil, err
	}

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*db.User, error) {
	if email == "" {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx, "get user by email"); err != nil {
		return nil, err
	}

	id, ok := s.usersByEmail[email]
	if !ok {
		return nil, nil
	}
	u := s.users[id]
	return &u, nil
}

func (s *Store) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx, "check email"); err != nil {
		return false, err
	}
	_, ok := s.usersByEmail[email]
	return ok, nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx, "count users"); err != nil {
		return 0, err
	}
	return int64(len(s.users)), nil
}

// Jobs ------------------------------------------------------------------------

func (s *Store) createJobLocked(input *db.JobCreateInput) db.Job {
	j := db.Job{
		ID:           uuid.New(),
		Title:        input.Title,
		Company:      input.Company,
		Location:     input.Location,
		Type:         input.Type,
		Salary:       input.Salary,
		Description:  input.Description,
		Requirements: input.Requirements,
		CreatedAt:    s.Now(),
	}
	s.jobs[j.ID] = j
	s.track(j.ID)
	return j
}

func (s *Store) CreateJob(ctx context.Context, input *db.JobCreateInput) (*db.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "create job"); err != nil {
		return nil, err
	}
	j := s.createJobLocked(input)
	return &j, nil
}

func (s *Store) GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx, "get job"); err != nil {
		return nil, err
	}
	j, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	return &j, nil
}

func (s *Store) ListJobs(ctx context.Context) ([]db.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx, "list jobs"); err != nil {
		return nil, err
	}

	jobs := make([]db.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		jobs = append(jobs, j)
	}
	sort.Slice(jobs, func(a, b int) bool {
		return s.newer(jobs[a].ID, jobs[a].CreatedAt, jobs[b].ID, jobs[b].CreatedAt)
	})
	return jobs, nil
}

func (s *Store) CountJobs(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx, "count jobs"); err != nil {
		return 0, err
	}
	return int64(len(s.jobs)), nil
}

func (s *Store) SeedJobs(ctx context.Context, inputs []db.JobCreateInput) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "seed jobs"); err != nil {
		return 0, err
	}
	if len(s.jobs) > 0 {
		return 0, nil
	}
	for i := range inputs {
		s.createJobLocked(&inputs[i])
	}
	return len(inputs), nil
}

// Applications ----------------------------------------------------------------

func (s *Store) CreateApplication(ctx context.Context, jobID, userID uuid.UUID, coverLetter string) (*db.ApplicationReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "create application"); err != nil {
		return nil, err
	}

	j, ok := s.jobs[jobID]
	if !ok {
		return nil, &db.ReferenceError{Constraint: db.ApplicationsJobFKey}
	}
	u, ok := s.users[userID]
	if !ok {
		return nil, &db.ReferenceError{Constraint: db.ApplicationsUserFKey}
	}
	pair := [2]uuid.UUID{jobID, userID}
	if _, exists := s.appPairs[pair]; exists {
		return nil, &db.ConflictError{Constraint: db.ApplicationsJobUserKey}
	}

	now := s.Now()
	a := db.Application{
		ID:          uuid.New(),
		JobID:       jobID,
		UserID:      userID,
		CoverLetter: coverLetter,
		Status:      db.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.apps[a.ID] = a
	s.appPairs[pair] = a.ID
	s.track(a.ID)
	return s.reviewLocked(a, j, u), nil
}

func (s *Store) reviewLocked(a db.Application, j db.Job, u db.User) *db.ApplicationReview {
	return &db.ApplicationReview{
		Application:    a,
		JobTitle:       j.Title,
		Company:        j.Company,
		ApplicantName:  u.Name,
		ApplicantEmail: u.Email,
		ApplicantPhone: u.Phone,
	}
}

func (s *Store) GetApplication(ctx context.Context, id uuid.UUID) (*db.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx, "get application"); err != nil {
		return nil, err
	}
	a, ok := s.apps[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *Store) sortedAppsLocked(keep func(db.Application) bool) []db.Application {
	apps := make([]db.Application, 0, len(s.apps))
	for _, a := range s.apps {
		if keep == nil || keep(a) {
			apps = append(apps, a)
		}
	}
	sort.Slice(apps, func(i, j int) bool {
		return s.newer(apps[i].ID, apps[i].CreatedAt, apps[j].ID, apps[j].CreatedAt)
	})
	return apps
}

func (s *Store) ListApplications(ctx context.Context) ([]db.ApplicationReview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx, "list applications"); err != nil {
		return nil, err
	}

	apps := s.sortedAppsLocked(nil)
	reviews := make([]db.ApplicationReview, 0, len(apps))
	for _, a := range apps {
		reviews = append(reviews, *s.reviewLocked(a, s.jobs[a.JobID], s.users[a.UserID]))
	}
	return reviews, nil
}

func (s *Store) ListApplicationsByUser(ctx context.Context, userID uuid.UUID) ([]db.UserApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx, "list user applications"); err != nil {
		return nil, err
	}

	apps := s.sortedAppsLocked(func(a db.Application) bool { return a.UserID == userID })
	out := make([]db.UserApplication, 0, len(apps))
	for _, a := range apps {
		j := s.jobs[a.JobID]
		out = append(out, db.UserApplication{
			Application: a,
			JobTitle:    j.Title,
			Company:     j.Company,
			Location:    j.Location,
			JobType:     j.Type,
		})
	}
	return out, nil
}

func (s *Store) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "update application status"); err != nil {
		return err
	}

	a, ok := s.apps[id]
	if !ok {
		return db.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = s.Now()
	s.apps[id] = a
	return nil
}

func (s *Store) CountApplications(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx, "count applications"); err != nil {
		return 0, err
	}
	return int64(len(s.apps)), nil
}

func (s *Store) CountApplicationsSince(ctx context.Context, since time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx, "count recent applications"); err != nil {
		return 0, err
	}
	var n int64
	for _, a := range s.apps {
		if !a.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}
