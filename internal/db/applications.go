package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Application Methods
// -----------------------------------------------------------------------------

const applicationColumns = `a.id, a.job_id, a.user_id, a.cover_letter, a.status, a.created_at, a.updated_at`

func (a *Application) scanTargets() []any {
	return []any{&a.ID, &a.JobID, &a.UserID, &a.CoverLetter, &a.Status, &a.CreatedAt, &a.UpdatedAt}
}

// CreateApplication inserts a pending application for the (job, user) pair
// and returns it joined with the job and applicant details in the same
// statement. The pair is guarded by ApplicationsJobUserKey, so of several
// concurrent inserts for the same pair exactly one succeeds and the rest get
// a *ConflictError. An unknown job or user yields a *ReferenceError.
func (db *DB) CreateApplication(ctx context.Context, jobID, userID uuid.UUID, coverLetter string) (*ApplicationReview, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	var r ApplicationReview
	targets := append(r.scanTargets(), &r.JobTitle, &r.Company, &r.ApplicantName, &r.ApplicantEmail, &r.ApplicantPhone)
	err := db.pool.QueryRow(ctx,
		`WITH a AS (
			INSERT INTO applications (job_id, user_id, cover_letter, status)
			VALUES ($1, $2, $3, $4)
			RETURNING id, job_id, user_id, cover_letter, status, created_at, updated_at
		 )
		 SELECT `+applicationColumns+`, j.title, j.company, u.name, u.email, u.phone
		 FROM a
		 JOIN jobs j ON a.job_id = j.id
		 JOIN users u ON a.user_id = u.id`,
		jobID, userID, coverLetter, StatusPending,
	).Scan(targets...)
	if err != nil {
		return nil, classify("create application", err)
	}
	return &r, nil
}

// GetApplication retrieves an application by ID, or nil if it does not exist
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*Application, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	var a Application
	err := db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications a WHERE a.id = $1`, id,
	).Scan(a.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get application", err)
	}
	return &a, nil
}

// ListApplications returns every application with job and applicant details, newest first
func (db *DB) ListApplications(ctx context.Context) ([]ApplicationReview, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+`, j.title, j.company, u.name, u.email, u.phone
		 FROM applications a
		 JOIN jobs j ON a.job_id = j.id
		 JOIN users u ON a.user_id = u.id
		 ORDER BY a.created_at DESC, a.id DESC`)
	if err != nil {
		return nil, classify("list applications", err)
	}
	defer rows.Close()

	reviews := []ApplicationReview{}
	for rows.Next() {
		var r ApplicationReview
		targets := append(r.scanTargets(), &r.JobTitle, &r.Company, &r.ApplicantName, &r.ApplicantEmail, &r.ApplicantPhone)
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list applications", err)
	}
	return reviews, nil
}

// ListApplicationsByUser returns one user's applications with job details, newest first
func (db *DB) ListApplicationsByUser(ctx context.Context, userID uuid.UUID) ([]UserApplication, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+`, j.title, j.company, j.location, j.type
		 FROM applications a
		 JOIN jobs j ON a.job_id = j.id
		 WHERE a.user_id = $1
		 ORDER BY a.created_at DESC, a.id DESC`,
		userID,
	)
	if err != nil {
		return nil, classify("list user applications", err)
	}
	defer rows.Close()

	apps := []UserApplication{}
	for rows.Next() {
		var ua UserApplication
		targets := append(ua.scanTargets(), &ua.JobTitle, &ua.Company, &ua.Location, &ua.JobType)
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, ua)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list user applications", err)
	}
	return apps, nil
}

// UpdateApplicationStatus sets the status of an application. Returns
// ErrNotFound when no application has the given ID.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string) error {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	tag, err := db.pool.Exec(ctx,
		`UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return classify("update application status", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountApplications returns the number of applications
func (db *DB) CountApplications(ctx context.Context) (int64, error) {
	return db.count(ctx, "count applications", `SELECT COUNT(*) FROM applications`)
}

// CountApplicationsSince returns the number of applications created at or after since
func (db *DB) CountApplicationsSince(ctx context.Context, since time.Time) (int64, error) {
	return db.count(ctx, "count recent applications",
		`SELECT COUNT(*) FROM applications WHERE created_at >= $1`, since)
}

// count runs a single-value COUNT query.
func (db *DB) count(ctx context.Context, op, query string, args ...any) (int64, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	var n int64
	if err := db.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, classify(op, err)
	}
	return n, nil
}
