package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Job Methods
// -----------------------------------------------------------------------------

const jobColumns = `id, title, company, location, type, salary, description, requirements, created_at`

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	if err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Type, &j.Salary,
		&j.Description, &j.Requirements, &j.CreatedAt); err != nil {
		return nil, err
	}
	return &j, nil
}

// CreateJob inserts a new posting
func (db *DB) CreateJob(ctx context.Context, input *JobCreateInput) (*Job, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	j, err := scanJob(db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, company, location, type, salary, description, requirements)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+jobColumns,
		input.Title, input.Company, input.Location, input.Type, input.Salary,
		input.Description, input.Requirements,
	))
	if err != nil {
		return nil, classify("create job", err)
	}
	return j, nil
}

// GetJob retrieves a posting by ID, or nil if it does not exist
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	j, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get job", err)
	}
	return j, nil
}

// ListJobs returns every posting, newest first
func (db *DB) ListJobs(ctx context.Context) ([]Job, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, classify("list jobs", err)
	}
	defer rows.Close()

	jobs := []Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list jobs", err)
	}
	return jobs, nil
}

// CountJobs returns the number of postings
func (db *DB) CountJobs(ctx context.Context) (int64, error) {
	return db.count(ctx, "count jobs", `SELECT COUNT(*) FROM jobs`)
}

// SeedJobs inserts inputs only when the jobs table is empty and reports how
// many rows were written. The table lock keeps two concurrent seeders from
// both observing an empty table.
func (db *DB) SeedJobs(ctx context.Context, inputs []JobCreateInput) (int, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, classify("begin seed", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `LOCK TABLE jobs IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return 0, classify("lock jobs", err)
	}

	var existing int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&existing); err != nil {
		return 0, classify("count jobs", err)
	}
	if existing > 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, in := range inputs {
		batch.Queue(
			`INSERT INTO jobs (title, company, location, type, salary, description, requirements)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			in.Title, in.Company, in.Location, in.Type, in.Salary, in.Description, in.Requirements,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, classify("seed jobs", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, classify("commit seed", err)
	}
	return len(inputs), nil
}
