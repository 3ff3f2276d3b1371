package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// GetJob retrieves a job posting by id. Returns nil when no such job
// exists; callers treat that as a terminal not-found, with no fallback.
func (db *DB) GetJob(ctx context.Context, id int64) (*Job, error) {
	var job Job
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, description, required_skills, COALESCE(domain, '')
		 FROM jobs WHERE id = $1`,
		id,
	).Scan(&job.ID, &job.Title, &job.Description, &job.RequiredSkills, &job.Domain)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// InsertJob inserts a job posting and returns its id. This is used by the
// ingest tool only; the serving path never writes jobs.
func (db *DB) InsertJob(ctx context.Context, job Job) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, description, required_skills, domain)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		job.Title, job.Description, job.RequiredSkills, job.Domain,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert job: %w", err)
	}
	return id, nil
}
