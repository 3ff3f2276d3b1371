package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UpsertMatchResult stores a match result keyed by (candidate_id, job_id).
// Re-running the same match overwrites the score, timestamp and
// denormalized name fields in a single atomic statement, so at most one row
// ever exists per pair.
func (db *DB) UpsertMatchResult(ctx context.Context, result MatchResult) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO match_results
		   (candidate_id, job_id, candidate_name, candidate_email, job_title, match_score, matched_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (candidate_id, job_id)
		 DO UPDATE SET candidate_name = $3, candidate_email = $4, job_title = $5,
		               match_score = $6, matched_at = $7`,
		result.CandidateID, result.JobID, result.CandidateName, result.CandidateEmail,
		result.JobTitle, result.MatchScore, result.MatchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert match result: %w", err)
	}
	return nil
}

// GetMatchResult retrieves the match result for a (candidate, job) pair.
// Returns nil when the pair has never been matched.
func (db *DB) GetMatchResult(ctx context.Context, candidateID uuid.UUID, jobID int64) (*MatchResult, error) {
	var m MatchResult
	err := db.pool.QueryRow(ctx,
		`SELECT candidate_id, job_id, candidate_name, candidate_email, job_title, match_score, matched_at
		 FROM match_results WHERE candidate_id = $1 AND job_id = $2`,
		candidateID, jobID,
	).Scan(&m.CandidateID, &m.JobID, &m.CandidateName, &m.CandidateEmail, &m.JobTitle, &m.MatchScore, &m.MatchedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get match result: %w", err)
	}
	return &m, nil
}
