package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const candidateColumns = `id, kind, name, email, skills, cover_letters,
	job_id, job_title, last_match_score, last_matched_at, created_at, updated_at`

// UpsertCandidate creates or updates a candidate profile keyed by its
// natural key (email, kind). Re-uploads overwrite the name and skill list.
func (db *DB) UpsertCandidate(ctx context.Context, name, email string, skills []string) (*Candidate, error) {
	if skills == nil {
		skills = []string{}
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO candidates (id, kind, name, email, skills)
		 VALUES ($1, 'cv', $2, $3, $4)
		 ON CONFLICT (email, kind)
		 DO UPDATE SET name = EXCLUDED.name, skills = EXCLUDED.skills, updated_at = NOW()
		 RETURNING `+candidateColumns,
		uuid.New(), name, email, skills,
	)

	candidate, err := scanCandidate(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert candidate: %w", err)
	}
	return candidate, nil
}

// GetCandidateByID retrieves a candidate by profile id. Returns nil when no
// such profile exists.
func (db *DB) GetCandidateByID(ctx context.Context, id uuid.UUID) (*Candidate, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)

	candidate, err := scanCandidate(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return candidate, nil
}

// GetCandidateByEmail retrieves a CV candidate by email. The lookup is
// scoped to candidate-type records so cover-letter-only records never match.
func (db *DB) GetCandidateByEmail(ctx context.Context, email string) (*Candidate, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE email = $1 AND kind = 'cv'`, email)

	candidate, err := scanCandidate(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate by email: %w", err)
	}
	return candidate, nil
}

// AddCoverLetter appends a cover letter record to a candidate profile.
func (db *DB) AddCoverLetter(ctx context.Context, id uuid.UUID, letter CoverLetter) error {
	letterJSON, err := json.Marshal(letter)
	if err != nil {
		return fmt.Errorf("failed to marshal cover letter: %w", err)
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE candidates
		 SET cover_letters = COALESCE(cover_letters, '[]'::jsonb) || $2::jsonb,
		     updated_at = NOW()
		 WHERE id = $1`,
		id, letterJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to add cover letter: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("candidate not found: %s", id)
	}
	return nil
}

// UpdateLastMatchScore mirrors the latest match score onto the candidate
// profile. This is a best-effort denormalization for profile-summary reads
// and is not transactionally coupled to the match result upsert.
func (db *DB) UpdateLastMatchScore(ctx context.Context, id uuid.UUID, score float64, matchedAt time.Time) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE candidates
		 SET last_match_score = $2, last_matched_at = $3, updated_at = NOW()
		 WHERE id = $1`,
		id, score, matchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update last match score: %w", err)
	}
	return nil
}

// scanCandidate scans one candidate row, decoding the cover letter JSON.
func scanCandidate(row pgx.Row) (*Candidate, error) {
	var c Candidate
	var letters []byte

	err := row.Scan(&c.ID, &c.Kind, &c.Name, &c.Email, &c.Skills, &letters,
		&c.JobID, &c.JobTitle, &c.LastMatchScore, &c.LastMatchedAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if len(letters) > 0 {
		if err := json.Unmarshal(letters, &c.CoverLetters); err != nil {
			return nil, fmt.Errorf("failed to decode cover letters: %w", err)
		}
	}
	return &c, nil
}
