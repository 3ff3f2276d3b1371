package db

import (
	"time"

	"github.com/google/uuid"
)

// Candidate represents a candidate profile built from an uploaded CV.
// Profiles are upserted on upload keyed by (email, kind) and are never
// hard-deleted by this service.
type Candidate struct {
	ID           uuid.UUID     `json:"id"`
	Kind         string        `json:"kind"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Skills       []string      `json:"skills"`
	CoverLetters []CoverLetter `json:"cover_letters,omitempty"`
	JobID        *int64        `json:"job_id,omitempty"`
	JobTitle     *string       `json:"job_title,omitempty"`

	// LastMatchScore mirrors the most recent match score for fast
	// profile-summary reads. It is advisory and recomputed on the next
	// match.
	LastMatchScore *float64   `json:"last_match_score,omitempty"`
	LastMatchedAt  *time.Time `json:"last_matched_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CoverLetter is one cover letter attached to a candidate profile.
type CoverLetter struct {
	JobID     int64     `json:"job_id"`
	JobTitle  string    `json:"job_title,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Job represents a job posting. The serving path treats jobs as read-only;
// rows are written only by the ingest tool.
type Job struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	// RequiredSkills, when present and non-empty, is preferred over
	// Description as the job's skill source for matching.
	RequiredSkills *string `json:"required_skills,omitempty"`
	Domain         string  `json:"domain,omitempty"`
}

// MatchResult is the persisted outcome of matching one candidate against
// one job. At most one row exists per (candidate_id, job_id) pair.
type MatchResult struct {
	CandidateID    uuid.UUID `json:"candidate_id"`
	JobID          int64     `json:"job_id"`
	CandidateName  string    `json:"candidate_name"`
	CandidateEmail string    `json:"candidate_email"`
	JobTitle       string    `json:"job_title"`
	MatchScore     float64   `json:"match_score"`
	MatchedAt      time.Time `json:"matched_at"`
}
