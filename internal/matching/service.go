// Package matching computes and records semantic compatibility scores
// between candidate profiles and job postings.
package matching

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ChaimaTlili24/Automated-Candidate-Screening-Agent/internal/db"
	"github.com/ChaimaTlili24/Automated-Candidate-Screening-Agent/internal/embedding"
	"github.com/ChaimaTlili24/Automated-Candidate-Screening-Agent/internal/normalize"
)

// CandidateStore is the candidate-profile contract the matcher depends on.
type CandidateStore interface {
	GetCandidateByID(ctx context.Context, id uuid.UUID) (*db.Candidate, error)
	GetCandidateByEmail(ctx context.Context, email string) (*db.Candidate, error)
	UpdateLastMatchScore(ctx context.Context, id uuid.UUID, score float64, matchedAt time.Time) error
}

// JobStore is the read-only job contract the matcher depends on.
type JobStore interface {
	GetJob(ctx context.Context, id int64) (*db.Job, error)
}

// MatchStore persists match results.
type MatchStore interface {
	UpsertMatchResult(ctx context.Context, result db.MatchResult) error
}

// Service runs the match pipeline: look up both records, normalize both
// skill texts, embed, score, and record the result.
type Service struct {
	candidates CandidateStore
	jobs       JobStore
	matches    MatchStore
	embedder   embedding.Embedder
}

// NewService creates a match service. The embedder is an application-
// lifetime resource owned by the caller.
func NewService(candidates CandidateStore, jobs JobStore, matches MatchStore, embedder embedding.Embedder) *Service {
	return &Service{
		candidates: candidates,
		jobs:       jobs,
		matches:    matches,
		embedder:   embedder,
	}
}

// Match scores one candidate against one job and persists the result.
// candidateRef is a profile id or, as a fallback lookup key, an email
// address. The sentinel errors in this package cover every expected
// failure; anything else is an infrastructure error.
func (s *Service) Match(ctx context.Context, candidateRef string, jobID int64) (*db.MatchResult, error) {
	candidate, err := s.findCandidate(ctx, candidateRef)
	if err != nil {
		return nil, err
	}

	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	candidateText := normalize.Skills(candidate.Skills)
	jobText := normalize.Text(jobSkillSource(job))

	if strings.TrimSpace(candidateText) == "" {
		return nil, ErrNoCandidateSkills
	}
	if strings.TrimSpace(jobText) == "" {
		return nil, ErrNoJobSkills
	}

	// The two embedding calls are independent; their order is not
	// significant.
	var candidateVec, jobVec []float32
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		candidateVec, err = s.embedder.Embed(gctx, candidateText)
		return err
	})
	g.Go(func() error {
		var err error
		jobVec, err = s.embedder.Embed(gctx, jobText)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to embed skill text: %w", err)
	}

	result := db.MatchResult{
		CandidateID:    candidate.ID,
		JobID:          job.ID,
		CandidateName:  candidate.Name,
		CandidateEmail: candidate.Email,
		JobTitle:       job.Title,
		MatchScore:     Score(Cosine(candidateVec, jobVec)),
		MatchedAt:      time.Now().UTC(),
	}

	if err := s.matches.UpsertMatchResult(ctx, result); err != nil {
		return nil, err
	}

	// Mirror the score onto the profile. Best-effort: the match result is
	// already durable, and the cached field is recomputed on next match.
	if err := s.candidates.UpdateLastMatchScore(ctx, candidate.ID, result.MatchScore, result.MatchedAt); err != nil {
		log.Printf("[match] failed to mirror score onto candidate %s: %v", candidate.ID, err)
	}

	return &result, nil
}

// findCandidate resolves a candidate reference: an exact id lookup first,
// then, if the reference is not an id or the id finds nothing, an email
// lookup scoped to candidate-type records.
func (s *Service) findCandidate(ctx context.Context, ref string) (*db.Candidate, error) {
	if id, err := uuid.Parse(ref); err == nil {
		candidate, err := s.candidates.GetCandidateByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if candidate != nil {
			return candidate, nil
		}
	}

	candidate, err := s.candidates.GetCandidateByEmail(ctx, ref)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, ErrCandidateNotFound
	}
	return candidate, nil
}

// jobSkillSource picks the job-side skill text: the explicit required
// skills field when present and non-empty, the free-text description
// otherwise.
func jobSkillSource(job *db.Job) string {
	if job.RequiredSkills != nil && strings.TrimSpace(*job.RequiredSkills) != "" {
		return *job.RequiredSkills
	}
	return job.Description
}
