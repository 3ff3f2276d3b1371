package matching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChaimaTlili24/Automated-Candidate-Screening-Agent/internal/db"
)

// fakeCandidates is an in-memory CandidateStore.
type fakeCandidates struct {
	byID    map[uuid.UUID]*db.Candidate
	byEmail map[string]*db.Candidate

	cacheErr   error
	cacheCalls int
	lastScore  float64
}

func newFakeCandidates(candidates ...*db.Candidate) *fakeCandidates {
	f := &fakeCandidates{
		byID:    make(map[uuid.UUID]*db.Candidate),
		byEmail: make(map[string]*db.Candidate),
	}
	for _, c := range candidates {
		f.byID[c.ID] = c
		f.byEmail[c.Email] = c
	}
	return f
}

func (f *fakeCandidates) GetCandidateByID(_ context.Context, id uuid.UUID) (*db.Candidate, error) {
	return f.byID[id], nil
}

func (f *fakeCandidates) GetCandidateByEmail(_ context.Context, email string) (*db.Candidate, error) {
	return f.byEmail[email], nil
}

func (f *fakeCandidates) UpdateLastMatchScore(_ context.Context, _ uuid.UUID, score float64, _ time.Time) error {
	f.cacheCalls++
	f.lastScore = score
	return f.cacheErr
}

// fakeJobs is an in-memory JobStore.
type fakeJobs struct {
	jobs map[int64]*db.Job
}

func (f *fakeJobs) GetJob(_ context.Context, id int64) (*db.Job, error) {
	return f.jobs[id], nil
}

// matchKey is the natural key of a match result.
type matchKey struct {
	candidateID uuid.UUID
	jobID       int64
}

// fakeMatches records upserts keyed by the natural key.
type fakeMatches struct {
	rows map[matchKey]db.MatchResult
	err  error
}

func newFakeMatches() *fakeMatches {
	return &fakeMatches{rows: make(map[matchKey]db.MatchResult)}
}

func (f *fakeMatches) UpsertMatchResult(_ context.Context, result db.MatchResult) error {
	if f.err != nil {
		return f.err
	}
	f.rows[matchKey{result.CandidateID, result.JobID}] = result
	return nil
}

// fakeEmbedder returns a fixed vector per text, so identical texts embed
// identically.
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	// Deterministic default: a vector derived from the text length.
	return []float32{float32(len(text)), 1, 0.5}, nil
}

func (f *fakeEmbedder) Close() error { return nil }

func strPtr(s string) *string { return &s }

func testCandidate() *db.Candidate {
	return &db.Candidate{
		ID:     uuid.New(),
		Kind:   "cv",
		Name:   "Jane Doe",
		Email:  "jane@example.com",
		Skills: []string{"Go", "Rust"},
	}
}

func testService(c *fakeCandidates, j *fakeJobs, m *fakeMatches, e *fakeEmbedder) *Service {
	if e == nil {
		e = &fakeEmbedder{}
	}
	return NewService(c, j, m, e)
}

func TestMatchByProfileID(t *testing.T) {
	candidate := testCandidate()
	jobs := &fakeJobs{jobs: map[int64]*db.Job{7: {
		ID: 7, Title: "Backend Engineer", RequiredSkills: strPtr("golang rust systems programming"),
	}}}
	matches := newFakeMatches()
	s := testService(newFakeCandidates(candidate), jobs, matches, nil)

	result, err := s.Match(context.Background(), candidate.ID.String(), 7)

	require.NoError(t, err)
	assert.Equal(t, candidate.ID, result.CandidateID)
	assert.Equal(t, int64(7), result.JobID)
	assert.Equal(t, "Jane Doe", result.CandidateName)
	assert.Equal(t, "Backend Engineer", result.JobTitle)
	assert.Greater(t, result.MatchScore, 0.0)
	assert.LessOrEqual(t, result.MatchScore, 100.0)
	assert.Len(t, matches.rows, 1)
}

func TestMatchIdenticalSkillTextScoresNearHundred(t *testing.T) {
	candidate := testCandidate()
	candidate.Skills = []string{"golang", "rust"}
	jobs := &fakeJobs{jobs: map[int64]*db.Job{1: {
		ID: 1, Title: "Engineer", RequiredSkills: strPtr("golang rust"),
	}}}
	s := testService(newFakeCandidates(candidate), jobs, newFakeMatches(), nil)

	result, err := s.Match(context.Background(), candidate.Email, 1)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.MatchScore, 95.0)
}

func TestMatchFallsBackToEmailLookup(t *testing.T) {
	candidate := testCandidate()
	jobs := &fakeJobs{jobs: map[int64]*db.Job{1: {ID: 1, Title: "Engineer", Description: "go and rust"}}}
	s := testService(newFakeCandidates(candidate), jobs, newFakeMatches(), nil)

	// Not a valid profile id: must fall back to the email lookup.
	result, err := s.Match(context.Background(), "jane@example.com", 1)

	require.NoError(t, err)
	assert.Equal(t, candidate.ID, result.CandidateID)
}

func TestMatchUnknownIDFallsThroughToEmail(t *testing.T) {
	candidate := testCandidate()
	candidates := newFakeCandidates(candidate)
	jobs := &fakeJobs{jobs: map[int64]*db.Job{1: {ID: 1, Title: "Engineer", Description: "go"}}}
	s := testService(candidates, jobs, newFakeMatches(), nil)

	// An unknown id finds nothing by id; the reference is then tried as an
	// email key, which also finds nothing.
	_, err := s.Match(context.Background(), uuid.NewString(), 1)

	assert.ErrorIs(t, err, ErrCandidateNotFound)
}

func TestMatchCandidateNotFound(t *testing.T) {
	s := testService(newFakeCandidates(), &fakeJobs{}, newFakeMatches(), nil)

	_, err := s.Match(context.Background(), "ghost@example.com", 1)

	assert.ErrorIs(t, err, ErrCandidateNotFound)
}

func TestMatchJobNotFound(t *testing.T) {
	candidate := testCandidate()
	s := testService(newFakeCandidates(candidate), &fakeJobs{jobs: map[int64]*db.Job{}}, newFakeMatches(), nil)

	_, err := s.Match(context.Background(), candidate.Email, 99)

	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestMatchNoCandidateSkills(t *testing.T) {
	candidate := testCandidate()
	candidate.Skills = nil
	jobs := &fakeJobs{jobs: map[int64]*db.Job{1: {ID: 1, Title: "Engineer", Description: "go"}}}
	s := testService(newFakeCandidates(candidate), jobs, newFakeMatches(), nil)

	_, err := s.Match(context.Background(), candidate.Email, 1)

	assert.ErrorIs(t, err, ErrNoCandidateSkills)
}

func TestMatchNoJobSkills(t *testing.T) {
	candidate := testCandidate()
	// Empty required skills and an empty description leave nothing to
	// embed on the job side.
	jobs := &fakeJobs{jobs: map[int64]*db.Job{1: {ID: 1, Title: "Engineer", RequiredSkills: strPtr("  ")}}}
	s := testService(newFakeCandidates(candidate), jobs, newFakeMatches(), nil)

	_, err := s.Match(context.Background(), candidate.Email, 1)

	assert.ErrorIs(t, err, ErrNoJobSkills)
}

func TestMatchPrefersRequiredSkillsOverDescription(t *testing.T) {
	candidate := testCandidate()
	candidate.Skills = []string{"kubernetes"}
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"kubernetes": {1, 0},
		// The description would embed orthogonally; required_skills must
		// win, giving a perfect score.
		"cook": {0, 1},
	}}
	jobs := &fakeJobs{jobs: map[int64]*db.Job{1: {
		ID:             1,
		Title:          "Platform Engineer",
		Description:    "cooking",
		RequiredSkills: strPtr("kubernetes"),
	}}}
	s := testService(newFakeCandidates(candidate), jobs, newFakeMatches(), embedder)

	result, err := s.Match(context.Background(), candidate.Email, 1)

	require.NoError(t, err)
	assert.InDelta(t, 100.0, result.MatchScore, 0.01)
}

func TestMatchUpsertIdempotent(t *testing.T) {
	candidate := testCandidate()
	jobs := &fakeJobs{jobs: map[int64]*db.Job{1: {ID: 1, Title: "Engineer", Description: "go rust"}}}
	matches := newFakeMatches()
	s := testService(newFakeCandidates(candidate), jobs, matches, nil)

	first, err := s.Match(context.Background(), candidate.Email, 1)
	require.NoError(t, err)
	second, err := s.Match(context.Background(), candidate.Email, 1)
	require.NoError(t, err)

	// Running the same match twice leaves exactly one row, holding the
	// second write's values.
	assert.Len(t, matches.rows, 1)
	for _, row := range matches.rows {
		assert.Equal(t, second.MatchedAt, row.MatchedAt)
	}
	assert.Equal(t, first.MatchScore, second.MatchScore)
}

func TestMatchMirrorsScoreOntoCandidate(t *testing.T) {
	candidate := testCandidate()
	candidates := newFakeCandidates(candidate)
	jobs := &fakeJobs{jobs: map[int64]*db.Job{1: {ID: 1, Title: "Engineer", Description: "go rust"}}}
	s := testService(candidates, jobs, newFakeMatches(), nil)

	result, err := s.Match(context.Background(), candidate.Email, 1)

	require.NoError(t, err)
	assert.Equal(t, 1, candidates.cacheCalls)
	assert.Equal(t, result.MatchScore, candidates.lastScore)
}

func TestMatchCacheWriteFailureIsNotFatal(t *testing.T) {
	candidate := testCandidate()
	candidates := newFakeCandidates(candidate)
	candidates.cacheErr = errors.New("profile store down")
	jobs := &fakeJobs{jobs: map[int64]*db.Job{1: {ID: 1, Title: "Engineer", Description: "go rust"}}}
	s := testService(candidates, jobs, newFakeMatches(), nil)

	result, err := s.Match(context.Background(), candidate.Email, 1)

	// The match result is durable; the stale cache is acceptable.
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, 1, candidates.cacheCalls)
}

func TestMatchEmbedderFailureSurfaces(t *testing.T) {
	candidate := testCandidate()
	jobs := &fakeJobs{jobs: map[int64]*db.Job{1: {ID: 1, Title: "Engineer", Description: "go rust"}}}
	embedder := &fakeEmbedder{err: errors.New("model unavailable")}
	s := testService(newFakeCandidates(candidate), jobs, newFakeMatches(), embedder)

	_, err := s.Match(context.Background(), candidate.Email, 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to embed")
}
