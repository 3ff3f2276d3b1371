package matching

import "errors"

// Sentinel errors for the well-defined failure classes of a match request.
// Their texts are the exact user-facing messages, so handlers can surface
// them directly in the error payload.
var (
	// ErrCandidateNotFound means neither the id nor the email lookup
	// found a candidate profile.
	ErrCandidateNotFound = errors.New("Candidate not found")

	// ErrJobNotFound means the job id does not exist. There is no
	// fallback lookup for jobs.
	ErrJobNotFound = errors.New("Job not found")

	// ErrNoCandidateSkills means the candidate's normalized skill text
	// is empty, so there is nothing to embed on the candidate side.
	ErrNoCandidateSkills = errors.New("No candidate skills")

	// ErrNoJobSkills means the job has neither usable required skills
	// nor a usable description.
	ErrNoJobSkills = errors.New("No job skills")
)
