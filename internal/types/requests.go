// Package types provides request types shared by the HTTP API and the CLI.
package types

import (
	"github.com/go-playground/validator/v10"
)

// MatchRequest asks for one candidate to be scored against one job.
// Candidate is a profile id or an email address.
type MatchRequest struct {
	Candidate string `json:"candidate" validate:"required"`
	JobID     int64  `json:"job_id" validate:"required,gt=0"`
}

// CoverLetterRequest attaches a cover letter to a candidate profile.
type CoverLetterRequest struct {
	JobID    int64  `json:"job_id" validate:"required,gt=0"`
	JobTitle string `json:"job_title,omitempty"`
	Content  string `json:"content" validate:"required,min=1"`
}

// UploadResponse summarizes a stored candidate profile after a CV upload.
type UploadResponse struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Skills []string `json:"skills"`
}

// Validate validates the MatchRequest using the validator.
func (r *MatchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CoverLetterRequest using the validator.
func (r *CoverLetterRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
