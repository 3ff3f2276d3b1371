package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/ChaimaTlili24/Automated-Candidate-Screening-Agent/internal/matching"
	"github.com/ChaimaTlili24/Automated-Candidate-Screening-Agent/internal/types"
)

// ---------------------------------------------------------------------
// Matching Handlers
// ---------------------------------------------------------------------

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req types.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.matcher.Match(r.Context(), req.Candidate, req.JobID)
	if err != nil {
		status, message := matchErrorStatus(err)
		s.errorResponse(w, status, message)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleGetMatchResult(w http.ResponseWriter, r *http.Request) {
	candidateID, err := uuid.Parse(r.PathValue("candidate_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid candidate ID")
		return
	}
	jobID, err := strconv.ParseInt(r.PathValue("job_id"), 10, 64)
	if err != nil || jobID <= 0 {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	result, err := s.db.GetMatchResult(r.Context(), candidateID, jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if result == nil {
		s.errorResponse(w, http.StatusNotFound, "Match result not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// matchErrorStatus maps matching errors to an HTTP status and the
// message presented to the caller.
func matchErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, matching.ErrCandidateNotFound),
		errors.Is(err, matching.ErrJobNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, matching.ErrNoCandidateSkills),
		errors.Is(err, matching.ErrNoJobSkills):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Matching failed: " + err.Error()
	}
}
