package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ChaimaTlili24/Automated-Candidate-Screening-Agent/internal/db"
	"github.com/ChaimaTlili24/Automated-Candidate-Screening-Agent/internal/extraction"
	"github.com/ChaimaTlili24/Automated-Candidate-Screening-Agent/internal/types"
)

// ---------------------------------------------------------------------
// Candidate Handlers
// ---------------------------------------------------------------------

// handleUploadCV accepts a multipart CV upload, extracts the skill
// section and upserts the candidate profile. Extraction failures are
// not errors: the profile is stored with an empty skill list.
func (s *Server) handleUploadCV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart request")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	if name == "" || email == "" {
		s.errorResponse(w, http.StatusBadRequest, "Name and Email are required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "CV file is required")
		return
	}
	defer func() { _ = file.Close() }()

	format, ok := extraction.FormatForFilename(header.Filename)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "unsupported format")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read CV file")
		return
	}

	// OCR and PDF work are CPU-heavy; bound them across requests.
	if err := s.extractSem.Acquire(r.Context(), 1); err != nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Server is busy")
		return
	}
	lines, err := s.extractor.Extract(r.Context(), extraction.RawDocument{Data: data, Format: format})
	s.extractSem.Release(1)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "unsupported format")
		return
	}

	skills := extraction.ExtractSkillSection(lines)
	if len(skills) == 0 {
		log.Printf("[upload] no skill section found in %s for %s", header.Filename, email)
	}

	candidate, err := s.db.UpsertCandidate(r.Context(), name, email, skills)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, types.UploadResponse{
		ID:     candidate.ID.String(),
		Name:   candidate.Name,
		Email:  candidate.Email,
		Skills: candidate.Skills,
	})
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	candidateID, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid candidate ID")
		return
	}

	candidate, err := s.db.GetCandidateByID(r.Context(), candidateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if candidate == nil {
		s.errorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, candidate)
}

func (s *Server) handleAddCoverLetter(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	candidateID, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid candidate ID")
		return
	}

	var req types.CoverLetterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	candidate, err := s.db.GetCandidateByID(r.Context(), candidateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if candidate == nil {
		s.errorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	letter := db.CoverLetter{
		JobID:     req.JobID,
		JobTitle:  req.JobTitle,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.AddCoverLetter(r.Context(), candidateID, letter); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"status": "added"})
}
