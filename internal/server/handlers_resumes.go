package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jonathan/ats-analyzer/internal/db"
	"github.com/jonathan/ats-analyzer/internal/ingestion"
	"github.com/jonathan/ats-analyzer/internal/parsing"
	"github.com/jonathan/ats-analyzer/internal/types"
)

// ResumeResponse is the wire shape for a stored resume.
type ResumeResponse struct {
	ID                  string   `json:"id"`
	CandidateName       string   `json:"candidate_name"`
	ExtractedSkills     []string `json:"extracted_skills"`
	ExtractedEducation  []string `json:"extracted_education"`
	ExtractedExperience string   `json:"extracted_experience,omitempty"`
	Status              string   `json:"status"`
	CreatedAt           string   `json:"created_at"`
}

// handleIngestResume accepts resume text, extracts structured signals and
// persists the result.
func (s *Server) handleIngestResume(w http.ResponseWriter, r *http.Request) {
	var req types.IngestResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	normalized := ingestion.NormalizeText(req.Text)
	extract := parsing.ExtractResume(s.dict, normalized, types.SkillsFromNames(req.TargetSkills))

	resume, err := s.store.CreateResume(r.Context(), req.CandidateName, normalized,
		extract.Skills, extract.Education, extract.Experience)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to store resume")
		return
	}

	s.jsonResponse(w, http.StatusCreated, resumeResponse(resume))
}

// handleGetResume returns a stored resume by id
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load resume")
		return
	}
	if resume == nil {
		err := &ResumeNotFoundError{ID: id}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, resumeResponse(resume))
}

// handleDeleteResume removes a resume and its score
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load resume")
		return
	}
	if resume == nil {
		nf := &ResumeNotFoundError{ID: id}
		s.errorResponse(w, HTTPStatus(nf), nf.Error())
		return
	}

	if err := s.store.DeleteResume(r.Context(), id); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete resume")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func resumeResponse(r *db.Resume) ResumeResponse {
	return ResumeResponse{
		ID:                  r.ID.String(),
		CandidateName:       r.CandidateName,
		ExtractedSkills:     r.ExtractedSkills,
		ExtractedEducation:  r.ExtractedEducation,
		ExtractedExperience: r.ExtractedExperience,
		Status:              r.Status,
		CreatedAt:           r.CreatedAt.Format(time.RFC3339),
	}
}
