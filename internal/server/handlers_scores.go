package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/ats-analyzer/internal/types"
)

// handleScoreResume computes and persists a score for a resume. With a job
// id in the body the resume is scored against that job; without one,
// general scoring applies.
func (s *Server) handleScoreResume(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// An empty body means general scoring.
	var req types.ScoreResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var rec *types.ScoreRecord
	if req.JobID != nil {
		rec, err = s.engine.CalculateScore(r.Context(), id, *req.JobID)
	} else {
		rec, err = s.engine.CalculateGeneralScore(r.Context(), id)
	}
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, rec)
}

// handleScoreDescription scores a resume against a free-text job
// description without storing the job.
func (s *Server) handleScoreDescription(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req types.ScoreDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := s.engine.ScoreAgainstDescription(r.Context(), id, req.Description)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, rec)
}

// handleGetScore returns the most recent score for a resume
func (s *Server) handleGetScore(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := s.store.GetScoreByResumeID(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load score")
		return
	}
	if rec == nil {
		nf := &ScoreNotFoundError{ResumeID: id}
		s.errorResponse(w, HTTPStatus(nf), nf.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, rec)
}
