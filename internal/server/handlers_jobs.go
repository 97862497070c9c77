package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jonathan/ats-analyzer/internal/db"
	"github.com/jonathan/ats-analyzer/internal/parsing"
	"github.com/jonathan/ats-analyzer/internal/types"
)

// JobResponse is the wire shape for a stored job.
type JobResponse struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Skills          []types.Skill `json:"skills"`
	ExperienceLevel string        `json:"experience_level,omitempty"`
	CreatedAt       string        `json:"created_at"`
}

// handleCreateJob stores a job posting. When the request carries no skill
// list or experience level, both are extracted from the description.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req types.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	jobSkills := req.Skills
	level := req.ExperienceLevel
	if len(jobSkills) == 0 || level == "" {
		extracted := parsing.ParseJobDescription(s.dict, req.Description)
		if len(jobSkills) == 0 {
			jobSkills = types.SkillsFromNames(extracted.Skills)
		}
		if level == "" {
			level = extracted.ExperienceLevel
		}
	}

	job, err := s.store.CreateJob(r.Context(), req.Title, req.Description, jobSkills, level)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to store job")
		return
	}

	s.jsonResponse(w, http.StatusCreated, jobResponse(job))
}

// handleListJobs returns all stored jobs, newest first
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.store.ListJobs(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}

	responses := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, jobResponse(&jobs[i]))
	}
	s.jsonResponse(w, http.StatusOK, responses)
}

// handleGetJob returns a stored job by id
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.loadJob(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, jobResponse(job))
}

// handleDeleteJob removes a job posting
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.loadJob(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteJob(r.Context(), job.ID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete job")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleJobRequirements re-extracts the structured requirements from a
// stored job's description.
func (s *Server) handleJobRequirements(w http.ResponseWriter, r *http.Request) {
	job, ok := s.loadJob(w, r)
	if !ok {
		return
	}

	requirements := parsing.ParseJobDescription(s.dict, job.Description)
	s.jsonResponse(w, http.StatusOK, requirements)
}

// handleRescoreJob recomputes the score of every stored resume against
// the job.
func (s *Server) handleRescoreJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	count, err := s.engine.RescoreJob(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]int{"rescored": count})
}

// loadJob resolves the job named by the path or writes the error response.
func (s *Server) loadJob(w http.ResponseWriter, r *http.Request) (*db.Job, bool) {
	id, err := pathID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	job, err := s.store.GetJob(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load job")
		return nil, false
	}
	if job == nil {
		nf := &JobNotFoundError{ID: id}
		s.errorResponse(w, HTTPStatus(nf), nf.Error())
		return nil, false
	}
	return job, true
}

func jobResponse(j *db.Job) JobResponse {
	return JobResponse{
		ID:              j.ID.String(),
		Title:           j.Title,
		Description:     j.Description,
		Skills:          j.Skills,
		ExperienceLevel: j.ExperienceLevel,
		CreatedAt:       j.CreatedAt.Format(time.RFC3339),
	}
}
