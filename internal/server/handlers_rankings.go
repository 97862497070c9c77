package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/ats-analyzer/internal/db"
)

// handleRankings returns the ranked candidate list for a job, optionally
// filtered by score range and skills.
func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "job_id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := s.store.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load job")
		return
	}
	if job == nil {
		nf := &JobNotFoundError{ID: jobID}
		s.errorResponse(w, HTTPStatus(nf), nf.Error())
		return
	}

	filters, err := rankingFilters(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := s.store.JobRankings(r.Context(), jobID, filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load rankings")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"job_id":   jobID.String(),
		"rankings": entries,
	})
}

// rankingFilters parses the optional query parameters.
func rankingFilters(r *http.Request) (db.RankingFilters, error) {
	var filters db.RankingFilters
	query := r.URL.Query()

	if raw := query.Get("min_score"); raw != "" {
		min, err := parseScoreBound("min_score", raw)
		if err != nil {
			return filters, err
		}
		filters.MinScore = &min
	}
	if raw := query.Get("max_score"); raw != "" {
		max, err := parseScoreBound("max_score", raw)
		if err != nil {
			return filters, err
		}
		filters.MaxScore = &max
	}
	if raw := query.Get("skills"); raw != "" {
		for _, skill := range strings.Split(raw, ",") {
			if skill = strings.TrimSpace(skill); skill != "" {
				filters.Skills = append(filters.Skills, skill)
			}
		}
	}

	return filters, nil
}

func parseScoreBound(name, raw string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 || value > 100 {
		return 0, &ValidationError{Message: name + " must be an integer between 0 and 100"}
	}
	return value, nil
}
