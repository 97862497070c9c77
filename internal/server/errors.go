package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/ats-analyzer/internal/scoring"
)

// ResumeNotFoundError indicates that a resume does not exist
type ResumeNotFoundError struct {
	ID uuid.UUID
}

func (e *ResumeNotFoundError) Error() string {
	return fmt.Sprintf("resume not found: %s", e.ID)
}

// JobNotFoundError indicates that a job does not exist
type JobNotFoundError struct {
	ID uuid.UUID
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job not found: %s", e.ID)
}

// ScoreNotFoundError indicates that a resume has not been scored yet
type ScoreNotFoundError struct {
	ResumeID uuid.UUID
}

func (e *ScoreNotFoundError) Error() string {
	return fmt.Sprintf("no score for resume: %s", e.ResumeID)
}

// ValidationError indicates invalid request input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// HTTPStatus maps an error to an HTTP status code
func HTTPStatus(err error) int {
	var resumeNotFound *ResumeNotFoundError
	var jobNotFound *JobNotFoundError
	var scoreNotFound *ScoreNotFoundError
	var validation *ValidationError

	switch {
	case errors.As(err, &resumeNotFound),
		errors.As(err, &jobNotFound),
		errors.As(err, &scoreNotFound),
		errors.Is(err, scoring.ErrResumeNotFound),
		errors.Is(err, scoring.ErrJobNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
