package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// IngestResumeRequest represents the request to ingest a résumé whose text
// was already extracted by an upstream document parser.
type IngestResumeRequest struct {
	CandidateName string   `json:"candidate_name" validate:"required,min=1"`
	Text          string   `json:"text" validate:"required,min=1"`
	TargetSkills  []string `json:"target_skills,omitempty"`
}

// CreateJobRequest represents the request to store a job posting. The
// weighted skill list is optional; when absent, skills are extracted from
// the description.
type CreateJobRequest struct {
	Title           string  `json:"title" validate:"required,min=1"`
	Description     string  `json:"description" validate:"required,min=30"`
	Skills          []Skill `json:"skills,omitempty" validate:"omitempty,dive"`
	ExperienceLevel string  `json:"experience_level,omitempty" validate:"omitempty,oneof=entry mid senior executive"`
}

// ScoreResumeRequest represents the request to score a résumé. With a job id
// the résumé is scored against that job; without one, general scoring
// applies.
type ScoreResumeRequest struct {
	JobID *uuid.UUID `json:"job_id,omitempty"`
}

// ScoreDescriptionRequest represents the request to score a résumé against a
// free-text job description. The minimum length matches what the job
// description extractor needs to produce a meaningful result.
type ScoreDescriptionRequest struct {
	Description string `json:"description" validate:"required,min=30"`
}

// Validate validates the IngestResumeRequest using the validator.
func (r *IngestResumeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ScoreDescriptionRequest using the validator.
func (r *ScoreDescriptionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
