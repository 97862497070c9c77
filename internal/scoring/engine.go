// Package scoring combines résumé-side and job-side extractions into
// weighted compatibility scores.
package scoring

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jonathan/ats-analyzer/internal/db"
	"github.com/jonathan/ats-analyzer/internal/parsing"
	"github.com/jonathan/ats-analyzer/internal/skills"
	"github.com/jonathan/ats-analyzer/internal/types"
)

// ResumeStore is the résumé persistence surface the engine needs.
// Lookups return (nil, nil) when no record exists.
type ResumeStore interface {
	GetResume(ctx context.Context, id uuid.UUID) (*db.Resume, error)
	ListResumeIDs(ctx context.Context) ([]uuid.UUID, error)
	MarkResumeScored(ctx context.Context, id uuid.UUID) error
}

// JobStore is the job persistence surface the engine needs.
type JobStore interface {
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
}

// ScoreStore persists score records, keeping at most one per résumé.
type ScoreStore interface {
	SaveOrReplace(ctx context.Context, rec *types.ScoreRecord) error
}

// Engine scores résumés against job requirements. All scoring math is pure;
// the stores are touched only to load inputs and persist the result.
type Engine struct {
	dict    *skills.Dictionary
	resumes ResumeStore
	jobs    JobStore
	scores  ScoreStore
}

// NewEngine builds an engine around a skill dictionary and the three stores.
func NewEngine(dict *skills.Dictionary, resumes ResumeStore, jobs JobStore, scores ScoreStore) *Engine {
	return &Engine{dict: dict, resumes: resumes, jobs: jobs, scores: scores}
}

// CalculateScore scores a résumé against a persisted job. The job's weighted
// skill list and experience level drive the skill and experience sub-scores;
// education is scored by the candidate's highest detected level since
// persisted jobs carry no education requirement. The resulting record
// replaces any prior score for the résumé.
func (e *Engine) CalculateScore(ctx context.Context, resumeID, jobID uuid.UUID) (*types.ScoreRecord, error) {
	resume, err := e.resumes.GetResume(ctx, resumeID)
	if err != nil {
		return nil, fmt.Errorf("load resume: %w", err)
	}
	if resume == nil {
		return nil, ErrResumeNotFound
	}

	job, err := e.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("load job: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	rec := e.score(resume, job.Skills, types.YearsForLevel(job.ExperienceLevel), "")
	rec.JobID = &job.ID

	if err := e.persist(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ScoreAgainstDescription scores a résumé against a free-text job
// description. The requirements are re-extracted from the text on every
// call; all extracted skills carry weight 1. A parsed education requirement
// switches the education sub-score to the compatibility table.
func (e *Engine) ScoreAgainstDescription(ctx context.Context, resumeID uuid.UUID, description string) (*types.ScoreRecord, error) {
	resume, err := e.resumes.GetResume(ctx, resumeID)
	if err != nil {
		return nil, fmt.Errorf("load resume: %w", err)
	}
	if resume == nil {
		return nil, ErrResumeNotFound
	}

	req := parsing.ParseJobDescription(e.dict, description)

	requiredYears := 0
	if req.ExperienceYears != nil {
		requiredYears = *req.ExperienceYears
	} else {
		requiredYears = types.YearsForLevel(req.ExperienceLevel)
	}

	rec := e.score(resume, types.SkillsFromNames(req.Skills), requiredYears, req.Education)

	if err := e.persist(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// score runs the three sub-scores and assembles the record. requiredEducation
// may be empty, meaning no requirement.
func (e *Engine) score(resume *db.Resume, jobSkills []types.Skill, requiredYears int, requiredEducation string) *types.ScoreRecord {
	skillScore := SkillScore(e.dict, jobSkills, resume.ExtractedSkills)
	experienceScore := ExperienceScore(requiredYears, resume.ExtractedExperience, resume.ParsedText)
	educationScore := EducationScore(resume.ExtractedEducation, requiredEducation)

	matched, missing := MatchSkills(e.dict, jobSkills, resume.ExtractedSkills)
	breakdown := types.DefaultBreakdown()

	return &types.ScoreRecord{
		ResumeID:        resume.ID,
		SkillScore:      skillScore,
		ExperienceScore: experienceScore,
		EducationScore:  educationScore,
		FinalScore:      FinalScore(skillScore, experienceScore, educationScore, breakdown),
		MatchedSkills:   matched,
		MissingSkills:   missing,
		Breakdown:       breakdown,
	}
}

func (e *Engine) persist(ctx context.Context, rec *types.ScoreRecord) error {
	if err := e.scores.SaveOrReplace(ctx, rec); err != nil {
		return fmt.Errorf("save score: %w", err)
	}
	if err := e.resumes.MarkResumeScored(ctx, rec.ResumeID); err != nil {
		return fmt.Errorf("mark resume scored: %w", err)
	}
	return nil
}

// FinalScore combines the three sub-scores under the given weights. With
// sub-scores in [0,100] the result is also in [0,100].
func FinalScore(skill, experience, education int, b types.ScoreBreakdown) int {
	weighted := float64(skill)*float64(b.SkillWeight)/100 +
		float64(experience)*float64(b.ExperienceWeight)/100 +
		float64(education)*float64(b.EducationWeight)/100
	return int(math.Round(weighted))
}
