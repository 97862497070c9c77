package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/ats-analyzer/internal/types"
)

// CalculateGeneralScore scores a résumé on its own content, with no job
// requirements in play. Sub-scores reward the sheer presence of signals:
// more skills, any experience mention, any education entry. Every extracted
// skill counts as matched and nothing is missing.
func (e *Engine) CalculateGeneralScore(ctx context.Context, resumeID uuid.UUID) (*types.ScoreRecord, error) {
	resume, err := e.resumes.GetResume(ctx, resumeID)
	if err != nil {
		return nil, fmt.Errorf("load resume: %w", err)
	}
	if resume == nil {
		return nil, ErrResumeNotFound
	}

	skillScore := GeneralSkillScore(len(resume.ExtractedSkills))
	experienceScore := GeneralExperienceScore(resume.ExtractedExperience)
	educationScore := GeneralEducationScore(resume.ExtractedEducation)
	breakdown := types.DefaultBreakdown()

	matched := make([]string, 0, len(resume.ExtractedSkills))
	matched = append(matched, resume.ExtractedSkills...)

	rec := &types.ScoreRecord{
		ResumeID:        resume.ID,
		SkillScore:      skillScore,
		ExperienceScore: experienceScore,
		EducationScore:  educationScore,
		FinalScore:      FinalScore(skillScore, experienceScore, educationScore, breakdown),
		MatchedSkills:   matched,
		MissingSkills:   make([]string, 0),
		Breakdown:       breakdown,
	}

	if err := e.persist(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// GeneralSkillScore maps a skill count to a score: zero skills score 40,
// otherwise 8 points per skill clamped to [50,100].
func GeneralSkillScore(count int) int {
	if count == 0 {
		return 40
	}
	score := count * 8
	if score < 50 {
		return 50
	}
	if score > 100 {
		return 100
	}
	return score
}

// GeneralExperienceScore rewards any experience signal at all.
func GeneralExperienceScore(extractedExp string) int {
	if strings.TrimSpace(extractedExp) != "" {
		return 85
	}
	return 50
}

// GeneralEducationScore rewards any education entry at all.
func GeneralEducationScore(entries []string) int {
	if len(entries) > 0 {
		return 90
	}
	return 50
}
