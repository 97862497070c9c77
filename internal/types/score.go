package types

import "github.com/google/uuid"

// ScoreBreakdown records the weights used to combine sub-scores into the
// final score, as integer percentages.
type ScoreBreakdown struct {
	SkillWeight      int `json:"skill_weight"`
	ExperienceWeight int `json:"experience_weight"`
	EducationWeight  int `json:"education_weight"`
}

// DefaultBreakdown is the 60/25/15 weighting applied to every score.
func DefaultBreakdown() ScoreBreakdown {
	return ScoreBreakdown{SkillWeight: 60, ExperienceWeight: 25, EducationWeight: 15}
}

// ScoreRecord is the result of scoring one résumé, either against a job's
// requirements or standalone. All scores are in [0,100]. MatchedSkills and
// MissingSkills are disjoint and together cover the job's skill list.
// At most one ScoreRecord exists per résumé; recomputation overwrites it.
type ScoreRecord struct {
	ResumeID        uuid.UUID      `json:"resume_id"`
	JobID           *uuid.UUID     `json:"job_id,omitempty"`
	SkillScore      int            `json:"skill_score"`
	ExperienceScore int            `json:"experience_score"`
	EducationScore  int            `json:"education_score"`
	FinalScore      int            `json:"final_score"`
	MatchedSkills   []string       `json:"matched_skills"`
	MissingSkills   []string       `json:"missing_skills"`
	Breakdown       ScoreBreakdown `json:"score_breakdown"`
}
