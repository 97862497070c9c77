package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/ats-analyzer/internal/types"
)

// Resume lifecycle states
const (
	ResumeStatusUploaded = "uploaded"
	ResumeStatusScored   = "scored"
)

// Resume is a stored résumé with the signals extracted at ingest time.
type Resume struct {
	ID                  uuid.UUID `json:"id"`
	CandidateName       string    `json:"candidate_name"`
	ParsedText          string    `json:"parsed_text"`
	ExtractedSkills     []string  `json:"extracted_skills"`
	ExtractedEducation  []string  `json:"extracted_education"`
	ExtractedExperience string    `json:"extracted_experience"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Job is a stored job posting. Skills carry explicit weights; the
// description text is kept so requirements can be re-extracted.
type Job struct {
	ID              uuid.UUID     `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Skills          []types.Skill `json:"skills"`
	ExperienceLevel string        `json:"experience_level"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// RankingEntry is one row of a job's candidate ranking, ranked 1-based
// after filtering.
type RankingEntry struct {
	Rank            int       `json:"rank"`
	ResumeID        uuid.UUID `json:"resume_id"`
	CandidateName   string    `json:"candidate_name"`
	FinalScore      int       `json:"final_score"`
	SkillScore      int       `json:"skill_score"`
	ExperienceScore int       `json:"experience_score"`
	EducationScore  int       `json:"education_score"`
	MatchedSkills   []string  `json:"matched_skills"`
	MissingSkills   []string  `json:"missing_skills"`
}

// RankingFilters narrows a ranking query. Score bounds are inclusive; Skills
// keeps entries whose matched skills contain any of the given terms as a
// case-insensitive substring.
type RankingFilters struct {
	MinScore *int
	MaxScore *int
	Skills   []string
}
