package types

// JobRequirements is the complete extraction result for one job description.
// It is derived purely from the description text and carries no identity of
// its own: it is recomputed on every score calculation rather than persisted.
//
// Skills is the flat list the scoring engine consumes: required skills first,
// then preferred skills not already present. RequiredSkills and
// PreferredSkills preserve the classification split for callers that want it;
// the scoring engine itself does not distinguish them.
type JobRequirements struct {
	Skills           []string `json:"skills"`
	RequiredSkills   []string `json:"required_skills"`
	PreferredSkills  []string `json:"preferred_skills"`
	ExperienceLevel  string   `json:"experience_level,omitempty"`
	ExperienceYears  *int     `json:"experience_years,omitempty"`
	Education        string   `json:"education,omitempty"`
	Keywords         []string `json:"keywords"`
	Tools            []string `json:"tools"`
	Responsibilities []string `json:"responsibilities"`
}

// Experience returns the job's experience requirement as a signal.
func (jr *JobRequirements) Experience() ExperienceSignal {
	return ExperienceSignal{Level: jr.ExperienceLevel, Years: jr.ExperienceYears}
}

// EmptyJobRequirements returns a JobRequirements with every container
// initialized and empty. Extraction degrades to this shape for input that is
// too short to carry any signal, so callers never see nil slices.
func EmptyJobRequirements() JobRequirements {
	return JobRequirements{
		Skills:           []string{},
		RequiredSkills:   []string{},
		PreferredSkills:  []string{},
		Keywords:         []string{},
		Tools:            []string{},
		Responsibilities: []string{},
	}
}
