package types

// Experience level buckets, ordered from least to most senior.
// A level stands in for a numeric years-of-experience requirement
// when a job does not state one explicitly.
const (
	LevelEntry     = "entry"
	LevelMid       = "mid"
	LevelSenior    = "senior"
	LevelExecutive = "executive"
)

// levelYears maps an experience level to the years of experience it implies.
var levelYears = map[string]int{
	LevelEntry:     0,
	LevelMid:       2,
	LevelSenior:    5,
	LevelExecutive: 10,
}

// YearsForLevel returns the years of experience implied by a level.
// Unknown or empty levels imply zero years.
func YearsForLevel(level string) int {
	return levelYears[level]
}

// LevelForYears buckets a year count into an experience level.
func LevelForYears(years int) string {
	switch {
	case years <= 2:
		return LevelEntry
	case years <= 5:
		return LevelMid
	case years <= 10:
		return LevelSenior
	default:
		return LevelExecutive
	}
}

// ExperienceSignal is the experience extraction result for either side of a
// match: a candidate's demonstrated experience or a job's requirement.
// Level is empty when no bucket could be inferred; Years is nil when no
// numeric pattern was found.
type ExperienceSignal struct {
	Level string `json:"level,omitempty"`
	Years *int   `json:"years,omitempty"`
}
