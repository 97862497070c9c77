package scoring

import (
	"strings"

	"github.com/jonathan/ats-analyzer/internal/types"
)

// EducationScore computes the education sub-score in [0,100]. With no
// required level the candidate's highest detected level is scored on a flat
// table; with one, the compatibility table applies. No education entries at
// all score 30 when a requirement exists and 50 otherwise.
func EducationScore(entries []string, requiredLevel string) int {
	if len(entries) == 0 {
		if requiredLevel != "" {
			return 30
		}
		return 50
	}

	held := candidateEducationLevel(entries)

	if requiredLevel == "" {
		switch held {
		case types.EducationPhD:
			return 100
		case types.EducationMaster:
			return 90
		case types.EducationBachelor:
			return 80
		case types.EducationDiploma:
			return 60
		default:
			return 50
		}
	}

	return educationCompatibility(requiredLevel, held)
}

// candidateEducationLevel derives the highest education level mentioned in
// the candidate's education entries. The short tokens ("ms", "ba", "bs")
// are plain substring checks and match inside longer words too.
func candidateEducationLevel(entries []string) string {
	text := strings.ToLower(strings.Join(entries, " "))

	switch {
	case strings.Contains(text, "phd") || strings.Contains(text, "doctorate"):
		return types.EducationPhD
	case strings.Contains(text, "master") || strings.Contains(text, "mba") || strings.Contains(text, "ms"):
		return types.EducationMaster
	case strings.Contains(text, "bachelor") || strings.Contains(text, "bsc") ||
		strings.Contains(text, "ba") || strings.Contains(text, "bs"):
		return types.EducationBachelor
	case strings.Contains(text, "diploma") || strings.Contains(text, "degree"):
		return types.EducationDiploma
	}
	return ""
}

// educationCompatibility scores a held level against a required one. Meeting
// or exceeding the requirement scores 100, except that a diploma requirement
// grants 80 for any recognized level. One-level shortfalls get partial
// credit; everything else, including an unrecognized held level, gets 40.
func educationCompatibility(required, held string) int {
	heldRank := types.EducationRank(held)

	switch required {
	case types.EducationPhD:
		if held == types.EducationPhD {
			return 100
		}
	case types.EducationMaster:
		if heldRank >= types.EducationRank(types.EducationMaster) {
			return 100
		}
		if held == types.EducationBachelor {
			return 70
		}
	case types.EducationBachelor:
		if heldRank >= types.EducationRank(types.EducationBachelor) {
			return 100
		}
		if held == types.EducationDiploma {
			return 60
		}
	case types.EducationDiploma:
		if heldRank > 0 {
			return 80
		}
	}
	return 40
}
