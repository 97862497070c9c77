package scoring

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	firstIntRe = regexp.MustCompile(`(\d+)`)

	// resumeYearsRes scan the full résumé text when the extracted
	// experience signal carries no number: "7 years of experience",
	// "experience: 4".
	resumeYearsRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?)\s*(?:of\s*)?(?:experience|exp)`),
		regexp.MustCompile(`(?i)experience[:\s]+(\d+)`),
	}
)

// ExperienceScore computes the experience sub-score in [0,100]. Candidate
// years at or above the requirement score 100, as does a zero-year
// requirement. A shortfall earns a proportional score with 20 bonus points,
// capped at 100.
func ExperienceScore(requiredYears int, extractedExp, resumeText string) int {
	candidate := candidateYears(extractedExp, resumeText)

	if candidate >= requiredYears {
		return 100
	}
	if requiredYears == 0 {
		return 100
	}
	percentage := float64(candidate) / float64(requiredYears) * 100
	return int(math.Round(math.Min(100, percentage+20)))
}

// candidateYears takes the first integer embedded in the extracted
// experience string, falling back to a regex scan of the résumé text.
func candidateYears(extractedExp, resumeText string) int {
	if m := firstIntRe.FindStringSubmatch(extractedExp); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}

	lowered := strings.ToLower(resumeText)
	for _, re := range resumeYearsRes {
		m := re.FindStringSubmatch(lowered)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
