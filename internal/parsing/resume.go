// Package parsing derives structured signals from résumé and job
// description text: skills, education entries, and experience requirements.
package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/ats-analyzer/internal/skills"
	"github.com/jonathan/ats-analyzer/internal/types"
)

// educationKeywords marks a résumé line as an education entry when any of
// them appears as a case-insensitive substring.
var educationKeywords = []string{
	"bachelor", "master", "phd", "doctorate", "degree", "diploma",
	"university", "college", "education", "bsc", "msc", "mba", "ba", "ma",
}

const (
	minEducationLineLen = 5
	maxEducationLineLen = 200
	maxEducationEntries = 5
)

// resumeYearsRe captures "N years of experience" style statements, accepting
// yr/yrs variants, an optional trailing '+', and "exp" for "experience".
var resumeYearsRe = regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?|yr)\s*(?:of\s*)?(?:experience|exp)`)

// experienceMentionRe detects any mention of experience at all, used as the
// lossy fallback signal when no year count is stated.
var experienceMentionRe = regexp.MustCompile(`(?i)experience`)

// ExtractResume runs all résumé extractors over normalized text. targets,
// when non-nil, is the job's declared skill list; targets found in the text
// are recorded under their own names in addition to dictionary skills.
func ExtractResume(dict *skills.Dictionary, text string, targets []types.Skill) types.ResumeExtract {
	return types.ResumeExtract{
		Skills:     ExtractResumeSkills(dict, text, targets),
		Education:  ExtractEducation(text),
		Experience: ExtractExperience(text),
	}
}

// ExtractResumeSkills returns the skills found in résumé text: any supplied
// target skill whose synonyms appear (kept under the target's name), plus
// every dictionary skill whose synonyms appear. The result has no duplicates
// and is never nil.
func ExtractResumeSkills(dict *skills.Dictionary, text string, targets []types.Skill) []string {
	lowered := strings.ToLower(text)
	found := make([]string, 0)
	seen := make(map[string]bool)

	for _, target := range targets {
		if seen[target.Name] {
			continue
		}
		if dict.ContainsSkill(lowered, target.Name) {
			found = append(found, target.Name)
			seen[target.Name] = true
		}
	}

	for _, name := range dict.FindAll(lowered) {
		if !seen[name] {
			found = append(found, name)
			seen[name] = true
		}
	}

	return found
}

// ExtractEducation scans text line by line and keeps trimmed lines that
// mention an education keyword, are between 5 and 200 characters exclusive,
// capped at 5 entries in document order.
func ExtractEducation(text string) []string {
	education := make([]string, 0, maxEducationEntries)

	for _, line := range strings.Split(text, "\n") {
		lowered := strings.ToLower(line)
		matched := false
		for _, keyword := range educationKeywords {
			if strings.Contains(lowered, keyword) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		trimmed := strings.TrimSpace(line)
		if len(trimmed) > minEducationLineLen && len(trimmed) < maxEducationLineLen {
			education = append(education, trimmed)
			if len(education) == maxEducationEntries {
				break
			}
		}
	}

	return education
}

// ExtractExperience reduces a résumé's experience to a display string:
// "<N> years" from the first year-count statement, "Experience mentioned"
// when the word appears without a count, "" otherwise. The scoring engine
// re-parses this for the number.
func ExtractExperience(text string) string {
	if m := resumeYearsRe.FindStringSubmatch(text); m != nil {
		return m[1] + " years"
	}
	if experienceMentionRe.MatchString(text) {
		return "Experience mentioned"
	}
	return ""
}
