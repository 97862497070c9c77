package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/ats-analyzer/internal/skills"
	"github.com/jonathan/ats-analyzer/internal/types"
)

// MinDescriptionLength is the shortest job description text that carries
// enough signal to extract from. Callers validate this at the API boundary;
// the extractor itself degrades to all-empty results for shorter input
// instead of failing.
const MinDescriptionLength = 30

// DefaultRequirementClass is the classification applied to a skill mention
// that carries neither a required nor a preferred marker. Defaulting to
// "required" deliberately over-counts requirements rather than under-counting
// them.
const DefaultRequirementClass = "required"

const (
	minSkillTokenLen = 3
	maxSkillTokenLen = 29

	minResponsibilityLen = 10
	maxResponsibilityLen = 199
	maxResponsibilities  = 10
)

// requiredMarker and preferredMarker classify a skill mention by the phrase
// preceding it somewhere in the text.
const (
	requiredMarker  = `(?:required|must have|essential|mandatory)`
	preferredMarker = `(?:preferred|nice to have|plus|bonus)`
)

// experienceLevelPatterns are checked in priority order; the first match
// wins.
var experienceLevelPatterns = []struct {
	level   string
	pattern *regexp.Regexp
}{
	{types.LevelEntry, regexp.MustCompile(`(?i)entry[\s-]?level|junior|0[\s-]?2\s*years|fresh|graduate`)},
	{types.LevelMid, regexp.MustCompile(`(?i)mid[\s-]?level|intermediate|2[\s-]?5\s*years|3[\s-]?5\s*years`)},
	{types.LevelSenior, regexp.MustCompile(`(?i)senior|5[\s+]?\s*years|5\+|lead|principal`)},
	{types.LevelExecutive, regexp.MustCompile(`(?i)executive|director|vp|vice[\s-]?president|10\+|10[\s+]?\s*years`)},
}

var (
	// yearsWithExpRe: "5+ years of experience", "3 yrs exp"
	yearsWithExpRe = regexp.MustCompile(`(?i)(\d+)[\s-]?\+?\s*(?:years?|yrs?|yr)\s*(?:of\s*)?(?:experience|exp)`)
	// minimumYearsRe: "minimum of 4 years", "at least 2 yrs"
	minimumYearsRe = regexp.MustCompile(`(?i)(?:minimum of|minimum|at least)\s*(\d+)\s*(?:years?|yrs?)`)
	// yearRangeRe: "3-5 years"; the upper bound is kept
	yearRangeRe = regexp.MustCompile(`(?i)(\d+)[\s-](\d+)\s*years`)
)

// educationPatterns are checked in order from highest to lowest level; the
// first match wins.
var educationPatterns = []struct {
	level   string
	pattern *regexp.Regexp
}{
	{types.EducationPhD, regexp.MustCompile(`(?i)ph\.?d\.?|doctorate|doctoral`)},
	{types.EducationMaster, regexp.MustCompile(`(?i)master['s]?|m\.?s\.?|m\.?a\.?|mba|msc`)},
	{types.EducationBachelor, regexp.MustCompile(`(?i)bachelor['s]?|b\.?s\.?|b\.?a\.?|bsc|degree`)},
	{types.EducationDiploma, regexp.MustCompile(`(?i)diploma|certificate`)},
}

// requirementSectionRes pick out "Requirements:", "Skills:", "Experience
// with:" style lines whose remainder is a delimited skill list.
var requirementSectionRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:required|must have|essential|mandatory|skills?|technologies?|proficiency in)[:\s]+([^.]+)`),
	regexp.MustCompile(`(?i)(?:experience with|knowledge of|familiarity with)[:\s]+([^.]+)`),
}

// skillTokenSplitRe splits a requirement line into candidate skill tokens.
var skillTokenSplitRe = regexp.MustCompile(`[,;•\-\n]`)

// importantKeywords is the fixed vocabulary scanned for job keywords.
var importantKeywords = []string{
	"agile", "scrum", "ci/cd", "devops", "microservices", "api", "rest", "graphql",
	"cloud", "aws", "azure", "gcp", "docker", "kubernetes", "testing", "tdd", "bdd",
	"leadership", "mentoring", "team", "collaboration", "communication", "problem solving",
}

// toolKeywords is the fixed vocabulary scanned for tools and technologies.
var toolKeywords = []string{
	"jira", "confluence", "slack", "github", "gitlab", "jenkins", "docker", "kubernetes",
	"aws", "azure", "gcp", "terraform", "ansible", "chef", "puppet", "vagrant",
	"postman", "swagger", "graphql", "rest", "soap", "microservices", "api",
	"ci/cd", "devops", "agile", "scrum", "kanban", "trello",
}

// responsibilityRes pull out responsibility statements: marker-introduced
// lines and bullet-prefixed lines.
var responsibilityRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:you will|key responsibilities?|responsibilities?|duties?)[:\s]+([^.]+)`),
	regexp.MustCompile(`(?:•|[-*])\s*([^.]+)`),
}

// ParseJobDescription extracts the complete requirement set from free-text
// job description text. It is pure and deterministic, performs no I/O, and
// never fails: input shorter than MinDescriptionLength yields a result with
// every container empty.
func ParseJobDescription(dict *skills.Dictionary, text string) types.JobRequirements {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < MinDescriptionLength {
		return types.EmptyJobRequirements()
	}

	lowered := strings.ToLower(trimmed)

	required, preferred := extractJobSkills(dict, lowered)
	experience := extractExperienceRequirement(lowered)
	req := types.JobRequirements{
		Skills:           mergeSkillLists(required, preferred),
		RequiredSkills:   required,
		PreferredSkills:  preferred,
		ExperienceLevel:  experience.Level,
		ExperienceYears:  experience.Years,
		Education:        extractEducationRequirement(lowered),
		Keywords:         scanVocabulary(lowered, importantKeywords),
		Tools:            scanVocabulary(lowered, toolKeywords),
		Responsibilities: extractResponsibilities(trimmed),
	}
	return req
}

// extractJobSkills classifies every dictionary skill found in the text as
// required or preferred. A mention with no marker nearby falls into
// DefaultRequirementClass. Requirement-section lines are additionally folded
// in, matching dictionary skills where possible and keeping unknown tokens
// raw.
func extractJobSkills(dict *skills.Dictionary, text string) (required, preferred []string) {
	required = make([]string, 0)
	preferred = make([]string, 0)
	seen := make(map[string]bool)

	for _, key := range dict.Keys() {
		if seen[key] {
			continue
		}
		for _, form := range dict.SurfaceForms(key) {
			quoted := regexp.QuoteMeta(strings.ToLower(form))
			presentRe := regexp.MustCompile(`(?i)\b` + quoted + `\b`)
			if !presentRe.MatchString(text) {
				continue
			}

			requiredRe := regexp.MustCompile(`(?i)` + requiredMarker + `.*?` + quoted)
			preferredRe := regexp.MustCompile(`(?i)` + preferredMarker + `.*?` + quoted)
			switch {
			case requiredRe.MatchString(text):
				required = append(required, key)
			case preferredRe.MatchString(text):
				preferred = append(preferred, key)
			default:
				// DefaultRequirementClass
				required = append(required, key)
			}
			seen[key] = true
			break
		}
	}

	for _, re := range requirementSectionRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			for _, token := range skillTokenSplitRe.Split(m[1], -1) {
				clean := strings.ToLower(strings.TrimSpace(token))
				if len(clean) < minSkillTokenLen || len(clean) > maxSkillTokenLen {
					continue
				}

				name := matchKnownSkill(dict, clean)
				if name == "" {
					name = clean
				}
				if !seen[name] {
					required = append(required, name)
					seen[name] = true
				}
			}
		}
	}

	return required, preferred
}

// matchKnownSkill resolves a free token to a dictionary skill when the token
// contains one of its surface forms or vice versa. Returns "" when no entry
// matches.
func matchKnownSkill(dict *skills.Dictionary, token string) string {
	for _, key := range dict.Keys() {
		for _, form := range dict.SurfaceForms(key) {
			lowerForm := strings.ToLower(form)
			if strings.Contains(token, lowerForm) || strings.Contains(lowerForm, token) {
				return key
			}
		}
	}
	return ""
}

// mergeSkillLists flattens required and preferred skills into one list:
// required first, preferred skills not already present appended.
func mergeSkillLists(required, preferred []string) []string {
	merged := make([]string, 0, len(required)+len(preferred))
	seen := make(map[string]bool, len(required))
	for _, s := range required {
		merged = append(merged, s)
		seen[s] = true
	}
	for _, s := range preferred {
		if !seen[s] {
			merged = append(merged, s)
		}
	}
	return merged
}

// extractExperienceRequirement infers the job's experience level and year
// count. Level keywords are checked entry through executive, first match
// wins; the year count is extracted independently, keeping the upper bound
// of ranges. When only a year count is found, the level is derived by
// bucketing it.
func extractExperienceRequirement(text string) types.ExperienceSignal {
	var signal types.ExperienceSignal

	for _, lp := range experienceLevelPatterns {
		if lp.pattern.MatchString(text) {
			signal.Level = lp.level
			break
		}
	}

	if m := yearsWithExpRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			signal.Years = &n
		}
	} else if m := minimumYearsRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			signal.Years = &n
		}
	} else if m := yearRangeRe.FindStringSubmatch(text); m != nil {
		low, errLow := strconv.Atoi(m[1])
		high, errHigh := strconv.Atoi(m[2])
		if errLow == nil && errHigh == nil {
			n := max(low, high)
			signal.Years = &n
		}
	}

	if signal.Level == "" && signal.Years != nil {
		signal.Level = types.LevelForYears(*signal.Years)
	}

	return signal
}

// extractEducationRequirement returns the minimum education level the text
// asks for, or "" when none is mentioned.
func extractEducationRequirement(text string) string {
	for _, ep := range educationPatterns {
		if ep.pattern.MatchString(text) {
			return ep.level
		}
	}
	return ""
}

// scanVocabulary returns the vocabulary entries present in the text on word
// boundaries, in vocabulary order.
func scanVocabulary(text string, vocabulary []string) []string {
	found := make([]string, 0)
	for _, word := range vocabulary {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
		if re.MatchString(text) {
			found = append(found, word)
		}
	}
	return found
}

// extractResponsibilities collects responsibility statements from marker
// lines and bullets, keeping those between 10 and 199 characters inclusive,
// capped at 10.
func extractResponsibilities(text string) []string {
	responsibilities := make([]string, 0, maxResponsibilities)
	seen := make(map[string]bool)

	for _, re := range responsibilityRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			r := strings.TrimSpace(m[1])
			if len(r) <= minResponsibilityLen || len(r) > maxResponsibilityLen || seen[r] {
				continue
			}
			responsibilities = append(responsibilities, r)
			seen[r] = true
			if len(responsibilities) == maxResponsibilities {
				return responsibilities
			}
		}
	}

	return responsibilities
}
