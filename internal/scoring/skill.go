package scoring

import (
	"math"

	"github.com/jonathan/ats-analyzer/internal/skills"
	"github.com/jonathan/ats-analyzer/internal/types"
)

// SkillScore computes the weighted skill sub-score in [0,100]. An empty job
// skill list scores 100: no requirement means full credit. Otherwise the
// score is the matched share of the total weight, where a job skill counts
// as matched when any résumé skill matches it under the dictionary.
func SkillScore(dict *skills.Dictionary, jobSkills []types.Skill, resumeSkills []string) int {
	if len(jobSkills) == 0 {
		return 100
	}

	totalWeight := 0
	matchedWeight := 0
	for _, js := range jobSkills {
		weight := js.Weight
		if weight <= 0 {
			weight = 1
		}
		totalWeight += weight
		if anyMatch(dict, resumeSkills, js.Name) {
			matchedWeight += weight
		}
	}

	if totalWeight == 0 {
		return 100
	}
	return int(math.Round(float64(matchedWeight) / float64(totalWeight) * 100))
}

// MatchSkills partitions the job's skill list into matched and missing
// names. The two lists are disjoint and together cover every job skill.
func MatchSkills(dict *skills.Dictionary, jobSkills []types.Skill, resumeSkills []string) (matched, missing []string) {
	matched = make([]string, 0, len(jobSkills))
	missing = make([]string, 0)

	for _, js := range jobSkills {
		if anyMatch(dict, resumeSkills, js.Name) {
			matched = append(matched, js.Name)
		} else {
			missing = append(missing, js.Name)
		}
	}
	return matched, missing
}

func anyMatch(dict *skills.Dictionary, resumeSkills []string, jobSkill string) bool {
	for _, rs := range resumeSkills {
		if dict.Matches(rs, jobSkill) {
			return true
		}
	}
	return false
}
