// Package types provides type definitions for structured data used throughout the ATS analyzer.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Skill represents a job skill requirement with an explicit weight.
// Callers that only have a bare skill name construct one with weight 1
// via NewSkill; there is no string-or-struct duality anywhere in the system.
type Skill struct {
	Name   string `json:"name" validate:"required,min=1"`
	Weight int    `json:"weight" validate:"min=0,max=10"`
}

// NewSkill builds a Skill with the default weight of 1.
func NewSkill(name string) Skill {
	return Skill{Name: name, Weight: 1}
}

// SkillsFromNames converts a list of bare skill names into weighted skills,
// each with the default weight of 1.
func SkillsFromNames(names []string) []Skill {
	skills := make([]Skill, 0, len(names))
	for _, name := range names {
		skills = append(skills, NewSkill(name))
	}
	return skills
}
