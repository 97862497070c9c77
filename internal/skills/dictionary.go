// Package skills provides the skill synonym dictionary and the matching
// rules shared by résumé extraction, job description extraction, and scoring.
package skills

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

//go:embed dictionary.json
var defaultTable []byte

// normalizeRe strips everything except lowercase alphanumerics, '+' and '#'.
// '+' and '#' are kept so tokens like "c++" and "c#" survive normalization.
var normalizeRe = regexp.MustCompile(`[^a-z0-9+#]`)

// NormalizeSkillName canonicalizes a free-text skill token for matching:
// lowercase, trimmed, with all characters outside [a-z0-9+#] removed.
func NormalizeSkillName(token string) string {
	return normalizeRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(token)), "")
}

// Dictionary is an immutable mapping from canonical skill names to their
// known surface forms. It is constructed once at startup and passed by
// reference into extractors and the scoring engine; it is never mutated
// after construction.
type Dictionary struct {
	keys     []string                    // canonical keys, sorted for deterministic iteration
	surface  map[string][]string         // canonical key -> raw surface forms
	synonyms map[string][]string         // normalized key -> normalized synonym set
	patterns map[string][]*regexp.Regexp // canonical key -> word-boundary patterns per surface form
}

// New builds a Dictionary from a canonical-name -> surface-forms table.
// Surface forms containing regexp metacharacters (e.g. "c++") are quoted
// before the word-boundary patterns are compiled.
func New(table map[string][]string) (*Dictionary, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("skill table is empty")
	}

	d := &Dictionary{
		surface:  make(map[string][]string, len(table)),
		synonyms: make(map[string][]string, len(table)),
		patterns: make(map[string][]*regexp.Regexp, len(table)),
	}

	for key, forms := range table {
		if key == "" || len(forms) == 0 {
			return nil, fmt.Errorf("skill %q has no surface forms", key)
		}

		d.keys = append(d.keys, key)
		d.surface[key] = forms

		normalized := make([]string, 0, len(forms))
		seen := make(map[string]bool, len(forms))
		for _, form := range forms {
			n := NormalizeSkillName(form)
			if n != "" && !seen[n] {
				normalized = append(normalized, n)
				seen[n] = true
			}

			pattern, err := compileWordBoundary(form)
			if err != nil {
				return nil, fmt.Errorf("skill %q: %w", key, err)
			}
			d.patterns[key] = append(d.patterns[key], pattern)
		}
		d.synonyms[NormalizeSkillName(key)] = normalized
	}

	sort.Strings(d.keys)
	return d, nil
}

// Default returns the built-in dictionary. It panics only if the embedded
// table is corrupt, which is a build defect.
func Default() *Dictionary {
	d, err := parseTable(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("embedded skill dictionary is invalid: %v", err))
	}
	return d
}

// Load reads a synonym table from a JSON file and builds a Dictionary.
// The file holds a single object mapping canonical names to surface-form
// arrays, the same shape as the embedded default.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read skill dictionary %s: %w", path, err)
	}
	d, err := parseTable(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse skill dictionary %s: %w", path, err)
	}
	return d, nil
}

func parseTable(data []byte) (*Dictionary, error) {
	var table map[string][]string
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	return New(table)
}

// compileWordBoundary compiles a case-insensitive word-boundary pattern for
// a literal surface form.
func compileWordBoundary(form string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\b` + regexp.QuoteMeta(strings.ToLower(form)) + `\b`)
}

// Keys returns the canonical skill names, sorted.
func (d *Dictionary) Keys() []string {
	return d.keys
}

// SurfaceForms returns the raw surface forms registered for a canonical key,
// or nil when the key is unknown.
func (d *Dictionary) SurfaceForms(key string) []string {
	return d.surface[key]
}

// SynonymsOf returns the normalized synonym set for a term. Terms not in the
// dictionary fall back to the singleton set of their own normalized form, so
// two unknown but textually different terms never match.
func (d *Dictionary) SynonymsOf(term string) []string {
	n := NormalizeSkillName(term)
	if syns, ok := d.synonyms[n]; ok {
		return syns
	}
	return []string{n}
}

// Matches reports whether two skill mentions denote the same skill: their
// normalized forms are equal, or their synonym sets intersect.
func (d *Dictionary) Matches(a, b string) bool {
	na, nb := NormalizeSkillName(a), NormalizeSkillName(b)
	if na == nb {
		return true
	}

	synsB := d.SynonymsOf(b)
	for _, sa := range d.SynonymsOf(a) {
		for _, sb := range synsB {
			if sa == sb {
				return true
			}
		}
	}
	return false
}

// FindAll scans text for every dictionary skill, testing each surface form
// with a word-boundary match. It returns the canonical names found, in
// sorted key order so repeated calls on the same text are identical.
func (d *Dictionary) FindAll(text string) []string {
	found := make([]string, 0)
	for _, key := range d.keys {
		for _, pattern := range d.patterns[key] {
			if pattern.MatchString(text) {
				found = append(found, key)
				break
			}
		}
	}
	return found
}

// ContainsSkill reports whether any surface form of the given skill appears
// in text on a word boundary. Unknown skills are matched by their own name.
func (d *Dictionary) ContainsSkill(text, skill string) bool {
	if patterns, ok := d.patterns[skill]; ok {
		for _, pattern := range patterns {
			if pattern.MatchString(text) {
				return true
			}
		}
		return false
	}

	// Target skills outside the dictionary: match the literal name, plus any
	// synonym set registered under the normalized form.
	for _, form := range d.formsFor(skill) {
		pattern, err := compileWordBoundary(form)
		if err != nil {
			continue
		}
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// formsFor resolves the surface forms to scan for an arbitrary skill name:
// the registered surface forms when the normalized name is a dictionary
// entry, otherwise the name itself.
func (d *Dictionary) formsFor(skill string) []string {
	n := NormalizeSkillName(skill)
	for _, key := range d.keys {
		if NormalizeSkillName(key) == n {
			return d.surface[key]
		}
	}
	return []string{skill}
}

// Len returns the number of canonical entries.
func (d *Dictionary) Len() int {
	return len(d.keys)
}
