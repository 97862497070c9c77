package schemas

import (
	"fmt"
	"os"
)

// skillDictionarySchema constrains custom skill dictionary files: an object
// mapping canonical skill names to non-empty lists of surface forms.
const skillDictionarySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Skill Dictionary",
  "type": "object",
  "minProperties": 1,
  "propertyNames": {
    "minLength": 1
  },
  "additionalProperties": {
    "type": "array",
    "minItems": 1,
    "items": {
      "type": "string",
      "minLength": 1
    }
  }
}`

// ValidateSkillDictionary checks that the file at path is a structurally
// valid skill dictionary before it is loaded.
func ValidateSkillDictionary(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read skill dictionary: %w", err)
	}
	return ValidateJSONString(skillDictionarySchema, string(data))
}
