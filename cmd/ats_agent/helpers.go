package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/ats-analyzer/internal/schemas"
	"github.com/jonathan/ats-analyzer/internal/skills"
)

// loadDictionary returns the embedded dictionary, or a validated custom one
// when a path is given.
func loadDictionary(path string) (*skills.Dictionary, error) {
	if path == "" {
		return skills.Default(), nil
	}
	if err := schemas.ValidateSkillDictionary(path); err != nil {
		return nil, fmt.Errorf("invalid skill dictionary: %w", err)
	}
	dict, err := skills.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load skill dictionary: %w", err)
	}
	return dict, nil
}

// writeJSON marshals v with indentation and writes it to the given path, or
// to stdout when the path is empty.
func writeJSON(path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if path == "" {
		_, err = fmt.Fprintln(os.Stdout, string(jsonBytes))
		return err
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
