// Package parsing extracts structured records from raw completion-provider
// output, which may arrive wrapped in markdown formatting noise.
package parsing

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/mariana/concept-panel/internal/types"
)

// fencedBlock matches a markdown code fence with an optional json language
// tag. Providers often wrap JSON in fences even when instructed not to.
var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// ExtractJSON returns the content of the first fenced code block in text,
// or the trimmed text verbatim when no fence is present.
func ExtractJSON(text string) string {
	if match := fencedBlock.FindStringSubmatch(text); match != nil {
		return strings.TrimSpace(match[1])
	}
	return strings.TrimSpace(text)
}

// Personas parses a provider response into a persona array.
// No field-level validation is performed here; callers apply their own
// validity filter to the result.
func Personas(text string) ([]types.Persona, error) {
	cleaned := ExtractJSON(text)

	var personas []types.Persona
	if err := json.Unmarshal([]byte(cleaned), &personas); err != nil {
		return nil, &ParseError{Message: "invalid persona array", Cause: err}
	}
	if len(personas) == 0 {
		return nil, &ParseError{Message: "empty persona array"}
	}
	return personas, nil
}

// Analyses parses a provider response into a preference-record array.
func Analyses(text string) ([]types.PreferenceRecord, error) {
	cleaned := ExtractJSON(text)

	var records []types.PreferenceRecord
	if err := json.Unmarshal([]byte(cleaned), &records); err != nil {
		return nil, &ParseError{Message: "invalid preference record array", Cause: err}
	}
	if len(records) == 0 {
		return nil, &ParseError{Message: "empty preference record array"}
	}
	return records, nil
}

// Strings parses a provider response into a string array (insight lists).
func Strings(text string) ([]string, error) {
	cleaned := ExtractJSON(text)

	var out []string
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, &ParseError{Message: "invalid string array", Cause: err}
	}
	return out, nil
}
