package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownKeys(t *testing.T) {
	tests := []struct {
		filename string
		key      string
		contains string
	}{
		{"profiles.json", "system", "consumer research analyst"},
		{"profiles.json", "first-batch", "{{.BatchSize}}"},
		{"profiles.json", "continue", "more diverse consumer profiles"},
		{"analysis.json", "system", "method actor"},
		{"analysis.json", "evaluate-concept", "{{.ConceptID}}"},
		{"analysis.json", "persona-block", "{{.PriceSensitivity}}"},
		{"analysis.json", "insights", "5-7 key insights"},
	}

	for _, tt := range tests {
		t.Run(tt.filename+"/"+tt.key, func(t *testing.T) {
			prompt, err := Get(tt.filename, tt.key)
			require.NoError(t, err)
			assert.Contains(t, prompt, tt.contains)
		})
	}
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("profiles.json", "does-not-exist")
	assert.Error(t, err)
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "system")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	template := "Generate exactly {{.BatchSize}} profiles for {{.Genders}}."
	result := Format(template, map[string]string{
		"BatchSize": "10",
		"Genders":   "Female, Male",
	})
	assert.Equal(t, "Generate exactly 10 profiles for Female, Male.", result)
	assert.False(t, strings.Contains(result, "{{"))
}

func TestMustGet_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("profiles.json", "nope")
	})
}
