package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceRecord_WireFormat(t *testing.T) {
	jsonInput := `{
		"profileId": "persona_007",
		"conceptId": "concept_002",
		"preference": 8,
		"innovativeness": 6,
		"differentiation": 7,
		"reasoning": "I think this fits how I already shop."
	}`

	var rec PreferenceRecord
	require.NoError(t, json.Unmarshal([]byte(jsonInput), &rec))
	assert.Equal(t, "persona_007", rec.ProfileID)
	assert.Equal(t, "concept_002", rec.ConceptID)
	assert.Equal(t, 8, rec.Preference)
	assert.Equal(t, 6, rec.Innovativeness)
	assert.Equal(t, 7, rec.Differentiation)
	assert.Equal(t, "I think this fits how I already shop.", rec.Reasoning)
}

func TestAnalysisSummary_WireFormat(t *testing.T) {
	s := AnalysisSummary{
		AveragePreference:      6.5,
		AverageInnovativeness:  5.25,
		AverageDifferentiation: 7.0,
		TopPerformingConcept:   "Solar Backpack",
		Insights:               []string{"Urban consumers score innovation higher."},
	}

	jsonBytes, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"averagePreference":6.5`)
	assert.Contains(t, string(jsonBytes), `"topPerformingConcept":"Solar Backpack"`)
}
