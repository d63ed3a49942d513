package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariana/concept-panel/internal/types"
)

var testConcepts = []types.Concept{
	{ID: "c1", Title: "Solar Backpack"},
	{ID: "c2", Title: "Budget Blender"},
	{ID: "c3", Title: "Smart Mirror"},
}

func rec(profile, concept string, pref, innov, diff int) types.PreferenceRecord {
	return types.PreferenceRecord{
		ProfileID:       profile,
		ConceptID:       concept,
		Preference:      pref,
		Innovativeness:  innov,
		Differentiation: diff,
	}
}

func TestSummarize_Means(t *testing.T) {
	records := []types.PreferenceRecord{
		rec("p1", "c1", 8, 6, 4),
		rec("p2", "c1", 6, 4, 6),
		rec("p1", "c2", 4, 8, 8),
		rec("p2", "c2", 2, 2, 2),
	}

	summary, err := Summarize(testConcepts, records, []string{"an insight"})
	require.NoError(t, err)

	assert.InDelta(t, 5.0, summary.AveragePreference, 1e-9)
	assert.InDelta(t, 5.0, summary.AverageInnovativeness, 1e-9)
	assert.InDelta(t, 5.0, summary.AverageDifferentiation, 1e-9)
	assert.Equal(t, "Solar Backpack", summary.TopPerformingConcept)
	assert.Equal(t, []string{"an insight"}, summary.Insights)
}

func TestSummarize_TopPerformerSkipsEmptyConcepts(t *testing.T) {
	// c3 has no records and must not enter the comparison even though a
	// naive 0/0 division would rank it with NaN.
	records := []types.PreferenceRecord{
		rec("p1", "c2", 9, 5, 5),
	}

	summary, err := Summarize(testConcepts, records, nil)
	require.NoError(t, err)
	assert.Equal(t, "Budget Blender", summary.TopPerformingConcept)
}

func TestSummarize_TieResolvesToFirstSubmitted(t *testing.T) {
	records := []types.PreferenceRecord{
		rec("p1", "c1", 7, 5, 5),
		rec("p1", "c2", 7, 5, 5),
	}

	summary, err := Summarize(testConcepts, records, nil)
	require.NoError(t, err)
	assert.Equal(t, "Solar Backpack", summary.TopPerformingConcept)
}

func TestSummarize_NoData(t *testing.T) {
	_, err := Summarize(testConcepts, nil, nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestConceptAverages(t *testing.T) {
	records := []types.PreferenceRecord{
		rec("p1", "c1", 10, 8, 6),
		rec("p2", "c1", 4, 2, 2),
	}

	averages := ConceptAverages(testConcepts, records)
	require.Len(t, averages, 3)

	assert.Equal(t, 2, averages[0].Records)
	assert.InDelta(t, 7.0, averages[0].Preference, 1e-9)
	assert.InDelta(t, 5.0, averages[0].Innovativeness, 1e-9)
	assert.InDelta(t, 4.0, averages[0].Differentiation, 1e-9)

	assert.Equal(t, 0, averages[1].Records)
	assert.Equal(t, 0, averages[2].Records)
}
