// Package aggregate computes summary statistics over completed preference
// analyses.
package aggregate

import (
	"errors"

	"github.com/mariana/concept-panel/internal/types"
)

// ErrNoData indicates aggregation was attempted over an empty record set.
var ErrNoData = errors.New("no preference records to aggregate")

// ConceptAverage holds the per-concept mean scores.
type ConceptAverage struct {
	Concept         types.Concept
	Preference      float64
	Innovativeness  float64
	Differentiation float64
	Records         int
}

// ConceptAverages computes mean scores per concept, in the order the
// concepts were submitted. Concepts with no matching records are returned
// with Records == 0 and zero means.
func ConceptAverages(concepts []types.Concept, records []types.PreferenceRecord) []ConceptAverage {
	averages := make([]ConceptAverage, 0, len(concepts))

	for _, concept := range concepts {
		avg := ConceptAverage{Concept: concept}
		for _, rec := range records {
			if rec.ConceptID != concept.ID {
				continue
			}
			avg.Preference += float64(rec.Preference)
			avg.Innovativeness += float64(rec.Innovativeness)
			avg.Differentiation += float64(rec.Differentiation)
			avg.Records++
		}
		if avg.Records > 0 {
			n := float64(avg.Records)
			avg.Preference /= n
			avg.Innovativeness /= n
			avg.Differentiation /= n
		}
		averages = append(averages, avg)
	}

	return averages
}

// Summarize computes the overall means and the top-performing concept for a
// completed analysis. The top performer is the concept with the highest mean
// preference among its own records; concepts without records are excluded
// from that comparison. Ties resolve to the earlier-submitted concept.
func Summarize(concepts []types.Concept, records []types.PreferenceRecord, insights []string) (*types.AnalysisSummary, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	summary := &types.AnalysisSummary{Insights: insights}

	for _, rec := range records {
		summary.AveragePreference += float64(rec.Preference)
		summary.AverageInnovativeness += float64(rec.Innovativeness)
		summary.AverageDifferentiation += float64(rec.Differentiation)
	}
	n := float64(len(records))
	summary.AveragePreference /= n
	summary.AverageInnovativeness /= n
	summary.AverageDifferentiation /= n

	best := -1.0
	for _, avg := range ConceptAverages(concepts, records) {
		if avg.Records == 0 {
			continue
		}
		if avg.Preference > best {
			best = avg.Preference
			summary.TopPerformingConcept = avg.Concept.Title
		}
	}

	return summary, nil
}
