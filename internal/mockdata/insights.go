package mockdata

import (
	"fmt"
	"math/rand"

	"github.com/mariana/concept-panel/internal/types"
)

// GenerateInsights selects 5-7 distinct insights from a fixed pool,
// lightly parameterized by the size of the analyzed set.
func GenerateInsights(personas []types.Persona, concepts []types.Concept, analyses []types.PreferenceRecord) []string {
	conceptLead := "The analyzed concept"
	if len(concepts) > 1 {
		conceptLead = "The top-performing concept"
	}

	pool := []string{
		fmt.Sprintf("Analysis of %d consumer profiles reveals significant preference variations across different demographic segments.", len(personas)),
		fmt.Sprintf("%s shows strong appeal among tech-savvy consumers aged 25-45.", conceptLead),
		"Environmental consciousness strongly correlates with preference scores for sustainability-focused concepts.",
		"Price-sensitive consumers show lower preference scores for premium-positioned concepts but higher scores for value-oriented messaging.",
		"Urban consumers demonstrate higher innovation scores compared to rural demographics.",
		"Higher education levels correlate with increased appreciation for detailed product specifications and technical features.",
		"Brand loyalty varies significantly across age groups, with older consumers showing stronger loyalty tendencies.",
	}

	numInsights := rand.Intn(3) + 5 // 5-7 insights
	if numInsights > len(pool) {
		numInsights = len(pool)
	}

	// Sample without replacement.
	perm := rand.Perm(len(pool))
	selected := make([]string, 0, numInsights)
	for _, idx := range perm[:numInsights] {
		selected = append(selected, pool[idx])
	}
	return selected
}
