package mockdata

import (
	"math"
	"math/rand"
	"strings"

	"github.com/mariana/concept-panel/internal/types"
)

var reasoningTemplates = []string{
	"This consumer's %s lifestyle and %s interests align well with the concept.",
	"Given their %s income level and %s education, they would likely find this appealing.",
	"Their %s shopping behavior and %s price sensitivity influence their response.",
	"As someone with %s environmental awareness, this concept resonates with their values.",
	"Their %s tech savviness and %s brand loyalty affect their perception of innovation.",
	"Based on their %s lifestyle in a %s area, this concept has moderate appeal.",
	"Their %s interests and %s shopping behavior suggest strong interest in this concept.",
	"Given their %s characteristics, they see this as moderately differentiated.",
}

// GenerateAnalyses produces exactly one preference record per
// (persona, concept) pair. Base scores are random; fixed keyword rules nudge
// them so that personas react plausibly to eco, tech, and pricing cues in
// the concept description.
func GenerateAnalyses(personas []types.Persona, concepts []types.Concept) []types.PreferenceRecord {
	records := make([]types.PreferenceRecord, 0, len(personas)*len(concepts))

	for _, persona := range personas {
		for _, concept := range concepts {
			preference := rand.Float64() * 10
			innovation := rand.Float64() * 10
			differentiation := rand.Float64() * 10

			desc := strings.ToLower(concept.Description)

			if highOrVeryHigh(persona.EnvironmentalAwareness) &&
				containsAny(desc, "eco", "green", "sustain") {
				preference += 2
				differentiation++
			}

			if highOrVeryHigh(persona.TechSavviness) &&
				containsAny(desc, "technolog", "advanced", "innovation") {
				innovation += 2
				preference++
			}

			if highOrVeryHigh(persona.PriceSensitivity) {
				if containsAny(desc, "premium", "luxury") {
					preference--
				}
				if containsAny(desc, "value", "affordable") {
					preference++
				}
			}

			records = append(records, types.PreferenceRecord{
				ProfileID:       persona.ID,
				ConceptID:       concept.ID,
				Preference:      clampScore(preference),
				Innovativeness:  clampScore(innovation),
				Differentiation: clampScore(differentiation),
				Reasoning:       buildReasoning(persona),
			})
		}
	}

	return records
}

// clampScore rounds and bounds a raw score to the 1-10 scale.
func clampScore(score float64) int {
	rounded := int(math.Round(score))
	if rounded < 1 {
		return 1
	}
	if rounded > 10 {
		return 10
	}
	return rounded
}

func highOrVeryHigh(level string) bool {
	return level == types.LevelHigh || level == types.LevelVeryHigh
}

func containsAny(text string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// buildReasoning fills a random template with two attributes of the persona.
// The wording is intentionally generic; real reasoning only comes from the
// provider path.
func buildReasoning(persona types.Persona) string {
	template := reasoningTemplates[rand.Intn(len(reasoningTemplates))]

	attrs := []string{
		firstWordLower(persona.Lifestyle),
		strings.ToLower(firstOr(persona.Interests, "varied")),
		strings.ToLower(persona.Income),
		strings.ToLower(persona.Education),
		firstWordLower(persona.ShoppingBehavior),
		strings.ToLower(persona.PriceSensitivity),
		strings.ToLower(persona.EnvironmentalAwareness),
		strings.ToLower(persona.TechSavviness),
		strings.ToLower(persona.BrandLoyalty),
		strings.ToLower(persona.Location),
	}

	filled := template
	for _, attr := range attrs {
		if !strings.Contains(filled, "%s") {
			break
		}
		filled = strings.Replace(filled, "%s", attr, 1)
	}
	return filled
}

func firstWordLower(phrase string) string {
	fields := strings.Fields(phrase)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

func firstOr(list []string, fallback string) string {
	if len(list) == 0 {
		return fallback
	}
	return list[0]
}
