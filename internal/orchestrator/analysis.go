package orchestrator

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mariana/concept-panel/internal/aggregate"
	"github.com/mariana/concept-panel/internal/llm"
	"github.com/mariana/concept-panel/internal/parsing"
	"github.com/mariana/concept-panel/internal/prompts"
	"github.com/mariana/concept-panel/internal/types"
)

// Fallback insight messages when the insights call degrades.
const (
	insightsParseFallback    = "Unable to generate detailed insights due to parsing error."
	insightsProviderFallback = "Error occurred while generating insights from the analysis."
)

// AnalyzePreferences asks the provider to react to every concept as each
// persona, one call per (profile batch, concept) pair. The model for each
// call comes from the rotation policy; a failed call gets one retry on the
// fallback model. Pairs that fail both calls or fail parsing contribute
// nothing and the run continues.
func (o *Orchestrator) AnalyzePreferences(ctx context.Context, profiles []types.Persona, concepts []types.Concept) ([]types.PreferenceRecord, error) {
	system := prompts.MustGet("analysis.json", "system")
	totalBatches := (len(profiles) + o.cfg.AnalysisBatchSize - 1) / o.cfg.AnalysisBatchSize

	var analyses []types.PreferenceRecord
	for start := 0; start < len(profiles); start += o.cfg.AnalysisBatchSize {
		if ctx.Err() != nil {
			log.Printf("[orchestrator] context done, stopping analysis early: %v", ctx.Err())
			break
		}

		batch := profiles[start:min(start+o.cfg.AnalysisBatchSize, len(profiles))]
		batchNum := start/o.cfg.AnalysisBatchSize + 1

		for conceptIdx, concept := range concepts {
			if ctx.Err() != nil {
				break
			}
			log.Printf("[orchestrator] analyzing batch %d/%d, concept %d/%d",
				batchNum, totalBatches, conceptIdx+1, len(concepts))

			records, err := o.evaluateConcept(ctx, system, batch, concept, o.cfg.Rotation.Pick(start, conceptIdx))
			if err != nil {
				log.Printf("[orchestrator] concept %s skipped for batch %d: %v", concept.ID, batchNum, err)
				continue
			}
			analyses = append(analyses, records...)
		}
	}

	if len(analyses) == 0 {
		return nil, fmt.Errorf("preference analysis: %w", ErrGenerationFailed)
	}
	return analyses, nil
}

// evaluateConcept issues one provider call for a (profile batch, concept)
// pair, retrying once on the fallback model before giving up.
func (o *Orchestrator) evaluateConcept(ctx context.Context, system string, batch []types.Persona, concept types.Concept, model string) ([]types.PreferenceRecord, error) {
	req := llm.Request{
		Model: model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: system},
			{Role: llm.RoleUser, Content: evaluatePrompt(batch, concept)},
		},
		MaxTokens:   analysisMaxTokens,
		Temperature: analysisTemperature,
	}

	raw, err := o.client.Complete(ctx, req)
	if err != nil {
		log.Printf("[orchestrator] model %s failed, falling back to %s: %v", model, o.cfg.Rotation.Fallback, err)
		req.Model = o.cfg.Rotation.Fallback
		raw, err = o.client.Complete(ctx, req)
		if err != nil {
			return nil, &parsing.APICallError{
				Message: fmt.Sprintf("models %s and %s both failed", model, o.cfg.Rotation.Fallback),
				Cause:   err,
			}
		}
	}

	return parsing.Analyses(raw)
}

// GenerateInsights issues the final summarization call over the completed
// analysis set. It never fails the job: provider or parse errors degrade to
// a single-element fallback list.
func (o *Orchestrator) GenerateInsights(ctx context.Context, profiles []types.Persona, concepts []types.Concept, analyses []types.PreferenceRecord) []string {
	var conceptLines, averageLines []string
	for _, concept := range concepts {
		conceptLines = append(conceptLines, fmt.Sprintf("- %s: %s", concept.Title, concept.Description))
	}
	for _, avg := range aggregate.ConceptAverages(concepts, analyses) {
		if avg.Records == 0 {
			continue
		}
		averageLines = append(averageLines, fmt.Sprintf("%s: Preference %.1f, Innovation %.1f, Differentiation %.1f",
			avg.Concept.Title, avg.Preference, avg.Innovativeness, avg.Differentiation))
	}

	prompt := prompts.Format(prompts.MustGet("analysis.json", "insights"), map[string]string{
		"ProfileCount":    fmt.Sprintf("%d", len(profiles)),
		"ConceptCount":    fmt.Sprintf("%d", len(concepts)),
		"AnalysisCount":   fmt.Sprintf("%d", len(analyses)),
		"Concepts":        strings.Join(conceptLines, "\n"),
		"ConceptAverages": strings.Join(averageLines, "\n"),
	})

	raw, err := o.client.Complete(ctx, llm.Request{
		Model: o.cfg.InsightsModel,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: prompts.MustGet("analysis.json", "insights-system")},
			{Role: llm.RoleUser, Content: prompt},
		},
		MaxTokens:   insightsMaxTokens,
		Temperature: insightsTemperature,
	})
	if err != nil {
		log.Printf("[orchestrator] insights call failed: %v", err)
		return []string{insightsProviderFallback}
	}

	insights, err := parsing.Strings(raw)
	if err != nil || len(insights) == 0 {
		log.Printf("[orchestrator] insights unparseable: %v", err)
		return []string{insightsParseFallback}
	}
	return insights
}

// evaluatePrompt packs a profile batch and one concept into the evaluation
// prompt, with each persona rendered in full attribute detail.
func evaluatePrompt(batch []types.Persona, concept types.Concept) string {
	blockTemplate := prompts.MustGet("analysis.json", "persona-block")

	var blocks strings.Builder
	for _, p := range batch {
		blocks.WriteString(prompts.Format(blockTemplate, map[string]string{
			"ID":                     p.ID,
			"Age":                    fmt.Sprintf("%d", p.Age),
			"Gender":                 p.Gender,
			"Location":               p.Location,
			"Income":                 p.Income,
			"Education":              p.Education,
			"Lifestyle":              p.Lifestyle,
			"Interests":              strings.Join(p.Interests, ", "),
			"ShoppingBehavior":       p.ShoppingBehavior,
			"TechSavviness":          p.TechSavviness,
			"EnvironmentalAwareness": p.EnvironmentalAwareness,
			"BrandLoyalty":           p.BrandLoyalty,
			"PriceSensitivity":       p.PriceSensitivity,
		}))
	}

	return prompts.Format(prompts.MustGet("analysis.json", "evaluate-concept"), map[string]string{
		"ConceptTitle":       concept.Title,
		"ConceptDescription": concept.Description,
		"ConceptID":          concept.ID,
		"Profiles":           blocks.String(),
	})
}
