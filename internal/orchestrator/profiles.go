package orchestrator

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mariana/concept-panel/internal/llm"
	"github.com/mariana/concept-panel/internal/parsing"
	"github.com/mariana/concept-panel/internal/prompts"
	"github.com/mariana/concept-panel/internal/types"
)

// GenerateProfiles produces up to count personas matching the demographic
// constraints. The count is partitioned into fixed-size chunks, each chunk
// issuing one provider call. The first chunk carries the full instruction
// prompt; later chunks append a short continue instruction to the running
// conversation so the provider sees its prior output and avoids duplicates.
//
// A chunk that fails its call or its parse is logged and skipped. The run
// fails only when every chunk failed; otherwise the result may legitimately
// hold fewer than count personas.
func (o *Orchestrator) GenerateProfiles(ctx context.Context, demographics types.DemographicInput, count int) ([]types.Persona, error) {
	conv := NewConversation(prompts.MustGet("profiles.json", "system"))

	var personas []types.Persona
	chunk := 0
	for start := 0; start < count; start += o.cfg.ProfileBatchSize {
		chunk++
		if ctx.Err() != nil {
			log.Printf("[orchestrator] context done before chunk %d, stopping early: %v", chunk, ctx.Err())
			break
		}

		size := min(o.cfg.ProfileBatchSize, count-start)

		var prompt string
		if start == 0 {
			prompt = firstChunkPrompt(demographics, size)
		} else {
			prompt = prompts.Format(prompts.MustGet("profiles.json", "continue"), map[string]string{
				"BatchSize": fmt.Sprintf("%d", size),
			})
		}

		// The candidate conversation is only committed after a successful
		// parse; a failed chunk leaves the history untouched.
		candidate := conv.Append(llm.RoleUser, prompt)

		raw, err := o.client.Complete(ctx, llm.Request{
			Model:     o.cfg.ProfileModel,
			Messages:  candidate.Messages(),
			MaxTokens: profileMaxTokens,
		})
		if err != nil {
			log.Printf("[orchestrator] profile chunk %d failed: %v", chunk, err)
			continue
		}

		cleaned := parsing.ExtractJSON(raw)
		batch, err := parsing.Personas(cleaned)
		if err != nil {
			log.Printf("[orchestrator] profile chunk %d unparseable: %v", chunk, err)
			continue
		}

		personas = append(personas, batch...)
		log.Printf("[orchestrator] profile chunk %d yielded %d personas", chunk, len(batch))

		conv = candidate.Append(llm.RoleAssistant, cleaned).Prune()
	}

	if len(personas) == 0 {
		return nil, fmt.Errorf("profile generation: %w", ErrGenerationFailed)
	}

	// A chunk may return more records than asked for; never exceed count.
	if len(personas) > count {
		personas = personas[:count]
	}
	return personas, nil
}

// firstChunkPrompt renders the full instruction prompt for the opening chunk.
func firstChunkPrompt(demographics types.DemographicInput, size int) string {
	ageRange := strings.Join(demographics.AgeRanges, ", ")
	if demographics.AgeMin > 0 && demographics.AgeMax > 0 {
		ageRange = fmt.Sprintf("%d-%d", demographics.AgeMin, demographics.AgeMax)
	}

	incomeRange := strings.Join(demographics.IncomeRanges, ", ")
	if demographics.IncomeMax > 0 {
		incomeRange = fmt.Sprintf("$%d - $%d", demographics.IncomeMin, demographics.IncomeMax)
	}

	return prompts.Format(prompts.MustGet("profiles.json", "first-batch"), map[string]string{
		"BatchSize":         fmt.Sprintf("%d", size),
		"AgeRange":          ageRange,
		"Genders":           strings.Join(demographics.Genders, ", "),
		"Locations":         strings.Join(demographics.Locations, ", "),
		"IncomeRange":       incomeRange,
		"EducationLevels":   strings.Join(demographics.EducationLevels, ", "),
		"AdditionalContext": additionalContext(demographics),
	})
}

// additionalContext renders the free-text context and truncated document
// excerpts appended to the first-chunk prompt. Excerpts are capped so a
// large upload cannot blow the request past the provider's token ceiling.
func additionalContext(demographics types.DemographicInput) string {
	var sb strings.Builder

	if demographics.AdditionalCtx != "" {
		sb.WriteString("\n\nADDITIONAL CONTEXT:\n")
		sb.WriteString(demographics.AdditionalCtx)
	}

	if len(demographics.UploadedFiles) > 0 {
		sb.WriteString("\n\nUPLOADED RESEARCH DOCUMENTS:\n")
		for _, file := range demographics.UploadedFiles {
			sb.WriteString("\n--- ")
			sb.WriteString(file.Name)
			sb.WriteString(" ---\n")
			sb.WriteString(truncateRunes(file.Content, docExcerptLimit))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
