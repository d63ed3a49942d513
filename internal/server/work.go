package server

import (
	"context"
	"log"

	"github.com/mariana/concept-panel/internal/aggregate"
	"github.com/mariana/concept-panel/internal/jobs"
	"github.com/mariana/concept-panel/internal/mockdata"
	"github.com/mariana/concept-panel/internal/schemas"
	"github.com/mariana/concept-panel/internal/types"
)

// generationWork builds the background work for a profile generation job.
// Provider failures never fail the job: the deterministic generator supplies
// a panel matching the same demographics instead.
func (s *Server) generationWork(demographics types.DemographicInput, count int) jobs.Work {
	return func(ctx context.Context) (any, error) {
		profiles := s.generateProfiles(ctx, demographics, count)
		return types.ProfileSet{Profiles: profiles, Count: len(profiles)}, nil
	}
}

func (s *Server) generateProfiles(ctx context.Context, demographics types.DemographicInput, count int) []types.Persona {
	if s.orch == nil {
		return mockdata.GeneratePersonas(demographics, count)
	}

	generated, err := s.orch.GenerateProfiles(ctx, demographics, count)
	if err != nil {
		log.Printf("[server] profile generation fell back to deterministic data: %v", err)
		return mockdata.GeneratePersonas(demographics, count)
	}

	// Drop provider records missing required identity fields. If nothing
	// survives, the deterministic generator covers the request.
	valid := schemas.FilterPersonas(generated)
	if dropped := len(generated) - len(valid); dropped > 0 {
		log.Printf("[server] dropped %d invalid generated profiles", dropped)
	}
	if len(valid) == 0 {
		return mockdata.GeneratePersonas(demographics, count)
	}
	return valid
}

// analysisWork builds the background work for a preference analysis job.
// Like generation, it degrades to deterministic records rather than failing.
func (s *Server) analysisWork(profiles []types.Persona, concepts []types.Concept) jobs.Work {
	return func(ctx context.Context) (any, error) {
		records, insights := s.analyzePreferences(ctx, profiles, concepts)

		summary, err := aggregate.Summarize(concepts, records, insights)
		if err != nil {
			// Unreachable with either path below, but a nil summary must
			// not panic the job.
			log.Printf("[server] summary unavailable: %v", err)
		}

		return types.AnalysisResult{
			Analyses:      records,
			Summary:       summary,
			TotalAnalyses: len(records),
		}, nil
	}
}

func (s *Server) analyzePreferences(ctx context.Context, profiles []types.Persona, concepts []types.Concept) ([]types.PreferenceRecord, []string) {
	if s.orch == nil {
		return mockdata.GenerateAnalyses(profiles, concepts),
			mockdata.GenerateInsights(profiles, concepts, nil)
	}

	records, err := s.orch.AnalyzePreferences(ctx, profiles, concepts)
	if err != nil {
		log.Printf("[server] preference analysis fell back to deterministic data: %v", err)
		records = mockdata.GenerateAnalyses(profiles, concepts)
		return records, mockdata.GenerateInsights(profiles, concepts, records)
	}

	return records, s.orch.GenerateInsights(ctx, profiles, concepts, records)
}
