package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mariana/concept-panel/internal/llm"
	"github.com/mariana/concept-panel/internal/types"
)

// fakeClient scripts completion responses for orchestrator tests and records
// every request it receives.
type fakeClient struct {
	requests []llm.Request
	respond  func(call int, req llm.Request) (string, error)
}

func (f *fakeClient) Complete(_ context.Context, req llm.Request) (string, error) {
	call := len(f.requests)
	f.requests = append(f.requests, req)
	return f.respond(call, req)
}

func (f *fakeClient) Close() error { return nil }

// personaJSON renders n personas as a provider-style JSON array, ids
// prefixed so tests can tell chunks apart.
func personaJSON(prefix string, n int) string {
	personas := make([]types.Persona, 0, n)
	for i := 0; i < n; i++ {
		personas = append(personas, types.Persona{
			ID:     fmt.Sprintf("%s_%d", prefix, i),
			Name:   "Test Persona",
			Age:    30,
			Gender: "Female",
		})
	}
	data, err := json.Marshal(personas)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// analysisJSON renders one record per persona in the batch for a concept.
func analysisJSON(batch []types.Persona, conceptID string, preference int) string {
	records := make([]types.PreferenceRecord, 0, len(batch))
	for _, p := range batch {
		records = append(records, types.PreferenceRecord{
			ProfileID:       p.ID,
			ConceptID:       conceptID,
			Preference:      preference,
			Innovativeness:  5,
			Differentiation: 5,
			Reasoning:       "I think it works for me.",
		})
	}
	data, err := json.Marshal(records)
	if err != nil {
		panic(err)
	}
	return string(data)
}
