package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariana/concept-panel/internal/llm"
	"github.com/mariana/concept-panel/internal/types"
)

func profileDemographics() types.DemographicInput {
	return types.DemographicInput{
		AgeRanges:       []string{"25-34"},
		Genders:         []string{"Female"},
		Locations:       []string{"Urban"},
		IncomeRanges:    []string{"$50,000-$75,000"},
		EducationLevels: []string{"Bachelor's Degree"},
	}
}

func TestGenerateProfiles_ChunkPlanning(t *testing.T) {
	client := &fakeClient{
		respond: func(call int, req llm.Request) (string, error) {
			sizes := []int{10, 10, 7}
			return personaJSON("chunk", sizes[call]), nil
		},
	}

	orch := New(client, Config{})
	personas, err := orch.GenerateProfiles(context.Background(), profileDemographics(), 27)
	require.NoError(t, err)

	// count=27 with batch size 10 plans exactly 3 chunks of 10, 10, 7.
	require.Len(t, client.requests, 3)
	assert.Len(t, personas, 27)

	firstPrompt := lastUserMessage(t, client.requests[0])
	assert.Contains(t, firstPrompt, "Generate exactly 10 diverse consumer profiles")
	assert.Contains(t, firstPrompt, "Age Range: 25-34")

	secondPrompt := lastUserMessage(t, client.requests[1])
	assert.Contains(t, secondPrompt, "continue - generate exactly 10 more")

	thirdPrompt := lastUserMessage(t, client.requests[2])
	assert.Contains(t, thirdPrompt, "continue - generate exactly 7 more")
}

func TestGenerateProfiles_CarriesConversationContext(t *testing.T) {
	client := &fakeClient{
		respond: func(call int, req llm.Request) (string, error) {
			return personaJSON("chunk", 10), nil
		},
	}

	orch := New(client, Config{})
	_, err := orch.GenerateProfiles(context.Background(), profileDemographics(), 20)
	require.NoError(t, err)
	require.Len(t, client.requests, 2)

	// The second call must see the first chunk's output as an assistant turn.
	second := client.requests[1].Messages
	require.Len(t, second, 4)
	assert.Equal(t, llm.RoleSystem, second[0].Role)
	assert.Equal(t, llm.RoleUser, second[1].Role)
	assert.Equal(t, llm.RoleAssistant, second[2].Role)
	assert.Contains(t, second[2].Content, `"chunk_0"`)
	assert.Equal(t, llm.RoleUser, second[3].Role)
}

func TestGenerateProfiles_FailedChunkIsSkipped(t *testing.T) {
	client := &fakeClient{
		respond: func(call int, req llm.Request) (string, error) {
			if call == 1 {
				return "", errors.New("rate limited")
			}
			sizes := []int{10, 0, 7}
			return personaJSON("chunk", sizes[call]), nil
		},
	}

	orch := New(client, Config{})
	personas, err := orch.GenerateProfiles(context.Background(), profileDemographics(), 27)
	require.NoError(t, err)

	// Chunk 2 failed entirely: at most 17 personas, at least the chunk-1
	// yield, and the run still succeeds.
	assert.Len(t, personas, 17)

	// A failed chunk must not leave a dangling user turn in the history.
	third := client.requests[2].Messages
	for i := 1; i < len(third); i++ {
		if third[i].Role == llm.RoleUser && i+1 < len(third) {
			assert.NotEqual(t, llm.RoleUser, third[i+1].Role, "history must alternate after a skipped chunk")
		}
	}
}

func TestGenerateProfiles_UnparseableChunkIsSkipped(t *testing.T) {
	client := &fakeClient{
		respond: func(call int, req llm.Request) (string, error) {
			if call == 0 {
				return "I'm sorry, I can't help with that.", nil
			}
			return personaJSON("chunk", 10), nil
		},
	}

	orch := New(client, Config{})
	personas, err := orch.GenerateProfiles(context.Background(), profileDemographics(), 20)
	require.NoError(t, err)
	assert.Len(t, personas, 10)
}

func TestGenerateProfiles_AllChunksFail(t *testing.T) {
	client := &fakeClient{
		respond: func(call int, req llm.Request) (string, error) {
			return "", errors.New("provider down")
		},
	}

	orch := New(client, Config{})
	_, err := orch.GenerateProfiles(context.Background(), profileDemographics(), 30)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Len(t, client.requests, 3, "every chunk is still attempted")
}

func TestGenerateProfiles_SurplusTruncated(t *testing.T) {
	client := &fakeClient{
		respond: func(call int, req llm.Request) (string, error) {
			// Provider over-delivers.
			return personaJSON("chunk", 13), nil
		},
	}

	orch := New(client, Config{})
	personas, err := orch.GenerateProfiles(context.Background(), profileDemographics(), 10)
	require.NoError(t, err)
	assert.Len(t, personas, 10)
}

func TestGenerateProfiles_CancelledContextStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	client := &fakeClient{
		respond: func(call int, req llm.Request) (string, error) {
			cancel()
			return personaJSON("chunk", 10), nil
		},
	}

	orch := New(client, Config{})
	personas, err := orch.GenerateProfiles(ctx, profileDemographics(), 50)
	require.NoError(t, err)
	assert.Len(t, client.requests, 1, "no further provider calls after cancellation")
	assert.Len(t, personas, 10)
}

func TestGenerateProfiles_UploadedDocsTruncated(t *testing.T) {
	demographics := profileDemographics()
	demographics.AdditionalCtx = "Focus on recent grocery shoppers."
	demographics.UploadedFiles = []types.UploadedFile{
		{Name: "survey.txt", Content: strings.Repeat("x", 5000), Type: "text/plain"},
	}

	client := &fakeClient{
		respond: func(call int, req llm.Request) (string, error) {
			return personaJSON("chunk", 5), nil
		},
	}

	orch := New(client, Config{})
	_, err := orch.GenerateProfiles(context.Background(), demographics, 5)
	require.NoError(t, err)

	prompt := lastUserMessage(t, client.requests[0])
	assert.Contains(t, prompt, "ADDITIONAL CONTEXT:\nFocus on recent grocery shoppers.")
	assert.Contains(t, prompt, "--- survey.txt ---")
	assert.Contains(t, prompt, strings.Repeat("x", 2000))
	assert.NotContains(t, prompt, strings.Repeat("x", 2001))
}

func lastUserMessage(t *testing.T, req llm.Request) string {
	t.Helper()
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == llm.RoleUser {
			return req.Messages[i].Content
		}
	}
	t.Fatal("request has no user message")
	return ""
}
