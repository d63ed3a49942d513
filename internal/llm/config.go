// Package llm provides centralized completion-provider configuration and
// client abstractions. This package enables easy switching between models and
// future multi-provider support.
package llm

// Provider represents a completion provider
type Provider string

// Provider constants define supported completion providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider (future)
	ProviderOpenAI Provider = "openai"
)

// Config holds the model configuration for the application.
type Config struct {
	Provider Provider
	// ProfileModel drives persona generation, which relies on conversation
	// context carryover and therefore always uses a single model.
	ProfileModel string
	// AnalysisModels is the ordered rotation list for preference analysis
	// calls.
	AnalysisModels []string
	// FallbackModel is retried once when the rotated model's call fails.
	FallbackModel string
	// InsightsModel drives the final insights summarization call.
	InsightsModel string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider:     ProviderGemini,
		ProfileModel: "gemini-2.5-flash",
		AnalysisModels: []string{
			"gemini-2.5-flash-lite",
			"gemini-2.5-flash",
			"gemini-2.0-flash",
			"gemini-2.5-pro",
		},
		FallbackModel: "gemini-2.5-pro",
		InsightsModel: "gemini-2.5-pro",
	}
}
