// Package orchestrator drives the chunked completion-provider call sequences
// that generate personas and preference analyses. Individual chunk failures
// are absorbed; only a run that yields zero usable records fails.
package orchestrator

import (
	"errors"

	"github.com/mariana/concept-panel/internal/llm"
)

// ErrGenerationFailed indicates an orchestration run produced zero usable
// records. Callers decide whether to surface the failure or substitute the
// deterministic generator.
var ErrGenerationFailed = errors.New("generation produced no usable records")

// Defaults chosen to stay under provider token ceilings.
const (
	defaultProfileBatchSize  = 10
	defaultAnalysisBatchSize = 5

	profileMaxTokens  = 6000
	analysisMaxTokens = 2000
	insightsMaxTokens = 1500

	analysisTemperature = 0.3
	insightsTemperature = 0.4

	// docExcerptLimit caps how many characters of each uploaded research
	// document are forwarded in the first-chunk prompt.
	docExcerptLimit = 2000
)

// Config tunes an Orchestrator. Zero fields fall back to defaults.
type Config struct {
	ProfileModel      string
	Rotation          RotationPolicy
	InsightsModel     string
	ProfileBatchSize  int
	AnalysisBatchSize int
}

// Orchestrator issues sequential completion calls against a single provider
// client. One orchestrator serves one job; calls within a job are strictly
// ordered because later chunks depend on accumulated conversation context.
type Orchestrator struct {
	client llm.Client
	cfg    Config
}

// New creates an orchestrator around a completion client.
func New(client llm.Client, cfg Config) *Orchestrator {
	models := llm.DefaultConfig()
	if cfg.ProfileModel == "" {
		cfg.ProfileModel = models.ProfileModel
	}
	if len(cfg.Rotation.Models) == 0 {
		cfg.Rotation.Models = models.AnalysisModels
	}
	if cfg.Rotation.Fallback == "" {
		cfg.Rotation.Fallback = models.FallbackModel
	}
	if cfg.InsightsModel == "" {
		cfg.InsightsModel = models.InsightsModel
	}
	if cfg.ProfileBatchSize <= 0 {
		cfg.ProfileBatchSize = defaultProfileBatchSize
	}
	if cfg.AnalysisBatchSize <= 0 {
		cfg.AnalysisBatchSize = defaultAnalysisBatchSize
	}

	return &Orchestrator{client: client, cfg: cfg}
}
