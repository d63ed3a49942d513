// Package config provides environment-based configuration for the panel
// service. A .env file is honored in development; real deployments set the
// variables directly.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mariana/concept-panel/internal/llm"
)

// Config holds everything the service needs at startup.
type Config struct {
	// Server
	Port string

	// Provider
	GeminiAPIKey string
	Models       llm.Config

	// Jobs
	DatabaseURL       string // empty selects the in-memory job store
	JobTTL            time.Duration
	SweepInterval     time.Duration
	MaxConcurrentJobs int64
	JobDeadline       time.Duration

	// Orchestration
	ProfileBatchSize  int
	AnalysisBatchSize int
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; missing files are not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              envOr("PORT", "8080"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		Models:            *llm.DefaultConfig(),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JobTTL:            time.Hour,
		SweepInterval:     5 * time.Minute,
		MaxConcurrentJobs: 4,
		JobDeadline:       15 * time.Minute,
	}

	if v := os.Getenv("PROFILE_MODEL"); v != "" {
		cfg.Models.ProfileModel = v
	}
	if v := os.Getenv("ANALYSIS_MODELS"); v != "" {
		cfg.Models.AnalysisModels = splitList(v)
	}
	if v := os.Getenv("FALLBACK_MODEL"); v != "" {
		cfg.Models.FallbackModel = v
	}
	if v := os.Getenv("INSIGHTS_MODEL"); v != "" {
		cfg.Models.InsightsModel = v
	}

	var err error
	if cfg.JobTTL, err = envDuration("JOB_TTL", cfg.JobTTL); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = envDuration("JOB_SWEEP_INTERVAL", cfg.SweepInterval); err != nil {
		return nil, err
	}
	if cfg.JobDeadline, err = envDuration("JOB_DEADLINE", cfg.JobDeadline); err != nil {
		return nil, err
	}

	maxJobs, err := envInt("MAX_CONCURRENT_JOBS", int(cfg.MaxConcurrentJobs))
	if err != nil {
		return nil, err
	}
	cfg.MaxConcurrentJobs = int64(maxJobs)

	if cfg.ProfileBatchSize, err = envInt("PROFILE_BATCH_SIZE", 0); err != nil {
		return nil, err
	}
	if cfg.AnalysisBatchSize, err = envInt("ANALYSIS_BATCH_SIZE", 0); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail deep inside a request.
// A missing API key is allowed: the service then serves deterministic
// fallback data only.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("config error: PORT must not be empty")
	}
	if c.JobTTL <= 0 {
		return fmt.Errorf("config error: JOB_TTL must be positive")
	}
	if c.MaxConcurrentJobs <= 0 {
		return fmt.Errorf("config error: MAX_CONCURRENT_JOBS must be positive")
	}
	if len(c.Models.AnalysisModels) == 0 {
		return fmt.Errorf("config error: ANALYSIS_MODELS must name at least one model")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config error: %s must be an integer, got %q", key, v)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config error: %s must be a duration like 30m, got %q", key, v)
	}
	return d, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
