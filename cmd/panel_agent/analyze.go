package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mariana/concept-panel/internal/aggregate"
	"github.com/mariana/concept-panel/internal/mockdata"
	"github.com/mariana/concept-panel/internal/observability"
	"github.com/mariana/concept-panel/internal/types"
)

var (
	analyzeProfiles string
	analyzeConcepts string
	analyzeOutput   string
	analyzeVerbose  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a deterministic preference analysis offline",
	Long: `Evaluate product concepts against a panel of personas using the
deterministic scorer, producing the same result shape as the analysis API.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeProfiles, "profiles", "", "Path to profiles JSON file (required)")
	analyzeCmd.Flags().StringVar(&analyzeConcepts, "concepts", "", "Path to concepts JSON file (required)")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "out", "", "Output file (defaults to stdout)")
	analyzeCmd.Flags().BoolVar(&analyzeVerbose, "verbose", false, "Print an analysis summary to stderr")
	_ = analyzeCmd.MarkFlagRequired("profiles")
	_ = analyzeCmd.MarkFlagRequired("concepts")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	var profiles []types.Persona
	if err := readJSONFile(analyzeProfiles, &profiles); err != nil {
		return err
	}
	var concepts []types.Concept
	if err := readJSONFile(analyzeConcepts, &concepts); err != nil {
		return err
	}
	if len(profiles) == 0 || len(concepts) == 0 {
		return fmt.Errorf("profiles and concepts must both be non-empty")
	}

	records := mockdata.GenerateAnalyses(profiles, concepts)
	insights := mockdata.GenerateInsights(profiles, concepts, records)

	summary, err := aggregate.Summarize(concepts, records, insights)
	if err != nil {
		return fmt.Errorf("failed to summarize analysis: %w", err)
	}

	result := types.AnalysisResult{
		Analyses:      records,
		Summary:       summary,
		TotalAnalyses: len(records),
	}
	if analyzeVerbose {
		observability.NewPrinter(os.Stderr).PrintAnalysisSummary(result)
	}
	return writeJSON(analyzeOutput, result)
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
