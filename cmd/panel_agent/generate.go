package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mariana/concept-panel/internal/mockdata"
	"github.com/mariana/concept-panel/internal/observability"
	"github.com/mariana/concept-panel/internal/types"
)

var (
	generateDemographics string
	generateCount        int
	generateOutput       string
	generateVerbose      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a deterministic consumer panel offline",
	Long: `Generate consumer personas from a demographics JSON file without calling
the completion provider. Useful for seeding test data and for environments
without an API key.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateDemographics, "demographics", "", "Path to demographics JSON file (required)")
	generateCmd.Flags().IntVar(&generateCount, "count", 10, "Number of personas to generate")
	generateCmd.Flags().StringVar(&generateOutput, "out", "", "Output file (defaults to stdout)")
	generateCmd.Flags().BoolVar(&generateVerbose, "verbose", false, "Print a panel summary to stderr")
	_ = generateCmd.MarkFlagRequired("demographics")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	demographics, err := readDemographics(generateDemographics)
	if err != nil {
		return err
	}
	if generateCount <= 0 {
		return fmt.Errorf("count must be positive, got %d", generateCount)
	}

	profiles := mockdata.GeneratePersonas(demographics, generateCount)
	set := types.ProfileSet{Profiles: profiles, Count: len(profiles)}

	if generateVerbose {
		observability.NewPrinter(os.Stderr).PrintProfileSet(set)
	}
	return writeJSON(generateOutput, set)
}

func readDemographics(path string) (types.DemographicInput, error) {
	var demographics types.DemographicInput
	data, err := os.ReadFile(path)
	if err != nil {
		return demographics, fmt.Errorf("failed to read demographics file: %w", err)
	}
	if err := json.Unmarshal(data, &demographics); err != nil {
		return demographics, fmt.Errorf("failed to parse demographics JSON: %w", err)
	}
	return demographics, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
