// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/mariana/concept-panel/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfileSet summarizes a generated panel: its size and a sample of the
// personas with their headline demographics.
func (p *Printer) PrintProfileSet(set types.ProfileSet) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Personas: %d\n", set.Count))

	shown := min(maxItemsToShow, len(set.Profiles))
	for _, persona := range set.Profiles[:shown] {
		sb.WriteString(fmt.Sprintf("- %s, %d, %s, %s\n",
			persona.Name, persona.Age, persona.Gender, persona.Location))
	}
	if len(set.Profiles) > shown {
		sb.WriteString(fmt.Sprintf("... and %d more", len(set.Profiles)-shown))
	}

	p.printBox("GENERATED PANEL", strings.TrimRight(sb.String(), "\n"))
}

// PrintAnalysisSummary renders the aggregate scores and top insights of a
// completed analysis.
func (p *Printer) PrintAnalysisSummary(result types.AnalysisResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Records: %d\n", result.TotalAnalyses))

	if result.Summary != nil {
		sb.WriteString(fmt.Sprintf("Avg preference:      %.2f\n", result.Summary.AveragePreference))
		sb.WriteString(fmt.Sprintf("Avg innovativeness:  %.2f\n", result.Summary.AverageInnovativeness))
		sb.WriteString(fmt.Sprintf("Avg differentiation: %.2f\n", result.Summary.AverageDifferentiation))
		sb.WriteString(fmt.Sprintf("Top concept: %s\n", result.Summary.TopPerformingConcept))

		shown := min(maxItemsToShow, len(result.Summary.Insights))
		for _, insight := range result.Summary.Insights[:shown] {
			sb.WriteString(fmt.Sprintf("- %s\n", insight))
		}
	}

	p.printBox("ANALYSIS SUMMARY", strings.TrimRight(sb.String(), "\n"))
}
