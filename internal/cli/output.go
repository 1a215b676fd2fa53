package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/runfinder/race-fetcher/internal/pipeline"
)

// OutputFormat specifies the summary output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// RunResult is the end-of-run summary written to stdout
type RunResult struct {
	GeneratedAt time.Time         `json:"generated_at"`
	States      []string          `json:"states"`
	OutputFile  string            `json:"output_file"`
	Summary     *pipeline.Summary `json:"summary"`
}

// WriteOutput writes the run summary in the specified format
func WriteOutput(w io.Writer, result *RunResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the summary as JSON
func writeJSON(w io.Writer, result *RunResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs the summary as human-readable text
func writeText(w io.Writer, result *RunResult) error {
	fmt.Fprintf(w, "Race fetch complete (%s)\n\n", result.GeneratedAt.Format(time.RFC3339))

	// Sorted region lines for stable output
	states := make([]string, 0, len(result.Summary.Regions))
	for s := range result.Summary.Regions {
		states = append(states, s)
	}
	sort.Strings(states)

	for _, s := range states {
		stats := result.Summary.Regions[s]
		if stats.Error != "" {
			fmt.Fprintf(w, "  %s: unreachable (%s)\n", s, stats.Error)
			continue
		}
		fmt.Fprintf(w, "  %s: fetched %d, kept %d, skipped %d\n",
			s, stats.Fetched, stats.Kept, stats.Skipped)
	}

	fmt.Fprintf(w, "\nTotal kept: %d (past races filtered: %d, skipped: %d)\n",
		result.Summary.TotalKept, result.Summary.FilteredPast, result.Summary.TotalSkipped)
	fmt.Fprintf(w, "Output written to %s\n", result.OutputFile)

	return nil
}
