// Package cli wires flags, logging, and the pipeline into the
// race-fetcher root command.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/runfinder/race-fetcher/internal/calendar"
	"github.com/runfinder/race-fetcher/internal/logger"
	"github.com/runfinder/race-fetcher/internal/pipeline"
	"github.com/runfinder/race-fetcher/internal/race"
	"github.com/runfinder/race-fetcher/internal/runsignup"
	"github.com/runfinder/race-fetcher/internal/storage"
	"github.com/runfinder/race-fetcher/internal/unsplash"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagStates  string
	flagOutput  string
	flagLogFile string
	flagICS     string
	flagFormat  string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "race-fetcher",
		Short: "Fetch upcoming races from RunSignUp",
		Long: `Fetches race listings from the RunSignUp API for the configured
states, enriches each race with a city image and a difficulty label,
filters to future dates, and writes the result as a JSON array.`,
		RunE: runFetch,
	}

	cmd.Flags().StringVar(&flagStates, "states", "WA,OR,CA", "Comma-separated state codes to fetch")
	cmd.Flags().StringVar(&flagOutput, "output", "races.json", "Output JSON file")
	cmd.Flags().StringVar(&flagLogFile, "log-file", "race_fetcher.log", "Append-only log file")
	cmd.Flags().StringVar(&flagICS, "ics", "", "Also write an iCalendar file to this path")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Summary format: text or json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runFetch is the main command logic
func runFetch(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	regions, err := parseRegions(flagStates)
	if err != nil {
		return err
	}

	// Log to stderr and the append-only log file; stdout carries the summary
	logFile, err := os.OpenFile(flagLogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, io.MultiWriter(os.Stderr, logFile)))

	accessKey := os.Getenv("UNSPLASH_ACCESS_KEY")
	if accessKey == "" {
		logger.Warn("UNSPLASH_ACCESS_KEY not set, using default images", nil)
	}

	codes := make([]string, 0, len(regions))
	for _, r := range regions {
		codes = append(codes, r.Code)
	}
	logger.Info("Starting race fetcher", logger.Fields{
		"states": strings.Join(codes, ","),
		"output": flagOutput,
	})

	p := pipeline.New(runsignup.New(), unsplash.NewClient(accessKey))
	p.Regions = regions

	races, summary, err := p.Run(time.Now())
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}

	if err := storage.WriteRaces(flagOutput, races); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logger.Info("Saved races", logger.Fields{
		"count": len(races),
		"file":  flagOutput,
	})

	if flagICS != "" {
		ics := calendar.GenerateCalendar(races)
		if err := os.WriteFile(flagICS, []byte(ics), 0644); err != nil {
			return fmt.Errorf("writing calendar: %w", err)
		}
		logger.Info("Saved calendar", logger.Fields{"file": flagICS})
	}

	result := &RunResult{
		GeneratedAt: time.Now().UTC(),
		States:      codes,
		OutputFile:  flagOutput,
		Summary:     summary,
	}
	if err := WriteOutput(os.Stdout, result, format); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	return nil
}

// parseRegions validates the --states flag against the configured regions.
func parseRegions(states string) ([]race.Region, error) {
	parts := strings.Split(states, ",")
	regions := make([]race.Region, 0, len(parts))

	for _, part := range parts {
		code := strings.ToUpper(strings.TrimSpace(part))
		if code == "" {
			continue
		}
		r, ok := race.RegionByCode(code)
		if !ok {
			return nil, fmt.Errorf("unknown state code: %s", code)
		}
		regions = append(regions, r)
	}

	if len(regions) == 0 {
		return nil, fmt.Errorf("no states configured")
	}
	return regions, nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
