// Package storage reads and writes the races output artifact.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runfinder/race-fetcher/internal/race"
)

// WriteRaces writes the normalized races to path as an indented JSON
// array. An empty set is written as [] rather than null.
func WriteRaces(path string, races []race.Race) error {
	if races == nil {
		races = []race.Race{}
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(races, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding races: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing races: %w", err)
	}

	return nil
}

// LoadRaces reads a previously written artifact.
func LoadRaces(path string) ([]race.Race, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading races: %w", err)
	}

	var races []race.Race
	if err := json.Unmarshal(data, &races); err != nil {
		return nil, fmt.Errorf("parsing races: %w", err)
	}

	return races, nil
}
