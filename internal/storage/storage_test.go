package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/runfinder/race-fetcher/internal/race"
)

func sampleRaces() []race.Race {
	return []race.Race{
		{
			ID:              "100_1",
			Name:            "Rainier Trail Festival",
			Date:            "2026-06-15",
			City:            "Ashford",
			State:           "WA",
			Distance:        "Half Marathon",
			Difficulty:      race.Hard,
			Description:     "Run around the mountain.",
			ImageURL:        "https://images.example.com/ashford.jpg",
			Latitude:        46.85,
			Longitude:       -121.76,
			HasKidsRace:     true,
			RegistrationURL: "https://runsignup.com/Race/100",
		},
		{
			ID:         "200_5",
			Name:       "Portland Parkway 5K",
			Date:       "2026-07-04",
			City:       "Portland",
			State:      "OR",
			Distance:   "5K",
			Difficulty: race.Easy,
			ImageURL:   "https://images.example.com/portland.jpg",
		},
	}
}

func TestWriteAndLoadRaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "races.json")

	if err := WriteRaces(path, sampleRaces()); err != nil {
		t.Fatalf("WriteRaces failed: %v", err)
	}

	loaded, err := LoadRaces(path)
	if err != nil {
		t.Fatalf("LoadRaces failed: %v", err)
	}

	if len(loaded) != 2 {
		t.Fatalf("loaded %d races, want 2", len(loaded))
	}
	if loaded[0].ID != "100_1" || loaded[0].Difficulty != race.Hard {
		t.Errorf("first race did not round-trip: %+v", loaded[0])
	}
}

func TestWriteRacesFieldContract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "races.json")

	if err := WriteRaces(path, sampleRaces()); err != nil {
		t.Fatalf("WriteRaces failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	// Output must be a JSON array of objects with the exact field names
	var generic []map[string]interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		t.Fatalf("output is not a JSON array: %v", err)
	}

	required := []string{
		"id", "name", "date", "city", "state", "distance", "difficulty",
		"description", "imageUrl", "latitude", "longitude", "hasKidsRace",
		"registrationUrl",
	}

	for i, obj := range generic {
		for _, field := range required {
			if _, ok := obj[field]; !ok {
				t.Errorf("race %d missing field %q", i, field)
			}
		}

		if _, ok := obj["latitude"].(float64); !ok {
			t.Errorf("race %d latitude is not a number", i)
		}
		if _, ok := obj["hasKidsRace"].(bool); !ok {
			t.Errorf("race %d hasKidsRace is not a boolean", i)
		}
		if _, ok := obj["id"].(string); !ok {
			t.Errorf("race %d id is not a string", i)
		}
	}
}

func TestWriteRacesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "races.json")

	if err := WriteRaces(path, nil); err != nil {
		t.Fatalf("WriteRaces failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("empty output = %q, want []", string(data))
	}
}

func TestWriteRacesCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "races.json")

	if err := WriteRaces(path, sampleRaces()); err != nil {
		t.Fatalf("WriteRaces failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file not created: %v", err)
	}
}

func TestLoadRacesMissingFile(t *testing.T) {
	if _, err := LoadRaces(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
