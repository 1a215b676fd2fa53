package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLoggerWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.Info("Fetching races", Fields{"state": "WA", "page": 1})

	line := strings.TrimSpace(buf.String())
	var entry Entry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}

	if entry.Level != "INFO" {
		t.Errorf("level = %q, want INFO", entry.Level)
	}
	if entry.Message != "Fetching races" {
		t.Errorf("message = %q", entry.Message)
	}
	if entry.Fields["state"] != "WA" {
		t.Errorf("state field = %v, want WA", entry.Fields["state"])
	}
	if entry.Timestamp == "" {
		t.Error("timestamp should be set")
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn, &buf)

	l.Debug("debug message", nil)
	l.Info("info message", nil)
	if buf.Len() != 0 {
		t.Errorf("messages below min level should be discarded, got %q", buf.String())
	}

	l.Warn("warn message", nil)
	l.Error("error message", nil, errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var entry Entry
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry.Error != "boom" {
		t.Errorf("error = %q, want boom", entry.Error)
	}
}

func TestCounters(t *testing.T) {
	c := NewCounters()

	c.Incr("pages.fetched")
	c.Incr("pages.fetched")
	c.Add("entries.kept", 50)

	snap := c.Snapshot()
	if snap["pages.fetched"] != 2 {
		t.Errorf("pages.fetched = %d, want 2", snap["pages.fetched"])
	}
	if snap["entries.kept"] != 50 {
		t.Errorf("entries.kept = %d, want 50", snap["entries.kept"])
	}

	// Snapshot is a copy, not a live view
	snap["pages.fetched"] = 99
	if c.Snapshot()["pages.fetched"] != 2 {
		t.Error("mutating a snapshot must not affect the counters")
	}
}
