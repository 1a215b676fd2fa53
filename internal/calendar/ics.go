// Package calendar exports upcoming races as an iCalendar file.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/runfinder/race-fetcher/internal/race"
)

// GenerateCalendar builds a single VCALENDAR containing one VEVENT per
// race. Races whose date fails to parse are skipped.
func GenerateCalendar(races []race.Race) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//Race Fetcher//race-fetcher//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	now := time.Now().UTC()
	for i := range races {
		writeEvent(&ics, &races[i], now)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

// writeEvent appends one VEVENT block for a race.
func writeEvent(ics *strings.Builder, r *race.Race, stamp time.Time) {
	date, err := time.Parse(race.DateLayout, r.Date)
	if err != nil {
		return
	}

	ics.WriteString("BEGIN:VEVENT\r\n")

	ics.WriteString(fmt.Sprintf("UID:%s@runsignup.com\r\n", r.ID))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(stamp)))

	// Races start early; block out 8 AM to noon
	start := time.Date(date.Year(), date.Month(), date.Day(), 8, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)

	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(start)))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(end)))

	summary := r.Name
	if r.Distance != "" && r.Distance != "Unknown" {
		summary = fmt.Sprintf("%s (%s)", r.Name, r.Distance)
	}
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	description := fmt.Sprintf("Difficulty: %s", r.Difficulty)
	if r.RegistrationURL != "" {
		description = fmt.Sprintf("%s\nRegister at: %s", description, r.RegistrationURL)
	}
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))

	location := r.City
	if r.State != "" {
		location = fmt.Sprintf("%s, %s", r.City, r.State)
	}
	ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(location)))

	if r.RegistrationURL != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", r.RegistrationURL))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")

	ics.WriteString("END:VEVENT\r\n")
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters according to RFC 5545
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
