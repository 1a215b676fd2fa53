package race

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Race is one normalized race-event row in the output artifact.
// JSON field names are the published contract and must not change.
type Race struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Date            string     `json:"date"` // YYYY-MM-DD
	City            string     `json:"city"`
	State           string     `json:"state"`
	Distance        string     `json:"distance"`
	Difficulty      Difficulty `json:"difficulty"`
	Description     string     `json:"description"`
	ImageURL        string     `json:"imageUrl"`
	Latitude        float64    `json:"latitude"`
	Longitude       float64    `json:"longitude"`
	HasKidsRace     bool       `json:"hasKidsRace"`
	RegistrationURL string     `json:"registrationUrl"`
}

// CompositeID builds the output identifier for one event under a race.
// Multiple events of the same race get distinct ids this way.
func CompositeID(raceID, eventID int) string {
	return fmt.Sprintf("%d_%d", raceID, eventID)
}

// SoloID builds the identifier for a race that lists no events.
func SoloID(raceID int) string {
	return fmt.Sprintf("%d", raceID)
}

// kidsKeywords mark an event as aimed at kids or families.
var kidsKeywords = []string{"kids", "children", "family", "youth", "junior"}

// HasKidsEvent reports whether any event name indicates a kids/family race.
func HasKidsEvent(eventNames []string) bool {
	for _, name := range eventNames {
		lower := strings.ToLower(name)
		for _, kw := range kidsKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

// StripHTML flattens an HTML fragment into plain text. Listing
// descriptions arrive as HTML; the output artifact carries text only.
func StripHTML(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	// Collapse whitespace left behind by block elements
	return strings.Join(strings.Fields(doc.Text()), " ")
}
