package notifier

import (
	"github.com/runfinder/race-fetcher/internal/race"
)

// Notifier defines the interface for announcing races
type Notifier interface {
	// Notify posts announcements for the given races
	Notify(races []race.Race) error
}
