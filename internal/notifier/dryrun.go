package notifier

import (
	"fmt"

	"github.com/runfinder/race-fetcher/internal/race"
)

// DryRunNotifier prints what would be tweeted without actually posting
type DryRunNotifier struct{}

// NewDryRunNotifier creates a new dry-run notifier
func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{}
}

// Notify prints the tweets that would be posted
func (n *DryRunNotifier) Notify(races []race.Race) error {
	for i := range races {
		tweet := formatTweet(&races[i])
		fmt.Printf("--- Tweet %d/%d ---\n", i+1, len(races))
		fmt.Println(tweet)
		fmt.Printf("\n(Length: %d characters)\n\n", len(tweet))
	}
	return nil
}
