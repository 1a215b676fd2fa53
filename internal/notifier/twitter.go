package notifier

import (
	"fmt"
	"os"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/runfinder/race-fetcher/internal/race"
)

// TwitterNotifier posts upcoming races to Twitter
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates a Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{client: client}, nil
}

// Notify posts one tweet per race
func (n *TwitterNotifier) Notify(races []race.Race) error {
	for i := range races {
		tweet := formatTweet(&races[i])

		_, _, err := n.client.Statuses.Update(tweet, nil)
		if err != nil {
			return fmt.Errorf("failed to post tweet for race %s: %w", races[i].ID, err)
		}

		// Rate limiting: wait between tweets
		if i < len(races)-1 {
			time.Sleep(2 * time.Second)
		}
	}

	return nil
}

// formatTweet formats a race as a tweet
func formatTweet(r *race.Race) string {
	tweet := "\U0001F3C3 Upcoming race!\n\n"
	tweet += fmt.Sprintf("\U0001F4CD %s - %s, %s\n", r.Name, r.City, r.State)

	if r.Date != "" {
		tweet += fmt.Sprintf("\U0001F4C5 %s\n", r.Date)
	}

	if r.Distance != "" && r.Distance != "Unknown" {
		tweet += fmt.Sprintf("\U0001F4CF %s (%s)\n", r.Distance, r.Difficulty)
	}

	if r.RegistrationURL != "" {
		tweet += fmt.Sprintf("\n\U0001F517 %s\n", r.RegistrationURL)
	}
	tweet += "\n#running #race"

	// Twitter limit is 280 characters
	if len(tweet) > 280 {
		tweet = tweet[:277] + "..."
	}

	return tweet
}
