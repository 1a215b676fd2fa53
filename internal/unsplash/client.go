// Package unsplash resolves a representative city image for each race
// via the Unsplash photo search API.
//
// The resolver never fails: without an access key, on any request
// error, or with an empty result set it returns DefaultImageURL. A
// per-city cache keeps one network lookup per city per run.
package unsplash

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/runfinder/race-fetcher/internal/logger"
)

const (
	SearchURL = "https://api.unsplash.com/search/photos"
	Timeout   = 10 * time.Second

	// DefaultImageURL is the static fallback shown when no image can
	// be resolved for a city.
	DefaultImageURL = "https://images.unsplash.com/photo-1449824913935-59a10b8d2000?w=800&h=600&fit=crop&crop=center"

	// pause before each search request to respect Unsplash rate limits
	defaultSearchDelay = 200 * time.Millisecond
)

// Client is a client for the Unsplash photo search API.
type Client struct {
	accessKey   string
	baseURL     string
	httpClient  *http.Client
	cache       *Cache
	searchDelay time.Duration
}

// NewClient creates an image resolver. An empty access key is valid:
// every lookup then short-circuits to the default URL.
func NewClient(accessKey string) *Client {
	return &Client{
		accessKey: accessKey,
		baseURL:   SearchURL,
		httpClient: &http.Client{
			Timeout: Timeout,
		},
		cache:       NewCache(),
		searchDelay: defaultSearchDelay,
	}
}

// photo search response, first result's regular-size URL is used
type searchResult struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// CityImage returns a skyline image URL for a city. It never returns
// an empty string or an error; failures fall back to DefaultImageURL.
func (c *Client) CityImage(city, stateName string) string {
	if c.accessKey == "" {
		return DefaultImageURL
	}

	if cached, ok := c.cache.Get(city, stateName); ok {
		if cached == "" {
			return DefaultImageURL
		}
		return cached
	}

	imageURL, err := c.search(fmt.Sprintf("%s %s skyline", city, stateName))
	if err != nil {
		logger.Warn("Image lookup failed, using default", logger.Fields{
			"city":  city,
			"state": stateName,
			"error": err.Error(),
		})
		c.cache.Set(city, stateName, "")
		return DefaultImageURL
	}

	c.cache.Set(city, stateName, imageURL)
	return imageURL
}

// search performs one photo search and returns the first result's URL.
func (c *Client) search(query string) (string, error) {
	if c.searchDelay > 0 {
		time.Sleep(c.searchDelay)
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "1")
	params.Set("orientation", "landscape")

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Client-ID %s", c.accessKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var result searchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}

	if len(result.Results) == 0 {
		return "", fmt.Errorf("no results for %q", query)
	}

	return result.Results[0].URLs.Regular, nil
}
