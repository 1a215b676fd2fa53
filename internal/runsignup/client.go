// Package runsignup is a client for the RunSignUp race listing API.
//
// Listings are paginated; FetchState walks the pages for one region
// sequentially with a short delay between requests and stops at the
// first short or empty page. Individual page requests get a bounded
// retry; a failed page past the first is treated as end of data.
package runsignup

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/runfinder/race-fetcher/internal/logger"
)

const (
	BaseURL   = "https://api.runsignup.com/rest/races"
	UserAgent = "race-fetcher/1.0 (github.com/runfinder/race-fetcher)"
	PageSize  = 50
	Timeout   = 30 * time.Second

	// pause between page requests to stay under the API's rate limits
	defaultPageDelay = 500 * time.Millisecond

	// bounded immediate retry per page request, never indefinite
	maxRetries = 2
)

// Client fetches paginated race listings for one region at a time.
type Client struct {
	baseURL    string
	httpClient *http.Client
	pageSize   int
	pageDelay  time.Duration
}

// New creates a listing client with production defaults.
func New() *Client {
	return &Client{
		baseURL: BaseURL,
		httpClient: &http.Client{
			Timeout: Timeout,
		},
		pageSize:  PageSize,
		pageDelay: defaultPageDelay,
	}
}

// FetchPage requests a single page of races for a state. Transport
// errors and 429s are retried a bounded number of times; any other
// non-200 status or a malformed body fails immediately.
func (c *Client) FetchPage(state string, page int) ([]Race, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("state", state)
	params.Set("events", "T")
	params.Set("page", strconv.Itoa(page))
	params.Set("results_per_page", strconv.Itoa(c.pageSize))

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	var result racesResponse
	op := func() error {
		req, err := http.NewRequest("GET", reqURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", UserAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("fetching page: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("rate limited: status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
		}

		result = racesResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return backoff.Permanent(fmt.Errorf("parsing response: %w", err))
		}
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}

	races := make([]Race, 0, len(result.Races))
	for _, w := range result.Races {
		races = append(races, w.Race)
	}
	return races, nil
}

// FetchState retrieves all pages of races for one region and returns
// the concatenated raw entries. Pagination stops at the first page
// returning fewer than the page size or no entries at all.
//
// A failure on the first page means the region is unreachable and is
// returned to the caller; a failure on any later page is logged and
// treated as end of data for the region.
func (c *Client) FetchState(state string) ([]Race, error) {
	all := make([]Race, 0)

	for page := 1; ; page++ {
		if page > 1 && c.pageDelay > 0 {
			time.Sleep(c.pageDelay)
		}

		logger.Info("Fetching races", logger.Fields{
			"state": state,
			"page":  page,
		})

		races, err := c.FetchPage(state, page)
		if err != nil {
			if page == 1 {
				return nil, fmt.Errorf("fetching %s page 1: %w", state, err)
			}
			logger.Warn("Page fetch failed, treating as end of data", logger.Fields{
				"state": state,
				"page":  page,
				"error": err.Error(),
			})
			break
		}

		logger.Incr("pages.fetched")
		all = append(all, races...)

		if len(races) < c.pageSize {
			break
		}
	}

	return all, nil
}
