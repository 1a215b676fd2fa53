// Package pipeline drives the fetch → transform → filter flow across
// all configured regions and produces the run summary.
//
// Failure handling throughout is log-and-skip. The only terminal error
// is every region failing at its first page with nothing fetched.
package pipeline

import (
	"errors"
	"time"

	"github.com/runfinder/race-fetcher/internal/logger"
	"github.com/runfinder/race-fetcher/internal/race"
	"github.com/runfinder/race-fetcher/internal/runsignup"
)

// ErrAllRegionsUnreachable is returned when no configured region
// yielded any listing data.
var ErrAllRegionsUnreachable = errors.New("no configured region could be reached")

// ListingSource fetches all raw race entries for one region.
type ListingSource interface {
	FetchState(state string) ([]runsignup.Race, error)
}

// ImageResolver resolves a city image URL. Implementations never fail;
// they fall back to a default URL.
type ImageResolver interface {
	CityImage(city, stateName string) string
}

// RegionStats holds per-region counts for the run summary.
type RegionStats struct {
	Fetched int    `json:"fetched"`
	Kept    int    `json:"kept"`
	Skipped int    `json:"skipped"`
	Error   string `json:"error,omitempty"`
}

// Summary is the end-of-run report.
type Summary struct {
	Regions      map[string]*RegionStats `json:"regions"`
	TotalKept    int                     `json:"total_kept"`
	TotalSkipped int                     `json:"total_skipped"`
	FilteredPast int                     `json:"filtered_past"`
	Counters     map[string]int64        `json:"counters,omitempty"`
}

// Pipeline wires the listing source and image resolver to the
// configured regions.
type Pipeline struct {
	Listings ListingSource
	Images   ImageResolver
	Regions  []race.Region
}

// New creates a pipeline over the default regions.
func New(listings ListingSource, images ImageResolver) *Pipeline {
	return &Pipeline{
		Listings: listings,
		Images:   images,
		Regions:  race.DefaultRegions,
	}
}

// Run executes the full pipeline: fetch every region, normalize every
// entry, filter to dates on or after today, and report the summary.
func (p *Pipeline) Run(today time.Time) ([]race.Race, *Summary, error) {
	summary := &Summary{Regions: make(map[string]*RegionStats)}

	all := make([]race.Race, 0)
	seen := make(map[string]bool)
	unreachable := 0

	for _, region := range p.Regions {
		stats := &RegionStats{}
		summary.Regions[region.Code] = stats

		logger.Info("Processing region", logger.Fields{
			"state": region.Code,
			"name":  region.Name,
		})

		raws, err := p.Listings.FetchState(region.Code)
		if err != nil {
			unreachable++
			stats.Error = err.Error()
			logger.Error("Region unreachable", logger.Fields{
				"state": region.Code,
			}, err)
			continue
		}
		stats.Fetched = len(raws)

		for _, raw := range raws {
			races, skipped := p.transform(raw, region)
			stats.Skipped += skipped

			for _, r := range races {
				if seen[r.ID] {
					stats.Skipped++
					logger.Warn("Skipping duplicate race id", logger.Fields{
						"id":    r.ID,
						"state": region.Code,
					})
					logger.Incr("entries.skipped.duplicate_id")
					continue
				}
				seen[r.ID] = true
				all = append(all, r)
				stats.Kept++
			}
		}
	}

	if len(p.Regions) > 0 && unreachable == len(p.Regions) {
		return nil, summary, ErrAllRegionsUnreachable
	}

	// Global future-date filter, calendar-date granularity only
	kept := make([]race.Race, 0, len(all))
	for _, r := range all {
		if !r.IsUpcoming(today) {
			summary.FilteredPast++
			logger.Debug("Filtering past race", logger.Fields{
				"id":   r.ID,
				"date": r.Date,
			})
			continue
		}
		kept = append(kept, r)
	}

	summary.TotalKept = len(kept)
	for _, stats := range summary.Regions {
		summary.TotalSkipped += stats.Skipped
	}
	summary.Counters = logger.CountersSnapshot()

	logger.Info("Run complete", logger.Fields{
		"total_fetched": len(all),
		"total_kept":    summary.TotalKept,
		"total_skipped": summary.TotalSkipped,
		"filtered_past": summary.FilteredPast,
	})

	return kept, summary, nil
}

// transform normalizes one raw listing row into zero or more races:
// one per event, or a single entry when the race lists no events.
// Returns the races plus the number of entries skipped.
func (p *Pipeline) transform(raw runsignup.Race, region race.Region) ([]race.Race, int) {
	if raw.Name == "" {
		logger.Warn("Skipping race without a name", logger.Fields{
			"race_id": raw.RaceID,
			"state":   region.Code,
		})
		logger.Incr("entries.skipped.missing_name")
		return nil, 1
	}

	parsed := race.ParseListingDate(raw.NextDate)
	if parsed.IsZero() {
		logger.Warn("Skipping race without a usable date", logger.Fields{
			"race_id": raw.RaceID,
			"name":    raw.Name,
			"date":    raw.NextDate,
			"state":   region.Code,
		})
		logger.Incr("entries.skipped.missing_date")
		return nil, 1
	}
	date := parsed.Format(race.DateLayout)

	city := raw.Address.City
	if city == "" {
		city = "Unknown"
	}

	description := race.StripHTML(raw.Description)
	imageURL := p.Images.CityImage(city, region.Name)

	// Race with no events still produces a single entry
	if len(raw.Events) == 0 {
		return []race.Race{{
			ID:              race.SoloID(raw.RaceID),
			Name:            raw.Name,
			Date:            date,
			City:            city,
			State:           region.Code,
			Distance:        "Unknown",
			Difficulty:      race.DefaultDifficulty,
			Description:     description,
			ImageURL:        imageURL,
			Latitude:        raw.Latitude,
			Longitude:       raw.Longitude,
			HasKidsRace:     false,
			RegistrationURL: raw.URL,
		}}, 0
	}

	eventNames := make([]string, 0, len(raw.Events))
	for _, e := range raw.Events {
		eventNames = append(eventNames, e.Name)
	}
	hasKids := race.HasKidsEvent(eventNames)

	races := make([]race.Race, 0, len(raw.Events))
	for _, e := range raw.Events {
		distance := e.Distance
		if distance == "" {
			distance = "Unknown"
		}

		races = append(races, race.Race{
			ID:              race.CompositeID(raw.RaceID, e.EventID),
			Name:            raw.Name,
			Date:            date,
			City:            city,
			State:           region.Code,
			Distance:        distance,
			Difficulty:      race.ClassifyDistance(distance),
			Description:     description,
			ImageURL:        imageURL,
			Latitude:        raw.Latitude,
			Longitude:       raw.Longitude,
			HasKidsRace:     hasKids,
			RegistrationURL: raw.URL,
		})
	}
	return races, 0
}
