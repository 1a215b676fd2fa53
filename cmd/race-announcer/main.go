// Command race-announcer reads a races.json artifact produced by
// race-fetcher and posts upcoming races to Twitter, soonest first.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/runfinder/race-fetcher/internal/notifier"
	"github.com/runfinder/race-fetcher/internal/race"
	"github.com/runfinder/race-fetcher/internal/storage"
)

var (
	racesFile   = flag.String("races-file", "", "Path to races JSON file (or read from stdin)")
	dryRun      = flag.Bool("dry-run", false, "Print tweets without posting")
	maxPosts    = flag.Int("max-posts", 10, "Maximum number of races to announce")
	stateFilter = flag.String("state", "", "Only announce races for this state")
)

func main() {
	flag.Parse()

	// Read races from file or stdin
	var races []race.Race
	if *racesFile != "" {
		loaded, err := storage.LoadRaces(*racesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading races: %v\n", err)
			os.Exit(1)
		}
		races = loaded
	} else {
		decoder := json.NewDecoder(os.Stdin)
		if err := decoder.Decode(&races); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing JSON: %v\n", err)
			os.Exit(1)
		}
	}

	if *stateFilter != "" {
		filtered := make([]race.Race, 0)
		for _, r := range races {
			if r.State == *stateFilter {
				filtered = append(filtered, r)
			}
		}
		races = filtered
	}

	if len(races) == 0 {
		fmt.Println("No races to announce")
		os.Exit(0)
	}

	// Soonest races first; dates are YYYY-MM-DD so string order works
	sort.Slice(races, func(i, j int) bool {
		return races[i].Date < races[j].Date
	})

	if len(races) > *maxPosts {
		races = races[:*maxPosts]
	}

	var n notifier.Notifier
	if *dryRun {
		n = notifier.NewDryRunNotifier()
	} else {
		tw, err := notifier.NewTwitterNotifier()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating Twitter notifier: %v\n", err)
			os.Exit(1)
		}
		n = tw
	}

	if err := n.Notify(races); err != nil {
		fmt.Fprintf(os.Stderr, "Error posting announcements: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Announced %d races\n", len(races))
}
