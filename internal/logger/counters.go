package logger

import "sync"

// Counters tracks incrementing run statistics (pages fetched, entries
// kept, entries skipped per reason). Thread-safe, though the pipeline
// itself is single-threaded.
type Counters struct {
	mu     sync.Mutex
	counts map[string]int64
}

var defaultCounters = NewCounters()

// NewCounters creates an empty counter set.
func NewCounters() *Counters {
	return &Counters{counts: make(map[string]int64)}
}

// Incr increments a counter by 1, initializing it if absent.
func (c *Counters) Incr(name string) {
	c.Add(name, 1)
}

// Add increments a counter by n, initializing it if absent.
func (c *Counters) Add(name string, n int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[name] += n
}

// Snapshot returns a copy of all counters.
func (c *Counters) Snapshot() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]int64, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// Incr increments a counter on the default counter set.
func Incr(name string) {
	defaultCounters.Incr(name)
}

// Add increments a counter on the default counter set by n.
func Add(name string, n int64) {
	defaultCounters.Add(name, n)
}

// CountersSnapshot returns a copy of the default counter set.
func CountersSnapshot() map[string]int64 {
	return defaultCounters.Snapshot()
}
