package match

import (
	"fmt"
	"sort"
)

// Config defines search bounds and coach eligibility toggles.
type Config struct {
	// MaxFinished caps the finished set; reaching it stops the search.
	MaxFinished int `json:"max_finished"`
	// MaxActive caps the active set; exceeding it triggers a cull down to
	// MaxFinished survivors.
	MaxActive int `json:"max_active"`
	// Seed drives the student shuffle so runs are reproducible.
	Seed int64 `json:"seed"`

	FirstChoice  bool `json:"first_choice"`
	SecondChoice bool `json:"second_choice"`
	GreatestNeed bool `json:"greatest_need"`
}

// SetDefaults applies the stock search bounds.
func (c *Config) SetDefaults() {
	if c.MaxFinished == 0 {
		c.MaxFinished = 100000
	}
	if c.MaxActive == 0 {
		c.MaxActive = 200000
	}
}

// Validate checks the bounds are coherent.
func (c Config) Validate() error {
	if c.MaxFinished <= 0 {
		return fmt.Errorf("max_finished must be positive")
	}
	if c.MaxActive < c.MaxFinished {
		return fmt.Errorf("max_active %d below max_finished %d", c.MaxActive, c.MaxFinished)
	}
	return nil
}

// Progress is a search loop snapshot handed to the observer once per
// processed cycle. It is informational only; the observer must not block and
// is never required for correctness.
type Progress struct {
	CyclesProcessed int
	CyclesTotal     int
	Active          int
	Finished        int
	Culled          int
}

// Observer receives Progress snapshots during a search.
type Observer func(Progress)

// SearchStats reports how a search run ended.
type SearchStats struct {
	CyclesProcessed int
	Culled          int
	// BoundReached is set when culling occurred or the finished cap stopped
	// the search early. It degrades solution quality but is not an error.
	BoundReached bool
}

// Search processes the ordered cycle list exactly once, branching every
// active traversal into accept and reject children and siphoning done
// traversals into the finished set. It returns the best-scoring traversal,
// or nil when the root itself could accept nothing and no traversal exists.
func Search(root *Traversal, ag *Graph, cycles []Cycle, cfg Config, obs Observer) (*Traversal, SearchStats) {
	active := []*Traversal{root}
	var finished []*Traversal
	var stats SearchStats

	for _, cyc := range cycles {
		if len(finished) >= cfg.MaxFinished {
			stats.BoundReached = true
			break
		}
		if len(active) >= cfg.MaxActive {
			// Score, sort, and keep only the best; an explicit loss of
			// completeness in exchange for bounded memory.
			sortByScore(active)
			stats.Culled += len(active) - cfg.MaxFinished
			active = active[:cfg.MaxFinished]
			for _, t := range active {
				t.InvalidateScore()
			}
			stats.BoundReached = true
		}

		next := make([]*Traversal, 0, len(active)+1)
		for _, t := range active {
			if child := t.Attempt(ag, cyc); child != nil {
				next = append(next, child)
			}
			if t.Done() {
				finished = append(finished, t)
			} else {
				next = append(next, t)
			}
		}
		active = next
		stats.CyclesProcessed++

		if obs != nil {
			obs(Progress{
				CyclesProcessed: stats.CyclesProcessed,
				CyclesTotal:     len(cycles),
				Active:          len(active),
				Finished:        len(finished),
				Culled:          stats.Culled,
			})
		}
	}

	// The search space may be exhausted before enough traversals finish; the
	// best of the remaining active ones fill the room left in finished.
	if len(finished) < cfg.MaxFinished {
		sortByScore(active)
		room := cfg.MaxFinished - len(finished)
		if room > len(active) {
			room = len(active)
		}
		finished = append(finished, active[:room]...)
		for _, t := range finished {
			t.InvalidateScore()
		}
	}

	sortByScore(finished)
	if len(finished) == 0 {
		return nil, stats
	}
	return finished[0], stats
}

func sortByScore(ts []*Traversal) {
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].Score().Less(ts[j].Score()) })
}
