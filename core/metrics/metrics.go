package metrics

import "time"

// MatchResult summarizes one completed school matching run.
type MatchResult struct {
	RunID              string
	School             string
	Assignments        int
	UnassignedStudents int
	UnassignedTeachers int
	SlotOverlaps       int
	DaysRemaining      int
	CyclesFound        int
	Culled             int
	Duration           time.Duration
	Time               time.Time
}

// MetricsSink records match results for observability purposes.
type MetricsSink interface {
	RecordMatchResult(results []MatchResult) error
}

// SearchProgress is a snapshot of the traversal search loop, emitted once per
// processed cycle.
type SearchProgress struct {
	RunID           string
	School          string
	CyclesProcessed int
	CyclesTotal     int
	Active          int
	Finished        int
	Culled          int
	Time            time.Time
}

// SearchRecorder is implemented by sinks able to record search progress.
type SearchRecorder interface {
	RecordSearchProgress(ev SearchProgress) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordMatchResult([]MatchResult) error { return nil }

// Ensure NopSink implements SearchRecorder.
func (NopSink) RecordSearchProgress(SearchProgress) error { return nil }
