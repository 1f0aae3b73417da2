package metrics

// MultiSink fans out match events to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordMatchResult forwards the results to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordMatchResult(res []MatchResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordMatchResult(res); err != nil {
			return err
		}
	}
	return nil
}

// RecordSearchProgress forwards progress snapshots to sinks that record them.
func (m *MultiSink) RecordSearchProgress(ev SearchProgress) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(SearchRecorder); ok {
			if err := rec.RecordSearchProgress(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
