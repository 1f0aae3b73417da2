package metrics

import (
	coremetrics "github.com/readingcorps/rsmatch/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records match events in Prometheus metrics.
type PromSink struct {
	runs       *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	unassigned *prometheus.GaugeVec
	active     *prometheus.GaugeVec
	finished   *prometheus.GaugeVec
	culled     *prometheus.GaugeVec
}

// NewPromSink registers match metrics on the default Prometheus registerer.
// The Prometheus server should be started separately with StartPromServer.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "match_runs_total",
		Help: "Total number of school matching runs",
	}, []string{"school"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "match_duration_seconds",
		Help:    "Wall time of one school matching run",
		Buckets: prometheus.DefBuckets,
	}, []string{"school"})
	unassigned := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "match_unassigned_students",
		Help: "Students left unassigned by the winning solution",
	}, []string{"school"})
	active := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "match_search_active_traversals",
		Help: "Active traversals in the current search round",
	}, []string{"school"})
	finished := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "match_search_finished_traversals",
		Help: "Finished traversals collected so far",
	}, []string{"school"})
	culled := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "match_search_culled",
		Help: "Traversals discarded by active-set culling in the current run",
	}, []string{"school"})

	collectors := map[string]prometheus.Collector{
		"runs": runs, "duration": duration, "unassigned": unassigned,
		"active": active, "finished": finished, "culled": culled,
	}
	for name, c := range collectors {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			switch name {
			case "runs":
				runs = are.ExistingCollector.(*prometheus.CounterVec)
			case "duration":
				duration = are.ExistingCollector.(*prometheus.HistogramVec)
			case "unassigned":
				unassigned = are.ExistingCollector.(*prometheus.GaugeVec)
			case "active":
				active = are.ExistingCollector.(*prometheus.GaugeVec)
			case "finished":
				finished = are.ExistingCollector.(*prometheus.GaugeVec)
			case "culled":
				culled = are.ExistingCollector.(*prometheus.GaugeVec)
			}
		}
	}

	return &PromSink{
		runs:       runs,
		duration:   duration,
		unassigned: unassigned,
		active:     active,
		finished:   finished,
		culled:     culled,
	}, nil
}

// RecordMatchResult records each completed run.
func (s *PromSink) RecordMatchResult(res []coremetrics.MatchResult) error {
	for _, r := range res {
		s.runs.WithLabelValues(r.School).Inc()
		s.duration.WithLabelValues(r.School).Observe(r.Duration.Seconds())
		s.unassigned.WithLabelValues(r.School).Set(float64(r.UnassignedStudents))
	}
	return nil
}

// RecordSearchProgress updates the search loop gauges.
func (s *PromSink) RecordSearchProgress(ev coremetrics.SearchProgress) error {
	s.active.WithLabelValues(ev.School).Set(float64(ev.Active))
	s.finished.WithLabelValues(ev.School).Set(float64(ev.Finished))
	s.culled.WithLabelValues(ev.School).Set(float64(ev.Culled))
	return nil
}
