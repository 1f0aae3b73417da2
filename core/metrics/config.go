package metrics

import "github.com/readingcorps/rsmatch/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// PrometheusAddr, when set, exposes /metrics on this address for the
	// duration of the run.
	PrometheusAddr string `json:"prometheus_addr"`
}
