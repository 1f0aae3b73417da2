// Package metrics defines interfaces and implementations for collecting match
// run metrics. Sinks like PromSink and InfluxSink record events such as
// completed runs or search progress and can be combined with NewMultiSink.
// The factory helpers return a MultiSink automatically when multiple sinks
// are configured.
package metrics
