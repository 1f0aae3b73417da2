// Package match implements the coach-to-student scheduling engine. It builds
// a time-availability graph of (day, slot, teacher) nodes, enumerates each
// coach's feasible contiguous visit blocks as elementary cycles of an
// augmented graph, and runs a bounded branching search over the ordered cycle
// list. Partial solutions are scored by a fixed lexicographic objective and
// culled when the active set grows past the configured cap, trading global
// optimality for bounded runtime and memory.
package match
