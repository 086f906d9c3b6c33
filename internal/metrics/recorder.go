// Package metrics defines the recorder abstraction used across the resolution
// pipeline plus its Prometheus implementation. Components depend on the
// Recorder interface so tests and library consumers can run without a
// registry.
package metrics

import "time"

// ResolutionResult labels the outcome of a single href resolution.
type ResolutionResult string

const (
	// ResolutionResolved means a candidate matched the page index.
	ResolutionResolved ResolutionResult = "resolved"
	// ResolutionFallback means no candidate matched and the original href was kept.
	ResolutionFallback ResolutionResult = "fallback"
)

// SourceResult labels the outcome of a raw-source lookup.
type SourceResult string

const (
	SourceFound   SourceResult = "found"
	SourceMissing SourceResult = "missing"
	SourceSkipped SourceResult = "skipped"
)

// Recorder collects operational metrics. Implementations must be nil-input
// tolerant and safe for concurrent use.
type Recorder interface {
	IncResolution(result ResolutionResult)
	ObserveCandidateProbes(n int)
	IncSourceLookup(result SourceResult)
	ObserveEnumerationDuration(d time.Duration)
	SetEnumeratedRoutes(n int)
	IncAuditUnresolved(n int)
}

type noopRecorder struct{}

func (noopRecorder) IncResolution(ResolutionResult)           {}
func (noopRecorder) ObserveCandidateProbes(int)               {}
func (noopRecorder) IncSourceLookup(SourceResult)             {}
func (noopRecorder) ObserveEnumerationDuration(time.Duration) {}
func (noopRecorder) SetEnumeratedRoutes(int)                  {}
func (noopRecorder) IncAuditUnresolved(int)                   {}

// Noop returns a recorder that discards everything.
func Noop() Recorder { return noopRecorder{} }
