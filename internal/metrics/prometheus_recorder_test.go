package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNewPrometheusRecorder_RegistersAndRecords(t *testing.T) {
	reg := prom.NewRegistry()
	rec := NewPrometheusRecorder(reg)

	rec.IncResolution(ResolutionResolved)
	rec.IncResolution(ResolutionFallback)
	rec.ObserveCandidateProbes(2)
	rec.IncSourceLookup(SourceMissing)
	rec.ObserveEnumerationDuration(50 * time.Millisecond)
	rec.SetEnumeratedRoutes(42)
	rec.IncAuditUnresolved(3)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	require.True(t, names["docsite_href_resolutions_total"])
	require.True(t, names["docsite_source_lookups_total"])
	require.True(t, names["docsite_enumerated_routes"])
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var rec *PrometheusRecorder
	require.NotPanics(t, func() {
		rec.IncResolution(ResolutionResolved)
		rec.ObserveCandidateProbes(1)
		rec.IncSourceLookup(SourceFound)
		rec.SetEnumeratedRoutes(1)
		rec.IncAuditUnresolved(1)
	})
}
