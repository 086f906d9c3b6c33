package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once             sync.Once
	resolutions      *prom.CounterVec
	candidateProbes  prom.Histogram
	sourceLookups    *prom.CounterVec
	enumDuration     prom.Histogram
	enumeratedRoutes prom.Gauge
	auditUnresolved  prom.Counter
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.resolutions = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docsite",
			Name:      "href_resolutions_total",
			Help:      "Href resolution outcomes by result",
		}, []string{"result"})
		pr.candidateProbes = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docsite",
			Name:      "resolution_candidate_probes",
			Help:      "Page-index probes performed per resolution",
			Buckets:   []float64{1, 2, 3, 4},
		})
		pr.sourceLookups = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docsite",
			Name:      "source_lookups_total",
			Help:      "Raw source lookup outcomes by result",
		}, []string{"result"})
		pr.enumDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docsite",
			Name:      "route_enumeration_duration_seconds",
			Help:      "Duration of static route enumeration passes",
			Buckets:   prom.DefBuckets,
		})
		pr.enumeratedRoutes = prom.NewGauge(prom.GaugeOpts{
			Namespace: "docsite",
			Name:      "enumerated_routes",
			Help:      "Route count produced by the last enumeration pass",
		})
		pr.auditUnresolved = prom.NewCounter(prom.CounterOpts{
			Namespace: "docsite",
			Name:      "audit_unresolved_links_total",
			Help:      "Unresolved internal links found by link audits",
		})
		reg.MustRegister(pr.resolutions, pr.candidateProbes, pr.sourceLookups,
			pr.enumDuration, pr.enumeratedRoutes, pr.auditUnresolved)
	})
	return pr
}

func (p *PrometheusRecorder) IncResolution(result ResolutionResult) {
	if p == nil || p.resolutions == nil {
		return
	}
	p.resolutions.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveCandidateProbes(n int) {
	if p == nil || p.candidateProbes == nil {
		return
	}
	p.candidateProbes.Observe(float64(n))
}

func (p *PrometheusRecorder) IncSourceLookup(result SourceResult) {
	if p == nil || p.sourceLookups == nil {
		return
	}
	p.sourceLookups.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveEnumerationDuration(d time.Duration) {
	if p == nil || p.enumDuration == nil {
		return
	}
	p.enumDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetEnumeratedRoutes(n int) {
	if p == nil || p.enumeratedRoutes == nil {
		return
	}
	p.enumeratedRoutes.Set(float64(n))
}

func (p *PrometheusRecorder) IncAuditUnresolved(n int) {
	if p == nil || p.auditUnresolved == nil || n <= 0 {
		return
	}
	p.auditUnresolved.Add(float64(n))
}
