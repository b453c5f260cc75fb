// ABOUTME: Prometheus metrics for the proxy, registered on a per-instance registry.
// ABOUTME: Counters are nil-safe so components can run without metrics in tests.

package proxy

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Scrape results recorded on scrape_requests_total.
const (
	resultSuccess   = "success"
	resultInvalid   = "invalid"
	resultNoAgent   = "no_agent"
	resultSaturated = "saturated"
	resultTimeout   = "timeout"
	resultAgentGone = "agent_gone"
	resultError     = "error"
)

// Metrics holds all the Prometheus metrics for the proxy
type Metrics struct {
	ScrapeRequests *prometheus.CounterVec
	ScrapeDuration prometheus.Histogram
	Connects       prometheus.Counter
	Heartbeats     prometheus.Counter
	Evictions      *prometheus.CounterVec
	UnknownScrapes prometheus.Counter
}

// NewMetrics creates the proxy metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ScrapeRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "scrape_relay_proxy_scrape_requests_total",
			Help: "Total number of scrape requests by result",
		}, []string{"result"}),
		ScrapeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "scrape_relay_proxy_scrape_duration_seconds",
			Help:    "Round-trip latency of successful scrapes through an agent",
			Buckets: prometheus.DefBuckets,
		}),
		Connects: f.NewCounter(prometheus.CounterOpts{
			Name: "scrape_relay_proxy_connects_total",
			Help: "Total number of agent connections accepted",
		}),
		Heartbeats: f.NewCounter(prometheus.CounterOpts{
			Name: "scrape_relay_proxy_heartbeats_total",
			Help: "Total number of agent heartbeats received",
		}),
		Evictions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "scrape_relay_proxy_agent_evictions_total",
			Help: "Total number of agent contexts removed by reason",
		}, []string{"reason"}),
		UnknownScrapes: f.NewCounter(prometheus.CounterOpts{
			Name: "scrape_relay_proxy_unknown_scrape_responses_total",
			Help: "Total number of agent responses discarded for an unknown scrape_id",
		}),
	}
}

// RegisterGauges exposes the registry's table sizes on reg.
func (m *Metrics) RegisterGauges(reg prometheus.Registerer, r *Registry) {
	f := promauto.With(reg)
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "scrape_relay_proxy_agents",
		Help: "Number of connected agents",
	}, func() float64 { return float64(r.AgentCount()) })
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "scrape_relay_proxy_paths",
		Help: "Number of registered paths",
	}, func() float64 { return float64(r.PathCount()) })
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "scrape_relay_proxy_pending_scrapes",
		Help: "Number of scrapes awaiting an agent response",
	}, func() float64 { return float64(r.PendingCount()) })
}

func (m *Metrics) scrape(result string) {
	if m == nil {
		return
	}
	m.ScrapeRequests.WithLabelValues(result).Inc()
}

func (m *Metrics) observeScrape(d time.Duration) {
	if m == nil {
		return
	}
	m.ScrapeDuration.Observe(d.Seconds())
}

func (m *Metrics) connect() {
	if m == nil {
		return
	}
	m.Connects.Inc()
}

func (m *Metrics) heartbeat() {
	if m == nil {
		return
	}
	m.Heartbeats.Inc()
}

func (m *Metrics) evict(reason string) {
	if m == nil {
		return
	}
	m.Evictions.WithLabelValues(reason).Inc()
}

func (m *Metrics) unknownScrape() {
	if m == nil {
		return
	}
	m.UnknownScrapes.Inc()
}
