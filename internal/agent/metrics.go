// ABOUTME: Prometheus metrics for the agent, registered on a per-instance registry.
// ABOUTME: Counters are nil-safe so the pipeline can run without metrics in tests.

package agent

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch results recorded on scrape_requests_total.
const (
	resultSuccess      = "success"
	resultUnsuccessful = "unsuccessful"
	resultInvalidPath  = "invalid_path"
)

// Metrics holds all the Prometheus metrics for the agent
type Metrics struct {
	Connects       *prometheus.CounterVec
	ScrapeRequests *prometheus.CounterVec
	ScrapeDuration prometheus.Histogram
	Heartbeats     prometheus.Counter
}

// NewMetrics creates the agent metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Connects: f.NewCounterVec(prometheus.CounterOpts{
			Name: "scrape_relay_agent_connects_total",
			Help: "Total number of connection attempts to the proxy by result",
		}, []string{"result"}),
		ScrapeRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "scrape_relay_agent_scrape_requests_total",
			Help: "Total number of scrape requests fetched by result",
		}, []string{"result"}),
		ScrapeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "scrape_relay_agent_scrape_duration_seconds",
			Help:    "Latency of target fetches",
			Buckets: prometheus.DefBuckets,
		}),
		Heartbeats: f.NewCounter(prometheus.CounterOpts{
			Name: "scrape_relay_agent_heartbeats_total",
			Help: "Total number of heartbeats sent to the proxy",
		}),
	}
}

func (m *Metrics) connect(success bool) {
	if m == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	m.Connects.WithLabelValues(result).Inc()
}

func (m *Metrics) scrape(result string) {
	if m == nil {
		return
	}
	m.ScrapeRequests.WithLabelValues(result).Inc()
}

func (m *Metrics) observeFetch(d time.Duration) {
	if m == nil {
		return
	}
	m.ScrapeDuration.Observe(d.Seconds())
}

func (m *Metrics) heartbeat() {
	if m == nil {
		return
	}
	m.Heartbeats.Inc()
}
