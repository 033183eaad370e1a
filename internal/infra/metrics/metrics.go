package metrics

import (
	"strconv"
	"time"

	"fahasa-storefront/internal/domain/cart"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storefront"

// Collector implements the cart sync observer and the backend request observer on one
// registry. A nil Collector records nothing.
type Collector struct {
	batchSize       prometheus.Histogram
	batchDuration   *prometheus.HistogramVec
	mutations       *prometheus.CounterVec
	immediateAdds   *prometheus.CounterVec
	refreshes       *prometheus.CounterVec
	flushDuration   prometheus.Histogram
	activeSessions  prometheus.Gauge
	backendRequests *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		return nil
	}
	c := &Collector{
		batchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cart_sync_batch_size",
			Help:      "Mutations dispatched per cart sync batch.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
		}),
		batchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cart_sync_batch_duration_seconds",
			Help:      "Duration of cart sync batches.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_sync_mutations_total",
			Help:      "Cart mutations sent to the backend.",
		}, []string{"action", "result"}),
		immediateAdds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_immediate_adds_total",
			Help:      "Add-to-cart requests sent outside the debounced batch.",
		}, []string{"result"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_refreshes_total",
			Help:      "Authoritative cart reloads from the backend.",
		}, []string{"outcome"}),
		flushDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cart_flush_duration_seconds",
			Help:      "Time spent draining pending cart mutations before checkout.",
			Buckets:   prometheus.DefBuckets,
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cart_active_sessions",
			Help:      "Cart engines currently held in memory.",
		}),
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Requests sent to the storefront backend.",
		}, []string{"method", "route", "status"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Latency of storefront backend requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		c.batchSize,
		c.batchDuration,
		c.mutations,
		c.immediateAdds,
		c.refreshes,
		c.flushDuration,
		c.activeSessions,
		c.backendRequests,
		c.backendDuration,
	)
	return c
}

func (c *Collector) BatchCompleted(size int, outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.batchSize.Observe(float64(size))
	c.batchDuration.WithLabelValues(normalizeLabel(outcome)).Observe(elapsed.Seconds())
}

func (c *Collector) MutationApplied(action cart.Action, err error) {
	if c == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(action.String()), result(err)).Inc()
}

func (c *Collector) ImmediateAdd(err error) {
	if c == nil {
		return
	}
	c.immediateAdds.WithLabelValues(result(err)).Inc()
}

func (c *Collector) Refreshed(outcome string) {
	if c == nil {
		return
	}
	c.refreshes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func (c *Collector) Flushed(elapsed time.Duration) {
	if c == nil {
		return
	}
	c.flushDuration.Observe(elapsed.Seconds())
}

func (c *Collector) ActiveSessions(n int) {
	if c == nil {
		return
	}
	c.activeSessions.Set(float64(n))
}

// BackendRequest records a round-trip; status 0 means the request never got a response.
func (c *Collector) BackendRequest(method, route string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	c.backendRequests.WithLabelValues(method, normalizeLabel(route), code).Inc()
	c.backendDuration.WithLabelValues(method, normalizeLabel(route)).Observe(elapsed.Seconds())
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
