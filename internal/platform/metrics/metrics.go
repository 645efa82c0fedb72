package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	ClaimsIssued          prometheus.Counter
	AuthorizationFailures *prometheus.CounterVec
	LoginAttempts         *prometheus.CounterVec
	ClaimsLatency         prometheus.Histogram
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		ClaimsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "membergate_claims_issued_total",
			Help: "Total number of claim payloads assembled successfully",
		}),
		AuthorizationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "membergate_authorization_failures_total",
			Help: "Total number of rejected claims requests, by gate",
		}, []string{"reason"}),
		LoginAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "membergate_login_attempts_total",
			Help: "Total number of login attempts on the bridge, by result",
		}, []string{"result"}),
		ClaimsLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "membergate_claims_assembly_seconds",
			Help:    "Time spent assembling a claims payload",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// IncrementAuthorizationFailure records a rejected claims request.
// Safe on a nil receiver so services can run without metrics wired.
func (m *Metrics) IncrementAuthorizationFailure(reason string) {
	if m == nil {
		return
	}
	m.AuthorizationFailures.WithLabelValues(reason).Inc()
}

// IncrementClaimsIssued records a successful assembly.
func (m *Metrics) IncrementClaimsIssued() {
	if m == nil {
		return
	}
	m.ClaimsIssued.Inc()
}

// IncrementLoginAttempt records a login attempt outcome.
func (m *Metrics) IncrementLoginAttempt(result string) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(result).Inc()
}

// ObserveClaimsLatency records assembly duration in seconds.
func (m *Metrics) ObserveClaimsLatency(seconds float64) {
	if m == nil {
		return
	}
	m.ClaimsLatency.Observe(seconds)
}
