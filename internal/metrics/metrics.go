// Package metrics exposes Prometheus counters for the game hub.
//
// A nil *Manager is valid and records nothing, so services can be built
// without metrics in tests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns the hub's metrics and the registry they live on.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Business metrics
	resultsRecorded   *prometheus.CounterVec
	resultErrors      *prometheus.CounterVec
	registrations     *prometheus.CounterVec
	leaderboardReads  *prometheus.CounterVec
	gameSessionsStart *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewManager creates a metrics manager with its own registry unless one is supplied.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "gamehub",
		histogramBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.resultsRecorded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "results_recorded_total",
		Help:      "Terminal game results applied to user records",
	}, []string{"game", "outcome"})

	m.resultErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "result_errors_total",
		Help:      "Game results that could not be applied",
	}, []string{"game", "reason"})

	m.registrations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "registrations_total",
		Help:      "Registration attempts by result",
	}, []string{"result"})

	m.leaderboardReads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "leaderboard_reads_total",
		Help:      "Leaderboard queries by board",
	}, []string{"board"})

	m.gameSessionsStart = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "game_sessions_started_total",
		Help:      "Game sessions started by game",
	}, []string{"game"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status code",
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration in seconds",
		Buckets:   m.histogramBuckets,
	}, []string{"route", "method"})
}

// Registry returns the registry the metrics are registered on.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ResultRecorded counts one applied game result.
func (m *Manager) ResultRecorded(game, outcome string) {
	if m == nil {
		return
	}
	m.resultsRecorded.WithLabelValues(game, outcome).Inc()
}

// ResultFailed counts a result that was rejected or could not be stored.
func (m *Manager) ResultFailed(game, reason string) {
	if m == nil {
		return
	}
	m.resultErrors.WithLabelValues(game, reason).Inc()
}

// Registration counts a registration attempt ("ok", "exists", "invalid", "error").
func (m *Manager) Registration(result string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(result).Inc()
}

// LeaderboardRead counts a leaderboard query.
func (m *Manager) LeaderboardRead(board string) {
	if m == nil {
		return
	}
	m.leaderboardReads.WithLabelValues(board).Inc()
}

// GameStarted counts a new game session.
func (m *Manager) GameStarted(game string) {
	if m == nil {
		return
	}
	m.gameSessionsStart.WithLabelValues(game).Inc()
}

// ObserveHTTP records one served request.
func (m *Manager) ObserveHTTP(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}
