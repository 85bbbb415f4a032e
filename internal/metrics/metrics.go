package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vorgang_meister"

// Metrics bündelt HTTP- und Fachmetriken. Ein nil *Metrics ist gültig und zeichnet nichts auf.
type Metrics struct {
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	transitions     *prometheus.CounterVec
	sessionEvents   *prometheus.CounterVec
	renumberWrites  prometheus.Counter
	notifications   *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "vorgang",
			Name:      "transitions_total",
			Help:      "Vorgang status transitions by target status",
		}, []string{"to"}),
		sessionEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "events_total",
			Help:      "Session lifecycle events",
		}, []string{"event"}),
		renumberWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sequence",
			Name:      "renumber_writes_total",
			Help:      "Labels rewritten by renumber passes",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifier",
			Name:      "notifications_total",
			Help:      "Notifications handed to the notifier by outcome",
		}, []string{"outcome"}),
	}

	m.requestCount = register(reg, m.requestCount)
	m.requestDuration = register(reg, m.requestDuration)
	m.transitions = register(reg, m.transitions)
	m.sessionEvents = register(reg, m.sessionEvents)
	m.renumberWrites = register(reg, m.renumberWrites)
	m.notifications = register(reg, m.notifications)
	return m
}

// register liefert bei doppelter Registrierung den bereits vorhandenen Collector zurück.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestCount.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) Transition(to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(to).Inc()
}

func (m *Metrics) SessionEvent(event string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.sessionEvents.WithLabelValues(event).Add(float64(n))
}

func (m *Metrics) RenumberWrites(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.renumberWrites.Add(float64(n))
}

func (m *Metrics) Notification(outcome string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(outcome).Inc()
}

// Handler liefert den /metrics-Endpunkt für die gegebene Registry.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
