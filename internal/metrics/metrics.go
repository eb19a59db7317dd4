package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is safe to use through a nil pointer; every method is then a no-op.
type Metrics struct {
	registry        *prometheus.Registry
	commands        *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
	todos           prometheus.Gauge
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		commands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "todo",
			Name:      "commands_total",
			Help:      "Commands applied to the todo store, by command and outcome.",
		}, []string{"command", "outcome"}),
		persistFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "todo",
			Name:      "persist_failures_total",
			Help:      "Recovered persistence failures, by stage.",
		}, []string{"stage"}),
		todos: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "todo",
			Name:      "todos",
			Help:      "Todos currently held by the store.",
		}),
	}
}

func (m *Metrics) ObserveCommand(command, outcome string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(command, outcome).Inc()
}

func (m *Metrics) ObservePersistFailure(stage string) {
	if m == nil {
		return
	}
	m.persistFailures.WithLabelValues(stage).Inc()
}

func (m *Metrics) SetTodoCount(n int) {
	if m == nil {
		return
	}
	m.todos.Set(float64(n))
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
