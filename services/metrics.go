package services

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricsOnce sync.Once

	calculationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "calorietracker",
			Name:      "calculations_total",
			Help:      "Count of calculator invocations by engine and outcome.",
		},
		[]string{"engine", "outcome"},
	)

	progressUpdates = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "calorietracker",
			Name:      "progress_updates_total",
			Help:      "Count of daily progress upserts.",
		},
	)

	registrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "calorietracker",
			Name:      "auth_events_total",
			Help:      "Count of registrations and logins by result.",
		},
		[]string{"event", "result"},
	)
)

// RegisterMetrics registers the service collectors with reg (idempotent).
func RegisterMetrics(reg prometheus.Registerer) {
	metricsOnce.Do(func() {
		reg.MustRegister(calculationsTotal, progressUpdates, registrations)
	})
}

func incCalculation(engine, outcome string) {
	calculationsTotal.WithLabelValues(engine, outcome).Inc()
}

func incProgressUpdate() {
	progressUpdates.Inc()
}

func incAuthEvent(event, result string) {
	registrations.WithLabelValues(event, result).Inc()
}
