package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	LookupHit   = "hit"
	LookupEmpty = "empty"
	LookupError = "error"
)

// Metrics holds the fulfillment collectors. A nil *Metrics records nothing.
type Metrics struct {
	Turns        *prometheus.CounterVec
	TurnDuration *prometheus.HistogramVec
	Lookups      *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Turns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fulfillment_turns_total",
				Help: "Count of fulfilled webhook turns",
			},
			[]string{"intent", "outcome"},
		),
		TurnDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fulfillment_turn_duration_seconds",
				Help:    "Time taken to fulfill a webhook turn",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"stage"},
		),
		Lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "product_lookups_total",
				Help: "Count of product lookups by result",
			},
			[]string{"result"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Turns, m.TurnDuration, m.Lookups)
	}
	return m
}

func (m *Metrics) ObserveTurn(intent, stage, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.Turns.WithLabelValues(intent, outcome).Inc()
	m.TurnDuration.WithLabelValues(stage).Observe(seconds)
}

func (m *Metrics) ObserveLookup(result string) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(result).Inc()
}
