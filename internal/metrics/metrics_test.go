package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveTurn("price_lookup", "query", "ok", 0.2)
	m.ObserveLookup(LookupHit)
	m.ObserveLookup(LookupHit)

	require.Equal(t, 1.0, testutil.ToFloat64(m.Turns.WithLabelValues("price_lookup", "ok")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.Lookups.WithLabelValues(LookupHit)))

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 3)

	require.Panics(t, func() { New(reg) }, "registering twice must fail")
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.ObserveTurn("x", "y", "z", 1)
		m.ObserveLookup(LookupError)
	})
}

func TestNew_NilRegisterer(t *testing.T) {
	m := New(nil)
	m.ObserveLookup(LookupEmpty)
	require.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues(LookupEmpty)))
}
