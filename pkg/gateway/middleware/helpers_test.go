package middleware

import (
	"testing"

	"pdftools/gateway/pkg/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func newTestCollector(t *testing.T) (*metrics.Collector, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	c, err := metrics.NewCollector("pdf-tools", nil, reg)
	require.NoError(t, err)
	return c, reg
}

// findSeries returns every series of the named family whose labels include want.
func findSeries(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) []*dto.Metric {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	var out []*dto.Metric
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			got := make(map[string]string)
			for _, lp := range m.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if got[k] != v {
					continue next
				}
			}
			out = append(out, m)
		}
	}
	return out
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	var total float64
	for _, m := range findSeries(t, reg, name, labels) {
		total += m.GetCounter().GetValue()
	}
	return total
}

func histogramCount(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) uint64 {
	t.Helper()
	var total uint64
	for _, m := range findSeries(t, reg, name, labels) {
		total += m.GetHistogram().GetSampleCount()
	}
	return total
}
