package metric_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/http/metric"
)

func TestNewWithRegisterer(t *testing.T) {
	reg := prometheus.NewRegistry()

	m1 := metric.NewWithRegisterer(reg)
	m2 := metric.NewWithRegisterer(reg)

	m1.RequestsTotal.WithLabelValues("GET", "/api/health", "200").Inc()
	m2.RequestsTotal.WithLabelValues("GET", "/api/health", "200").Inc()

	assert.InDelta(t, 2, testutil.ToFloat64(m1.RequestsTotal.WithLabelValues("GET", "/api/health", "200")), 0)
}
