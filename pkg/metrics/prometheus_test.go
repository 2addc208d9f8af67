package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordProviderCall("quote", "ok", 0.1)
	r.RecordProviderCall("quote", "error", 0.2)
	r.RecordProviderCall("quote", "ok", 0.1)
	r.RecordCacheLookup("quote", true)
	r.RecordCacheLookup("quote", false)
	r.RecordRecommendation("BUY")
	r.RecordRender("http")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.providerCalls.WithLabelValues("quote", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.providerCalls.WithLabelValues("quote", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cacheLookups.WithLabelValues("quote", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.recommendations.WithLabelValues("BUY")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.renders.WithLabelValues("http")))
}

func TestRecordersOnSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
