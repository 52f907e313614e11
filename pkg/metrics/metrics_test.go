package metrics

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("slots-test", reg)

	m.IncBookingOutcome("claim", "booked")
	m.IncBookingOutcome("claim", "booked")
	m.IncBookingOutcome("claim", "queued")
	m.IncTxRetry("serialization_failure")
	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/owners/{ownerId}/slots/claim", http.StatusOK, 10*time.Millisecond)
	m.ObserveDBQuery("select", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingOutcomes.WithLabelValues("claim", "booked")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingOutcomes.WithLabelValues("claim", "queued")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.txRetries.WithLabelValues("serialization_failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("POST", "/api/v1/owners/{ownerId}/slots/claim", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("select")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingOutcome("cancel", "freed")
		m.IncTxRetry("deadlock")
		m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Second)
		m.ObserveDBQuery("select", time.Millisecond, nil)
	})
}
