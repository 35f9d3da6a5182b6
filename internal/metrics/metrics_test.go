package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(httpRequests.WithLabelValues("test_endpoint"))
	IncHTTP("test_endpoint")
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("test_endpoint")))

	created := testutil.ToFloat64(bookingsCreated)
	IncBookingCreated()
	assert.Equal(t, created+1, testutil.ToFloat64(bookingsCreated))

	approved := testutil.ToFloat64(bookingDecisions.WithLabelValues("APPROVED"))
	IncBookingDecision("APPROVED")
	assert.Equal(t, approved+1, testutil.ToFloat64(bookingDecisions.WithLabelValues("APPROVED")))

	limited := testutil.ToFloat64(rateLimited)
	IncRateLimited()
	assert.Equal(t, limited+1, testutil.ToFloat64(rateLimited))

	assert.NotPanics(t, func() { ObserveHTTP("test_endpoint", "200", 0.01) })
}
