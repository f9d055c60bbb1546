package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLogin("admitted")
	c.RecordLogin("admitted")
	c.RecordLogin("denied")
	c.RecordMessageSent()
	c.RecordMessageDropped()
	c.RecordDirectoryLookup(true)
	c.RecordDirectoryLookup(false)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.logins.WithLabelValues("admitted")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.logins.WithLabelValues("denied")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.messagesSent))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.messagesDropped))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.directoryLookups.WithLabelValues("hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.directoryLookups.WithLabelValues("miss")))
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	c.RecordLogin("admitted")
	c.RecordMessageSent()
	c.RecordMessageDropped()
	c.RecordDirectoryLookup(true)
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordMessageSent()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "securechat_messages_sent_total 1"))
}
