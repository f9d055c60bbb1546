// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers the application counters. A nil *Collector is valid
// and records nothing, so library code may take one unconditionally.
type Collector struct {
	logins           *prometheus.CounterVec
	messagesSent     prometheus.Counter
	messagesDropped  prometheus.Counter
	directoryLookups *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "securechat_logins_total",
			Help: "Login attempts by outcome (admitted, denied, invalid, failed).",
		}, []string{"outcome"}),
		messagesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "securechat_messages_sent_total",
			Help: "Messages accepted for persistence.",
		}),
		messagesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "securechat_messages_dropped_total",
			Help: "Messages skipped by the empty-field guard.",
		}),
		directoryLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "securechat_directory_lookups_total",
			Help: "Partner directory lookups by cache result (hit, miss).",
		}, []string{"result"}),
	}
	reg.MustRegister(c.logins, c.messagesSent, c.messagesDropped, c.directoryLookups)
	return c
}

// RecordLogin counts a login attempt by outcome.
func (c *Collector) RecordLogin(outcome string) {
	if c == nil {
		return
	}
	c.logins.WithLabelValues(outcome).Inc()
}

// RecordMessageSent counts an accepted message.
func (c *Collector) RecordMessageSent() {
	if c == nil {
		return
	}
	c.messagesSent.Inc()
}

// RecordMessageDropped counts a message skipped by the guard.
func (c *Collector) RecordMessageDropped() {
	if c == nil {
		return
	}
	c.messagesDropped.Inc()
}

// RecordDirectoryLookup counts a partner listing by cache result.
func (c *Collector) RecordDirectoryLookup(hit bool) {
	if c == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	c.directoryLookups.WithLabelValues(result).Inc()
}

// Handler exposes the registry in Prometheus text format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
