/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package board

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "constellation"

// Metrics holds the Prometheus collectors updated by a Hub.
type Metrics struct {
	participants prometheus.Gauge
	strokes      prometheus.Gauge
	events       *prometheus.CounterVec
	rejected     *prometheus.CounterVec
	slowClients  prometheus.Counter
}

// NewMetrics registers the hub collectors with reg. A nil reg gets a
// private registry, which keeps the hub usable without exposing metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		participants: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "participants",
			Help:      "Number of connected participants",
		}),

		strokes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "history_strokes",
			Help:      "Number of finalized strokes in the shared history",
		}),

		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "events_total",
			Help:      "Accepted client events by type",
		}, []string{"type"}),

		rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rejected_messages_total",
			Help:      "Inbound messages dropped without effect, by reason",
		}, []string{"reason"}),

		slowClients: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "slow_clients_total",
			Help:      "Clients disconnected because their send buffer filled up",
		}),
	}
}

func (m *Metrics) reject(err error) {
	reason := "malformed"
	switch {
	case errors.Is(err, ErrUnknownType):
		reason = "unknown_type"
	case errors.Is(err, ErrInvalidPoint):
		reason = "invalid_point"
	case errors.Is(err, ErrUnknownClient):
		reason = "unknown_client"
	}
	m.rejected.WithLabelValues(reason).Inc()
}
