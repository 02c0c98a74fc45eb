package rpc

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	callDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "avax_rpc_call_duration_seconds",
			Help:    "Latency of JSON-RPC calls to Avalanche nodes",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method"},
	)

	callsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "avax_rpc_calls_total",
			Help: "JSON-RPC calls by method and outcome",
		},
		[]string{"method", "outcome"},
	)
)

func observeCall(method string, start time.Time, err error) {
	callDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	callsTotal.WithLabelValues(method, outcome(err)).Inc()
}

func outcome(err error) string {
	var te *TransportError
	var pe *ProtocolError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &te):
		return "transport_error"
	case errors.As(err, &pe):
		return "protocol_error"
	default:
		return "decode_error"
	}
}
