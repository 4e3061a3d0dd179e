package ffi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation labels for the calls counter.
const (
	OpConstruct = "construct"
	OpEquals    = "equals"
	OpHash      = "hash"
	OpRetain    = "retain"
	OpRelease   = "release"
	OpToJSON    = "to_json"
	OpFromJSON  = "from_json"
)

// Metrics tracks handle lifetime and call volume across the boundary.
// A live-handle gauge that never returns to zero means a foreign wrapper
// is leaking references.
type Metrics struct {
	LiveHandles   prometheus.Gauge
	Calls         *prometheus.CounterVec
	InvalidHandle prometheus.Counter
}

// NewMetrics creates the registry metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LiveHandles: factory.NewGauge(prometheus.GaugeOpts{
			Name: "walletkit_ffi_live_handles",
			Help: "Number of factor source collection handles currently held",
		}),
		Calls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "walletkit_ffi_calls_total",
			Help: "Total number of FFI calls by operation",
		}, []string{"op"}),
		InvalidHandle: factory.NewCounter(prometheus.CounterOpts{
			Name: "walletkit_ffi_invalid_handle_total",
			Help: "Total number of calls made with an unknown or released handle",
		}),
	}
}

func (m *Metrics) call(op string) {
	if m == nil {
		return
	}
	m.Calls.WithLabelValues(op).Inc()
}

func (m *Metrics) liveDelta(d float64) {
	if m == nil {
		return
	}
	m.LiveHandles.Add(d)
}

func (m *Metrics) invalid() {
	if m == nil {
		return
	}
	m.InvalidHandle.Inc()
}
