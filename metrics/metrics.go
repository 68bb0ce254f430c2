// Package metrics exposes Prometheus counters for bucket-tree traffic
// volume. Per the threat model, hiding operation volume is explicitly
// out of scope; these counters record only the operation name and the
// node key (keys of 4096 and above share one "overflow" label) — never
// a filename, leaf id, or payload.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements pathoram.Recorder, counting server calls by
// operation.
type Recorder struct {
	serverCallsTotal *prometheus.CounterVec
	nodeTouchesTotal *prometheus.CounterVec
}

// NewRecorder creates and registers the counters against the default
// Prometheus registry.
func NewRecorder() *Recorder {
	return &Recorder{
		serverCallsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pathoram_server_calls_total",
				Help: "Total number of server calls by operation (oread, owrite, owriteback).",
			},
			[]string{"op"},
		),
		nodeTouchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pathoram_node_touches_total",
				Help: "Total number of times each tree node key was touched by a server call.",
			},
			[]string{"node"},
		),
	}
}

// Record implements pathoram.Recorder.
func (r *Recorder) Record(op string, node int) {
	r.serverCallsTotal.WithLabelValues(op).Inc()
	r.nodeTouchesTotal.WithLabelValues(nodeLabel(node)).Inc()
}

func nodeLabel(node int) string {
	const maxDistinctLabels = 4096
	if node < 0 || node >= maxDistinctLabels {
		return "overflow"
	}
	return strconv.Itoa(node)
}
