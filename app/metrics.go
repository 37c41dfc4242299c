package app

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts the transactions processed by an executor.
type Metrics struct {
	txs     *prometheus.CounterVec
	commits prometheus.Counter
	height  prometheus.Gauge
}

// NewMetrics creates the executor metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		txs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "custody",
			Name:      "transactions_total",
			Help:      "Delivered transactions by result code.",
		}, []string{"code"}),
		commits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "custody",
			Name:      "commits_total",
			Help:      "Committed state versions.",
		}),
		height: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "custody",
			Name:      "height",
			Help:      "Latest committed version of the state.",
		}),
	}
	reg.MustRegister(m.txs, m.commits, m.height)
	return m
}

func (m *Metrics) delivered(res TxResult) {
	if m == nil {
		return
	}
	m.txs.WithLabelValues(strconv.FormatUint(uint64(res.Code), 10)).Inc()
}

func (m *Metrics) committed(height int64) {
	if m == nil {
		return
	}
	m.commits.Inc()
	m.height.Set(float64(height))
}
