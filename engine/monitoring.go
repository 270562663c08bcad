package engine

import "github.com/prometheus/client_golang/prometheus"

var (
	actionApplied = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "action_applied_total",
		Help: "Count of actions successfully applied to the true game, by kind.",
	},
		[]string{"kind"})

	historyDepthGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "history_depth",
		Help: "Number of user actions currently recorded in undo history.",
	})
)

// RegisterMonitoring registers this package's monitoring metrics.
func RegisterMonitoring(reg prometheus.Registerer) {
	reg.MustRegister(actionApplied, historyDepthGauge)
}
