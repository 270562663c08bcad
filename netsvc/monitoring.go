package netsvc

import "github.com/prometheus/client_golang/prometheus"

var (
	controlPacketsSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "control_packets_sent_total",
		Help: "Count of control messages sent to players or monitors.",
	})

	statusPacketsReceived = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "status_packets_received_total",
		Help: "Count of player status datagrams received, by validity.",
	},
		[]string{"valid"})

	teamMessagesReceived = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "team_messages_received_total",
		Help: "Count of team messages received, by side.",
	},
		[]string{"side"})

	monitorRequestsReceived = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "monitor_requests_total",
		Help: "Count of monitor registration requests received.",
	})
)

// RegisterMonitoring registers all of this package's monitoring metrics.
func RegisterMonitoring(reg prometheus.Registerer) {
	reg.MustRegister(
		controlPacketsSent,
		statusPacketsReceived,
		teamMessagesReceived,
		monitorRequestsReceived,
	)
}
