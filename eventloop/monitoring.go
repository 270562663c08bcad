package eventloop

import "github.com/prometheus/client_golang/prometheus"

var playersConnectedGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
	Name: "players_connected",
	Help: "Count of tracked players at each connection status.",
},
	[]string{"status"})

// RegisterMonitoring registers this package's monitoring metrics.
func RegisterMonitoring(reg prometheus.Registerer) {
	reg.MustRegister(playersConnectedGauge)
}
