package logsink

import "github.com/prometheus/client_golang/prometheus"

var (
	sinkEntriesWritten = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "logsink_entries_written_total",
		Help: "Count of log entries written, by kind.",
	},
		[]string{"kind"})

	sinkWriteErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "logsink_write_errors_total",
		Help: "Count of errors encountered writing log entries.",
	})
)

// RegisterMonitoring registers all of this package's monitoring metrics.
func RegisterMonitoring(reg prometheus.Registerer) {
	reg.MustRegister(sinkEntriesWritten, sinkWriteErrors)
}
