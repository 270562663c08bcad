package netsvc

import (
	"context"
	"net"

	"github.com/robocupgc/gamecontroller/support/fmtutil"
	"github.com/robocupgc/gamecontroller/support/logging"
	"github.com/robocupgc/gamecontroller/wire"
)

// StatusSink receives every structurally valid status datagram a player
// sends. It is the event loop's hook for aliveness tracking and the
// monitor's player-position display; this package does not interpret a
// status message beyond validating it.
type StatusSink interface {
	OnStatus(from *net.UDPAddr, msg *wire.StatusMessage)
}

// StatusListener reads player status datagrams off a single UDP socket and
// hands structurally valid ones to a StatusSink. It also marks the sending
// host as a player and tears down any monitor registration it might have
// held (spec.md §4.5): a host cannot be both a player and a monitor.
type StatusListener struct {
	Conn     *net.UDPConn
	Sink     StatusSink
	Monitors *MonitorRegistry
	Players  *PlayerHosts
	Raw      RawSink
	Logger   logging.L
}

// NewStatusListener wraps conn, which must already be bound to the status
// port. raw may be nil to disable raw-datagram logging.
func NewStatusListener(conn *net.UDPConn, sink StatusSink, monitors *MonitorRegistry, players *PlayerHosts, raw RawSink, logger logging.L) *StatusListener {
	return &StatusListener{
		Conn:     conn,
		Sink:     sink,
		Monitors: monitors,
		Players:  players,
		Raw:      raw,
		Logger:   logging.Must(logger),
	}
}

// Run reads datagrams off Conn until ctx is done or Conn is closed.
func (l *StatusListener) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		_ = l.Conn.Close()
	}()

	buf := make([]byte, wire.StatusMessageSize+1)
	for {
		n, addr, err := l.Conn.ReadFromUDP(buf)
		if err != nil {
			return
		}
		msg, err := wire.DecodeStatusMessage(buf[:n])
		if err != nil {
			statusPacketsReceived.WithLabelValues("false").Inc()
			l.Logger.Debugf("netsvc: discarding malformed status message from %s: %v\n%s",
				addr, err, fmtutil.Hex(buf[:n]))
			continue
		}
		statusPacketsReceived.WithLabelValues("true").Inc()
		if l.Players != nil {
			l.Players.Mark(addr.IP)
		}
		if l.Monitors != nil {
			l.Monitors.DeregisterHost(addr.IP)
		}
		l.Sink.OnStatus(addr, msg)
		if l.Raw != nil {
			l.Raw.LogStatusMessage(addr.String(), buf[:n])
		}
	}
}
