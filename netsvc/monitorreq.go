package netsvc

import (
	"context"
	"net"

	"github.com/robocupgc/gamecontroller/support/fmtutil"
	"github.com/robocupgc/gamecontroller/support/logging"
	"github.com/robocupgc/gamecontroller/wire"
)

// MonitorRequestListener registers a monitor's address the instant a
// well-formed registration request arrives from it, unless that host has
// ever sent a status message — in which case it is a player, and the
// request is ignored (spec.md §4.5).
type MonitorRequestListener struct {
	Conn     *net.UDPConn
	Monitors *MonitorRegistry
	Players  *PlayerHosts
	Raw      RawSink
	Logger   logging.L
}

// NewMonitorRequestListener wraps conn, which must already be bound to the
// monitor-request port. raw may be nil to disable raw-datagram logging.
func NewMonitorRequestListener(conn *net.UDPConn, monitors *MonitorRegistry, players *PlayerHosts, raw RawSink, logger logging.L) *MonitorRequestListener {
	return &MonitorRequestListener{
		Conn:     conn,
		Monitors: monitors,
		Players:  players,
		Raw:      raw,
		Logger:   logging.Must(logger),
	}
}

// Run reads datagrams off Conn until ctx is done or Conn is closed,
// registering the sender of every one that decodes as a valid monitor
// request and silently discarding everything else.
func (l *MonitorRequestListener) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		_ = l.Conn.Close()
	}()

	buf := make([]byte, wire.MonitorRequestSize+1)
	for {
		n, addr, err := l.Conn.ReadFromUDP(buf)
		if err != nil {
			return
		}
		if err := wire.DecodeMonitorRequest(buf[:n]); err != nil {
			l.Logger.Debugf("netsvc: discarding malformed monitor request from %s: %v\n%s",
				addr, err, fmtutil.Hex(buf[:n]))
			continue
		}
		monitorRequestsReceived.Inc()
		if l.Players != nil && l.Players.IsPlayer(addr.IP) {
			l.Logger.Debugf("netsvc: ignoring monitor request from %s: host is a known player", addr)
			continue
		}
		l.Monitors.Register(addr)
		if l.Raw != nil {
			l.Raw.LogMonitorRequest(addr.String(), buf[:n])
		}
	}
}
