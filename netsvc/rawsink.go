package netsvc

import "github.com/robocupgc/gamecontroller/gamestate"

// RawSink records a raw, already-validated-or-not ingress datagram for
// persistence. It is satisfied by *logsink.Sink; a nil RawSink disables raw
// logging. Unlike the engine, a RawSink is safe to call directly from a
// listener's own goroutine, since it only appends to a file under its own
// mutex and never touches game state.
type RawSink interface {
	LogMonitorRequest(from string, raw []byte)
	LogStatusMessage(from string, raw []byte)
	LogTeamMessage(side gamestate.Side, raw []byte, illegal bool)
}
