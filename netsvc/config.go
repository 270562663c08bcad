// Package netsvc wires the wire package's codecs to real UDP sockets: it
// broadcasts control messages to players and monitors at a fixed cadence,
// and listens for the three datagrams the field sends back (team messages,
// player status, and monitor registration requests).
package netsvc

import "time"

// ControlCadence is the interval at which a ControlSender broadcasts a
// fresh control message.
const ControlCadence = 500 * time.Millisecond

// Config bundles the UDP ports this module listens on and broadcasts to.
// Addresses are resolved by the caller (cmd/refereegc's flag parsing) via
// support/network; this package only needs the resolved ports.
type Config struct {
	// ControlPort is the port control messages are broadcast to.
	ControlPort int
	// TeamMessagePort is the base port team computers send messages on; team
	// number n listens on TeamMessagePort+n, mirroring the competition's
	// per-team multicast group convention.
	TeamMessagePort int
	// StatusPort is the port players send status datagrams to.
	StatusPort int
	// MonitorRequestPort is the port a monitor sends its registration
	// request to before it starts receiving the true, undelayed game.
	MonitorRequestPort int
}
