package netsvc

import (
	"context"
	"net"

	"github.com/robocupgc/gamecontroller/gamestate"
	"github.com/robocupgc/gamecontroller/support/logging"
)

// MaxTeamMessageSize is the largest team-message datagram this module
// accepts as a legal communication; a larger one still charges the team's
// budget, but as an illegal communication (see action.TeamMessage).
const MaxTeamMessageSize = 1024

// TeamMessageEvent is what TeamMessageListener reports for each datagram it
// receives. It carries no payload beyond legality, since the game's action
// algebra only cares whether a message happened and whether it overran the
// budget; interpreting the payload itself belongs to a future UI.
type TeamMessageEvent struct {
	Side    gamestate.Side
	Illegal bool
}

// TeamMessageListener turns every datagram received on one team's message
// socket into a TeamMessageEvent sent to Events. It does not touch the
// engine directly: only the event loop, which owns the Game, is allowed to
// turn this into an applied action.TeamMessage.
type TeamMessageListener struct {
	Conn   *net.UDPConn
	Events chan<- TeamMessageEvent
	Side   gamestate.Side
	Raw    RawSink
	Logger logging.L
}

// NewTeamMessageListener wraps conn, which must already be bound to side's
// message port. raw may be nil to disable raw-datagram logging.
func NewTeamMessageListener(conn *net.UDPConn, events chan<- TeamMessageEvent, side gamestate.Side, raw RawSink, logger logging.L) *TeamMessageListener {
	return &TeamMessageListener{
		Conn:   conn,
		Events: events,
		Side:   side,
		Raw:    raw,
		Logger: logging.Must(logger),
	}
}

// Run reads datagrams off Conn until ctx is done or Conn is closed. The
// content of a team message is not interpreted by this module beyond its
// size; only the event loop's later consumers (a future UI) care about its
// payload.
func (l *TeamMessageListener) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		_ = l.Conn.Close()
	}()

	buf := make([]byte, MaxTeamMessageSize+1)
	for {
		n, addr, err := l.Conn.ReadFromUDP(buf)
		if err != nil {
			return
		}
		illegal := n > MaxTeamMessageSize
		teamMessagesReceived.WithLabelValues(l.Side.String()).Inc()
		l.Logger.Debugf("netsvc: team message from %s (side %s, %d bytes, illegal=%v)", addr, l.Side, n, illegal)
		if l.Raw != nil {
			l.Raw.LogTeamMessage(l.Side, buf[:n], illegal)
		}

		select {
		case l.Events <- TeamMessageEvent{Side: l.Side, Illegal: illegal}:
		case <-ctx.Done():
			return
		}
	}
}
