package netsvc

import (
	"bytes"
	"context"
	"net"
	"time"

	"github.com/robocupgc/gamecontroller/engine"
	"github.com/robocupgc/gamecontroller/gamestate"
	"github.com/robocupgc/gamecontroller/support/logging"
	"github.com/robocupgc/gamecontroller/support/network"
	"github.com/robocupgc/gamecontroller/wire"
)

// ControlSender broadcasts a control message to players, and the true game's
// control message to every registered monitor, every ControlCadence.
type ControlSender struct {
	Engine   *engine.Engine
	Monitors *MonitorRegistry
	Logger   logging.L

	playerSender network.DatagramSender
	monitorConn  *net.UDPConn
	counter      uint8
}

// NewControlSender builds a ControlSender that broadcasts players' control
// messages through playerSender and sends monitors' control messages
// through monitorConn (a connectionless socket usable with WriteToUDP,
// since each monitor has a distinct destination address).
func NewControlSender(e *engine.Engine, monitors *MonitorRegistry, playerSender network.DatagramSender, monitorConn *net.UDPConn, logger logging.L) *ControlSender {
	return &ControlSender{
		Engine:       e,
		Monitors:     monitors,
		playerSender: playerSender,
		monitorConn:  monitorConn,
		Logger:       logging.Must(logger),
	}
}

// Run broadcasts on ControlCadence until ctx is done. It is meant to run in
// its own goroutine, driven by the event loop's lifetime.
func (cs *ControlSender) Run(ctx context.Context) {
	ticker := time.NewTicker(ControlCadence)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cs.tick()
		}
	}
}

func (cs *ControlSender) tick() {
	cs.counter++

	playerGame := cs.Engine.Game
	if delayed, ok := cs.Engine.Delayed(); ok {
		playerGame = delayed
	}

	cs.sendPlayers(playerGame)
	cs.sendMonitors(cs.Engine.Game)
}

func (cs *ControlSender) sendPlayers(g *gamestate.Game) {
	if cs.playerSender == nil {
		return
	}
	msg := wire.BuildControlMessage(g, cs.Engine.Params, cs.counter, false)
	var buf bytes.Buffer
	if err := msg.WriteTo(&buf); err != nil {
		cs.Logger.Errorf("netsvc: could not encode player control message: %v", err)
		return
	}
	if err := cs.playerSender.SendDatagram(buf.Bytes()); err != nil {
		cs.Logger.Warnf("netsvc: could not send player control message: %v", err)
		return
	}
	controlPacketsSent.Inc()
}

func (cs *ControlSender) sendMonitors(g *gamestate.Game) {
	if cs.monitorConn == nil {
		return
	}
	addrs := cs.Monitors.Active()
	if len(addrs) == 0 {
		return
	}
	msg := wire.BuildControlMessage(g, cs.Engine.Params, cs.counter, true)
	var buf bytes.Buffer
	if err := msg.WriteTo(&buf); err != nil {
		cs.Logger.Errorf("netsvc: could not encode monitor control message: %v", err)
		return
	}
	for _, addr := range addrs {
		if _, err := cs.monitorConn.WriteToUDP(buf.Bytes(), addr); err != nil {
			cs.Logger.Warnf("netsvc: could not send control message to monitor %s: %v", addr, err)
			continue
		}
		controlPacketsSent.Inc()
	}
}
