// Package eventloop implements the single-threaded arbiter described in
// spec.md §4.5: it is the only goroutine allowed to call Engine.Apply or
// Engine.Seek, so every other task (network listeners, a UI) communicates
// with it exclusively through channels.
package eventloop

import (
	"context"
	"net"
	"time"

	"github.com/robocupgc/gamecontroller/action"
	"github.com/robocupgc/gamecontroller/engine"
	"github.com/robocupgc/gamecontroller/netsvc"
	"github.com/robocupgc/gamecontroller/support/logging"
	"github.com/robocupgc/gamecontroller/wire"
)

// maxIdleSleep bounds how long a single iteration's wait can run with
// nothing else pending, so the loop periodically republishes a Snapshot
// (and its integer-second timer display) even when truly idle.
const maxIdleSleep = time.Second

// Loop owns an Engine and arbitrates every external input against it. It is
// the only caller of Engine.Apply/Seek; every other task communicates with
// it through the channels exposed below.
type Loop struct {
	Engine *engine.Engine
	Logger logging.L

	actions    chan submittedAction
	subscribe  chan []action.Action
	teamEvents chan netsvc.TeamMessageEvent
	statusCh   chan statusUpdate
	snapshots  chan Snapshot

	aliveness  *alivenessTracker
	subscribed []action.Action
	lastTick   time.Time
}

type submittedAction struct {
	action.Action
	reply chan<- bool
}

type statusUpdate struct {
	key PlayerKey
}

// New builds a Loop around e. bufferSize controls how many pending actions,
// subscriptions, and status events each channel can hold before a sender
// blocks; 0 is a reasonable default for a single UI process.
func New(e *engine.Engine, logger logging.L, bufferSize int) *Loop {
	if bufferSize < 0 {
		bufferSize = 0
	}
	return &Loop{
		Engine:     e,
		Logger:     logging.Must(logger),
		actions:    make(chan submittedAction, bufferSize),
		subscribe:  make(chan []action.Action, bufferSize),
		teamEvents: make(chan netsvc.TeamMessageEvent, bufferSize+1),
		statusCh:   make(chan statusUpdate, bufferSize+1),
		snapshots:  make(chan Snapshot, 1),
		aliveness:  newAlivenessTracker(),
	}
}

// Snapshots returns the channel the loop publishes a fresh Snapshot to
// every iteration. It is a capacity-1 channel the loop keeps drained by
// overwriting: a slow UI consumer always sees the latest snapshot rather
// than a growing backlog.
func (l *Loop) Snapshots() <-chan Snapshot { return l.snapshots }

// Submit enqueues a, as SourceUser, and reports whether it was legal once
// applied. It blocks until the loop has processed a or ctx is done.
func (l *Loop) Submit(ctx context.Context, a action.Action) bool {
	reply := make(chan bool, 1)
	select {
	case l.actions <- submittedAction{Action: a, reply: reply}:
	case <-ctx.Done():
		return false
	}
	select {
	case ok := <-reply:
		return ok
	case <-ctx.Done():
		return false
	}
}

// Subscribe replaces the set of actions the published Snapshot's Legality
// map reports on.
func (l *Loop) Subscribe(ctx context.Context, actions []action.Action) {
	select {
	case l.subscribe <- actions:
	case <-ctx.Done():
	}
}

// TeamMessageEvents returns the channel netsvc.TeamMessageListener instances
// should send to; the loop is the sole consumer.
func (l *Loop) TeamMessageEvents() chan<- netsvc.TeamMessageEvent { return l.teamEvents }

// StatusSink returns a netsvc.StatusSink that records an aliveness touch by
// sending onto the loop's own channel, rather than mutating the Engine (or
// the aliveness tracker) from the listener's goroutine.
func (l *Loop) StatusSink() netsvc.StatusSink { return (*statusSink)(l) }

type statusSink Loop

// OnStatus implements netsvc.StatusSink. Per spec.md §4.5, a status message
// only updates the aliveness map here; netsvc.StatusListener has already
// marked the sending host as a player and deregistered any monitor lease
// it held before calling OnStatus.
func (s *statusSink) OnStatus(_ *net.UDPAddr, msg *wire.StatusMessage) {
	key := PlayerKey{TeamNumber: int(msg.TeamNumber), Player: int(msg.PlayerNumber)}
	select {
	case s.statusCh <- statusUpdate{key: key}:
	default:
		// The loop is behind; an aliveness touch is idempotent with the next
		// one, so dropping this one under backpressure is harmless.
	}
}

// Run drives the loop until ctx is cancelled. Per spec.md §4.5 it:
// republishes a Snapshot, computes a sleep deadline bounded by the next
// timer transition and the next aliveness-status change, waits for the
// first of that deadline or an external event, seeks the Engine by however
// long actually elapsed, and dispatches whatever arrived.
func (l *Loop) Run(ctx context.Context) {
	l.lastTick = time.Now()
	for {
		l.publish()

		deadline := l.sleepDeadline()
		timer := time.NewTimer(deadline)

		select {
		case <-ctx.Done():
			timer.Stop()
			l.seekElapsed()
			return

		case <-timer.C:
			l.seekElapsed()

		case sa := <-l.actions:
			timer.Stop()
			l.seekElapsed()
			ok := l.Engine.Apply(sa.Action, engine.SourceUser)
			sa.reply <- ok

		case evt := <-l.teamEvents:
			timer.Stop()
			l.seekElapsed()
			l.Engine.Apply(action.TeamMessage{Side: evt.Side, Illegal: evt.Illegal}, engine.SourceNetwork)

		case upd := <-l.statusCh:
			timer.Stop()
			l.seekElapsed()
			l.aliveness.touch(upd.key, time.Now())

		case subs := <-l.subscribe:
			timer.Stop()
			l.seekElapsed()
			l.subscribed = subs
		}
	}
}

// seekElapsed advances the Engine's clock by however long has passed since
// the last tick, then resets the tick reference point. Centralizing this
// here means every select case in Run seeks by real wall-clock elapsed
// time rather than by the (possibly unused) sleep deadline.
func (l *Loop) seekElapsed() {
	now := time.Now()
	dt := now.Sub(l.lastTick)
	l.lastTick = now
	if dt <= 0 {
		return
	}
	l.Engine.Seek(dt)
}

func (l *Loop) sleepDeadline() time.Duration {
	d := l.Engine.ClipNextTimerExpiration(maxIdleSleep)
	d = l.Engine.ClipNextTimerWrap(d)
	if until := l.aliveness.nextTransition(time.Now(), d); until < d {
		d = until
	}
	if d <= 0 {
		d = time.Millisecond
	}
	return d
}

func (l *Loop) publish() {
	legality := make(map[action.Action]bool, len(l.subscribed))
	for _, a := range l.subscribed {
		legality[a] = l.Engine.Legal(a)
	}

	delayed, _ := l.Engine.Delayed()
	now := time.Now()
	connections := l.aliveness.snapshot(now)
	updateConnectedGauge(connections)

	l.publishSnapshot(Snapshot{
		PublishedAt:   now,
		Game:          l.Engine.Game,
		DelayedGame:   delayed,
		Connections:   connections,
		RecentActions: l.Engine.RecentActions(RecentActionCount),
		Legality:      legality,
	})
}

func updateConnectedGauge(connections map[PlayerKey]ConnectionStatus) {
	var good, bad, offline int
	for _, status := range connections {
		switch status {
		case Good:
			good++
		case Bad:
			bad++
		default:
			offline++
		}
	}
	playersConnectedGauge.WithLabelValues("Good").Set(float64(good))
	playersConnectedGauge.WithLabelValues("Bad").Set(float64(bad))
	playersConnectedGauge.WithLabelValues("Offline").Set(float64(offline))
}

func (l *Loop) publishSnapshot(s Snapshot) {
	select {
	case <-l.snapshots:
	default:
	}
	l.snapshots <- s
}
