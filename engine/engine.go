// Package engine owns the authoritative Game and is the only caller of the
// action algebra's Execute method. It advances the Game's clock in slices
// bounded by the next observable timer transition and manages the delayed
// ("forked") game used to conceal near-future information from players.
package engine

import (
	"time"

	"github.com/robocupgc/gamecontroller/action"
	"github.com/robocupgc/gamecontroller/gamestate"
	"github.com/robocupgc/gamecontroller/support/logging"
)

// Source identifies where an applied action originated. It governs whether
// the action is recorded in undo history and whether it is propagated to an
// active delayed fork.
type Source int8

const (
	// SourceUser is a referee-operator action submitted over the UI's action
	// channel. Only SourceUser actions are recorded in undo history.
	SourceUser Source = iota
	// SourceNetwork is an action synthesized from an ingested player
	// datagram (currently only TeamMessage).
	SourceNetwork
	// SourceTimer is an action released by a Timer's Expire behavior. Timer
	// actions are never propagated to the delayed fork; a timer-sourced
	// action illegal against the fork does not tear it down (see spec.md's
	// design notes — the fork is only torn down by User/Network actions).
	SourceTimer
)

// Sink receives a record of every successfully applied action and the
// resulting true Game, for persistence. See package logsink for the
// file-backed implementation. A nil Sink disables logging.
type Sink interface {
	LogAction(a action.Action, g *gamestate.Game)
}

// Engine owns the authoritative Game, the optional delayed fork, and the
// undo history.
type Engine struct {
	Game   *gamestate.Game
	Params *gamestate.Params

	delay   *delay
	history *history

	Log    Sink
	Logger logging.L
}

// New constructs an Engine for a fresh match between the two numbered teams.
func New(p *gamestate.Params, homeNumber, awayNumber int, sink Sink, logger logging.L) *Engine {
	return &Engine{
		Game:    gamestate.New(p, homeNumber, awayNumber),
		Params:  p,
		history: &history{},
		Log:     sink,
		Logger:  logging.Must(logger),
	}
}

// Delayed returns the active delayed-game snapshot and true, or (nil, false)
// if no fork is active. The returned Game must be treated as read-only.
func (e *Engine) Delayed() (*gamestate.Game, bool) {
	if e.delay == nil {
		return nil, false
	}
	return e.delay.snapshot, true
}

// RecentActions returns up to n of the most recently applied user actions,
// oldest first.
func (e *Engine) RecentActions(n int) []action.Action {
	return e.history.recent(n)
}

// getGame returns the delayed fork's Game if delayed is true and a fork is
// active, else the true Game.
func (e *Engine) getGame(delayed bool) *gamestate.Game {
	if delayed && e.delay != nil {
		return e.delay.snapshot
	}
	return e.Game
}

// getContext builds an action.Context suitable for legality checks or
// execution against either the true game or the delayed fork. Only the
// true-game context may fork or touch history.
func (e *Engine) getContext(delayed bool) *action.Context {
	var delayedGame *gamestate.Game
	if e.delay != nil {
		delayedGame = e.delay.snapshot
	}

	var forkFn action.ForkFunc
	var hist action.History
	if !delayed {
		forkFn = e.fork
		hist = e.history
	}

	return action.NewContext(e.getGame(delayed), e.Params, delayed, delayedGame, forkFn, hist)
}

// fork installs a new delayed-game snapshot, replacing any fork that is
// currently active.
func (e *Engine) fork(duration time.Duration, ignore action.IgnorePredicate) bool {
	e.delay = &delay{
		snapshot:  e.Game.Clone(),
		countdown: duration,
		ignore:    ignore,
	}
	return true
}

// Legal reports whether a is currently legal against the true game, without
// executing it.
func (e *Engine) Legal(a action.Action) bool {
	return a.Legal(e.getContext(false))
}

// Apply checks a's legality against the true game and, if legal, executes
// it, records it in history (for SourceUser), propagates it to any active
// delayed fork (for SourceUser and SourceNetwork), and logs it. It reports
// whether a was legal (and therefore applied).
func (e *Engine) Apply(a action.Action, source Source) bool {
	ctx := e.getContext(false)
	if !a.Legal(ctx) {
		return false
	}

	if source == SourceUser {
		e.history.record(e.Game, a)
		historyDepthGauge.Set(float64(e.history.NumUserActions()))
	}

	a.Execute(ctx)
	actionApplied.WithLabelValues(string(a.Kind())).Inc()

	if source != SourceTimer {
		e.applyDelayed(a)
	}

	if e.Log != nil {
		e.Log.LogAction(a, e.Game)
	}
	return true
}

// applyDelayed executes a against the delayed fork if one is active and a is
// legal there; otherwise, unless the fork's ignore predicate tolerates a,
// the fork is torn down.
func (e *Engine) applyDelayed(a action.Action) {
	if e.delay == nil {
		return
	}

	ctx := e.getContext(true)
	if a.Legal(ctx) {
		a.Execute(ctx)
		return
	}

	if !e.delay.tolerates(a) {
		e.delay = nil
	}
}

// Seek advances the engine's clock by dt, in slices bounded by the earliest
// timer expiry in either game or the delay's own countdown, applying every
// action a timer releases along the way. dt must be non-negative.
func (e *Engine) Seek(dt time.Duration) {
	if dt < 0 {
		panic("engine: Seek called with negative dt")
	}
	for dt > 0 {
		step := e.ClipNextTimerExpiration(dt)
		e.advance(step)
		dt -= step
	}
}

// advance steps both games' timers forward by step (which must already be
// clipped to the earliest expiry) and applies whatever they release.
func (e *Engine) advance(step time.Duration) {
	if e.delay != nil {
		e.delay.countdown -= step
		if e.delay.countdown <= 0 {
			// The concealment window has elapsed: the true game already
			// carries every action applied during the window, so the frozen
			// snapshot is simply discarded.
			e.delay = nil
		} else {
			conds := e.delay.snapshot.Conditions(e.Params)
			for _, payload := range seekGameTimers(e.delay.snapshot, conds, step) {
				if a := resolveExpiry(payload); a != nil {
					e.applyDelayed(a)
				}
			}
		}
	}

	conds := e.Game.Conditions(e.Params)
	for _, payload := range seekGameTimers(e.Game, conds, step) {
		if a := resolveExpiry(payload); a != nil {
			e.Apply(a, SourceTimer)
		}
	}
}

// ClipNextTimerExpiration returns the minimum of max and the duration until
// the earliest Expire timer in either game fires, or the delay's own
// countdown, whichever is soonest.
func (e *Engine) ClipNextTimerExpiration(max time.Duration) time.Duration {
	best := max
	if d, ok := nextExpiryAcrossGame(e.Game, e.Game.Conditions(e.Params)); ok && d < best {
		best = d
	}
	if e.delay != nil {
		if e.delay.countdown < best {
			best = e.delay.countdown
		}
		if d, ok := nextExpiryAcrossGame(e.delay.snapshot, e.delay.snapshot.Conditions(e.Params)); ok && d < best {
			best = d
		}
	}
	if best < 0 {
		best = 0
	}
	return best
}

// ClipNextTimerWrap returns the minimum of max and the smallest duration
// until any running timer, in either game, next crosses an integer-second
// boundary — used by the event loop so the UI's displayed seconds stay live
// even with no other wake-up pending.
func (e *Engine) ClipNextTimerWrap(max time.Duration) time.Duration {
	best := nextWrapAcrossGame(e.Game, e.Game.Conditions(e.Params), max)
	if e.delay != nil {
		best = nextWrapAcrossGame(e.delay.snapshot, e.delay.snapshot.Conditions(e.Params), best)
	}
	return best
}
