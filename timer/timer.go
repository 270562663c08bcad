// Package timer implements the countdown primitive shared by every clock in
// the game: the two half timers, the set-play/timeout/half-time secondary
// timer, the timeout rewind timer, and per-player penalty timers.
//
// A Timer's Remaining is a signed time.Duration (time.Duration already is a
// signed 64-bit integer, so no separate "signed duration" type is needed):
// half timers are expected to run past zero by design, and the rewind timer
// is defined to be non-positive while it runs.
package timer

import "time"

// RunCondition decides, given a run-condition query, whether a Timer is
// currently allowed to tick down.
type RunCondition int8

const (
	// Always ticks regardless of game state.
	Always RunCondition = iota
	// MainTimer ticks during Playing, and during Ready/Set too unless the
	// query reports that the pre-kick-off grace period should be excluded.
	MainTimer
	// ReadyOrPlaying ticks while the queried state is Ready or Playing.
	ReadyOrPlaying
	// PlayingOnly ticks only while the queried state is Playing.
	PlayingOnly
)

// BehaviorAtZero decides what a Timer does once Remaining reaches zero.
type BehaviorAtZero int8

const (
	// Clip stops subtracting once Remaining hits zero; the timer keeps
	// reporting zero but is considered not-running from that point on.
	Clip BehaviorAtZero = iota
	// Overflow keeps subtracting past zero, going negative.
	Overflow
	// Expire fires a caller-supplied action set exactly once, the instant
	// Remaining reaches zero, and then stops.
	Expire
)

// Conditions is the subset of Game state a RunCondition needs to evaluate
// itself, passed by the caller (the engine) rather than imported directly so
// that this package has no dependency on gamestate.
type Conditions struct {
	// Playing is true if the game is in the Playing state.
	Playing bool
	// ReadyOrSet is true if the game is in the Ready or Set state.
	ReadyOrSet bool
	// ReadyState is true if the game is specifically in the Ready state
	// (used by ReadyOrPlaying's sibling callers; kept distinct from
	// ReadyOrSet for clarity in the Penalize table).
	ReadyState bool
	// CountReadySet is true if time spent in Ready/Set should count against
	// MainTimer (false during PenaltyShootout, in long games, and before the
	// half has actually started, per spec.md §4.1).
	CountReadySet bool
}

// State is whether a Timer is counting down and, if so, how.
type State int8

const (
	Stopped State = iota
	Started
)

// Timer is a single countdown. The zero value is a Stopped timer with zero
// Remaining.
type Timer struct {
	state     State
	remaining time.Duration
	cond      RunCondition
	behavior  BehaviorAtZero
	// onExpire is returned by Seek the instant remaining reaches zero with
	// Expire behavior; it is opaque to this package (the caller defines what
	// "actions" means).
	onExpire interface{}
}

// Start arms the timer with the given remaining duration, run condition and
// zero-behavior. For Expire, onExpire is the payload Seek will return on
// expiry; it is ignored for Clip and Overflow.
func Start(remaining time.Duration, cond RunCondition, behavior BehaviorAtZero, onExpire interface{}) Timer {
	return Timer{
		state:     Started,
		remaining: remaining,
		cond:      cond,
		behavior:  behavior,
		onExpire:  onExpire,
	}
}

// Stop returns a Stopped timer (equivalent to the zero value, but explicit
// at call sites).
func Stop() Timer { return Timer{} }

// IsStarted reports whether the timer is in the Started state, irrespective
// of whether its run condition currently holds.
func (t Timer) IsStarted() bool { return t.state == Started }

// GetRemaining returns the signed remaining duration, or zero if Stopped.
func (t Timer) GetRemaining() time.Duration {
	if t.state == Stopped {
		return 0
	}
	return t.remaining
}

// WillExpire reports whether the timer is Started with Expire behavior.
func (t Timer) WillExpire() bool { return t.state == Started && t.behavior == Expire }

// conditionHolds evaluates the timer's RunCondition against c.
func (t Timer) conditionHolds(c Conditions) bool {
	switch t.cond {
	case Always:
		return true
	case MainTimer:
		return c.Playing || (c.ReadyOrSet && c.CountReadySet)
	case ReadyOrPlaying:
		return c.ReadyState || c.Playing
	case PlayingOnly:
		return c.Playing
	default:
		return false
	}
}

// IsRunning reports whether the timer is actively ticking: Started, its run
// condition holds, and it has not already clipped to zero.
func (t Timer) IsRunning(c Conditions) bool {
	if t.state != Started || !t.conditionHolds(c) {
		return false
	}
	if t.behavior == Clip && t.remaining <= 0 {
		return false
	}
	return true
}

// Seek advances the timer by dt. If the timer is Stopped or its run
// condition does not hold, Seek is a no-op. Otherwise:
//
//   - Expire: the caller must ensure dt <= remaining (the event loop is
//     required to clip its sleep to the earliest expiry for this reason).
//     remaining is decremented; if it reaches zero the timer transitions to
//     Stopped and the stored onExpire payload is returned.
//   - Clip: remaining is decremented and floored at zero.
//   - Overflow: remaining is decremented without a floor.
//
// Seek panics if dt is negative; callers never seek backwards.
func (t *Timer) Seek(dt time.Duration, c Conditions) (expired interface{}, didExpire bool) {
	if dt < 0 {
		panic("timer: Seek called with negative dt")
	}
	if dt == 0 {
		return nil, false
	}
	if t.state != Started || !t.conditionHolds(c) {
		return nil, false
	}

	switch t.behavior {
	case Expire:
		if dt > t.remaining {
			panic("timer: Seek(dt) exceeds remaining for an Expire timer")
		}
		t.remaining -= dt
		if t.remaining == 0 {
			expired, didExpire = t.onExpire, true
			*t = Stop()
		}
		return expired, didExpire

	case Clip:
		t.remaining -= dt
		if t.remaining < 0 {
			t.remaining = 0
		}
		return nil, false

	case Overflow:
		t.remaining -= dt
		return nil, false

	default:
		return nil, false
	}
}

// NextExpiry returns the duration until this timer would next fire an
// Expire, and true, if it is a running Expire timer; otherwise it returns
// (0, false). Used by the engine/event loop to compute the earliest wake-up.
func (t Timer) NextExpiry(c Conditions) (time.Duration, bool) {
	if !t.IsRunning(c) || t.behavior != Expire {
		return 0, false
	}
	return t.remaining, true
}
