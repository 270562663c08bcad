package engine

import (
	"time"

	"github.com/robocupgc/gamecontroller/gamestate"
	"github.com/robocupgc/gamecontroller/timer"
)

// forEachTimer visits every timer.Timer owned, directly or via a team's
// players, by g: the four game-level timers plus all 40 penalty timers.
func forEachTimer(g *gamestate.Game, fn func(*timer.Timer)) {
	fn(&g.PrimaryTimer)
	fn(&g.SecondaryTimer)
	fn(&g.TimeoutRewindTimer)
	fn(&g.SwitchHalfTimer)
	for s := range g.Teams {
		team := &g.Teams[s]
		for i := range team.Players {
			fn(&team.Players[i].PenaltyTimer)
		}
	}
}

// nextExpiryAcrossGame returns the smallest NextExpiry among g's running
// Expire timers, and whether any were found.
func nextExpiryAcrossGame(g *gamestate.Game, conds timer.Conditions) (time.Duration, bool) {
	var best time.Duration
	found := false
	forEachTimer(g, func(t *timer.Timer) {
		if d, ok := t.NextExpiry(conds); ok && (!found || d < best) {
			best, found = d, true
		}
	})
	return best, found
}

// nextWrapAcrossGame returns the minimum of max and the smallest duration
// until any of g's running timers next crosses an integer-second boundary.
func nextWrapAcrossGame(g *gamestate.Game, conds timer.Conditions, max time.Duration) time.Duration {
	best := max
	forEachTimer(g, func(t *timer.Timer) {
		if !t.IsRunning(conds) {
			return
		}
		mod := t.GetRemaining() % time.Second
		if mod < 0 {
			mod += time.Second
		}
		// Timers count down, so the next whole second is mod away; a timer
		// sitting exactly on a boundary reaches the next one in a full second.
		wrap := mod
		if wrap == 0 {
			wrap = time.Second
		}
		if wrap < best {
			best = wrap
		}
	})
	return best
}

// seekGameTimers advances every timer in g by step and returns the
// Expire payloads of any that fired.
func seekGameTimers(g *gamestate.Game, conds timer.Conditions, step time.Duration) []interface{} {
	var expired []interface{}
	forEachTimer(g, func(t *timer.Timer) {
		if payload, did := t.Seek(step, conds); did {
			expired = append(expired, payload)
		}
	})
	return expired
}
