package action

import (
	"github.com/robocupgc/gamecontroller/gamestate"
	"github.com/robocupgc/gamecontroller/timer"
)

// FinishHalf ends the current half (or the shoot-out's current shot phase
// is handled separately by FinishPenaltyShot).
type FinishHalf struct{}

// Kind implements Action.
func (FinishHalf) Kind() Kind { return KindFinishHalf }

// Legal implements Action.
func (FinishHalf) Legal(ctx *Context) bool {
	g := ctx.Game
	if g.Phase == gamestate.PenaltyShootout {
		return false
	}
	return g.State == gamestate.Playing || g.State == gamestate.Ready || g.State == gamestate.Set
}

// Execute implements Action.
func (FinishHalf) Execute(ctx *Context) {
	g := ctx.Game
	stopAllPenaltyTimers(g)
	g.SecondaryTimer = timer.Stop()
	g.TimeoutRewindTimer = timer.Stop()
	g.SetPlay = gamestate.NoSetPlay
	g.KickingSide = gamestate.NoSide
	g.State = gamestate.Finished

	if g.Phase == gamestate.FirstHalf && !ctx.Params.ChallengeMode {
		g.SecondaryTimer = timer.Start(ctx.Params.HalfTimeBreak, timer.Always, timer.Overflow, nil)
		g.SwitchHalfTimer = timer.Start(ctx.Params.HalfTimeBreak/2, timer.Always, timer.Expire,
			gamestate.ExpiryAction{Kind: gamestate.ExpireSwitchHalf})
	}
}

// SwitchHalf transitions from FirstHalf/Finished into SecondHalf/Initial.
type SwitchHalf struct{}

// Kind implements Action.
func (SwitchHalf) Kind() Kind { return KindSwitchHalf }

// Legal implements Action.
func (SwitchHalf) Legal(ctx *Context) bool {
	g := ctx.Game
	return g.Phase == gamestate.FirstHalf && g.State == gamestate.Finished
}

// Execute implements Action.
func (SwitchHalf) Execute(ctx *Context) {
	g := ctx.Game

	for s := range g.Teams {
		team := &g.Teams[s]
		for i := range team.Players {
			p := &team.Players[i]
			if p.Penalty != gamestate.Substitute {
				p.Penalty = gamestate.NoPenalty
				p.PenaltyTimer = timer.Stop()
			}
		}
	}

	g.Sides.Flip()
	g.Phase = gamestate.SecondHalf
	g.State = gamestate.Initial
	g.KickingSide = g.FirstKickoffSide.Other()
	g.PrimaryTimer = timer.Start(ctx.Params.HalfDuration, timer.MainTimer, timer.Overflow, nil)
	g.SwitchHalfTimer = timer.Stop()
}

func stopAllPenaltyTimers(g *gamestate.Game) {
	for s := range g.Teams {
		team := &g.Teams[s]
		for i := range team.Players {
			team.Players[i].PenaltyTimer = timer.Stop()
		}
	}
}
