package action

import (
	"github.com/robocupgc/gamecontroller/gamestate"
	"github.com/robocupgc/gamecontroller/timer"
)

// FinishSetPlay clears the active set play once its Playing window ends.
type FinishSetPlay struct{}

// Kind implements Action.
func (FinishSetPlay) Kind() Kind { return KindFinishSetPlay }

// Legal implements Action.
func (FinishSetPlay) Legal(ctx *Context) bool {
	g := ctx.Game
	return g.State == gamestate.Playing && g.SetPlay != gamestate.NoSetPlay
}

// Execute implements Action.
func (FinishSetPlay) Execute(ctx *Context) {
	g := ctx.Game
	g.SecondaryTimer = timer.Stop()
	g.SetPlay = gamestate.NoSetPlay
	g.KickingSide = gamestate.NoSide
}

// FreeSetPlay releases the ball from a Set restart into live play.
type FreeSetPlay struct{}

// Kind implements Action.
func (FreeSetPlay) Kind() Kind { return KindFreeSetPlay }

// Legal implements Action.
func (FreeSetPlay) Legal(ctx *Context) bool {
	g := ctx.Game
	return g.State == gamestate.Set && g.SetPlay != gamestate.NoSetPlay
}

// Execute implements Action.
func (FreeSetPlay) Execute(ctx *Context) {
	if !ctx.Fork(ctx.Params.DelayAfterPlaying, IgnoreFinishSetPlay) {
		return
	}

	g := ctx.Game
	g.SecondaryTimer = timer.Start(ctx.Params.Duration(g.SetPlay), timer.Always, timer.Expire,
		gamestate.ExpiryAction{Kind: gamestate.ExpireFinishSetPlay})
	g.TimeoutRewindTimer = timer.Stop()
	g.State = gamestate.Playing
}

// WaitForSetPlay moves a kick-off (or other restart) from Ready into Set.
type WaitForSetPlay struct{}

// Kind implements Action.
func (WaitForSetPlay) Kind() Kind { return KindWaitForSetPlay }

// Legal implements Action.
func (WaitForSetPlay) Legal(ctx *Context) bool {
	g := ctx.Game
	return g.State == gamestate.Ready && g.SetPlay != gamestate.NoSetPlay
}

// Execute implements Action.
func (WaitForSetPlay) Execute(ctx *Context) {
	g := ctx.Game
	for s := range g.Teams {
		team := &g.Teams[s]
		for i := range team.Players {
			p := &team.Players[i]
			if p.Penalty == gamestate.MotionInStandby {
				p.Penalty = gamestate.NoPenalty
				p.PenaltyTimer = timer.Stop()
			}
		}
	}
	g.SecondaryTimer = timer.Stop()
	g.State = gamestate.Set
}

// WaitForReady moves a halted game into the pre-kick-off Standby state, if
// the competition is configured to use one.
type WaitForReady struct{}

// Kind implements Action.
func (WaitForReady) Kind() Kind { return KindWaitForReady }

// Legal implements Action.
func (WaitForReady) Legal(ctx *Context) bool {
	if ctx.Params.DelayAfterReady <= 0 {
		return false
	}
	g := ctx.Game
	if g.Phase == gamestate.PenaltyShootout {
		return false
	}
	return g.State == gamestate.Initial || g.State == gamestate.Timeout
}

// Execute implements Action.
func (WaitForReady) Execute(ctx *Context) {
	ctx.Game.State = gamestate.Standby
}

// StartSetPlay arms a restart for side with the given set play.
type StartSetPlay struct {
	Side    gamestate.Side
	SetPlay gamestate.SetPlay
}

// Kind implements Action.
func (StartSetPlay) Kind() Kind { return KindStartSetPlay }

// Legal implements Action.
func (a StartSetPlay) Legal(ctx *Context) bool {
	if a.SetPlay == gamestate.NoSetPlay {
		return false
	}
	g := ctx.Game
	if g.Phase == gamestate.PenaltyShootout {
		return false
	}

	if a.SetPlay == gamestate.KickOff {
		var stateOK bool
		if ctx.Params.StandbyConfigured {
			stateOK = g.State == gamestate.Standby
		} else {
			stateOK = g.State == gamestate.Initial || g.State == gamestate.Timeout
		}
		return stateOK && g.KickingSide == a.Side
	}

	if ctx.Params.ChallengeMode {
		return false
	}
	if g.State != gamestate.Playing {
		return false
	}
	return g.SetPlay == gamestate.NoSetPlay || g.KickingSide == a.Side.Other()
}

// Execute implements Action.
func (a StartSetPlay) Execute(ctx *Context) {
	g := ctx.Game

	if a.SetPlay == gamestate.KickOff && g.State == gamestate.Standby && !ctx.Params.TestNoDelay {
		if !ctx.Fork(ctx.Params.DelayAfterReady, IgnoreNone) {
			return
		}
	}

	readyDuration := ctx.Params.SetPlayReadyDuration(a.SetPlay)
	if readyDuration > 0 {
		g.SecondaryTimer = timer.Start(readyDuration, timer.Always, timer.Expire,
			gamestate.ExpiryAction{Kind: gamestate.ExpireWaitForSetPlay})
		g.TimeoutRewindTimer = timer.Start(0, timer.MainTimer, timer.Overflow, nil)
		g.State = gamestate.Ready
	} else {
		g.SecondaryTimer = timer.Start(ctx.Params.Duration(a.SetPlay), timer.Always, timer.Expire,
			gamestate.ExpiryAction{Kind: gamestate.ExpireFinishSetPlay})
	}

	g.SetPlay = a.SetPlay
	g.KickingSide = a.Side
}
