package action

import "github.com/robocupgc/gamecontroller/gamestate"

// Goal records a goal scored by side.
type Goal struct {
	Side gamestate.Side
}

// Kind implements Action.
func (Goal) Kind() Kind { return KindGoal }

// Legal implements Action.
func (a Goal) Legal(ctx *Context) bool {
	g := ctx.Game
	if g.State != gamestate.Playing {
		return false
	}
	if g.Phase == gamestate.PenaltyShootout && g.KickingSide.IsSet() && g.KickingSide != a.Side {
		return false
	}
	if ctx.Params.ChallengeMode && g.KickingSide != a.Side {
		return false
	}
	return true
}

// Execute implements Action.
func (a Goal) Execute(ctx *Context) {
	g := ctx.Game
	team := g.Team(a.Side)
	other := g.Team(a.Side.Other())

	mercyRule := g.Phase != gamestate.PenaltyShootout &&
		!team.IllegalCommunication &&
		team.Score+1 >= other.Score+ctx.Params.MercyDiff

	if !ctx.Params.TestNoDelay && g.Phase != gamestate.PenaltyShootout &&
		!ctx.Params.ChallengeMode && !mercyRule {
		if !ctx.Fork(ctx.Params.DelayAfterGoal, IgnoreNone) {
			return
		}
	}

	if !team.IllegalCommunication {
		team.Score++
	}

	if ctx.Params.ChallengeMode {
		return
	}

	if mercyRule {
		stopAllPenaltyTimers(g)
		g.Phase = gamestate.SecondHalf
		FinishHalf{}.Execute(ctx)
		return
	}

	if g.Phase == gamestate.PenaltyShootout {
		team.PenaltyShotMask |= 1 << uint(team.PenaltyShot-1)
		g.State = gamestate.Finished
		return
	}

	StartSetPlay{Side: a.Side.Other(), SetPlay: gamestate.KickOff}.Execute(ctx)
}

// FinishPenaltyShot ends the Playing window of a shoot-out shot.
type FinishPenaltyShot struct{}

// Kind implements Action.
func (FinishPenaltyShot) Kind() Kind { return KindFinishPenaltyShot }

// Legal implements Action.
func (FinishPenaltyShot) Legal(ctx *Context) bool {
	g := ctx.Game
	return g.Phase == gamestate.PenaltyShootout && g.State == gamestate.Playing
}

// Execute implements Action.
func (FinishPenaltyShot) Execute(ctx *Context) {
	g := ctx.Game
	stopAllPenaltyTimers(g)
	g.State = gamestate.Finished
}

// FreePenaltyShot releases a shoot-out shot from Set into Playing.
type FreePenaltyShot struct{}

// Kind implements Action.
func (FreePenaltyShot) Kind() Kind { return KindFreePenaltyShot }

// Legal implements Action.
func (FreePenaltyShot) Legal(ctx *Context) bool {
	g := ctx.Game
	if g.Phase != gamestate.PenaltyShootout || g.State != gamestate.Set {
		return false
	}
	for s := range g.Teams {
		if len(g.Teams[s].NonSubstitutePlayers()) != 1 {
			return false
		}
	}
	return true
}

// Execute implements Action.
func (FreePenaltyShot) Execute(ctx *Context) {
	if !ctx.Fork(ctx.Params.DelayAfterPlaying, IgnoreNone) {
		return
	}
	ctx.Game.State = gamestate.Playing
}
