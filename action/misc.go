package action

import (
	"github.com/robocupgc/gamecontroller/gamestate"
	"github.com/robocupgc/gamecontroller/timer"
)

// GlobalGameStuck restarts play with a kick-off when the referee judges the
// game globally stuck, alternating which side is awarded it.
type GlobalGameStuck struct{}

// Kind implements Action.
func (GlobalGameStuck) Kind() Kind { return KindGlobalGameStuck }

// Legal implements Action.
func (GlobalGameStuck) Legal(ctx *Context) bool {
	if ctx.Params.ChallengeMode {
		return false
	}
	g := ctx.Game
	return g.Phase != gamestate.PenaltyShootout && g.State == gamestate.Playing
}

// Execute implements Action.
func (GlobalGameStuck) Execute(ctx *Context) {
	g := ctx.Game
	side := g.NextGlobalGameStuckKickOff
	StartSetPlay{Side: side, SetPlay: gamestate.KickOff}.Execute(ctx)
	g.NextGlobalGameStuckKickOff = side.Other()
}

// Substitute swaps a Substitute player onto the field for a fielded one.
type Substitute struct {
	Side    gamestate.Side
	In, Out int
}

// Kind implements Action.
func (Substitute) Kind() Kind { return KindSubstitute }

// Legal implements Action.
func (a Substitute) Legal(ctx *Context) bool {
	if a.In == a.Out {
		return false
	}
	team := ctx.Game.Team(a.Side)
	return team.Player(a.In).Penalty == gamestate.Substitute &&
		team.Player(a.Out).Penalty != gamestate.Substitute
}

// Execute implements Action.
func (a Substitute) Execute(ctx *Context) {
	g := ctx.Game
	team := g.Team(a.Side)
	in := team.Player(a.In)
	out := team.Player(a.Out)

	wasGoalkeeper := team.Goalkeeper == a.Out

	if out.Penalty == gamestate.NoPenalty &&
		(g.State == gamestate.Ready || g.State == gamestate.Set || g.State == gamestate.Playing) {
		in.Penalty = gamestate.PickedUp
		in.PenaltyTimer = timer.Start(ctx.Params.PenaltyDurationFor(gamestate.PickedUp).Base,
			timer.ReadyOrPlaying, timer.Clip, nil)
	} else {
		in.Penalty = out.Penalty
		in.PenaltyTimer = out.PenaltyTimer
	}

	out.Penalty = gamestate.Substitute
	out.PenaltyTimer = timer.Stop()

	if wasGoalkeeper {
		team.Goalkeeper = a.In
	}
}

// SwitchTeamMode toggles a team between its normal roster and its
// fallback-mode roster.
type SwitchTeamMode struct {
	Side gamestate.Side
}

// Kind implements Action.
func (SwitchTeamMode) Kind() Kind { return KindSwitchTeamMode }

// Legal implements Action.
func (a SwitchTeamMode) Legal(ctx *Context) bool {
	if ctx.Params.FallbackPlayerCount <= 0 {
		return false
	}
	g := ctx.Game
	if g.Phase == gamestate.PenaltyShootout {
		return false
	}
	if g.State == gamestate.Initial {
		return true
	}
	team := g.Team(a.Side)
	return g.State == gamestate.Timeout && !team.FallbackMode
}

// Execute implements Action.
func (a SwitchTeamMode) Execute(ctx *Context) {
	team := ctx.Game.Team(a.Side)
	team.FallbackMode = !team.FallbackMode

	extra := ctx.Params.PlayersPerTeam - ctx.Params.FallbackPlayerCount
	if extra <= 0 {
		return
	}

	enteringFallback := team.FallbackMode
	for n := ctx.Params.PlayersPerTeam; n > ctx.Params.PlayersPerTeam-extra; n-- {
		p := team.Player(n)
		if enteringFallback {
			p.Penalty = gamestate.Substitute
			p.PenaltyTimer = timer.Stop()
		} else if p.Penalty == gamestate.Substitute {
			p.Penalty = gamestate.NoPenalty
		}
	}
}

// TeamMessage records one network message a team sent, charging its budget.
type TeamMessage struct {
	Side    gamestate.Side
	Illegal bool
}

// Kind implements Action.
func (TeamMessage) Kind() Kind { return KindTeamMessage }

// Legal implements Action.
func (TeamMessage) Legal(ctx *Context) bool {
	g := ctx.Game
	if g.Phase == gamestate.PenaltyShootout {
		return false
	}
	return g.State == gamestate.Ready || g.State == gamestate.Set || g.State == gamestate.Playing
}

// Execute implements Action.
func (a TeamMessage) Execute(ctx *Context) {
	if ctx.DelayedGame != nil && ctx.DelayedGame.State == gamestate.Standby {
		return
	}

	team := ctx.Game.Team(a.Side)
	if team.MessageBudget == 0 || a.Illegal {
		team.IllegalCommunication = true
		team.Score = 0
	}
	if team.MessageBudget > 0 {
		team.MessageBudget--
	}
}

// Timeout halts play for a team timeout, or (side unset) a referee timeout.
type Timeout struct {
	Side gamestate.Side // gamestate.NoSide for a referee-initiated timeout.
}

// Kind implements Action.
func (Timeout) Kind() Kind { return KindTimeout }

// Legal implements Action.
func (a Timeout) Legal(ctx *Context) bool {
	g := ctx.Game
	if g.State == gamestate.Playing || g.State == gamestate.Finished {
		return false
	}
	if g.Phase == gamestate.PenaltyShootout {
		if g.State != gamestate.Initial && g.State != gamestate.Timeout {
			return false
		}
	}
	if g.SetPlay != gamestate.NoSetPlay && g.SetPlay != gamestate.KickOff {
		return false
	}
	if a.Side.IsSet() && g.Team(a.Side).TimeoutBudget <= 0 {
		return false
	}
	return true
}

// Execute implements Action.
func (a Timeout) Execute(ctx *Context) {
	g := ctx.Game
	stopAllPenaltyTimers(g)

	if g.Phase != gamestate.PenaltyShootout && a.Side.IsSet() {
		g.KickingSide = a.Side.Other()
		rewind := g.TimeoutRewindTimer.GetRemaining()
		g.PrimaryTimer = timer.Start(g.PrimaryTimer.GetRemaining()+rewind,
			timer.MainTimer, timer.Overflow, nil)
		g.TimeoutRewindTimer = timer.Stop()
	}

	extendExisting := g.State == gamestate.Timeout ||
		(g.State == gamestate.Initial && g.Phase == gamestate.SecondHalf &&
			g.SecondaryTimer.GetRemaining() > 0)
	if extendExisting {
		g.SecondaryTimer = timer.Start(g.SecondaryTimer.GetRemaining()+ctx.Params.TimeoutDuration,
			timer.Always, timer.Overflow, nil)
	} else {
		g.SecondaryTimer = timer.Start(ctx.Params.TimeoutDuration, timer.Always, timer.Overflow, nil)
	}

	g.State = gamestate.Timeout
	g.SetPlay = gamestate.NoSetPlay
	if a.Side.IsSet() {
		g.Team(a.Side).TimeoutBudget--
	}
}
