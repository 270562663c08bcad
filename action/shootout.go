package action

import (
	"github.com/robocupgc/gamecontroller/gamestate"
	"github.com/robocupgc/gamecontroller/timer"
)

// StartPenaltyShootout transitions the match into the shoot-out phase.
type StartPenaltyShootout struct {
	Sides gamestate.SideMapping
}

// Kind implements Action.
func (StartPenaltyShootout) Kind() Kind { return KindStartPenaltyShootout }

// Legal implements Action.
func (StartPenaltyShootout) Legal(ctx *Context) bool {
	g := ctx.Game
	if ctx.Params.ChallengeMode {
		return false
	}
	if g.Phase != gamestate.SecondHalf || g.State != gamestate.Finished {
		return false
	}
	scoresEqual := g.Teams[gamestate.Home].Score == g.Teams[gamestate.Away].Score
	return scoresEqual || ctx.Params.TestPenaltyShootout
}

// Execute implements Action.
func (a StartPenaltyShootout) Execute(ctx *Context) {
	g := ctx.Game
	for s := range g.Teams {
		team := &g.Teams[s]
		team.PenaltyShot = 0
		team.PenaltyShotMask = 0
		for i := range team.Players {
			team.Players[i].Penalty = gamestate.Substitute
			team.Players[i].PenaltyTimer = timer.Stop()
		}
	}

	g.Sides = a.Sides
	g.Phase = gamestate.PenaltyShootout
	g.State = gamestate.Initial
	g.SetPlay = gamestate.NoSetPlay
	g.KickingSide = gamestate.Home
	g.PrimaryTimer = timer.Stop()
	g.SecondaryTimer = timer.Stop()
	g.TimeoutRewindTimer = timer.Stop()
	g.SwitchHalfTimer = timer.Stop()
}

// SelectPenaltyShotPlayer designates which player takes (or saves) the
// current shoot-out shot for side.
type SelectPenaltyShotPlayer struct {
	Side       gamestate.Side
	Player     int
	Goalkeeper bool
}

// Kind implements Action.
func (SelectPenaltyShotPlayer) Kind() Kind { return KindSelectPenaltyShotPlayer }

// Legal implements Action.
func (SelectPenaltyShotPlayer) Legal(ctx *Context) bool {
	return ctx.Game.Phase == gamestate.PenaltyShootout
}

// Execute implements Action.
func (a SelectPenaltyShotPlayer) Execute(ctx *Context) {
	team := ctx.Game.Team(a.Side)
	var carried gamestate.Player
	for i := range team.Players {
		if team.Players[i].Penalty != gamestate.Substitute {
			carried = team.Players[i]
			break
		}
	}

	for i := range team.Players {
		team.Players[i].Penalty = gamestate.Substitute
		team.Players[i].PenaltyTimer = timer.Stop()
	}

	selected := team.Player(a.Player)
	*selected = carried
	if selected.Penalty == gamestate.Substitute {
		selected.Penalty = gamestate.NoPenalty
	}

	if a.Goalkeeper {
		team.Goalkeeper = a.Player
	}
}

// WaitForPenaltyShot arms the next shoot-out shot.
type WaitForPenaltyShot struct{}

// Kind implements Action.
func (WaitForPenaltyShot) Kind() Kind { return KindWaitForPenaltyShot }

// Legal implements Action.
func (WaitForPenaltyShot) Legal(ctx *Context) bool {
	g := ctx.Game
	if g.Phase != gamestate.PenaltyShootout {
		return false
	}
	if g.State == gamestate.Initial || g.State == gamestate.Timeout {
		return true
	}
	if g.State != gamestate.Finished {
		return false
	}
	return anotherShotNecessary(ctx)
}

// anotherShotNecessary reports whether the shoot-out's regular or
// sudden-death shot count requires continuing.
func anotherShotNecessary(ctx *Context) bool {
	g := ctx.Game
	home := g.Teams[gamestate.Home]
	away := g.Teams[gamestate.Away]

	const regularShots = 5
	if home.PenaltyShot < regularShots || away.PenaltyShot < regularShots {
		return true
	}
	if home.PenaltyShot != away.PenaltyShot {
		// One side has shot and the other hasn't replied yet.
		return true
	}
	return home.PenaltyShotsConverted() == away.PenaltyShotsConverted()
}

// Execute implements Action.
func (WaitForPenaltyShot) Execute(ctx *Context) {
	g := ctx.Game

	if g.State == gamestate.Finished {
		for s := range g.Teams {
			team := &g.Teams[s]
			for i := range team.Players {
				team.Players[i].Penalty = gamestate.Substitute
				team.Players[i].PenaltyTimer = timer.Stop()
			}
		}
		g.Sides.Flip()
		g.KickingSide = g.KickingSide.Other()
	}

	g.State = gamestate.Set
	g.PrimaryTimer = timer.Start(ctx.Params.PenaltyShotDuration, timer.PlayingOnly, timer.Overflow, nil)
	g.SecondaryTimer = timer.Stop()
	g.Team(g.KickingSide).PenaltyShot++
}
