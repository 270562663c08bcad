package action

import (
	"time"

	"github.com/robocupgc/gamecontroller/gamestate"
	"github.com/robocupgc/gamecontroller/timer"
)

// AddExtraTime adds a minute to the primary timer and tops up message
// budgets, to compensate for a long stoppage.
type AddExtraTime struct{}

const extraTimeIncrement = time.Minute

// Kind implements Action.
func (AddExtraTime) Kind() Kind { return KindAddExtraTime }

// Legal implements Action.
func (AddExtraTime) Legal(ctx *Context) bool {
	g := ctx.Game
	if g.Phase == gamestate.PenaltyShootout || g.State == gamestate.Playing {
		return false
	}
	if !g.PrimaryTimer.IsStarted() {
		return false
	}
	return g.PrimaryTimer.GetRemaining()+extraTimeIncrement <= ctx.Params.HalfDuration
}

// Execute implements Action.
func (AddExtraTime) Execute(ctx *Context) {
	g := ctx.Game
	remaining := g.PrimaryTimer.GetRemaining() + extraTimeIncrement
	g.PrimaryTimer = timer.Start(remaining, timer.MainTimer, timer.Overflow, nil)

	for _, s := range []gamestate.Side{gamestate.Home, gamestate.Away} {
		team := g.Team(s)
		if !team.IllegalCommunication {
			team.MessageBudget += ctx.Params.MessagesPerTeamPerExtraMinute
		}
	}
}
