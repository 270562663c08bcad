package action

import (
	"time"

	"github.com/robocupgc/gamecontroller/gamestate"
	"github.com/robocupgc/gamecontroller/timer"
)

// mapCall translates a referee's PenaltyCall into the internal Penalty kind
// it produces, given the game's current State. Most calls map 1:1; a few
// (IllegalPosition, Motion) split depending on whether the game is in Set or
// not.
func mapCall(call gamestate.PenaltyCall, state gamestate.State) gamestate.Penalty {
	switch call {
	case gamestate.CallRequestForPickUp, gamestate.CallPickedUp:
		return gamestate.PickedUp
	case gamestate.CallIllegalPosition:
		if state == gamestate.Set {
			return gamestate.IllegalPositionInSet
		}
		return gamestate.IllegalPosition
	case gamestate.CallMotion:
		if state == gamestate.Standby {
			return gamestate.MotionInStandby
		}
		return gamestate.MotionInSet
	case gamestate.CallFallenInactive:
		return gamestate.FallenInactive
	case gamestate.CallPlayerStance:
		return gamestate.PlayerStance
	case gamestate.CallLocalGameStuck:
		return gamestate.LocalGameStuck
	case gamestate.CallBallHolding:
		return gamestate.BallHolding
	case gamestate.CallPlayingWithArmsHands:
		return gamestate.PlayingWithArmsHands
	case gamestate.CallPushing:
		return gamestate.PlayerPushing
	case gamestate.CallLeavingTheField:
		return gamestate.LeavingTheField
	case gamestate.CallFoul, gamestate.CallPenaltyKick:
		return gamestate.PickedUp
	default:
		return gamestate.NoPenalty
	}
}

// callLegalInState reports whether call may be issued while the game is in
// state (and, for a handful of calls, outside a penalty shoot-out).
func callLegalInState(call gamestate.PenaltyCall, g *gamestate.Game) bool {
	shootout := g.Phase == gamestate.PenaltyShootout
	s := g.State
	switch call {
	case gamestate.CallRequestForPickUp, gamestate.CallPickedUp:
		return true
	case gamestate.CallIllegalPosition:
		return !shootout && (s == gamestate.Ready || s == gamestate.Set || s == gamestate.Playing)
	case gamestate.CallMotion:
		return s == gamestate.Standby || s == gamestate.Set
	case gamestate.CallFallenInactive, gamestate.CallPlayerStance:
		return s == gamestate.Ready || s == gamestate.Set || s == gamestate.Playing
	case gamestate.CallLocalGameStuck, gamestate.CallBallHolding, gamestate.CallPlayingWithArmsHands:
		return !shootout && s == gamestate.Playing
	case gamestate.CallPushing, gamestate.CallLeavingTheField:
		if shootout && s == gamestate.Set {
			return false
		}
		return s == gamestate.Ready || s == gamestate.Set || s == gamestate.Playing
	case gamestate.CallFoul, gamestate.CallPenaltyKick:
		return !shootout && s == gamestate.Playing && g.SetPlay == gamestate.NoSetPlay
	default:
		return false
	}
}

// Penalize sanctions a player on side with the referee's call.
type Penalize struct {
	Side   gamestate.Side
	Player int
	Call   gamestate.PenaltyCall
}

// Kind implements Action.
func (Penalize) Kind() Kind { return KindPenalize }

// Legal implements Action.
func (a Penalize) Legal(ctx *Context) bool {
	g := ctx.Game
	p := g.Team(a.Side).Player(a.Player)
	if p.Penalty != gamestate.NoPenalty {
		if a.Call != gamestate.CallRequestForPickUp {
			return false
		}
		if p.Penalty == gamestate.PickedUp || p.Penalty == gamestate.Substitute {
			return false
		}
	}
	return callLegalInState(a.Call, g)
}

// Execute implements Action.
func (a Penalize) Execute(ctx *Context) {
	g := ctx.Game
	team := g.Team(a.Side)
	p := team.Player(a.Player)
	penalty := mapCall(a.Call, g.State)

	if penalty == gamestate.PickedUp && g.State.IsHalted() {
		p.Penalty = penalty
		p.PenaltyTimer = timer.Stop()
		a.startSetPlayForFoul(ctx)
		return
	}

	pd := ctx.Params.PenaltyDurationFor(penalty)
	base := pd.Base
	if pd.Incremental {
		base += pd.Increment * time.Duration(team.PenaltyCounter)
	}

	remaining := base
	wasPenalized := p.Penalty != gamestate.NoPenalty && p.Penalty != gamestate.Substitute
	if wasPenalized && penalty == gamestate.PickedUp {
		prevRemaining := p.PenaltyTimer.GetRemaining()
		var thisDuration time.Duration
		if p.Penalty == gamestate.MotionInStandby {
			thisDuration = ctx.Params.ReadyDuration
		} else {
			thisDuration = base
		}
		extra := thisDuration - prevRemaining
		if extra < 0 {
			extra = 0
		}
		remaining = prevRemaining + extra
	}

	var runCond timer.RunCondition
	if penalty == gamestate.MotionInStandby {
		runCond = timer.PlayingOnly
	} else {
		runCond = timer.ReadyOrPlaying
	}

	var behavior timer.BehaviorAtZero
	var onExpire interface{}
	switch penalty {
	case gamestate.MotionInStandby, gamestate.MotionInSet:
		behavior = timer.Expire
		onExpire = gamestate.ExpiryAction{Kind: gamestate.ExpireUnpenalize, Side: a.Side, PlayerNumber: a.Player}
	case gamestate.PickedUp:
		behavior = timer.Expire
		onExpire = gamestate.ExpiryAction{Kind: gamestate.ExpireNone}
	default:
		behavior = timer.Clip
	}

	p.Penalty = penalty
	p.PenaltyTimer = timer.Start(remaining, runCond, behavior, onExpire)
	if pd.Incremental {
		team.PenaltyCounter++
	}

	a.startSetPlayForFoul(ctx)
}

func (a Penalize) startSetPlayForFoul(ctx *Context) {
	switch a.Call {
	case gamestate.CallFoul:
		StartSetPlay{Side: a.Side.Other(), SetPlay: gamestate.PushingFreeKick}.Execute(ctx)
	case gamestate.CallPenaltyKick:
		StartSetPlay{Side: a.Side.Other(), SetPlay: gamestate.PenaltyKick}.Execute(ctx)
	}
}

// Unpenalize clears a player's sanction.
type Unpenalize struct {
	Side   gamestate.Side
	Player int
}

// Kind implements Action.
func (Unpenalize) Kind() Kind { return KindUnpenalize }

// Legal implements Action.
func (a Unpenalize) Legal(ctx *Context) bool {
	g := ctx.Game
	p := g.Team(a.Side).Player(a.Player)
	if p.Penalty == gamestate.NoPenalty || p.Penalty == gamestate.Substitute {
		return false
	}
	if ctx.Params.TestUnpenalize {
		return true
	}
	if !p.PenaltyTimer.IsRunning(g.Conditions(ctx.Params)) || p.PenaltyTimer.GetRemaining() <= 0 {
		return true
	}
	if p.Penalty == gamestate.MotionInSet && g.State == gamestate.Set {
		return true
	}
	if p.Penalty == gamestate.MotionInStandby && g.State == gamestate.Standby {
		return true
	}
	return false
}

// Execute implements Action.
func (a Unpenalize) Execute(ctx *Context) {
	p := ctx.Game.Team(a.Side).Player(a.Player)
	p.PenaltyTimer = timer.Stop()
	p.Penalty = gamestate.NoPenalty
}
