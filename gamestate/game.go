package gamestate

import "github.com/robocupgc/gamecontroller/timer"

// Game is the complete authoritative state of one match. It is mutated only
// by action.Action.Execute; every other reader only observes it (or a clone
// of it).
type Game struct {
	Sides SideMapping

	Phase   Phase
	State   State
	SetPlay SetPlay

	// KickingSide is the side entitled to restart play, or on strike for a
	// penalty shot. NoSide if nobody currently is.
	KickingSide Side

	PrimaryTimer       timer.Timer
	SecondaryTimer     timer.Timer
	TimeoutRewindTimer timer.Timer
	SwitchHalfTimer    timer.Timer

	// NextGlobalGameStuckKickOff alternates between Home and Away each time
	// GlobalGameStuck fires.
	NextGlobalGameStuckKickOff Side

	// FirstKickoffSide records which side kicked off the match itself (the
	// very first FirstHalf kick-off), needed by SwitchHalf to hand the
	// second-half kick-off to whichever side did not kick off first.
	FirstKickoffSide Side

	Teams [2]Team
}

// New constructs a Game with defaults derived from p: both teams start with
// a full timeout budget and message budget, nobody has kicked off, and the
// primary timer is armed for the first half.
func New(p *Params, homeNumber, awayNumber int) *Game {
	g := &Game{
		Sides:       SideMapping{Home: DefendsLeft, Away: DefendsRight},
		Phase:       FirstHalf,
		State:       Initial,
		SetPlay:     NoSetPlay,
		KickingSide: Home,
		PrimaryTimer: timer.Start(
			p.HalfDuration, timer.MainTimer, timer.Overflow, nil),
		NextGlobalGameStuckKickOff: Away,
		FirstKickoffSide:           Home,
	}
	g.Teams[Home] = newTeam(homeNumber, p)
	g.Teams[Away] = newTeam(awayNumber, p)
	return g
}

func newTeam(number int, p *Params) Team {
	return Team{
		Number:        number,
		Goalkeeper:    1,
		TimeoutBudget: p.TimeoutBudget,
		MessageBudget: p.MessageBudgetPerHalf,
	}
}

// Team returns a pointer to the team occupying side s.
func (g *Game) Team(s Side) *Team { return &g.Teams[s] }

// Clone returns a deep value copy of g. Because Game contains only value
// types (arrays, not slices or maps), a plain dereference-copy is already a
// full deep copy; Clone exists so call sites document the intent and so a
// future field addition that does need deep-copying has one place to fix.
func (g *Game) Clone() *Game {
	clone := *g
	return &clone
}

// Conditions builds the timer.Conditions describing g's current State,
// suitable for evaluating any of g's timers' run conditions.
//
// countReadySet (MainTimer's Ready/Set exception) is false in a penalty
// shoot-out, false for the entire Ready/Set window in a long (play-off)
// game, and false for the very first pre-kick-off Ready (identified by the
// primary timer still reading exactly p.HalfDuration) so that the standby
// period before the match has actually started never eats into the half.
func (g *Game) Conditions(p *Params) timer.Conditions {
	countReadySet := g.Phase != PenaltyShootout &&
		!p.LongGame &&
		g.PrimaryTimer.GetRemaining() != p.HalfDuration
	return timer.Conditions{
		Playing:       g.State == Playing,
		ReadyOrSet:    g.State == Ready || g.State == Set,
		ReadyState:    g.State == Ready,
		CountReadySet: countReadySet,
	}
}
