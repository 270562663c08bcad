// Package action implements the action algebra: one type per referee or
// timer action, each able to judge its own legality against a Game and to
// apply itself. This is the only package that is allowed to mutate a
// gamestate.Game.
package action

import (
	"time"

	"github.com/robocupgc/gamecontroller/gamestate"
)

// IgnorePredicate names the small set of "don't tear down the fork for this"
// predicates a delayed game can be created with. A boxed function would be
// more general, but the action set that needs this is small and fixed (see
// spec.md §9), so a closed enum keeps the Context trivially copyable.
type IgnorePredicate int8

const (
	// IgnoreNone accepts no actions; any illegal action against the fork
	// tears it down.
	IgnoreNone IgnorePredicate = iota
	// IgnoreFinishSetPlay additionally tolerates a FinishSetPlay that is
	// illegal against the fork, so the fork survives its own set play
	// auto-completing before the delay window elapses.
	IgnoreFinishSetPlay
)

// ForkFunc installs a delayed-game snapshot captured from ctx.Game as it
// stood before the caller's mutation. It returns true only when called
// against the true game (never against an already-delayed one), in which
// case the caller (the action's Execute) proceeds to mutate ctx.Game (the
// true game) immediately — the installed snapshot, not ctx.Game, is what
// stays frozen and visible to delayed consumers until the fork's countdown
// elapses. It returns false when called against an already-delayed game
// (the fork's own re-execution of the same action via Engine.applyDelayed),
// in which case the caller must return immediately without mutating the
// frozen snapshot.
type ForkFunc func(duration time.Duration, ignore IgnorePredicate) bool

// History is the subset of the engine's undo history Undo needs. It is an
// interface so that the action package does not depend on the engine
// package (which depends on action for its Apply pipeline).
type History interface {
	// NumUserActions returns how many user-sourced actions are recorded.
	NumUserActions() int
	// RestoreBefore returns the Game as it was n+1 user actions ago, popping
	// the intervening entries, and true. If n >= NumUserActions it returns
	// (nil, false).
	RestoreBefore(n int) (*gamestate.Game, bool)
}

// Context is the mutable view an Action operates against.
type Context struct {
	// Game is the target of Execute: either the true game or its delayed
	// fork, depending on which Apply pass invoked the action.
	Game *gamestate.Game

	// Params is the competition parameter bundle.
	Params *gamestate.Params

	// Delayed is true if Game is the delayed fork rather than the true game.
	Delayed bool

	// DelayedGame is a read-only reference to the current delayed-game
	// snapshot, or nil if no fork is active. It is populated even when Game
	// itself is the true game, because a handful of actions (TeamMessage)
	// must consult the delayed game's state regardless of which copy they
	// are mutating.
	DelayedGame *gamestate.Game

	// fork installs a new delayed-game snapshot. nil in legality-only
	// contexts and in contexts already operating on a delayed game.
	fork ForkFunc

	// History gives Undo access to the engine's action history. nil in
	// contexts that disallow history mutation (delayed-game execution,
	// legality-only checks).
	History History
}

// NewContext builds a Context for executing against game. fork and history
// may be nil (legality checks, or execution against an already-delayed
// game, never fork or touch history).
func NewContext(game *gamestate.Game, params *gamestate.Params, delayed bool, delayedGame *gamestate.Game, fork ForkFunc, history History) *Context {
	return &Context{
		Game:        game,
		Params:      params,
		Delayed:     delayed,
		DelayedGame: delayedGame,
		fork:        fork,
		History:     history,
	}
}

// Fork attempts to install a delayed-game snapshot. See ForkFunc.
func (c *Context) Fork(duration time.Duration, ignore IgnorePredicate) bool {
	if c.fork == nil {
		return false
	}
	return c.fork(duration, ignore)
}

// Kind identifies an Action's variant, for logging, metrics and history.
type Kind string

// Action is the common interface every referee/timer action implements.
type Action interface {
	// Kind identifies this action's variant.
	Kind() Kind
	// Legal reports whether Execute may be called against ctx.Game right now.
	Legal(ctx *Context) bool
	// Execute applies the action's effect to ctx.Game. It may invoke other
	// actions' Execute directly (never their own Legal — an action that
	// invokes another as a side effect is responsible for knowing it is
	// always legal at that point).
	Execute(ctx *Context)
}
