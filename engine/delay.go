package engine

import (
	"time"

	"github.com/robocupgc/gamecontroller/action"
	"github.com/robocupgc/gamecontroller/gamestate"
)

// delay is the active "delayed game" fork: a clone of the true Game taken
// just before a forking action's mutation, kept frozen at that pre-mutation
// state for a short window while the true Game moves on immediately.
type delay struct {
	snapshot  *gamestate.Game
	countdown time.Duration
	ignore    action.IgnorePredicate
}

// tolerates reports whether a Legal=false action against the fork should be
// tolerated (leaving the fork intact) rather than tearing the fork down.
func (d *delay) tolerates(a action.Action) bool {
	switch d.ignore {
	case action.IgnoreFinishSetPlay:
		return a.Kind() == action.KindFinishSetPlay
	default:
		return false
	}
}
