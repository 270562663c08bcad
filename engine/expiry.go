package engine

import (
	"github.com/robocupgc/gamecontroller/action"
	"github.com/robocupgc/gamecontroller/gamestate"
)

// resolveExpiry converts the opaque payload a Timer hands back on expiry
// into the concrete action.Action it denotes. For a timer that expires with
// no follow-up the payload is nil or an ExpiryAction of a kind with no
// action (e.g. the ExpireNone that PickedUp stores), in which case
// resolveExpiry returns nil.
func resolveExpiry(payload interface{}) action.Action {
	exp, ok := payload.(gamestate.ExpiryAction)
	if !ok {
		return nil
	}
	switch exp.Kind {
	case gamestate.ExpireWaitForSetPlay:
		return action.WaitForSetPlay{}
	case gamestate.ExpireFinishSetPlay:
		return action.FinishSetPlay{}
	case gamestate.ExpireUnpenalize:
		return action.Unpenalize{Side: exp.Side, Player: exp.PlayerNumber}
	case gamestate.ExpireSwitchHalf:
		return action.SwitchHalf{}
	default:
		return nil
	}
}
