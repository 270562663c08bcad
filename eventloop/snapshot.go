package eventloop

import (
	"time"

	"github.com/robocupgc/gamecontroller/action"
	"github.com/robocupgc/gamecontroller/gamestate"
)

// Snapshot is published once per loop iteration for UI consumers: the true
// game, the delayed fork if one is active, every tracked player's
// connection status, the last five undoable user actions, and a legality
// map for whatever actions the UI has subscribed to.
type Snapshot struct {
	PublishedAt time.Time

	Game        *gamestate.Game
	DelayedGame *gamestate.Game // nil if no fork is active

	Connections   map[PlayerKey]ConnectionStatus
	RecentActions []action.Action

	// Legality reports, for each exact action the UI last asked about via
	// Subscribe, whether that specific action is currently Legal against
	// the true game. A full action.Action value (not just its Kind) is the
	// subscription key because legality is parameterized — e.g. a
	// Penalize{Home, 4, ...} and a Penalize{Away, 9, ...} can disagree.
	Legality map[action.Action]bool
}

// RecentActionCount is how many of the most recent user actions a Snapshot
// carries, per spec.md §4.5.
const RecentActionCount = 5
