package engine

import (
	"github.com/robocupgc/gamecontroller/action"
	"github.com/robocupgc/gamecontroller/gamestate"
)

// historyEntry pairs a user-sourced action with the Game as it stood
// immediately before that action was applied.
type historyEntry struct {
	game   *gamestate.Game
	action action.Action
}

// history implements action.History. It retains every recorded entry;
// recent serves the latest of them for the UI's undoable-actions display
// (see spec.md's event loop).
type history struct {
	entries []historyEntry
}

// NumUserActions implements action.History.
func (h *history) NumUserActions() int { return len(h.entries) }

// RestoreBefore implements action.History. It pops the n+1 most recent
// entries and returns the Game as it stood before the oldest of those.
func (h *history) RestoreBefore(n int) (*gamestate.Game, bool) {
	if n >= len(h.entries) {
		return nil, false
	}
	idx := len(h.entries) - 1 - n
	restored := h.entries[idx].game
	h.entries = h.entries[:idx]
	return restored, true
}

// record appends a new entry, cloning game so later mutation of the live
// Game cannot corrupt the stored snapshot.
func (h *history) record(game *gamestate.Game, a action.Action) {
	h.entries = append(h.entries, historyEntry{game: game.Clone(), action: a})
}

// recent returns up to n of the most recently recorded actions, oldest
// first, for display in the UI snapshot.
func (h *history) recent(n int) []action.Action {
	if n > len(h.entries) {
		n = len(h.entries)
	}
	out := make([]action.Action, n)
	for i := 0; i < n; i++ {
		out[i] = h.entries[len(h.entries)-n+i].action
	}
	return out
}
