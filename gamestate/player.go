package gamestate

import "github.com/robocupgc/gamecontroller/timer"

// MaxPlayers is the fixed size of a Team's player array. Player numbers are
// 1-based; Players[i] holds player number i+1.
const MaxPlayers = 20

// Player is a single roster slot on a Team.
type Player struct {
	Penalty      Penalty
	PenaltyTimer timer.Timer
}

// Number returns the 1-based jersey number for the player at array index i.
func Number(i int) int { return i + 1 }

// Index returns the 0-based array index for jersey number n. n must be in
// [1, MaxPlayers].
func Index(n int) int { return n - 1 }
