// Package wire implements the three binary packet formats exchanged between
// the engine and the field: the control message broadcast to players and
// monitors, the status message players send back, and the monitor-request
// handshake an authenticated monitor sends once to start receiving the true
// (undelayed) game.
//
// Every multi-byte integer on the wire is little-endian; struct layout is
// packed to its minimum size with github.com/lunixbochs/struc tags, matching
// the wire codecs this module's wire formats were grounded on.
package wire

import (
	"time"

	"github.com/pkg/errors"

	"github.com/robocupgc/gamecontroller/gamestate"
)

// ErrMalformed is the sentinel cause of every structural decode rejection in
// this package, so callers can tell "discard silently, try again" apart
// from an I/O fault with errors.Is.
var ErrMalformed = errors.New("wire: malformed message")

// PlayersHeader precedes a control message addressed to players.
var PlayersHeader = [4]byte{'R', 'G', 'm', 'e'}

// MonitorsHeader precedes a control message addressed to an authenticated
// monitor (carries the true, undelayed game).
var MonitorsHeader = [4]byte{'R', 'G', 'T', 'D'}

// StatusHeader precedes a status message sent by a player.
var StatusHeader = [4]byte{'R', 'G', 'r', 't'}

// MonitorRequestHeader precedes a monitor's registration request.
var MonitorRequestHeader = [4]byte{'R', 'G', 'T', 'r'}

// ProtocolVersion is the only version this module speaks.
const ProtocolVersion = 1

// CompetitionPhase is a 1-byte wire field distinguishing round-robin pool
// play from a play-off game. It mirrors gamestate.Params.LongGame, which
// this module does not otherwise put on the wire.
type CompetitionPhase uint8

// Wire values for CompetitionPhase.
const (
	CompetitionRoundRobin CompetitionPhase = 0
	CompetitionPlayoff    CompetitionPhase = 1
)

// CompetitionType is a 1-byte wire field distinguishing a normal competition
// from a shared-autonomy one. Shared-autonomy competitions are not modeled
// by gamestate.Params beyond this wire flag.
type CompetitionType uint8

// Wire values for CompetitionType.
const (
	CompetitionNormal         CompetitionType = 0
	CompetitionSharedAutonomy CompetitionType = 1
)

// wireGamePhase carries gamestate.Phase plus the Timeout sub-state that, on
// the wire, is represented as game-phase=Timeout with state=Initial rather
// than as its own state value.
type wireGamePhase uint8

const (
	wireGamePhaseNormal          wireGamePhase = 0
	wireGamePhasePenaltyShootout wireGamePhase = 1
	wireGamePhaseTimeout         wireGamePhase = 2
)

type wireState uint8

const (
	wireStateInitial  wireState = 0
	wireStateReady    wireState = 1
	wireStateSet      wireState = 2
	wireStatePlaying  wireState = 3
	wireStateFinished wireState = 4
	wireStateStandby  wireState = 5
)

type wireSetPlay uint8

const (
	wireSetPlayNone            wireSetPlay = 0
	wireSetPlayGoalKick        wireSetPlay = 1
	wireSetPlayPushingFreeKick wireSetPlay = 2
	wireSetPlayCornerKick      wireSetPlay = 3
	wireSetPlayKickIn          wireSetPlay = 4
	wireSetPlayPenaltyKick     wireSetPlay = 5
)

// wirePenalty is the player-penalty code table. KickOff has no wire
// representation of its own (see setPlayToWire); RequestForPickUp and
// PickedUp share a single wire code, since by the time a penalty reaches the
// wire the referee's call has already collapsed into the penalty it
// produced.
type wirePenalty uint8

const (
	wirePenaltyNone                 wirePenalty = 0
	wirePenaltyPickedUp             wirePenalty = 1
	wirePenaltyBallHolding          wirePenalty = 2
	wirePenaltyPlayerPushing        wirePenalty = 3
	wirePenaltyMotionInSet          wirePenalty = 4
	wirePenaltyFallenInactive       wirePenalty = 5
	wirePenaltyIllegalPosition      wirePenalty = 6
	wirePenaltyLeavingTheField      wirePenalty = 7
	wirePenaltyLocalGameStuck       wirePenalty = 8
	wirePenaltyIllegalPositionInSet wirePenalty = 9
	wirePenaltyPlayerStance         wirePenalty = 10
	wirePenaltyMotionInStandby      wirePenalty = 11
	wirePenaltyPlayingWithArmsHands wirePenalty = 12
	wirePenaltySubstitute           wirePenalty = 14
)

func gamePhaseToWire(g *gamestate.Game) (wireGamePhase, wireState) {
	if g.Phase == gamestate.PenaltyShootout {
		return wireGamePhasePenaltyShootout, stateToWire(g.State)
	}
	if g.State == gamestate.Timeout {
		return wireGamePhaseTimeout, wireStateInitial
	}
	return wireGamePhaseNormal, stateToWire(g.State)
}

func stateToWire(s gamestate.State) wireState {
	switch s {
	case gamestate.Initial, gamestate.Finished, gamestate.Timeout:
		// Finished has its own wire value; Initial and Timeout are both
		// sent as Initial.
		if s == gamestate.Finished {
			return wireStateFinished
		}
		return wireStateInitial
	case gamestate.Standby:
		return wireStateStandby
	case gamestate.Ready:
		return wireStateReady
	case gamestate.Set:
		return wireStateSet
	case gamestate.Playing:
		return wireStatePlaying
	default:
		return wireStateInitial
	}
}

func setPlayToWire(sp gamestate.SetPlay) wireSetPlay {
	switch sp {
	case gamestate.GoalKick:
		return wireSetPlayGoalKick
	case gamestate.PushingFreeKick:
		return wireSetPlayPushingFreeKick
	case gamestate.CornerKick:
		return wireSetPlayCornerKick
	case gamestate.KickIn:
		return wireSetPlayKickIn
	case gamestate.PenaltyKick:
		return wireSetPlayPenaltyKick
	default:
		// NoSetPlay and KickOff: a kick-off is conveyed by state+kickingSide
		// alone, not by a set-play code.
		return wireSetPlayNone
	}
}

func penaltyToWire(p gamestate.Penalty) wirePenalty {
	switch p {
	case gamestate.PickedUp:
		return wirePenaltyPickedUp
	case gamestate.BallHolding:
		return wirePenaltyBallHolding
	case gamestate.PlayerPushing:
		return wirePenaltyPlayerPushing
	case gamestate.MotionInSet:
		return wirePenaltyMotionInSet
	case gamestate.FallenInactive:
		return wirePenaltyFallenInactive
	case gamestate.IllegalPosition:
		return wirePenaltyIllegalPosition
	case gamestate.LeavingTheField:
		return wirePenaltyLeavingTheField
	case gamestate.LocalGameStuck:
		return wirePenaltyLocalGameStuck
	case gamestate.IllegalPositionInSet:
		return wirePenaltyIllegalPositionInSet
	case gamestate.PlayerStance:
		return wirePenaltyPlayerStance
	case gamestate.MotionInStandby:
		return wirePenaltyMotionInStandby
	case gamestate.PlayingWithArmsHands:
		return wirePenaltyPlayingWithArmsHands
	case gamestate.Substitute:
		return wirePenaltySubstitute
	default:
		return wirePenaltyNone
	}
}

// clampSeconds rounds d up to whole seconds and clamps to [0, 255], the
// range of a single unsigned wire byte.
func clampSeconds(d time.Duration) uint8 {
	if d <= 0 {
		return 0
	}
	secs := (d + time.Second - 1) / time.Second
	if secs > 255 {
		return 255
	}
	return uint8(secs)
}

// clampSignedSeconds truncates d to whole seconds and clamps to the int16
// range, for the primary/secondary timer fields, which are allowed to go
// negative under Overflow behavior.
func clampSignedSeconds(d time.Duration) int16 {
	secs := d / time.Second
	if secs > 32767 {
		return 32767
	}
	if secs < -32768 {
		return -32768
	}
	return int16(secs)
}
