package wire

import (
	"io"

	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"

	"github.com/robocupgc/gamecontroller/gamestate"
)

// PlayerRecord is one player's entry within a TeamRecord.
type PlayerRecord struct {
	PenaltyCode         uint8
	SecondsToUnpenalise uint8
}

// TeamRecord is one team's entry within a ControlMessage, in field-side
// order (Home-defends-left first).
type TeamRecord struct {
	Number           uint8
	FieldPlayerColor uint8
	GoalkeeperColor  uint8
	GoalkeeperNumber uint8
	Score            uint8
	PenaltyShot      uint8
	PenaltyShotMask  uint16 `struc:",little"`
	MessageBudget    uint16 `struc:",little"`
	Players          [gamestate.MaxPlayers]PlayerRecord
}

// ControlMessage is the datagram the engine broadcasts to players, or sends
// to an authenticated monitor, at the control cadence.
type ControlMessage struct {
	Header [4]byte

	Version           uint8
	PacketCounter     uint8
	PlayersPerTeam    uint8
	CompetitionPhase  uint8
	CompetitionType   uint8
	GamePhase         uint8
	State             uint8
	SetPlay           uint8
	FirstHalf         uint8
	KickingTeamNumber uint8

	PrimarySeconds   int16 `struc:",little"`
	SecondarySeconds int16 `struc:",little"`

	Teams [2]TeamRecord
}

// BuildControlMessage projects g (plus p and the per-run packet counter)
// into the wire layout. forMonitor selects the monitor header (RGTD) over
// the player header (RGme); it carries no other difference — a monitor sees
// exactly the Game handed to it, which the caller chooses to be the true or
// delayed game.
func BuildControlMessage(g *gamestate.Game, p *gamestate.Params, packetCounter uint8, forMonitor bool) *ControlMessage {
	gamePhase, state := gamePhaseToWire(g)

	msg := &ControlMessage{
		Version:           ProtocolVersion,
		PacketCounter:     packetCounter,
		PlayersPerTeam:    uint8(p.PlayersPerTeam),
		CompetitionPhase:  uint8(competitionPhase(p)),
		CompetitionType:   uint8(CompetitionNormal),
		GamePhase:         uint8(gamePhase),
		State:             uint8(state),
		SetPlay:           uint8(setPlayToWire(g.SetPlay)),
		FirstHalf:         boolToWire(g.Phase == gamestate.FirstHalf),
		KickingTeamNumber: kickingTeamNumber(g),
		PrimarySeconds:    clampSignedSeconds(g.PrimaryTimer.GetRemaining()),
		SecondarySeconds:  clampSignedSeconds(g.SecondaryTimer.GetRemaining()),
	}
	if forMonitor {
		msg.Header = MonitorsHeader
	} else {
		msg.Header = PlayersHeader
	}

	order := [2]gamestate.Side{gamestate.Home, gamestate.Away}
	if g.Sides.HalfOf(gamestate.Home) != gamestate.DefendsLeft {
		order = [2]gamestate.Side{gamestate.Away, gamestate.Home}
	}
	for i, s := range order {
		team := g.Team(s)
		rec := &msg.Teams[i]
		rec.Number = uint8(team.Number)
		rec.FieldPlayerColor = team.FieldPlayerColor
		rec.GoalkeeperColor = team.GoalkeeperColor
		rec.GoalkeeperNumber = uint8(team.Goalkeeper)
		rec.Score = clampByte(team.Score)
		rec.PenaltyShot = uint8(team.PenaltyShot)
		rec.PenaltyShotMask = team.PenaltyShotMask
		rec.MessageBudget = uint16(clampUint16(team.MessageBudget))
		for i := range team.Players {
			player := &team.Players[i]
			rec.Players[i] = PlayerRecord{
				PenaltyCode:         uint8(penaltyToWire(player.Penalty)),
				SecondsToUnpenalise: clampSeconds(player.PenaltyTimer.GetRemaining()),
			}
		}
	}

	return msg
}

// WriteTo serializes msg to w in wire layout.
func (msg *ControlMessage) WriteTo(w io.Writer) error {
	if err := struc.Pack(w, msg); err != nil {
		return errors.Wrap(err, "could not pack control message")
	}
	return nil
}

func competitionPhase(p *gamestate.Params) CompetitionPhase {
	if p.LongGame {
		return CompetitionPlayoff
	}
	return CompetitionRoundRobin
}

func kickingTeamNumber(g *gamestate.Game) uint8 {
	if !g.KickingSide.IsSet() {
		return 0
	}
	return uint8(g.Team(g.KickingSide).Number)
}

func boolToWire(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clampUint16(v int) uint16 {
	if v < 0 {
		return 0
	}
	if v > 65535 {
		return 65535
	}
	return uint16(v)
}
