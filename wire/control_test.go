package wire_test

import (
	"bytes"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/robocupgc/gamecontroller/gamestate"
	"github.com/robocupgc/gamecontroller/timer"
	"github.com/robocupgc/gamecontroller/wire"
)

var _ = Describe("BuildControlMessage", func() {
	var params *gamestate.Params
	var game *gamestate.Game

	BeforeEach(func() {
		params = gamestate.DefaultParams()
		game = gamestate.New(params, 11, 22)
	})

	It("uses the players header by default and the monitor header when asked", func() {
		msg := wire.BuildControlMessage(game, params, 3, false)
		Expect(msg.Header).To(Equal(wire.PlayersHeader))
		Expect(msg.PacketCounter).To(Equal(uint8(3)))

		monitorMsg := wire.BuildControlMessage(game, params, 3, true)
		Expect(monitorMsg.Header).To(Equal(wire.MonitorsHeader))
	})

	It("carries PlayersPerTeam and the team numbers through", func() {
		msg := wire.BuildControlMessage(game, params, 0, false)
		Expect(msg.PlayersPerTeam).To(Equal(uint8(params.PlayersPerTeam)))
		Expect(msg.Teams[gamestate.Home].Number).To(Equal(uint8(11)))
		Expect(msg.Teams[gamestate.Away].Number).To(Equal(uint8(22)))
	})

	It("represents Timeout as game-phase Timeout with state Initial", func() {
		game.State = gamestate.Timeout
		msg := wire.BuildControlMessage(game, params, 0, false)
		Expect(msg.GamePhase).To(Equal(uint8(2)))
		Expect(msg.State).To(Equal(uint8(0)))
	})

	It("maps both KickOff and NoSetPlay to the same wire set-play code", func() {
		game.SetPlay = gamestate.NoSetPlay
		none := wire.BuildControlMessage(game, params, 0, false)

		game.SetPlay = gamestate.KickOff
		kickoff := wire.BuildControlMessage(game, params, 0, false)

		Expect(kickoff.SetPlay).To(Equal(none.SetPlay))
	})

	It("maps a non-kickoff set play to its own wire code", func() {
		game.SetPlay = gamestate.CornerKick
		msg := wire.BuildControlMessage(game, params, 0, false)
		Expect(msg.SetPlay).NotTo(Equal(uint8(0)))
	})

	It("reports 0 for the kicking team number when nobody is entitled to kick", func() {
		game.KickingSide = gamestate.NoSide
		msg := wire.BuildControlMessage(game, params, 0, false)
		Expect(msg.KickingTeamNumber).To(Equal(uint8(0)))
	})

	It("reflects the Home team's number when Home is kicking", func() {
		game.KickingSide = gamestate.Home
		msg := wire.BuildControlMessage(game, params, 0, false)
		Expect(msg.KickingTeamNumber).To(Equal(uint8(11)))
	})

	It("round-trips through WriteTo without error", func() {
		msg := wire.BuildControlMessage(game, params, 0, false)
		var buf bytes.Buffer
		Expect(msg.WriteTo(&buf)).To(Succeed())
		Expect(buf.Len()).To(BeNumerically(">", 0))
	})

	It("clamps a negative remaining primary timer rather than overflowing the wire field", func() {
		game.PrimaryTimer = timer.Start(-40000*time.Second, timer.Always, timer.Overflow, nil)
		msg := wire.BuildControlMessage(game, params, 0, false)
		Expect(msg.PrimarySeconds).To(Equal(int16(-32768)))
	})
})
