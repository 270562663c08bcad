package action_test

import (
	"testing"
	"time"

	"github.com/robocupgc/gamecontroller/action"
	"github.com/robocupgc/gamecontroller/gamestate"
	"github.com/robocupgc/gamecontroller/timer"
)

// legalityContext builds a Context with no fork/history, suitable for
// exercising Legal/Execute on the true game directly. Unlike the context
// engine.Apply builds for the true game, it can neither fork nor undo.
func legalityContext(g *gamestate.Game, p *gamestate.Params) *action.Context {
	return action.NewContext(g, p, false, nil, nil, nil)
}

func newGame(p *gamestate.Params) *gamestate.Game {
	return gamestate.New(p, 1, 2)
}

func TestGlobalGameStuckAlternatesKickoffSide(t *testing.T) {
	p := gamestate.DefaultParams()
	g := newGame(p)
	g.State = gamestate.Playing
	ctx := legalityContext(g, p)

	if !(action.GlobalGameStuck{}).Legal(ctx) {
		t.Fatal("GlobalGameStuck should be legal while Playing")
	}

	first := g.NextGlobalGameStuckKickOff
	(action.GlobalGameStuck{}).Execute(ctx)
	if g.KickingSide != first {
		t.Fatalf("KickingSide = %v, want %v (the recorded next side)", g.KickingSide, first)
	}
	if g.NextGlobalGameStuckKickOff != first.Other() {
		t.Fatal("NextGlobalGameStuckKickOff should flip after firing")
	}
}

func TestGlobalGameStuckIllegalOutsidePlaying(t *testing.T) {
	p := gamestate.DefaultParams()
	g := newGame(p)
	ctx := legalityContext(g, p)

	if (action.GlobalGameStuck{}).Legal(ctx) {
		t.Fatal("GlobalGameStuck should be illegal in Initial state")
	}
}

func TestGlobalGameStuckIllegalInChallengeMode(t *testing.T) {
	p := gamestate.DefaultParams()
	p.ChallengeMode = true
	g := newGame(p)
	g.State = gamestate.Playing
	ctx := legalityContext(g, p)

	if (action.GlobalGameStuck{}).Legal(ctx) {
		t.Fatal("GlobalGameStuck should be illegal in challenge mode")
	}
}

func TestSubstituteRequiresInToBeSubstituteAndOutNotToBe(t *testing.T) {
	p := gamestate.DefaultParams()
	g := newGame(p)
	team := g.Team(gamestate.Home)
	team.Player(5).Penalty = gamestate.Substitute

	cases := []struct {
		name string
		a    action.Substitute
		want bool
	}{
		{"legal swap", action.Substitute{Side: gamestate.Home, In: 5, Out: 3}, true},
		{"in is not a substitute", action.Substitute{Side: gamestate.Home, In: 3, Out: 4}, false},
		{"in and out are the same player", action.Substitute{Side: gamestate.Home, In: 5, Out: 5}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Legal(legalityContext(g, p)); got != tc.want {
				t.Fatalf("Legal() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSubstituteSwapsGoalkeeperDesignation(t *testing.T) {
	p := gamestate.DefaultParams()
	g := newGame(p)
	team := g.Team(gamestate.Home)
	team.Goalkeeper = 1
	team.Player(5).Penalty = gamestate.Substitute

	a := action.Substitute{Side: gamestate.Home, In: 5, Out: 1}
	a.Execute(legalityContext(g, p))

	if team.Goalkeeper != 5 {
		t.Fatalf("Goalkeeper = %d, want 5 (the incoming player)", team.Goalkeeper)
	}
	if team.Player(1).Penalty != gamestate.Substitute {
		t.Fatal("the outgoing player should become a Substitute")
	}
}

func TestSubstituteIncomingPlayerPicksUpPenaltyDuringPlay(t *testing.T) {
	p := gamestate.DefaultParams()
	g := newGame(p)
	g.State = gamestate.Playing
	team := g.Team(gamestate.Home)
	team.Player(5).Penalty = gamestate.Substitute

	a := action.Substitute{Side: gamestate.Home, In: 5, Out: 2}
	a.Execute(legalityContext(g, p))

	if team.Player(5).Penalty != gamestate.PickedUp {
		t.Fatalf("incoming player's Penalty = %v, want PickedUp", team.Player(5).Penalty)
	}
}

func TestSwitchTeamModeTogglesFallbackAndBenchesExtras(t *testing.T) {
	p := gamestate.DefaultParams()
	p.PlayersPerTeam = 7
	p.FallbackPlayerCount = 5
	g := newGame(p)
	ctx := legalityContext(g, p)

	a := action.SwitchTeamMode{Side: gamestate.Home}
	if !a.Legal(ctx) {
		t.Fatal("SwitchTeamMode should be legal in Initial state when fallback is configured")
	}
	a.Execute(ctx)

	team := g.Team(gamestate.Home)
	if !team.FallbackMode {
		t.Fatal("FallbackMode should now be true")
	}
	if team.Player(6).Penalty != gamestate.Substitute || team.Player(7).Penalty != gamestate.Substitute {
		t.Fatal("entering fallback mode should bench the two highest-numbered players")
	}

	a.Execute(ctx)
	if team.FallbackMode {
		t.Fatal("a second SwitchTeamMode should toggle fallback back off")
	}
	if team.Player(6).Penalty != gamestate.NoPenalty || team.Player(7).Penalty != gamestate.NoPenalty {
		t.Fatal("leaving fallback mode should clear the benched players' Substitute penalty")
	}
}

func TestSwitchTeamModeIllegalWithoutFallbackConfigured(t *testing.T) {
	p := gamestate.DefaultParams() // FallbackPlayerCount left at zero value
	g := newGame(p)
	ctx := legalityContext(g, p)

	if (action.SwitchTeamMode{Side: gamestate.Home}).Legal(ctx) {
		t.Fatal("SwitchTeamMode should be illegal when fallback mode is not configured")
	}
}

func TestTeamMessageChargesBudgetAndFlagsIllegalCommunication(t *testing.T) {
	p := gamestate.DefaultParams()
	g := newGame(p)
	g.State = gamestate.Playing
	team := g.Team(gamestate.Home)
	before := team.MessageBudget

	a := action.TeamMessage{Side: gamestate.Home}
	if !a.Legal(legalityContext(g, p)) {
		t.Fatal("TeamMessage should be legal while Playing")
	}
	a.Execute(legalityContext(g, p))
	if team.MessageBudget != before-1 {
		t.Fatalf("MessageBudget = %d, want %d", team.MessageBudget, before-1)
	}
	if team.IllegalCommunication {
		t.Fatal("a normal message within budget must not flag IllegalCommunication")
	}

	team.MessageBudget = 0
	team.Score = 5
	a.Execute(legalityContext(g, p))
	if !team.IllegalCommunication || team.Score != 0 {
		t.Fatal("exhausting the budget should flag IllegalCommunication and zero the score")
	}
}

func TestTeamMessageIllegalOutsideLivePlay(t *testing.T) {
	p := gamestate.DefaultParams()
	g := newGame(p)
	if (action.TeamMessage{Side: gamestate.Home}).Legal(legalityContext(g, p)) {
		t.Fatal("TeamMessage should be illegal in Initial state")
	}
}

func TestTimeoutIllegalWhilePlayingOrFinished(t *testing.T) {
	p := gamestate.DefaultParams()
	for _, s := range []gamestate.State{gamestate.Playing, gamestate.Finished} {
		g := newGame(p)
		g.State = s
		if (action.Timeout{Side: gamestate.Home}).Legal(legalityContext(g, p)) {
			t.Errorf("Timeout should be illegal during %v", s)
		}
	}
}

func TestTimeoutIllegalWhenBudgetExhausted(t *testing.T) {
	p := gamestate.DefaultParams()
	g := newGame(p)
	g.Team(gamestate.Home).TimeoutBudget = 0
	if (action.Timeout{Side: gamestate.Home}).Legal(legalityContext(g, p)) {
		t.Fatal("Timeout should be illegal once a team's budget is exhausted")
	}
}

func TestTimeoutExecuteStopsAllPenaltyTimersAndChargesBudget(t *testing.T) {
	p := gamestate.DefaultParams()
	g := newGame(p)
	player := g.Team(gamestate.Home).Player(3)
	player.Penalty = gamestate.PickedUp
	player.PenaltyTimer = timer.Start(30*time.Second, timer.ReadyOrPlaying, timer.Clip, nil)
	before := g.Team(gamestate.Home).TimeoutBudget

	a := action.Timeout{Side: gamestate.Home}
	a.Execute(legalityContext(g, p))

	if g.State != gamestate.Timeout {
		t.Fatalf("State = %v, want Timeout", g.State)
	}
	if player.PenaltyTimer.IsStarted() {
		t.Fatal("Timeout should stop every player's penalty timer")
	}
	if g.Team(gamestate.Home).TimeoutBudget != before-1 {
		t.Fatalf("TimeoutBudget = %d, want %d", g.Team(gamestate.Home).TimeoutBudget, before-1)
	}
	if g.KickingSide != gamestate.Home.Other() {
		t.Fatalf("KickingSide = %v, want %v (the non-requesting side)", g.KickingSide, gamestate.Home.Other())
	}
}

func TestTimeoutRefereeTimeoutDoesNotChargeEitherBudget(t *testing.T) {
	p := gamestate.DefaultParams()
	g := newGame(p)
	homeBefore := g.Team(gamestate.Home).TimeoutBudget
	awayBefore := g.Team(gamestate.Away).TimeoutBudget

	a := action.Timeout{Side: gamestate.NoSide}
	if !a.Legal(legalityContext(g, p)) {
		t.Fatal("a referee timeout (NoSide) should be legal in Initial state")
	}
	a.Execute(legalityContext(g, p))

	if g.Team(gamestate.Home).TimeoutBudget != homeBefore || g.Team(gamestate.Away).TimeoutBudget != awayBefore {
		t.Fatal("a referee-initiated timeout must not charge either team's budget")
	}
}
