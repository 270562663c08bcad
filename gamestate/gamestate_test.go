package gamestate_test

import (
	"testing"
	"time"

	"github.com/robocupgc/gamecontroller/gamestate"
	"github.com/robocupgc/gamecontroller/timer"
)

func TestSideOtherIsAnInvolution(t *testing.T) {
	if gamestate.Home.Other() != gamestate.Away {
		t.Fatal("Home.Other() should be Away")
	}
	if gamestate.Away.Other() != gamestate.Home {
		t.Fatal("Away.Other() should be Home")
	}
	if gamestate.Home.Other().Other() != gamestate.Home {
		t.Fatal("Other() should be its own inverse")
	}
}

func TestSideOtherPanicsOnNoSide(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected NoSide.Other() to panic")
		}
	}()
	_ = gamestate.NoSide.Other()
}

func TestSideIsSet(t *testing.T) {
	cases := []struct {
		s    gamestate.Side
		want bool
	}{
		{gamestate.Home, true},
		{gamestate.Away, true},
		{gamestate.NoSide, false},
	}
	for _, tc := range cases {
		if got := tc.s.IsSet(); got != tc.want {
			t.Errorf("%v.IsSet() = %v, want %v", tc.s, got, tc.want)
		}
	}
}

func TestSideMappingFlipIsAnInvolution(t *testing.T) {
	m := gamestate.SideMapping{gamestate.Home: gamestate.DefendsLeft, gamestate.Away: gamestate.DefendsRight}
	original := m
	m.Flip()
	if m.HalfOf(gamestate.Home) != gamestate.DefendsRight || m.HalfOf(gamestate.Away) != gamestate.DefendsLeft {
		t.Fatal("Flip should swap which half each side defends")
	}
	m.Flip()
	if m != original {
		t.Fatal("Flip twice should return to the original mapping")
	}
}

func TestPenaltyIsActive(t *testing.T) {
	cases := []struct {
		p    gamestate.Penalty
		want bool
	}{
		{gamestate.NoPenalty, false},
		{gamestate.Substitute, false},
		{gamestate.PickedUp, true},
		{gamestate.IllegalPosition, true},
	}
	for _, tc := range cases {
		if got := tc.p.IsActive(); got != tc.want {
			t.Errorf("%v.IsActive() = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestStateIsHalted(t *testing.T) {
	halted := []gamestate.State{gamestate.Initial, gamestate.Finished, gamestate.Timeout}
	for _, s := range halted {
		if !s.IsHalted() {
			t.Errorf("%v.IsHalted() = false, want true", s)
		}
	}
	notHalted := []gamestate.State{gamestate.Standby, gamestate.Ready, gamestate.Set, gamestate.Playing}
	for _, s := range notHalted {
		if s.IsHalted() {
			t.Errorf("%v.IsHalted() = true, want false", s)
		}
	}
}

func TestPlayerNumberIndexRoundTrip(t *testing.T) {
	for n := 1; n <= gamestate.MaxPlayers; n++ {
		if got := gamestate.Number(gamestate.Index(n)); got != n {
			t.Errorf("Number(Index(%d)) = %d, want %d", n, got, n)
		}
	}
}

func TestNewGameDefaults(t *testing.T) {
	p := gamestate.DefaultParams()
	g := gamestate.New(p, 10, 20)

	if g.Phase != gamestate.FirstHalf {
		t.Errorf("Phase = %v, want FirstHalf", g.Phase)
	}
	if g.State != gamestate.Initial {
		t.Errorf("State = %v, want Initial", g.State)
	}
	if g.KickingSide != gamestate.Home {
		t.Errorf("KickingSide = %v, want Home", g.KickingSide)
	}
	if g.FirstKickoffSide != gamestate.Home {
		t.Errorf("FirstKickoffSide = %v, want Home", g.FirstKickoffSide)
	}
	if g.PrimaryTimer.GetRemaining() != p.HalfDuration {
		t.Errorf("PrimaryTimer.GetRemaining() = %v, want %v", g.PrimaryTimer.GetRemaining(), p.HalfDuration)
	}
	if g.Team(gamestate.Home).Number != 10 || g.Team(gamestate.Away).Number != 20 {
		t.Fatal("team numbers not wired through from New's arguments")
	}
	if g.Team(gamestate.Home).TimeoutBudget != p.TimeoutBudget {
		t.Errorf("TimeoutBudget = %d, want %d", g.Team(gamestate.Home).TimeoutBudget, p.TimeoutBudget)
	}
	if g.Team(gamestate.Home).MessageBudget != p.MessageBudgetPerHalf {
		t.Errorf("MessageBudget = %d, want %d", g.Team(gamestate.Home).MessageBudget, p.MessageBudgetPerHalf)
	}
}

func TestGameCloneIsIndependent(t *testing.T) {
	p := gamestate.DefaultParams()
	g := gamestate.New(p, 1, 2)
	clone := g.Clone()

	clone.Team(gamestate.Home).Score = 3
	clone.State = gamestate.Playing

	if g.Team(gamestate.Home).Score != 0 {
		t.Fatal("mutating the clone must not affect the original")
	}
	if g.State != gamestate.Initial {
		t.Fatal("mutating the clone's State must not affect the original")
	}
}

func TestConditionsCountReadySetExcludesPreKickoffStandby(t *testing.T) {
	p := gamestate.DefaultParams()
	g := gamestate.New(p, 1, 2)
	g.State = gamestate.Ready

	// Primary timer is still untouched (== HalfDuration): the very first
	// pre-kick-off Ready window must not count against the half.
	c := g.Conditions(p)
	if c.CountReadySet {
		t.Fatal("CountReadySet should be false before the half has actually started")
	}

	// Once any time has elapsed off the primary timer, Ready/Set does count.
	// Replace it directly (rather than Seek, which itself depends on
	// CountReadySet to tick during Ready) to simulate the half having
	// already started.
	g.PrimaryTimer = timer.Start(p.HalfDuration-time.Second, timer.MainTimer, timer.Overflow, nil)
	c = g.Conditions(p)
	if !c.CountReadySet {
		t.Fatal("CountReadySet should be true once the half has started")
	}
}

func TestConditionsCountReadySetFalseInPenaltyShootout(t *testing.T) {
	p := gamestate.DefaultParams()
	g := gamestate.New(p, 1, 2)
	g.Phase = gamestate.PenaltyShootout
	g.State = gamestate.Ready

	if g.Conditions(p).CountReadySet {
		t.Fatal("CountReadySet must always be false during a penalty shoot-out")
	}
}

func TestConditionsCountReadySetFalseInLongGame(t *testing.T) {
	p := gamestate.DefaultParams()
	p.LongGame = true
	g := gamestate.New(p, 1, 2)
	g.State = gamestate.Ready

	if g.Conditions(p).CountReadySet {
		t.Fatal("CountReadySet must always be false in a long (play-off) game")
	}
}

func TestTeamNonSubstitutePlayers(t *testing.T) {
	var team gamestate.Team
	for n := 1; n <= gamestate.MaxPlayers; n++ {
		team.Player(n).Penalty = gamestate.Substitute
	}
	team.Player(1).Penalty = gamestate.Substitute
	team.Player(2).Penalty = gamestate.NoPenalty
	team.Player(3).Penalty = gamestate.PickedUp

	got := team.NonSubstitutePlayers()
	want := map[int]bool{2: true, 3: true}
	if len(got) != len(want) {
		t.Fatalf("NonSubstitutePlayers() = %v, want keys of %v", got, want)
	}
	for _, n := range got {
		if !want[n] {
			t.Errorf("unexpected player %d in NonSubstitutePlayers()", n)
		}
	}
}

func TestTeamHasGoalkeeper(t *testing.T) {
	var team gamestate.Team
	if team.HasGoalkeeper() {
		t.Fatal("a team with Goalkeeper == 0 should report HasGoalkeeper() == false")
	}
	team.Goalkeeper = 1
	if !team.HasGoalkeeper() {
		t.Fatal("a team with a nonzero Goalkeeper should report HasGoalkeeper() == true")
	}
}

func TestTeamPenaltyShotsConverted(t *testing.T) {
	var team gamestate.Team
	if team.PenaltyShotsConverted() != 0 {
		t.Fatal("a team with no shots converted should report 0")
	}
	team.PenaltyShotMask = 0b1011
	if got := team.PenaltyShotsConverted(); got != 3 {
		t.Fatalf("PenaltyShotsConverted() = %d, want 3", got)
	}
}
