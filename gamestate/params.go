package gamestate

import "time"

// PenaltyDuration describes how long a Penalty lasts before the player may
// be unpenalized, and whether repeated instances of it escalate.
type PenaltyDuration struct {
	Base        time.Duration
	Incremental bool
	// Increment is added once per prior incremental penalty the team has
	// already incurred (Team.PenaltyCounter), when Incremental is true.
	Increment time.Duration
}

// Params bundles every tunable value the engine needs to construct a Game
// and evaluate action legality. It is built programmatically (by cmd's flag
// parsing or by a test) — parsing a competition configuration file from
// disk is out of scope for this module.
type Params struct {
	PlayersPerTeam int
	// FallbackPlayerCount is the number of players fielded in fallback mode.
	// Zero means fallback mode is not configured for this competition.
	FallbackPlayerCount int

	HalfDuration       time.Duration
	HalfTimeBreak      time.Duration
	ReadyDuration      time.Duration
	SetPlayDuration    map[SetPlay]time.Duration
	TimeoutDuration    time.Duration
	TimeoutBudget      int
	DelayAfterGoal     time.Duration
	DelayAfterPlaying  time.Duration
	DelayAfterReady    time.Duration
	PenaltyShotDuration time.Duration

	MercyDiff int

	MessageBudgetPerHalf         int
	MessagesPerTeamPerExtraMinute int

	PenaltyDurations map[Penalty]PenaltyDuration

	// LongGame is true for play-off games, where the main timer pauses during
	// Ready and Set.
	LongGame bool
	// ChallengeMode disables the automatic half switch and most set plays.
	ChallengeMode bool
	// StandbyConfigured is true if the competition uses an explicit Standby
	// state before Ready for kick-offs (see StartSetPlay's legality).
	StandbyConfigured bool

	// TestNoDelay disables the delayed-game forking used by Goal and the
	// Standby->Ready kick-off edge; FreeSetPlay and FreePenaltyShot fork
	// regardless of it. It exists for tests that want to observe effects
	// synchronously.
	TestNoDelay bool
	// TestPenaltyShootout allows StartPenaltyShootout even when scores are
	// not equal, for tests that want to reach the shoot-out quickly.
	TestPenaltyShootout bool
	// TestUnpenalize allows Unpenalize regardless of elapsed time, for tests.
	TestUnpenalize bool
}

// SetPlayReadyDuration returns the Ready-window duration for a set play. It
// is ReadyDuration for KickOff and zero for every other set play, which
// matches the spec's "kick-off has a Ready window; other restarts do not"
// rule (they stay in Playing while their own set-play duration runs).
func (p *Params) SetPlayReadyDuration(sp SetPlay) time.Duration {
	if sp == KickOff {
		return p.ReadyDuration
	}
	return 0
}

// Duration returns the Playing-window duration configured for a set play.
func (p *Params) Duration(sp SetPlay) time.Duration {
	return p.SetPlayDuration[sp]
}

// PenaltyDurationFor returns the configured base duration and incrementality
// for a Penalty kind.
func (p *Params) PenaltyDurationFor(pen Penalty) PenaltyDuration {
	return p.PenaltyDurations[pen]
}

// DefaultParams returns a reasonable set of competition parameters, used by
// tests and as a starting point for cmd/refereegc flag defaults. The values
// mirror the scenario constants used throughout spec.md §8.
func DefaultParams() *Params {
	return &Params{
		PlayersPerTeam:      7,
		HalfDuration:        10 * time.Minute,
		HalfTimeBreak:       10 * time.Minute,
		ReadyDuration:       45 * time.Second,
		TimeoutDuration:     5 * time.Minute,
		TimeoutBudget:       1,
		DelayAfterGoal:      15 * time.Second,
		DelayAfterPlaying:   15 * time.Second,
		DelayAfterReady:     15 * time.Second,
		PenaltyShotDuration: time.Minute,
		MercyDiff:           10,
		MessageBudgetPerHalf:          60,
		MessagesPerTeamPerExtraMinute: 2,
		SetPlayDuration: map[SetPlay]time.Duration{
			KickOff:         10 * time.Second,
			KickIn:          10 * time.Second,
			GoalKick:        10 * time.Second,
			CornerKick:      10 * time.Second,
			PushingFreeKick: 10 * time.Second,
			PenaltyKick:     10 * time.Second,
		},
		PenaltyDurations: map[Penalty]PenaltyDuration{
			PickedUp:             {Base: 45 * time.Second},
			IllegalPosition:      {Base: 15 * time.Second, Incremental: true, Increment: 5 * time.Second},
			IllegalPositionInSet: {Base: 15 * time.Second, Incremental: true, Increment: 5 * time.Second},
			MotionInSet:          {Base: 15 * time.Second},
			MotionInStandby:      {Base: 0},
			FallenInactive:       {Base: 30 * time.Second},
			LocalGameStuck:       {Base: 30 * time.Second, Incremental: true, Increment: 10 * time.Second},
			BallHolding:          {Base: 15 * time.Second, Incremental: true, Increment: 5 * time.Second},
			PlayerStance:         {Base: 15 * time.Second, Incremental: true, Increment: 5 * time.Second},
			PlayerPushing:        {Base: 30 * time.Second, Incremental: true, Increment: 10 * time.Second},
			PlayingWithArmsHands: {Base: 15 * time.Second, Incremental: true, Increment: 5 * time.Second},
			LeavingTheField:      {Base: 15 * time.Second, Incremental: true, Increment: 5 * time.Second},
		},
	}
}
