package action

// The full set of action kinds. See spec.md §4.2 for the semantics of each.
const (
	KindAddExtraTime           Kind = "AddExtraTime"
	KindFinishHalf             Kind = "FinishHalf"
	KindFinishPenaltyShot      Kind = "FinishPenaltyShot"
	KindFinishSetPlay          Kind = "FinishSetPlay"
	KindFreePenaltyShot        Kind = "FreePenaltyShot"
	KindFreeSetPlay            Kind = "FreeSetPlay"
	KindGlobalGameStuck        Kind = "GlobalGameStuck"
	KindGoal                   Kind = "Goal"
	KindPenalize               Kind = "Penalize"
	KindSelectPenaltyShotPlayer Kind = "SelectPenaltyShotPlayer"
	KindStartPenaltyShootout   Kind = "StartPenaltyShootout"
	KindStartSetPlay           Kind = "StartSetPlay"
	KindSubstitute             Kind = "Substitute"
	KindSwitchHalf             Kind = "SwitchHalf"
	KindSwitchTeamMode         Kind = "SwitchTeamMode"
	KindTeamMessage            Kind = "TeamMessage"
	KindTimeout                Kind = "Timeout"
	KindUndo                   Kind = "Undo"
	KindUnpenalize             Kind = "Unpenalize"
	KindWaitForPenaltyShot     Kind = "WaitForPenaltyShot"
	KindWaitForReady           Kind = "WaitForReady"
	KindWaitForSetPlay         Kind = "WaitForSetPlay"
)
