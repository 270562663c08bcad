package gamestate

// ExpiryKind names the handful of actions a Timer's Expire behavior can
// trigger. Timer (in package timer) stores an opaque payload so that it does
// not need to depend on the action package; the engine type-asserts the
// payload back to an ExpiryAction and dispatches accordingly. This mirrors
// the "encode the handful of needed predicates as a small enum" approach
// spec.md calls for with the delayed-game ignore predicate.
type ExpiryKind int8

const (
	// ExpireNone fires no follow-up action (used for PickedUp, which simply
	// stops once its timer reaches zero).
	ExpireNone ExpiryKind = iota
	// ExpireWaitForSetPlay triggers the WaitForSetPlay action.
	ExpireWaitForSetPlay
	// ExpireFinishSetPlay triggers the FinishSetPlay action.
	ExpireFinishSetPlay
	// ExpireUnpenalize triggers Unpenalize(Side, PlayerNumber).
	ExpireUnpenalize
	// ExpireSwitchHalf triggers the SwitchHalf action.
	ExpireSwitchHalf
)

// ExpiryAction is the payload stored in a Timer armed with Expire behavior.
type ExpiryAction struct {
	Kind         ExpiryKind
	Side         Side
	PlayerNumber int
}
