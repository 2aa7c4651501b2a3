package assessment

import "fmt"

// AttemptState tracks one attempt through the evaluation lifecycle:
//
//	Generated → Submitted → Evaluated → {Demoted, Accepted}
//
// Demoted and Accepted are terminal. Nothing persists between attempts;
// each evaluation call is a fresh traversal of this machine.
type AttemptState int

const (
	StateGenerated AttemptState = iota
	StateSubmitted
	StateEvaluated
	StateDemoted
	StateAccepted
)

func (s AttemptState) String() string {
	switch s {
	case StateGenerated:
		return "generated"
	case StateSubmitted:
		return "submitted"
	case StateEvaluated:
		return "evaluated"
	case StateDemoted:
		return "demoted"
	case StateAccepted:
		return "accepted"
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// attempt is the per-call state machine driven by Service.Evaluate.
type attempt struct {
	state AttemptState
}

func newAttempt() *attempt {
	return &attempt{state: StateGenerated}
}

func (a *attempt) submit() error {
	return a.advance(StateGenerated, StateSubmitted)
}

func (a *attempt) evaluated() error {
	return a.advance(StateSubmitted, StateEvaluated)
}

// finish moves the attempt to its terminal state based on the demotion
// decision already computed by the scoring aggregator.
func (a *attempt) finish(demoted bool) error {
	if demoted {
		return a.advance(StateEvaluated, StateDemoted)
	}
	return a.advance(StateEvaluated, StateAccepted)
}

func (a *attempt) advance(from, to AttemptState) error {
	if a.state != from {
		return fmt.Errorf("illegal attempt transition %s → %s", a.state, to)
	}
	a.state = to
	return nil
}
