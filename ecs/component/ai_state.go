package component

import "fmt"

// StateID identifies an AI FSM state. The set is closed.
type StateID uint8

const (
	StatePatrolling StateID = iota + 1
	StateDetecting
	StateChasing
	StateAttacking
)

func (s StateID) Valid() bool {
	return s >= StatePatrolling && s <= StateAttacking
}

func (s StateID) String() string {
	switch s {
	case StatePatrolling:
		return "patrolling"
	case StateDetecting:
		return "detecting"
	case StateChasing:
		return "chasing"
	case StateAttacking:
		return "attacking"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// AIState stores the current FSM state. Only Transition changes it.
type AIState struct {
	current StateID
	entries uint64
}

// NewAIState returns a state machine sitting in Patrolling.
func NewAIState() AIState {
	return AIState{current: StatePatrolling}
}

func (s *AIState) Current() StateID {
	if s == nil {
		return 0
	}
	return s.current
}

// Entries counts transitions taken so far.
func (s *AIState) Entries() uint64 {
	if s == nil {
		return 0
	}
	return s.entries
}

// Transition moves to next and returns the previous state. Requesting a state
// outside the closed set is a programming error and panics.
func (s *AIState) Transition(next StateID) StateID {
	if !next.Valid() {
		panic(fmt.Sprintf("ai: invalid state transition to %v", next))
	}
	prev := s.current
	s.current = next
	s.entries++
	return prev
}

// AIContext stores per-agent runtime data.
type AIContext struct {
	WaypointIndex  int
	DetectionTimer float64

	// The detection poll is a resumable task keyed by PollDeadline; it only
	// runs while PollArmed is set.
	PollArmed    bool
	PollDeadline float64

	// VisibleTargets is rebuilt on every poll and only meaningful while detecting.
	VisibleTargets []uint64
	// Pursuit is the target chosen on entering Chasing.
	Pursuit uint64

	// StateTime is the time spent in the current state.
	StateTime float64
}

var AIStateComponent = NewComponent[AIState]()
var AIContextComponent = NewComponent[AIContext]()
