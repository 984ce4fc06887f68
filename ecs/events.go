package ecs

import "github.com/milk9111/peanut/ecs/component"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventAIStateChanged = "ai_state_changed"
	EventAttack         = "attack"
	EventDeath          = "death"
)

// AIStateChanged is emitted whenever an agent transitions.
type AIStateChanged struct {
	Entity Entity
	From   component.StateID
	To     component.StateID
	At     float64
}

// Attack is emitted by an attacking agent once per attack cycle.
type Attack struct {
	Attacker Entity
	Target   Entity
	At       float64
}

// Death is emitted by the combat system when a combatant's health runs out.
type Death struct {
	Entity Entity
	Killer Entity
}

// EventQueue is a simple FIFO queue. The world flushes it at the end of each tick.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// DrainType removes and returns only events of the given type, keeping the
// rest queued in order.
func (q *EventQueue) DrainType(typ string) []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var out []Event
	kept := q.items[:0]
	for _, evt := range q.items {
		if evt.Type == typ {
			out = append(out, evt)
			continue
		}
		kept = append(kept, evt)
	}
	q.items = kept
	return out
}

// Snapshot returns a copy of the queued events without consuming them.
func (q *EventQueue) Snapshot() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	return append([]Event(nil), q.items...)
}

// Len reports how many events are queued.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
