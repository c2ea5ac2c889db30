package statechart

import (
	"fmt"

	"github.com/qmuntal/stateless"
)

// Machine wraps a qmuntal/stateless state machine with the package's
// string-keyed State/Event types.
type Machine struct {
	fsm *stateless.StateMachine
}

func newMachine(fsm *stateless.StateMachine) *Machine {
	return &Machine{fsm: fsm}
}

// State returns the current state.
func (m *Machine) State() State {
	s, ok := m.fsm.MustState().(string)
	if !ok {
		return State("")
	}
	return State(s)
}

// Fire triggers a transition. Returns an error (wrapping the guard/
// unhandled-trigger message set up by Builder) if the transition is not
// permitted from the current state.
func (m *Machine) Fire(event Event) error {
	if err := m.fsm.Fire(string(event)); err != nil {
		return fmt.Errorf("transition not allowed: cannot fire %q from state %q: %w", event, m.State(), err)
	}
	return nil
}

// CanFire reports whether event can be fired from the current state.
func (m *Machine) CanFire(event Event) bool {
	can, _ := m.fsm.CanFire(string(event))
	return can
}

// PermittedTriggers lists the events that can be fired from the current state.
func (m *Machine) PermittedTriggers() []Event {
	triggers, _ := m.fsm.PermittedTriggers()
	events := make([]Event, 0, len(triggers))
	for _, t := range triggers {
		if s, ok := t.(string); ok {
			events = append(events, Event(s))
		}
	}
	return events
}

// FSM returns the underlying stateless.StateMachine for advanced callers.
func (m *Machine) FSM() *stateless.StateMachine { return m.fsm }
