// Package statechart generalizes the jmgilman-sow project package's
// fluent state-machine builder into a reusable helper shared by task
// status transitions and phase lifecycle transitions.
package statechart

import "context"

// State names a node in a state machine. Kept string-keyed (rather than a
// generic type parameter) because github.com/qmuntal/stateless has no
// generic Trigger support; both internal/model.Status and the phase
// pending/active/completed states are represented as State values by their
// own packages.
type State string

func (s State) String() string { return string(s) }

// Event names a trigger that causes a state transition.
type Event string

func (e Event) String() string { return string(e) }

// Guard is a condition function gating a transition.
type Guard func() bool

// Action runs on entry to or exit from a state.
type Action func(context.Context, ...any) error
