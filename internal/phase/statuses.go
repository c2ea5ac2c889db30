package phase

import (
	"github.com/taskwarden/warden/internal/model"
	"github.com/taskwarden/warden/internal/statechart"
)

// Task status transition events, named after the action that fires them
// rather than the destination state, matching spec.md §7's "via complete"/
// "via reopen"/"via cascade" annotations.
const (
	EventActivate      statechart.Event = "activate"
	EventBlock         statechart.Event = "block"
	EventReset         statechart.Event = "reset"
	EventComplete      statechart.Event = "complete"
	EventCancel        statechart.Event = "cancel"
	EventReopenPending statechart.Event = "reopen_pending"
	EventReopenActive  statechart.Event = "reopen_active"
	EventUncancel      statechart.Event = "uncancel"
)

// NewTaskMachine builds the status-transition state machine for a task
// currently in status current, encoding spec.md §7's transition table
// verbatim (pending/active/blocked freely interchange and can complete or
// cancel; done only returns via reopen; cancelled only returns via
// uncancel).
func NewTaskMachine(current model.Status) *statechart.Machine {
	b := statechart.NewBuilder(statechart.State(current))

	pending, active, blocked := statechart.State(model.StatusPending), statechart.State(model.StatusActive), statechart.State(model.StatusBlocked)
	done, cancelled := statechart.State(model.StatusDone), statechart.State(model.StatusCancelled)

	b.AddTransition(pending, active, EventActivate)
	b.AddTransition(pending, blocked, EventBlock)
	b.AddTransition(pending, done, EventComplete)
	b.AddTransition(pending, cancelled, EventCancel)

	b.AddTransition(active, pending, EventReset)
	b.AddTransition(active, blocked, EventBlock)
	b.AddTransition(active, done, EventComplete)
	b.AddTransition(active, cancelled, EventCancel)

	b.AddTransition(blocked, pending, EventReset)
	b.AddTransition(blocked, active, EventActivate)
	b.AddTransition(blocked, done, EventComplete)
	b.AddTransition(blocked, cancelled, EventCancel)

	b.AddTransition(done, pending, EventReopenPending)
	b.AddTransition(done, active, EventReopenActive)

	b.AddTransition(cancelled, pending, EventUncancel)

	return b.Build()
}

// CanTransition reports whether the status table permits moving from one
// status directly to another, independent of which event fires it. Used by
// internal/mutate for precondition checks before building the machine.
func CanTransition(from, to model.Status) bool {
	for _, e := range NewTaskMachine(from).PermittedTriggers() {
		probe := NewTaskMachine(from)
		if err := probe.Fire(e); err == nil && probe.State() == statechart.State(to) {
			return true
		}
	}
	return false
}
