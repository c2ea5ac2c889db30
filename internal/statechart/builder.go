package statechart

import (
	"context"
	"fmt"

	"github.com/qmuntal/stateless"
)

// Builder provides a fluent API for assembling a Machine, generalized from
// jmgilman-sow's project.MachineBuilder to arbitrary string-keyed states and
// events instead of one hard-coded project lifecycle.
type Builder struct {
	initialState      State
	transitions       []transitionDef
	guardDescriptions map[guardDescKey]string
}

type guardDescKey struct {
	from  State
	to    State
	event Event
}

type transitionDef struct {
	from    State
	to      State
	event   Event
	options []TransitionOption
}

// NewBuilder starts a Builder with the given initial state.
func NewBuilder(initialState State) *Builder {
	return &Builder{
		initialState:      initialState,
		guardDescriptions: make(map[guardDescKey]string),
	}
}

// AddTransition registers a transition from one state to another on event.
func (b *Builder) AddTransition(from, to State, event Event, opts ...TransitionOption) *Builder {
	b.transitions = append(b.transitions, transitionDef{from: from, to: to, event: event, options: opts})
	return b
}

// Build assembles the Machine. OnEntry/OnExit actions are composed when
// multiple transitions share a target/source state, since stateless permits
// only one OnEntry and one OnExit per state.
func (b *Builder) Build() *Machine {
	fsm := stateless.NewStateMachine(string(b.initialState))

	onExitActions := make(map[State][]Action)
	onEntryActions := make(map[State][]Action)

	for _, t := range b.transitions {
		cfg := &transitionConfig{}
		for _, opt := range t.options {
			opt(cfg)
		}
		if cfg.guard != nil && cfg.guardDescription != "" {
			b.guardDescriptions[guardDescKey{from: t.from, to: t.to, event: t.event}] = cfg.guardDescription
		}
		if cfg.onExit != nil {
			onExitActions[t.from] = append(onExitActions[t.from], cfg.onExit)
		}
		if cfg.onEntry != nil {
			onEntryActions[t.to] = append(onEntryActions[t.to], cfg.onEntry)
		}
	}

	configuredExit := make(map[State]bool)
	configuredEntry := make(map[State]bool)
	for _, t := range b.transitions {
		cfg := &transitionConfig{}
		for _, opt := range t.options {
			opt(cfg)
		}

		cfgFrom := fsm.Configure(string(t.from))
		if !configuredExit[t.from] {
			if actions := onExitActions[t.from]; len(actions) > 0 {
				cfgFrom.OnExit(composeActions(actions))
			}
			configuredExit[t.from] = true
		}

		if cfg.guard != nil {
			guard := cfg.guard
			cfgFrom.Permit(stateless.Trigger(string(t.event)), string(t.to), func(_ context.Context, _ ...any) bool {
				return guard()
			})
		} else {
			cfgFrom.Permit(stateless.Trigger(string(t.event)), string(t.to))
		}

		if !configuredEntry[t.to] {
			if actions := onEntryActions[t.to]; len(actions) > 0 {
				fsm.Configure(string(t.to)).OnEntry(composeActions(actions))
			}
			configuredEntry[t.to] = true
		}
	}

	m := newMachine(fsm)
	b.setupUnhandledTriggerHandler(m)
	return m
}

func composeActions(actions []Action) Action {
	if len(actions) == 1 {
		return actions[0]
	}
	return func(ctx context.Context, args ...any) error {
		for _, a := range actions {
			if err := a(ctx, args...); err != nil {
				return err
			}
		}
		return nil
	}
}

func (b *Builder) setupUnhandledTriggerHandler(m *Machine) {
	m.fsm.OnUnhandledTrigger(func(_ context.Context, state, trigger any, unmetGuards []string) error {
		currentState := toState(state)
		event := toEvent(trigger)

		var descriptions []string
		for key, desc := range b.guardDescriptions {
			if key.from == currentState && key.event == event {
				descriptions = append(descriptions, desc)
			}
		}

		switch {
		case len(descriptions) == 1:
			return fmt.Errorf("guard %q failed for event %q from state %q", descriptions[0], event, currentState)
		case len(descriptions) > 1:
			return fmt.Errorf("guards failed for event %q from state %q: %v", event, currentState, descriptions)
		case len(unmetGuards) > 0:
			return fmt.Errorf("guard conditions not met for event %q from state %q: %v", event, currentState, unmetGuards)
		default:
			return fmt.Errorf("transition %q is not valid from state %q", event, currentState)
		}
	})
}

func toState(v any) State {
	switch s := v.(type) {
	case string:
		return State(s)
	case State:
		return s
	default:
		return State(fmt.Sprintf("%v", v))
	}
}

func toEvent(v any) Event {
	switch t := v.(type) {
	case string:
		return Event(t)
	case Event:
		return t
	case stateless.Trigger:
		if s, ok := t.(string); ok {
			return Event(s)
		}
		return Event(fmt.Sprintf("%v", v))
	default:
		return Event(fmt.Sprintf("%v", v))
	}
}
