package statechart

// TransitionOption configures a single transition registered with Builder.AddTransition.
type TransitionOption func(*transitionConfig)

type transitionConfig struct {
	guard            Guard
	guardDescription string
	onEntry          Action
	onExit           Action
}

// WithGuard gates the transition on an unlabeled condition.
func WithGuard(guard Guard) TransitionOption {
	return func(c *transitionConfig) { c.guard = guard }
}

// WithGuardDescription gates the transition and names the guard for error
// messages raised when the guard fails.
func WithGuardDescription(description string, guard Guard) TransitionOption {
	return func(c *transitionConfig) {
		c.guard = guard
		c.guardDescription = description
	}
}

// WithOnEntry runs action when entering the transition's target state.
func WithOnEntry(action Action) TransitionOption {
	return func(c *transitionConfig) { c.onEntry = action }
}

// WithOnExit runs action when leaving the transition's source state.
func WithOnExit(action Action) TransitionOption {
	return func(c *transitionConfig) { c.onExit = action }
}
