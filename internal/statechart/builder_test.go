package statechart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BasicTransitions(t *testing.T) {
	m := NewBuilder("pending").
		AddTransition("pending", "active", "activate").
		AddTransition("active", "done", "complete").
		Build()

	assert.Equal(t, State("pending"), m.State())
	assert.True(t, m.CanFire("activate"))
	require.NoError(t, m.Fire("activate"))
	assert.Equal(t, State("active"), m.State())
	require.NoError(t, m.Fire("complete"))
	assert.Equal(t, State("done"), m.State())
}

func TestBuilder_GuardBlocksTransition(t *testing.T) {
	allowed := false
	m := NewBuilder("active").
		AddTransition("active", "completed", "complete",
			WithGuardDescription("all tasks done", func() bool { return allowed })).
		Build()

	err := m.Fire("complete")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all tasks done")

	allowed = true
	require.NoError(t, m.Fire("complete"))
}

func TestBuilder_UnknownTriggerFromState(t *testing.T) {
	m := NewBuilder("pending").
		AddTransition("pending", "active", "activate").
		Build()

	err := m.Fire("complete")
	require.Error(t, err)
}

func TestBuilder_OnEntryOnExitCompose(t *testing.T) {
	var order []string
	m := NewBuilder("a").
		AddTransition("a", "b", "go",
			WithOnExit(func(_ context.Context, _ ...any) error { order = append(order, "exit-a"); return nil }),
			WithOnEntry(func(_ context.Context, _ ...any) error { order = append(order, "enter-b-1"); return nil })).
		AddTransition("c", "b", "other",
			WithOnEntry(func(_ context.Context, _ ...any) error { order = append(order, "enter-b-2"); return nil })).
		Build()

	require.NoError(t, m.Fire("go"))
	assert.Equal(t, []string{"exit-a", "enter-b-1", "enter-b-2"}, order)
}
