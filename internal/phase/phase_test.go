package phase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwarden/warden/internal/config"
	"github.com/taskwarden/warden/internal/model"
)

func TestNewTaskMachine_TableTransitions(t *testing.T) {
	assert.True(t, CanTransition(model.StatusPending, model.StatusActive))
	assert.True(t, CanTransition(model.StatusBlocked, model.StatusDone))
	assert.True(t, CanTransition(model.StatusCancelled, model.StatusPending))
	assert.False(t, CanTransition(model.StatusDone, model.StatusCancelled))
	assert.False(t, CanTransition(model.StatusCancelled, model.StatusActive))
}

func TestStartComplete(t *testing.T) {
	now := time.Now()
	ps := &model.ProjectState{Phases: map[string]*model.Phase{
		"implement": {Name: "implement", Order: 1, Status: model.PhaseStatusPending},
	}}
	require.NoError(t, Start(ps, "implement", now))
	assert.Equal(t, model.PhaseStatusActive, ps.Phases["implement"].Status)

	task := &model.Task{ID: "T001", Status: model.StatusDone, Phase: "implement"}
	require.NoError(t, Complete(ps, []*model.Task{task}, "implement", now))
	assert.Equal(t, model.PhaseStatusCompleted, ps.Phases["implement"].Status)
}

func TestComplete_BlocksOnUnfinishedTask(t *testing.T) {
	now := time.Now()
	ps := &model.ProjectState{Phases: map[string]*model.Phase{
		"implement": {Name: "implement", Order: 1, Status: model.PhaseStatusActive},
	}}
	task := &model.Task{ID: "T001", Status: model.StatusPending, Phase: "implement"}
	err := Complete(ps, []*model.Task{task}, "implement", now)
	require.Error(t, err)
}

func TestAdvance_CriticalTaskBlocksUnconditionally(t *testing.T) {
	now := time.Now()
	ps := &model.ProjectState{
		CurrentPhase: "implement",
		Phases: map[string]*model.Phase{
			"implement": {Name: "implement", Order: 1, Status: model.PhaseStatusActive},
			"release":   {Name: "release", Order: 2, Status: model.PhaseStatusPending},
		},
	}
	critical := &model.Task{ID: "T001", Status: model.StatusActive, Priority: model.PriorityCritical, Phase: "implement"}
	cfg := config.PhaseValidationConfig{PhaseAdvanceThreshold: 0, BlockOnCriticalTasks: true}

	_, err := Advance(ps, map[string][]*model.Task{"implement": {critical}}, cfg, true, true, now)
	require.Error(t, err)
}

func TestAdvance_StartsNextPhase(t *testing.T) {
	now := time.Now()
	ps := &model.ProjectState{
		CurrentPhase: "implement",
		Phases: map[string]*model.Phase{
			"implement": {Name: "implement", Order: 1, Status: model.PhaseStatusActive},
			"release":   {Name: "release", Order: 2, Status: model.PhaseStatusPending},
		},
	}
	done := &model.Task{ID: "T001", Status: model.StatusDone, Phase: "implement"}
	cfg := config.PhaseValidationConfig{PhaseAdvanceThreshold: 80, BlockOnCriticalTasks: true}

	result, err := Advance(ps, map[string][]*model.Task{"implement": {done}}, cfg, false, false, now)
	require.NoError(t, err)
	assert.Equal(t, "implement", result.Completed)
	assert.Equal(t, "release", result.Started)
	assert.Equal(t, "release", ps.CurrentPhase)
}

func TestRename(t *testing.T) {
	now := time.Now()
	ps := &model.ProjectState{
		CurrentPhase: "implement",
		Phases:       map[string]*model.Phase{"implement": {Name: "implement", Order: 1}},
	}
	focus := &model.Focus{CurrentPhase: "implement"}
	task := &model.Task{ID: "T001", Phase: "implement"}

	require.NoError(t, Rename(ps, focus, []*model.Task{task}, "implement", "build", now))
	assert.Equal(t, "build", ps.CurrentPhase)
	assert.Equal(t, "build", focus.CurrentPhase)
	assert.Equal(t, "build", task.Phase)
	_, stillExists := ps.Phases["implement"]
	assert.False(t, stillExists)
}

func TestDelete_RequiresReassignWhenTasksPresent(t *testing.T) {
	ps := &model.ProjectState{
		CurrentPhase: "release",
		Phases: map[string]*model.Phase{
			"implement": {Name: "implement", Order: 1},
			"release":   {Name: "release", Order: 2},
		},
	}
	task := &model.Task{ID: "T001", Phase: "implement"}

	err := Delete(ps, []*model.Task{task}, "implement", "", true, time.Now())
	require.Error(t, err)

	require.NoError(t, Delete(ps, []*model.Task{task}, "implement", "release", true, time.Now()))
	assert.Equal(t, "release", task.Phase)
}
