package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwarden/warden/internal/graph"
	"github.com/taskwarden/warden/internal/model"
)

func sampleTasks() []*model.Task {
	return []*model.Task{
		{ID: "T001", Type: model.TypeEpic, Status: model.StatusPending},
		{ID: "T002", Type: model.TypeTask, ParentID: "T001", Status: model.StatusPending, Priority: model.PriorityHigh},
		{ID: "T003", Type: model.TypeTask, ParentID: "T001", Status: model.StatusPending, Priority: model.PriorityLow},
	}
}

func TestComputeScope_Epic(t *testing.T) {
	g := graph.New(sampleTasks())
	ids, err := ComputeScope(g, model.Scope{Type: model.ScopeEpic, RootTaskID: "T001"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"T001", "T002", "T003"}, ids)
}

func TestComputeScope_Task(t *testing.T) {
	g := graph.New(sampleTasks())
	ids, err := ComputeScope(g, model.Scope{Type: model.ScopeTask, RootTaskID: "T002"})
	require.NoError(t, err)
	assert.Equal(t, []string{"T002"}, ids)
}

func TestStart_AutoFocusPicksHighestPriority(t *testing.T) {
	g := graph.New(sampleTasks())
	s, err := Start(g, sampleTasks(), nil, StartOptions{
		Scope:     model.Scope{Type: model.ScopeEpic, RootTaskID: "T001"},
		AutoFocus: true,
	}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "T002", s.Focus.CurrentTask)
}

func TestStart_ScopeConflictRejected(t *testing.T) {
	g := graph.New(sampleTasks())
	existing := []*model.Session{
		{ID: "S1", Status: model.SessionActive, Scope: model.Scope{Type: model.ScopeEpic, RootTaskID: "T001"}},
	}
	_, err := Start(g, sampleTasks(), existing, StartOptions{
		Scope: model.Scope{Type: model.ScopeTask, RootTaskID: "T002"},
		Focus: "T002",
	}, time.Now())
	require.Error(t, err)
}

func TestClose_BlocksWhenTasksIncomplete(t *testing.T) {
	g := graph.New(sampleTasks())
	s := &model.Session{ID: "S1", Status: model.SessionActive, Scope: model.Scope{Type: model.ScopeEpic, RootTaskID: "T001"}}
	err := Close(g, s)
	require.Error(t, err)
}

func TestSetFocus_DemotesPreviouslyActive(t *testing.T) {
	tasks := sampleTasks()
	tasks[1].Status = model.StatusActive
	focus := &model.Focus{CurrentTask: "T002"}

	require.NoError(t, SetFocus(focus, tasks, "T003", time.Now()))
	assert.Equal(t, model.StatusPending, tasks[1].Status)
	assert.Equal(t, model.StatusActive, tasks[2].Status)
	assert.Equal(t, "T003", focus.CurrentTask)
}
