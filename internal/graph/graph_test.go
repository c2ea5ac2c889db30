package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwarden/warden/internal/model"
)

func mustTask(t *testing.T, id, title string, typ model.Type, parent string) *model.Task {
	t.Helper()
	b := model.NewTaskBuilder(id, title).CreatedAt(time.Now()).Type(typ)
	if parent != "" {
		b = b.Parent(parent)
	}
	task, err := b.Build()
	require.NoError(t, err)
	return task
}

func TestGraph_HierarchyQueries(t *testing.T) {
	epic := mustTask(t, "T001", "Ship the launcher", model.TypeEpic, "")
	task1 := mustTask(t, "T002", "Build the core", model.TypeTask, "T001")
	sub1 := mustTask(t, "T003", "Write the parser", model.TypeSubtask, "T002")

	g := New([]*model.Task{epic, task1, sub1})

	assert.Equal(t, []string{"T002"}, g.Children("T001"))
	assert.ElementsMatch(t, []string{"T002", "T003"}, g.Descendants("T001"))
	assert.Equal(t, []string{"T002", "T001"}, g.ParentChain("T003"))
	assert.Equal(t, 1, g.Depth("T001"))
	assert.Equal(t, 3, g.Depth("T003"))
}

func TestGraph_ValidateDepth(t *testing.T) {
	epic := mustTask(t, "T001", "Ship the launcher", model.TypeEpic, "")
	task1 := mustTask(t, "T002", "Build the core", model.TypeTask, "T001")
	sub1 := mustTask(t, "T003", "Write the parser", model.TypeSubtask, "T002")
	g := New([]*model.Task{epic, task1, sub1})

	assert.NoError(t, g.ValidateDepth("T001"))
	assert.NoError(t, g.ValidateDepth("T002"))
	assert.Error(t, g.ValidateDepth("T003")) // would be depth 4, exceeds MaxDepth
}

func TestGraph_ValidateSiblings(t *testing.T) {
	epic := mustTask(t, "T001", "Ship the launcher", model.TypeEpic, "")
	tasks := []*model.Task{epic}
	for i := 0; i < MaxSiblings; i++ {
		tasks = append(tasks, mustTask(t, "T00"+string(rune('2'+i)), "Child task here", model.TypeTask, "T001"))
	}
	g := New(tasks)
	assert.Error(t, g.ValidateSiblings("T001"))
}

func TestGraph_ValidateParentType(t *testing.T) {
	epic := mustTask(t, "T001", "Ship the launcher", model.TypeEpic, "")
	task1 := mustTask(t, "T002", "Build the core", model.TypeTask, "T001")
	g := New([]*model.Task{epic, task1})

	assert.NoError(t, g.ValidateParentType("T001", model.TypeTask))
	assert.Error(t, g.ValidateParentType("T001", model.TypeSubtask))
	assert.Error(t, g.ValidateParentType("T002", model.TypeTask))
	assert.NoError(t, g.ValidateParentType("T002", model.TypeSubtask))
}

func TestGraph_DependencyCycle(t *testing.T) {
	a := mustTask(t, "T001", "Task A here", model.TypeTask, "")
	b := mustTask(t, "T002", "Task B here", model.TypeTask, "")
	b.Depends.Add("T001")
	tasks := []*model.Task{a, b}
	g := New(tasks)

	// T001 depends on T002 would close a cycle (T002 already depends on T001).
	assert.True(t, g.DependencyCycle(tasks, "T001", "T002"))
	// T002 depending on some third unrelated task would not.
	c := mustTask(t, "T003", "Task C here", model.TypeTask, "")
	tasks = append(tasks, c)
	assert.False(t, g.DependencyCycle(tasks, "T002", "T003"))
}

func TestGraph_LCAAndTreeDistance(t *testing.T) {
	epic := mustTask(t, "T001", "Ship the launcher", model.TypeEpic, "")
	taskA := mustTask(t, "T002", "Build feature A", model.TypeTask, "T001")
	taskB := mustTask(t, "T003", "Build feature B", model.TypeTask, "T001")
	subA := mustTask(t, "T004", "Subtask under A", model.TypeSubtask, "T002")
	g := New([]*model.Task{epic, taskA, taskB, subA})

	assert.Equal(t, "T001", g.LCA("T002", "T003"))
	assert.Equal(t, "T002", g.LCA("T002", "T004"))
	assert.Equal(t, 3, g.TreeDistance("T003", "T004"))
}

func TestGraph_WavesAndCriticalPath(t *testing.T) {
	epic := mustTask(t, "T001", "Ship the launcher", model.TypeEpic, "")
	a := mustTask(t, "T002", "First step", model.TypeTask, "T001")
	a.Phase = "build"
	b := mustTask(t, "T003", "Second step", model.TypeTask, "T001")
	b.Phase = "build"
	b.Depends.Add("T002")
	c := mustTask(t, "T004", "Third step", model.TypeTask, "T001")
	c.Phase = "build"
	c.Depends.Add("T003")

	tasks := []*model.Task{epic, a, b, c}
	g := New(tasks)
	subtree := []string{"T002", "T003", "T004"}

	wave := g.Wave(subtree)
	assert.Equal(t, 0, wave["T002"])
	assert.Equal(t, 1, wave["T003"])
	assert.Equal(t, 2, wave["T004"])

	waves := g.WavesByPhase(subtree)
	require.Len(t, waves["build"], 3)
	assert.Equal(t, []string{"T002"}, waves["build"][0])
	assert.Equal(t, []string{"T004"}, waves["build"][2])

	path, length := g.CriticalPath(subtree)
	assert.Equal(t, []string{"T002", "T003", "T004"}, path)
	assert.Equal(t, 2, length)
}
