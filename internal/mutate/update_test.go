package mutate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwarden/warden/internal/model"
)

func strPtr(s string) *string { return &s }

func TestUpdate_TitleAndPriority(t *testing.T) {
	task := epicTask("T001")
	task.Type = model.TypeTask
	tx, _ := newTestTransaction(t, []*model.Task{task})

	priority := model.PriorityHigh
	err := tx.Update("T001", Changes{Title: strPtr("Renamed task"), Priority: &priority})
	require.NoError(t, err)

	active, release, err := tx.loadActive()
	require.NoError(t, err)
	defer release()
	updated, _ := findTask(active, "T001")
	assert.Equal(t, "Renamed task", updated.Title)
	assert.Equal(t, model.PriorityHigh, updated.Priority)
}

func TestUpdate_RejectsInvalidStatusTransition(t *testing.T) {
	task := doneTask("T001")
	tx, _ := newTestTransaction(t, []*model.Task{task})

	blocked := model.StatusBlocked
	err := tx.Update("T001", Changes{Status: &blocked})
	require.Error(t, err)
}

func TestUpdate_DependsRejectsCycle(t *testing.T) {
	a := epicTask("T001")
	a.Type = model.TypeTask
	b := epicTask("T002")
	b.Type = model.TypeTask
	b.Depends = model.NewStringSet("T001")

	tx, _ := newTestTransaction(t, []*model.Task{a, b})

	err := tx.Update("T001", Changes{Depends: []string{"T002"}})
	require.Error(t, err)
}
