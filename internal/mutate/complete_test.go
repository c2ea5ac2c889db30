package mutate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwarden/warden/internal/model"
)

func TestComplete_UnblocksDependents(t *testing.T) {
	blocker := epicTask("T001")
	blocker.Type = model.TypeTask
	dependent := epicTask("T002")
	dependent.Type = model.TypeTask
	dependent.Status = model.StatusBlocked
	dependent.BlockedBy = "T001"

	tx, clock := newTestTransaction(t, []*model.Task{blocker, dependent})

	require.NoError(t, tx.Complete("T001", "done via test"))

	active, release, err := tx.loadActive()
	require.NoError(t, err)
	defer release()

	t1, _ := findTask(active, "T001")
	assert.Equal(t, model.StatusDone, t1.Status)
	require.NotNil(t, t1.CompletedAt)
	assert.Equal(t, clock(), *t1.CompletedAt)

	t2, _ := findTask(active, "T002")
	assert.Equal(t, model.StatusPending, t2.Status)
	assert.Empty(t, t2.BlockedBy)
}

func TestComplete_RejectsFromDone(t *testing.T) {
	done := epicTask("T001")
	done.Type = model.TypeTask
	done.Status = model.StatusDone
	now := done.CreatedAt
	done.CompletedAt = &now

	tx, _ := newTestTransaction(t, []*model.Task{done})
	err := tx.Complete("T001", "")
	require.Error(t, err)
}
