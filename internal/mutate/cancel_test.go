package mutate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwarden/warden/internal/model"
)

func TestCancel_CascadesToDescendantsNotDone(t *testing.T) {
	epic := epicTask("T001")
	child := epicTask("T002")
	child.Type = model.TypeTask
	child.ParentID = "T001"
	grandchildDone := doneTask("T003")
	grandchildDone.ParentID = "T002"
	grandchildDone.Type = model.TypeSubtask

	tx, _ := newTestTransaction(t, []*model.Task{epic, child, grandchildDone})

	require.NoError(t, tx.Cancel("T001", "no longer needed", true))

	active, release, err := tx.loadActive()
	require.NoError(t, err)
	defer release()

	t1, _ := findTask(active, "T001")
	t2, _ := findTask(active, "T002")
	t3, _ := findTask(active, "T003")

	assert.Equal(t, model.StatusCancelled, t1.Status)
	assert.Equal(t, model.StatusCancelled, t2.Status)
	assert.Equal(t, "no longer needed", t2.CancellationReason)
	assert.Equal(t, model.StatusDone, t3.Status, "completed descendants are never retroactively cancelled")
}

func TestUncancel_RestoresToPending(t *testing.T) {
	cancelled := epicTask("T001")
	cancelled.Type = model.TypeTask
	cancelled.Status = model.StatusCancelled
	now := cancelled.CreatedAt
	cancelled.CancelledAt = &now
	cancelled.CancellationReason = "duplicate"

	tx, _ := newTestTransaction(t, []*model.Task{cancelled})
	require.NoError(t, tx.Uncancel("T001", false))

	active, release, err := tx.loadActive()
	require.NoError(t, err)
	defer release()

	restored, _ := findTask(active, "T001")
	assert.Equal(t, model.StatusPending, restored.Status)
	assert.Nil(t, restored.CancelledAt)
	assert.Empty(t, restored.CancellationReason)
}
