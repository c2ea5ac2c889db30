package mutate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwarden/warden/internal/model"
)

func doneTask(id string) *model.Task {
	task := epicTask(id)
	task.Type = model.TypeTask
	task.Status = model.StatusDone
	now := task.CreatedAt
	task.CompletedAt = &now
	return task
}

func TestReopen_ToPendingClearsCompletedAt(t *testing.T) {
	tx, _ := newTestTransaction(t, []*model.Task{doneTask("T001")})

	require.NoError(t, tx.Reopen("T001", false, "needs more work"))

	active, release, err := tx.loadActive()
	require.NoError(t, err)
	defer release()

	reopened, _ := findTask(active, "T001")
	assert.Equal(t, model.StatusPending, reopened.Status)
	assert.Nil(t, reopened.CompletedAt)
	require.Len(t, reopened.Notes, 1)
}

func TestReopen_RejectsNonDone(t *testing.T) {
	pending := epicTask("T001")
	pending.Type = model.TypeTask
	tx, _ := newTestTransaction(t, []*model.Task{pending})

	err := tx.Reopen("T001", false, "")
	require.Error(t, err)
}

func TestReopen_ToActiveEnforcesSingleActive(t *testing.T) {
	done := doneTask("T001")
	active := epicTask("T002")
	active.Type = model.TypeTask
	active.Status = model.StatusActive

	tx, _ := newTestTransaction(t, []*model.Task{done, active})
	err := tx.Reopen("T001", true, "")
	require.Error(t, err)
}
