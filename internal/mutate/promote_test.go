package mutate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwarden/warden/internal/model"
)

func TestPromote_ClearsParentAndRetypesSubtask(t *testing.T) {
	parent := epicTask("T001")
	parent.Type = model.TypeTask
	sub := epicTask("T002")
	sub.Type = model.TypeSubtask
	sub.ParentID = "T001"

	tx, _ := newTestTransaction(t, []*model.Task{parent, sub})

	require.NoError(t, tx.Promote("T002"))

	active, release, err := tx.loadActive()
	require.NoError(t, err)
	defer release()

	promoted, _ := findTask(active, "T002")
	assert.Empty(t, promoted.ParentID)
	assert.Equal(t, model.TypeTask, promoted.Type)
}
