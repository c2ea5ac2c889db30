package mutate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwarden/warden/internal/model"
)

func epicTask(id string) *model.Task {
	return &model.Task{
		ID: id, Title: "Sample epic", Status: model.StatusPending,
		Priority: model.PriorityMedium, Type: model.TypeEpic,
		CreatedAt: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), Verification: model.NewVerification(),
	}
}

func TestAdd_AllocatesIDAndInfersTypeFromParent(t *testing.T) {
	tx, _ := newTestTransaction(t, []*model.Task{epicTask("T001")})
	alloc := newTestAllocator(t, tx)

	id, err := tx.Add(alloc, "Child task", AddOptions{Parent: "T001"})
	require.NoError(t, err)
	assert.Equal(t, "T002", id)

	active, release, err := tx.loadActive()
	require.NoError(t, err)
	defer release()
	added, _ := findTask(active, id)
	require.NotNil(t, added)
	assert.Equal(t, model.TypeTask, added.Type)
	assert.Equal(t, model.StatusPending, added.Status)
}

func TestAdd_UnknownDependencyRejected(t *testing.T) {
	tx, _ := newTestTransaction(t, []*model.Task{epicTask("T001")})
	alloc := newTestAllocator(t, tx)

	_, err := tx.Add(alloc, "Needs ghost", AddOptions{Depends: []string{"T999"}})
	require.Error(t, err)
}

func TestAdd_UnknownPhaseRejectedWithoutAddPhase(t *testing.T) {
	tx, _ := newTestTransaction(t, []*model.Task{})
	alloc := newTestAllocator(t, tx)

	_, err := tx.Add(alloc, "Phased task", AddOptions{Phase: "core"})
	require.Error(t, err)

	id, err := tx.Add(alloc, "Phased task", AddOptions{Phase: "core", AddPhase: true})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestAdd_EnforcesSingleActive(t *testing.T) {
	active := epicTask("T001")
	active.Status = model.StatusActive
	tx, _ := newTestTransaction(t, []*model.Task{active})
	alloc := newTestAllocator(t, tx)

	_, err := tx.Add(alloc, "Second active", AddOptions{Status: model.StatusActive})
	require.Error(t, err)
}
