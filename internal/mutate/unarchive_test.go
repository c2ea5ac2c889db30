package mutate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwarden/warden/internal/model"
)

func TestUnarchive_RestoresToPendingAndClearsArchiveFields(t *testing.T) {
	tx, _ := newTestTransaction(t, []*model.Task{})

	archived := doneTask("T001")
	archivedAt := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	archived.ArchivedAt = &archivedAt
	archived.ArchiveReason = "retention"
	archived.CycleTimeDays = 3

	archive, release, err := tx.loadArchive()
	require.NoError(t, err)
	archive.ArchivedTasks = append(archive.ArchivedTasks, archived)
	require.NoError(t, tx.saveArchive(archive, model.AuditEntry{Action: "test.seed"}))
	release()

	require.NoError(t, tx.Unarchive("T001", UnarchiveOptions{}))

	active, releaseActive, err := tx.loadActive()
	require.NoError(t, err)
	defer releaseActive()
	restored, _ := findTask(active, "T001")
	require.NotNil(t, restored)
	assert.Equal(t, model.StatusPending, restored.Status)
	assert.Nil(t, restored.ArchivedAt)
	assert.Empty(t, restored.ArchiveReason)
}

func TestUnarchive_RejectsIDCollision(t *testing.T) {
	existing := epicTask("T001")
	tx, _ := newTestTransaction(t, []*model.Task{existing})

	archivedDup := doneTask("T001")
	archivedAt := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	archivedDup.ArchivedAt = &archivedAt

	archive, release, err := tx.loadArchive()
	require.NoError(t, err)
	archive.ArchivedTasks = append(archive.ArchivedTasks, archivedDup)
	require.NoError(t, tx.saveArchive(archive, model.AuditEntry{Action: "test.seed"}))
	release()

	err = tx.Unarchive("T001", UnarchiveOptions{})
	require.Error(t, err)
}
