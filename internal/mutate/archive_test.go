package mutate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwarden/warden/internal/model"
)

func TestArchive_MovesOldCompletedTasksAndCleansDependents(t *testing.T) {
	old := doneTask("T001")
	completedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	old.CompletedAt = &completedAt
	old.CreatedAt = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	dependent := epicTask("T002")
	dependent.Type = model.TypeTask
	dependent.Depends = model.NewStringSet("T001")

	tx, _ := newTestTransaction(t, []*model.Task{old, dependent})
	tx.Config.Archive.DaysUntilArchive = 14
	tx.Config.Archive.PreserveRecentCount = 0

	archived, err := tx.Archive(ArchiveCriteria{})
	require.NoError(t, err)
	assert.Equal(t, []string{"T001"}, archived)

	active, releaseActive, err := tx.loadActive()
	require.NoError(t, err)
	defer releaseActive()
	assert.Nil(t, active.Tasks[0].Depends)
	_, idx := findTask(active, "T001")
	assert.Equal(t, -1, idx)

	archive, releaseArchive, err := tx.loadArchive()
	require.NoError(t, err)
	defer releaseArchive()
	require.Len(t, archive.ArchivedTasks, 1)
	assert.Equal(t, "T001", archive.ArchivedTasks[0].ID)
	assert.NotNil(t, archive.ArchivedTasks[0].ArchivedAt)
}

func TestArchive_RecentCompletionNotMovedWithoutForce(t *testing.T) {
	recent := doneTask("T001")
	now := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	recent.CompletedAt = &now

	tx, _ := newTestTransaction(t, []*model.Task{recent})
	tx.Config.Archive.DaysUntilArchive = 14
	tx.Config.Archive.PreserveRecentCount = 0

	archived, err := tx.Archive(ArchiveCriteria{})
	require.NoError(t, err)
	assert.Empty(t, archived)
}

func TestArchive_ForcePreservesRecentCount(t *testing.T) {
	oldest := doneTask("T001")
	oldestAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	oldest.CompletedAt = &oldestAt
	oldest.CreatedAt = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	newest := doneTask("T002")
	newestAt := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	newest.CompletedAt = &newestAt

	tx, _ := newTestTransaction(t, []*model.Task{oldest, newest})
	tx.Config.Archive.PreserveRecentCount = 1

	archived, err := tx.Archive(ArchiveCriteria{Force: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"T001"}, archived)
}
