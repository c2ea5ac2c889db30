package mutate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwarden/warden/internal/model"
)

func TestBackup_WritesDirSnapshotAndMetadata(t *testing.T) {
	tx, _ := newTestTransaction(t, []*model.Task{epicTask("T001")})

	dest, err := tx.Backup("pre-migration", false)
	require.NoError(t, err)

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = os.Stat(filepath.Join(filepath.Dir(dest), "pre-migration.metadata.json"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dest, "todo.json"))
	require.NoError(t, err)
}

func TestBackup_EvictsOldestBeyondMaxBackups(t *testing.T) {
	tx, _ := newTestTransaction(t, []*model.Task{epicTask("T001")})
	tx.Config.Backups.MaxBackups = 1

	_, err := tx.Backup("first", false)
	require.NoError(t, err)
	_, err = tx.Backup("second", false)
	require.NoError(t, err)

	safetyDir := filepath.Join(tx.Paths.Backups(), "safety")
	entries, err := os.ReadDir(safetyDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "one snapshot dir plus its metadata.json should remain")
}
