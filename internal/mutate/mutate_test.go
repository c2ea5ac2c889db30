package mutate

import (
	"testing"
	"time"

	"github.com/taskwarden/warden/internal/config"
	"github.com/taskwarden/warden/internal/model"
	"github.com/taskwarden/warden/internal/paths"
	"github.com/taskwarden/warden/internal/sequence"
)

// newTestTransaction wires a Transaction against a fresh temp directory with
// an initial todo.json seeded from tasks, mirroring how cmd/warden resolves
// paths.Paths before dispatching into internal/mutate.
func newTestTransaction(t *testing.T, tasks []*model.Task) (*Transaction, func() time.Time) {
	t.Helper()
	dir := t.TempDir()
	p := &paths.Paths{Root: dir, Dir: dir}

	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	tx := &Transaction{Paths: p, Config: config.Defaults(), Now: clock}

	active := &model.ActiveStore{
		Tasks: tasks,
		Project: model.ProjectState{
			Name:   "test",
			Phases: map[string]*model.Phase{},
		},
	}
	if err := tx.saveActive(active, model.AuditEntry{Action: "test.seed"}); err != nil {
		t.Fatalf("seed active store: %v", err)
	}
	return tx, clock
}

func newTestAllocator(t *testing.T, tx *Transaction) *sequence.Allocator {
	t.Helper()
	return sequence.Open(tx.Paths.Sequence(), tx.Paths.Backups(), tx.Config.Backups.MaxBackups)
}
