// Package mutate implements the ten task mutators from spec.md §4.7, each
// following the uniform transactional shape named in spec.md §9's redesign
// flags: lock → read → validate preconditions → mutate in memory →
// validate invariants → backup → write → append audit entry. A failure at
// any step leaves every persistent file unchanged.
package mutate

import (
	"time"

	"github.com/taskwarden/warden/internal/config"
	"github.com/taskwarden/warden/internal/model"
	"github.com/taskwarden/warden/internal/paths"
	"github.com/taskwarden/warden/internal/store"
	"github.com/taskwarden/warden/internal/validate"
)

// Transaction bundles the dependencies every mutator needs: where the
// store files live, the resolved config, and the clock (parameterized for
// deterministic tests).
type Transaction struct {
	Paths  *paths.Paths
	Config config.Config
	Now    func() time.Time
}

func (tx *Transaction) now() time.Time {
	if tx.Now != nil {
		return tx.Now()
	}
	return time.Now().UTC()
}

// loadActive reads todo.json under the transaction's lock.
func (tx *Transaction) loadActive() (*model.ActiveStore, func(), error) {
	release, err := store.Acquire(tx.Paths.Active(), store.DefaultLockTimeout)
	if err != nil {
		return nil, nil, err
	}
	var active model.ActiveStore
	if err := store.LoadJSON(tx.Paths.Active(), &active); err != nil {
		release()
		return nil, nil, err
	}
	return &active, release, nil
}

// saveActive validates, backs up, and atomically writes todo.json, then
// appends the audit entry. Nothing is written if validation fails.
func (tx *Transaction) saveActive(active *model.ActiveStore, entry model.AuditEntry) error {
	now := tx.now()
	if err := store.StampMeta(&active.Meta, active.Tasks, now); err != nil {
		return err
	}
	opts := store.SaveOptions{
		LockTimeout: store.DefaultLockTimeout,
		BackupDir:   tx.Paths.Backups(),
		MaxBackups:  tx.Config.Backups.MaxBackups,
		Validate:    validateActiveStore,
		Now:         now,
	}
	if err := store.SaveJSON(tx.Paths.Active(), active, opts); err != nil {
		return err
	}
	entry.ID = auditID(now)
	entry.Timestamp = now
	return store.AppendAudit(tx.Paths.AuditLog(), entry)
}

func auditID(now time.Time) string {
	return "A" + now.Format("20060102T150405.000000000")
}

// validateActiveStore unifies each task and the project-state block
// against their respective schemas. The full ActiveStore has no single
// CUE definition of its own (each schema file is self-contained per
// internal/validate's grounding notes), so it validates piecewise instead.
func validateActiveStore(v any) error {
	active, ok := v.(*model.ActiveStore)
	if !ok {
		return nil
	}
	for _, t := range active.Tasks {
		if err := validate.Task(t); err != nil {
			return err
		}
	}
	return validate.Phase(active.Project)
}

// loadArchive reads todo-archive.json under the transaction's lock.
func (tx *Transaction) loadArchive() (*model.ArchiveStore, func(), error) {
	release, err := store.Acquire(tx.Paths.Archive(), store.DefaultLockTimeout)
	if err != nil {
		return nil, nil, err
	}
	var archive model.ArchiveStore
	if err := store.LoadJSON(tx.Paths.Archive(), &archive); err != nil {
		if coreErr, ok := err.(*model.CoreError); ok && coreErr.Code == "file_not_found" {
			release()
			return &model.ArchiveStore{}, func() {}, nil
		}
		release()
		return nil, nil, err
	}
	return &archive, release, nil
}

// saveArchive validates the full archive store, backs up, and atomically
// writes todo-archive.json.
func (tx *Transaction) saveArchive(archive *model.ArchiveStore, entry model.AuditEntry) error {
	now := tx.now()
	taskPtrs := make([]*model.Task, len(archive.ArchivedTasks))
	copy(taskPtrs, archive.ArchivedTasks)
	if err := store.StampMeta(&archive.Meta, taskPtrs, now); err != nil {
		return err
	}
	opts := store.SaveOptions{
		LockTimeout: store.DefaultLockTimeout,
		BackupDir:   tx.Paths.Backups(),
		MaxBackups:  tx.Config.Backups.MaxBackups,
		Validate:    validateArchiveStore,
		Now:         now,
	}
	if err := store.SaveJSON(tx.Paths.Archive(), archive, opts); err != nil {
		return err
	}
	entry.ID = auditID(now)
	entry.Timestamp = now
	return store.AppendAudit(tx.Paths.AuditLog(), entry)
}

func validateArchiveStore(v any) error {
	return validate.Archive(v)
}

// SeedActive writes an initial todo.json for `warden init`, through the
// same validate-backup-write-audit path every mutator uses.
func (tx *Transaction) SeedActive(active *model.ActiveStore) error {
	return tx.saveActive(active, model.AuditEntry{Action: "project.init"})
}

// SeedArchive writes an initial todo-archive.json for `warden init`.
func (tx *Transaction) SeedArchive(archive *model.ArchiveStore) error {
	return tx.saveArchive(archive, model.AuditEntry{Action: "project.init"})
}

func findTask(active *model.ActiveStore, id string) (*model.Task, int) {
	for i, t := range active.Tasks {
		if t.ID == id {
			return t, i
		}
	}
	return nil, -1
}
