package mutate

import (
	"github.com/taskwarden/warden/internal/exitcode"
	"github.com/taskwarden/warden/internal/model"
)

// UnarchiveOptions carries unarchive(id, opts) from spec.md §4.7.
type UnarchiveOptions struct {
	PreserveStatus bool // restore at the task's pre-archive status instead of pending
}

// Unarchive moves id out of the archive store and back into active,
// clearing its archive-only fields. Fails with IdCollision if id already
// exists in the active store.
func (tx *Transaction) Unarchive(id string, opts UnarchiveOptions) error {
	active, releaseActive, err := tx.loadActive()
	if err != nil {
		return err
	}
	defer releaseActive()

	archive, releaseArchive, err := tx.loadArchive()
	if err != nil {
		return err
	}
	defer releaseArchive()

	if existing, _ := findTask(active, id); existing != nil {
		return model.ErrState("id_collision", exitcode.ValidationError,
			"task %s already exists in the active store", id)
	}

	var restored *model.Task
	var remaining []*model.Task
	for _, t := range archive.ArchivedTasks {
		if t.ID == id {
			restored = t
			continue
		}
		remaining = append(remaining, t)
	}
	if restored == nil {
		return model.ErrNotFound("task_not_found", "archived task %s not found", id)
	}
	archive.ArchivedTasks = remaining

	now := tx.now()
	if !opts.PreserveStatus {
		restored.Status = model.StatusPending
	}
	restored.ArchivedAt = nil
	restored.ArchiveReason = ""
	restored.CycleTimeDays = 0
	restored.SessionID = ""
	restored.UpdatedAt = &now

	active.Tasks = append(active.Tasks, restored)

	if err := tx.saveArchive(archive, model.AuditEntry{
		Action: "task.unarchive", TaskID: id,
	}); err != nil {
		return err
	}

	return tx.saveActive(active, model.AuditEntry{
		Action: "task.unarchive", TaskID: id, After: restored,
	})
}
