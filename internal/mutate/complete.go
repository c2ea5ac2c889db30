package mutate

import (
	"github.com/taskwarden/warden/internal/exitcode"
	"github.com/taskwarden/warden/internal/model"
	"github.com/taskwarden/warden/internal/phase"
)

// Complete transitions id to done: sets completedAt, clears blockedBy,
// appends a completion note when note is non-empty, and unblocks any task
// whose sole blockedBy reference was id. Complete never moves a task out of
// todo.json.
func (tx *Transaction) Complete(id, note string) error {
	active, release, err := tx.loadActive()
	if err != nil {
		return err
	}
	defer release()

	t, _ := findTask(active, id)
	if t == nil {
		return model.ErrNotFound("task_not_found", "task %s not found", id)
	}
	if !phase.CanTransition(t.Status, model.StatusDone) {
		return model.ErrState("invalid_status_transition", exitcode.ValidationError,
			"task %s cannot complete from status %s", id, t.Status)
	}

	now := tx.now()
	t.Status = model.StatusDone
	t.CompletedAt = &now
	t.BlockedBy = ""
	if note != "" {
		t.AppendNote(note, now)
	}
	t.UpdatedAt = &now

	for _, other := range active.Tasks {
		if other.ID != id && other.BlockedBy == id {
			other.BlockedBy = ""
			if other.Status == model.StatusBlocked {
				other.Status = model.StatusPending
				other.UpdatedAt = &now
			}
		}
	}

	if active.Focus.CurrentTask == id {
		active.Focus.CurrentTask = ""
	}

	return tx.saveActive(active, model.AuditEntry{
		Action: "task.complete", TaskID: id, After: t,
	})
}
