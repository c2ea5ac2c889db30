package mutate

import (
	"github.com/taskwarden/warden/internal/exitcode"
	"github.com/taskwarden/warden/internal/model"
	"github.com/taskwarden/warden/internal/phase"
)

// Reopen moves a done task back to pending or active, clearing completedAt.
// toActive reopens into active instead of pending; enforces the
// single-active invariant when reopening directly into active.
func (tx *Transaction) Reopen(id string, toActive bool, note string) error {
	active, release, err := tx.loadActive()
	if err != nil {
		return err
	}
	defer release()

	t, _ := findTask(active, id)
	if t == nil {
		return model.ErrNotFound("task_not_found", "task %s not found", id)
	}
	if t.Status != model.StatusDone {
		return model.ErrState("invalid_status_transition", exitcode.ValidationError,
			"task %s is not done; only completed tasks can be reopened", id)
	}

	target := model.StatusPending
	if toActive {
		target = model.StatusActive
		if err := enforceSingleActive(active.Tasks, id); err != nil {
			return err
		}
	}

	now := tx.now()
	t.Status = target
	t.CompletedAt = nil
	t.UpdatedAt = &now
	if note != "" {
		t.AppendNote(note, now)
	}

	return tx.saveActive(active, model.AuditEntry{
		Action: "task.reopen", TaskID: id, After: t,
	})
}
