package mutate

import "github.com/taskwarden/warden/internal/model"

// Promote clears id's parentId, detaching it to root, and re-types a
// subtask up to a task. Tasks already at task or epic type keep their type.
func (tx *Transaction) Promote(id string) error {
	active, release, err := tx.loadActive()
	if err != nil {
		return err
	}
	defer release()

	t, _ := findTask(active, id)
	if t == nil {
		return model.ErrNotFound("task_not_found", "task %s not found", id)
	}

	now := tx.now()
	t.ParentID = ""
	if t.Type == model.TypeSubtask {
		t.Type = model.TypeTask
	}
	t.UpdatedAt = &now

	return tx.saveActive(active, model.AuditEntry{
		Action: "task.promote", TaskID: id, After: t,
	})
}
