package mutate

import (
	"github.com/taskwarden/warden/internal/exitcode"
	"github.com/taskwarden/warden/internal/graph"
	"github.com/taskwarden/warden/internal/model"
)

// Uncancel reverses Cancel, returning id to pending and clearing the
// cancellation fields. cascade mirrors Cancel's cascade: cancelled
// descendants return to pending alongside id.
func (tx *Transaction) Uncancel(id string, cascade bool) error {
	active, release, err := tx.loadActive()
	if err != nil {
		return err
	}
	defer release()

	t, _ := findTask(active, id)
	if t == nil {
		return model.ErrNotFound("task_not_found", "task %s not found", id)
	}
	if t.Status != model.StatusCancelled {
		return model.ErrState("invalid_status_transition", exitcode.ValidationError,
			"task %s is not cancelled", id)
	}

	now := tx.now()
	uncancelOne := func(task *model.Task) {
		task.Status = model.StatusPending
		task.CancelledAt = nil
		task.CancellationReason = ""
		task.UpdatedAt = &now
	}
	uncancelOne(t)

	if cascade {
		g := graph.New(active.Tasks)
		for _, descID := range g.Descendants(id) {
			desc := g.Task(descID)
			if desc.Status == model.StatusCancelled {
				uncancelOne(desc)
			}
		}
	}

	return tx.saveActive(active, model.AuditEntry{
		Action: "task.uncancel", TaskID: id, After: t,
	})
}
