package mutate

import (
	"github.com/taskwarden/warden/internal/exitcode"
	"github.com/taskwarden/warden/internal/graph"
	"github.com/taskwarden/warden/internal/model"
	"github.com/taskwarden/warden/internal/phase"
)

// Cancel transitions id and, when cascade is set, its descendant subtree to
// cancelled, recording reason on every task it touches. Descendants already
// done or cancelled are left untouched: cancellation never retroactively
// undoes completed work.
func (tx *Transaction) Cancel(id, reason string, cascade bool) error {
	active, release, err := tx.loadActive()
	if err != nil {
		return err
	}
	defer release()

	t, _ := findTask(active, id)
	if t == nil {
		return model.ErrNotFound("task_not_found", "task %s not found", id)
	}
	if !phase.CanTransition(t.Status, model.StatusCancelled) {
		return model.ErrState("invalid_status_transition", exitcode.ValidationError,
			"task %s cannot cancel from status %s", id, t.Status)
	}

	now := tx.now()
	cancelOne := func(task *model.Task) {
		task.Status = model.StatusCancelled
		task.CancelledAt = &now
		task.CancellationReason = reason
		task.UpdatedAt = &now
	}
	cancelOne(t)

	if cascade {
		g := graph.New(active.Tasks)
		for _, descID := range g.Descendants(id) {
			desc := g.Task(descID)
			if desc.Status == model.StatusDone || desc.Status == model.StatusCancelled {
				continue
			}
			cancelOne(desc)
		}
	}

	return tx.saveActive(active, model.AuditEntry{
		Action: "task.cancel", TaskID: id, After: t,
	})
}
