package mutate

import (
	"github.com/taskwarden/warden/internal/exitcode"
	"github.com/taskwarden/warden/internal/graph"
	"github.com/taskwarden/warden/internal/model"
	"github.com/taskwarden/warden/internal/phase"
)

// Changes is a sparse set of field updates for update(id, changes).
// Pointer/slice fields are nil when not being changed.
type Changes struct {
	Title       *string
	Status      *model.Status
	Priority    *model.Priority
	Size        *model.Size
	ParentID    *string
	Depends     []string
	Phase       *string
	Labels      []string
	Description *string
}

// Update applies changes to task id, re-running the cycle check if
// Depends changed, hierarchy checks if ParentID changed, and the status
// table if Status changed. Completing via update sets completedAt, clears
// blockedBy and clears focus on the task; unlike Complete it appends no
// completion note and does not unblock dependents.
func (tx *Transaction) Update(id string, changes Changes) error {
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

	if changes.Status != nil && *changes.Status != t.Status {
		if !phase.CanTransition(t.Status, *changes.Status) {
			return model.ErrState("invalid_status_transition", exitcode.ValidationError,
				"cannot transition task %s from %s to %s directly; use the dedicated mutator", id, t.Status, *changes.Status)
		}
		t.Status = *changes.Status
		if *changes.Status == model.StatusDone {
			t.CompletedAt = &now
			t.BlockedBy = ""
			if active.Focus.CurrentTask == id {
				active.Focus.CurrentTask = ""
			}
		}
	}

	if changes.Title != nil {
		t.Title = *changes.Title
	}
	if changes.Priority != nil {
		t.Priority = *changes.Priority
	}
	if changes.Size != nil {
		t.Size = *changes.Size
	}
	if changes.Description != nil {
		t.Description = *changes.Description
	}
	if changes.Phase != nil {
		t.Phase = *changes.Phase
	}
	if changes.Labels != nil {
		t.Labels = model.NewStringSet(changes.Labels...)
	}

	if changes.Depends != nil {
		g := graph.New(active.Tasks)
		for _, d := range changes.Depends {
			if g.Task(d) == nil {
				return model.ErrNotFound("dependency_not_found", "dependency %s does not exist", d)
			}
			if graph.New(active.Tasks).DependencyCycle(active.Tasks, id, d) {
				return model.ErrInvariant("dependency_cycle", exitcode.ValidationError, "adding dependency %s would introduce a cycle", d)
			}
		}
		t.Depends = model.NewStringSet(changes.Depends...)
	}

	if changes.ParentID != nil {
		g := graph.New(active.Tasks)
		if *changes.ParentID != "" {
			if err := g.ValidateDepth(*changes.ParentID); err != nil {
				return err
			}
			if err := g.ValidateSiblings(*changes.ParentID); err != nil {
				return err
			}
			if err := g.ValidateParentType(*changes.ParentID, t.Type); err != nil {
				return err
			}
		}
		t.ParentID = *changes.ParentID
	}

	t.UpdatedAt = &now

	return tx.saveActive(active, model.AuditEntry{
		Action: "task.update", TaskID: id, After: t,
	})
}
