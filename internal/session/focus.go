package session

import (
	"time"

	"github.com/taskwarden/warden/internal/exitcode"
	"github.com/taskwarden/warden/internal/model"
)

// SetFocus transitions target to active (demoting any previously-active
// task in tasks to pending) and points focus.currentTask at it, per
// spec.md §4.8's "setting focus on a task transitions it to active and
// demotes any previously-active task to pending".
func SetFocus(focus *model.Focus, tasks []*model.Task, targetID string, now time.Time) error {
	var target *model.Task
	for _, t := range tasks {
		if t.ID == targetID {
			target = t
		}
		if t.ID != targetID && t.Status == model.StatusActive {
			t.Status = model.StatusPending
			t.UpdatedAt = &now
		}
	}
	if target == nil {
		return model.ErrNotFound("task_not_found", "task %s not found", targetID)
	}
	if target.Status == model.StatusDone || target.Status == model.StatusCancelled {
		return model.ErrState("focus_target_terminal", exitcode.ValidationError, "task %s is %s and cannot be focused", targetID, target.Status)
	}
	target.Status = model.StatusActive
	target.UpdatedAt = &now
	focus.CurrentTask = targetID
	return nil
}

// ClearFocus clears the current-task pointer without changing any task's status.
func ClearFocus(focus *model.Focus) {
	focus.CurrentTask = ""
}

// SetNote sets the session-note sub-field of focus.
func SetNote(focus *model.Focus, note string) {
	focus.SessionNote = note
}

// Next advances focus to the given task id (an explicit choice, distinct
// from auto-focus recommendation, which callers get from internal/analysis.Recommend).
func Next(focus *model.Focus, tasks []*model.Task, nextID string, now time.Time) error {
	return SetFocus(focus, tasks, nextID, now)
}
