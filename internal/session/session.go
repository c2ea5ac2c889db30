package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/taskwarden/warden/internal/analysis"
	"github.com/taskwarden/warden/internal/exitcode"
	"github.com/taskwarden/warden/internal/graph"
	"github.com/taskwarden/warden/internal/model"
)

// StartOptions carries the start(...) parameters from spec.md §4.8.
type StartOptions struct {
	Scope          model.Scope
	Focus          string // explicit focus task id, empty if AutoFocus
	AutoFocus      bool
	Agent          string
	Name           string
	AllowOverlap   bool
}

// Start validates the scope, computes its task set, resolves focus, and
// returns the new Session (not yet persisted — the caller writes it through
// internal/store alongside the binding file and an audit entry).
func Start(g *graph.Graph, allTasks []*model.Task, existing []*model.Session, opts StartOptions, now time.Time) (*model.Session, error) {
	scopeIDs, err := ComputeScope(g, opts.Scope)
	if err != nil {
		return nil, err
	}

	if !opts.AllowOverlap {
		for _, s := range existing {
			if s.Status != model.SessionActive && s.Status != model.SessionSuspended {
				continue
			}
			otherIDs, err := ComputeScope(g, s.Scope)
			if err != nil {
				continue
			}
			if Intersects(scopeIDs, otherIDs) {
				return nil, model.ErrState("scope_conflict", exitcode.ScopeConflict,
					"scope intersects active session %s", s.ID)
			}
		}
	}

	focusID := opts.Focus
	if focusID == "" {
		if !opts.AutoFocus {
			return nil, model.ErrInput("focus_required", "start requires --focus or --auto-focus")
		}
		focusID = autoFocus(g, scopeIDs)
		if focusID == "" {
			return nil, model.ErrState("focus_required", exitcode.FocusRequired, "no pending task in scope to auto-focus")
		}
	} else if !inScope(scopeIDs, focusID) {
		return nil, model.ErrState("task_not_in_scope", exitcode.TaskNotInScope, "task %s is not in the session's scope", focusID)
	}

	return &model.Session{
		ID:        "S" + uuid.New().String(),
		Status:    model.SessionActive,
		Scope:     opts.Scope,
		Focus:     model.Focus{CurrentTask: focusID},
		Agent:     opts.Agent,
		Name:      opts.Name,
		StartedAt: now,
	}, nil
}

func autoFocus(g *graph.Graph, scopeIDs []string) string {
	var candidates []*model.Task
	for _, id := range scopeIDs {
		if t := g.Task(id); t != nil && t.Status == model.StatusPending {
			candidates = append(candidates, t)
		}
	}
	return analysis.Recommend(candidates, analysis.Weights{ParentChild: 0.3, CrossEpic: 1.0, CrossPhase: 1.5})
}

func inScope(scopeIDs []string, id string) bool {
	for _, s := range scopeIDs {
		if s == id {
			return true
		}
	}
	return false
}

// End moves a session to ended, preserving its state.
func End(s *model.Session, note string, now time.Time) error {
	if s.Status == model.SessionClosed {
		return model.ErrState("session_already_closed", exitcode.ValidationError, "session %s is already closed", s.ID)
	}
	s.Status = model.SessionEnded
	s.EndedAt = &now
	if note != "" {
		s.Focus.SessionNote = note
	}
	return nil
}

// Suspend moves an active session to suspended.
func Suspend(s *model.Session) error {
	if s.Status != model.SessionActive {
		return model.ErrState("session_not_active", exitcode.ValidationError, "session %s is not active", s.ID)
	}
	s.Status = model.SessionSuspended
	return nil
}

// Resume moves a suspended or ended session back to active.
func Resume(s *model.Session) error {
	if s.Status != model.SessionSuspended && s.Status != model.SessionEnded {
		return model.ErrState("session_not_resumable", exitcode.ValidationError, "session %s cannot be resumed from %s", s.ID, s.Status)
	}
	s.Status = model.SessionActive
	s.EndedAt = nil
	return nil
}

// Close requires every in-scope task to be done; otherwise SessionCloseBlocked.
func Close(g *graph.Graph, s *model.Session) error {
	scopeIDs, err := ComputeScope(g, s.Scope)
	if err != nil {
		return err
	}
	for _, id := range scopeIDs {
		t := g.Task(id)
		if t == nil {
			continue
		}
		if t.Status != model.StatusDone {
			return model.ErrState("session_close_blocked", exitcode.SessionCloseBlocked,
				"task %s in session scope is not done", t.ID)
		}
	}
	s.Status = model.SessionClosed
	return nil
}
