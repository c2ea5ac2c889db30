package phase

import (
	"sort"
	"time"

	"github.com/taskwarden/warden/internal/config"
	"github.com/taskwarden/warden/internal/exitcode"
	"github.com/taskwarden/warden/internal/model"
	"github.com/taskwarden/warden/internal/statechart"
)

const (
	EventStart    statechart.Event = "start"
	EventFinish   statechart.Event = "complete"
	EventRollback statechart.Event = "rollback"
)

// NewPhaseMachine builds the pending->active->completed state machine for a
// single phase, plus the "rollback" event spec.md §4.9 names for moving to a
// lower-order phase (gated by the caller's explicit-flag + confirmation,
// not by the machine itself).
func NewPhaseMachine(current model.PhaseStatus) *statechart.Machine {
	b := statechart.NewBuilder(statechart.State(current))
	pending, active, completed := statechart.State(model.PhaseStatusPending), statechart.State(model.PhaseStatusActive), statechart.State(model.PhaseStatusCompleted)

	b.AddTransition(pending, active, EventStart)
	b.AddTransition(active, completed, EventFinish)
	b.AddTransition(active, pending, EventRollback)
	b.AddTransition(completed, active, EventRollback)
	b.AddTransition(completed, pending, EventRollback)

	return b.Build()
}

// Start transitions slug from pending to active and appends a history entry.
func Start(ps *model.ProjectState, slug string, now time.Time) error {
	ph, ok := ps.Phases[slug]
	if !ok {
		return model.ErrNotFound("phase_not_found", "phase %q not found", slug)
	}
	m := NewPhaseMachine(ph.Status)
	if err := m.Fire(EventStart); err != nil {
		return model.ErrState("phase_start_not_allowed", exitcode.ValidationError, "cannot start phase %q: %v", slug, err)
	}
	ph.Status = model.PhaseStatus(m.State())
	ph.StartedAt = &now
	ps.PhaseHistory = append(ps.PhaseHistory, model.PhaseHistoryEntry{
		Phase: slug, TransitionType: model.PhaseTransitionStarted, Timestamp: now,
	})
	return nil
}

// Complete requires every task in the phase to be done, records duration,
// and appends a history entry.
func Complete(ps *model.ProjectState, tasksInPhase []*model.Task, slug string, now time.Time) error {
	ph, ok := ps.Phases[slug]
	if !ok {
		return model.ErrNotFound("phase_not_found", "phase %q not found", slug)
	}
	for _, t := range tasksInPhase {
		if t.Status != model.StatusDone {
			return model.ErrState("phase_has_unfinished_tasks", exitcode.ValidationError,
				"phase %q has incomplete task %s", slug, t.ID)
		}
	}
	m := NewPhaseMachine(ph.Status)
	if err := m.Fire(EventFinish); err != nil {
		return model.ErrState("phase_complete_not_allowed", exitcode.ValidationError, "cannot complete phase %q: %v", slug, err)
	}
	ph.Status = model.PhaseStatusCompleted
	ph.CompletedAt = &now
	ps.PhaseHistory = append(ps.PhaseHistory, model.PhaseHistoryEntry{
		Phase: slug, TransitionType: model.PhaseTransitionCompleted, Timestamp: now, TaskCount: len(tasksInPhase),
	})
	return nil
}

// AdvanceResult reports what Advance did, for the CLI's confirmation prompt.
type AdvanceResult struct {
	Completed          string
	Started            string
	CompletionPercent  float64
	Confirmed          bool
}

// Advance completes the current phase (if still active) and starts the
// next phase by order, per spec.md §4.9's two ordered guards: an unfinished
// critical task blocks the advance even with force, and a completion
// percentage below the threshold returns ErrState(phase_below_threshold)
// unless force is set. Advance has no interactive step of its own;
// confirmed is only echoed in the result. Unlike the standalone Complete,
// phase completion here is gated only by those two guards, not by
// requiring every in-phase task to be done.
func Advance(ps *model.ProjectState, tasksByPhase map[string][]*model.Task, cfg config.PhaseValidationConfig, force, confirmed bool, now time.Time) (*AdvanceResult, error) {
	cur := ps.CurrentPhase
	if cur == "" {
		return nil, model.ErrState("no_current_phase", exitcode.ValidationError, "no current phase set")
	}
	curPhase, ok := ps.Phases[cur]
	if !ok {
		return nil, model.ErrNotFound("phase_not_found", "phase %q not found", cur)
	}

	inPhase := tasksByPhase[cur]
	result := &AdvanceResult{}

	if curPhase.Status == model.PhaseStatusActive {
		if cfg.BlockOnCriticalTasks {
			for _, t := range inPhase {
				if t.Priority == model.PriorityCritical && t.Status != model.StatusDone {
					return nil, model.ErrState("critical_task_blocks_advance", exitcode.ValidationError,
						"task %s is critical and not done; cannot advance phase %q", t.ID, cur)
				}
			}
		}

		total := len(inPhase)
		doneCount := 0
		for _, t := range inPhase {
			if t.Status == model.StatusDone {
				doneCount++
			}
		}
		percent := 100.0
		if total > 0 {
			percent = float64(doneCount) / float64(total) * 100
		}
		result.CompletionPercent = percent

		if percent < float64(cfg.PhaseAdvanceThreshold) && !force {
			return result, model.ErrState("phase_below_threshold", exitcode.ValidationError,
				"phase %q is %.0f%% complete, below threshold %d%%; use --force to advance anyway", cur, percent, cfg.PhaseAdvanceThreshold)
		}

		m := NewPhaseMachine(curPhase.Status)
		if err := m.Fire(EventFinish); err != nil {
			return nil, model.ErrState("phase_complete_not_allowed", exitcode.ValidationError, "cannot complete phase %q: %v", cur, err)
		}
		curPhase.Status = model.PhaseStatusCompleted
		curPhase.CompletedAt = &now
		ps.PhaseHistory = append(ps.PhaseHistory, model.PhaseHistoryEntry{
			Phase: cur, TransitionType: model.PhaseTransitionCompleted, Timestamp: now, TaskCount: total,
		})
		result.Completed = cur
	}

	next := nextPhaseByOrder(ps, cur)
	if next == "" {
		return result, nil
	}
	if err := Start(ps, next, now); err != nil {
		return nil, err
	}
	result.Started = next
	ps.CurrentPhase = next
	result.Confirmed = confirmed
	return result, nil
}

func nextPhaseByOrder(ps *model.ProjectState, current string) string {
	type entry struct {
		slug  string
		order int
	}
	var entries []entry
	for slug, ph := range ps.Phases {
		entries = append(entries, entry{slug, ph.Order})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].order < entries[j].order })

	curOrder := -1
	if ph, ok := ps.Phases[current]; ok {
		curOrder = ph.Order
	}
	for _, e := range entries {
		if e.order > curOrder {
			return e.slug
		}
	}
	return ""
}

// Rename atomically renames a phase key, updating every referencing task,
// project.currentPhase, and focus.currentPhase, and appends a history entry.
func Rename(ps *model.ProjectState, focus *model.Focus, tasks []*model.Task, oldSlug, newSlug string, now time.Time) error {
	if !model.PhaseSlugPattern.MatchString(newSlug) {
		return model.ErrInput("invalid_phase_slug", "phase slug %q does not match required pattern", newSlug)
	}
	ph, ok := ps.Phases[oldSlug]
	if !ok {
		return model.ErrNotFound("phase_not_found", "phase %q not found", oldSlug)
	}
	if _, exists := ps.Phases[newSlug]; exists {
		return model.ErrInvariant("phase_id_collision", exitcode.ValidationError, "phase %q already exists", newSlug)
	}

	delete(ps.Phases, oldSlug)
	ps.Phases[newSlug] = ph

	for _, t := range tasks {
		if t.Phase == oldSlug {
			t.Phase = newSlug
		}
	}
	if ps.CurrentPhase == oldSlug {
		ps.CurrentPhase = newSlug
	}
	if focus != nil && focus.CurrentPhase == oldSlug {
		focus.CurrentPhase = newSlug
	}

	ps.PhaseHistory = append(ps.PhaseHistory, model.PhaseHistoryEntry{
		Phase: newSlug, TransitionType: model.PhaseTransitionRenamed, Timestamp: now, FromPhase: oldSlug,
	})
	return nil
}

// Delete removes a phase. If it has tasks, reassignTo must be a different
// existing phase; refuses to delete the current phase.
func Delete(ps *model.ProjectState, tasks []*model.Task, slug, reassignTo string, force bool, now time.Time) error {
	if !force {
		return model.ErrInput("force_required", "deleting a phase requires --force")
	}
	if _, ok := ps.Phases[slug]; !ok {
		return model.ErrNotFound("phase_not_found", "phase %q not found", slug)
	}
	if ps.CurrentPhase == slug {
		return model.ErrState("cannot_delete_current_phase", exitcode.ValidationError, "phase %q is the current phase", slug)
	}

	var inPhase []*model.Task
	for _, t := range tasks {
		if t.Phase == slug {
			inPhase = append(inPhase, t)
		}
	}
	if len(inPhase) > 0 {
		if reassignTo == "" || reassignTo == slug {
			return model.ErrInput("reassign_required", "phase %q has tasks; --reassign-to is required", slug)
		}
		if _, ok := ps.Phases[reassignTo]; !ok {
			return model.ErrNotFound("phase_not_found", "reassign target phase %q not found", reassignTo)
		}
		for _, t := range inPhase {
			t.Phase = reassignTo
		}
	}

	delete(ps.Phases, slug)
	ps.PhaseHistory = append(ps.PhaseHistory, model.PhaseHistoryEntry{
		Phase: slug, TransitionType: model.PhaseTransitionDeleted, Timestamp: now, Reason: reassignTo,
	})
	return nil
}

// SetCurrent performs a direct phase pointer change without firing the
// status machine, per spec.md §4.9's "direct set transitions ... are
// allowed" clause — moving project.currentPhase does not itself change any
// phase's status.
func SetCurrent(ps *model.ProjectState, slug string, now time.Time) error {
	if _, ok := ps.Phases[slug]; !ok {
		return model.ErrNotFound("phase_not_found", "phase %q not found", slug)
	}
	ps.CurrentPhase = slug
	ps.PhaseHistory = append(ps.PhaseHistory, model.PhaseHistoryEntry{
		Phase: slug, TransitionType: model.PhaseTransitionSet, Timestamp: now,
	})
	return nil
}
