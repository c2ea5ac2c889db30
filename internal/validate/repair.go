package validate

import (
	"sort"
	"time"

	"github.com/taskwarden/warden/internal/model"
	"github.com/taskwarden/warden/internal/sequence"
)

// FixAction records one deterministic repair applied to the active store.
type FixAction struct {
	FixType string         `json:"fixType"`
	TaskID  string         `json:"taskId,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// Fix applies every deterministic repair from spec.md §4.6's `--fix` mode
// in place on active, returning the list of actions taken (for the audit
// log — internal/mutate is responsible for actually appending them).
// Sequence repair is the caller's job (internal/sequence.Allocator.Repair)
// since it needs both stores' id lists, which this function doesn't own.
func Fix(active *model.ActiveStore, now time.Time) []FixAction {
	var actions []FixAction
	actions = append(actions, fixMissingCompletedAt(active, now)...)
	actions = append(actions, fixOrphanReferences(active)...)
	actions = append(actions, fixFocusResync(active)...)
	return actions
}

func fixMissingCompletedAt(active *model.ActiveStore, now time.Time) []FixAction {
	var actions []FixAction
	for _, t := range active.Tasks {
		if t.Status != model.StatusDone || t.CompletedAt != nil {
			continue
		}
		at := now
		if t.UpdatedAt != nil {
			at = *t.UpdatedAt
		}
		t.CompletedAt = &at
		actions = append(actions, FixAction{
			FixType: "missing_completed_at",
			TaskID:  t.ID,
			Details: map[string]any{"derivedFrom": "lastUpdated", "completedAt": at},
		})
	}
	return actions
}

func fixOrphanReferences(active *model.ActiveStore) []FixAction {
	byID := make(map[string]bool, len(active.Tasks))
	for _, t := range active.Tasks {
		byID[t.ID] = true
	}
	var actions []FixAction
	for _, t := range active.Tasks {
		var removed []string
		for _, dep := range t.Depends.Slice() {
			if !byID[dep] {
				removed = append(removed, dep)
			}
		}
		for _, dep := range removed {
			t.Depends.Remove(dep)
		}
		if len(removed) > 0 {
			actions = append(actions, FixAction{
				FixType: "orphan_dependency_removed",
				TaskID:  t.ID,
				Details: map[string]any{"removed": removed},
			})
		}
		if t.ParentID != "" && !byID[t.ParentID] {
			orphaned := t.ParentID
			t.ParentID = ""
			actions = append(actions, FixAction{
				FixType: "orphan_parent_cleared",
				TaskID:  t.ID,
				Details: map[string]any{"previousParentId": orphaned},
			})
		}
	}
	return actions
}

func fixFocusResync(active *model.ActiveStore) []FixAction {
	if active.Focus.CurrentTask == "" {
		return nil
	}
	var activeTask *model.Task
	activeCount := 0
	for _, t := range active.Tasks {
		if t.Status == model.StatusActive {
			activeCount++
			activeTask = t
		}
	}
	if activeCount == 1 && active.Focus.CurrentTask != activeTask.ID {
		prev := active.Focus.CurrentTask
		active.Focus.CurrentTask = activeTask.ID
		return []FixAction{{
			FixType: "focus_resynced",
			Details: map[string]any{"from": prev, "to": activeTask.ID},
		}}
	}
	if activeCount == 0 {
		prev := active.Focus.CurrentTask
		active.Focus.CurrentTask = ""
		return []FixAction{{
			FixType: "focus_cleared",
			Details: map[string]any{"from": prev},
		}}
	}
	return nil
}

// RepairSequence reconciles the .sequence counter against both stores' ids,
// returning the audit details if a repair was applied.
func RepairSequence(alloc *sequence.Allocator, active *model.ActiveStore, archive *model.ArchiveStore, now time.Time) (map[string]any, error) {
	activeIDs := make([]string, len(active.Tasks))
	for i, t := range active.Tasks {
		activeIDs[i] = t.ID
	}
	var archiveIDs []string
	if archive != nil {
		archiveIDs = make([]string, len(archive.ArchivedTasks))
		for i, t := range archive.ArchivedTasks {
			archiveIDs[i] = t.ID
		}
	}
	return alloc.Repair(activeIDs, archiveIDs, now)
}

// DuplicateGroup is one set of tasks sharing an id, across either the
// active store alone or active+archive.
type DuplicateGroup struct {
	ID    string
	Tasks []*model.Task // in encounter order
}

// ResolutionPolicy picks a survivor deterministically when repair runs
// non-interactively (stdin isn't a terminal, or --non-interactive is set).
type ResolutionPolicy string

const (
	// KeepFirst keeps the first-encountered task in each duplicate group.
	KeepFirst ResolutionPolicy = "keep-first"
	// KeepActive prefers a task in status active/pending over done/cancelled.
	KeepActive ResolutionPolicy = "keep-active"
)

// FindDuplicates groups active store tasks (and, if archive is non-nil,
// archive tasks too) by id, returning only groups with more than one member.
// The CLI presents these interactively when stdin is a terminal; otherwise
// Resolve applies policy directly.
func FindDuplicates(active *model.ActiveStore, archive *model.ArchiveStore) []DuplicateGroup {
	byID := map[string][]*model.Task{}
	var order []string
	for _, t := range active.Tasks {
		if _, ok := byID[t.ID]; !ok {
			order = append(order, t.ID)
		}
		byID[t.ID] = append(byID[t.ID], t)
	}
	if archive != nil {
		for _, t := range archive.ArchivedTasks {
			if _, ok := byID[t.ID]; !ok {
				order = append(order, t.ID)
			}
			byID[t.ID] = append(byID[t.ID], t)
		}
	}
	sort.Strings(order)
	var groups []DuplicateGroup
	for _, id := range order {
		if len(byID[id]) > 1 {
			groups = append(groups, DuplicateGroup{ID: id, Tasks: byID[id]})
		}
	}
	return groups
}

// Resolve picks the surviving task from a group under policy. The caller
// (mutate, or the CLI after an interactive prompt) is responsible for
// removing the non-surviving tasks from their respective stores and
// recording the audit entry with fixType="duplicate_resolved".
func Resolve(group DuplicateGroup, policy ResolutionPolicy) *model.Task {
	if len(group.Tasks) == 0 {
		return nil
	}
	switch policy {
	case KeepActive:
		for _, t := range group.Tasks {
			if t.Status == model.StatusActive {
				return t
			}
		}
		for _, t := range group.Tasks {
			if t.Status == model.StatusPending {
				return t
			}
		}
		return group.Tasks[0]
	default: // KeepFirst
		return group.Tasks[0]
	}
}
