package mutate

import (
	"math"
	"sort"

	"github.com/taskwarden/warden/internal/model"
)

// ArchiveCriteria selects which done tasks archive() moves out of the
// active store, per spec.md §4.7's retention rule.
type ArchiveCriteria struct {
	Force     bool // ignore age, still respect preserveRecentCount
	All       bool // ignore both age and preserveRecentCount
	SessionID string
}

// Archive moves tasks matching the retention rule from active to archive,
// stamping archive-only fields and cleaning up dependency references in
// the remaining active tasks. Returns the ids moved.
func (tx *Transaction) Archive(criteria ArchiveCriteria) ([]string, error) {
	active, releaseActive, err := tx.loadActive()
	if err != nil {
		return nil, err
	}
	defer releaseActive()

	archive, releaseArchive, err := tx.loadArchive()
	if err != nil {
		return nil, err
	}
	defer releaseArchive()

	now := tx.now()
	candidates := doneTasksByCompletionAge(active.Tasks)

	var moveIDs map[string]bool
	if criteria.All {
		moveIDs = toSet(candidates)
	} else {
		eligible := candidates
		preserve := tx.Config.Archive.PreserveRecentCount
		if preserve > 0 && preserve < len(eligible) {
			eligible = eligible[:len(eligible)-preserve]
		} else if preserve > 0 {
			eligible = nil
		}
		if !criteria.Force {
			days := tx.Config.Archive.DaysUntilArchive
			var filtered []*model.Task
			for _, t := range eligible {
				if t.CompletedAt == nil {
					continue
				}
				age := int(now.Sub(*t.CompletedAt).Hours() / 24)
				if age >= days {
					filtered = append(filtered, t)
				}
			}
			eligible = filtered
		}
		moveIDs = toSet(eligible)
	}

	if len(moveIDs) == 0 {
		return nil, nil
	}

	var remaining []*model.Task
	var archivedIDs []string
	for _, t := range active.Tasks {
		if !moveIDs[t.ID] {
			remaining = append(remaining, t)
			continue
		}
		t.ArchivedAt = &now
		t.ArchiveReason = "retention"
		t.SessionID = criteria.SessionID
		t.CycleTimeDays = cycleTimeDays(t)
		archive.ArchivedTasks = append(archive.ArchivedTasks, t)
		archivedIDs = append(archivedIDs, t.ID)
	}

	cleaned := map[string][]string{}
	for _, t := range remaining {
		before := t.Depends.Slice()
		var kept []string
		for _, d := range before {
			if moveIDs[d] {
				continue
			}
			kept = append(kept, d)
		}
		if len(kept) != len(before) {
			cleaned[t.ID] = before
			t.Depends = model.NewStringSet(kept...)
		}
	}
	active.Tasks = remaining

	// Write active (tasks removed) before archive (tasks appended): if the
	// second write fails, the worst case is tasks missing from both stores
	// rather than present in both, which would collide ids on the next load.
	if err := tx.saveActive(active, model.AuditEntry{
		Action:  "task.archive.cleanup",
		Details: map[string]any{"archivedIds": archivedIDs, "danglingDependenciesRemoved": cleaned},
	}); err != nil {
		return nil, err
	}

	if err := tx.saveArchive(archive, model.AuditEntry{
		Action:  "task.archive",
		Details: map[string]any{"archivedIds": archivedIDs},
	}); err != nil {
		return nil, err
	}

	return archivedIDs, nil
}

func doneTasksByCompletionAge(tasks []*model.Task) []*model.Task {
	var done []*model.Task
	for _, t := range tasks {
		if t.Status == model.StatusDone && t.CompletedAt != nil {
			done = append(done, t)
		}
	}
	sort.Slice(done, func(i, j int) bool { return done[i].CompletedAt.Before(*done[j].CompletedAt) })
	return done
}

func toSet(tasks []*model.Task) map[string]bool {
	s := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		s[t.ID] = true
	}
	return s
}

func cycleTimeDays(t *model.Task) int {
	if t.CompletedAt == nil {
		return 0
	}
	return int(math.Round(t.CompletedAt.Sub(t.CreatedAt).Hours() / 24))
}
