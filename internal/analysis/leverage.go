// Package analysis computes the leverage/actionability/bottleneck views
// spec.md §4.10 describes over the active task store. Nothing here
// mutates or persists state — every function takes a task slice (usually
// the full active store, or an epic subtree from internal/graph) and
// returns plain values.
package analysis

import (
	"math"

	"github.com/taskwarden/warden/internal/config"
	"github.com/taskwarden/warden/internal/model"
)

// Weights are the configurable multipliers from spec.md §4.10's w(t,d).
type Weights = config.HierarchyWeightConfig

// WeightedUnlocks computes Σ w(t,d) over every task d that depends on t.
func WeightedUnlocks(t *model.Task, all []*model.Task, w Weights) float64 {
	var sum float64
	for _, d := range all {
		if !d.Depends.Has(t.ID) {
			continue
		}
		switch {
		case d.ParentID == t.ID || t.ParentID == d.ID:
			sum += w.ParentChild
		case d.Phase != t.Phase:
			sum += w.CrossPhase
		default:
			sum += w.CrossEpic
		}
	}
	return sum
}

// Leverage is floor(weightedUnlocks(t)*15) + priorityScore(t).
func Leverage(t *model.Task, all []*model.Task, w Weights) int {
	return int(math.Floor(WeightedUnlocks(t, all, w)*15)) + t.Priority.Score()
}

// Actionable reports whether every dependency of t is done.
func Actionable(t *model.Task, byID map[string]*model.Task) bool {
	for _, id := range t.Depends.Slice() {
		d, ok := byID[id]
		if !ok || d.Status != model.StatusDone {
			return false
		}
	}
	return true
}

// BlockedBy lists the dependencies of t that are not yet done.
func BlockedBy(t *model.Task, byID map[string]*model.Task) []string {
	var blocking []string
	for _, id := range t.Depends.Slice() {
		d, ok := byID[id]
		if !ok || d.Status != model.StatusDone {
			blocking = append(blocking, id)
		}
	}
	return blocking
}

// Bottlenecks returns tasks that appear in the depends list of two or more
// pending tasks.
func Bottlenecks(all []*model.Task) []*model.Task {
	byID := indexByID(all)
	counts := make(map[string]int)
	for _, t := range all {
		if t.Status != model.StatusPending {
			continue
		}
		for _, id := range t.Depends.Slice() {
			counts[id]++
		}
	}
	var result []*model.Task
	for id, n := range counts {
		if n >= 2 {
			if t, ok := byID[id]; ok {
				result = append(result, t)
			}
		}
	}
	return result
}

// Tier is the mutually-exclusive top-down classification from spec.md §4.10.
type Tier string

const (
	TierUnblock Tier = "unblock"
	TierCritical Tier = "critical"
	TierBlocked Tier = "blocked"
	TierRoutine Tier = "routine"
)

// Classify assigns a task to exactly one tier.
func Classify(t *model.Task, all []*model.Task, byID map[string]*model.Task, w Weights) Tier {
	actionable := Actionable(t, byID)
	if !actionable {
		return TierBlocked
	}
	if unlocks(t, all) >= 3 {
		return TierUnblock
	}
	if t.Priority == model.PriorityCritical || t.Priority == model.PriorityHigh {
		return TierCritical
	}
	return TierRoutine
}

func unlocks(t *model.Task, all []*model.Task) int {
	n := 0
	for _, d := range all {
		if d.Depends.Has(t.ID) {
			n++
		}
	}
	return n
}

// Domain groups tasks by label.
type Domain struct {
	Name            string
	Count           int
	ActionableCount int
	Tasks           []string
}

// Domains groups all into one Domain per distinct label.
func Domains(all []*model.Task) []Domain {
	byID := indexByID(all)
	groups := make(map[string]*Domain)
	var order []string
	for _, t := range all {
		for _, label := range t.Labels.Slice() {
			g, ok := groups[label]
			if !ok {
				g = &Domain{Name: label}
				groups[label] = g
				order = append(order, label)
			}
			g.Count++
			g.Tasks = append(g.Tasks, t.ID)
			if Actionable(t, byID) {
				g.ActionableCount++
			}
		}
	}
	result := make([]Domain, 0, len(order))
	for _, name := range order {
		result = append(result, *groups[name])
	}
	return result
}

// Recommend returns the id of the task with maximum leverage, tie-broken by
// priority then id.
func Recommend(all []*model.Task, w Weights) string {
	var best *model.Task
	bestScore := -1
	for _, t := range all {
		if t.Status != model.StatusPending && t.Status != model.StatusActive {
			continue
		}
		score := Leverage(t, all, w)
		if best == nil || score > bestScore ||
			(score == bestScore && higherPriority(t, best)) ||
			(score == bestScore && t.Priority == best.Priority && t.ID < best.ID) {
			best, bestScore = t, score
		}
	}
	if best == nil {
		return ""
	}
	return best.ID
}

func higherPriority(a, b *model.Task) bool {
	return a.Priority.Score() > b.Priority.Score()
}

func indexByID(all []*model.Task) map[string]*model.Task {
	byID := make(map[string]*model.Task, len(all))
	for _, t := range all {
		byID[t.ID] = t
	}
	return byID
}
