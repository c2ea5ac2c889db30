package analysis

import (
	"github.com/taskwarden/warden/internal/graph"
	"github.com/taskwarden/warden/internal/model"
)

// Inventory buckets a subtree's tasks by coarse state.
type Inventory struct {
	Completed []string
	Ready     []string
	Blocked   []string
}

// ExecutionPlan is the epic-scoped view spec.md §4.10 describes for
// `--parent E`: the subtree's dependency waves, its critical path, an
// inventory, and a next-task recommendation.
type ExecutionPlan struct {
	EpicID        string
	WavesByPhase  map[string][][]string
	CriticalPath  []string
	CriticalPathLength int
	Inventory     Inventory
	Recommendation string
}

// Epic computes the execution plan for the subtree rooted at epicID.
func Epic(all []*model.Task, epicID string, w Weights) *ExecutionPlan {
	g := graph.New(all)
	subtreeIDs := append([]string{epicID}, g.Descendants(epicID)...)

	byID := indexByID(all)
	subtree := make([]*model.Task, 0, len(subtreeIDs))
	for _, id := range subtreeIDs {
		if t, ok := byID[id]; ok {
			subtree = append(subtree, t)
		}
	}

	waves := g.WavesByPhase(subtreeIDs)
	criticalPath, length := g.CriticalPath(subtreeIDs)

	inv := Inventory{}
	for _, t := range subtree {
		switch {
		case t.Status == model.StatusDone || t.Status == model.StatusCancelled:
			inv.Completed = append(inv.Completed, t.ID)
		case Actionable(t, byID):
			inv.Ready = append(inv.Ready, t.ID)
		default:
			inv.Blocked = append(inv.Blocked, t.ID)
		}
	}

	return &ExecutionPlan{
		EpicID:             epicID,
		WavesByPhase:       waves,
		CriticalPath:       criticalPath,
		CriticalPathLength: length,
		Inventory:          inv,
		Recommendation:     Recommend(subtree, w),
	}
}
