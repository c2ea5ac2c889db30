package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskwarden/warden/internal/model"
)

func defaultWeights() Weights {
	return Weights{ParentChild: 0.3, CrossEpic: 1.0, CrossPhase: 1.5}
}

func TestWeightedUnlocksAndLeverage(t *testing.T) {
	epic := &model.Task{ID: "T001", Type: model.TypeEpic, Phase: "implement"}
	t1 := &model.Task{ID: "T002", ParentID: "T001", Phase: "implement", Priority: model.PriorityMedium}
	t2 := &model.Task{ID: "T003", Phase: "implement", Priority: model.PriorityHigh, Depends: model.NewStringSet("T002")}
	t3 := &model.Task{ID: "T004", Phase: "release", Priority: model.PriorityLow, Depends: model.NewStringSet("T002")}

	all := []*model.Task{epic, t1, t2, t3}
	w := defaultWeights()

	unlocks := WeightedUnlocks(t1, all, w)
	assert.InDelta(t, 2.5, unlocks, 0.001) // crossEpic (t2, same phase) + crossPhase (t3, different phase)

	lev := Leverage(t1, all, w)
	assert.Equal(t, int(2.5*15)+model.PriorityMedium.Score(), lev)
}

func TestActionableAndBlockedBy(t *testing.T) {
	dep := &model.Task{ID: "T001", Status: model.StatusPending}
	t1 := &model.Task{ID: "T002", Depends: model.NewStringSet("T001")}
	byID := map[string]*model.Task{"T001": dep, "T002": t1}

	assert.False(t, Actionable(t1, byID))
	assert.Equal(t, []string{"T001"}, BlockedBy(t1, byID))

	dep.Status = model.StatusDone
	assert.True(t, Actionable(t1, byID))
}

func TestBottlenecks(t *testing.T) {
	shared := &model.Task{ID: "T001"}
	a := &model.Task{ID: "T002", Status: model.StatusPending, Depends: model.NewStringSet("T001")}
	b := &model.Task{ID: "T003", Status: model.StatusPending, Depends: model.NewStringSet("T001")}

	result := Bottlenecks([]*model.Task{shared, a, b})
	assert.Len(t, result, 1)
	assert.Equal(t, "T001", result[0].ID)
}

func TestClassifyTiers(t *testing.T) {
	all := []*model.Task{
		{ID: "T001", Status: model.StatusPending, Priority: model.PriorityCritical},
	}
	byID := indexByID(all)
	assert.Equal(t, TierCritical, Classify(all[0], all, byID, defaultWeights()))
}

func TestRecommend_TieBreaksByPriorityThenID(t *testing.T) {
	all := []*model.Task{
		{ID: "T003", Status: model.StatusPending, Priority: model.PriorityMedium},
		{ID: "T002", Status: model.StatusPending, Priority: model.PriorityHigh},
	}
	assert.Equal(t, "T002", Recommend(all, defaultWeights()))
}
