package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwarden/warden/internal/config"
	"github.com/taskwarden/warden/internal/model"
)

func newManifest(epicID string, now time.Time) *Manifest {
	return &Manifest{EpicID: epicID, Stages: make(map[string]StageRecord), CreatedAt: now}
}

func TestMissingPrerequisites(t *testing.T) {
	now := time.Now()
	m := newManifest("T001", now)
	m.Stages[string(model.StageResearch)] = StageRecord{Stage: model.StageResearch, Status: model.StageCompleted, CompletedAt: now}

	missing := MissingPrerequisites(m, model.StageDecomposition)
	assert.Equal(t, []model.ProtocolStage{model.StageConsensus, model.StageSpecification}, missing)
}

func TestCheck_StrictFailsOnMissing(t *testing.T) {
	now := time.Now()
	m := newManifest("T001", now)

	_, err := Check(m, model.StageImplementation, config.LifecycleStrict)
	require.Error(t, err)
}

func TestCheck_AdvisoryProceedsWithWarning(t *testing.T) {
	now := time.Now()
	m := newManifest("T001", now)

	missing, err := Check(m, model.StageImplementation, config.LifecycleAdvisory)
	require.NoError(t, err)
	assert.NotEmpty(t, missing)
}

func TestCheck_OffSkipsEntirely(t *testing.T) {
	now := time.Now()
	m := newManifest("T001", now)

	missing, err := Check(m, model.StageImplementation, config.LifecycleOff)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCheck_ReleaseIgnoresContributionSidestage(t *testing.T) {
	now := time.Now()
	m := newManifest("T001", now)
	for _, s := range []model.ProtocolStage{model.StageResearch, model.StageConsensus, model.StageSpecification, model.StageDecomposition, model.StageImplementation} {
		m.Stages[string(s)] = StageRecord{Stage: s, Status: model.StageCompleted, CompletedAt: now}
	}

	missing, err := Check(m, model.StageRelease, config.LifecycleStrict)
	require.NoError(t, err)
	assert.Empty(t, missing)
}
