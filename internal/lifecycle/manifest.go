// Package lifecycle implements the per-epic RCSD (research → consensus →
// specification → decomposition → implementation → release) pre-spawn gate
// from spec.md §4.12.
package lifecycle

import (
	"time"

	"github.com/taskwarden/warden/internal/config"
	"github.com/taskwarden/warden/internal/exitcode"
	"github.com/taskwarden/warden/internal/model"
	"github.com/taskwarden/warden/internal/paths"
	"github.com/taskwarden/warden/internal/store"
	"github.com/taskwarden/warden/internal/validate"
)

// StageRecord is one completed (or skipped) stage in an epic's manifest.
type StageRecord struct {
	Stage       model.ProtocolStage `json:"stage"`
	Status      model.StageStatus   `json:"status"`
	CompletedAt time.Time           `json:"completedAt"`
	Agent       string              `json:"agent,omitempty"`
	Summary     string              `json:"summary,omitempty"`
}

// Manifest is the plain JSON file persisted per epic, one file per epicID.
type Manifest struct {
	EpicID    string                 `json:"epicId"`
	Stages    map[string]StageRecord `json:"stages"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt,omitempty"`
}

// Load reads an epic's manifest, returning an empty manifest (not an error)
// if none has been recorded yet.
func Load(p *paths.Paths, epicID string, now time.Time) (*Manifest, error) {
	var m Manifest
	err := store.LoadJSON(p.LifecycleManifest(epicID), &m)
	if core, ok := err.(*model.CoreError); ok && core.ExitCode == exitcode.NotFound {
		return &Manifest{EpicID: epicID, Stages: make(map[string]StageRecord), CreatedAt: now}, nil
	}
	if err != nil {
		return nil, err
	}
	if m.Stages == nil {
		m.Stages = make(map[string]StageRecord)
	}
	return &m, nil
}

// RecordStageCompletion appends (or overwrites) the record for a stage and
// persists the manifest atomically via internal/store, per spec.md §4.12's
// "appends to it atomically via (4.2)".
func RecordStageCompletion(p *paths.Paths, epicID string, stage model.ProtocolStage, status model.StageStatus, agent, summary string, now time.Time) (*Manifest, error) {
	if !stage.Valid() {
		return nil, model.ErrInput("invalid_stage", "unknown lifecycle stage %q", stage)
	}
	if !status.Valid() {
		return nil, model.ErrInput("invalid_stage_status", "unknown stage status %q", status)
	}

	m, err := Load(p, epicID, now)
	if err != nil {
		return nil, err
	}
	m.Stages[string(stage)] = StageRecord{Stage: stage, Status: status, CompletedAt: now, Agent: agent, Summary: summary}
	m.UpdatedAt = now

	opts := store.SaveOptions{
		BackupDir:  p.Backups(),
		MaxBackups: 10,
		Validate:   validate.StoreValidator("manifest"),
		Now:        now,
	}
	if err := store.SaveJSON(p.LifecycleManifest(epicID), m, opts); err != nil {
		return nil, err
	}
	return m, nil
}

// MissingPrerequisites returns the ordered stages before protocolType that
// have not been recorded as completed or skipped.
func MissingPrerequisites(m *Manifest, protocolType model.ProtocolStage) []model.ProtocolStage {
	var missing []model.ProtocolStage
	for _, stage := range model.StageOrder() {
		if stage == protocolType {
			break
		}
		rec, ok := m.Stages[string(stage)]
		if !ok || (rec.Status != model.StageCompleted && rec.Status != model.StageSkipped) {
			missing = append(missing, stage)
		}
	}
	return missing
}

// Check enforces spec.md §4.12's pre-spawn gate for mode. It returns the
// list of missing prerequisite stages (possibly empty) and an error only
// when mode is strict and at least one prerequisite is missing.
func Check(m *Manifest, protocolType model.ProtocolStage, mode config.LifecycleMode) ([]model.ProtocolStage, error) {
	if mode == config.LifecycleOff {
		return nil, nil
	}
	missing := MissingPrerequisites(m, protocolType)
	if len(missing) == 0 {
		return nil, nil
	}
	if mode == config.LifecycleStrict {
		return missing, model.ErrProtocol("lifecycle_gate_failed", exitcode.LifecycleGateFailed,
			"epic %s missing prerequisite stage(s) %v before %s", m.EpicID, missing, protocolType)
	}
	// advisory: caller emits a warning and proceeds.
	return missing, nil
}
