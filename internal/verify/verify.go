// Package verify implements the verification gate map operations from
// spec.md §4.11: setGate and the gateStatus view.
package verify

import (
	"time"

	"github.com/taskwarden/warden/internal/model"
)

// SetGate sets gate on t's verification record to value, per spec.md §4.11.
// Setting any gate to false increments Round and appends a failure log
// entry; passing is recomputed as AND over the required gate set.
func SetGate(t *model.Task, gate model.GateName, value bool, agent string, reason string, now time.Time) error {
	if !gate.Valid() {
		return model.ErrInput("unknown_gate", "unknown verification gate %q", gate)
	}
	v := &t.Verification
	if v.Gates == nil {
		v.Gates = make(map[model.GateName]bool, len(model.AllGates()))
	}
	v.Gates[gate] = value
	v.LastAgent = agent
	v.LastUpdated = &now

	if !value {
		v.Round++
		v.FailureLog = append(v.FailureLog, model.FailureEntry{
			Round:     v.Round,
			Agent:     agent,
			Reason:    reason,
			Timestamp: now,
		})
	}

	v.Passed = computePassed(v.Gates)
	return nil
}

func computePassed(gates map[model.GateName]bool) bool {
	for _, g := range model.RequiredGates() {
		if !gates[g] {
			return false
		}
	}
	return true
}

// GateStatus is the read-only view of a task's verification record.
type GateStatus struct {
	Passed     bool                      `json:"passed"`
	Round      int                       `json:"round"`
	Gates      map[model.GateName]bool   `json:"gates"`
	LastAgent  string                    `json:"lastAgent,omitempty"`
	Remaining  []model.GateName          `json:"remaining"`
	FailureLog []model.FailureEntry      `json:"failureLog,omitempty"`
}

// Status returns t's current gate status, per spec.md §4.11's gateStatus(id).
func Status(t *model.Task) GateStatus {
	v := t.Verification
	var remaining []model.GateName
	for _, g := range model.RequiredGates() {
		if !v.Gates[g] {
			remaining = append(remaining, g)
		}
	}
	return GateStatus{
		Passed:     v.Passed,
		Round:      v.Round,
		Gates:      v.Gates,
		LastAgent:  v.LastAgent,
		Remaining:  remaining,
		FailureLog: v.FailureLog,
	}
}

// Reset restores a task's verification record to its initial state, per
// spec.md §4.11's reset operation.
func Reset(t *model.Task) {
	t.Verification = model.NewVerification()
}
