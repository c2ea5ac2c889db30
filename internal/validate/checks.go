// Package validate runs the named cross-entity checks from spec.md §4.6
// against the active and archive stores, and implements their deterministic
// and interactive repairs.
package validate

import (
	"time"

	"github.com/taskwarden/warden/internal/config"
	"github.com/taskwarden/warden/internal/graph"
	"github.com/taskwarden/warden/internal/model"
	"github.com/taskwarden/warden/internal/store"
)

// Status is the outcome of one named check.
type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusFail    Status = "fail"
)

// Result is one (check, status, message) triple with an affected-item count.
type Result struct {
	Check   string `json:"check"`
	Status  Status `json:"status"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// Input bundles everything Run needs. ActiveParseErr/ArchiveParseErr let
// check 1 ("JSON parses") report a parse failure the caller already hit
// when loading the stores through internal/store.
type Input struct {
	Active          *model.ActiveStore
	Archive         *model.ArchiveStore
	ActiveParseErr  error
	ArchiveParseErr error
	Config          config.Config
	Now             time.Time
}

// Run executes all fifteen checks from spec.md §4.6, in order.
func Run(in Input) []Result {
	var results []Result
	results = append(results, checkJSONParses(in))

	if in.Active == nil {
		return results // nothing further can run without a parsed active store
	}

	results = append(results,
		checkDuplicateActiveIDs(in),
		checkDuplicateAcrossStores(in),
		checkMaxActiveTasks(in),
		checkReferencesResolve(in),
		checkNoCycles(in),
		checkBlockedHasBlockedBy(in),
		checkDoneHasCompletedAt(in),
		checkSchemaVersion(in),
		checkRequiredFields(in),
		checkFocusMatchesActive(in),
		checkChecksum(in),
		checkEverySize(in),
		checkStale(in),
		checkSinglePhaseActive(in),
	)
	return results
}

func checkJSONParses(in Input) Result {
	if in.ActiveParseErr != nil {
		return Result{"json_parses", StatusFail, "todo.json failed to parse: " + in.ActiveParseErr.Error(), 1}
	}
	if in.ArchiveParseErr != nil {
		return Result{"json_parses", StatusFail, "todo-archive.json failed to parse: " + in.ArchiveParseErr.Error(), 1}
	}
	return Result{"json_parses", StatusOK, "all store files parsed", 0}
}

func checkDuplicateActiveIDs(in Input) Result {
	seen := map[string]int{}
	for _, t := range in.Active.Tasks {
		seen[t.ID]++
	}
	dupes := 0
	for _, n := range seen {
		if n > 1 {
			dupes++
		}
	}
	if dupes > 0 {
		return Result{"no_duplicate_active_ids", StatusFail, "duplicate ids within the active store", dupes}
	}
	return Result{"no_duplicate_active_ids", StatusOK, "no duplicate ids in active store", 0}
}

func checkDuplicateAcrossStores(in Input) Result {
	seen := map[string]bool{}
	for _, t := range in.Active.Tasks {
		seen[t.ID] = true
	}
	dupes := 0
	if in.Archive != nil {
		for _, t := range in.Archive.ArchivedTasks {
			if seen[t.ID] {
				dupes++
			}
		}
	}
	if dupes > 0 {
		return Result{"no_duplicate_cross_store_ids", StatusFail, "ids present in both active and archive", dupes}
	}
	return Result{"no_duplicate_cross_store_ids", StatusOK, "no ids shared between active and archive", 0}
}

func checkMaxActiveTasks(in Input) Result {
	n := 0
	for _, t := range in.Active.Tasks {
		if t.Status == model.StatusActive {
			n++
		}
	}
	limit := in.Config.Validation.MaxActiveTasks
	if n > limit {
		return Result{"max_active_tasks", StatusFail, "too many tasks in status active", n}
	}
	return Result{"max_active_tasks", StatusOK, "active task count within limit", n}
}

func checkReferencesResolve(in Input) Result {
	byID := make(map[string]bool, len(in.Active.Tasks))
	for _, t := range in.Active.Tasks {
		byID[t.ID] = true
	}
	bad := 0
	for _, t := range in.Active.Tasks {
		if t.ParentID != "" && !byID[t.ParentID] {
			bad++
			continue
		}
		for _, dep := range t.Depends.Slice() {
			if !byID[dep] {
				bad++
			}
		}
	}
	if bad > 0 {
		return Result{"references_resolve", StatusFail, "dangling parentId or depends reference", bad}
	}
	return Result{"references_resolve", StatusOK, "every parentId and depends reference resolves", 0}
}

// cycleCheckThreshold skips the O(n^2)-worst-case cycle scan above this many
// active tasks, surfacing a warning instead of failing the check outright.
const cycleCheckThreshold = 5000

func checkNoCycles(in Input) Result {
	if len(in.Active.Tasks) > cycleCheckThreshold {
		return Result{"no_dependency_cycles", StatusWarning, "skipped: active task count exceeds threshold", len(in.Active.Tasks)}
	}
	g := graph.New(in.Active.Tasks)
	bad := 0
	for _, t := range in.Active.Tasks {
		for _, dep := range t.Depends.Slice() {
			if g.DependencyCycle(in.Active.Tasks, dep, t.ID) {
				bad++
			}
		}
	}
	if bad > 0 {
		return Result{"no_dependency_cycles", StatusFail, "dependency graph contains a cycle", bad}
	}
	return Result{"no_dependency_cycles", StatusOK, "dependency graph is acyclic", 0}
}

func checkBlockedHasBlockedBy(in Input) Result {
	bad := 0
	for _, t := range in.Active.Tasks {
		if t.Status == model.StatusBlocked && t.BlockedBy == "" {
			bad++
		}
	}
	if bad > 0 {
		return Result{"blocked_has_blocked_by", StatusFail, "blocked task missing blockedBy", bad}
	}
	return Result{"blocked_has_blocked_by", StatusOK, "every blocked task has blockedBy", 0}
}

func checkDoneHasCompletedAt(in Input) Result {
	bad := 0
	for _, t := range in.Active.Tasks {
		if t.Status == model.StatusDone && t.CompletedAt == nil {
			bad++
		}
	}
	if bad > 0 {
		return Result{"done_has_completed_at", StatusFail, "done task missing completedAt", bad}
	}
	return Result{"done_has_completed_at", StatusOK, "every done task has completedAt", 0}
}

// KnownSchemaVersions lists schema versions this build understands.
var KnownSchemaVersions = []string{"1.0"}

func checkSchemaVersion(in Input) Result {
	v := in.Active.Meta.SchemaVersion
	if v == "" {
		return Result{"schema_version_known", StatusFail, "_meta.schemaVersion missing", 1}
	}
	for _, known := range KnownSchemaVersions {
		if v == known {
			return Result{"schema_version_known", StatusOK, "schemaVersion " + v + " recognized", 0}
		}
	}
	return Result{"schema_version_known", StatusFail, "_meta.schemaVersion " + v + " unrecognized", 1}
}

func checkRequiredFields(in Input) Result {
	bad := 0
	for _, t := range in.Active.Tasks {
		if t.ID == "" || t.Title == "" || t.Status == "" || t.Priority == "" || t.CreatedAt.IsZero() {
			bad++
		}
	}
	if bad > 0 {
		return Result{"required_fields_present", StatusFail, "task missing a required field", bad}
	}
	return Result{"required_fields_present", StatusOK, "every task has its required fields", 0}
}

func checkFocusMatchesActive(in Input) Result {
	if in.Active.Focus.CurrentTask == "" {
		return Result{"focus_matches_active", StatusOK, "no focus set", 0}
	}
	var activeCount int
	var matches bool
	for _, t := range in.Active.Tasks {
		if t.Status == model.StatusActive {
			activeCount++
			if t.ID == in.Active.Focus.CurrentTask {
				matches = true
			}
		}
	}
	if activeCount == 1 && !matches {
		return Result{"focus_matches_active", StatusFail, "focus.currentTask does not match the single active task", 1}
	}
	return Result{"focus_matches_active", StatusOK, "focus.currentTask is consistent", 0}
}

func checkChecksum(in Input) Result {
	ok, err := store.VerifyChecksum(in.Active.Meta, in.Active.Tasks)
	if err != nil {
		return Result{"checksum_matches", StatusFail, "failed to recompute checksum: " + err.Error(), 1}
	}
	if !ok {
		return Result{"checksum_matches", StatusFail, "stored checksum does not match recomputed value", 1}
	}
	return Result{"checksum_matches", StatusOK, "checksum matches", 0}
}

func checkEverySize(in Input) Result {
	missing := 0
	for _, t := range in.Active.Tasks {
		if t.Size == "" {
			missing++
		}
	}
	if missing > 0 {
		return Result{"every_task_has_size", StatusWarning, "task missing size", missing}
	}
	return Result{"every_task_has_size", StatusOK, "every task has a size", 0}
}

// StaleAfter is how long a task may sit pending before check 14 warns.
const StaleAfter = 30 * 24 * time.Hour

func checkStale(in Input) Result {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	stale := 0
	for _, t := range in.Active.Tasks {
		if t.Status == model.StatusPending && now.Sub(t.CreatedAt) >= StaleAfter {
			stale++
		}
	}
	if stale > 0 {
		return Result{"no_stale_pending", StatusWarning, "task pending 30+ days", stale}
	}
	return Result{"no_stale_pending", StatusOK, "no stale pending tasks", 0}
}

func checkSinglePhaseActive(in Input) Result {
	activeCount := 0
	var activeName string
	for name, p := range in.Active.Project.Phases {
		if p.Status == model.PhaseStatusActive {
			activeCount++
			activeName = name
		}
	}
	if activeCount != 1 {
		return Result{"single_active_phase", StatusFail, "exactly one phase must be active", activeCount}
	}
	if in.Active.Project.CurrentPhase != activeName {
		return Result{"single_active_phase", StatusFail, "currentPhase does not point at the active phase", 1}
	}
	return Result{"single_active_phase", StatusOK, "exactly one active phase, currentPhase consistent", 0}
}

// Failed reports whether any check in results returned StatusFail.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}
