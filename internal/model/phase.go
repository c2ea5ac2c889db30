package model

import (
	"regexp"
	"time"
)

// PhaseSlugPattern validates phase keys per spec.md §3.
var PhaseSlugPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Phase is a named, ordered stage of the project.
type Phase struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Order       int         `json:"order"`
	Status      PhaseStatus `json:"status"`
	StartedAt   *time.Time  `json:"startedAt,omitempty"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
}

// PhaseTransitionType distinguishes history-entry kinds.
type PhaseTransitionType string

const (
	PhaseTransitionStarted    PhaseTransitionType = "started"
	PhaseTransitionCompleted  PhaseTransitionType = "completed"
	PhaseTransitionSet        PhaseTransitionType = "set"
	PhaseTransitionRolledBack PhaseTransitionType = "rolled-back"
	PhaseTransitionRenamed    PhaseTransitionType = "renamed"
	PhaseTransitionDeleted    PhaseTransitionType = "deleted"
)

// PhaseHistoryEntry is one append-only record of a phase transition.
type PhaseHistoryEntry struct {
	Phase          string              `json:"phase"`
	TransitionType PhaseTransitionType `json:"transitionType"`
	Timestamp      time.Time           `json:"timestamp"`
	TaskCount      int                 `json:"taskCount"`
	FromPhase      string              `json:"fromPhase,omitempty"`
	Reason         string              `json:"reason,omitempty"`
}

// ProjectState is the project-level record: name, current phase pointer,
// the phase map, and phase history.
type ProjectState struct {
	Name          string                       `json:"name"`
	CurrentPhase  string                       `json:"currentPhase,omitempty"`
	Phases        map[string]*Phase            `json:"phases"`
	PhaseHistory  []PhaseHistoryEntry          `json:"phaseHistory,omitempty"`
}

// Focus is the pointer to the task currently being worked.
type Focus struct {
	CurrentTask  string `json:"currentTask,omitempty"`
	CurrentPhase string `json:"currentPhase,omitempty"`
	SessionNote  string `json:"sessionNote,omitempty"`
	NextAction   string `json:"nextAction,omitempty"`
}

// StoreMeta is the per-file metadata block embedded in each of the four
// main persistent files.
type StoreMeta struct {
	SchemaVersion string    `json:"schemaVersion"`
	Checksum      string    `json:"checksum"`
	LastModified  time.Time `json:"lastModified"`
	ActiveSession string    `json:"activeSession,omitempty"`
}

// ActiveStore is the contents of todo.json: the active tasks plus project
// and focus state.
type ActiveStore struct {
	Meta    StoreMeta    `json:"_meta"`
	Tasks   []*Task      `json:"tasks"`
	Project ProjectState `json:"project"`
	Focus   Focus        `json:"focus"`
}

// ArchiveStore is the contents of todo-archive.json.
type ArchiveStore struct {
	Meta          StoreMeta `json:"_meta"`
	ArchivedTasks []*Task   `json:"archivedTasks"`
}

// AuditEntry is one line of the append-only audit log.
type AuditEntry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	SessionID string         `json:"sessionId,omitempty"`
	Action    string         `json:"action"`
	Actor     string         `json:"actor"`
	TaskID    string         `json:"taskId,omitempty"`
	Before    any            `json:"before,omitempty"`
	After     any            `json:"after,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// SequenceFile is the contents of .sequence.
type SequenceFile struct {
	Counter  int    `json:"counter"`
	Checksum string `json:"checksum"`
}
