package model

import (
	"regexp"
	"time"
)

// IDPattern is the canonical task-id format: "T" followed by three or more
// digits. Allocation is monotonic (internal/sequence); this pattern only
// validates shape on load.
var IDPattern = regexp.MustCompile(`^T\d{3,}$`)

// Relation is a typed cross-reference from one task to another.
type Relation struct {
	Type RelationType `json:"type"`
	ID   string       `json:"id"`
}

// FailureEntry records one verification-gate failure.
type FailureEntry struct {
	Round     int       `json:"round"`
	Agent     string    `json:"agent,omitempty"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// Verification is a task's gate map, per spec.md §4.11.
type Verification struct {
	Passed      bool                `json:"passed"`
	Round       int                 `json:"round"`
	Gates       map[GateName]bool   `json:"gates"`
	LastAgent   string              `json:"lastAgent,omitempty"`
	LastUpdated *time.Time          `json:"lastUpdated,omitempty"`
	FailureLog  []FailureEntry      `json:"failureLog,omitempty"`
}

// NewVerification returns the initial (all-gates-unset) verification state.
func NewVerification() Verification {
	return Verification{Gates: make(map[GateName]bool, len(AllGates()))}
}

// Task is the central entity. Field names and semantics follow spec.md §3.
type Task struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Status   Status   `json:"status"`
	Priority Priority `json:"priority"`
	Type     Type     `json:"type"`
	Size     Size     `json:"size,omitempty"`

	ParentID string    `json:"parentId,omitempty"`
	Depends  StringSet `json:"depends,omitempty"`

	Phase string `json:"phase,omitempty"`

	Labels     StringSet `json:"labels,omitempty"`
	Files      StringSet `json:"files,omitempty"`
	Acceptance StringSet `json:"acceptance,omitempty"`
	Notes      []Note    `json:"notes,omitempty"`

	Description         string `json:"description,omitempty"`
	BlockedBy           string `json:"blockedBy,omitempty"`
	CancellationReason  string `json:"cancellationReason,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	Verification Verification `json:"verification"`
	Relates      []Relation   `json:"relates,omitempty"`

	// Archive-only fields, present only once a task has been archived.
	ArchivedAt    *time.Time `json:"archivedAt,omitempty"`
	ArchiveReason string     `json:"archiveReason,omitempty"`
	CycleTimeDays int        `json:"cycleTimeDays,omitempty"`
	SessionID     string     `json:"sessionId,omitempty"`
}

// Note is one entry in a task's append-only notes sequence.
type Note struct {
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
}

// IsArchived reports whether the task carries archive-only fields.
func (t *Task) IsArchived() bool {
	return t.ArchivedAt != nil
}

// AppendNote appends a timestamped note. Notes are append-only by contract;
// callers must never mutate or remove existing entries.
func (t *Task) AppendNote(text string, at time.Time) {
	t.Notes = append(t.Notes, Note{Timestamp: at, Text: text})
}
