package model

import (
	"time"
)

// TaskBuilder constructs a Task while enforcing the field-level invariants
// from spec.md §3/§4.4: title length, enum membership, and conditional
// required fields (blockedBy for blocked, completedAt for done,
// cancelledAt+cancellationReason for cancelled). It does not enforce
// cross-entity invariants (hierarchy, dependency, uniqueness) — those
// belong to internal/graph and internal/validate, which see the whole
// store.
//
// Modeled on Phase.Validate()'s shape in TaskWing's internal/task/models.go:
// one Validate() pass, one error per call rather than an accumulating list,
// since callers (mutators) abort on the first problem anyway.
type TaskBuilder struct {
	task Task
	err  error
}

// NewTaskBuilder starts building a task with the given id and title.
func NewTaskBuilder(id, title string) *TaskBuilder {
	b := &TaskBuilder{task: Task{
		ID:           id,
		Title:        title,
		Status:       StatusPending,
		Priority:     PriorityMedium,
		Verification: NewVerification(),
		Depends:      NewStringSet(),
		Labels:       NewStringSet(),
		Files:        NewStringSet(),
		Acceptance:   NewStringSet(),
	}}
	if !IDPattern.MatchString(id) {
		b.fail(ErrInput("invalid_id", "task id %q does not match T\\d{3,}", id))
	}
	if l := len(title); l < 3 || l > 200 {
		b.fail(ErrInput("invalid_title", "title length %d outside [3,200]", l))
	}
	return b
}

func (b *TaskBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *TaskBuilder) Status(s Status) *TaskBuilder {
	if !s.Valid() {
		b.fail(invalidEnum("status", string(s)))
		return b
	}
	b.task.Status = s
	return b
}

func (b *TaskBuilder) Priority(p Priority) *TaskBuilder {
	if !p.Valid() {
		b.fail(invalidEnum("priority", string(p)))
		return b
	}
	b.task.Priority = p
	return b
}

func (b *TaskBuilder) Type(t Type) *TaskBuilder {
	if t != "" && !t.Valid() {
		b.fail(invalidEnum("type", string(t)))
		return b
	}
	b.task.Type = t
	return b
}

func (b *TaskBuilder) Size(s Size) *TaskBuilder {
	if s != "" && !s.Valid() {
		b.fail(invalidEnum("size", string(s)))
		return b
	}
	b.task.Size = s
	return b
}

func (b *TaskBuilder) Parent(id string) *TaskBuilder {
	b.task.ParentID = id
	return b
}

func (b *TaskBuilder) Phase(slug string) *TaskBuilder {
	b.task.Phase = slug
	return b
}

func (b *TaskBuilder) Depends(ids ...string) *TaskBuilder {
	for _, id := range ids {
		b.task.Depends.Add(id)
	}
	return b
}

func (b *TaskBuilder) Labels(labels ...string) *TaskBuilder {
	for _, l := range labels {
		b.task.Labels.Add(l)
	}
	return b
}

func (b *TaskBuilder) Description(d string) *TaskBuilder {
	b.task.Description = d
	return b
}

func (b *TaskBuilder) BlockedBy(reason string) *TaskBuilder {
	b.task.BlockedBy = reason
	return b
}

func (b *TaskBuilder) CancellationReason(reason string) *TaskBuilder {
	b.task.CancellationReason = reason
	return b
}

func (b *TaskBuilder) CreatedAt(t time.Time) *TaskBuilder {
	b.task.CreatedAt = t
	return b
}

// Build validates the conditional-required fields and returns the task.
func (b *TaskBuilder) Build() (*Task, error) {
	if b.err != nil {
		return nil, b.err
	}
	t := b.task
	if t.CreatedAt.IsZero() {
		b.fail(ErrInput("missing_created_at", "createdAt is required"))
		return nil, b.err
	}
	if t.Status == StatusBlocked && t.BlockedBy == "" {
		return nil, ErrInput("missing_blocked_by", "status=blocked requires blockedBy")
	}
	if t.Status == StatusDone && t.CompletedAt == nil {
		return nil, ErrInput("missing_completed_at", "status=done requires completedAt")
	}
	if t.Status == StatusCancelled && (t.CancelledAt == nil || t.CancellationReason == "") {
		return nil, ErrInput("missing_cancellation_fields", "status=cancelled requires cancelledAt and cancellationReason")
	}
	if t.Type == TypeSubtask && t.ParentID == "" {
		return nil, ErrInput("subtask_requires_parent", "subtasks must have a parentId")
	}
	return &t, nil
}
