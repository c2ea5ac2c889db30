package mutate

import (
	"github.com/taskwarden/warden/internal/exitcode"
	"github.com/taskwarden/warden/internal/graph"
	"github.com/taskwarden/warden/internal/model"
	"github.com/taskwarden/warden/internal/sequence"
)

// AddOptions carries add(title, opts) from spec.md §4.7.
type AddOptions struct {
	Priority    model.Priority
	Type        model.Type
	Size        model.Size
	Parent      string
	Phase       string
	AddPhase    bool // allow an unknown phase, per --add-phase
	Depends     []string
	Labels      []string
	Description string
	Status      model.Status // defaults to pending
}

// Add allocates a new task id, validates every precondition spec.md §4.7
// names, and appends the task to the active store.
func (tx *Transaction) Add(alloc *sequence.Allocator, title string, opts AddOptions) (string, error) {
	active, release, err := tx.loadActive()
	if err != nil {
		return "", err
	}
	defer release()

	now := tx.now()

	if opts.Phase != "" && !opts.AddPhase {
		if _, ok := active.Project.Phases[opts.Phase]; !ok {
			return "", model.ErrInput("unknown_phase", "phase %q does not exist; use --add-phase to create it", opts.Phase)
		}
	}

	for _, t := range active.Tasks {
		if t.Title == title {
			// a duplicate title is not an error; Add does not report it and
			// no other check in this module flags it either.
			break
		}
	}

	g := graph.New(active.Tasks)
	for _, d := range opts.Depends {
		if g.Task(d) == nil {
			return "", model.ErrNotFound("dependency_not_found", "dependency %s does not exist", d)
		}
	}

	if opts.Parent != "" {
		if err := g.ValidateDepth(opts.Parent); err != nil {
			return "", err
		}
		if err := g.ValidateSiblings(opts.Parent); err != nil {
			return "", err
		}
	}

	taskType := opts.Type
	if opts.Parent != "" {
		parent := g.Task(opts.Parent)
		if parent == nil {
			return "", model.ErrNotFound("parent_not_found", "parent %s not found", opts.Parent)
		}
		inferred, err := inferChildType(parent.Type)
		if err != nil {
			return "", err
		}
		if taskType == "" {
			taskType = inferred
		}
		if err := g.ValidateParentType(opts.Parent, taskType); err != nil {
			return "", err
		}
	}
	if taskType == "" {
		taskType = model.TypeTask
	}

	status := opts.Status
	if status == "" {
		status = model.StatusPending
	}
	if status == model.StatusActive {
		if err := enforceSingleActive(active.Tasks, ""); err != nil {
			return "", err
		}
	}

	id, err := alloc.Next(now)
	if err != nil {
		return "", err
	}

	priority := opts.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	t := &model.Task{
		ID:          id,
		Title:       title,
		Status:      status,
		Priority:    priority,
		Type:        taskType,
		Size:        opts.Size,
		ParentID:    opts.Parent,
		Depends:     model.NewStringSet(opts.Depends...),
		Phase:       opts.Phase,
		Labels:      model.NewStringSet(opts.Labels...),
		Description: opts.Description,
		CreatedAt:   now,
		Verification: model.NewVerification(),
	}
	active.Tasks = append(active.Tasks, t)

	if opts.AddPhase && opts.Phase != "" {
		if _, ok := active.Project.Phases[opts.Phase]; !ok {
			if active.Project.Phases == nil {
				active.Project.Phases = make(map[string]*model.Phase)
			}
			active.Project.Phases[opts.Phase] = &model.Phase{Name: opts.Phase, Status: model.PhaseStatusPending}
		}
	}

	if err := tx.saveActive(active, model.AuditEntry{
		Action: "task.add", TaskID: id, After: t,
	}); err != nil {
		return "", err
	}
	return id, nil
}

func inferChildType(parentType model.Type) (model.Type, error) {
	switch parentType {
	case model.TypeEpic:
		return model.TypeTask, nil
	case model.TypeTask:
		return model.TypeSubtask, nil
	default:
		return "", model.ErrInvariant("invalid_parent_type", exitcode.InvalidParentType, "type %s cannot have children", parentType)
	}
}

// enforceSingleActive returns an error if any task other than excludeID is
// already active.
func enforceSingleActive(tasks []*model.Task, excludeID string) error {
	for _, t := range tasks {
		if t.ID != excludeID && t.Status == model.StatusActive {
			return model.ErrInvariant("single_active_violation", exitcode.ValidationError,
				"task %s is already active; only one task may be active at a time", t.ID)
		}
	}
	return nil
}
