package session

import (
	"github.com/taskwarden/warden/internal/exitcode"
	"github.com/taskwarden/warden/internal/graph"
	"github.com/taskwarden/warden/internal/model"
)

// ComputeScope resolves a scope declaration to the set of task ids it
// covers. Semantics for each ScopeType (an Open Question spec.md leaves
// unresolved beyond naming the five kinds — see DESIGN.md):
//
//   - epic:      rootTaskId must be an epic; scope is the epic plus every descendant.
//   - subtree:   rootTaskId plus every descendant, regardless of type.
//   - taskGroup: rootTaskId plus every sibling sharing the same parent.
//   - task:      rootTaskId alone.
//   - epicPhase: rootTaskId plus its descendants restricted to scope.Phase
//     (the root need not be an epic).
func ComputeScope(g *graph.Graph, scope model.Scope) ([]string, error) {
	if !scope.Type.Valid() {
		return nil, model.ErrInput("invalid_scope_type", "unknown scope type %q", scope.Type)
	}
	if scope.Type != model.ScopeType("") && scope.RootTaskID == "" {
		return nil, model.ErrInput("scope_root_required", "scope %q requires a root task id", scope.Type)
	}

	root := g.Task(scope.RootTaskID)
	if root == nil {
		return nil, model.ErrNotFound("scope_root_not_found", "scope root task %s not found", scope.RootTaskID)
	}

	switch scope.Type {
	case model.ScopeEpic:
		if root.Type != model.TypeEpic {
			return nil, model.ErrInvariant("scope_root_not_epic", exitcode.ScopeInvalid, "task %s is not an epic", root.ID)
		}
		return append([]string{root.ID}, g.Descendants(root.ID)...), nil

	case model.ScopeSubtree:
		return append([]string{root.ID}, g.Descendants(root.ID)...), nil

	case model.ScopeTaskGroup:
		ids := []string{root.ID}
		if root.ParentID != "" {
			ids = append(ids, g.Children(root.ParentID)...)
		} else {
			ids = append(ids, g.Children("")...)
		}
		return dedupe(ids), nil

	case model.ScopeTask:
		return []string{root.ID}, nil

	case model.ScopeEpicPhase:
		if scope.Phase == "" {
			return nil, model.ErrInput("scope_phase_required", "epicPhase scope requires a phase")
		}
		var ids []string
		for _, id := range append([]string{root.ID}, g.Descendants(root.ID)...) {
			if t := g.Task(id); t != nil && t.Phase == scope.Phase {
				ids = append(ids, id)
			}
		}
		return ids, nil
	}

	return nil, model.ErrInput("invalid_scope_type", "unknown scope type %q", scope.Type)
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Intersects reports whether two scope task-sets share any task.
func Intersects(a, b []string) bool {
	set := make(map[string]bool, len(a))
	for _, id := range a {
		set[id] = true
	}
	for _, id := range b {
		if set[id] {
			return true
		}
	}
	return false
}
