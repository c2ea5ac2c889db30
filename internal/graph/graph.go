// Package graph computes hierarchy and dependency relationships over the
// active task list. Per spec.md §9's redesign flag, tasks never carry
// in-memory back-pointers — a Graph builds its adjacency views on demand
// from the flat task list handed to it, and is discarded once the caller is
// done with it.
package graph

import (
	"github.com/taskwarden/warden/internal/exitcode"
	"github.com/taskwarden/warden/internal/model"
)

// MaxDepth is the maximum hierarchy depth: epic(1) -> task(2) -> subtask(3).
const MaxDepth = 3

// MaxSiblings is the maximum number of direct children one parent may have.
const MaxSiblings = 7

// Graph is a read-only view over one task list's hierarchy and dependency
// edges, indexed once at construction.
type Graph struct {
	byID     map[string]*model.Task
	children map[string][]string // parentId -> child ids, insertion order
}

// New builds a Graph over tasks.
func New(tasks []*model.Task) *Graph {
	g := &Graph{
		byID:     make(map[string]*model.Task, len(tasks)),
		children: make(map[string][]string),
	}
	for _, t := range tasks {
		g.byID[t.ID] = t
	}
	for _, t := range tasks {
		if t.ParentID != "" {
			g.children[t.ParentID] = append(g.children[t.ParentID], t.ID)
		}
	}
	return g
}

// Task returns the task with id, or nil if unknown.
func (g *Graph) Task(id string) *model.Task { return g.byID[id] }

// Children returns id's direct children, in insertion order.
func (g *Graph) Children(id string) []string {
	return append([]string(nil), g.children[id]...)
}

// Descendants returns every task transitively parented by id, via BFS.
func (g *Graph) Descendants(id string) []string {
	var out []string
	queue := append([]string(nil), g.children[id]...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)
		queue = append(queue, g.children[cur]...)
	}
	return out
}

// ParentChain returns id's ancestors, nearest first, root last.
func (g *Graph) ParentChain(id string) []string {
	var chain []string
	cur := g.byID[id]
	seen := map[string]bool{id: true}
	for cur != nil && cur.ParentID != "" {
		if seen[cur.ParentID] {
			break // defensive: a cycle should never exist, but never loop forever
		}
		chain = append(chain, cur.ParentID)
		seen[cur.ParentID] = true
		cur = g.byID[cur.ParentID]
	}
	return chain
}

// Depth returns id's 1-indexed depth: a root task (no parent) has depth 1.
func (g *Graph) Depth(id string) int {
	return len(g.ParentChain(id)) + 1
}

// ValidateDepth fails if a new child of parentID would exceed MaxDepth.
// An empty parentID (a new root task) always passes.
func (g *Graph) ValidateDepth(parentID string) error {
	if parentID == "" {
		return nil
	}
	if _, ok := g.byID[parentID]; !ok {
		return model.ErrInvariant("parent_not_found", exitcode.ParentNotFound,
			"parent task %q not found", parentID)
	}
	if g.Depth(parentID)+1 > MaxDepth {
		return model.ErrInvariant("max_depth_exceeded", exitcode.MaxDepthExceeded,
			"adding a child of %s would exceed max depth %d", parentID, MaxDepth)
	}
	return nil
}

// ValidateSiblings fails if a new child of parentID would exceed MaxSiblings.
func (g *Graph) ValidateSiblings(parentID string) error {
	if parentID == "" {
		return nil
	}
	if len(g.children[parentID])+1 > MaxSiblings {
		return model.ErrInvariant("max_siblings_exceeded", exitcode.MaxSiblings,
			"adding a child of %s would exceed max siblings %d", parentID, MaxSiblings)
	}
	return nil
}

// ValidateParentType fails if parentID's type cannot host children of
// childType: epic -> task -> subtask only, never the reverse or a skip.
func (g *Graph) ValidateParentType(parentID string, childType model.Type) error {
	if parentID == "" {
		return nil
	}
	parent, ok := g.byID[parentID]
	if !ok {
		return model.ErrInvariant("parent_not_found", exitcode.ParentNotFound,
			"parent task %q not found", parentID)
	}
	switch parent.Type {
	case model.TypeEpic:
		if childType != model.TypeTask {
			return invalidParentType(parentID, parent.Type, childType)
		}
	case model.TypeTask:
		if childType != model.TypeSubtask {
			return invalidParentType(parentID, parent.Type, childType)
		}
	default:
		return invalidParentType(parentID, parent.Type, childType)
	}
	return nil
}

func invalidParentType(parentID string, parentType, childType model.Type) error {
	return model.ErrInvariant("invalid_parent_type", exitcode.InvalidParentType,
		"a %s cannot parent a %s (parent %s)", parentType, childType, parentID)
}

// DependencyCycle reports whether adding the edge from->to (from depends on
// to) would close a cycle, via DFS from to back toward from.
func (g *Graph) DependencyCycle(tasks []*model.Task, from, to string) bool {
	dependsOn := make(map[string][]string, len(tasks))
	for _, t := range tasks {
		dependsOn[t.ID] = t.Depends.Slice()
	}
	if from == to {
		return true
	}
	visited := map[string]bool{}
	var dfs func(id string) bool
	dfs = func(id string) bool {
		if id == from {
			return true
		}
		if visited[id] {
			return false
		}
		visited[id] = true
		for _, dep := range dependsOn[id] {
			if dfs(dep) {
				return true
			}
		}
		return false
	}
	return dfs(to)
}

// LCA returns the lowest common ancestor of a and b, or "" if none.
func (g *Graph) LCA(a, b string) string {
	ancestorsA := map[string]int{a: 0}
	for i, id := range g.ParentChain(a) {
		ancestorsA[id] = i + 1
	}
	if _, ok := ancestorsA[b]; ok {
		return b
	}
	for _, id := range g.ParentChain(b) {
		if _, ok := ancestorsA[id]; ok {
			return id
		}
	}
	return ""
}

// TreeDistance returns the number of hierarchy edges between a and b via
// their LCA, or -1 if they share no ancestor.
func (g *Graph) TreeDistance(a, b string) int {
	lca := g.LCA(a, b)
	if lca == "" {
		return -1
	}
	distTo := func(id string) int {
		if id == lca {
			return 0
		}
		for i, anc := range g.ParentChain(id) {
			if anc == lca {
				return i + 1
			}
		}
		return -1
	}
	da, db := distTo(a), distTo(b)
	if da < 0 || db < 0 {
		return -1
	}
	return da + db
}
