package graph

import "sort"

// Wave computes wave(t) = max(wave(d)+1 for d in depends ∩ subtree, 0) for
// every task in subtreeIDs, memoized, per spec.md §4.5. g must be built over
// the full active list (dependencies may point outside the subtree; those
// edges are ignored per the "∩ subtree" restriction).
func (g *Graph) Wave(subtreeIDs []string) map[string]int {
	inSubtree := make(map[string]bool, len(subtreeIDs))
	for _, id := range subtreeIDs {
		inSubtree[id] = true
	}
	wave := make(map[string]int, len(subtreeIDs))
	visiting := make(map[string]bool)

	var compute func(id string) int
	compute = func(id string) int {
		if w, ok := wave[id]; ok {
			return w
		}
		if visiting[id] {
			return 0 // defensive: a real cycle is rejected before this ever runs
		}
		visiting[id] = true
		best := 0
		t := g.byID[id]
		if t != nil {
			for _, dep := range t.Depends.Slice() {
				if !inSubtree[dep] {
					continue
				}
				if w := compute(dep) + 1; w > best {
					best = w
				}
			}
		}
		visiting[id] = false
		wave[id] = best
		return best
	}
	for _, id := range subtreeIDs {
		compute(id)
	}
	return wave
}

// WavesByPhase groups subtreeIDs into an ordered sequence of waves (sets of
// task ids executable in parallel) per phase, per spec.md §4.5.
func (g *Graph) WavesByPhase(subtreeIDs []string) map[string][][]string {
	wave := g.Wave(subtreeIDs)
	byPhase := make(map[string]map[int][]string)
	for _, id := range subtreeIDs {
		t := g.byID[id]
		if t == nil {
			continue
		}
		phase := t.Phase
		if byPhase[phase] == nil {
			byPhase[phase] = make(map[int][]string)
		}
		w := wave[id]
		byPhase[phase][w] = append(byPhase[phase][w], id)
	}
	result := make(map[string][][]string, len(byPhase))
	for phase, waves := range byPhase {
		var keys []int
		for w := range waves {
			keys = append(keys, w)
		}
		sort.Ints(keys)
		ordered := make([][]string, 0, len(keys))
		for _, w := range keys {
			ids := waves[w]
			sort.Strings(ids)
			ordered = append(ordered, ids)
		}
		result[phase] = ordered
	}
	return result
}

// CriticalPath returns the longest path by wave depth through the
// dependency DAG restricted to subtreeIDs, and its length (edge count).
func (g *Graph) CriticalPath(subtreeIDs []string) ([]string, int) {
	inSubtree := make(map[string]bool, len(subtreeIDs))
	for _, id := range subtreeIDs {
		inSubtree[id] = true
	}

	// memoized longest chain ending at each id, following depends edges
	// backward from the deepest wave.
	longest := make(map[string][]string)
	var chainTo func(id string) []string
	chainTo = func(id string) []string {
		if c, ok := longest[id]; ok {
			return c
		}
		best := []string{id}
		t := g.byID[id]
		if t != nil {
			for _, dep := range t.Depends.Slice() {
				if !inSubtree[dep] {
					continue
				}
				candidate := append(append([]string(nil), chainTo(dep)...), id)
				if len(candidate) > len(best) {
					best = candidate
				}
			}
		}
		longest[id] = best
		return best
	}

	var overall []string
	for _, id := range subtreeIDs {
		c := chainTo(id)
		if len(c) > len(overall) {
			overall = c
		}
	}
	if overall == nil {
		return nil, 0
	}
	return overall, len(overall) - 1
}
