package model

import (
	"encoding/json"
	"sort"
)

// StringSet is an unordered set of strings that marshals to and from a
// sorted JSON array, so on-disk files stay stable and diffable across
// writers. Grounded on the slice-based collections in
// libs/project/state/collections.go, generalized from a typed slice to a
// set since spec.md defines depends/labels/files/acceptance as sets.
type StringSet map[string]struct{}

// NewStringSet builds a StringSet from the given members.
func NewStringSet(members ...string) StringSet {
	s := make(StringSet, len(members))
	for _, m := range members {
		s[m] = struct{}{}
	}
	return s
}

// Add inserts v into the set.
func (s StringSet) Add(v string) {
	s[v] = struct{}{}
}

// Remove deletes v from the set.
func (s StringSet) Remove(v string) {
	delete(s, v)
}

// Has reports whether v is a member.
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Slice returns the members in sorted order.
func (s StringSet) Slice() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of members.
func (s StringSet) Len() int { return len(s) }

// Clone returns a shallow copy.
func (s StringSet) Clone() StringSet {
	out := make(StringSet, len(s))
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

// UnmarshalJSON decodes from a JSON array.
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	set := make(StringSet, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	*s = set
	return nil
}
