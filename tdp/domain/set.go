package domain

import (
	"sort"
	"strings"
)

// ElementID is an opaque, byte-stable key identifying a spectrum element.
type ElementID = string

// ElementSet is an unordered set of element ids. The zero value is an
// empty, usable set.
type ElementSet map[ElementID]struct{}

// NewElementSet builds a set from the given ids.
func NewElementSet(ids ...ElementID) ElementSet {
	s := make(ElementSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is a member of s.
func (s ElementSet) Contains(id ElementID) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id into s.
func (s ElementSet) Add(id ElementID) {
	s[id] = struct{}{}
}

// Clone returns an independent copy of s.
func (s ElementSet) Clone() ElementSet {
	c := make(ElementSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Sorted returns the set's members in ascending lexicographic order.
func (s ElementSet) Sorted() []ElementID {
	out := make([]ElementID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Key returns a canonical string uniquely identifying s's membership,
// independent of insertion order. Used as a map key for set-valued
// equality (diagnoses are equal iff their component sets are equal).
func (s ElementSet) Key() string {
	return strings.Join(s.Sorted(), "\x1f")
}

// Intersect returns the elements present in both s and other.
func (s ElementSet) Intersect(other ElementSet) ElementSet {
	out := make(ElementSet)
	small, big := s, other
	if len(other) < len(s) {
		small, big = other, s
	}
	for id := range small {
		if big.Contains(id) {
			out.Add(id)
		}
	}
	return out
}

// Union returns the elements present in either s or other.
func (s ElementSet) Union(other ElementSet) ElementSet {
	out := make(ElementSet, len(s)+len(other))
	for id := range s {
		out.Add(id)
	}
	for id := range other {
		out.Add(id)
	}
	return out
}

// IsSubsetOf reports whether every member of s is also a member of other.
func (s ElementSet) IsSubsetOf(other ElementSet) bool {
	if len(s) > len(other) {
		return false
	}
	for id := range s {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// Equal reports whether s and other contain exactly the same elements.
func (s ElementSet) Equal(other ElementSet) bool {
	if len(s) != len(other) {
		return false
	}
	return s.IsSubsetOf(other)
}
