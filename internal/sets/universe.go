// Package sets provides finite carrier universes and immutable subsets of them.
// A Universe is a small, explicitly named carrier; a Subset is a bitmask over it.
//
// Per docs/plan.md: "Finite and decidable. Every universe is a small, explicitly
// named carrier. Every question the tool answers is decided exactly."
package sets

import (
	"fmt"
	"strings"
)

// MaxElements bounds the size of a universe. Family enumeration and axiom
// checking walk all 2^n subsets, so the carrier must stay small.
const MaxElements = 12

// Universe is an ordered carrier of distinct named elements.
// Universes are immutable after construction.
type Universe struct {
	elements []string
	index    map[string]int
}

// NewUniverse creates a universe from the given element names.
// Returns an error if the list is empty, exceeds MaxElements, or contains
// blank or duplicate names.
func NewUniverse(elements ...string) (*Universe, error) {
	if len(elements) == 0 {
		return nil, fmt.Errorf("sets: universe must contain at least one element")
	}
	if len(elements) > MaxElements {
		return nil, fmt.Errorf("sets: universe has %d elements, maximum is %d", len(elements), MaxElements)
	}
	u := &Universe{
		elements: make([]string, len(elements)),
		index:    make(map[string]int, len(elements)),
	}
	for i, name := range elements {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("sets: element %d has a blank name", i)
		}
		if _, dup := u.index[name]; dup {
			return nil, fmt.Errorf("sets: duplicate element name %q", name)
		}
		u.elements[i] = name
		u.index[name] = i
	}
	return u, nil
}

// Size returns the number of elements in the universe.
func (u *Universe) Size() int {
	return len(u.elements)
}

// Elements returns a copy of the element names in carrier order.
func (u *Universe) Elements() []string {
	out := make([]string, len(u.elements))
	copy(out, u.elements)
	return out
}

// Index returns the position of the named element, or false if absent.
func (u *Universe) Index(name string) (int, bool) {
	i, ok := u.index[name]
	return i, ok
}

// Contains reports whether the named element belongs to the universe.
func (u *Universe) Contains(name string) bool {
	_, ok := u.index[name]
	return ok
}

// Equal reports whether two universes have the same elements in the same order.
func (u *Universe) Equal(other *Universe) bool {
	if u == other {
		return true
	}
	if u == nil || other == nil {
		return false
	}
	if len(u.elements) != len(other.elements) {
		return false
	}
	for i, name := range u.elements {
		if other.elements[i] != name {
			return false
		}
	}
	return true
}

// String returns the carrier as "{a, b, c}".
func (u *Universe) String() string {
	return "{" + strings.Join(u.elements, ", ") + "}"
}

// SubsetCount returns the number of subsets of the universe, 2^n.
func (u *Universe) SubsetCount() int {
	return 1 << len(u.elements)
}
