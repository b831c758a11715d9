package sets

import (
	"fmt"
	"math/bits"
	"sort"
	"strings"
)

// Mask is the bit representation of a subset. Bit i corresponds to the
// universe element at index i. MaxElements keeps everything within 16 bits.
type Mask = uint16

// Subset is an immutable subset of a universe.
// Binary operations require both operands to share the same universe;
// callers combining subsets from different sources must check SameUniverse
// first. The filter layer surfaces this as a UniverseMismatch error.
type Subset struct {
	universe *Universe
	mask     Mask
}

// SameUniverse reports whether two subsets are drawn from equal universes.
func SameUniverse(a, b Subset) bool {
	return a.universe.Equal(b.universe)
}

// EmptySet returns the empty subset of the universe.
func (u *Universe) EmptySet() Subset {
	return Subset{universe: u}
}

// FullSet returns the full-carrier subset of the universe.
func (u *Universe) FullSet() Subset {
	return Subset{universe: u, mask: Mask(1<<len(u.elements)) - 1}
}

// SetOf builds a subset from element names.
// Returns an error naming the first element outside the universe.
func (u *Universe) SetOf(names ...string) (Subset, error) {
	var m Mask
	for _, name := range names {
		i, ok := u.index[name]
		if !ok {
			return Subset{}, fmt.Errorf("sets: element %q is not in universe %s", name, u)
		}
		m |= 1 << i
	}
	return Subset{universe: u, mask: m}, nil
}

// SetWhere builds the subset of elements satisfying the predicate.
func (u *Universe) SetWhere(pred func(name string) bool) Subset {
	var m Mask
	for i, name := range u.elements {
		if pred(name) {
			m |= 1 << i
		}
	}
	return Subset{universe: u, mask: m}
}

// SetFromMask builds a subset directly from a bitmask, discarding bits
// beyond the carrier.
func (u *Universe) SetFromMask(m Mask) Subset {
	return Subset{universe: u, mask: m & (Mask(1<<len(u.elements)) - 1)}
}

// AllSubsets enumerates every subset of the universe in mask order.
func (u *Universe) AllSubsets() []Subset {
	n := u.SubsetCount()
	out := make([]Subset, n)
	for m := 0; m < n; m++ {
		out[m] = Subset{universe: u, mask: Mask(m)}
	}
	return out
}

// Universe returns the carrier the subset is drawn from.
func (s Subset) Universe() *Universe {
	return s.universe
}

// Mask returns the bit representation of the subset.
func (s Subset) Mask() Mask {
	return s.mask
}

// Contains reports whether the named element is in the subset.
func (s Subset) Contains(name string) bool {
	i, ok := s.universe.Index(name)
	if !ok {
		return false
	}
	return s.mask&(1<<i) != 0
}

// Size returns the number of elements in the subset.
func (s Subset) Size() int {
	return bits.OnesCount16(s.mask)
}

// IsEmpty reports whether the subset has no elements.
func (s Subset) IsEmpty() bool {
	return s.mask == 0
}

// IsFull reports whether the subset is the whole carrier.
func (s Subset) IsFull() bool {
	return s.mask == s.universe.FullSet().mask
}

// Union returns the union with another subset of the same universe.
func (s Subset) Union(t Subset) Subset {
	return Subset{universe: s.universe, mask: s.mask | t.mask}
}

// Intersect returns the intersection with another subset of the same universe.
func (s Subset) Intersect(t Subset) Subset {
	return Subset{universe: s.universe, mask: s.mask & t.mask}
}

// Complement returns the carrier complement of the subset.
func (s Subset) Complement() Subset {
	return Subset{universe: s.universe, mask: ^s.mask & s.universe.FullSet().mask}
}

// IsSubsetOf reports whether every element of s is in t.
func (s Subset) IsSubsetOf(t Subset) bool {
	return s.mask&^t.mask == 0
}

// Equal reports whether two subsets have the same universe and elements.
func (s Subset) Equal(t Subset) bool {
	return s.universe.Equal(t.universe) && s.mask == t.mask
}

// Elements returns the names of the subset's elements in carrier order.
func (s Subset) Elements() []string {
	out := make([]string, 0, s.Size())
	for i, name := range s.universe.elements {
		if s.mask&(1<<i) != 0 {
			out = append(out, name)
		}
	}
	return out
}

// String returns the subset as "{a, c}".
func (s Subset) String() string {
	return "{" + strings.Join(s.Elements(), ", ") + "}"
}

// SortMasks orders masks ascending; used for deterministic family output.
func SortMasks(masks []Mask) {
	sort.Slice(masks, func(i, j int) bool { return masks[i] < masks[j] })
}
