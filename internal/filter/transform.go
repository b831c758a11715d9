package filter

import (
	"fmt"

	"github.com/filtra-labs/filtra/internal/errors"
	"github.com/filtra-labs/filtra/internal/sets"
)

// Mapping is a total function between two universes, represented by the
// target index of every source element. Mappings are immutable.
type Mapping struct {
	from  *sets.Universe
	to    *sets.Universe
	table []int
}

// NewMapping constructs a total mapping from assignments of source element
// names to target element names. Every source element must be assigned, and
// every assignment must land in the target universe.
func NewMapping(from, to *sets.Universe, assign map[string]string) (*Mapping, error) {
	table := make([]int, from.Size())
	for i, name := range from.Elements() {
		target, ok := assign[name]
		if !ok {
			return nil, errors.NewInvalidMapping(name, "no target assigned")
		}
		j, ok := to.Index(target)
		if !ok {
			return nil, errors.NewInvalidMapping(name, fmt.Sprintf("target %q is not in universe %s", target, to))
		}
		table[i] = j
	}
	for name := range assign {
		if !from.Contains(name) {
			return nil, errors.NewInvalidMapping(name, fmt.Sprintf("not an element of source universe %s", from))
		}
	}
	return &Mapping{from: from, to: to, table: table}, nil
}

// Identity returns the identity mapping on a universe.
func Identity(u *sets.Universe) *Mapping {
	table := make([]int, u.Size())
	for i := range table {
		table[i] = i
	}
	return &Mapping{from: u, to: u, table: table}
}

// Compose returns g ∘ f, the mapping applying f first and then g.
// The target universe of f must equal the source universe of g.
func Compose(g, f *Mapping) (*Mapping, error) {
	if !f.to.Equal(g.from) {
		return nil, errors.NewUniverseMismatch("mapping composition", g.from.String(), f.to.String())
	}
	table := make([]int, len(f.table))
	for i, j := range f.table {
		table[i] = g.table[j]
	}
	return &Mapping{from: f.from, to: g.to, table: table}, nil
}

// From returns the source universe.
func (m *Mapping) From() *sets.Universe {
	return m.from
}

// To returns the target universe.
func (m *Mapping) To() *sets.Universe {
	return m.to
}

// Apply returns the target element name for a source element name.
func (m *Mapping) Apply(name string) (string, bool) {
	i, ok := m.from.Index(name)
	if !ok {
		return "", false
	}
	return m.to.Elements()[m.table[i]], true
}

// Image returns the forward image of a subset of the source universe.
func (m *Mapping) Image(s sets.Subset) sets.Subset {
	var out sets.Mask
	for i := range m.table {
		if s.Mask()&(1<<i) != 0 {
			out |= 1 << m.table[i]
		}
	}
	return m.to.SetFromMask(out)
}

// Preimage returns the inverse image of a subset of the target universe.
func (m *Mapping) Preimage(t sets.Subset) sets.Subset {
	var out sets.Mask
	for i, j := range m.table {
		if t.Mask()&(1<<j) != 0 {
			out |= 1 << i
		}
	}
	return m.from.SetFromMask(out)
}

// String renders the mapping as "{a, b} -> {x, y}".
func (m *Mapping) String() string {
	return fmt.Sprintf("%s -> %s", m.from, m.to)
}

// Map returns the pushforward of f along m: the filter over the target
// universe whose members are exactly the sets whose preimage is a member of
// f. Map is monotone in f and functorial in m; Map(m, Principal(S)) equals
// Principal(Image(m, S)).
func Map(m *Mapping, f *Filter) (*Filter, error) {
	if !f.universe.Equal(m.from) {
		return nil, errors.NewUniverseMismatch("map", m.from.String(), f.universe.String())
	}
	members := make(map[sets.Mask]struct{})
	for _, v := range m.to.AllSubsets() {
		if f.Member(m.Preimage(v)) {
			members[v.Mask()] = struct{}{}
		}
	}
	return fromFamily(m.to, members), nil
}

// Comap returns the pullback of g along m: the coarsest filter over the
// source universe whose pushforward lies below g. Its members are the sets
// containing the preimage of some member of g; the least such preimage is
// Preimage(Core(g)). Comap may collapse a non-trivial filter to Bottom when
// the core's preimage is empty.
func Comap(m *Mapping, g *Filter) (*Filter, error) {
	if !g.universe.Equal(m.to) {
		return nil, errors.NewUniverseMismatch("comap", m.to.String(), g.universe.String())
	}
	return fromCore(m.Preimage(g.core)), nil
}
