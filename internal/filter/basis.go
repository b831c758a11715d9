package filter

import (
	"fmt"

	"github.com/filtra-labs/filtra/internal/errors"
	"github.com/filtra-labs/filtra/internal/sets"
)

// Basis is an indexed family of subsets, optionally restricted by a selector
// predicate on indices. A basis generates the filter whose members are
// exactly the sets containing some selected basis element, letting callers
// work with a small generating family instead of the full member family.
type Basis struct {
	universe *sets.Universe
	items    []sets.Subset
	selector func(i int) bool
}

// NewBasis constructs a basis from an indexed family over the universe.
// selector may be nil, in which case every index is selected.
func NewBasis(u *sets.Universe, items []sets.Subset, selector func(i int) bool) (*Basis, error) {
	if len(items) == 0 {
		return nil, errors.NewInvalidWorkspace("basis", "a basis needs at least one item")
	}
	for i, s := range items {
		if !s.Universe().Equal(u) {
			return nil, errors.NewUniverseMismatch(
				fmt.Sprintf("basis item %d", i), u.String(), s.Universe().String())
		}
	}
	copied := make([]sets.Subset, len(items))
	copy(copied, items)
	return &Basis{universe: u, items: copied, selector: selector}, nil
}

// Universe returns the carrier the basis is over.
func (b *Basis) Universe() *sets.Universe {
	return b.universe
}

// Items returns the full indexed family.
func (b *Basis) Items() []sets.Subset {
	out := make([]sets.Subset, len(b.items))
	copy(out, b.items)
	return out
}

// Selected returns the basis elements whose index satisfies the selector.
func (b *Basis) Selected() []sets.Subset {
	var out []sets.Subset
	for i, s := range b.items {
		if b.selector == nil || b.selector(i) {
			out = append(out, s)
		}
	}
	return out
}

// Generates reports the basis membership criterion for a single set:
// s contains some selected basis element.
func (b *Basis) Generates(s sets.Subset) bool {
	if !s.Universe().Equal(b.universe) {
		return false
	}
	for _, item := range b.Selected() {
		if item.IsSubsetOf(s) {
			return true
		}
	}
	return false
}

// Filter generates the filter determined by the basis criterion. The
// selected family must actually generate a filter: at least one index
// selected, and directed enough that the criterion is closed under pairwise
// intersection. Otherwise an ErrAxiomViolation (or an explicit empty-
// selection error) is returned, exactly as direct construction would fail.
func (b *Basis) Filter() (*Filter, error) {
	selected := b.Selected()
	if len(selected) == 0 {
		return nil, errors.NewInvalidWorkspace("basis", "selector rejects every index, so no set generates the filter")
	}
	var family []sets.Subset
	for _, s := range b.universe.AllSubsets() {
		if b.Generates(s) {
			family = append(family, s)
		}
	}
	return FromMembers(b.universe, family)
}
