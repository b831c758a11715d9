// Package filter implements filters over finite universes: families of
// subsets containing the full carrier, closed under supersets and pairwise
// intersection. Filters are validated against the three axioms once at
// construction and are immutable afterwards; operations combine filters into
// new filters, never edit them in place.
//
// Per docs/plan.md: "Validate once, immutable forever."
package filter

import (
	"fmt"

	"github.com/filtra-labs/filtra/internal/errors"
	"github.com/filtra-labs/filtra/internal/sets"
)

// Filter is an immutable family of member subsets of a universe satisfying
// the three filter axioms.
type Filter struct {
	universe *sets.Universe
	members  map[sets.Mask]struct{}

	// core is the least member. Over a finite universe the pairwise
	// intersection of all members is itself a member, so it always exists.
	core sets.Subset
}

// New constructs a filter from a membership predicate over subsets.
// Every subset of the universe is offered to the predicate; the resulting
// family must satisfy the three axioms or an ErrAxiomViolation is returned.
func New(u *sets.Universe, member func(sets.Subset) bool) (*Filter, error) {
	var family []sets.Subset
	for _, s := range u.AllSubsets() {
		if member(s) {
			family = append(family, s)
		}
	}
	return FromMembers(u, family)
}

// FromMembers constructs a filter from an explicit member family.
// Returns ErrAxiomViolation naming the violated axiom and a counterexample
// set when the family is not a filter, and ErrUniverseMismatch when a listed
// subset is drawn from a different universe.
func FromMembers(u *sets.Universe, family []sets.Subset) (*Filter, error) {
	members := make(map[sets.Mask]struct{}, len(family))
	for _, s := range family {
		if !s.Universe().Equal(u) {
			return nil, errors.NewUniverseMismatch("filter construction", u.String(), s.Universe().String())
		}
		members[s.Mask()] = struct{}{}
	}

	full := u.FullSet()
	if _, ok := members[full.Mask()]; !ok {
		return nil, errors.NewAxiomViolation(
			errors.AxiomFullMember,
			full.String(),
			fmt.Sprintf("the full carrier %s is not a member", full),
		)
	}

	// Upward closure: every superset of a member is a member. Walk the
	// supersets of each member by enumerating submasks of its complement.
	for m := range members {
		comp := full.Mask() &^ m
		for s := comp; ; s = (s - 1) & comp {
			sup := m | s
			if _, ok := members[sup]; !ok {
				return nil, errors.NewAxiomViolation(
					errors.AxiomUpwardClosure,
					u.SetFromMask(sup).String(),
					fmt.Sprintf("%s is a member but its superset %s is not",
						u.SetFromMask(m), u.SetFromMask(sup)),
				)
			}
			if s == 0 {
				break
			}
		}
	}

	// Intersection closure: with upward closure already established it is
	// enough to intersect pairs of minimal members.
	minimal := minimalMasks(members)
	for i, a := range minimal {
		for _, b := range minimal[i+1:] {
			inter := a & b
			if _, ok := members[inter]; !ok {
				return nil, errors.NewAxiomViolation(
					errors.AxiomIntersectionClosure,
					u.SetFromMask(inter).String(),
					fmt.Sprintf("%s and %s are members but their intersection %s is not",
						u.SetFromMask(a), u.SetFromMask(b), u.SetFromMask(inter)),
				)
			}
		}
	}

	return fromFamily(u, members), nil
}

// fromFamily builds a filter from a family already known to satisfy the
// axioms. Derived operations (principal, meet, join, map, comap) construct
// families that are filters by theorem and skip revalidation.
func fromFamily(u *sets.Universe, members map[sets.Mask]struct{}) *Filter {
	core := u.FullSet().Mask()
	for m := range members {
		core &= m
	}
	return &Filter{
		universe: u,
		members:  members,
		core:     u.SetFromMask(core),
	}
}

// fromCore builds the filter whose members are exactly the supersets of core.
func fromCore(core sets.Subset) *Filter {
	u := core.Universe()
	full := u.FullSet().Mask()
	comp := full &^ core.Mask()
	members := make(map[sets.Mask]struct{})
	for s := comp; ; s = (s - 1) & comp {
		members[core.Mask()|s] = struct{}{}
		if s == 0 {
			break
		}
	}
	return &Filter{universe: u, members: members, core: core}
}

// minimalMasks returns the members with no proper member subset.
func minimalMasks(members map[sets.Mask]struct{}) []sets.Mask {
	var minimal []sets.Mask
	for m := range members {
		isMin := true
		for n := range members {
			if n != m && n&m == n {
				isMin = false
				break
			}
		}
		if isMin {
			minimal = append(minimal, m)
		}
	}
	sets.SortMasks(minimal)
	return minimal
}

// Principal returns the filter of all supersets of s.
func Principal(s sets.Subset) *Filter {
	return fromCore(s)
}

// Top returns the filter containing only the full carrier.
func Top(u *sets.Universe) *Filter {
	return fromCore(u.FullSet())
}

// Bottom returns the trivial filter, with every subset a member.
func Bottom(u *sets.Universe) *Filter {
	return fromCore(u.EmptySet())
}

// Universe returns the carrier the filter is over.
func (f *Filter) Universe() *sets.Universe {
	return f.universe
}

// Member reports whether s belongs to the filter. A subset drawn from a
// different universe is never a member.
func (f *Filter) Member(s sets.Subset) bool {
	if !s.Universe().Equal(f.universe) {
		return false
	}
	_, ok := f.members[s.Mask()]
	return ok
}

// MemberCount returns the number of member sets.
func (f *Filter) MemberCount() int {
	return len(f.members)
}

// Members returns the member family in ascending mask order.
func (f *Filter) Members() []sets.Subset {
	masks := make([]sets.Mask, 0, len(f.members))
	for m := range f.members {
		masks = append(masks, m)
	}
	sets.SortMasks(masks)
	out := make([]sets.Subset, len(masks))
	for i, m := range masks {
		out[i] = f.universe.SetFromMask(m)
	}
	return out
}

// Core returns the least member of the filter.
func (f *Filter) Core() sets.Subset {
	return f.core
}

// MinimalMembers returns the members with no proper member subset.
// For a filter over a finite universe this is always the singleton {Core}.
func (f *Filter) MinimalMembers() []sets.Subset {
	masks := minimalMasks(f.members)
	out := make([]sets.Subset, len(masks))
	for i, m := range masks {
		out[i] = f.universe.SetFromMask(m)
	}
	return out
}

// IsTrivial reports whether the filter is the bottom element: the empty set
// is a member, which by upward closure forces every subset to be a member.
func (f *Filter) IsTrivial() bool {
	return f.Member(f.universe.EmptySet())
}

// IsPrincipalOf reports whether the filter is exactly the supersets of s.
func (f *Filter) IsPrincipalOf(s sets.Subset) bool {
	return s.Universe().Equal(f.universe) && f.core.Equal(s)
}

// Equal reports extensional equality: same universe, same member family.
func (f *Filter) Equal(other *Filter) bool {
	if f == other {
		return true
	}
	if f == nil || other == nil {
		return false
	}
	if !f.universe.Equal(other.universe) || len(f.members) != len(other.members) {
		return false
	}
	for m := range f.members {
		if _, ok := other.members[m]; !ok {
			return false
		}
	}
	return true
}

// String renders the filter by its universe, member count, and core.
func (f *Filter) String() string {
	return fmt.Sprintf("filter over %s (%d members, core %s)", f.universe, len(f.members), f.core)
}
