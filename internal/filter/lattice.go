package filter

import (
	"github.com/filtra-labs/filtra/internal/errors"
	"github.com/filtra-labs/filtra/internal/sets"
)

// The filters over a fixed universe form a complete lattice under Leq, with
// Bottom (every set a member) at the bottom and Top (only the full carrier)
// at the top. Meet is the greatest lower bound and Join the least upper
// bound; MeetAll and JoinAll generalize to arbitrary finite collections.

// Leq reports whether a ≤ b: every member of b is a member of a.
// Returns ErrUniverseMismatch when the filters are over different universes.
func Leq(a, b *Filter) (bool, error) {
	if !a.universe.Equal(b.universe) {
		return false, errors.NewUniverseMismatch("leq", a.universe.String(), b.universe.String())
	}
	for m := range b.members {
		if _, ok := a.members[m]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// Meet returns the greatest lower bound of a and b: the filter whose members
// are exactly the sets containing an intersection of a member of a with a
// member of b. The least such intersection is Core(a) ∩ Core(b), so the meet
// is the filter of its supersets.
func Meet(a, b *Filter) (*Filter, error) {
	if !a.universe.Equal(b.universe) {
		return nil, errors.NewUniverseMismatch("meet", a.universe.String(), b.universe.String())
	}
	return fromCore(a.core.Intersect(b.core)), nil
}

// Join returns the least upper bound of a and b: the filter whose members
// are exactly the common members of a and b.
func Join(a, b *Filter) (*Filter, error) {
	if !a.universe.Equal(b.universe) {
		return nil, errors.NewUniverseMismatch("join", a.universe.String(), b.universe.String())
	}
	common := make(map[sets.Mask]struct{})
	for m := range a.members {
		if _, ok := b.members[m]; ok {
			common[m] = struct{}{}
		}
	}
	return fromFamily(a.universe, common), nil
}

// MeetAll returns the greatest lower bound of a collection of filters over
// the given universe. The empty meet is Top.
func MeetAll(u *sets.Universe, filters ...*Filter) (*Filter, error) {
	acc := Top(u)
	for _, f := range filters {
		var err error
		acc, err = Meet(acc, f)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// JoinAll returns the least upper bound of a collection of filters over the
// given universe. The empty join is Bottom.
func JoinAll(u *sets.Universe, filters ...*Filter) (*Filter, error) {
	acc := Bottom(u)
	for _, f := range filters {
		var err error
		acc, err = Join(acc, f)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}
