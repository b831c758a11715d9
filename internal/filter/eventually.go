package filter

import (
	"github.com/filtra-labs/filtra/internal/sets"
)

// Eventually reports whether the set of elements satisfying p is a member
// of f: "p holds for all sufficiently f-large elements."
func Eventually(p func(name string) bool, f *Filter) bool {
	return f.Member(f.universe.SetWhere(p))
}

// EventuallySet is Eventually with the predicate given as its element set.
func EventuallySet(p sets.Subset, f *Filter) bool {
	return f.Member(p)
}

// EventuallyWitness returns a member of f certifying Eventually(p, f): a
// member on which p holds everywhere. The least member is the canonical
// witness. The second return is false when Eventually(p, f) does not hold.
func EventuallyWitness(p sets.Subset, f *Filter) (sets.Subset, bool) {
	if !f.Member(p) {
		return sets.Subset{}, false
	}
	return f.core, true
}

// Frequently reports the dual of Eventually: the set of elements violating
// p is not a member of f, so p cannot be excluded by the filter.
func Frequently(p func(name string) bool, f *Filter) bool {
	return !Eventually(func(name string) bool { return !p(name) }, f)
}

// FrequentlySet is Frequently with the predicate given as its element set.
func FrequentlySet(p sets.Subset, f *Filter) bool {
	return !f.Member(p.Complement())
}
