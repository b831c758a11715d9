package filter

import (
	"testing"

	"github.com/filtra-labs/filtra/internal/sets"
)

func TestBasis_GeneratesFilterMembership(t *testing.T) {
	u, tail := naturalsWindow(t)

	tails := make([]sets.Subset, 0, 12)
	for n := 0; n < 12; n++ {
		tails = append(tails, u.SetWhere(atLeast(n)))
	}
	basis, err := NewBasis(u, tails, nil)
	if err != nil {
		t.Fatalf("building basis: %v", err)
	}

	// The basis criterion and filter membership must agree on every subset.
	for _, s := range u.AllSubsets() {
		if basis.Generates(s) != tail.Member(s) {
			t.Fatalf("basis criterion and membership disagree on %s", s)
		}
	}
}

func TestBasis_SelectorRestrictsItems(t *testing.T) {
	u := mustUniverse(t, "a", "b", "c")
	items := []sets.Subset{
		mustSet(t, u, "a"),          // index 0: not selected
		mustSet(t, u, "a", "b"),     // index 1: selected
		mustSet(t, u, "a", "b", "c"), // index 2: selected
	}
	basis, err := NewBasis(u, items, func(i int) bool { return i > 0 })
	if err != nil {
		t.Fatalf("building basis: %v", err)
	}
	if len(basis.Selected()) != 2 {
		t.Fatalf("expected 2 selected items, got %d", len(basis.Selected()))
	}

	f, err := basis.Filter()
	if err != nil {
		t.Fatalf("selected chain must generate a filter: %v", err)
	}
	// {a} generates only through the unselected index 0.
	if f.Member(mustSet(t, u, "a")) {
		t.Fatal("{a} must not be a member once index 0 is deselected")
	}
	if !f.Member(mustSet(t, u, "a", "b")) {
		t.Fatal("{a, b} must be a member")
	}
}

func TestBasis_UndirectedFamilyIsRejected(t *testing.T) {
	u := mustUniverse(t, "a", "b")
	// {a} and {b} are disjoint: the criterion is not intersection closed.
	items := []sets.Subset{mustSet(t, u, "a"), mustSet(t, u, "b")}
	basis, err := NewBasis(u, items, nil)
	if err != nil {
		t.Fatalf("building basis: %v", err)
	}
	if _, err := basis.Filter(); err == nil {
		t.Fatal("an undirected basis must fail filter construction")
	}
}

func TestBasis_EmptySelection(t *testing.T) {
	u := mustUniverse(t, "a", "b")
	items := []sets.Subset{mustSet(t, u, "a")}
	basis, err := NewBasis(u, items, func(int) bool { return false })
	if err != nil {
		t.Fatalf("building basis: %v", err)
	}
	if _, err := basis.Filter(); err == nil {
		t.Fatal("a basis whose selector rejects every index must not generate a filter")
	}
}

func TestBasis_ForeignItemRejected(t *testing.T) {
	u := mustUniverse(t, "a", "b")
	other := mustUniverse(t, "x", "y")
	if _, err := NewBasis(u, []sets.Subset{other.FullSet()}, nil); err == nil {
		t.Fatal("a basis item from a different universe must be rejected")
	}
}
