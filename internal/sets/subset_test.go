package sets

import (
	"testing"
)

func TestSubset_Construction(t *testing.T) {
	u, _ := NewUniverse("a", "b", "c", "d")

	s, err := u.SetOf("a", "c")
	if err != nil {
		t.Fatalf("expected subset to build, got error: %v", err)
	}
	if s.Size() != 2 || !s.Contains("a") || !s.Contains("c") || s.Contains("b") {
		t.Fatalf("unexpected membership in %s", s)
	}

	if _, err := u.SetOf("a", "e"); err == nil {
		t.Fatal("expected element outside the universe to be rejected")
	}

	even := u.SetWhere(func(name string) bool { return name == "a" || name == "c" })
	if !even.Equal(s) {
		t.Fatalf("SetWhere should agree with SetOf: %s vs %s", even, s)
	}
}

func TestSubset_Algebra(t *testing.T) {
	u, _ := NewUniverse("a", "b", "c")
	ab, _ := u.SetOf("a", "b")
	bc, _ := u.SetOf("b", "c")
	b, _ := u.SetOf("b")

	if got := ab.Intersect(bc); !got.Equal(b) {
		t.Fatalf("expected {b}, got %s", got)
	}
	if got := ab.Union(bc); !got.IsFull() {
		t.Fatalf("expected full carrier, got %s", got)
	}
	if got := ab.Complement(); !got.Equal(mustSet(t, u, "c")) {
		t.Fatalf("expected {c}, got %s", got)
	}
	if !b.IsSubsetOf(ab) || ab.IsSubsetOf(b) {
		t.Fatal("IsSubsetOf is wrong")
	}
	if !u.EmptySet().IsEmpty() || u.EmptySet().IsFull() {
		t.Fatal("empty set misclassified")
	}
}

func TestSubset_AllSubsets(t *testing.T) {
	u, _ := NewUniverse("a", "b", "c")
	all := u.AllSubsets()
	if len(all) != 8 {
		t.Fatalf("expected 8 subsets, got %d", len(all))
	}
	if !all[0].IsEmpty() {
		t.Fatal("first enumerated subset must be empty")
	}
	if !all[len(all)-1].IsFull() {
		t.Fatal("last enumerated subset must be the full carrier")
	}
}

func TestSubset_SameUniverse(t *testing.T) {
	u1, _ := NewUniverse("a", "b")
	u2, _ := NewUniverse("x", "y")
	s1, _ := u1.SetOf("a")
	s2, _ := u2.SetOf("x")

	if SameUniverse(s1, s2) {
		t.Fatal("subsets of different universes must not report the same universe")
	}
	if s1.Equal(s2) {
		t.Fatal("cross-universe subsets must never be equal")
	}
}

func mustSet(t *testing.T, u *Universe, names ...string) Subset {
	t.Helper()
	s, err := u.SetOf(names...)
	if err != nil {
		t.Fatalf("building set %v: %v", names, err)
	}
	return s
}
