// Per docs/test.md: "Red-Flag tests assert that the system REFUSES to
// execute behavior that violates a stated invariant."
package redflag

import (
	stderrors "errors"
	"testing"

	ferrors "github.com/filtra-labs/filtra/internal/errors"
	"github.com/filtra-labs/filtra/internal/filter"
	"github.com/filtra-labs/filtra/internal/sets"
)

func universe(t *testing.T, elements ...string) *sets.Universe {
	t.Helper()
	u, err := sets.NewUniverse(elements...)
	if err != nil {
		t.Fatalf("NewUniverse() error: %v", err)
	}
	return u
}

func set(t *testing.T, u *sets.Universe, elements ...string) sets.Subset {
	t.Helper()
	s, err := u.SetOf(elements...)
	if err != nil {
		t.Fatalf("SetOf() error: %v", err)
	}
	return s
}

// TestConstructionRefusesAxiomViolations tests that every family breaking
// one of the three filter axioms is refused with the violated axiom named.
func TestConstructionRefusesAxiomViolations(t *testing.T) {
	u := universe(t, "a", "b", "c")

	tests := []struct {
		name   string
		family []sets.Subset
		axiom  ferrors.Axiom
	}{
		{
			name:   "full carrier missing",
			family: []sets.Subset{},
			axiom:  ferrors.AxiomFullMember,
		},
		{
			name: "superset missing",
			family: []sets.Subset{
				set(t, u, "a", "b", "c"),
				set(t, u, "a"),
			},
			axiom: ferrors.AxiomUpwardClosure,
		},
		{
			name: "intersection missing",
			family: []sets.Subset{
				set(t, u, "a", "b", "c"),
				set(t, u, "a", "b"),
				set(t, u, "b", "c"),
				set(t, u, "a", "c"),
			},
			axiom: ferrors.AxiomIntersectionClosure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := filter.FromMembers(u, tt.family)
			var violation *ferrors.ErrAxiomViolation
			if !stderrors.As(err, &violation) {
				t.Fatalf("FromMembers() = %v, want ErrAxiomViolation", err)
			}
			if violation.Axiom != tt.axiom {
				t.Errorf("axiom = %s, want %s", violation.Axiom, tt.axiom)
			}
			if violation.Counterexample == "" {
				t.Error("violation has no counterexample")
			}
		})
	}
}

// TestAxiomViolationIsActionable tests that the refusal explains itself.
func TestAxiomViolationIsActionable(t *testing.T) {
	u := universe(t, "a", "b")
	_, err := filter.FromMembers(u, []sets.Subset{set(t, u, "a")})

	fe, ok := ferrors.AsFiltraError(err)
	if !ok {
		t.Fatalf("FromMembers() = %v, want a filtra error", err)
	}
	if fe.Reason == "" || fe.Suggestion == "" {
		t.Errorf("axiom violation lacks reason or suggestion: %+v", fe)
	}
}

// TestUndirectedBasisRefusesToGenerate tests that a basis whose selected
// family is not directed cannot be turned into a filter.
func TestUndirectedBasisRefusesToGenerate(t *testing.T) {
	u := universe(t, "a", "b", "c")
	b, err := filter.NewBasis(u, []sets.Subset{
		set(t, u, "a", "b"),
		set(t, u, "b", "c"),
	}, nil)
	if err != nil {
		t.Fatalf("NewBasis() error: %v", err)
	}

	_, err = b.Filter()
	var violation *ferrors.ErrAxiomViolation
	if !stderrors.As(err, &violation) {
		t.Errorf("Filter() = %v, want ErrAxiomViolation", err)
	}
}

// TestEmptySelectionRefused tests that a selector rejecting every index
// cannot generate a filter.
func TestEmptySelectionRefused(t *testing.T) {
	u := universe(t, "a", "b")
	b, err := filter.NewBasis(u, []sets.Subset{set(t, u, "a")}, func(int) bool { return false })
	if err != nil {
		t.Fatalf("NewBasis() error: %v", err)
	}
	if _, err := b.Filter(); err == nil {
		t.Error("Filter() with empty selection expected error, got nil")
	}
}
