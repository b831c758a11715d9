package checker

import (
	"context"
	"strings"
	"testing"

	"github.com/filtra-labs/filtra/internal/catalog"
	"github.com/filtra-labs/filtra/internal/exercises"
	"github.com/filtra-labs/filtra/internal/goals"
	"github.com/filtra-labs/filtra/pkg/models"
)

// testCatalog builds a small workspace: naturals n0..n5, a parity mapping
// into {even, odd}, a tail filter, and the filter of even numbers.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.New()

	nat, err := catalog.BuildUniverse(models.UniverseDefinition{
		Name:     "nat",
		Elements: []string{"n0", "n1", "n2", "n3", "n4", "n5"},
	})
	if err != nil {
		t.Fatalf("BuildUniverse(nat) error: %v", err)
	}
	if err := cat.AddUniverse("nat", nat); err != nil {
		t.Fatalf("AddUniverse(nat) error: %v", err)
	}

	bits, err := catalog.BuildUniverse(models.UniverseDefinition{
		Name:     "bits",
		Elements: []string{"even", "odd"},
	})
	if err != nil {
		t.Fatalf("BuildUniverse(bits) error: %v", err)
	}
	if err := cat.AddUniverse("bits", bits); err != nil {
		t.Fatalf("AddUniverse(bits) error: %v", err)
	}

	parity, err := cat.BuildMapping(models.MappingDefinition{
		Name: "parity", From: "nat", To: "bits",
		Assign: map[string]string{
			"n0": "even", "n1": "odd", "n2": "even",
			"n3": "odd", "n4": "even", "n5": "odd",
		},
	})
	if err != nil {
		t.Fatalf("BuildMapping(parity) error: %v", err)
	}
	if err := cat.AddMapping("parity", parity); err != nil {
		t.Fatalf("AddMapping(parity) error: %v", err)
	}

	for _, def := range []models.FilterDefinition{
		{Name: "tail4", Universe: "nat", Principal: []string{"n4", "n5"}},
		{Name: "evens", Universe: "nat", Principal: []string{"n0", "n2", "n4"}},
		{Name: "at-even", Universe: "bits", Principal: []string{"even"}},
	} {
		nf, err := cat.BuildFilter(def)
		if err != nil {
			t.Fatalf("BuildFilter(%s) error: %v", def.Name, err)
		}
		if err := cat.AddFilter(nf); err != nil {
			t.Fatalf("AddFilter(%s) error: %v", def.Name, err)
		}
	}

	return cat
}

func exercise(t *testing.T, def models.ExerciseDefinition) *exercises.Exercise {
	t.Helper()
	ex, err := exercises.FromDefinition(def)
	if err != nil {
		t.Fatalf("FromDefinition(%s) error: %v", def.Name, err)
	}
	return ex
}

func TestCheckVerdicts(t *testing.T) {
	cat := testCatalog(t)
	chk := New(cat)
	ctx := context.Background()

	tests := []struct {
		name    string
		def     models.ExerciseDefinition
		verdict goals.Verdict
	}{
		{
			name: "member accepted when set contains core",
			def: models.ExerciseDefinition{
				Name: "m1", Form: "SOLUTION", Universe: "nat",
				Goal: &models.GoalDefinition{
					Kind: "MEMBER",
					Left: &models.FilterExpr{Ref: "tail4"},
					Set:  []string{"n3", "n4", "n5"},
				},
			},
			verdict: goals.VerdictAccepted,
		},
		{
			name: "member rejected when set misses the core",
			def: models.ExerciseDefinition{
				Name: "m2", Form: "SOLUTION", Universe: "nat",
				Goal: &models.GoalDefinition{
					Kind: "MEMBER",
					Left: &models.FilterExpr{Ref: "tail4"},
					Set:  []string{"n4"},
				},
			},
			verdict: goals.VerdictRejected,
		},
		{
			name: "meet lies below both operands",
			def: models.ExerciseDefinition{
				Name: "l1", Form: "SOLUTION", Universe: "nat",
				Goal: &models.GoalDefinition{
					Kind: "LEQ",
					Left: &models.FilterExpr{Meet: []models.FilterExpr{
						{Ref: "tail4"}, {Ref: "evens"},
					}},
					Right: &models.FilterExpr{Ref: "tail4"},
				},
			},
			verdict: goals.VerdictAccepted,
		},
		{
			name: "incomparable filters rejected",
			def: models.ExerciseDefinition{
				Name: "l2", Form: "SOLUTION", Universe: "nat",
				Goal: &models.GoalDefinition{
					Kind:  "LEQ",
					Left:  &models.FilterExpr{Ref: "tail4"},
					Right: &models.FilterExpr{Ref: "evens"},
				},
			},
			verdict: goals.VerdictRejected,
		},
		{
			name: "meet of principals is the principal of the intersection",
			def: models.ExerciseDefinition{
				Name: "e1", Form: "SOLUTION", Universe: "nat",
				Goal: &models.GoalDefinition{
					Kind: "EQUAL",
					Left: &models.FilterExpr{Meet: []models.FilterExpr{
						{Ref: "tail4"}, {Ref: "evens"},
					}},
					Right: &models.FilterExpr{Principal: []string{"n4"}},
				},
			},
			verdict: goals.VerdictAccepted,
		},
		{
			name: "eventually accepted on a member set",
			def: models.ExerciseDefinition{
				Name: "ev1", Form: "SOLUTION", Universe: "nat",
				Goal: &models.GoalDefinition{
					Kind: "EVENTUALLY",
					Left: &models.FilterExpr{Ref: "tail4"},
					Set:  []string{"n4", "n5"},
				},
			},
			verdict: goals.VerdictAccepted,
		},
		{
			name: "frequently accepted when the complement is not a member",
			def: models.ExerciseDefinition{
				Name: "fr1", Form: "SOLUTION", Universe: "nat",
				Goal: &models.GoalDefinition{
					Kind: "FREQUENTLY",
					Left: &models.FilterExpr{Ref: "tail4"},
					Set:  []string{"n4"},
				},
			},
			verdict: goals.VerdictAccepted,
		},
		{
			name: "tendsto accepted when the pushforward lies below the target",
			def: models.ExerciseDefinition{
				Name: "t1", Form: "SOLUTION", Universe: "nat",
				Goal: &models.GoalDefinition{
					Kind:    "TENDSTO",
					Mapping: "parity",
					Left:    &models.FilterExpr{Principal: []string{"n4"}},
					Right:   &models.FilterExpr{Ref: "at-even"},
				},
			},
			verdict: goals.VerdictAccepted,
		},
		{
			name: "tendsto rejected when a preimage is missing",
			def: models.ExerciseDefinition{
				Name: "t2", Form: "SOLUTION", Universe: "nat",
				Goal: &models.GoalDefinition{
					Kind:    "TENDSTO",
					Mapping: "parity",
					Left:    &models.FilterExpr{Principal: []string{"n3", "n4"}},
					Right:   &models.FilterExpr{Ref: "at-even"},
				},
			},
			verdict: goals.VerdictRejected,
		},
		{
			name: "negate flips a rejection to acceptance",
			def: models.ExerciseDefinition{
				Name: "n1", Form: "SOLUTION", Universe: "nat",
				Goal: &models.GoalDefinition{
					Kind:   "LEQ",
					Negate: true,
					Left:   &models.FilterExpr{Ref: "tail4"},
					Right:  &models.FilterExpr{Ref: "evens"},
				},
			},
			verdict: goals.VerdictAccepted,
		},
		{
			name: "inline basis generates the principal filter of its smallest item",
			def: models.ExerciseDefinition{
				Name: "b1", Form: "SOLUTION", Universe: "nat",
				Goal: &models.GoalDefinition{
					Kind: "EQUAL",
					Left: &models.FilterExpr{Basis: &models.BasisDefinition{
						Items: [][]string{{"n4", "n5"}, {"n4"}},
					}},
					Right: &models.FilterExpr{Principal: []string{"n4"}},
				},
			},
			verdict: goals.VerdictAccepted,
		},
		{
			name: "undirected basis rejects because it generates no filter",
			def: models.ExerciseDefinition{
				Name: "b2", Form: "SOLUTION", Universe: "nat",
				Goal: &models.GoalDefinition{
					Kind: "EQUAL",
					Left: &models.FilterExpr{Basis: &models.BasisDefinition{
						Items: [][]string{{"n4", "n5"}, {"n0", "n2", "n4"}},
					}},
					Right: &models.FilterExpr{Principal: []string{"n4"}},
				},
			},
			verdict: goals.VerdictRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := chk.Check(ctx, exercise(t, tt.def))
			if err != nil {
				t.Fatalf("Check() error: %v", err)
			}
			if result.Verdict != tt.verdict.String() {
				t.Errorf("verdict = %s, want %s (explanation: %s)",
					result.Verdict, tt.verdict, result.Explanation)
			}
			if result.CheckID == "" {
				t.Error("CheckID is empty")
			}
		})
	}
}

func TestCheckProblemWithHoleIsUnfinished(t *testing.T) {
	cat := testCatalog(t)
	chk := New(cat)

	ex := exercise(t, models.ExerciseDefinition{
		Name: "p1", Form: "PROBLEM", Universe: "nat",
		Goal: &models.GoalDefinition{
			Kind:  "LEQ",
			Left:  &models.FilterExpr{Ref: "tail4"},
			Right: &models.FilterExpr{Hole: true},
		},
	})

	result, err := chk.Check(context.Background(), ex)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if result.Verdict != goals.VerdictUnfinished.String() {
		t.Errorf("verdict = %s, want UNFINISHED", result.Verdict)
	}
	if !strings.Contains(result.Explanation, "hole") {
		t.Errorf("explanation %q does not mention the hole", result.Explanation)
	}
}

func TestCheckEvaluationFailureRejects(t *testing.T) {
	cat := testCatalog(t)
	chk := New(cat)

	// An unknown filter reference is a checkable but wrong statement.
	ex := exercise(t, models.ExerciseDefinition{
		Name: "u1", Form: "SOLUTION", Universe: "nat",
		Goal: &models.GoalDefinition{
			Kind:  "LEQ",
			Left:  &models.FilterExpr{Ref: "no-such-filter"},
			Right: &models.FilterExpr{Ref: "tail4"},
		},
	})

	result, err := chk.Check(context.Background(), ex)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if result.Verdict != goals.VerdictRejected.String() {
		t.Errorf("verdict = %s, want REJECTED", result.Verdict)
	}
	if !strings.Contains(result.Explanation, "no-such-filter") {
		t.Errorf("explanation %q does not name the unknown filter", result.Explanation)
	}
}

func TestCheckUniverseMismatchRejects(t *testing.T) {
	cat := testCatalog(t)
	chk := New(cat)

	// at-even lives over bits, not nat.
	ex := exercise(t, models.ExerciseDefinition{
		Name: "u2", Form: "SOLUTION", Universe: "nat",
		Goal: &models.GoalDefinition{
			Kind:  "LEQ",
			Left:  &models.FilterExpr{Ref: "at-even"},
			Right: &models.FilterExpr{Ref: "tail4"},
		},
	})

	result, err := chk.Check(context.Background(), ex)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if result.Verdict != goals.VerdictRejected.String() {
		t.Errorf("verdict = %s, want REJECTED", result.Verdict)
	}
}

func TestCheckComapTransport(t *testing.T) {
	cat := testCatalog(t)
	chk := New(cat)

	// Pulling at-even back along parity gives the principal filter of the
	// even naturals.
	ex := exercise(t, models.ExerciseDefinition{
		Name: "c1", Form: "SOLUTION", Universe: "nat",
		Goal: &models.GoalDefinition{
			Kind: "EQUAL",
			Left: &models.FilterExpr{Comap: &models.TransportExpr{
				Mapping: "parity",
				Of:      &models.FilterExpr{Ref: "at-even"},
			}},
			Right: &models.FilterExpr{Ref: "evens"},
		},
	})

	result, err := chk.Check(context.Background(), ex)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if result.Verdict != goals.VerdictAccepted.String() {
		t.Errorf("verdict = %s, want ACCEPTED (explanation: %s)",
			result.Verdict, result.Explanation)
	}
}

func TestCheckByName(t *testing.T) {
	cat := testCatalog(t)
	chk := New(cat)

	ex := exercise(t, models.ExerciseDefinition{
		Name: "named", Form: "SOLUTION", Universe: "nat",
		Goal: &models.GoalDefinition{
			Kind: "MEMBER",
			Left: &models.FilterExpr{Ref: "tail4"},
			Set:  []string{"n4", "n5"},
		},
	})
	if err := cat.AddExercise(ex); err != nil {
		t.Fatalf("AddExercise() error: %v", err)
	}

	result, err := chk.CheckByName(context.Background(), "named")
	if err != nil {
		t.Fatalf("CheckByName() error: %v", err)
	}
	if result.Verdict != goals.VerdictAccepted.String() {
		t.Errorf("verdict = %s, want ACCEPTED", result.Verdict)
	}

	if _, err := chk.CheckByName(context.Background(), "missing"); err == nil {
		t.Error("CheckByName(missing) expected error, got nil")
	}
}

func TestCheckInvalidExerciseErrors(t *testing.T) {
	cat := testCatalog(t)
	chk := New(cat)

	// A SOLUTION may not contain holes; Check must error, not give a verdict.
	ex := &exercises.Exercise{
		Name:     "bad",
		Form:     goals.FormSolution,
		Universe: "nat",
		Kind:     goals.GoalLeq,
		Goal: &models.GoalDefinition{
			Kind:  "LEQ",
			Left:  &models.FilterExpr{Ref: "tail4"},
			Right: &models.FilterExpr{Hole: true},
		},
	}
	if _, err := chk.Check(context.Background(), ex); err == nil {
		t.Error("Check() expected error for a SOLUTION with holes, got nil")
	}
}

func TestCheckCancelledContext(t *testing.T) {
	cat := testCatalog(t)
	chk := New(cat)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ex := exercise(t, models.ExerciseDefinition{
		Name: "ctx", Form: "SOLUTION", Universe: "nat",
		Goal: &models.GoalDefinition{
			Kind: "MEMBER",
			Left: &models.FilterExpr{Ref: "tail4"},
			Set:  []string{"n4", "n5"},
		},
	})
	if _, err := chk.Check(ctx, ex); err == nil {
		t.Error("Check() expected context error, got nil")
	}
}
