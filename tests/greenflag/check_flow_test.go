package greenflag

import (
	"context"
	"testing"

	"github.com/filtra-labs/filtra/internal/checker"
	"github.com/filtra-labs/filtra/internal/goals"
)

// TestFixtureExercisesMeetTheirExpectations tests that every SOLUTION
// exercise in the fixture checks to the verdict its definition expects.
func TestFixtureExercisesMeetTheirExpectations(t *testing.T) {
	cat := suiteCatalog(t)
	chk := checker.New(cat)
	ctx := context.Background()

	for _, ex := range cat.Exercises() {
		if ex.Expect == "" {
			continue
		}
		result, err := chk.CheckByName(ctx, ex.Name)
		if err != nil {
			t.Errorf("CheckByName(%s) error: %v", ex.Name, err)
			continue
		}
		if result.Verdict != ex.Expect.String() {
			t.Errorf("%s: verdict = %s, want %s (explanation: %s)",
				ex.Name, result.Verdict, ex.Expect, result.Explanation)
		}
	}
}

// TestProblemWithHoleIsUnfinished tests that the fixture's PROBLEM checks
// to UNFINISHED without touching the attempt store or erroring.
func TestProblemWithHoleIsUnfinished(t *testing.T) {
	cat := suiteCatalog(t)
	chk := checker.New(cat)

	result, err := chk.CheckByName(context.Background(), "fill-the-limit")
	if err != nil {
		t.Fatalf("CheckByName() error: %v", err)
	}
	if result.Verdict != goals.VerdictUnfinished.String() {
		t.Errorf("verdict = %s, want UNFINISHED", result.Verdict)
	}
}

// TestAcceptedCheckCarriesWitness tests that accepted membership goals
// report a witness set.
func TestAcceptedCheckCarriesWitness(t *testing.T) {
	cat := suiteCatalog(t)
	chk := checker.New(cat)

	result, err := chk.CheckByName(context.Background(), "tail-eventually-late")
	if err != nil {
		t.Fatalf("CheckByName() error: %v", err)
	}
	if result.Verdict != goals.VerdictAccepted.String() {
		t.Fatalf("verdict = %s, want ACCEPTED (%s)", result.Verdict, result.Explanation)
	}
	if len(result.Witness) == 0 {
		t.Error("accepted eventually goal has no witness")
	}
	if result.Duration == "" {
		t.Error("result is missing its duration")
	}
}
