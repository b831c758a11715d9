// Package exercises provides the exercise model: an annotated statement
// about filters, in problem form (with holes a solver must fill) or
// solution form (complete, ready to check).
package exercises

import (
	"fmt"

	"github.com/filtra-labs/filtra/internal/errors"
	"github.com/filtra-labs/filtra/internal/goals"
	"github.com/filtra-labs/filtra/pkg/models"
)

// Exercise is one interactive statement about filters.
type Exercise struct {
	// Name is the unique identifier for this exercise.
	Name string

	// Title is a short human-readable headline.
	Title string

	// Form distinguishes problems (may contain holes) from solutions.
	Form goals.ExerciseForm

	// Universe names the carrier the statement is over.
	Universe string

	// Commentary is the annotation shown alongside the statement.
	Commentary string

	// Goal is the statement to check.
	Goal *models.GoalDefinition

	// Kind is the parsed goal kind of Goal.
	Kind goals.GoalKind

	// Expect is the verdict a fixture expects, or empty when unspecified.
	Expect goals.Verdict
}

// FromDefinition builds an Exercise from its external definition,
// parsing the enumerated fields. The result is not yet validated.
func FromDefinition(def models.ExerciseDefinition) (*Exercise, error) {
	ex := &Exercise{
		Name:       def.Name,
		Title:      def.Title,
		Universe:   def.Universe,
		Commentary: def.Commentary,
		Goal:       def.Goal,
	}
	if def.Form != "" {
		form, err := goals.ParseForm(def.Form)
		if err != nil {
			return nil, errors.NewInvalidExercise("form", err.Error())
		}
		ex.Form = form
	}
	if def.Goal != nil && def.Goal.Kind != "" {
		kind, err := goals.ParseGoalKind(def.Goal.Kind)
		if err != nil {
			return nil, errors.NewInvalidExercise("goal.kind", err.Error())
		}
		ex.Kind = kind
	}
	if def.Expect != "" {
		expect, err := goals.ParseVerdict(def.Expect)
		if err != nil {
			return nil, errors.NewInvalidExercise("expect", err.Error())
		}
		ex.Expect = expect
	}
	return ex, nil
}

// Validate checks that the exercise definition is well formed.
// Problem forms may contain holes; solution forms must not.
func (ex *Exercise) Validate() error {
	if ex.Name == "" {
		return errors.NewInvalidExercise("name", "required")
	}
	if !ex.Form.IsValid() {
		return errors.NewInvalidExercise("form", "required (PROBLEM or SOLUTION)")
	}
	if ex.Universe == "" {
		return errors.NewInvalidExercise("universe", "required")
	}
	if ex.Goal == nil {
		return errors.NewInvalidExercise("goal", "required")
	}
	if !ex.Kind.IsValid() {
		return errors.NewInvalidExercise("goal.kind", fmt.Sprintf("required (valid: %v)", goals.AllGoalKinds()))
	}

	if err := ex.validateOperands(); err != nil {
		return err
	}

	if ex.Form == goals.FormSolution && ex.HasHoles() {
		return errors.NewInvalidExercise("form", "a SOLUTION must not contain holes; mark it PROBLEM or fill them in")
	}
	return nil
}

// validateOperands rejects operands that the goal kind does not use.
// Required-but-absent operands are holes, not validation failures.
func (ex *Exercise) validateOperands() error {
	g := ex.Goal
	switch ex.Kind {
	case goals.GoalMember, goals.GoalEventually, goals.GoalFrequently:
		if g.Right != nil {
			return errors.NewInvalidExercise("goal.right", fmt.Sprintf("not used by %s goals", ex.Kind))
		}
		if g.Mapping != "" {
			return errors.NewInvalidExercise("goal.mapping", fmt.Sprintf("not used by %s goals", ex.Kind))
		}
	case goals.GoalLeq, goals.GoalEqual:
		if g.Set != nil {
			return errors.NewInvalidExercise("goal.set", fmt.Sprintf("not used by %s goals", ex.Kind))
		}
		if g.Mapping != "" {
			return errors.NewInvalidExercise("goal.mapping", fmt.Sprintf("not used by %s goals", ex.Kind))
		}
	case goals.GoalTendsto:
		if g.Set != nil {
			return errors.NewInvalidExercise("goal.set", "not used by TENDSTO goals")
		}
	}
	return nil
}

// HasHoles reports whether the completing data of the statement is still
// absent anywhere: a required operand missing, or a hole marker inside an
// operand expression.
func (ex *Exercise) HasHoles() bool {
	if ex.Goal == nil {
		return true
	}
	g := ex.Goal
	switch ex.Kind {
	case goals.GoalMember, goals.GoalEventually, goals.GoalFrequently:
		return exprHasHole(g.Left) || g.Set == nil
	case goals.GoalLeq, goals.GoalEqual:
		return exprHasHole(g.Left) || exprHasHole(g.Right)
	case goals.GoalTendsto:
		return g.Mapping == "" || exprHasHole(g.Left) || exprHasHole(g.Right)
	default:
		return true
	}
}

// exprHasHole walks a filter expression looking for hole markers.
// A nil expression where one is required is itself a hole.
func exprHasHole(e *models.FilterExpr) bool {
	if e == nil || e.Hole {
		return true
	}
	for i := range e.Meet {
		if exprHasHole(&e.Meet[i]) {
			return true
		}
	}
	for i := range e.Join {
		if exprHasHole(&e.Join[i]) {
			return true
		}
	}
	if e.Map != nil && exprHasHole(e.Map.Of) {
		return true
	}
	if e.Comap != nil && exprHasHole(e.Comap.Of) {
		return true
	}
	return false
}

// Info returns the API representation of the exercise.
func (ex *Exercise) Info() models.ExerciseInfo {
	return models.ExerciseInfo{
		Name:       ex.Name,
		Title:      ex.Title,
		Form:       ex.Form.String(),
		Universe:   ex.Universe,
		GoalKind:   ex.Kind.String(),
		Commentary: ex.Commentary,
	}
}
