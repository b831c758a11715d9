// Package goals defines the goal and verdict model for filter exercises.
// A goal kind names the relation an exercise asserts; a verdict is the
// checker's answer; an exercise form distinguishes unfinished problems from
// worked solutions.
//
// Per docs/plan.md: "Exercises are accept/reject."
package goals

import (
	"fmt"
	"strings"
)

// GoalKind represents the relation an exercise statement asserts.
type GoalKind string

const (
	// GoalMember asserts that a set is a member of a filter.
	GoalMember GoalKind = "MEMBER"

	// GoalLeq asserts that one filter lies below another.
	GoalLeq GoalKind = "LEQ"

	// GoalEqual asserts extensional equality of two filters.
	GoalEqual GoalKind = "EQUAL"

	// GoalEventually asserts that a predicate holds eventually along a filter.
	GoalEventually GoalKind = "EVENTUALLY"

	// GoalFrequently asserts that a predicate holds frequently along a filter.
	GoalFrequently GoalKind = "FREQUENTLY"

	// GoalTendsto asserts convergence of a mapping between two filters.
	GoalTendsto GoalKind = "TENDSTO"
)

// AllGoalKinds returns all valid goal kinds.
func AllGoalKinds() []GoalKind {
	return []GoalKind{
		GoalMember,
		GoalLeq,
		GoalEqual,
		GoalEventually,
		GoalFrequently,
		GoalTendsto,
	}
}

// IsValid checks if the goal kind is a known valid kind.
func (k GoalKind) IsValid() bool {
	for _, valid := range AllGoalKinds() {
		if k == valid {
			return true
		}
	}
	return false
}

// String returns the string representation of the goal kind.
func (k GoalKind) String() string {
	return string(k)
}

// ParseGoalKind parses a string into a GoalKind.
// Returns an error if the string is not a valid goal kind.
func ParseGoalKind(s string) (GoalKind, error) {
	k := GoalKind(strings.ToUpper(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("invalid goal kind: %s (valid: %v)", s, AllGoalKinds())
	}
	return k, nil
}

// GoalKindSet is a set of goal kinds for efficient lookup.
type GoalKindSet map[GoalKind]struct{}

// NewGoalKindSet creates a new GoalKindSet from a slice of kinds.
func NewGoalKindSet(kinds []GoalKind) GoalKindSet {
	set := make(GoalKindSet, len(kinds))
	for _, k := range kinds {
		set[k] = struct{}{}
	}
	return set
}

// Has checks if the set contains the given goal kind.
func (gs GoalKindSet) Has(k GoalKind) bool {
	_, ok := gs[k]
	return ok
}

// Add adds a goal kind to the set.
func (gs GoalKindSet) Add(k GoalKind) {
	gs[k] = struct{}{}
}

// Slice returns the goal kinds as a slice.
func (gs GoalKindSet) Slice() []GoalKind {
	result := make([]GoalKind, 0, len(gs))
	for k := range gs {
		result = append(result, k)
	}
	return result
}

// Verdict represents the checker's answer for an exercise.
type Verdict string

const (
	// VerdictAccepted means the statement was checked and holds.
	VerdictAccepted Verdict = "ACCEPTED"

	// VerdictRejected means the statement was checked and does not hold,
	// or could not be evaluated for an explicit reason.
	VerdictRejected Verdict = "REJECTED"

	// VerdictUnfinished means the exercise still contains a hole: the
	// completing data a solver must supply is absent.
	VerdictUnfinished Verdict = "UNFINISHED"
)

// AllVerdicts returns all valid verdicts.
func AllVerdicts() []Verdict {
	return []Verdict{VerdictAccepted, VerdictRejected, VerdictUnfinished}
}

// IsValid checks if the verdict is a known valid verdict.
func (v Verdict) IsValid() bool {
	for _, valid := range AllVerdicts() {
		if v == valid {
			return true
		}
	}
	return false
}

// String returns the string representation of the verdict.
func (v Verdict) String() string {
	return string(v)
}

// ParseVerdict parses a string into a Verdict.
func ParseVerdict(s string) (Verdict, error) {
	v := Verdict(strings.ToUpper(strings.TrimSpace(s)))
	if !v.IsValid() {
		return "", fmt.Errorf("invalid verdict: %s (valid: %v)", s, AllVerdicts())
	}
	return v, nil
}

// ExerciseForm distinguishes problem statements from worked solutions.
type ExerciseForm string

const (
	// FormProblem is a statement whose completing data is left as a hole.
	FormProblem ExerciseForm = "PROBLEM"

	// FormSolution is a completed statement ready to be checked.
	FormSolution ExerciseForm = "SOLUTION"
)

// AllForms returns all valid exercise forms.
func AllForms() []ExerciseForm {
	return []ExerciseForm{FormProblem, FormSolution}
}

// IsValid checks if the form is a known valid form.
func (f ExerciseForm) IsValid() bool {
	for _, valid := range AllForms() {
		if f == valid {
			return true
		}
	}
	return false
}

// String returns the string representation of the form.
func (f ExerciseForm) String() string {
	return string(f)
}

// ParseForm parses a string into an ExerciseForm.
func ParseForm(s string) (ExerciseForm, error) {
	f := ExerciseForm(strings.ToUpper(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("invalid exercise form: %s (valid: %v)", s, AllForms())
	}
	return f, nil
}
