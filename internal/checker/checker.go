// Package checker evaluates exercises against a workspace catalog.
//
// Checking is accept/reject: a well-formed exercise without holes is
// evaluated to ACCEPTED or REJECTED; an exercise with holes is UNFINISHED.
// Evaluation failures (unknown names, universe mismatches, a basis that
// generates no filter) reject the exercise with the failure as explanation
// rather than erroring out, so a solver always gets a verdict.
package checker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/filtra-labs/filtra/internal/catalog"
	"github.com/filtra-labs/filtra/internal/errors"
	"github.com/filtra-labs/filtra/internal/exercises"
	"github.com/filtra-labs/filtra/internal/filter"
	"github.com/filtra-labs/filtra/internal/goals"
	"github.com/filtra-labs/filtra/internal/sets"
	"github.com/filtra-labs/filtra/pkg/models"
)

// Checker evaluates exercise goals against a catalog.
type Checker struct {
	catalog *catalog.Catalog
}

// New creates a checker over a catalog.
func New(cat *catalog.Catalog) *Checker {
	return &Checker{catalog: cat}
}

// CheckByName resolves an exercise from the catalog and checks it.
func (c *Checker) CheckByName(ctx context.Context, name string) (*models.CheckResult, error) {
	ex, err := c.catalog.Exercise(name)
	if err != nil {
		return nil, err
	}
	return c.Check(ctx, ex)
}

// Check evaluates one exercise and returns its verdict.
// An invalid exercise is an error; a valid exercise always gets a result.
func (c *Checker) Check(ctx context.Context, ex *exercises.Exercise) (*models.CheckResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ex.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &models.CheckResult{
		CheckID:   uuid.New().String(),
		Exercise:  ex.Name,
		Form:      ex.Form.String(),
		GoalKind:  ex.Kind.String(),
		CheckedAt: start,
	}

	if ex.HasHoles() {
		result.Verdict = goals.VerdictUnfinished.String()
		result.Explanation = "the statement still contains a hole; fill in the missing operand and check again"
		result.Duration = time.Since(start).String()
		return result, nil
	}

	outcome, err := c.evaluate(ex)
	if err != nil {
		// Evaluation failures reject rather than error: the solver wrote a
		// checkable statement, it just does not check out.
		result.Verdict = goals.VerdictRejected.String()
		result.Explanation = err.Error()
		result.Duration = time.Since(start).String()
		return result, nil
	}

	holds := outcome.holds
	explanation := outcome.explanation
	if ex.Goal.Negate {
		holds = !holds
		explanation = "negated goal: " + explanation
	}
	if holds {
		result.Verdict = goals.VerdictAccepted.String()
		result.Witness = outcome.witness
	} else {
		result.Verdict = goals.VerdictRejected.String()
	}
	result.Explanation = explanation
	result.Duration = time.Since(start).String()
	return result, nil
}

// outcome is the raw evaluation of a goal, before negation is applied.
type outcome struct {
	holds       bool
	explanation string
	witness     []string
}

func (c *Checker) evaluate(ex *exercises.Exercise) (*outcome, error) {
	u, err := c.catalog.Universe(ex.Universe)
	if err != nil {
		return nil, err
	}
	g := ex.Goal

	switch ex.Kind {
	case goals.GoalMember, goals.GoalEventually, goals.GoalFrequently:
		f, err := c.evalExpr(u, g.Left)
		if err != nil {
			return nil, err
		}
		set, err := u.SetOf(g.Set...)
		if err != nil {
			return nil, err
		}
		return c.evaluateSetGoal(ex.Kind, f, set), nil

	case goals.GoalLeq:
		left, right, err := c.evalPair(u, g.Left, g.Right)
		if err != nil {
			return nil, err
		}
		holds, err := filter.Leq(left, right)
		if err != nil {
			return nil, err
		}
		if !holds {
			for _, m := range right.Members() {
				if !left.Member(m) {
					return &outcome{explanation: fmt.Sprintf(
						"%s is a member of the right filter but not of the left", m)}, nil
				}
			}
		}
		return &outcome{holds: true, explanation: "every member of the right filter is a member of the left"}, nil

	case goals.GoalEqual:
		left, right, err := c.evalPair(u, g.Left, g.Right)
		if err != nil {
			return nil, err
		}
		if !left.Equal(right) {
			return &outcome{explanation: c.explainInequality(left, right)}, nil
		}
		return &outcome{holds: true, explanation: "the filters have the same member family"}, nil

	case goals.GoalTendsto:
		m, err := c.catalog.Mapping(g.Mapping)
		if err != nil {
			return nil, err
		}
		src, err := c.evalExpr(m.From(), g.Left)
		if err != nil {
			return nil, err
		}
		dst, err := c.evalExpr(m.To(), g.Right)
		if err != nil {
			return nil, err
		}
		holds, err := filter.Tendsto(m, src, dst)
		if err != nil {
			return nil, err
		}
		if !holds {
			for _, v := range dst.Members() {
				if !src.Member(m.Preimage(v)) {
					return &outcome{explanation: fmt.Sprintf(
						"the preimage %s of the target member %s is not a member of the source filter",
						m.Preimage(v), v)}, nil
				}
			}
		}
		return &outcome{holds: true, explanation: "the pushforward of the source filter lies below the target filter"}, nil

	default:
		return nil, errors.NewInvalidExercise("goal.kind", "unknown goal kind: "+ex.Kind.String())
	}
}

func (c *Checker) evaluateSetGoal(kind goals.GoalKind, f *filter.Filter, set sets.Subset) *outcome {
	switch kind {
	case goals.GoalMember:
		if f.Member(set) {
			return &outcome{holds: true,
				explanation: fmt.Sprintf("%s contains the core %s", set, f.Core()),
				witness:     f.Core().Elements()}
		}
		return &outcome{explanation: fmt.Sprintf("%s does not contain the core %s", set, f.Core())}

	case goals.GoalEventually:
		if w, ok := filter.EventuallyWitness(set, f); ok {
			return &outcome{holds: true,
				explanation: fmt.Sprintf("the predicate holds on the member %s", w),
				witness:     w.Elements()}
		}
		return &outcome{explanation: fmt.Sprintf(
			"the predicate set %s is not a member: it misses part of the core %s", set, f.Core())}

	default: // goals.GoalFrequently
		if filter.FrequentlySet(set, f) {
			return &outcome{holds: true,
				explanation: fmt.Sprintf("the complement %s is not a member, so the predicate cannot be excluded", set.Complement())}
		}
		return &outcome{explanation: fmt.Sprintf(
			"the complement %s is a member, so the predicate eventually fails", set.Complement())}
	}
}

func (c *Checker) evalPair(u *sets.Universe, left, right *models.FilterExpr) (*filter.Filter, *filter.Filter, error) {
	l, err := c.evalExpr(u, left)
	if err != nil {
		return nil, nil, err
	}
	r, err := c.evalExpr(u, right)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

func (c *Checker) explainInequality(left, right *filter.Filter) string {
	for _, m := range left.Members() {
		if !right.Member(m) {
			return fmt.Sprintf("%s is a member of the left filter only", m)
		}
	}
	for _, m := range right.Members() {
		if !left.Member(m) {
			return fmt.Sprintf("%s is a member of the right filter only", m)
		}
	}
	return "the filters differ"
}

// evalExpr evaluates a filter expression to a filter over the expected
// universe. Exactly one construction form of the expression must be set.
func (c *Checker) evalExpr(u *sets.Universe, e *models.FilterExpr) (*filter.Filter, error) {
	if e == nil || e.Hole {
		return nil, errors.NewInvalidExercise("goal", "cannot evaluate a hole")
	}

	switch {
	case e.Ref != "":
		nf, err := c.catalog.Filter(e.Ref)
		if err != nil {
			return nil, err
		}
		if !nf.Filter.Universe().Equal(u) {
			return nil, errors.NewUniverseMismatch("filter reference "+e.Ref,
				u.String(), nf.Filter.Universe().String())
		}
		return nf.Filter, nil

	case e.Principal != nil:
		s, err := u.SetOf(e.Principal...)
		if err != nil {
			return nil, err
		}
		return filter.Principal(s), nil

	case e.Top:
		return filter.Top(u), nil

	case e.Bottom:
		return filter.Bottom(u), nil

	case e.Meet != nil:
		parts, err := c.evalList(u, e.Meet)
		if err != nil {
			return nil, err
		}
		return filter.MeetAll(u, parts...)

	case e.Join != nil:
		parts, err := c.evalList(u, e.Join)
		if err != nil {
			return nil, err
		}
		return filter.JoinAll(u, parts...)

	case e.Map != nil:
		m, err := c.catalog.Mapping(e.Map.Mapping)
		if err != nil {
			return nil, err
		}
		if !m.To().Equal(u) {
			return nil, errors.NewUniverseMismatch("map "+e.Map.Mapping, u.String(), m.To().String())
		}
		f, err := c.evalExpr(m.From(), e.Map.Of)
		if err != nil {
			return nil, err
		}
		return filter.Map(m, f)

	case e.Comap != nil:
		m, err := c.catalog.Mapping(e.Comap.Mapping)
		if err != nil {
			return nil, err
		}
		if !m.From().Equal(u) {
			return nil, errors.NewUniverseMismatch("comap "+e.Comap.Mapping, u.String(), m.From().String())
		}
		g, err := c.evalExpr(m.To(), e.Comap.Of)
		if err != nil {
			return nil, err
		}
		return filter.Comap(m, g)

	case e.Basis != nil:
		b, err := catalog.BuildBasis(u, e.Basis)
		if err != nil {
			return nil, err
		}
		return b.Filter()

	default:
		return nil, errors.NewInvalidExercise("goal", "empty filter expression: set exactly one of ref, principal, top, bottom, meet, join, map, comap, basis")
	}
}

func (c *Checker) evalList(u *sets.Universe, exprs []models.FilterExpr) ([]*filter.Filter, error) {
	out := make([]*filter.Filter, len(exprs))
	for i := range exprs {
		f, err := c.evalExpr(u, &exprs[i])
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
