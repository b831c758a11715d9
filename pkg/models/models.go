// Package models provides shared data models for the filtra public API and
// for the declarative YAML workspace files.
package models

import (
	"time"
)

// UniverseDefinition is the external representation of a finite carrier.
type UniverseDefinition struct {
	Name     string   `json:"name" yaml:"name"`
	Elements []string `json:"elements" yaml:"elements"`
}

// MappingDefinition is the external representation of a total mapping
// between two universes.
type MappingDefinition struct {
	Name   string            `json:"name" yaml:"name"`
	From   string            `json:"from" yaml:"from"`
	To     string            `json:"to" yaml:"to"`
	Assign map[string]string `json:"assign" yaml:"assign"`
}

// BasisDefinition is a generating family: indexed items, each an element
// list, with an optional list of selected indices (nil selects all).
type BasisDefinition struct {
	Items  [][]string `json:"items" yaml:"items"`
	Select []int      `json:"select,omitempty" yaml:"select,omitempty"`
}

// FilterDefinition is the external representation of a named filter.
// Exactly one of Members, Principal, Basis, Top, Bottom describes it.
type FilterDefinition struct {
	Name        string           `json:"name" yaml:"name"`
	Universe    string           `json:"universe" yaml:"universe"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Members     [][]string       `json:"members,omitempty" yaml:"members,omitempty"`
	Principal   []string         `json:"principal,omitempty" yaml:"principal,omitempty"`
	Basis       *BasisDefinition `json:"basis,omitempty" yaml:"basis,omitempty"`
	Top         bool             `json:"top,omitempty" yaml:"top,omitempty"`
	Bottom      bool             `json:"bottom,omitempty" yaml:"bottom,omitempty"`
}

// TransportExpr applies a named mapping to a filter expression, forward
// (map) or backward (comap).
type TransportExpr struct {
	Mapping string      `json:"mapping" yaml:"mapping"`
	Of      *FilterExpr `json:"of" yaml:"of"`
}

// FilterExpr is a one-of filter expression evaluated against a workspace.
// Hole marks a placeholder a solver must still fill in.
type FilterExpr struct {
	Hole      bool             `json:"hole,omitempty" yaml:"hole,omitempty"`
	Ref       string           `json:"ref,omitempty" yaml:"ref,omitempty"`
	Principal []string         `json:"principal,omitempty" yaml:"principal,omitempty"`
	Top       bool             `json:"top,omitempty" yaml:"top,omitempty"`
	Bottom    bool             `json:"bottom,omitempty" yaml:"bottom,omitempty"`
	Meet      []FilterExpr     `json:"meet,omitempty" yaml:"meet,omitempty"`
	Join      []FilterExpr     `json:"join,omitempty" yaml:"join,omitempty"`
	Map       *TransportExpr   `json:"map,omitempty" yaml:"map,omitempty"`
	Comap     *TransportExpr   `json:"comap,omitempty" yaml:"comap,omitempty"`
	Basis     *BasisDefinition `json:"basis,omitempty" yaml:"basis,omitempty"`
}

// GoalDefinition is the statement an exercise asserts.
//
// Operand usage by kind:
//   - MEMBER, EVENTUALLY, FREQUENTLY: Left (the filter) and Set (elements).
//   - LEQ, EQUAL: Left and Right.
//   - TENDSTO: Mapping, Left (source filter), Right (target filter).
//
// A nil Set (for set goals), an empty Mapping (for TENDSTO), or a Hole
// anywhere in an operand expression is a hole.
type GoalDefinition struct {
	Kind    string      `json:"kind" yaml:"kind"`
	Negate  bool        `json:"negate,omitempty" yaml:"negate,omitempty"`
	Left    *FilterExpr `json:"left,omitempty" yaml:"left,omitempty"`
	Right   *FilterExpr `json:"right,omitempty" yaml:"right,omitempty"`
	Set     []string    `json:"set,omitempty" yaml:"set,omitempty"`
	Mapping string      `json:"mapping,omitempty" yaml:"mapping,omitempty"`
}

// ExerciseDefinition is the external representation of one exercise.
type ExerciseDefinition struct {
	Name       string          `json:"name" yaml:"name"`
	Title      string          `json:"title,omitempty" yaml:"title,omitempty"`
	Form       string          `json:"form" yaml:"form"`
	Universe   string          `json:"universe" yaml:"universe"`
	Commentary string          `json:"commentary,omitempty" yaml:"commentary,omitempty"`
	Goal       *GoalDefinition `json:"goal" yaml:"goal"`
	Expect     string          `json:"expect,omitempty" yaml:"expect,omitempty"`
}

// WorkspaceDefinition is the declarative YAML workspace: universes,
// mappings, filters, and exercises, applied as one unit.
type WorkspaceDefinition struct {
	Universes []UniverseDefinition `json:"universes" yaml:"universes"`
	Mappings  []MappingDefinition  `json:"mappings,omitempty" yaml:"mappings,omitempty"`
	Filters   []FilterDefinition   `json:"filters,omitempty" yaml:"filters,omitempty"`
	Exercises []ExerciseDefinition `json:"exercises,omitempty" yaml:"exercises,omitempty"`
}

// FilterInfo is the API response for filter information.
type FilterInfo struct {
	Name        string     `json:"name"`
	Universe    string     `json:"universe"`
	Description string     `json:"description,omitempty"`
	MemberCount int        `json:"member_count"`
	Core        []string   `json:"core"`
	Trivial     bool       `json:"trivial"`
	Members     [][]string `json:"members,omitempty"`
}

// ExerciseInfo is the API response for exercise information.
type ExerciseInfo struct {
	Name       string `json:"name"`
	Title      string `json:"title,omitempty"`
	Form       string `json:"form"`
	Universe   string `json:"universe"`
	GoalKind   string `json:"goal_kind"`
	Commentary string `json:"commentary,omitempty"`
}

// CheckRequest is the API request for checking an exercise.
// Either Exercise (a catalog name) or Definition (an inline exercise) is set.
type CheckRequest struct {
	Exercise   string              `json:"exercise,omitempty"`
	Definition *ExerciseDefinition `json:"definition,omitempty"`
}

// CheckResult is the outcome of checking one exercise.
type CheckResult struct {
	CheckID     string    `json:"check_id"`
	Exercise    string    `json:"exercise"`
	Form        string    `json:"form"`
	GoalKind    string    `json:"goal_kind"`
	Verdict     string    `json:"verdict"`
	Explanation string    `json:"explanation,omitempty"`
	Witness     []string  `json:"witness,omitempty"`
	Duration    string    `json:"duration"`
	CheckedAt   time.Time `json:"checked_at"`
}

// AuditSummaryInfo is the API response for aggregated attempt statistics.
type AuditSummaryInfo struct {
	AcceptedCount    int                   `json:"accepted_count"`
	RejectedCount    int                   `json:"rejected_count"`
	UnfinishedCount  int                   `json:"unfinished_count"`
	TopRejectReasons []RejectionReasonStat `json:"top_reject_reasons"`
	TopExercises     []ExerciseCheckStat   `json:"top_exercises"`
}

// RejectionReasonStat represents rejection reason statistics.
type RejectionReasonStat struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// ExerciseCheckStat represents per-exercise attempt statistics.
type ExerciseCheckStat struct {
	Exercise string `json:"exercise"`
	Count    int    `json:"count"`
}

// ErrorResponse is the API response for errors.
type ErrorResponse struct {
	Error      string `json:"error"`
	Reason     string `json:"reason,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Code       int    `json:"code"`
}
