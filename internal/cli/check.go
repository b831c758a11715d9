package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/filtra-labs/filtra/internal/checker"
	"github.com/filtra-labs/filtra/internal/errors"
	"github.com/filtra-labs/filtra/internal/goals"
	"github.com/filtra-labs/filtra/internal/observability"
	"github.com/filtra-labs/filtra/pkg/models"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	var all bool
	var noRecord bool

	cmd := &cobra.Command{
		Use:   "check [exercise...]",
		Short: "Check exercises",
		Long: `Check one or more exercises from the workspace.

Each exercise is evaluated to a verdict:
  ACCEPTED   - the stated goal holds
  REJECTED   - the stated goal fails (the explanation says where)
  UNFINISHED - the statement still contains holes

Every check is recorded in the local attempt store unless --no-record
is given. A rejected SOLUTION exercise fails the command.

The eventually, frequently, and tendsto subcommands answer one-off
questions against the workspace without defining an exercise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), args, all, noRecord)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "check every exercise in the workspace")
	cmd.Flags().BoolVar(&noRecord, "no-record", false, "skip recording attempts in the store")

	cmd.AddCommand(c.newCheckEventuallyCmd())
	cmd.AddCommand(c.newCheckFrequentlyCmd())
	cmd.AddCommand(c.newCheckTendstoCmd())

	return cmd
}

func (c *CLI) runCheck(ctx context.Context, names []string, all, noRecord bool) error {
	if all && len(names) > 0 {
		err := errors.NewInvalidExercise("args", "give exercise names or --all, not both")
		c.errorf("Error: %v\n", err)
		return err
	}
	if !all && len(names) == 0 {
		err := errors.NewInvalidExercise("args", "give at least one exercise name, or --all")
		c.errorf("Error: %v\n", err)
		return err
	}

	cat, err := c.loadCatalog()
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}

	if all {
		for _, ex := range cat.Exercises() {
			names = append(names, ex.Name)
		}
		if len(names) == 0 {
			c.println("No exercises defined in the workspace.")
			return nil
		}
	}

	logger, cleanup, err := c.openCheckLogger(ctx, noRecord)
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}
	defer cleanup()

	chk := checker.New(cat)
	results := make([]*models.CheckResult, 0, len(names))
	var failed []string

	for _, name := range names {
		result, err := chk.CheckByName(ctx, name)
		if err != nil {
			c.errorf("Error: %v\n", err)
			return err
		}
		if err := c.recordResult(ctx, logger, result); err != nil {
			c.errorf("Error: %v\n", err)
			return err
		}
		results = append(results, result)

		ex, _ := cat.Exercise(name)
		if rejectedSolution(ex.Form, result.Verdict) {
			failed = append(failed, name)
		}
		c.printResult(result)
	}

	if c.jsonOutput {
		if err := c.outputJSON(map[string]interface{}{"results": results}); err != nil {
			return err
		}
	}

	if len(failed) > 0 {
		return errors.NewCheckRejected(strings.Join(failed, ", "),
			"a SOLUTION exercise must be accepted",
			"read the explanation and fix the statement, or mark the exercise as a PROBLEM")
	}
	return nil
}

func rejectedSolution(form goals.ExerciseForm, verdict string) bool {
	return form == goals.FormSolution && verdict != goals.VerdictAccepted.String()
}

// openCheckLogger opens the attempt store and wraps it in a persistent
// logger. With noRecord, a no-op logger is returned instead.
func (c *CLI) openCheckLogger(ctx context.Context, noRecord bool) (observability.CheckLogger, func(), error) {
	if noRecord {
		return observability.NewNoopLogger(), func() {}, nil
	}

	repo, cleanup, err := c.openAttemptStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	logger, err := observability.NewPersistentLogger(repo)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return logger, cleanup, nil
}

func (c *CLI) recordResult(ctx context.Context, logger observability.CheckLogger, result *models.CheckResult) error {
	duration, _ := time.ParseDuration(result.Duration)
	return logger.LogCheck(ctx, observability.CheckLogEntry{
		CheckID:     result.CheckID,
		Exercise:    result.Exercise,
		Form:        result.Form,
		GoalKind:    result.GoalKind,
		Verdict:     result.Verdict,
		Explanation: result.Explanation,
		Duration:    duration,
	})
}

func (c *CLI) printResult(result *models.CheckResult) {
	if c.jsonOutput {
		return
	}

	var mark string
	switch goals.Verdict(result.Verdict) {
	case goals.VerdictAccepted:
		mark = "✓"
	case goals.VerdictRejected:
		mark = "✗"
	default:
		mark = "…"
	}

	c.printf("%s %s: %s [%s, %s]\n", mark, result.Exercise, result.Verdict, result.GoalKind, result.Duration)
	if result.Explanation != "" {
		c.printf("    %s\n", result.Explanation)
	}
	if len(result.Witness) > 0 {
		c.printf("    witness: {%s}\n", strings.Join(result.Witness, ", "))
	}
	c.debugf("check_id: %s\n", result.CheckID)
}
