package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/filtra-labs/filtra/internal/storage"
)

func (c *CLI) newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect recorded check attempts",
		Long: `Inspect the local attempt store.

Every check is recorded with its verdict and explanation. The summary
exposes aggregates only; list shows individual attempts.

Commands:
  summary - Aggregated verdict counts and top rejection reasons
  list    - Recent attempts, newest first`,
	}

	cmd.AddCommand(c.newAuditSummaryCmd())
	cmd.AddCommand(c.newAuditListCmd())

	return cmd
}

func (c *CLI) newAuditSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show aggregated attempt statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAuditSummary(cmd.Context())
		},
	}

	return cmd
}

func (c *CLI) runAuditSummary(ctx context.Context) error {
	repo, cleanup, err := c.openAttemptStore(ctx)
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}
	defer cleanup()

	summary, err := repo.Summary(ctx)
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(summary)
	}

	total := summary.AcceptedCount + summary.RejectedCount + summary.UnfinishedCount
	c.printf("Attempts recorded: %d\n", total)
	c.printf("  Accepted:   %d\n", summary.AcceptedCount)
	c.printf("  Rejected:   %d\n", summary.RejectedCount)
	c.printf("  Unfinished: %d\n", summary.UnfinishedCount)

	if len(summary.TopRejectReasons) > 0 {
		c.println("\nTop rejection reasons:")
		for _, r := range summary.TopRejectReasons {
			c.printf("  %3d  %s\n", r.Count, r.Reason)
		}
	}

	if len(summary.TopExercises) > 0 {
		c.println("\nMost checked exercises:")
		for _, e := range summary.TopExercises {
			c.printf("  %3d  %s\n", e.Count, e.Exercise)
		}
	}

	return nil
}

func (c *CLI) newAuditListCmd() *cobra.Command {
	var exercise string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent attempts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAuditList(cmd.Context(), exercise, limit)
		},
	}

	cmd.Flags().StringVar(&exercise, "exercise", "", "only attempts for this exercise")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of attempts")

	return cmd
}

func (c *CLI) runAuditList(ctx context.Context, exercise string, limit int) error {
	repo, cleanup, err := c.openAttemptStore(ctx)
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}
	defer cleanup()

	attempts, err := repo.List(ctx, exercise, limit)
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(map[string]interface{}{"attempts": attempts})
	}

	if len(attempts) == 0 {
		c.println("No attempts recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "CHECKED AT\tEXERCISE\tGOAL\tVERDICT\tCHECK ID")
	for _, a := range attempts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			a.CheckedAt.Local().Format(time.DateTime),
			a.Exercise, a.GoalKind, a.Verdict, a.CheckID)
	}

	return nil
}

// openAttemptStore opens the local attempt database with migrations applied.
func (c *CLI) openAttemptStore(ctx context.Context) (storage.AttemptRepository, func(), error) {
	c.debugf("Opening attempt store: %s\n", c.cfg.Database.Path)
	db, err := storage.OpenDatabase(c.cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { db.Close() }

	if err := storage.NewMigrationRunner(db).Run(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	repo, err := storage.NewSQLiteRepository(db)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return repo, cleanup, nil
}
