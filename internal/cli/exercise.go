package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *CLI) newExerciseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Inspect workspace exercises",
		Long: `Inspect the exercises defined by the workspace.

Commands:
  list - List all exercises
  show - Show one exercise in detail`,
	}

	cmd.AddCommand(c.newExerciseListCmd())
	cmd.AddCommand(c.newExerciseShowCmd())

	return cmd
}

func (c *CLI) newExerciseListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List exercises",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExerciseList()
		},
	}

	return cmd
}

func (c *CLI) runExerciseList() error {
	cat, err := c.loadCatalog()
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}

	exs := cat.Exercises()

	if c.jsonOutput {
		infos := make([]interface{}, 0, len(exs))
		for _, ex := range exs {
			infos = append(infos, ex.Info())
		}
		return c.outputJSON(map[string]interface{}{"exercises": infos})
	}

	if len(exs) == 0 {
		c.println("No exercises defined in the workspace.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "NAME\tFORM\tGOAL\tUNIVERSE\tTITLE")
	for _, ex := range exs {
		title := ex.Title
		if title == "" {
			title = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			ex.Name, ex.Form, ex.Kind, ex.Universe, title)
	}

	return nil
}

func (c *CLI) newExerciseShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show one exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExerciseShow(args[0])
		},
	}

	return cmd
}

func (c *CLI) runExerciseShow(name string) error {
	cat, err := c.loadCatalog()
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}

	ex, err := cat.Exercise(name)
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(ex.Info())
	}

	c.printf("Exercise: %s\n", ex.Name)
	if ex.Title != "" {
		c.printf("  Title:      %s\n", ex.Title)
	}
	c.printf("  Form:       %s\n", ex.Form)
	c.printf("  Universe:   %s\n", ex.Universe)
	c.printf("  Goal:       %s\n", ex.Kind)
	if ex.Goal.Negate {
		c.println("  Negated:    yes")
	}
	if ex.Expect != "" {
		c.printf("  Expects:    %s\n", ex.Expect)
	}
	if ex.Commentary != "" {
		c.printf("  Commentary: %s\n", ex.Commentary)
	}
	if ex.HasHoles() {
		c.println("  Holes:      yes (checking yields UNFINISHED until filled)")
	}

	return nil
}
