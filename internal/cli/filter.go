package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *CLI) newFilterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Inspect workspace filters",
		Long: `Inspect and combine the filters defined by the workspace.

Commands:
  list - List all filters
  show - Show one filter in detail
  leq  - Decide whether one filter is below another
  meet - Compute the greatest lower bound of filters
  join - Compute the least upper bound of filters`,
	}

	cmd.AddCommand(c.newFilterListCmd())
	cmd.AddCommand(c.newFilterShowCmd())
	cmd.AddCommand(c.newFilterLeqCmd())
	cmd.AddCommand(c.newFilterMeetCmd())
	cmd.AddCommand(c.newFilterJoinCmd())

	return cmd
}

func (c *CLI) newFilterListCmd() *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFilterList(full)
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "include the full member family")

	return cmd
}

func (c *CLI) runFilterList(full bool) error {
	cat, err := c.loadCatalog()
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}

	filters := cat.Filters()

	if c.jsonOutput {
		infos := make([]interface{}, 0, len(filters))
		for _, nf := range filters {
			infos = append(infos, nf.Info(full))
		}
		return c.outputJSON(map[string]interface{}{"filters": infos})
	}

	if len(filters) == 0 {
		c.println("No filters defined in the workspace.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "NAME\tUNIVERSE\tCORE\tMEMBERS\tTRIVIAL")
	for _, nf := range filters {
		info := nf.Info(false)
		trivial := "-"
		if info.Trivial {
			trivial = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t{%s}\t%d\t%s\n",
			info.Name, info.Universe, strings.Join(info.Core, ", "),
			info.MemberCount, trivial)
	}

	return nil
}

func (c *CLI) newFilterShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show one filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFilterShow(args[0])
		},
	}

	return cmd
}

func (c *CLI) runFilterShow(name string) error {
	cat, err := c.loadCatalog()
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}

	nf, err := cat.Filter(name)
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(nf.Info(true))
	}

	info := nf.Info(true)
	c.printf("Filter: %s\n", info.Name)
	c.printf("  Universe:     %s\n", info.Universe)
	if info.Description != "" {
		c.printf("  Description:  %s\n", info.Description)
	}
	c.printf("  Core:         {%s}\n", strings.Join(info.Core, ", "))
	c.printf("  Member count: %d\n", info.MemberCount)
	if info.Trivial {
		c.println("  Trivial:      yes (this is the bottom filter)")
	}
	c.println("  Members:")
	for _, m := range info.Members {
		c.printf("    {%s}\n", strings.Join(m, ", "))
	}

	return nil
}
