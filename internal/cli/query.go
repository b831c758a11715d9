package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/filtra-labs/filtra/internal/catalog"
	"github.com/filtra-labs/filtra/internal/filter"
	"github.com/filtra-labs/filtra/internal/sets"
)

// Ad-hoc queries against the workspace, outside any exercise: lattice
// comparisons and combinations under "filter", one-off eventually/
// frequently/tendsto questions under "check".

func (c *CLI) newFilterLeqCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leq <a> <b>",
		Short: "Decide whether filter a is below filter b",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFilterLeq(args[0], args[1])
		},
	}
}

func (c *CLI) runFilterLeq(left, right string) error {
	cat, err := c.loadCatalog()
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}
	a, b, err := c.resolvePair(cat, left, right)
	if err != nil {
		return err
	}

	holds, err := filter.Leq(a.Filter, b.Filter)
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(map[string]interface{}{"left": left, "right": right, "leq": holds})
	}
	c.printf("%s ≤ %s: %v\n", left, right, holds)
	return nil
}

func (c *CLI) newFilterMeetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "meet <name> <name>...",
		Short: "Compute the greatest lower bound of filters",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFilterCombine(args, "meet")
		},
	}
}

func (c *CLI) newFilterJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <name> <name>...",
		Short: "Compute the least upper bound of filters",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFilterCombine(args, "join")
		},
	}
}

func (c *CLI) runFilterCombine(names []string, op string) error {
	cat, err := c.loadCatalog()
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}

	operands := make([]*filter.Filter, 0, len(names))
	var u *sets.Universe
	for _, name := range names {
		nf, err := cat.Filter(name)
		if err != nil {
			c.errorf("Error: %v\n", err)
			return err
		}
		if u == nil {
			u = nf.Filter.Universe()
		}
		operands = append(operands, nf.Filter)
	}

	var combined *filter.Filter
	if op == "meet" {
		combined, err = filter.MeetAll(u, operands...)
	} else {
		combined, err = filter.JoinAll(u, operands...)
	}
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(map[string]interface{}{
			"operation":    op,
			"operands":     names,
			"core":         combined.Core().Elements(),
			"member_count": combined.MemberCount(),
			"trivial":      combined.IsTrivial(),
		})
	}

	c.printf("%s(%s):\n", op, strings.Join(names, ", "))
	c.printf("  Core:         {%s}\n", strings.Join(combined.Core().Elements(), ", "))
	c.printf("  Member count: %d\n", combined.MemberCount())
	if combined.IsTrivial() {
		c.println("  Trivial:      yes (this is the bottom filter)")
	}
	return nil
}

func (c *CLI) newCheckEventuallyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eventually <filter> <element>...",
		Short: "Decide whether a property holds eventually along a filter",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheckEventually(args[0], args[1:], false)
		},
	}
}

func (c *CLI) newCheckFrequentlyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "frequently <filter> <element>...",
		Short: "Decide whether a property holds frequently along a filter",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheckEventually(args[0], args[1:], true)
		},
	}
}

func (c *CLI) runCheckEventually(name string, elements []string, frequently bool) error {
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
	p, err := nf.Filter.Universe().SetOf(elements...)
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}

	mode := "eventually"
	holds := filter.EventuallySet(p, nf.Filter)
	if frequently {
		mode = "frequently"
		holds = filter.FrequentlySet(p, nf.Filter)
	}

	if c.jsonOutput {
		out := map[string]interface{}{"mode": mode, "filter": name, "set": elements, "holds": holds}
		if witness, ok := filter.EventuallyWitness(p, nf.Filter); !frequently && ok {
			out["witness"] = witness.Elements()
		}
		return c.outputJSON(out)
	}

	c.printf("%s({%s}) along %s: %v\n", mode, strings.Join(elements, ", "), name, holds)
	if witness, ok := filter.EventuallyWitness(p, nf.Filter); !frequently && ok {
		c.printf("  witness: {%s}\n", strings.Join(witness.Elements(), ", "))
	}
	return nil
}

func (c *CLI) newCheckTendstoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tendsto <mapping> <source-filter> <target-filter>",
		Short: "Decide whether a mapping converges between two filters",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheckTendsto(args[0], args[1], args[2])
		},
	}
}

func (c *CLI) runCheckTendsto(mapping, source, target string) error {
	cat, err := c.loadCatalog()
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}
	m, err := cat.Mapping(mapping)
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}
	src, dst, err := c.resolvePair(cat, source, target)
	if err != nil {
		return err
	}

	holds, err := filter.Tendsto(m, src.Filter, dst.Filter)
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(map[string]interface{}{
			"mapping": mapping, "source": source, "target": target, "tendsto": holds,
		})
	}
	c.printf("tendsto(%s, %s → %s): %v\n", mapping, source, target, holds)
	return nil
}

func (c *CLI) resolvePair(cat *catalog.Catalog, left, right string) (*catalog.NamedFilter, *catalog.NamedFilter, error) {
	a, err := cat.Filter(left)
	if err != nil {
		c.errorf("Error: %v\n", err)
		return nil, nil, err
	}
	b, err := cat.Filter(right)
	if err != nil {
		c.errorf("Error: %v\n", err)
		return nil, nil, err
	}
	return a, b, nil
}
