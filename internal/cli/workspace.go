package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/filtra-labs/filtra/internal/bootstrap"
)

func (c *CLI) newWorkspaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Workspace management",
		Long: `Manage declarative workspace files.

A workspace defines the universes, mappings, filters, and exercises the
lab works with, applied as one unit.

Commands:
  init     - Generate an example workspace
  validate - Validate a workspace against the schema
  show     - Show the contents of a workspace`,
	}

	cmd.AddCommand(c.newWorkspaceInitCmd())
	cmd.AddCommand(c.newWorkspaceValidateCmd())
	cmd.AddCommand(c.newWorkspaceShowCmd())

	return cmd
}

func (c *CLI) newWorkspaceInitCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate an example workspace",
		Long: `Generate an example workspace file.

This command does NOT modify any existing workspace - it only creates a
template file to start from.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWorkspaceInit(outputDir)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "output directory for the workspace file")

	return cmd
}

func (c *CLI) runWorkspaceInit(outputDir string) error {
	workspacePath, err := bootstrap.Init(outputDir)
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}

	absPath, _ := filepath.Abs(workspacePath)

	if c.jsonOutput {
		return c.outputJSON(map[string]interface{}{
			"status": "created",
			"path":   absPath,
		})
	}

	c.printf("✓ Workspace file created: %s\n", absPath)
	c.println("\nNext steps:")
	c.println("  1. Edit the workspace to define your universes and filters")
	c.println("  2. Run 'filtra workspace validate' to check it")
	c.println("  3. Run 'filtra check <exercise>' to check an exercise")

	return nil
}

func (c *CLI) newWorkspaceValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a workspace",
		Long: `Validate a workspace file against the schema and perform a dry-run
build of every object it defines.

This command:
  - Validates the YAML structure (unknown keys fail)
  - Constructs every universe, mapping, filter, and exercise
  - Reports the first axiom violation or reference error

No state is modified.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWorkspaceValidate()
		},
	}

	return cmd
}

func (c *CLI) runWorkspaceValidate() error {
	path := c.cfg.Workspace
	c.debugf("Validating workspace: %s\n", path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		c.errorf("Error: workspace file not found: %s\n", path)
		c.errorf("Suggestion: run 'filtra workspace init' to create one\n")
		return err
	}

	ws, err := bootstrap.LoadWorkspace(path)
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}

	if err := ws.Validate(); err != nil {
		c.errorf("Validation failed: %v\n", err)
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(map[string]interface{}{
			"status":         "valid",
			"path":           path,
			"universe_count": len(ws.Definition.Universes),
			"mapping_count":  len(ws.Definition.Mappings),
			"filter_count":   len(ws.Definition.Filters),
			"exercise_count": len(ws.Definition.Exercises),
		})
	}

	c.printf("✓ Workspace is valid: %s\n", path)
	c.println("\nWorkspace summary:")
	c.printf("  Universes: %d defined\n", len(ws.Definition.Universes))
	c.printf("  Mappings:  %d defined\n", len(ws.Definition.Mappings))
	c.printf("  Filters:   %d defined\n", len(ws.Definition.Filters))
	c.printf("  Exercises: %d defined\n", len(ws.Definition.Exercises))

	return nil
}

func (c *CLI) newWorkspaceShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the workspace contents",
		Long:  `Display the universes, mappings, filters, and exercises of the workspace.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWorkspaceShow()
		},
	}

	return cmd
}

func (c *CLI) runWorkspaceShow() error {
	cat, err := c.loadCatalog()
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(map[string]interface{}{
			"universes": cat.UniverseNames(),
			"mappings":  cat.MappingNames(),
			"filters":   cat.FilterNames(),
			"exercises": len(cat.Exercises()),
		})
	}

	c.println("Universes:")
	for _, name := range cat.UniverseNames() {
		u, _ := cat.Universe(name)
		c.printf("  - %s: %s\n", name, u)
	}

	if names := cat.MappingNames(); len(names) > 0 {
		c.println("\nMappings:")
		for _, name := range names {
			m, _ := cat.Mapping(name)
			c.printf("  - %s: %s\n", name, m)
		}
	}

	if names := cat.FilterNames(); len(names) > 0 {
		c.println("\nFilters:")
		for _, name := range names {
			nf, _ := cat.Filter(name)
			c.printf("  - %s: %s\n", name, nf.Filter)
		}
	}

	if exs := cat.Exercises(); len(exs) > 0 {
		c.println("\nExercises:")
		for _, ex := range exs {
			c.printf("  - %s [%s, %s]\n", ex.Name, ex.Form, ex.Kind)
		}
	}

	return nil
}
