// Package cli provides the command-line interface for filtra.
// The CLI is the local face of the lab: it loads a workspace file, runs
// checks, and inspects attempt history.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filtra-labs/filtra/internal/bootstrap"
	"github.com/filtra-labs/filtra/internal/catalog"
	"github.com/filtra-labs/filtra/internal/config"
	"github.com/filtra-labs/filtra/internal/errors"
)

// Exit codes as defined in docs/plan.md
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitCheck      = 2
	ExitWorkspace  = 3
	ExitInternal   = 4
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// CLI holds the command-line interface state.
type CLI struct {
	rootCmd *cobra.Command
	cfg     *config.Config

	// Global flags
	configPath    string
	endpoint      string
	workspacePath string
	jsonOutput    bool
	quiet         bool
	debug         bool
}

// New creates a new CLI instance.
func New() *CLI {
	cli := &CLI{}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

// Execute runs the CLI and returns the process exit code.
func (c *CLI) Execute() int {
	if err := c.rootCmd.Execute(); err != nil {
		return exitCode(err)
	}
	return ExitSuccess
}

// exitCode maps an error to a process exit code.
func exitCode(err error) int {
	if fe, ok := errors.AsFiltraError(err); ok {
		switch fe.Code {
		case errors.CodeValidation:
			return ExitValidation
		case errors.CodeCheck:
			return ExitCheck
		case errors.CodeWorkspace:
			return ExitWorkspace
		}
	}
	return ExitInternal
}

func (c *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filtra",
		Short: "Filtra - a laboratory for filters on finite universes",
		Long: `Filtra is a workbench for the order theory of filters.

It provides:
  • Filters over small named universes, validated against the three axioms
  • Lattice operations: meet, join, and the induced order
  • Transport of filters along mappings (map and comap)
  • Accept/reject checking of exercises about filters

Workspaces are declarative YAML files; every check is recorded.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig()
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.filtra/config.yaml)")
	cmd.PersistentFlags().StringVar(&c.endpoint, "endpoint", "", "gateway endpoint")
	cmd.PersistentFlags().StringVar(&c.workspacePath, "workspace", "", "workspace file (overrides config)")
	cmd.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "machine-readable JSON output")
	cmd.PersistentFlags().BoolVar(&c.quiet, "quiet", false, "suppress non-essential output")
	cmd.PersistentFlags().BoolVar(&c.debug, "debug", false, "verbose debug logs")

	// Add command groups
	cmd.AddCommand(c.newWorkspaceCmd())
	cmd.AddCommand(c.newFilterCmd())
	cmd.AddCommand(c.newExerciseCmd())
	cmd.AddCommand(c.newCheckCmd())
	cmd.AddCommand(c.newAuditCmd())
	cmd.AddCommand(c.newStatusCmd())
	cmd.AddCommand(c.newDoctorCmd())
	cmd.AddCommand(c.newVersionCmd())

	return cmd
}

func (c *CLI) initConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	// Override with flags
	if c.endpoint != "" {
		c.cfg.Endpoint = c.endpoint
	}
	if c.workspacePath != "" {
		c.cfg.Workspace = c.workspacePath
	}

	return nil
}

// loadCatalog loads, validates, and applies the configured workspace.
func (c *CLI) loadCatalog() (*catalog.Catalog, error) {
	path := c.cfg.Workspace
	c.debugf("Loading workspace: %s\n", path)

	ws, err := bootstrap.LoadWorkspace(path)
	if err != nil {
		return nil, err
	}
	if err := ws.Validate(); err != nil {
		return nil, err
	}
	return ws.Apply()
}

// Helper functions for output

func (c *CLI) printf(format string, args ...interface{}) {
	if !c.quiet {
		fmt.Printf(format, args...)
	}
}

func (c *CLI) println(args ...interface{}) {
	if !c.quiet {
		fmt.Println(args...)
	}
}

func (c *CLI) errorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
}

func (c *CLI) debugf(format string, args ...interface{}) {
	if c.debug {
		fmt.Printf("[DEBUG] "+format, args...)
	}
}

func (c *CLI) outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newGatewayClient creates a new gateway client with current config.
func (c *CLI) newGatewayClient() *GatewayClient {
	return NewGatewayClient(c.cfg.Endpoint)
}
