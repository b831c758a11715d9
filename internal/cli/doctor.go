package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filtra-labs/filtra/internal/bootstrap"
)

// DiagnosticCheck is one doctor check result.
type DiagnosticCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Message string `json:"message"`
}

func (c *CLI) newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the local setup",
		Long: `Run diagnostic checks on the local filtra setup.

Checks:
  - Configuration loads
  - Workspace file exists and validates
  - Attempt store opens and migrates
  - Gateway is reachable (warning only: the CLI works without one)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDoctor(cmd.Context())
		},
	}

	return cmd
}

func (c *CLI) runDoctor(ctx context.Context) error {
	checks := []DiagnosticCheck{
		c.checkConfiguration(),
		c.checkWorkspace(),
		c.checkAttemptStore(ctx),
		c.checkGateway(ctx),
	}

	if c.jsonOutput {
		return c.outputJSON(map[string]interface{}{"checks": checks})
	}

	c.println("Running filtra diagnostics...")
	c.println()
	hasErrors := false
	for _, check := range checks {
		c.printCheck(check)
		if check.Status == "error" {
			hasErrors = true
		}
	}
	c.println()

	if hasErrors {
		c.println("Some checks failed. Fix the errors above and re-run 'filtra doctor'.")
		return fmt.Errorf("diagnostics failed")
	}
	c.println("All checks passed.")
	return nil
}

func (c *CLI) checkConfiguration() DiagnosticCheck {
	check := DiagnosticCheck{Name: "Configuration"}
	if c.cfg == nil {
		check.Status = "error"
		check.Message = "configuration not loaded"
		return check
	}
	check.Status = "ok"
	check.Message = fmt.Sprintf("workspace=%s store=%s", c.cfg.Workspace, c.cfg.Database.Path)
	return check
}

func (c *CLI) checkWorkspace() DiagnosticCheck {
	check := DiagnosticCheck{Name: "Workspace"}

	path := c.cfg.Workspace
	if _, err := os.Stat(path); os.IsNotExist(err) {
		check.Status = "error"
		check.Message = fmt.Sprintf("file not found: %s (run 'filtra workspace init')", path)
		return check
	}

	ws, err := bootstrap.LoadWorkspace(path)
	if err != nil {
		check.Status = "error"
		check.Message = err.Error()
		return check
	}
	if err := ws.Validate(); err != nil {
		check.Status = "error"
		check.Message = err.Error()
		return check
	}

	check.Status = "ok"
	check.Message = fmt.Sprintf("%d universes, %d filters, %d exercises",
		len(ws.Definition.Universes), len(ws.Definition.Filters), len(ws.Definition.Exercises))
	return check
}

func (c *CLI) checkAttemptStore(ctx context.Context) DiagnosticCheck {
	check := DiagnosticCheck{Name: "Attempt store"}

	repo, cleanup, err := c.openAttemptStore(ctx)
	if err != nil {
		check.Status = "error"
		check.Message = err.Error()
		return check
	}
	defer cleanup()

	if err := repo.CheckConnectivity(ctx); err != nil {
		check.Status = "error"
		check.Message = err.Error()
		return check
	}

	check.Status = "ok"
	check.Message = fmt.Sprintf("schema up to date at %s", c.cfg.Database.Path)
	return check
}

func (c *CLI) checkGateway(ctx context.Context) DiagnosticCheck {
	check := DiagnosticCheck{Name: "Gateway"}

	client := c.newGatewayClient()
	healthy, err := client.CheckHealth(ctx)
	if err != nil {
		check.Status = "warning"
		check.Message = fmt.Sprintf("unreachable at %s (local commands still work)", client.Endpoint())
		return check
	}
	if !healthy {
		check.Status = "warning"
		check.Message = fmt.Sprintf("unhealthy at %s", client.Endpoint())
		return check
	}

	check.Status = "ok"
	check.Message = fmt.Sprintf("reachable at %s", client.Endpoint())
	return check
}

func (c *CLI) printCheck(check DiagnosticCheck) {
	var symbol string
	switch check.Status {
	case "ok":
		symbol = "✓"
	case "warning":
		symbol = "⚠"
	default:
		symbol = "✗"
	}
	c.printf("%s %s: %s\n", symbol, check.Name, check.Message)
}
