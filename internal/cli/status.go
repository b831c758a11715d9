package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/filtra-labs/filtra/internal/status"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show gateway status",
		Long: `Show the operational status of the configured gateway.

Reports gateway readiness, attempt store health, and the loaded
workspace.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStatus(cmd.Context())
		},
	}

	return cmd
}

func (c *CLI) runStatus(ctx context.Context) error {
	client := c.newGatewayClient()
	checker := status.NewFuncStatusChecker(
		func(ctx context.Context) *status.ReadinessResult {
			return c.fetchReadiness(ctx, client)
		},
		func() string { return Version },
	)

	result, err := checker.GetStatus(ctx)
	if err != nil {
		c.errorf("Error: %v\n", err)
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(result)
	}

	c.printf("Gateway:   %s\n", client.Endpoint())
	if result.Ready {
		c.println("Status:    ready")
	} else {
		c.printf("Status:    not ready (%s)\n", result.Reason)
	}
	c.printf("Store:     %s\n", result.StoreHealth)
	c.printf("Workspace: %s\n", result.WorkspaceMessage)
	c.printf("Version:   %s\n", result.Version)

	return nil
}

// fetchReadiness adapts the gateway readiness response for the status
// checker. An unreachable gateway reads as a single failed component.
func (c *CLI) fetchReadiness(ctx context.Context, client *GatewayClient) *status.ReadinessResult {
	info, err := client.GetReadiness(ctx)
	if err != nil {
		return &status.ReadinessResult{
			Ready: false,
			Components: map[string]status.ComponentStatus{
				"store": {Ready: false, Message: "gateway unreachable: " + err.Error()},
			},
		}
	}

	result := &status.ReadinessResult{
		Ready:      info.Ready,
		Components: make(map[string]status.ComponentStatus),
	}
	for name, comp := range info.Components {
		result.Components[name] = status.ComponentStatus{
			Ready:   comp.Ready,
			Message: comp.Message,
		}
	}
	return result
}
