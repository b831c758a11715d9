package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// VersionInfo holds build-time version details.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// SetVersionInfo sets the version details injected at build time.
func SetVersionInfo(version, gitCommit, buildDate string) {
	if version != "" {
		Version = version
	}
	if gitCommit != "" {
		GitCommit = gitCommit
	}
	if buildDate != "" {
		BuildDate = buildDate
	}
}

// GetVersionString returns a short version string.
func GetVersionString() string {
	return fmt.Sprintf("filtra %s (%s)", Version, GitCommit)
}

func (c *CLI) newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVersion()
		},
	}

	return cmd
}

func (c *CLI) runVersion() error {
	info := VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	if c.jsonOutput {
		return c.outputJSON(info)
	}

	c.printf("filtra %s\n", info.Version)
	c.printf("  commit:  %s\n", info.GitCommit)
	c.printf("  built:   %s\n", info.BuildDate)
	c.printf("  go:      %s\n", info.GoVersion)
	c.printf("  target:  %s\n", info.Platform)

	return nil
}
