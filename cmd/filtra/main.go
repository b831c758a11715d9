// Package main is the entrypoint for the filtra CLI.
// The CLI provides commands for workspace management, exercise checking,
// and attempt auditing.
package main

import (
	"os"

	"github.com/filtra-labs/filtra/internal/cli"
)

var (
	version   = "0.1.0"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	cli.SetVersionInfo(version, gitCommit, buildDate)
	os.Exit(cli.New().Execute())
}
