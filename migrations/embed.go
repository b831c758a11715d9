// Package migrations provides embedded migration SQL files for the attempt
// store. The migration runner in internal/storage applies them on startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
