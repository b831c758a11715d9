// Package bootstrap provides declarative workspace loading and application.
//
// Per docs/plan.md: "Single, explicit workspace model that defines the
// catalog declaratively."
//
// Workspace files must be:
// - human-readable
// - versionable
// - schema-validated
package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/filtra-labs/filtra/internal/catalog"
	"github.com/filtra-labs/filtra/internal/errors"
	"github.com/filtra-labs/filtra/internal/exercises"
	"github.com/filtra-labs/filtra/pkg/models"
)

// Workspace is a loaded declarative workspace file.
type Workspace struct {
	// Definition is the parsed workspace content.
	Definition models.WorkspaceDefinition

	// validated tracks if Validate() has been called
	validated bool

	// path is the source file path
	path string
}

// LoadWorkspace loads a workspace from a YAML file.
// Unknown top-level keys fail.
func LoadWorkspace(path string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace file: %w", err)
	}
	ws, err := ParseWorkspace(data)
	if err != nil {
		return nil, err
	}
	ws.path = path
	return ws, nil
}

// ParseWorkspace parses workspace YAML content.
func ParseWorkspace(data []byte) (*Workspace, error) {
	// First pass: check for unknown fields
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse workspace YAML: %w", err)
	}
	knownKeys := map[string]bool{
		"universes": true,
		"mappings":  true,
		"filters":   true,
		"exercises": true,
	}
	for key := range raw {
		if !knownKeys[key] {
			return nil, errors.NewInvalidWorkspace(key, "unknown workspace key")
		}
	}

	// Second pass: unmarshal into the typed definition
	var def models.WorkspaceDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to unmarshal workspace: %w", err)
	}

	if len(def.Universes) == 0 {
		return nil, errors.NewInvalidWorkspace("universes", "at least one universe is required")
	}

	return &Workspace{Definition: def}, nil
}

// Path returns the source file path, if the workspace was loaded from disk.
func (w *Workspace) Path() string {
	return w.path
}

// Validate performs a dry-run build of the whole workspace: every universe,
// mapping, filter, and exercise is constructed into a scratch catalog and
// discarded. The first failure is returned.
func (w *Workspace) Validate() error {
	if _, err := w.build(); err != nil {
		return err
	}
	w.validated = true
	return nil
}

// IsValidated returns true if Validate() has been called successfully.
func (w *Workspace) IsValidated() bool {
	return w.validated
}

// Apply builds the workspace into a catalog.
// The workspace must be validated first.
func (w *Workspace) Apply() (*catalog.Catalog, error) {
	if !w.validated {
		return nil, errors.NewInvalidWorkspace("workspace", "workspace must be validated before apply")
	}
	return w.build()
}

func (w *Workspace) build() (*catalog.Catalog, error) {
	cat := catalog.New()

	for _, def := range w.Definition.Universes {
		u, err := catalog.BuildUniverse(def)
		if err != nil {
			return nil, errors.NewInvalidWorkspace("universes", fmt.Sprintf("universe %q: %v", def.Name, err))
		}
		if err := cat.AddUniverse(def.Name, u); err != nil {
			return nil, err
		}
	}

	for _, def := range w.Definition.Mappings {
		m, err := cat.BuildMapping(def)
		if err != nil {
			return nil, err
		}
		if err := cat.AddMapping(def.Name, m); err != nil {
			return nil, err
		}
	}

	for _, def := range w.Definition.Filters {
		nf, err := cat.BuildFilter(def)
		if err != nil {
			return nil, err
		}
		if err := cat.AddFilter(nf); err != nil {
			return nil, err
		}
	}

	for _, def := range w.Definition.Exercises {
		ex, err := exercises.FromDefinition(def)
		if err != nil {
			return nil, err
		}
		if err := ex.Validate(); err != nil {
			return nil, err
		}
		if _, err := cat.Universe(ex.Universe); err != nil {
			return nil, err
		}
		if err := cat.AddExercise(ex); err != nil {
			return nil, err
		}
	}

	return cat, nil
}

// Init generates an example workspace file in dir.
func Init(dir string) (string, error) {
	workspacePath := filepath.Join(dir, "filtra.yaml")

	exampleWorkspace := `# Filtra Workspace
# Generated by 'filtra workspace init'
# See docs/plan.md for the full schema

universes:
  - name: naturals
    elements: [n0, n1, n2, n3, n4, n5, n6, n7]
  - name: bits
    elements: [zero, one]

mappings:
  - name: parity
    from: naturals
    to: bits
    assign:
      n0: zero
      n1: one
      n2: zero
      n3: one
      n4: zero
      n5: one
      n6: zero
      n7: one

filters:
  - name: tail-4
    universe: naturals
    description: Sets containing every natural from n4 on
    principal: [n4, n5, n6, n7]
  - name: evens
    universe: naturals
    description: Sets containing all even naturals
    principal: [n0, n2, n4, n6]

exercises:
  - name: tail-meets-evens
    title: The tail filter meets the even filter above bottom
    form: SOLUTION
    universe: naturals
    goal:
      kind: LEQ
      left:
        meet:
          - ref: tail-4
          - ref: evens
      right:
        ref: tail-4
    expect: ACCEPTED
  - name: parity-limit
    title: Fill in the filter the tail pushes forward to
    form: PROBLEM
    universe: naturals
    goal:
      kind: TENDSTO
      mapping: parity
      left:
        ref: evens
      right:
        hole: true
`

	if err := os.WriteFile(workspacePath, []byte(exampleWorkspace), 0644); err != nil {
		return "", fmt.Errorf("failed to write workspace file: %w", err)
	}

	return workspacePath, nil
}
