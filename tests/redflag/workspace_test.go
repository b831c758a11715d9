package redflag

import (
	stderrors "errors"
	"testing"

	"github.com/filtra-labs/filtra/internal/bootstrap"
	ferrors "github.com/filtra-labs/filtra/internal/errors"
)

// TestUnknownWorkspaceKeysRefused tests that a workspace with an
// unrecognized top-level key never parses. Typos must fail loudly, not
// silently drop a section.
func TestUnknownWorkspaceKeysRefused(t *testing.T) {
	_, err := bootstrap.ParseWorkspace([]byte(`
universes:
  - name: nat
    elements: [n0, n1]
filtres:
  - name: oops
    universe: nat
    top: true
`))
	var invalid *ferrors.ErrInvalidWorkspace
	if !stderrors.As(err, &invalid) {
		t.Fatalf("ParseWorkspace() = %v, want ErrInvalidWorkspace", err)
	}
	if invalid.Section != "filtres" {
		t.Errorf("section = %q, want the offending key", invalid.Section)
	}
}

// TestWorkspaceWithoutUniversesRefused tests that a workspace must declare
// at least one carrier.
func TestWorkspaceWithoutUniversesRefused(t *testing.T) {
	_, err := bootstrap.ParseWorkspace([]byte(`
filters: []
`))
	var invalid *ferrors.ErrInvalidWorkspace
	if !stderrors.As(err, &invalid) {
		t.Errorf("ParseWorkspace() = %v, want ErrInvalidWorkspace", err)
	}
}

// TestBrokenWorkspacesNeverValidate tests that validation dry-builds every
// definition and refuses workspaces with unresolvable or unlawful content.
func TestBrokenWorkspacesNeverValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "filter over unknown universe",
			yaml: `
universes:
  - name: nat
    elements: [n0, n1]
filters:
  - name: ghost
    universe: missing
    top: true
`,
		},
		{
			name: "members violate upward closure",
			yaml: `
universes:
  - name: nat
    elements: [n0, n1, n2]
filters:
  - name: broken
    universe: nat
    members:
      - [n0, n1, n2]
      - [n0]
`,
		},
		{
			name: "exercise over unknown universe",
			yaml: `
universes:
  - name: nat
    elements: [n0, n1]
exercises:
  - name: lost
    form: SOLUTION
    universe: missing
    goal:
      kind: LEQ
      left: {top: true}
      right: {top: true}
`,
		},
		{
			name: "mapping with unassigned element",
			yaml: `
universes:
  - name: nat
    elements: [n0, n1]
  - name: bits
    elements: [zero, one]
mappings:
  - name: partial
    from: nat
    to: bits
    assign:
      n0: zero
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws, err := bootstrap.ParseWorkspace([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("ParseWorkspace() error: %v", err)
			}
			if err := ws.Validate(); err == nil {
				t.Error("Validate() expected error, got nil")
			}
			if ws.IsValidated() {
				t.Error("workspace marked validated after a failed validation")
			}
		})
	}
}

// TestApplyRequiresValidation tests that an unvalidated workspace can
// never be applied, even when its content is fine.
func TestApplyRequiresValidation(t *testing.T) {
	ws, err := bootstrap.ParseWorkspace([]byte(`
universes:
  - name: nat
    elements: [n0, n1]
`))
	if err != nil {
		t.Fatalf("ParseWorkspace() error: %v", err)
	}

	_, err = ws.Apply()
	var invalid *ferrors.ErrInvalidWorkspace
	if !stderrors.As(err, &invalid) {
		t.Errorf("Apply() before Validate() = %v, want ErrInvalidWorkspace", err)
	}
}
