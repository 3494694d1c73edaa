package shadow

import (
	"context"
	"fmt"
	"os/exec"
)

// LegacyRunner invokes the legacy Node analyze CLI and captures JSON output.
type LegacyRunner struct {
	NodePath   string
	ScriptPath string
}

// Run executes the legacy analysis on the given case fixture and returns its
// JSON output.
func (r *LegacyRunner) Run(ctx context.Context, fixturePath string) ([]byte, error) {
	args := []string{
		r.ScriptPath,
		"analyze",
		"--case", fixturePath,
		"--json-output",
	}
	cmd := exec.CommandContext(ctx, r.NodePath, args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("legacy CLI failed: %s\n%s", err, exitErr.Stderr)
		}
		return nil, fmt.Errorf("legacy CLI: %w", err)
	}
	return out, nil
}
