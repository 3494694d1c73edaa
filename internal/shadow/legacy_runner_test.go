package shadow

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLegacyScript returns the path to a temporary script that echoes
// analysis JSON the way the legacy CLI does.
func mockLegacyScript(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	script := filepath.Join(dir, "mock_legacy.sh")
	content := `#!/bin/sh
echo '{"readiness":"ready","route_recommendation":{"recommended_route":"section_8"},"blocking_issues":[],"warnings":[]}'
`
	err := os.WriteFile(script, []byte(content), 0755)
	require.NoError(t, err)
	return script
}

func TestLegacyRunner_MockScript(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on Windows")
	}

	script := mockLegacyScript(t)

	runner := &LegacyRunner{
		NodePath:   script,
		ScriptPath: "unused.js",
	}

	out, err := runner.Run(context.Background(), "/tmp/unused-case.json")
	require.NoError(t, err)
	assert.Contains(t, string(out), "section_8")
	assert.Contains(t, string(out), `"readiness":"ready"`)
}

func TestLegacyRunner_BadPath(t *testing.T) {
	runner := &LegacyRunner{
		NodePath:   "/nonexistent/node",
		ScriptPath: "analyze.js",
	}

	_, err := runner.Run(context.Background(), "/tmp/case.json")
	assert.Error(t, err)
}
