package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestViewCmd_AfterRun(t *testing.T) {
	root := t.TempDir()
	reports := t.TempDir()

	writeFixture(t, filepath.Join(root, "main.rs"), "let x = 1;")

	require.NoError(t, executeCommand(t, "run", "--output", reports, root))
	require.NoError(t, executeCommand(t, "view", "--output", reports))
}

func TestViewCmd_EmptyReportsDir(t *testing.T) {
	err := executeCommand(t, "view", "--output", t.TempDir())
	require.NoError(t, err)
}
