package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanCmd_DoesNotModifyFiles(t *testing.T) {
	root := t.TempDir()

	content := "let x = 1;\nfn doWork() { return x; }"
	writeFixture(t, filepath.Join(root, "main.rs"), content)

	err := executeCommand(t, "plan", root)
	require.NoError(t, err)

	assert.Equal(t, content, readFixture(t, filepath.Join(root, "main.rs")))
}

func TestPlanCmd_EmptyTree(t *testing.T) {
	err := executeCommand(t, "plan", t.TempDir())
	require.NoError(t, err)
}
