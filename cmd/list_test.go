package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_LeavesFilesUntouched(t *testing.T) {
	root := t.TempDir()

	content := "let a = 1;\nlet b = 2;\nfn run() {}"
	writeFixture(t, filepath.Join(root, "main.rs"), content)

	err := executeCommand(t, "list", root)
	require.NoError(t, err)

	assert.Equal(t, content, readFixture(t, filepath.Join(root, "main.rs")))
}

func TestListCmd_MissingRootFails(t *testing.T) {
	err := executeCommand(t, "list", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
