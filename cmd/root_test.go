package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/smudge-dev/smudge/internal/model"
)

func TestRootCmd_ShowsHelp(t *testing.T) {
	buf := &bytes.Buffer{}

	cmd := newRootCmd()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "identifier obfuscator")
}

func TestParsePaths_Explicit(t *testing.T) {
	paths := parsePaths([]string{"lib", "vendor"})

	require.Len(t, paths, 2)
	assert.Equal(t, m.Path("lib"), paths[0])
	assert.Equal(t, m.Path("vendor"), paths[1])
}

func TestParsePaths_DefaultsToConfiguredRoots(t *testing.T) {
	paths := parsePaths(nil)

	require.Len(t, paths, 1)
	assert.Equal(t, m.Path("src"), paths[0])
}

func TestRulesFromConfig_Defaults(t *testing.T) {
	rules := rulesFromConfig()

	require.Len(t, rules, 2)
	assert.Equal(t, "let", rules[0].Keyword)
	assert.Equal(t, "var", rules[0].Prefix)
	assert.Equal(t, "fn", rules[1].Keyword)
	assert.Equal(t, "func", rules[1].Prefix)
}
