package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteText_EndToEnd(t *testing.T) {
	input := "let x = 1;\nfn doWork() { return x; }"

	out, captures, err := RewriteText(input, DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, "let var_0 = 1;\nfn func_0() { return var_0; }", out)
	require.Len(t, captures, 2)
	assert.Equal(t, "x", captures[0].Name)
	assert.Equal(t, "doWork", captures[1].Name)
}

func TestRewriteText_NoDeclarationsIsIdentity(t *testing.T) {
	input := "const PI = 3.14;\n// nothing declared here\n"

	out, captures, err := RewriteText(input, DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, input, out)
	assert.Empty(t, captures)
}

func TestRewriteText_WholeWordOnly(t *testing.T) {
	input := "let counter = 0;\ncounter += counterValue;\nlet counterValue = counter;"

	out, _, err := RewriteText(input, DefaultRules())
	require.NoError(t, err)

	// counter and counterValue are both declared; counter must never be
	// rewritten inside counterValue.
	assert.Equal(t, "let var_0 = 0;\nvar_0 += var_1;\nlet var_1 = var_0;", out)
}

func TestRewriteText_SecondApplicationIsNoOp(t *testing.T) {
	input := "let x = 1;\nfn doWork() { return x; }"

	first, _, err := RewriteText(input, DefaultRules())
	require.NoError(t, err)

	// The second run re-captures the synthetic names (the keywords are
	// still in place) but maps each var_i/func_i back onto itself, so the
	// text is stable.
	second, captures, err := RewriteText(first, DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, captures, 2)
}

func TestRewriteText_DuplicateDeclarations(t *testing.T) {
	input := "let a = 1;\nlet a = 2;\na;"

	out, captures, err := RewriteText(input, DefaultRules())
	require.NoError(t, err)

	// Both captures carry the same name. The first substitution consumes
	// every occurrence, so the second (index 1) finds nothing to replace.
	assert.Equal(t, "let var_0 = 1;\nlet var_0 = 2;\nvar_0;", out)
	require.Len(t, captures, 2)
	assert.Equal(t, 0, captures[0].Index)
	assert.Equal(t, 1, captures[1].Index)
}

func TestRewriteText_SyntheticNameCollision(t *testing.T) {
	// var_1 is itself declared first; the index-0 substitution renames it
	// to var_0, then the index-1 substitution renames b to var_1. The
	// collision hazard is structural and deliberately preserved.
	input := "let var_1 = 1;\nlet b = 2;"

	out, _, err := RewriteText(input, DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, "let var_0 = 1;\nlet var_1 = 2;", out)
}

func TestRewriteText_FunctionRoundSeesVariableSubstitutedText(t *testing.T) {
	// The function name collides with a variable name. The variable round
	// runs first and rewrites every whole-word "work", including the one
	// after fn, so the function round captures the synthetic name instead.
	input := "let work = 1;\nfn work() {}"

	out, captures, err := RewriteText(input, DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, "let func_0 = 1;\nfn func_0() {}", out)
	require.Len(t, captures, 2)
	assert.Equal(t, "work", captures[0].Name)
	assert.Equal(t, "var_0", captures[1].Name)
}

func TestReplaceWholeWord(t *testing.T) {
	assert.Equal(t, "var_0 + counterValue", ReplaceWholeWord("counter + counterValue", "counter", "var_0"))
	assert.Equal(t, "a var_0 b var_0", ReplaceWholeWord("a x b x", "x", "var_0"))
	assert.Equal(t, "no match", ReplaceWholeWord("no match", "absent", "var_0"))
}

func TestApplyRound_SingleRule(t *testing.T) {
	out, captures, err := ApplyRound("let a = 1; let b = a;", DefaultRules()[0])
	require.NoError(t, err)

	assert.Equal(t, "let var_0 = 1; let var_1 = var_0;", out)
	require.Len(t, captures, 2)
	assert.Equal(t, "a", captures[0].Name)
	assert.Equal(t, "b", captures[1].Name)
}
