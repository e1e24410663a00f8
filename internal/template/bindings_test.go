package template

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestBindings_HasIsExistenceOnly(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	env := Bindings{
		"present": cty.StringVal("value"),
		"empty":   cty.StringVal(""),
		"null":    cty.NullVal(cty.String),
	}

	// --- Act / Assert ---
	require.True(t, env.Has("present"))
	require.True(t, env.Has("empty"))
	require.True(t, env.Has("null"))
	require.False(t, env.Has("absent"))
}

func TestBindings_MergeOverridesAndLeavesInputsAlone(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	base := Bindings{"a": cty.StringVal("base"), "b": cty.StringVal("keep")}
	overlay := Bindings{"a": cty.StringVal("overlay"), "c": cty.StringVal("new")}

	// --- Act ---
	merged := base.Merge(overlay)

	// --- Assert ---
	require.Equal(t, cty.StringVal("overlay"), merged["a"])
	require.Equal(t, cty.StringVal("keep"), merged["b"])
	require.Equal(t, cty.StringVal("new"), merged["c"])
	require.Equal(t, cty.StringVal("base"), base["a"], "Merge must not mutate the receiver")
	require.NotContains(t, overlay, "b")
}

func TestBindings_EvalContextIsASnapshot(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	env := Bindings{"a": cty.StringVal("before")}

	// --- Act ---
	evalCtx := env.EvalContext()
	env["b"] = cty.StringVal("added later")

	// --- Assert ---
	require.Contains(t, evalCtx.Variables, "a")
	require.NotContains(t, evalCtx.Variables, "b")
	require.NotEmpty(t, evalCtx.Functions, "the standard function table is attached")
}
