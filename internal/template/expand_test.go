package template

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestExpand_SubstitutesBoundVariables(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	src := []byte("Hello ${name}!")
	env := Bindings{"name": cty.StringVal("World")}

	// --- Act ---
	text, err := Expand("hello.tpl", src, env)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "Hello World!", text)
}

func TestExpand_ConvertsNonStringResults(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A template that is one bare interpolation evaluates to the value
	// itself; the expander renders it as text.
	src := []byte("${replicas}")
	env := Bindings{"replicas": cty.NumberIntVal(3)}

	// --- Act ---
	text, err := Expand("count.tpl", src, env)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "3", text)
}

func TestExpand_MemberAndIndexAccess(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	env := Bindings{
		"svc": cty.ObjectVal(map[string]cty.Value{
			"host":  cty.StringVal("db.internal"),
			"ports": cty.TupleVal([]cty.Value{cty.NumberIntVal(5432)}),
		}),
	}
	src := []byte("${svc.host}:${svc.ports[0]}")

	// --- Act ---
	text, err := Expand("svc.tpl", src, env)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "db.internal:5432", text)
}

func TestExpand_FunctionsAvailable(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	src := []byte("${upper(name)}")
	env := Bindings{"name": cty.StringVal("world")}

	// --- Act ---
	text, err := Expand("fn.tpl", src, env)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "WORLD", text)
}

func TestExpand_UnboundReferenceFollowsEvaluatorSemantics(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The expander adds no defaulting policy of its own: evaluating an
	// unbound reference fails with the evaluator's diagnostics. Callers who
	// want to reject this earlier run Validate first.
	src := []byte("Hello ${name}!")

	// --- Act ---
	text, err := Expand("hello.tpl", src, Bindings{})

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "name")
	require.Empty(t, text)
}

func TestExpand_SyntaxErrorPropagates(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	src := []byte("Hello ${name")

	// --- Act ---
	_, err := Expand("broken.tpl", src, Bindings{})

	// --- Assert ---
	require.Error(t, err)
}

// stubEvaluator stands in for the host evaluator so the expansion flow can
// be exercised without HCL semantics.
type stubEvaluator struct {
	result string
	diags  hcl.Diagnostics
}

func (s stubEvaluator) Evaluate(_ hclsyntax.Expression, _ Bindings) (string, hcl.Diagnostics) {
	return s.result, s.diags
}

func TestExpander_UsesInjectedEvaluator(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tpl, diags := Parse("stub.tpl", []byte("ignored ${by} stub"))
	require.False(t, diags.HasErrors())
	expander := NewExpanderWith(stubEvaluator{result: "canned output"})

	// --- Act ---
	text, err := expander.Expand(tpl, Bindings{})

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "canned output", text)
}

func TestExpander_WrapsEvaluatorDiagnostics(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tpl, diags := Parse("stub.tpl", []byte("whatever"))
	require.False(t, diags.HasErrors())
	evalDiags := hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "evaluation exploded",
	}}
	expander := NewExpanderWith(stubEvaluator{diags: evalDiags})

	// --- Act ---
	_, err := expander.Expand(tpl, Bindings{})

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "stub.tpl")
	require.Contains(t, err.Error(), "evaluation exploded")
}
