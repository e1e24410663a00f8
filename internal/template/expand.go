package template

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Evaluator is the host expression-evaluation capability. The default
// implementation delegates to HCL itself; tests inject stubs to exercise the
// expansion flow without a real evaluator.
type Evaluator interface {
	Evaluate(expr hclsyntax.Expression, env Bindings) (string, hcl.Diagnostics)
}

// hclEvaluator evaluates the template expression with HCL's own semantics.
// An unbound variable reference is an evaluation error here; callers who
// want to reject that case up front run Validate before expanding.
type hclEvaluator struct{}

func (hclEvaluator) Evaluate(expr hclsyntax.Expression, env Bindings) (string, hcl.Diagnostics) {
	val, diags := expr.Value(env.EvalContext())
	if diags.HasErrors() {
		return "", diags
	}

	strVal, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid template result",
			Detail:   fmt.Sprintf("The template result cannot be rendered as text: %s.", err),
			Subject:  expr.Range().Ptr(),
		}}
	}
	if strVal.IsNull() {
		return "", hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid template result",
			Detail:   "The template produced a null value.",
			Subject:  expr.Range().Ptr(),
		}}
	}
	return strVal.AsString(), nil
}

// Expander substitutes all references and expressions in a template,
// producing the final text.
type Expander struct {
	eval Evaluator
}

// NewExpander returns an Expander backed by the HCL evaluator.
func NewExpander() *Expander {
	return &Expander{eval: hclEvaluator{}}
}

// NewExpanderWith returns an Expander backed by a caller-supplied evaluator.
func NewExpanderWith(eval Evaluator) *Expander {
	return &Expander{eval: eval}
}

// Expand evaluates the template against env and returns the substituted
// text. Evaluation failures come back as the evaluator's diagnostics,
// wrapped with the template's filename.
func (e *Expander) Expand(tpl *Template, env Bindings) (string, error) {
	text, diags := e.eval.Evaluate(tpl.expr, env)
	if diags.HasErrors() {
		return "", fmt.Errorf("failed to expand template %s: %w", tpl.Filename, diags)
	}
	return text, nil
}

// Expand is a convenience for parse-then-expand with the default evaluator.
// Parse diagnostics propagate unmodified.
func Expand(filename string, src []byte, env Bindings) (string, error) {
	tpl, diags := Parse(filename, src)
	if diags.HasErrors() {
		return "", diags
	}
	return NewExpander().Expand(tpl, env)
}
