package template

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Bindings is the set of name-to-value associations a template is checked or
// expanded against. It is a plain map: the caller owns it and must not
// mutate it while a validation or expansion call is in flight if it needs a
// consistent snapshot.
type Bindings map[string]cty.Value

// Has reports whether a binding for name exists. This is an existence check
// only: a name bound to a null or empty value still counts as present.
// Whether an empty value is acceptable is an expansion-time concern, not a
// validation-time one.
func (b Bindings) Has(name string) bool {
	_, ok := b[name]
	return ok
}

// Merge returns a new Bindings containing b overlaid with other; names
// present in both take other's value. Neither input is modified.
func (b Bindings) Merge(other Bindings) Bindings {
	merged := make(Bindings, len(b)+len(other))
	for name, val := range b {
		merged[name] = val
	}
	for name, val := range other {
		merged[name] = val
	}
	return merged
}

// EvalContext projects the bindings into an HCL evaluation context for the
// host evaluator, with the standard function table attached. The variable
// map is copied, so later changes to b do not leak into an evaluation
// already under way.
func (b Bindings) EvalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(b))
	for name, val := range b {
		vars[name] = val
	}
	return &hcl.EvalContext{
		Variables: vars,
		Functions: Functions(),
	}
}
