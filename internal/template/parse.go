package template

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// Template is a parsed template. It wraps the HCL template expression that
// resulted from parsing the raw text, and is the input to both variable
// extraction and expansion. A Template is immutable once created.
type Template struct {
	// Filename is the name the source was parsed under. It appears in
	// diagnostic messages only; it does not need to exist on disk.
	Filename string

	expr hclsyntax.Expression
}

// Parse wraps src as an HCL template expression and parses it without
// evaluating anything. Interpolation segments (${...}) become live
// sub-expressions in the returned tree.
//
// The returned diagnostics carry the parser's own error messages when the
// text is not valid template syntax; they are returned as-is so callers can
// distinguish "unparseable" from "parseable but missing bindings".
func Parse(filename string, src []byte) (*Template, hcl.Diagnostics) {
	expr, diags := hclsyntax.ParseTemplate(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}
	return &Template{Filename: filename, expr: expr}, diags
}
