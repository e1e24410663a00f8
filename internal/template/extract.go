package template

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// Reference is one syntactic occurrence of a variable inside a template.
// Root is the variable's identifier; Traversal carries the full access path,
// so `${x}` and `${x.Name}` produce distinct references sharing a root.
type Reference struct {
	Root      string
	Traversal hcl.Traversal
}

// String renders the reference's canonical path, e.g. "x.Name" or "y[0]".
func (r Reference) String() string {
	return string(hclwrite.TokensForTraversal(r.Traversal).Bytes())
}

// SourceRange reports where in the template this occurrence appears.
func (r Reference) SourceRange() hcl.Range {
	return r.Traversal.SourceRange()
}

// Variables returns every variable reference in the template, in source
// order. One entry is returned per syntactic occurrence: duplicates are NOT
// collapsed, and references nested inside other expressions (index keys,
// function arguments, conditionals) are each reported independently. A
// template with no interpolation yields an empty slice.
func (t *Template) Variables() []Reference {
	traversals := t.expr.Variables()
	refs := make([]Reference, 0, len(traversals))
	for _, traversal := range traversals {
		refs = append(refs, Reference{
			Root:      traversal.RootName(),
			Traversal: traversal,
		})
	}
	return refs
}

// ExtractVariables parses src and returns its variable references in source
// order. It is Parse followed by Variables; parse diagnostics are returned
// unmodified.
func ExtractVariables(filename string, src []byte) ([]Reference, hcl.Diagnostics) {
	tpl, diags := Parse(filename, src)
	if diags.HasErrors() {
		return nil, diags
	}
	return tpl.Variables(), diags
}

// RootNames projects a reference list down to its root names, preserving
// order and duplicates. Callers needing a unique set must deduplicate
// themselves.
func RootNames(refs []Reference) []string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Root)
	}
	return names
}
