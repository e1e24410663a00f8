// Package varfile assembles the binding environment a template is validated
// and expanded against. Bindings can come from HCL var files, YAML var
// files, the process environment, and name=value literals; later sources
// override earlier ones.
package varfile

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/gridtmpl/internal/ctxlog"
	"github.com/vk/gridtmpl/internal/template"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// Load reads one var file, dispatching on its extension: .yaml and .yml are
// decoded as YAML, everything else is parsed as HCL.
func Load(ctx context.Context, path string) (template.Bindings, error) {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return LoadYAML(ctx, path)
	default:
		return LoadHCL(ctx, path)
	}
}

// LoadHCL reads bindings from an HCL file of top-level attributes, e.g.
//
//	name    = "World"
//	replica = 3
//
// Values must be literal: they are evaluated with no variables or functions
// in scope.
func LoadHCL(ctx context.Context, path string) (template.Bindings, error) {
	ctxlog.FromContext(ctx).Debug("Loading HCL var file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse var file %s: %w", path, diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read var file %s: %w", path, diags)
	}

	bindings := make(template.Bindings, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("var %q in %s is not a literal value: %w", name, path, diags)
		}
		bindings[name] = val
	}
	return bindings, nil
}

// LoadYAML reads bindings from a YAML mapping of names to values. Nested
// mappings and sequences become cty objects and tuples, so templates can
// reach into them with member and index syntax.
func LoadYAML(ctx context.Context, path string) (template.Bindings, error) {
	ctxlog.FromContext(ctx).Debug("Loading YAML var file.", "path", path)

	src, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(src, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse var file %s: %w", path, err)
	}

	bindings := make(template.Bindings, len(raw))
	for name, value := range raw {
		val, err := toCty(value)
		if err != nil {
			return nil, fmt.Errorf("var %q in %s: %w", name, path, err)
		}
		bindings[name] = val
	}
	return bindings, nil
}

// ParseLiteral parses a name=value argument into a string binding.
func ParseLiteral(arg string) (string, cty.Value, error) {
	name, value, ok := strings.Cut(arg, "=")
	if !ok || name == "" {
		return "", cty.NilVal, fmt.Errorf("invalid variable %q: expected name=value", arg)
	}
	return name, cty.StringVal(value), nil
}

// FromEnviron builds bindings from KEY=value pairs, typically os.Environ().
// When prefix is non-empty, only keys carrying it are included and the
// prefix is stripped from the binding name.
func FromEnviron(environ []string, prefix string) template.Bindings {
	bindings := make(template.Bindings)
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if prefix != "" {
			if !strings.HasPrefix(name, prefix) {
				continue
			}
			name = strings.TrimPrefix(name, prefix)
		}
		if name == "" {
			continue
		}
		bindings[name] = cty.StringVal(value)
	}
	return bindings
}
