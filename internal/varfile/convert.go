package varfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// toCty converts a decoded YAML value into its cty equivalent. Mappings
// become objects and sequences become tuples, so mixed-type collections are
// representable. Scalars go through gocty's implied-type conversion.
func toCty(value any) (cty.Value, error) {
	switch v := value.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case map[string]any:
		attrs := make(map[string]cty.Value, len(v))
		for key, elem := range v {
			converted, err := toCty(elem)
			if err != nil {
				return cty.NilVal, fmt.Errorf("key %q: %w", key, err)
			}
			attrs[key] = converted
		}
		if len(attrs) == 0 {
			return cty.EmptyObjectVal, nil
		}
		return cty.ObjectVal(attrs), nil
	case []any:
		elems := make([]cty.Value, 0, len(v))
		for i, elem := range v {
			converted, err := toCty(elem)
			if err != nil {
				return cty.NilVal, fmt.Errorf("index %d: %w", i, err)
			}
			elems = append(elems, converted)
		}
		if len(elems) == 0 {
			return cty.EmptyTupleVal, nil
		}
		return cty.TupleVal(elems), nil
	default:
		ty, err := gocty.ImpliedType(v)
		if err != nil {
			return cty.NilVal, fmt.Errorf("unsupported value of type %T: %w", v, err)
		}
		return gocty.ToCtyValue(v, ty)
	}
}

// readFile reads a var file, normalizing a missing file into a plain error
// rather than an os.PathError.
func readFile(path string) ([]byte, error) {
	src, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("var file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading var file %s: %w", path, err)
	}
	return src, nil
}
