package template

import "strings"

// Mode selects how Validate reports its result. Quiet and Exception are
// independent bits; when both are set and variables are missing, the
// exception outcome wins, since failing and returning a report are mutually
// exclusive.
type Mode uint

const (
	// ModeList returns the ordered missing list in the report. Zero value.
	ModeList Mode = 0
	// ModeQuiet asks for a pass/fail signal only; callers read Report.OK.
	ModeQuiet Mode = 1 << 0
	// ModeException makes Validate fail with a *MissingVariablesError when
	// any variable is unbound.
	ModeException Mode = 1 << 1
)

// Report is the outcome of one validation pass.
type Report struct {
	// Missing holds the root name of every occurrence whose variable is
	// unbound, in order of appearance. A root used twice while unbound
	// appears twice.
	Missing []string
	// OK is true iff Missing is empty.
	OK bool
}

// MissingVariablesError is the failure raised by ModeException. Names holds
// each missing root once, in order of first appearance.
type MissingVariablesError struct {
	Names []string
}

func (e *MissingVariablesError) Error() string {
	return "missing required variables: " + strings.Join(e.Names, ", ")
}

// FindMissing returns the root names of the references that have no binding
// in env, in the order the references were extracted. The check is
// per-occurrence: it does not deduplicate, mirroring the extractor's output.
func FindMissing(refs []Reference, env Bindings) []string {
	var missing []string
	for _, ref := range refs {
		if !env.Has(ref.Root) {
			missing = append(missing, ref.Root)
		}
	}
	return missing
}

// Validate parses src, extracts its variable references and checks each one
// against env. Parse failures propagate as the parser's own diagnostics,
// never recast as a missing-variable condition.
//
// env must not be mutated by another goroutine during the call; the checks
// within one pass are not atomic against concurrent writes.
func Validate(filename string, src []byte, env Bindings, mode Mode) (*Report, error) {
	tpl, diags := Parse(filename, src)
	if diags.HasErrors() {
		return nil, diags
	}
	return tpl.Validate(env, mode)
}

// Validate runs the check against an already-parsed template.
func (t *Template) Validate(env Bindings, mode Mode) (*Report, error) {
	missing := FindMissing(t.Variables(), env)
	if mode&ModeException != 0 && len(missing) > 0 {
		return nil, &MissingVariablesError{Names: uniqueInOrder(missing)}
	}
	return &Report{Missing: missing, OK: len(missing) == 0}, nil
}

// uniqueInOrder drops repeated names, keeping first-appearance order. The
// error message names each missing variable once; the per-occurrence detail
// stays available through ModeList.
func uniqueInOrder(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}
	return unique
}
