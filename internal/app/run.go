package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/vk/gridtmpl/internal/ctxlog"
	"github.com/vk/gridtmpl/internal/source"
	"github.com/vk/gridtmpl/internal/template"
	"github.com/vk/gridtmpl/internal/varfile"
)

// ErrCheckFailed signals a failed quiet-mode check. It carries no message:
// quiet mode exists to gate automation through the exit code alone.
var ErrCheckFailed = errors.New("check failed")

// Run executes the main application logic based on the App's configuration:
// assemble bindings, resolve the template path, then validate (and, unless
// CheckOnly is set, expand) every template found.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	env, err := a.assembleBindings(ctx)
	if err != nil {
		return err
	}

	files, err := source.Resolve(ctx, a.config.TemplatePath)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		a.logger.Warn("No template files found in path.", "path", a.config.TemplatePath)
		return nil
	}
	a.logger.Debug("Template files resolved.", "count", len(files))

	if a.config.OutPath != "" && a.config.OutPath != "-" && len(files) > 1 {
		return fmt.Errorf("cannot use a single output path with %d templates", len(files))
	}

	for _, file := range files {
		if err := a.processTemplate(ctx, file, env); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// processTemplate validates one template and, in expand mode, writes its
// expansion. Validation always gates expansion: an unbound variable stops
// the run before any output is produced.
func (a *App) processTemplate(ctx context.Context, file string, env template.Bindings) error {
	logger := ctxlog.FromContext(ctx)

	src, err := source.Read(ctx, file)
	if err != nil {
		return err
	}

	tpl, diags := template.Parse(file, src)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse template %s: %w", file, diags)
	}

	if a.config.Quiet {
		report, err := tpl.Validate(env, template.ModeQuiet)
		if err != nil {
			return err
		}
		if !report.OK {
			return ErrCheckFailed
		}
	} else if _, err := tpl.Validate(env, template.ModeException); err != nil {
		return fmt.Errorf("template %s: %w", file, err)
	}
	logger.Info("Template is valid.", "file", file)

	if a.config.CheckOnly {
		return nil
	}

	text, err := a.expander.Expand(tpl, env)
	if err != nil {
		return err
	}

	if a.config.OutPath == "-" {
		_, err := fmt.Fprint(a.outW, text)
		return err
	}

	outPath := a.config.OutPath
	if outPath == "" {
		outPath = source.OutputPath(file)
	}
	if err := source.Write(ctx, outPath, text); err != nil {
		return err
	}
	logger.Info("Template expanded.", "file", file, "output", outPath)
	return nil
}

// assembleBindings layers the binding sources in precedence order: host
// environment first, then var files in the order given, then -var literals.
func (a *App) assembleBindings(ctx context.Context) (template.Bindings, error) {
	logger := ctxlog.FromContext(ctx)
	env := template.Bindings{}

	if a.config.EnvPrefix != "" {
		env = env.Merge(varfile.FromEnviron(os.Environ(), a.config.EnvPrefix))
		logger.Debug("Host environment bindings loaded.", "prefix", a.config.EnvPrefix, "count", len(env))
	}

	for _, path := range a.config.VarFiles {
		fileBindings, err := varfile.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		env = env.Merge(fileBindings)
	}

	for _, arg := range a.config.Vars {
		name, val, err := varfile.ParseLiteral(arg)
		if err != nil {
			return nil, err
		}
		env[name] = val
	}

	logger.Debug("Binding environment assembled.", "count", len(env))
	return env, nil
}
