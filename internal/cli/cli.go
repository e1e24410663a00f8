package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/gridtmpl/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// stringList collects the values of a repeatable flag in the order given.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("gridtmpl", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
GridTmpl - Validate and expand configuration templates with ${...} interpolation.

Usage:
  gridtmpl [options] [TEMPLATE_PATH]

Arguments:
  TEMPLATE_PATH
    Path to a single .tpl file or a directory containing .tpl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	templateFlag := flagSet.String("template", "", "Path to the template file or directory.")
	tFlag := flagSet.String("t", "", "Path to the template file or directory (shorthand).")
	outFlag := flagSet.String("out", "", "Destination for expanded output. '-' writes to stdout. Default: template path without the .tpl suffix.")
	checkFlag := flagSet.Bool("check", false, "Only validate that all template variables are bound; do not expand.")
	quietFlag := flagSet.Bool("quiet", false, "With -check, print nothing and signal the result via the exit code.")
	envPrefixFlag := flagSet.String("env-prefix", "", "Bind host environment variables carrying this prefix (prefix is stripped).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	var varFlags stringList
	var varFileFlags stringList
	flagSet.Var(&varFlags, "var", "Bind a variable as name=value. Repeatable; highest precedence.")
	flagSet.Var(&varFileFlags, "var-file", "Load bindings from an HCL or YAML var file. Repeatable; later files override earlier ones.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *templateFlag != "" {
		path = *templateFlag
	} else if *tFlag != "" {
		path = *tFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Template path determined.", "path", path)

	if path == "" {
		slog.Debug("No template path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		TemplatePath: path,
		OutPath:      *outFlag,
		CheckOnly:    *checkFlag,
		Quiet:        *quietFlag,
		Vars:         varFlags,
		VarFiles:     varFileFlags,
		EnvPrefix:    *envPrefixFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
