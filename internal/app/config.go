package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	TemplatePath string // a single .tpl file or a directory of them
	OutPath      string // expansion destination; "-" means standard output

	CheckOnly bool // validate bindings, do not expand
	Quiet     bool // suppress validation diagnostics, signal via exit code

	Vars      []string // name=value literals, highest precedence
	VarFiles  []string // HCL or YAML var files, in order
	EnvPrefix string   // bind host environment variables carrying this prefix

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it. Field combinations that can
// only be checked together (not per-flag) are rejected here.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.TemplatePath == "" {
		return nil, errors.New("TemplatePath is a required configuration field and cannot be empty")
	}
	if cfg.Quiet && !cfg.CheckOnly {
		return nil, errors.New("Quiet is only meaningful together with CheckOnly")
	}
	return &cfg, nil
}
