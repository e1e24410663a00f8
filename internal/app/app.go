package app

import (
	"io"
	"log/slog"

	"github.com/vk/gridtmpl/internal/template"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer // expanded text when writing to stdout
	logger   *slog.Logger
	config   *Config
	expander *template.Expander
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. Program output goes
// to outW; log records go to logW so the two streams never interleave.
func NewApp(outW, logW io.Writer, config *Config) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:     outW,
		logger:   logger,
		config:   config,
		expander: template.NewExpander(),
	}
}
