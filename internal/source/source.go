// Package source is the storage boundary: it locates template files on disk,
// reads their text, and writes expanded output. No parsing or analysis
// happens here; unreadable paths are reported before the core ever sees the
// text.
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/gridtmpl/internal/ctxlog"
)

// Ext is the file extension that marks a template file.
const Ext = ".tpl"

// ErrNotFound reports that a template path does not exist. Matchable with
// errors.Is.
var ErrNotFound = errors.New("template not found")

// Resolve takes a path and returns the template files it names. A file path
// returns just that file; a directory is scanned recursively for files with
// the .tpl extension.
func Resolve(ctx context.Context, path string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolving template path.", "path", path)

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}

	if info.IsDir() {
		logger.Debug("Path is a directory, scanning for template files.", "directory", path)
		return findTemplateFiles(path)
	}

	logger.Debug("Path is a single file.", "file", path)
	if filepath.Ext(path) != Ext {
		return nil, fmt.Errorf("specified file is not a %s file: %s", Ext, path)
	}
	return []string{path}, nil
}

// findTemplateFiles scans a directory recursively for .tpl files.
func findTemplateFiles(rootDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(d.Name()) == Ext {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Read returns the full text of the template at path. A missing file is
// reported as ErrNotFound before any parsing is attempted.
func Read(ctx context.Context, path string) ([]byte, error) {
	ctxlog.FromContext(ctx).Debug("Reading template.", "path", path)
	src, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading template %s: %w", path, err)
	}
	return src, nil
}

// Write stores expanded text at path.
func Write(ctx context.Context, path string, text string) error {
	ctxlog.FromContext(ctx).Debug("Writing expanded output.", "path", path)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("error writing output %s: %w", path, err)
	}
	return nil
}

// OutputPath derives the destination for an expanded template: the template
// path with the .tpl extension stripped. "app.yaml.tpl" expands to
// "app.yaml".
func OutputPath(templatePath string) string {
	return strings.TrimSuffix(templatePath, Ext)
}
