package source

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/gridtmpl/internal/ctxlog"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func TestResolve_SingleFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml.tpl")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))

	// --- Act ---
	files, err := Resolve(testContext(t), path)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []string{path}, files)
}

func TestResolve_RejectsFileWithoutTemplateExtension(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))

	// --- Act ---
	_, err := Resolve(testContext(t), path)

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), ".tpl")
}

func TestResolve_DirectoryScansRecursively(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0700))
	a := filepath.Join(dir, "a.tpl")
	b := filepath.Join(sub, "b.tpl")
	require.NoError(t, os.WriteFile(a, []byte("a"), 0600))
	require.NoError(t, os.WriteFile(b, []byte("b"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("no"), 0600))

	// --- Act ---
	files, err := Resolve(testContext(t), dir)

	// --- Assert ---
	require.NoError(t, err)
	require.ElementsMatch(t, []string{a, b}, files)
}

func TestResolve_MissingPathIsNotFound(t *testing.T) {
	t.Parallel()

	// --- Act ---
	_, err := Resolve(testContext(t), filepath.Join(t.TempDir(), "nope"))

	// --- Assert ---
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRead_MissingFileIsNotFound(t *testing.T) {
	t.Parallel()

	// --- Act ---
	_, err := Read(testContext(t), filepath.Join(t.TempDir(), "ghost.tpl"))

	// --- Assert ---
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReadWrite_RoundTrip(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := testContext(t)
	path := filepath.Join(t.TempDir(), "out.yaml")

	// --- Act ---
	require.NoError(t, Write(ctx, path, "expanded text"))
	src, err := Read(ctx, path)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "expanded text", string(src))
}

func TestOutputPath_StripsTemplateExtension(t *testing.T) {
	t.Parallel()

	require.Equal(t, "config/app.yaml", OutputPath("config/app.yaml.tpl"))
	require.Equal(t, "plain.txt", OutputPath("plain.txt"))
}
