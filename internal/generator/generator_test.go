package generator

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shireesh.com/boilergen/internal/colortable"
	"shireesh.com/boilergen/internal/config"
)

const (
	colorsIn  = "/// <div style=\"background-color:#FF0000; foo\">\npub const Red: Color = x;\n"
	colorsOut = "                // #FF0000\n                \"red\" => Color::RED,\n"
	stylesIn  = "    width: u32,\n"
	stylesOut = "pub fn width(&mut self, width: u32) -> &mut Self { self.style.width = width; self.mark_dirty() }\n"
)

func quiet() *log.Logger { return log.New(io.Discard) }

func setup(t *testing.T) (dir string, cfg *config.Config) {
	t.Helper()
	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "colors.txt"), []byte(colorsIn), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "styles.txt"), []byte(stylesIn), 0o644))
	cfg = &config.Config{Jobs: []config.Job{
		{Kind: config.KindColors, Input: filepath.Join(dir, "colors.txt"), Output: filepath.Join(dir, "gen", "colors.rs")},
		{Kind: config.KindStyles, Input: filepath.Join(dir, "styles.txt"), Output: filepath.Join(dir, "gen", "styles.rs")},
	}}
	return dir, cfg
}

func TestRun(t *testing.T) {
	dir, cfg := setup(t)
	results, err := Run(context.Background(), cfg, false, quiet())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].Entries)
	assert.Equal(t, 1, results[1].Entries)

	got, err := os.ReadFile(filepath.Join(dir, "gen", "colors.rs"))
	require.NoError(t, err)
	assert.Equal(t, colorsOut, string(got))

	got, err = os.ReadFile(filepath.Join(dir, "gen", "styles.rs"))
	require.NoError(t, err)
	assert.Equal(t, stylesOut, string(got))

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Join(dir, "gen"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCheck(t *testing.T) {
	_, cfg := setup(t)

	_, err := Run(context.Background(), cfg, true, quiet())
	assert.ErrorIs(t, err, ErrStale, "outputs not generated yet")

	_, err = Run(context.Background(), cfg, false, quiet())
	require.NoError(t, err)
	_, err = Run(context.Background(), cfg, true, quiet())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(cfg.Jobs[1].Output, []byte("edited\n"), 0o644))
	_, err = Run(context.Background(), cfg, true, quiet())
	assert.ErrorIs(t, err, ErrStale)
}

func TestGenerateKeepsOutputOnFailure(t *testing.T) {
	_, cfg := setup(t)
	job := cfg.Jobs[0]
	require.NoError(t, os.MkdirAll(filepath.Dir(job.Output), 0o755))
	require.NoError(t, os.WriteFile(job.Output, []byte("previous\n"), 0o644))
	require.NoError(t, os.WriteFile(job.Input, []byte(colorsIn+"pub const BROKEN;\n"), 0o644))

	_, err := Generate(job, quiet())
	assert.ErrorIs(t, err, colortable.ErrMalformedDefinition)

	got, err := os.ReadFile(job.Output)
	require.NoError(t, err)
	assert.Equal(t, "previous\n", string(got))
}

func TestRenderMissingInput(t *testing.T) {
	job := config.Job{Kind: config.KindColors, Input: filepath.Join(t.TempDir(), "missing.txt"), Output: "x"}
	_, err := Render(job, &bytes.Buffer{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRenderStyleWidths(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "styles.txt")
	require.NoError(t, os.WriteFile(in, []byte("  gap: f32;\n"), 0o644))
	two := 2
	var buf bytes.Buffer
	_, err := Render(config.Job{Kind: config.KindStyles, Input: in, Output: "x", PrefixWidth: &two}, &buf)
	require.NoError(t, err)
	assert.Equal(t, "pub fn gap(&mut self, gap: f32) -> &mut Self { self.style.gap = gap; self.mark_dirty() }\n", buf.String())
}

func TestRunCanceled(t *testing.T) {
	_, cfg := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := Run(ctx, cfg, false, quiet())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestGenerateKeepsOutputMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	_, cfg := setup(t)
	colors, styles := cfg.Jobs[0], cfg.Jobs[1]
	require.NoError(t, os.MkdirAll(filepath.Dir(colors.Output), 0o755))
	require.NoError(t, os.WriteFile(colors.Output, []byte("previous\n"), 0o600))
	require.NoError(t, os.Chmod(colors.Output, 0o600))

	_, err := Generate(colors, quiet())
	require.NoError(t, err)
	fi, err := os.Stat(colors.Output)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	_, err = Generate(styles, quiet())
	require.NoError(t, err)
	fi, err = os.Stat(styles.Output)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), fi.Mode().Perm(), "new outputs are world readable")
}
