package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/soulcard/internal/form"
)

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)
	logger.Debug("hidden")
	assert.Zero(t, buf.Len())
	logger.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestLoggerContext(t *testing.T) {
	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	assert.Same(t, l, loggerFromContext(withLogger(context.Background(), l)))
	assert.Same(t, log.Default(), loggerFromContext(context.Background()))
}

// run executes the root command with a local-backend config rooted in a
// temp dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SOULCARD_BACKEND", "")
	t.Setenv("SOULCARD_CACHE", "")
	cfg := filepath.Join(dir, "soulcard.toml")
	if _, err := os.Stat(cfg); err != nil {
		body := fmt.Sprintf("backend = \"local\"\n\n[local]\ndir = %q\n\n[cache]\nkind = \"none\"\n", filepath.Join(dir, "data"))
		require.NoError(t, os.WriteFile(cfg, []byte(body), 0o644))
	}

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", cfg}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPresetsCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "presets")
	require.NoError(t, err)
	for _, p := range form.Presets {
		assert.Contains(t, out, p.Name)
		assert.Contains(t, out, p.Value)
	}
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	out, err := run(t, dir, "export", "--out", outDir, "--serial", "T/9", "--preset", "Magenta")
	require.NoError(t, err)
	assert.Contains(t, out, "soul-id-card-T-9.png")
	assert.FileExists(t, filepath.Join(outDir, "soul-id-card-T-9.png"))
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "cards.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("name,serial,theme_color\nA,CSV-1,#ff006e\nB,CSV-2,\n"), 0o644))
	outDir := filepath.Join(dir, "out")

	_, err := run(t, dir, "export", "--csv", csvPath, "--out", outDir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "soul-id-card-CSV-1.png"))
	assert.FileExists(t, filepath.Join(outDir, "soul-id-card-CSV-2.png"))
}

func TestUnknownPreset(t *testing.T) {
	_, err := run(t, t.TempDir(), "export", "--out", t.TempDir(), "--preset", "Teal")
	assert.ErrorContains(t, err, "unknown preset")
}

func TestPublishThenGallery(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, dir, "publish", "--name", "Nova", "--serial", "NV-7")
	require.NoError(t, err)
	assert.Contains(t, out, "Card published")
	assert.Contains(t, out, "http://localhost:8080/objects/cards/public/")

	matches, err := filepath.Glob(filepath.Join(dir, "data", "objects", "cards", "public", "*-NV-7.png"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	out, err = run(t, dir, "gallery", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"serial_number": "NV-7"`)

	out, err = run(t, dir, "gallery", "-q", "nobody")
	require.NoError(t, err)
	assert.Contains(t, out, "No published cards")
}

func TestPublishWithoutCredentials(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")
	t.Setenv("NEXT_PUBLIC_SUPABASE_URL", "")
	t.Setenv("NEXT_PUBLIC_SUPABASE_ANON_KEY", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "soulcard.toml"), []byte("backend = \"supabase\"\n"), 0o644))

	out, err := run(t, dir, "publish")
	require.Error(t, err)
	assert.Contains(t, out, "An error occurred while publishing.")
}
