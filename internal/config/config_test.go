package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/youruser/soulcard/internal/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "soulcard.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, BackendSupabase, cfg.Backend)
	assert.Equal(t, "cards", cfg.Publish.Bucket)
	assert.Equal(t, "agents", cfg.Publish.Table)
	assert.Equal(t, "3600", cfg.Publish.CacheControl)
	assert.Equal(t, 60*time.Second, cfg.Publish.StepTimeout.Duration)
	assert.Equal(t, 2.0, cfg.Publish.Scale)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr, "serve binds loopback unless told otherwise")
	assert.Empty(t, cfg.Render.FallbackFont)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")
	t.Setenv("SOULCARD_FONT", "")
	path := writeConfig(t, `
backend = "local"

[local]
dir = "/tmp/cards"

[publish]
step_timeout = "0s"

[render]
fallback_font = "/fonts/NanumGothic.ttf"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendLocal, cfg.Backend)
	assert.Equal(t, "/tmp/cards", cfg.Local.Dir)
	assert.Equal(t, "http://localhost:8080/objects", cfg.Local.PublicURL)
	assert.Zero(t, cfg.Publish.StepTimeout.Duration)
	assert.Equal(t, "cards", cfg.Publish.Bucket)
	assert.Equal(t, "/fonts/NanumGothic.ttf", cfg.Render.FallbackFont)
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "bakend = \"local\"\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown keys")
}

func TestLoadBadDuration(t *testing.T) {
	path := writeConfig(t, "[publish]\nstep_timeout = \"soon\"\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"NEXT_PUBLIC_SUPABASE_URL":      "https://fallback.supabase.co",
		"SUPABASE_ANON_KEY":             "anon",
		"NEXT_PUBLIC_SUPABASE_ANON_KEY": "ignored",
		"SOULCARD_CACHE":                "redis",
		"SOULCARD_FONT":                 "/fonts/NanumGothic.ttf",
	}
	cfg := DefaultConfig()
	ApplyEnv(cfg, func(k string) string { return env[k] })

	assert.Equal(t, "https://fallback.supabase.co", cfg.Supabase.URL)
	assert.Equal(t, "anon", cfg.Supabase.AnonKey)
	assert.Equal(t, "redis", cfg.Cache.Kind)
	assert.Equal(t, "/fonts/NanumGothic.ttf", cfg.Render.FallbackFont)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeConfigMissing))
	assert.Contains(t, err.Error(), "SUPABASE_URL, SUPABASE_ANON_KEY")

	cfg.Supabase.URL = "https://x.supabase.co"
	cfg.Supabase.AnonKey = "anon"
	assert.NoError(t, cfg.Validate())

	cfg.Backend = "ftp"
	cfg.Publish.Scale = 0
	err = cfg.Validate()
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidInput))
	assert.Contains(t, err.Error(), "publish.scale")
}
