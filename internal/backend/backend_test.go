package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/soulcard/internal/backend/localfs"
	"github.com/youruser/soulcard/internal/backend/sqlite"
	"github.com/youruser/soulcard/internal/backend/supabase"
	"github.com/youruser/soulcard/internal/config"
	apperrors "github.com/youruser/soulcard/internal/errors"
)

func TestOpenSupabaseNeedsCredentials(t *testing.T) {
	cfg := config.DefaultConfig()
	_, err := Open(context.Background(), cfg)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeConfigMissing))

	cfg.Supabase.URL = "https://abc.supabase.co"
	cfg.Supabase.AnonKey = "anon"
	b, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer b.Close()
	assert.IsType(t, &supabase.Client{}, b.Objects)
	assert.Empty(t, b.ObjectsDir)
}

func TestOpenLocal(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Backend = config.BackendLocal
	cfg.Local.Dir = t.TempDir()

	b, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer b.Close()
	assert.IsType(t, &sqlite.Store{}, b.Records)
	assert.IsType(t, &localfs.Store{}, b.Objects)
	assert.Equal(t, filepath.Join(cfg.Local.Dir, "objects"), b.ObjectsDir)
}

func TestCloseNil(t *testing.T) {
	var b *Backend
	assert.NoError(t, b.Close())
}
