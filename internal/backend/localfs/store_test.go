package localfs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/soulcard/internal/publish"
)

func TestUploadAndURL(t *testing.T) {
	root := t.TempDir()
	s := New(root, "http://localhost:8080/objects/")
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "cards", "public/id-A.png", []byte("png"), publish.UploadOptions{}))
	data, err := os.ReadFile(filepath.Join(root, "cards", "public", "id-A.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)
	assert.Equal(t, "http://localhost:8080/objects/cards/public/id-A.png", s.PublicURL("cards", "public/id-A.png"))
}

func TestUploadNeverOverwrites(t *testing.T) {
	s := New(t.TempDir(), "")
	ctx := context.Background()
	require.NoError(t, s.Upload(ctx, "cards", "a.png", []byte("1"), publish.UploadOptions{}))

	err := s.Upload(ctx, "cards", "a.png", []byte("2"), publish.UploadOptions{})
	assert.ErrorIs(t, err, publish.ErrObjectExists)

	require.NoError(t, s.Upload(ctx, "cards", "a.png", []byte("3"), publish.UploadOptions{Upsert: true}))
	file, _ := s.Resolve("cards", "a.png")
	data, _ := os.ReadFile(file)
	assert.Equal(t, "3", string(data))
}

func TestResolveRejectsEscape(t *testing.T) {
	s := New(t.TempDir(), "")
	for _, p := range []string{"../../etc/passwd", "../x.png", "/abs.png", ""} {
		_, err := s.Resolve("cards", p)
		assert.Error(t, err, p)
	}
	_, err := s.Resolve("cards", "public/ok.png")
	assert.NoError(t, err)
}

func TestPublicURLEscapesSerial(t *testing.T) {
	root := t.TempDir()
	s := New(root, "http://localhost:8080/objects")
	path := publish.ObjectPath("id", "AGENT#7?x%41")
	require.NoError(t, s.Upload(context.Background(), "cards", path, []byte("png"), publish.UploadOptions{}))

	raw := s.PublicURL("cards", path)
	assert.Equal(t, "http://localhost:8080/objects/cards/public/id-AGENT%237%3Fx%2541.png", raw)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Empty(t, u.RawQuery)
	assert.Empty(t, u.Fragment)
	rel := strings.TrimPrefix(u.Path, "/objects/")
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	assert.NoError(t, err, "URL must address the uploaded file")
}
