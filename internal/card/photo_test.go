package card_test

import (
	"context"
	"image/color"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/soulcard/internal/card"
	apperrors "github.com/youruser/soulcard/internal/errors"
)

func TestCheckImageURL(t *testing.T) {
	tests := []struct {
		raw string
		ok  bool
	}{
		{"", true},
		{"https://example.com/me.png", true},
		{"HTTP://example.com/me.png", true},
		{"/etc/passwd", false},
		{"file:///tmp/me.png", false},
		{"me.png", false},
		{"ftp://example.com/me.png", false},
		{"https:///no-host.png", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			err := card.CheckImageURL(tt.raw)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidInput), "got %v", err)
		})
	}
}

func redPNG(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "red.png")
	require.NoError(t, imaging.Save(solid(color.NRGBA{R: 0xff, A: 0xff}, 4, 4), path))
	return path
}

func TestPhotoLoaderReadsFiles(t *testing.T) {
	img, err := card.NewHTTPPhotoLoader().Load(context.Background(), redPNG(t))
	require.NoError(t, err)
	r, _, _, _ := img.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}

func TestRemotePhotoLoaderRefusesFiles(t *testing.T) {
	path := redPNG(t)
	l := card.NewRemotePhotoLoader()
	for _, ref := range []string{path, "file://" + path} {
		img, err := l.Load(context.Background(), ref)
		assert.Nil(t, img)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidInput), "%s: %v", ref, err)
	}
}

func TestRemotePhotoLoaderDownloads(t *testing.T) {
	path := redPNG(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, path)
	}))
	defer srv.Close()

	img, err := card.NewRemotePhotoLoader().Load(context.Background(), srv.URL+"/red.png")
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
}
