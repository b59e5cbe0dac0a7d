package export

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/soulcard/internal/capture"
	apperrors "github.com/youruser/soulcard/internal/errors"
)

func bitmap() *capture.Bitmap {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.NRGBA{R: 0xff, A: 0xff})
	return capture.NewBitmap(img, 2)
}

func TestFilename(t *testing.T) {
	tests := []struct {
		serial string
		want   string
	}{
		{"AGENT-MAIN-001", "soul-id-card-AGENT-MAIN-001.png"},
		{"", "soul-id-card-unnamed.png"},
		{"a/b\\c", "soul-id-card-a-b-c.png"},
		{"two words", "soul-id-card-two-words.png"},
		{"..", "soul-id-card-unnamed.png"},
		{"시리얼-7", "soul-id-card-시리얼-7.png"},
	}
	for _, tt := range tests {
		t.Run(tt.serial, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.serial))
		})
	}
}

func TestExport(t *testing.T) {
	var gotName string
	var gotData []byte
	saver := SaverFunc(func(_ context.Context, name string, data []byte) error {
		gotName, gotData = name, data
		return nil
	})

	name, err := Export(context.Background(), bitmap(), "AGENT-MAIN-001", saver)
	require.NoError(t, err)
	assert.Equal(t, "soul-id-card-AGENT-MAIN-001.png", name)
	assert.Equal(t, gotName, name)
	assert.Equal(t, []byte("\x89PNG"), gotData[:4])
}

func TestExportEncodeFailure(t *testing.T) {
	called := false
	saver := SaverFunc(func(context.Context, string, []byte) error {
		called = true
		return nil
	})

	_, err := Export(context.Background(), capture.NewBitmap(nil, 2), "x", saver)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeEncodeFailed))
	assert.False(t, called)
}

func TestExportSaveFailure(t *testing.T) {
	saver := SaverFunc(func(context.Context, string, []byte) error {
		return errors.New("disk full")
	})

	_, err := Export(context.Background(), bitmap(), "x", saver)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestDirSaver(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	s := DirSaver{Dir: dir}

	require.NoError(t, s.Save(context.Background(), "soul-id-card-x.png", []byte("one")))
	require.NoError(t, s.Save(context.Background(), "soul-id-card-x.png", []byte("two")))

	b, err := os.ReadFile(filepath.Join(dir, "soul-id-card-x.png"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(b))
}
