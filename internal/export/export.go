// Package export saves a captured card as a local PNG file.
package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/youruser/soulcard/internal/capture"
	apperrors "github.com/youruser/soulcard/internal/errors"
	"github.com/youruser/soulcard/internal/util"
)

const (
	filenamePrefix = "soul-id-card-"
	unnamed        = "unnamed"
)

// Saver receives the encoded PNG under its derived filename.
type Saver interface {
	Save(ctx context.Context, filename string, data []byte) error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(ctx context.Context, filename string, data []byte) error

func (f SaverFunc) Save(ctx context.Context, filename string, data []byte) error {
	return f(ctx, filename, data)
}

// Filename returns soul-id-card-<serial>.png, or soul-id-card-unnamed.png
// for an empty serial.
func Filename(serial string) string {
	s := SanitizeSerial(serial)
	if s == "" {
		s = unnamed
	}
	return filenamePrefix + s + ".png"
}

// SanitizeSerial makes serial safe as a single path component. Separators,
// control characters and whitespace become '-'; everything else is kept.
func SanitizeSerial(serial string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':':
			return '-'
		case unicode.IsControl(r) || unicode.IsSpace(r):
			return '-'
		}
		return r
	}, serial)
	if strings.Trim(s, ".") == "" {
		return ""
	}
	return s
}

// Export encodes bmp and hands it to saver. It returns the filename used.
func Export(ctx context.Context, bmp *capture.Bitmap, serial string, saver Saver) (string, error) {
	data, err := bmp.PNG()
	if err != nil {
		return "", err
	}
	name := Filename(serial)
	if err := saver.Save(ctx, name, data); err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeEncodeFailed, err, "failed to save %s", name)
	}
	return name, nil
}

// DirSaver writes files into a directory, replacing existing files.
type DirSaver struct {
	Dir string
}

func (s DirSaver) Save(_ context.Context, filename string, data []byte) error {
	if err := util.EnsureDir(s.Dir); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.Dir, filepath.Base(filename)), data, 0o644)
}
