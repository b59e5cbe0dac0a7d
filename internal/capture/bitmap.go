package capture

import (
	"bytes"
	"image"
	"io"

	"github.com/disintegration/imaging"

	apperrors "github.com/youruser/soulcard/internal/errors"
)

// Bitmap is the immutable result of a capture.
type Bitmap struct {
	img   image.Image
	scale float64
}

// NewBitmap wraps an existing image, mainly for tests and imports.
func NewBitmap(img image.Image, scale float64) *Bitmap {
	return &Bitmap{img: img, scale: scale}
}

func (b *Bitmap) Image() image.Image {
	return b.img
}

func (b *Bitmap) Scale() float64 {
	return b.scale
}

// EncodePNG writes the bitmap as PNG.
func (b *Bitmap) EncodePNG(w io.Writer) error {
	if b == nil || b.img == nil || b.img.Bounds().Empty() {
		return apperrors.New(apperrors.ErrCodeEncodeFailed, "failed to generate image: empty bitmap")
	}
	if err := imaging.Encode(w, b.img, imaging.PNG); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeEncodeFailed, err, "failed to generate image")
	}
	return nil
}

// PNG returns the PNG-encoded bitmap.
func (b *Bitmap) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.EncodePNG(&buf); err != nil {
		return nil, err
	}
	if buf.Len() == 0 {
		return nil, apperrors.New(apperrors.ErrCodeEncodeFailed, "failed to generate image: empty blob")
	}
	return buf.Bytes(), nil
}
