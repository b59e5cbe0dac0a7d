package card

import (
	"context"
	"errors"
	"image"

	"github.com/gogpu/gg"
)

// ErrNoPhotoLoader is returned when a card has an image URL but the surface
// was built without a way to fetch it.
var ErrNoPhotoLoader = errors.New("card: image url set but no photo loader configured")

// Surface is a card bound to a renderer, ready to be captured. The data is
// copied at construction so later form edits never reach an in-flight
// capture.
type Surface struct {
	renderer *Renderer
	photos   PhotoLoader
	data     Data
}

func NewSurface(r *Renderer, photos PhotoLoader, d Data) *Surface {
	return &Surface{renderer: r, photos: photos, data: d}
}

// Mounted reports whether the surface can be painted.
func (s *Surface) Mounted() bool {
	return s != nil && s.renderer != nil
}

func (s *Surface) Size() (float64, float64) {
	return Width, Height
}

func (s *Surface) Data() Data {
	return s.data
}

// Paint fetches the photo, if any, and draws the card. A photo that cannot
// be loaded fails the whole paint.
func (s *Surface) Paint(ctx context.Context, dc *gg.Context, scale float64) error {
	var photo image.Image
	if s.data.ImageURL != "" {
		if s.photos == nil {
			return ErrNoPhotoLoader
		}
		img, err := s.photos.Load(ctx, s.data.ImageURL)
		if err != nil {
			return err
		}
		photo = img
	}
	return s.renderer.Draw(dc, Build(s.data), photo, scale)
}
