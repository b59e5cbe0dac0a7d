// Package capture rasterizes a rendered surface into a static bitmap.
//
// Capture is the only slow, failure-prone step shared by the export and
// publish actions. Each action runs its own capture; a Bitmap is immutable
// and can feed several consumers without capturing again.
package capture

import (
	"context"
	"math"

	"github.com/gogpu/gg"

	apperrors "github.com/youruser/soulcard/internal/errors"
)

// DefaultScale is the output pixel density relative to logical size.
const DefaultScale = 2.0

// Surface is anything that can paint itself at a given scale.
type Surface interface {
	// Mounted reports whether the surface is attached and paintable.
	Mounted() bool
	// Size returns the logical width and height.
	Size() (w, h float64)
	// Paint draws onto dc, multiplying all geometry by scale. It must not
	// mutate the surface.
	Paint(ctx context.Context, dc *gg.Context, scale float64) error
}

// Options configures a capture.
type Options struct {
	Scale float64
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return DefaultScale
	}
	return o.Scale
}

// Capture paints s onto a fresh transparent context and returns the result.
//
// A nil or unmounted surface is not an error: Capture returns (nil, nil) so
// callers can silently skip the action. Paint failures are reported as a
// single CAPTURE_FAILED error and no bitmap is returned.
func Capture(ctx context.Context, s Surface, opts Options) (*Bitmap, error) {
	if s == nil || !s.Mounted() {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeCaptureFailed, err, "capture cancelled")
	}

	scale := opts.scale()
	w, h := s.Size()
	pw, ph := int(math.Ceil(w*scale)), int(math.Ceil(h*scale))
	if pw <= 0 || ph <= 0 {
		return nil, apperrors.New(apperrors.ErrCodeCaptureFailed, "surface has empty size %gx%g", w, h)
	}

	dc := gg.NewContext(pw, ph)
	defer dc.Close()
	if err := s.Paint(ctx, dc, scale); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeCaptureFailed, err, "capture failed")
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeCaptureFailed, err, "flush pending draws")
	}
	return &Bitmap{img: dc.Image(), scale: scale}, nil
}
