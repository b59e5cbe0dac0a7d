package card

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRPNG(t *testing.T) {
	b, err := QRPNG("AGENT-MAIN-001", 96)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, 96, img.Bounds().Dx())
}

func TestQRImageTransparentBackground(t *testing.T) {
	img, err := QRImage("AGENT-MAIN-001", 48)
	require.NoError(t, err)

	var transparent, opaque int
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a == 0 {
				transparent++
			} else {
				opaque++
			}
		}
	}
	assert.NotZero(t, transparent)
	assert.NotZero(t, opaque)
}
