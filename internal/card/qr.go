package card

import (
	"image"
	"image/color"

	qrcode "github.com/skip2/go-qrcode"
)

// QRPNG returns PNG bytes of a borderless QR code for text.
func QRPNG(text string, size int) ([]byte, error) {
	q, err := newQR(text)
	if err != nil {
		return nil, err
	}
	return q.PNG(size)
}

// QRImage returns the footer code as an image for composition: white
// modules on a transparent background.
func QRImage(text string, size int) (image.Image, error) {
	q, err := newQR(text)
	if err != nil {
		return nil, err
	}
	return q.Image(size), nil
}

func newQR(text string) (*qrcode.QRCode, error) {
	q, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	q.DisableBorder = true
	q.ForegroundColor = color.White
	q.BackgroundColor = color.Transparent
	return q, nil
}
