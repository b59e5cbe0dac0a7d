package card

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMapsEveryField(t *testing.T) {
	d := Data{
		Name:       "A",
		Type:       "B",
		Serial:     "C",
		SoulText:   "D",
		ThemeColor: "#112233",
	}
	l := Build(d)

	assert.Equal(t, "A", l.Name)
	assert.Equal(t, "B", l.Class)
	assert.Equal(t, "C", l.Serial)
	assert.Equal(t, `"D"`, l.Quote)
	assert.Equal(t, "#112233", l.AccentHex)
	assert.True(t, l.AccentValid)
	assert.Equal(t, color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff}, l.Accent)
	assert.True(t, l.Placeholder)
	assert.Empty(t, l.PhotoURL)
	assert.Equal(t, "C", l.Code)
}

func TestBuildPhoto(t *testing.T) {
	d := DefaultData()
	d.ImageURL = "https://example.com/a.png"
	l := Build(d)

	assert.False(t, l.Placeholder)
	assert.Equal(t, "https://example.com/a.png", l.PhotoURL)
}

func TestBuildInvalidColorFallsBack(t *testing.T) {
	d := DefaultData()
	d.ThemeColor = "not-a-color"
	l := Build(d)

	assert.False(t, l.AccentValid)
	assert.Equal(t, FallbackAccent, l.Accent)
	assert.Equal(t, "not-a-color", l.AccentHex)
}

func TestBuildEmptySerialCode(t *testing.T) {
	d := DefaultData()
	d.Serial = ""
	assert.Equal(t, "unnamed", Build(d).Code)
	assert.Equal(t, "", Build(d).Serial)
}

func TestBuildIsPure(t *testing.T) {
	d := DefaultData()
	assert.Equal(t, Build(d), Build(d))
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#ff006e", color.NRGBA{R: 0xff, G: 0x00, B: 0x6e, A: 0xff}, true},
		{"#FF006E", color.NRGBA{R: 0xff, G: 0x00, B: 0x6e, A: 0xff}, true},
		{"#0f0", color.NRGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}, true},
		{" #00d2ff ", color.NRGBA{R: 0x00, G: 0xd2, B: 0xff, A: 0xff}, true},
		{"00d2ff", color.NRGBA{}, false},
		{"#00d2f", color.NRGBA{}, false},
		{"#zzzzzz", color.NRGBA{}, false},
		{"", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseHexColor(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
