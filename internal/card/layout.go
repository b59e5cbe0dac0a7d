package card

import (
	"image/color"
	"strconv"
	"strings"
)

// Fixed card texts.
const (
	HeaderTitle    = "OPENCLAW AGENT ID"
	HeaderSubtitle = "REPUBLIC OF DIGITAL"
	StatusText     = "ONLINE"
	NameLabel      = "NAME"
	SerialLabel    = "SERIAL (UUID)"
	ClassLabel     = "CLASS"
)

// FallbackAccent is used when the theme color does not parse.
var FallbackAccent = color.NRGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}

// Layout is the resolved content of every visual slot of a card.
type Layout struct {
	Name   string
	Serial string
	Class  string
	Quote  string

	// AccentHex is the theme color as entered; Accent is what gets painted.
	AccentHex   string
	Accent      color.NRGBA
	AccentValid bool

	PhotoURL    string
	Placeholder bool

	// Code is the payload of the footer code.
	Code string
}

// Build maps card data onto the card's slots. It has no side effects.
func Build(d Data) Layout {
	accent, ok := ParseHexColor(d.ThemeColor)
	if !ok {
		accent = FallbackAccent
	}
	code := d.Serial
	if code == "" {
		code = "unnamed"
	}
	return Layout{
		Name:        d.Name,
		Serial:      d.Serial,
		Class:       d.Type,
		Quote:       `"` + d.SoulText + `"`,
		AccentHex:   d.ThemeColor,
		Accent:      accent,
		AccentValid: ok,
		PhotoURL:    d.ImageURL,
		Placeholder: d.ImageURL == "",
		Code:        code,
	}
}

// ParseHexColor parses #RRGGBB or #RGB, case-insensitively.
func ParseHexColor(s string) (color.NRGBA, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, false
	}
	s = s[1:]
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}
