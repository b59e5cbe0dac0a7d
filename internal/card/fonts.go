package card

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// fonts holds the parsed Go font family plus an optional fallback used for
// runes the Go fonts lack (Hangul, CJK). Sources are heavyweight and shared
// by every draw; faces are cheap and created per size.
type fonts struct {
	regular  *text.FontSource
	bold     *text.FontSource
	italic   *text.FontSource
	monoBold *text.FontSource
	fallback *text.FontSource
}

// loadFonts parses the embedded Go fonts and, when fallbackPath is set, the
// fallback font file.
func loadFonts(fallbackPath string) (*fonts, error) {
	f := &fonts{}
	for _, src := range []struct {
		name string
		data []byte
		dst  **text.FontSource
	}{
		{"regular", goregular.TTF, &f.regular},
		{"bold", gobold.TTF, &f.bold},
		{"italic", goitalic.TTF, &f.italic},
		{"mono bold", gomonobold.TTF, &f.monoBold},
	} {
		s, err := text.NewFontSource(src.data)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("load %s font: %w", src.name, err)
		}
		*src.dst = s
	}
	if fallbackPath != "" {
		s, err := text.NewFontSourceFromFile(fallbackPath)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("load fallback font %s: %w", fallbackPath, err)
		}
		f.fallback = s
	}
	return f, nil
}

// face returns src at size, falling back per rune to the fallback font.
func (f *fonts) face(src *text.FontSource, size float64) text.Face {
	primary := src.Face(size)
	if f.fallback == nil {
		return primary
	}
	mf, err := text.NewMultiFace(primary, f.fallback.Face(size))
	if err != nil {
		return primary
	}
	return mf
}

func (f *fonts) Close() error {
	var errs []error
	for _, s := range []*text.FontSource{f.regular, f.bold, f.italic, f.monoBold, f.fallback} {
		if s != nil {
			errs = append(errs, s.Close())
		}
	}
	return errors.Join(errs...)
}
