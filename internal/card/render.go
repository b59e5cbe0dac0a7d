package card

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// Card geometry in logical units.
const (
	padding      = 24.0
	cornerRadius = 16.0

	photoX, photoY = padding, padding
	photoW, photoH = 130.0, 160.0

	infoX = photoX + photoW + padding
	infoW = Width - padding - infoX

	codeW, codeH = 96.0, 24.0
)

var (
	boxFrom    = gg.Hex("#1a1a2e")
	boxTo      = gg.Hex("#16213e")
	gray300    = gg.Hex("#d1d5db")
	gray400    = gg.Hex("#9ca3af")
	gray500    = gg.Hex("#6b7280")
	chipLight  = gg.Hex("#facc15")
	chipDark   = gg.Hex("#ca8a04")
	whiteFaint = gg.RGBA2(1, 1, 1, 0.1)
)

// Renderer paints card layouts. A Renderer is safe for sequential use; it
// owns the font sources and must be closed when no longer needed.
type Renderer struct {
	fonts *fonts
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererOptions)

type rendererOptions struct {
	fallbackFont string
}

// WithFallbackFont loads the TTF/OTF file at path and uses it for any rune
// the embedded Go fonts cannot draw. An empty path is ignored.
func WithFallbackFont(path string) RendererOption {
	return func(o *rendererOptions) { o.fallbackFont = path }
}

// NewRenderer loads the embedded fonts and any configured fallback.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	var o rendererOptions
	for _, opt := range opts {
		opt(&o)
	}
	f, err := loadFonts(o.fallbackFont)
	if err != nil {
		return nil, err
	}
	return &Renderer{fonts: f}, nil
}

func (r *Renderer) Close() error {
	return r.fonts.Close()
}

// Draw paints l onto dc. All geometry is multiplied by scale, so a 2x
// capture uses a 1000x600 context. photo may be nil; the placeholder is
// drawn when l.Placeholder is set or no photo is available. Nothing outside
// the rounded card box is touched, leaving the background transparent.
func (r *Renderer) Draw(dc *gg.Context, l Layout, photo image.Image, scale float64) error {
	if scale <= 0 {
		scale = 1
	}
	p := &painter{dc: dc, s: scale, fonts: r.fonts}
	accent := gg.FromColor(l.Accent)

	dc.Push()
	defer dc.Pop()
	p.rect(0, 0, Width, Height, cornerRadius)
	dc.Clip()

	p.box(accent)
	p.grid(accent)
	p.glow(accent)
	p.photo(accent, l, photo)
	p.header(accent)
	p.name(accent, l.Name)
	p.details(l.Serial, l.Class)
	quoteBottom := p.quote(accent, l.Quote)
	p.footer(accent, l.Code, quoteBottom)
	return p.err
}

type painter struct {
	dc    *gg.Context
	s     float64
	fonts *fonts
	err   error
}

func (p *painter) fill() {
	if err := p.dc.Fill(); err != nil && p.err == nil {
		p.err = err
	}
}

func (p *painter) stroke() {
	if err := p.dc.Stroke(); err != nil && p.err == nil {
		p.err = err
	}
}

func (p *painter) rect(x, y, w, h, r float64) {
	if r > 0 {
		p.dc.DrawRoundedRectangle(x*p.s, y*p.s, w*p.s, h*p.s, r*p.s)
		return
	}
	p.dc.DrawRectangle(x*p.s, y*p.s, w*p.s, h*p.s)
}

func (p *painter) face(src *text.FontSource, size float64) {
	p.dc.SetFont(p.fonts.face(src, size*p.s))
}

func (p *painter) text(s string, x, y float64) {
	p.dc.DrawString(s, x*p.s, y*p.s)
}

func (p *painter) measure(s string) float64 {
	w, _ := p.dc.MeasureString(s)
	return w / p.s
}

func (p *painter) box(accent gg.RGBA) {
	g := gg.NewLinearGradientBrush(0, 0, Width*p.s, Height*p.s).
		AddColorStop(0, boxFrom).
		AddColorStop(1, boxTo)
	p.dc.SetFillBrush(g)
	p.rect(0.5, 0.5, Width-1, Height-1, cornerRadius)
	p.fill()

	p.dc.SetColor(withAlpha(accent, 0.3).Color())
	p.dc.SetLineWidth(p.s)
	p.rect(0.5, 0.5, Width-1, Height-1, cornerRadius)
	p.stroke()
}

// grid draws the faint horizontal accent lines, one every 3 units.
func (p *painter) grid(accent gg.RGBA) {
	p.dc.SetColor(withAlpha(accent, 0.2).Color())
	for y := 2.0; y < Height-cornerRadius; y += 3 {
		if y < cornerRadius {
			continue
		}
		p.rect(1, y, Width-2, 1, 0)
		p.fill()
	}
}

// glow approximates the blurred accent circle in the top-right corner.
func (p *painter) glow(accent gg.RGBA) {
	cx, cy, r := 452.0, 48.0, 96.0
	g := gg.NewRadialGradientBrush(cx*p.s, cy*p.s, 0, r*p.s).
		AddColorStop(0, withAlpha(accent, 0.2)).
		AddColorStop(1, withAlpha(accent, 0))
	p.dc.SetFillBrush(g)
	p.dc.DrawCircle(cx*p.s, cy*p.s, r*p.s)
	p.fill()
}

func (p *painter) photo(accent gg.RGBA, l Layout, photo image.Image) {
	p.dc.SetColor(gg.RGBA2(0, 0, 0, 0.5).Color())
	p.rect(photoX, photoY, photoW, photoH, 8)
	p.fill()

	if photo != nil && !l.Placeholder {
		// object-fit: cover
		w, h := int(math.Round(photoW*p.s)), int(math.Round(photoH*p.s))
		fitted := imaging.Fill(photo, w, h, imaging.Center, imaging.Lanczos)
		p.dc.DrawImageEx(gg.ImageBufFromImage(fitted), gg.DrawImageOptions{
			X:         photoX * p.s,
			Y:         photoY * p.s,
			DstWidth:  float64(w),
			DstHeight: float64(h),
			Opacity:   1,
		})
	} else {
		p.placeholder(accent)
	}

	p.dc.SetColor(accent.Color())
	p.dc.SetLineWidth(2 * p.s)
	p.rect(photoX+1, photoY+1, photoW-2, photoH-2, 8)
	p.stroke()
}

// placeholder is a head-and-shoulders silhouette centered in the photo area.
func (p *painter) placeholder(accent gg.RGBA) {
	cx := photoX + photoW/2
	cy := photoY + photoH/2
	p.dc.SetColor(withAlpha(accent, 0.6).Color())
	p.dc.DrawCircle(cx*p.s, (cy-18)*p.s, 22*p.s)
	p.fill()
	p.dc.DrawEllipse(cx*p.s, (cy+34)*p.s, 40*p.s, 24*p.s)
	p.fill()
}

func (p *painter) header(accent gg.RGBA) {
	p.dc.SetColor(accent.Color())
	p.face(p.fonts.monoBold, 14)
	p.text(HeaderTitle, infoX, padding+12)

	p.dc.SetColor(gray400.Color())
	p.face(p.fonts.regular, 10)
	p.text(HeaderSubtitle, infoX, padding+26)

	// chip
	chipX, chipY := Width-padding-40.0, padding
	g := gg.NewLinearGradientBrush(chipX*p.s, chipY*p.s, (chipX+40)*p.s, (chipY+28)*p.s).
		AddColorStop(0, chipLight).
		AddColorStop(1, chipDark)
	p.dc.SetFillBrush(g)
	p.rect(chipX, chipY, 40, 28, 4)
	p.fill()
	p.dc.SetColor(gg.RGBA2(0, 0, 0, 0.2).Color())
	p.rect(chipX, chipY+14, 40, 1, 0)
	p.fill()
	p.rect(chipX+20, chipY, 1, 28, 0)
	p.fill()

	p.dc.SetColor(whiteFaint.Color())
	p.rect(infoX, padding+36, infoW, 1, 0)
	p.fill()
}

func (p *painter) name(accent gg.RGBA, name string) {
	p.dc.SetColor(gray500.Color())
	p.face(p.fonts.regular, 10)
	p.text(NameLabel, infoX, 78)

	p.face(p.fonts.bold, 24)
	name = p.truncate(name, infoW)
	p.dc.SetColor(withAlpha(accent, 0.5).Color())
	for _, o := range [][2]float64{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		p.text(name, infoX+o[0]*0.5, 104+o[1]*0.5)
	}
	p.dc.SetColor(color.White)
	p.text(name, infoX, 104)
}

func (p *painter) details(serial, class string) {
	colW := (infoW - 16) / 2
	p.dc.SetColor(gray500.Color())
	p.face(p.fonts.regular, 10)
	p.text(SerialLabel, infoX, 126)
	p.text(ClassLabel, infoX+colW+16, 126)

	p.dc.SetColor(gray300.Color())
	p.face(p.fonts.monoBold, 12)
	p.text(p.truncate(serial, colW), infoX, 142)
	p.text(p.truncate(class, colW), infoX+colW+16, 142)
}

// quote draws the soul text box and returns its bottom edge.
func (p *painter) quote(accent gg.RGBA, quote string) float64 {
	const top, lineH, inset = 152.0, 13.0, 8.0
	p.face(p.fonts.italic, 10)
	lines := p.wrap(quote, infoW-2*inset, 4)
	h := float64(len(lines))*lineH + inset

	p.dc.SetColor(gg.RGBA2(0, 0, 0, 0.2).Color())
	p.rect(infoX, top, infoW, h, 4)
	p.fill()
	p.dc.SetColor(accent.Color())
	p.rect(infoX, top, 2, h, 0)
	p.fill()

	p.dc.SetColor(gray400.Color())
	for i, line := range lines {
		p.text(line, infoX+inset, top+inset/2+lineH*float64(i+1)-3)
	}
	return top + h
}

func (p *painter) footer(accent gg.RGBA, code string, above float64) {
	y := math.Max(Height-padding-codeH, above+4)

	p.dc.SetColor(whiteFaint.Color())
	p.rect(infoX, y, codeW, codeH, 0)
	p.fill()
	if qr, err := QRImage(code, int(math.Round(codeH*p.s))); err == nil {
		p.dc.DrawImageEx(gg.ImageBufFromImage(qr), gg.DrawImageOptions{
			X:         infoX * p.s,
			Y:         y * p.s,
			DstWidth:  codeH * p.s,
			DstHeight: codeH * p.s,
			Opacity:   0.5,
		})
	} else if p.err == nil {
		p.err = err
	}

	p.face(p.fonts.bold, 10)
	right := Width - padding
	tw := p.measure(StatusText)
	p.dc.SetColor(accent.Color())
	p.text(StatusText, right-tw, y+codeH-4)

	dotX, dotY := right-tw-10, y+codeH-8
	p.dc.SetColor(withAlpha(accent, 0.3).Color())
	p.dc.DrawCircle(dotX*p.s, dotY*p.s, 6*p.s)
	p.fill()
	p.dc.SetColor(accent.Color())
	p.dc.DrawCircle(dotX*p.s, dotY*p.s, 4*p.s)
	p.fill()
}

// truncate shortens s with an ellipsis until it fits maxW logical units.
func (p *painter) truncate(s string, maxW float64) string {
	if p.measure(s) <= maxW {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		if t := string(r) + "…"; p.measure(t) <= maxW {
			return t
		}
	}
	return ""
}

// wrap breaks s into at most maxLines lines of maxW logical units.
func (p *painter) wrap(s string, maxW float64, maxLines int) []string {
	var lines []string
	var cur string
	for _, word := range strings.Fields(s) {
		next := word
		if cur != "" {
			next = cur + " " + word
		}
		if cur == "" || p.measure(next) <= maxW {
			cur = next
			continue
		}
		lines = append(lines, cur)
		cur = word
	}
	if cur != "" || len(lines) == 0 {
		lines = append(lines, cur)
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = p.truncate(lines[maxLines-1]+" …", maxW)
	}
	for i, l := range lines {
		lines[i] = p.truncate(l, maxW)
	}
	return lines
}

func withAlpha(c gg.RGBA, a float64) gg.RGBA {
	c.A = a
	return c
}
