// Package render draws a tile surface into an image, for hosts that blit
// to a framebuffer or window instead of a character display.
package render

import (
	"image"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/tileterm/tileterm/glyphmap"
	"github.com/tileterm/tileterm/grid"
)

// attrReader is the optional per-cell attribute readback on a surface.
type attrReader interface {
	Attr(row, col int) int
}

// Renderer rasterizes tile surfaces with a fixed-pitch font face. Cell
// geometry is derived from the face metrics once at construction.
type Renderer struct {
	face   font.Face
	glyphs *glyphmap.Map
	theme  Theme

	cellW  int
	cellH  int
	ascent int
}

// NewRenderer creates a renderer drawing glyphs from face.
func NewRenderer(face font.Face, glyphs *glyphmap.Map, theme Theme) *Renderer {
	m := face.Metrics()
	adv, ok := face.GlyphAdvance('M')
	if !ok {
		adv = m.Height / 2
	}
	return &Renderer{
		face:   face,
		glyphs: glyphs,
		theme:  theme,
		cellW:  adv.Ceil(),
		cellH:  m.Height.Ceil(),
		ascent: m.Ascent.Ceil(),
	}
}

// CellSize returns the pixel size of one grid cell.
func (r *Renderer) CellSize() (w, h int) {
	return r.cellW, r.cellH
}

// Render draws the whole surface into a fresh image.
func (r *Renderer) Render(s grid.Surface) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.Width()*r.cellW, s.Height()*r.cellH))
	r.RenderInto(img, s)
	return img
}

// RenderInto draws the surface into dst, anchored at the top-left corner.
func (r *Renderer) RenderInto(dst *image.RGBA, s grid.Surface) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(r.theme.Background), image.Point{}, draw.Src)

	attrs, hasAttrs := s.(attrReader)
	d := font.Drawer{
		Dst:  dst,
		Face: r.face,
	}
	fg := image.NewUniform(r.theme.Foreground)

	for row := 0; row < s.Height(); row++ {
		for col := 0; col < s.Width(); col++ {
			tile := s.Tile(row, col)
			ch, ok := r.glyphs.Rune(tile)
			if !ok || ch == ' ' {
				continue
			}
			d.Src = fg
			if hasAttrs {
				if a := attrs.Attr(row, col); a > 0 && a < len(r.theme.Palette) {
					d.Src = image.NewUniform(r.theme.Palette[a])
				}
			}
			d.Dot = fixed.P(col*r.cellW, row*r.cellH+r.ascent)
			d.DrawString(string(ch))
		}
	}
}

// LoadFace opens a TTF file as a font face at the given point size.
func LoadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
