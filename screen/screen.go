// Package screen presents a tcell screen as a tile surface, turning tile
// indices back into characters through the glyph map and attribute indices
// into the 16-color terminal palette.
package screen

import (
	"github.com/gdamore/tcell/v2"

	"github.com/tileterm/tileterm/glyphmap"
)

// Screen adapts a tcell.Screen to the grid surface capability. It keeps a
// local mirror of the tile indices so reads never depend on the tcell cell
// buffer.
type Screen struct {
	tc     tcell.Screen
	glyphs *glyphmap.Map
	tiles  []int
	attrs  []int
	cols   int
	rows   int
}

// New wraps tc as a cols x rows tile surface. The region is anchored at
// the top-left corner of the tcell screen; cells outside the tcell size
// are clipped on draw.
func New(tc tcell.Screen, cols, rows int, glyphs *glyphmap.Map) *Screen {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &Screen{
		tc:     tc,
		glyphs: glyphs,
		tiles:  make([]int, cols*rows),
		attrs:  make([]int, cols*rows),
		cols:   cols,
		rows:   rows,
	}
}

// Width returns the number of columns.
func (s *Screen) Width() int { return s.cols }

// Height returns the number of rows.
func (s *Screen) Height() int { return s.rows }

// Tile returns the tile index at the given cell, or 0 out of bounds.
func (s *Screen) Tile(row, col int) int {
	if !s.inBounds(row, col) {
		return 0
	}
	return s.tiles[row*s.cols+col]
}

// SetTile sets a cell with the default style.
func (s *Screen) SetTile(row, col, tile int) {
	s.SetTileAttr(row, col, tile, 0)
}

// SetTileAttr sets a cell, drawing the tile's character in the palette
// color selected by attr.
func (s *Screen) SetTileAttr(row, col, tile, attr int) {
	if !s.inBounds(row, col) {
		return
	}
	s.tiles[row*s.cols+col] = tile
	s.attrs[row*s.cols+col] = attr

	r, ok := s.glyphs.Rune(tile)
	if !ok {
		r = ' '
	}
	style := tcell.StyleDefault
	if attr > 0 && attr < 16 {
		style = style.Foreground(tcell.PaletteColor(attr))
	}
	s.tc.SetContent(col, row, r, nil, style)
}

// Attr returns the attribute index at the given cell, or 0 out of bounds.
func (s *Screen) Attr(row, col int) int {
	if !s.inBounds(row, col) {
		return 0
	}
	return s.attrs[row*s.cols+col]
}

// ReadyToSend reports whether the screen accepts further mutation. A tcell
// buffer always does.
func (s *Screen) ReadyToSend() bool { return true }

// Show flushes pending draws to the underlying tcell screen.
func (s *Screen) Show() {
	s.tc.Show()
}

func (s *Screen) inBounds(row, col int) bool {
	return row >= 0 && row < s.rows && col >= 0 && col < s.cols
}

// EncodeKey turns a tcell key event into the byte sequence a shell
// expects. Returns nil for keys with no terminal encoding.
func EncodeKey(ev *tcell.EventKey) []byte {
	switch ev.Key() {
	case tcell.KeyRune:
		return []byte(string(ev.Rune()))
	case tcell.KeyEnter:
		return []byte{'\r'}
	case tcell.KeyTab:
		return []byte{'\t'}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return []byte{0x7F}
	case tcell.KeyEscape:
		return []byte{0x1B}
	case tcell.KeyUp:
		return []byte("\x1b[A")
	case tcell.KeyDown:
		return []byte("\x1b[B")
	case tcell.KeyRight:
		return []byte("\x1b[C")
	case tcell.KeyLeft:
		return []byte("\x1b[D")
	case tcell.KeyHome:
		return []byte("\x1b[H")
	case tcell.KeyDelete:
		return []byte("\x1b[3~")
	}
	// tcell reports control keys in a dedicated range above the C0 codes
	if k := ev.Key(); k >= tcell.KeyCtrlSpace && k <= tcell.KeyCtrlZ {
		return []byte{byte(k - tcell.KeyCtrlSpace)}
	}
	return nil
}
