package grid

// Erase modes shared by EraseInLine and EraseInDisplay.
const (
	EraseToEnd   = 0 // cursor to end
	EraseToStart = 1 // start to cursor
	EraseAll     = 2 // everything
)

// Engine owns the cursor and applies write, scroll and erase operations
// against a surface. The cursor is always inside the surface bounds after
// any operation; out-of-range requests clamp silently. The engine performs
// no locking: the host serializes access.
type Engine struct {
	surface  Surface
	attrs    AttrSurface // nil when the surface has no attribute support
	attrRead AttrReader  // nil when attributes cannot be read back

	row int
	col int

	savedRow int
	savedCol int

	blank       int
	attr        int
	defaultAttr int
}

// NewEngine creates an engine driving surface. Erased cells are filled
// with the blank tile.
func NewEngine(surface Surface, blank int) *Engine {
	e := &Engine{surface: surface, blank: blank}
	if as, ok := surface.(AttrSurface); ok {
		e.attrs = as
	}
	if ar, ok := surface.(AttrReader); ok {
		e.attrRead = ar
	}
	return e
}

// Cursor returns the current cursor position.
func (e *Engine) Cursor() (row, col int) {
	return e.row, e.col
}

// set writes one cell with the given attribute, via the attribute
// capability when the surface has one.
func (e *Engine) set(row, col, tile, attr int) {
	if e.attrs != nil {
		e.attrs.SetTileAttr(row, col, tile, attr)
		return
	}
	e.surface.SetTile(row, col, tile)
}

// Place writes tile at the cursor and advances the cursor one column.
// Writing the last column wraps to column 0 of the next row; past the last
// row the grid scrolls up one row and the cursor row holds at the bottom.
func (e *Engine) Place(tile int) {
	e.set(e.row, e.col, tile, e.attr)
	e.col++
	if e.col >= e.surface.Width() {
		e.col = 0
		e.advanceRow()
	}
}

// advanceRow moves the cursor down one row, scrolling at the bottom.
func (e *Engine) advanceRow() {
	e.row++
	if e.row >= e.surface.Height() {
		e.scrollUp()
		e.row = e.surface.Height() - 1
	}
}

// scrollUp discards row 0, shifts every row up and blanks the bottom row.
func (e *Engine) scrollUp() {
	w, h := e.surface.Width(), e.surface.Height()
	for row := 0; row < h-1; row++ {
		for col := 0; col < w; col++ {
			e.moveCell(row, col, row+1, col)
		}
	}
	for col := 0; col < w; col++ {
		e.set(h-1, col, e.blank, e.defaultAttr)
	}
}

// moveCell copies one cell, attribute included when the surface supports
// readback.
func (e *Engine) moveCell(dstRow, dstCol, srcRow, srcCol int) {
	if e.attrs != nil && e.attrRead != nil {
		e.attrs.SetTileAttr(dstRow, dstCol, e.surface.Tile(srcRow, srcCol), e.attrRead.Attr(srcRow, srcCol))
		return
	}
	e.surface.SetTile(dstRow, dstCol, e.surface.Tile(srcRow, srcCol))
}

// MoveCursor moves the cursor by the given delta, clamped to bounds.
func (e *Engine) MoveCursor(dRow, dCol int) {
	e.SetCursor(e.row+dRow, e.col+dCol)
}

// SetCursor sets the cursor to an absolute position, clamped to bounds.
func (e *Engine) SetCursor(row, col int) {
	e.row = clamp(row, 0, e.surface.Height()-1)
	e.col = clamp(col, 0, e.surface.Width()-1)
}

// CarriageReturn moves the cursor to column 0.
func (e *Engine) CarriageReturn() {
	e.col = 0
}

// LineFeed moves the cursor to column 0 of the next row, scrolling at the
// bottom.
func (e *Engine) LineFeed() {
	e.col = 0
	e.advanceRow()
}

// Index moves the cursor down one row without changing the column,
// scrolling at the bottom.
func (e *Engine) Index() {
	e.advanceRow()
}

// ReverseIndex moves the cursor up one row; at the top the grid scrolls
// down instead.
func (e *Engine) ReverseIndex() {
	if e.row > 0 {
		e.row--
		return
	}
	e.scrollDown()
}

// scrollDown shifts every row down and blanks the top row.
func (e *Engine) scrollDown() {
	w, h := e.surface.Width(), e.surface.Height()
	for row := h - 1; row > 0; row-- {
		for col := 0; col < w; col++ {
			e.moveCell(row, col, row-1, col)
		}
	}
	for col := 0; col < w; col++ {
		e.set(0, col, e.blank, e.defaultAttr)
	}
}

// Backspace moves the cursor back one column, clamped at 0. It never wraps
// to the previous row.
func (e *Engine) Backspace() {
	if e.col > 0 {
		e.col--
	}
}

// SaveCursor remembers the current cursor position.
func (e *Engine) SaveCursor() {
	e.savedRow, e.savedCol = e.row, e.col
}

// RestoreCursor returns the cursor to the saved position, clamped in case
// the saved position predates a reset.
func (e *Engine) RestoreCursor() {
	e.SetCursor(e.savedRow, e.savedCol)
}

// EraseInLine blanks part of the cursor's row. The cursor does not move.
func (e *Engine) EraseInLine(mode int) {
	w := e.surface.Width()
	from, to := 0, w-1
	switch mode {
	case EraseToEnd:
		from = e.col
	case EraseToStart:
		to = e.col
	case EraseAll:
	default:
		return
	}
	for col := from; col <= to; col++ {
		e.set(e.row, col, e.blank, e.defaultAttr)
	}
}

// EraseInDisplay blanks part of the grid. The cursor does not move.
func (e *Engine) EraseInDisplay(mode int) {
	h := e.surface.Height()
	switch mode {
	case EraseToEnd:
		e.EraseInLine(EraseToEnd)
		e.eraseRows(e.row+1, h-1)
	case EraseToStart:
		e.eraseRows(0, e.row-1)
		e.EraseInLine(EraseToStart)
	case EraseAll:
		e.eraseRows(0, h-1)
	}
}

func (e *Engine) eraseRows(from, to int) {
	w := e.surface.Width()
	for row := from; row <= to; row++ {
		for col := 0; col < w; col++ {
			e.set(row, col, e.blank, e.defaultAttr)
		}
	}
}

// SetAttributes applies an SGR parameter list to the attribute index used
// by subsequent Place calls. With no attribute support on the surface this
// is a no-op. Supported: 0/39 reset, 30-37 and 90-97 color selection;
// other parameters are ignored.
func (e *Engine) SetAttributes(params []int) {
	if e.attrs == nil {
		return
	}
	if len(params) == 0 {
		params = []int{0}
	}
	for _, p := range params {
		switch {
		case p == 0, p == 39:
			e.attr = e.defaultAttr
		case p >= 30 && p <= 37:
			e.attr = p - 30
		case p >= 90 && p <= 97:
			e.attr = p - 90 + 8
		}
	}
}

// Attribute returns the attribute index applied to subsequent Place calls.
func (e *Engine) Attribute() int {
	return e.attr
}

// Reset blanks the grid, homes the cursor and restores the default
// attribute.
func (e *Engine) Reset() {
	e.attr = e.defaultAttr
	e.eraseRows(0, e.surface.Height()-1)
	e.row, e.col = 0, 0
	e.savedRow, e.savedCol = 0, 0
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
