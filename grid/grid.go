package grid

// TileGrid is an in-memory tile surface with per-cell attribute indices.
// Mutations are visible to readers immediately; there is no internal
// double buffering.
type TileGrid struct {
	tiles []int
	attrs []int
	cols  int
	rows  int
}

// NewTileGrid creates a grid of cols x rows cells, every cell holding
// tile 0 with attribute 0.
func NewTileGrid(cols, rows int) *TileGrid {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &TileGrid{
		tiles: make([]int, cols*rows),
		attrs: make([]int, cols*rows),
		cols:  cols,
		rows:  rows,
	}
}

// index returns the linear index for a cell position
func (g *TileGrid) index(row, col int) int {
	return row*g.cols + col
}

func (g *TileGrid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Width returns the number of columns.
func (g *TileGrid) Width() int { return g.cols }

// Height returns the number of rows.
func (g *TileGrid) Height() int { return g.rows }

// Tile returns the tile index at the given cell, or 0 out of bounds.
func (g *TileGrid) Tile(row, col int) int {
	if !g.inBounds(row, col) {
		return 0
	}
	return g.tiles[g.index(row, col)]
}

// SetTile sets the tile index at the given cell; out-of-bounds writes are
// dropped.
func (g *TileGrid) SetTile(row, col, tile int) {
	if !g.inBounds(row, col) {
		return
	}
	g.tiles[g.index(row, col)] = tile
}

// SetTileAttr sets both the tile and the attribute index at the given cell.
func (g *TileGrid) SetTileAttr(row, col, tile, attr int) {
	if !g.inBounds(row, col) {
		return
	}
	i := g.index(row, col)
	g.tiles[i] = tile
	g.attrs[i] = attr
}

// Attr returns the attribute index at the given cell, or 0 out of bounds.
func (g *TileGrid) Attr(row, col int) int {
	if !g.inBounds(row, col) {
		return 0
	}
	return g.attrs[g.index(row, col)]
}

// Row returns a copy of one row of tile indices.
func (g *TileGrid) Row(row int) []int {
	out := make([]int, g.cols)
	if row >= 0 && row < g.rows {
		copy(out, g.tiles[row*g.cols:(row+1)*g.cols])
	}
	return out
}
