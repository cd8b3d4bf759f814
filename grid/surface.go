package grid

// Surface is the capability the engine requires from a display target: a
// fixed-size grid of tile indices, mutable in place. The engine never
// resizes a surface, it only indexes into it.
type Surface interface {
	Width() int
	Height() int
	Tile(row, col int) int
	SetTile(row, col, tile int)
}

// AttrSurface is implemented by surfaces that carry a per-cell
// color/attribute index alongside the tile index.
type AttrSurface interface {
	Surface
	SetTileAttr(row, col, tile, attr int)
}

// AttrReader is implemented by attribute surfaces whose attribute indices
// can be read back. Scrolling moves attributes along with tiles when the
// surface supports it.
type AttrReader interface {
	Attr(row, col int) int
}
