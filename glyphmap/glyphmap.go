package glyphmap

import (
	"fmt"
	"unicode/utf8"
)

const (
	asciiLow  = 0x20
	asciiHigh = 0x7E

	// ASCIICount is the size of the fixed printable-ASCII tile range.
	ASCIICount = asciiHigh - asciiLow + 1

	// SupplementalBase is the tile index of the first supplemental glyph.
	SupplementalBase = ASCIICount

	// BlankTile is the tile index of the space character.
	BlankTile = 0
)

// Map resolves characters to tile indices. Printable ASCII occupies tiles
// 0..93 (character value minus 0x20); supplemental codepoints follow from
// tile 94 in the order they were given. Immutable after construction.
type Map struct {
	supplemental map[rune]int
	runes        []rune
	unknown      int
}

// Option configures a Map.
type Option func(*Map)

// WithUnknownTile sets the tile returned for characters outside both ranges.
func WithUnknownTile(tile int) Option {
	return func(m *Map) { m.unknown = tile }
}

// New builds a glyph map from a supplemental character sequence. The
// sequence must be valid UTF-8 and must not repeat printable ASCII, which
// already owns the fixed tile range. Duplicate codepoints resolve to the
// first occurrence's tile.
func New(supplemental string, opts ...Option) (*Map, error) {
	if !utf8.ValidString(supplemental) {
		return nil, fmt.Errorf("supplemental glyphs are not a valid character sequence")
	}
	m := &Map{
		supplemental: make(map[rune]int),
		unknown:      BlankTile,
	}
	for _, r := range supplemental {
		if r >= asciiLow && r <= asciiHigh {
			return nil, fmt.Errorf("supplemental glyph %q is in the fixed ASCII range", r)
		}
		if _, seen := m.supplemental[r]; seen {
			continue
		}
		m.supplemental[r] = SupplementalBase + len(m.runes)
		m.runes = append(m.runes, r)
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Tile returns the tile index for r, or the unknown sentinel when r is in
// neither range.
func (m *Map) Tile(r rune) int {
	if tile, ok := m.Lookup(r); ok {
		return tile
	}
	return m.unknown
}

// Lookup returns the tile index for r and whether r is mapped.
func (m *Map) Lookup(r rune) (int, bool) {
	if r >= asciiLow && r <= asciiHigh {
		return int(r) - asciiLow, true
	}
	tile, ok := m.supplemental[r]
	return tile, ok
}

// Rune is the reverse mapping, used by display adapters that show tiles as
// characters.
func (m *Map) Rune(tile int) (rune, bool) {
	if tile >= 0 && tile < ASCIICount {
		return rune(tile + asciiLow), true
	}
	i := tile - SupplementalBase
	if i >= 0 && i < len(m.runes) {
		return m.runes[i], true
	}
	return 0, false
}

// UnknownTile returns the sentinel tile for unmapped characters.
func (m *Map) UnknownTile() int {
	return m.unknown
}

// Size returns the number of mapped tiles, ASCII range included.
func (m *Map) Size() int {
	return ASCIICount + len(m.runes)
}
