// Package terminal renders a byte stream of text and VT100 control
// sequences onto a fixed-size tile surface. Visible ASCII characters map
// to the first 94 tile indices by subtracting 0x20 from the character
// value; supplemental characters map from index 94 in the order given at
// construction.
package terminal

import (
	"io"

	"pkt.systems/pslog"

	"github.com/tileterm/tileterm/glyphmap"
	"github.com/tileterm/tileterm/grid"
	"github.com/tileterm/tileterm/parser"
)

// readinessSurface is the optional busy probe on a display surface.
type readinessSurface interface {
	ReadyToSend() bool
}

// Session is a terminal bound to one tile surface. It is single-threaded:
// the host serializes Write calls and surface reads.
type Session struct {
	surface grid.Surface
	glyphs  *glyphmap.Map
	engine  *grid.Engine
	decoder *parser.Decoder
	log     pslog.Logger
}

var _ io.Writer = (*Session)(nil)

type options struct {
	supplemental string
	unknownTile  int
	log          pslog.Logger
}

// Option configures a Session.
type Option func(*options)

// WithSupplementalGlyphs binds extra codepoints to tile indices from 94 up,
// in sequence order.
func WithSupplementalGlyphs(s string) Option {
	return func(o *options) { o.supplemental = s }
}

// WithUnknownTile sets the tile written for unmapped input characters.
// The default is the blank tile.
func WithUnknownTile(tile int) Option {
	return func(o *options) { o.unknownTile = tile }
}

// WithLogger attaches a logger; without it the session stays silent.
func WithLogger(log pslog.Logger) Option {
	return func(o *options) { o.log = log }
}

// New constructs a session writing to surface. It returns a
// *ConfigurationError when the surface or glyph sequence is unusable.
func New(surface grid.Surface, opts ...Option) (*Session, error) {
	o := options{unknownTile: glyphmap.BlankTile}
	for _, opt := range opts {
		opt(&o)
	}

	if surface == nil {
		return nil, &ConfigurationError{Reason: "surface is required"}
	}
	if surface.Width() <= 0 || surface.Height() <= 0 {
		return nil, &ConfigurationError{Reason: "surface must have positive dimensions"}
	}

	glyphs, err := glyphmap.New(o.supplemental, glyphmap.WithUnknownTile(o.unknownTile))
	if err != nil {
		return nil, &ConfigurationError{Reason: "invalid supplemental glyphs", Err: err}
	}

	log := o.log
	if log == nil {
		log = pslog.NewWithOptions(io.Discard, pslog.Options{Mode: pslog.ModeStructured, NoColor: true})
	}

	s := &Session{
		surface: surface,
		glyphs:  glyphs,
		engine:  grid.NewEngine(surface, glyphmap.BlankTile),
		log:     log.With("cols", surface.Width(), "rows", surface.Height()),
	}
	s.decoder = parser.NewDecoder(vtHandler{s})
	s.log.Debug("terminal session created", "glyphs", glyphs.Size())
	return s, nil
}

// Write feeds the buffer through the escape decoder. It always consumes
// the entire buffer and never fails: malformed escape content is
// resynchronized silently.
func (s *Session) Write(p []byte) (int, error) {
	s.decoder.Feed(p)
	return len(p), nil
}

// ReadyToSend reports whether the surface can accept further mutation.
// Surfaces without a readiness probe are always ready.
func (s *Session) ReadyToSend() bool {
	if r, ok := s.surface.(readinessSurface); ok {
		return r.ReadyToSend()
	}
	return true
}

// Cursor returns the current cursor position.
func (s *Session) Cursor() (row, col int) {
	return s.engine.Cursor()
}

// Glyphs returns the session's glyph map, for display adapters that turn
// tile indices back into characters.
func (s *Session) Glyphs() *glyphmap.Map {
	return s.glyphs
}

// vtHandler adapts decoded parser actions onto the engine without exposing
// them on the Session API.
type vtHandler struct {
	s *Session
}

func (h vtHandler) Print(r rune) {
	h.s.engine.Place(h.s.glyphs.Tile(r))
}

func (h vtHandler) Execute(b byte) {
	e := h.s.engine
	switch b {
	case 0x08:
		e.Backspace()
	case 0x0A:
		e.LineFeed()
	case 0x0D:
		e.CarriageReturn()
	case 0x07:
		// Bell - ignore
	}
}

func (h vtHandler) CSIDispatch(final byte, params []int) {
	e := h.s.engine
	switch final {
	case 'A': // CUU - Cursor up
		e.MoveCursor(-param(params, 0, 1), 0)
	case 'B': // CUD - Cursor down
		e.MoveCursor(param(params, 0, 1), 0)
	case 'C': // CUF - Cursor forward
		e.MoveCursor(0, param(params, 0, 1))
	case 'D': // CUB - Cursor back
		e.MoveCursor(0, -param(params, 0, 1))
	case 'E': // CNL - Cursor next line
		e.CarriageReturn()
		e.MoveCursor(param(params, 0, 1), 0)
	case 'F': // CPL - Cursor previous line
		e.CarriageReturn()
		e.MoveCursor(-param(params, 0, 1), 0)
	case 'G': // CHA - Cursor horizontal absolute
		row, _ := e.Cursor()
		e.SetCursor(row, param(params, 0, 1)-1)
	case 'd': // VPA - Vertical position absolute
		_, col := e.Cursor()
		e.SetCursor(param(params, 0, 1)-1, col)
	case 'H', 'f': // CUP - Cursor position
		e.SetCursor(param(params, 0, 1)-1, param(params, 1, 1)-1)
	case 'J': // ED - Erase in display
		e.EraseInDisplay(param(params, 0, 0))
	case 'K': // EL - Erase in line
		e.EraseInLine(param(params, 0, 0))
	case 'm': // SGR - Select graphic rendition
		e.SetAttributes(params)
	case 's': // SCP - Save cursor position
		e.SaveCursor()
	case 'u': // RCP - Restore cursor position
		e.RestoreCursor()
	default:
		h.s.log.Trace("csi ignored", "final", string(rune(final)), "params", params)
	}
}

func (h vtHandler) EscDispatch(b byte) {
	e := h.s.engine
	switch b {
	case 'c': // RIS - Reset
		e.Reset()
	case '7': // DECSC - Save cursor
		e.SaveCursor()
	case '8': // DECRC - Restore cursor
		e.RestoreCursor()
	case 'D': // IND - Index
		e.Index()
	case 'M': // RI - Reverse index
		e.ReverseIndex()
	case 'E': // NEL - Next line
		e.LineFeed()
	}
}

// param gets a CSI parameter with a default; 0 counts as absent per VT100
// convention.
func param(params []int, index, def int) int {
	if index < len(params) && params[index] > 0 {
		return params[index]
	}
	return def
}
