package parser

import "unicode/utf8"

// State represents the current state of the VT100 decoder
type State int

const (
	StateGround State = iota
	StateEscape
	StateCSI
)

// maxParams bounds the CSI parameter list; longer sequences are treated as
// malformed and discarded.
const maxParams = 16

// Handler receives the actions decoded from the byte stream.
type Handler interface {
	// Print places a resolved printable character.
	Print(r rune)
	// Execute runs a C0 control byte (BS, LF, CR, BEL).
	Execute(b byte)
	// CSIDispatch runs a completed CSI sequence. params holds the closed
	// parameters in order; missing-parameter defaults are the handler's
	// concern.
	CSIDispatch(final byte, params []int)
	// EscDispatch runs a recognized two-byte escape command.
	EscDispatch(b byte)
}

// Decoder is a byte-at-a-time VT100 escape sequence state machine. All
// in-progress sequence state lives in the struct, so input may be fed in
// arbitrary chunks and sequences resume across Feed calls.
type Decoder struct {
	handler Handler
	state   State

	// CSI parameter accumulation
	params     []int
	current    int
	hasCurrent bool

	// UTF-8 decoding state
	utf8Buf       []byte
	utf8Remaining int
}

// NewDecoder creates a decoder dispatching into h.
func NewDecoder(h Handler) *Decoder {
	return &Decoder{
		handler: h,
		state:   StateGround,
		params:  make([]int, 0, maxParams),
	}
}

// State returns the decoder's current state.
func (d *Decoder) State() State {
	return d.state
}

// Feed processes every byte of data in order.
func (d *Decoder) Feed(data []byte) {
	for _, b := range data {
		d.processByte(b)
	}
}

func (d *Decoder) processByte(b byte) {
	switch d.state {
	case StateGround:
		d.processGround(b)
	case StateEscape:
		d.processEscape(b)
	case StateCSI:
		d.processCSI(b)
	}
}

func (d *Decoder) processGround(b byte) {
	// If we're in the middle of a UTF-8 sequence, continue it
	if d.utf8Remaining > 0 {
		if b&0xC0 == 0x80 {
			d.utf8Buf = append(d.utf8Buf, b)
			d.utf8Remaining--
			if d.utf8Remaining == 0 {
				r, _ := utf8.DecodeRune(d.utf8Buf)
				d.handler.Print(r)
				d.utf8Buf = d.utf8Buf[:0]
			}
		} else {
			// Invalid continuation - discard and process this byte normally
			d.utf8Buf = d.utf8Buf[:0]
			d.utf8Remaining = 0
			d.processGround(b)
		}
		return
	}

	switch {
	case b == 0x1B:
		d.state = StateEscape
	case b == 0x07 || b == 0x08 || b == 0x0D:
		d.handler.Execute(b)
	case b >= 0x0A && b <= 0x0C:
		// LF, VT and FF all advance the line
		d.handler.Execute(0x0A)
	case b >= 0x20 && b < 0x7F:
		d.handler.Print(rune(b))
	case b >= 0xC0 && b < 0xE0:
		d.utf8Buf = append(d.utf8Buf[:0], b)
		d.utf8Remaining = 1
	case b >= 0xE0 && b < 0xF0:
		d.utf8Buf = append(d.utf8Buf[:0], b)
		d.utf8Remaining = 2
	case b >= 0xF0 && b < 0xF8:
		d.utf8Buf = append(d.utf8Buf[:0], b)
		d.utf8Remaining = 3
	default:
		// Other control bytes and invalid UTF-8 start bytes are ignored
	}
}

func (d *Decoder) processEscape(b byte) {
	if b == '[' {
		d.state = StateCSI
		d.clearParams()
		return
	}
	d.state = StateGround
	switch b {
	case 'c', '7', '8', 'D', 'M', 'E':
		d.handler.EscDispatch(b)
	default:
		// Unrecognized escape command - discard
	}
}

func (d *Decoder) processCSI(b byte) {
	switch {
	case b >= '0' && b <= '9':
		d.current = d.current*10 + int(b-'0')
		d.hasCurrent = true
	case b == ';':
		if !d.closeParam() {
			d.abort()
		}
	case b >= 0x40 && b <= 0x7E:
		if d.hasCurrent && !d.closeParam() {
			d.abort()
			return
		}
		params := d.params
		d.state = StateGround
		d.handler.CSIDispatch(b, params)
	default:
		// Malformed sequence: discard and resynchronize
		d.abort()
	}
}

// closeParam ends the in-progress parameter (0 when empty). It reports
// false when the parameter list is full.
func (d *Decoder) closeParam() bool {
	if len(d.params) >= maxParams {
		return false
	}
	d.params = append(d.params, d.current)
	d.current = 0
	d.hasCurrent = false
	return true
}

func (d *Decoder) abort() {
	d.clearParams()
	d.state = StateGround
}

func (d *Decoder) clearParams() {
	d.params = d.params[:0]
	d.current = 0
	d.hasCurrent = false
}
