package parser

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"
)

// recorder captures decoded actions for assertions
type recorder struct {
	actions []string
}

func (r *recorder) Print(ch rune) {
	r.actions = append(r.actions, fmt.Sprintf("print %q", ch))
}

func (r *recorder) Execute(b byte) {
	r.actions = append(r.actions, fmt.Sprintf("exec %02x", b))
}

func (r *recorder) CSIDispatch(final byte, params []int) {
	p := make([]int, len(params))
	copy(p, params)
	r.actions = append(r.actions, fmt.Sprintf("csi %c %v", final, p))
}

func (r *recorder) EscDispatch(b byte) {
	r.actions = append(r.actions, fmt.Sprintf("esc %c", b))
}

func decode(data []byte) []string {
	rec := &recorder{}
	NewDecoder(rec).Feed(data)
	return rec.actions
}

func TestPlainText(t *testing.T) {
	got := decode([]byte("Hi!"))
	want := []string{`print 'H'`, `print 'i'`, `print '!'`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestControlBytes(t *testing.T) {
	got := decode([]byte("a\b\r\n\x07"))
	want := []string{`print 'a'`, "exec 08", "exec 0d", "exec 0a", "exec 07"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestVerticalTabAndFormFeedActAsLineFeed(t *testing.T) {
	got := decode([]byte{0x0B, 0x0C})
	want := []string{"exec 0a", "exec 0a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCSISequences(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"\x1b[A", []string{"csi A []"}},
		{"\x1b[5C", []string{"csi C [5]"}},
		{"\x1b[12;40H", []string{"csi H [12 40]"}},
		{"\x1b[;5H", []string{"csi H [0 5]"}},
		{"\x1b[2J", []string{"csi J [2]"}},
		{"\x1b[0;1;31m", []string{"csi m [0 1 31]"}},
	}
	for _, tt := range tests {
		if got := decode([]byte(tt.in)); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("decode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTwoByteEscapes(t *testing.T) {
	got := decode([]byte("\x1bc\x1b7\x1b8\x1bD\x1bM\x1bE"))
	want := []string{"esc c", "esc 7", "esc 8", "esc D", "esc M", "esc E"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestUnrecognizedEscapeDiscarded(t *testing.T) {
	got := decode([]byte("\x1b=x"))
	want := []string{`print 'x'`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMalformedCSIResynchronizes(t *testing.T) {
	// BEL is not a valid CSI byte: the sequence is dropped with no action,
	// and the following text decodes normally.
	got := decode([]byte("\x1b[\x07ok"))
	want := []string{`print 'o'`, `print 'k'`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCSISpansFeedCalls(t *testing.T) {
	rec := &recorder{}
	d := NewDecoder(rec)
	d.Feed([]byte("\x1b[3"))
	if d.State() != StateCSI {
		t.Fatalf("state = %v, want StateCSI", d.State())
	}
	d.Feed([]byte("C"))
	want := []string{"csi C [3]"}
	if !reflect.DeepEqual(rec.actions, want) {
		t.Errorf("got %v, want %v", rec.actions, want)
	}
	if d.State() != StateGround {
		t.Errorf("state = %v, want StateGround", d.State())
	}
}

func TestUTF8AcrossChunks(t *testing.T) {
	rec := &recorder{}
	d := NewDecoder(rec)
	raw := []byte("é→𝄞") // 2-, 3- and 4-byte sequences
	for _, b := range raw {
		d.Feed([]byte{b})
	}
	want := []string{`print 'é'`, `print '→'`, `print '𝄞'`}
	if !reflect.DeepEqual(rec.actions, want) {
		t.Errorf("got %v, want %v", rec.actions, want)
	}
}

func TestInvalidUTF8ContinuationRecovers(t *testing.T) {
	got := decode([]byte{0xC3, 'A'})
	want := []string{`print 'A'`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParamOverflowAborts(t *testing.T) {
	in := []byte("\x1b[1;2;3;4;5;6;7;8;9;10;11;12;13;14;15;16;17H")
	if got := decode(in); len(got) != 0 {
		t.Errorf("overflowing sequence should be discarded, got %v", got)
	}
}

func TestChunkInvariance(t *testing.T) {
	input := []byte("plain \x1b[2J\x1b[10;20Htext\r\n\x1b[1;31mred\x1b[0m é\x1b7\x1b[K")
	whole := decode(input)

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 50; trial++ {
		rec := &recorder{}
		d := NewDecoder(rec)
		rest := input
		for len(rest) > 0 {
			n := 1 + rng.Intn(len(rest))
			d.Feed(rest[:n])
			rest = rest[n:]
		}
		if !reflect.DeepEqual(rec.actions, whole) {
			t.Fatalf("trial %d: chunked decode %v != whole decode %v", trial, rec.actions, whole)
		}
	}
}
