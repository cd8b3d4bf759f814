package glyphmap

import "testing"

func TestASCIIRange(t *testing.T) {
	m, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for b := 0x20; b <= 0x7E; b++ {
		tile, ok := m.Lookup(rune(b))
		if !ok {
			t.Fatalf("byte %#x should be mapped", b)
		}
		if tile != b-0x20 {
			t.Errorf("byte %#x mapped to tile %d, want %d", b, tile, b-0x20)
		}
	}
	if m.Size() != ASCIICount {
		t.Errorf("empty supplemental map size = %d, want %d", m.Size(), ASCIICount)
	}
}

func TestSupplementalRange(t *testing.T) {
	seq := []rune("éüλ→")
	m, err := New(string(seq))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i, r := range seq {
		if got := m.Tile(r); got != SupplementalBase+i {
			t.Errorf("rune %q mapped to tile %d, want %d", r, got, SupplementalBase+i)
		}
		back, ok := m.Rune(SupplementalBase + i)
		if !ok || back != r {
			t.Errorf("Rune(%d) = %q, %v, want %q", SupplementalBase+i, back, ok, r)
		}
	}
	if m.Size() != ASCIICount+len(seq) {
		t.Errorf("size = %d, want %d", m.Size(), ASCIICount+len(seq))
	}
}

func TestDuplicatesKeepFirstIndex(t *testing.T) {
	m, err := New("éüé")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m.Tile('é'); got != SupplementalBase {
		t.Errorf("duplicate rune mapped to tile %d, want %d", got, SupplementalBase)
	}
	if got := m.Tile('ü'); got != SupplementalBase+1 {
		t.Errorf("second rune mapped to tile %d, want %d", got, SupplementalBase+1)
	}
	if m.Size() != ASCIICount+2 {
		t.Errorf("size = %d, want %d", m.Size(), ASCIICount+2)
	}
}

func TestUnknownSentinel(t *testing.T) {
	m, err := New("é")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m.Tile('λ'); got != BlankTile {
		t.Errorf("unmapped rune resolved to tile %d, want blank %d", got, BlankTile)
	}
	if _, ok := m.Lookup('λ'); ok {
		t.Error("Lookup should report unmapped runes")
	}

	m2, err := New("é", WithUnknownTile(42))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m2.Tile('λ'); got != 42 {
		t.Errorf("unmapped rune resolved to tile %d, want configured 42", got)
	}
	if got := m2.UnknownTile(); got != 42 {
		t.Errorf("UnknownTile = %d, want 42", got)
	}
}

func TestInvalidSequence(t *testing.T) {
	if _, err := New("\xff\xfe"); err == nil {
		t.Fatal("New should reject invalid UTF-8")
	}
}

func TestASCIIInSupplementalRejected(t *testing.T) {
	if _, err := New("éAü"); err == nil {
		t.Fatal("New should reject ASCII in the supplemental sequence")
	}
}

func TestControlBytesUnmapped(t *testing.T) {
	m, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, r := range []rune{0x00, 0x07, 0x1B, 0x7F} {
		if _, ok := m.Lookup(r); ok {
			t.Errorf("rune %#x should not be mapped", r)
		}
	}
}
