package kernel

import "testing"

func TestNewCell(t *testing.T) {
	cell := NewCell()

	if cell.Char != ' ' {
		t.Errorf("expected space, got '%c'", cell.Char)
	}
	if cell.Attr != DefaultAttr {
		t.Errorf("expected default attribute, got %#x", cell.Attr)
	}
}

func TestCellReset(t *testing.T) {
	cell := Cell{Char: 'A', Attr: MakeAttr(4, 1)}

	cell.Reset()

	if cell.Char != ' ' {
		t.Errorf("expected space after reset, got '%c'", cell.Char)
	}
	if cell.Attr != DefaultAttr {
		t.Errorf("expected default attribute after reset, got %#x", cell.Attr)
	}
}

func TestAttrPacking(t *testing.T) {
	a := MakeAttr(0xA, 0x3)
	if a.Fg() != 0xA {
		t.Errorf("expected fg 0xA, got %#x", a.Fg())
	}
	if a.Bg() != 0x3 {
		t.Errorf("expected bg 0x3, got %#x", a.Bg())
	}
}

func TestCellPackUnpack(t *testing.T) {
	c := Cell{Char: 'Z', Attr: MakeAttr(0xF, 0x0)}
	word := c.Pack()

	var round Cell
	round.Unpack(word)

	if round.Char != 'Z' || round.Attr != c.Attr {
		t.Errorf("round-trip mismatch: got %+v, want %+v", round, c)
	}
}
