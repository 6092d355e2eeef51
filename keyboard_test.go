package kernel

import "testing"

func TestKeyboardPlainChar(t *testing.T) {
	p := NewSimPortIO()
	kb := NewKeyboard(p)
	p.PushScancode(0x1E) // 'a' make
	var ev KeyEvent
	if !kb.TryPoll(&ev) {
		t.Fatal("TryPoll returned false for a plain key press")
	}
	if ev.Kind != KeyChar || ev.Char != 'a' {
		t.Errorf("got %+v, want KeyChar 'a'", ev)
	}
}

func TestKeyboardIgnoresBreak(t *testing.T) {
	p := NewSimPortIO()
	kb := NewKeyboard(p)
	p.PushScancode(0x1E | 0x80) // 'a' break
	var ev KeyEvent
	if kb.TryPoll(&ev) {
		t.Errorf("TryPoll(%+v) = true on a break code, want false", ev)
	}
}

func TestKeyboardShiftedChar(t *testing.T) {
	p := NewSimPortIO()
	kb := NewKeyboard(p)
	p.PushScancode(0x2A)        // left shift make
	p.PushScancode(0x1E)        // 'a' make, while shift held
	var ev KeyEvent
	if kb.TryPoll(&ev) {
		t.Fatal("shift make code itself should not produce an event")
	}
	if !kb.TryPoll(&ev) {
		t.Fatal("expected a char event while shift held")
	}
	if ev.Kind != KeyChar || ev.Char != 'A' {
		t.Errorf("got %+v, want KeyChar 'A'", ev)
	}
}

func TestKeyboardShiftReleaseStopsShifting(t *testing.T) {
	p := NewSimPortIO()
	kb := NewKeyboard(p)
	p.PushScancode(0x2A)
	p.PushScancode(0x2A | 0x80) // shift release
	p.PushScancode(0x1E)        // 'a' make, unshifted now
	var ev KeyEvent
	kb.TryPoll(&ev) // shift make
	kb.TryPoll(&ev) // shift break
	if !kb.TryPoll(&ev) {
		t.Fatal("expected a char event")
	}
	if ev.Char != 'a' {
		t.Errorf("got Char=%q, want 'a' (shift should have been released)", ev.Char)
	}
}

func TestKeyboardExtendedArrowKeys(t *testing.T) {
	p := NewSimPortIO()
	kb := NewKeyboard(p)
	p.PushScancode(0xE0)
	p.PushScancode(0x4B) // left
	var ev KeyEvent
	if kb.TryPoll(&ev) {
		t.Fatal("the 0xE0 prefix alone should not produce an event")
	}
	if ok := kb.TryPoll(&ev); !ok || ev.Kind != KeyLeft {
		t.Errorf("got ok=%v ev=%+v, want KeyLeft", ok, ev)
	}
}

func TestKeyboardNoDataReturnsFalse(t *testing.T) {
	p := NewSimPortIO()
	kb := NewKeyboard(p)
	var ev KeyEvent
	if kb.TryPoll(&ev) {
		t.Error("TryPoll on an empty queue should return false")
	}
}

func TestReverseScancodeRoundTrip(t *testing.T) {
	for code, ch := range scancodeUnshifted {
		if ch == 0 || ch == '\n' || ch == '\b' || ch == '\t' {
			continue
		}
		got, shifted, ok := ReverseScancode(ch)
		if !ok {
			t.Fatalf("ReverseScancode(%q) not found", ch)
		}
		if shifted {
			t.Errorf("ReverseScancode(%q) reported shifted for an unshifted-table char", ch)
		}
		if got != byte(code) {
			t.Errorf("ReverseScancode(%q) = %#x, want %#x", ch, got, code)
		}
	}
}

func TestReverseScancodeUnknownByte(t *testing.T) {
	if _, _, ok := ReverseScancode(0x01); ok {
		t.Error("ReverseScancode(0x01) should not resolve to any key")
	}
}
