package kernel

// Component C — keyboard decoder (spec §4.C). Non-blocking translation of
// PS/2 scancodes to logical key events.

// KeyKind enumerates the decoded event kinds.
type KeyKind int

const (
	KeyChar KeyKind = iota
	KeyEnter
	KeyBackspace
	KeyLeft
	KeyRight
	KeyDelete
)

// KeyEvent is one decoded, press-edge key event.
type KeyEvent struct {
	Kind KeyKind
	Char byte // valid only when Kind == KeyChar, in [32, 126]
}

const (
	scLeftShift  = 0x2A
	scRightShift = 0x36
	scExtended   = 0xE0
	scReleased   = 0x80
)

// Keyboard decodes PS/2 scancodes read through a PortIO boundary into key
// events. It is non-blocking: TryPoll either returns a complete event or
// returns immediately having updated only its internal modifier state.
type Keyboard struct {
	ports            PortIO
	shiftDown        bool
	extendedPending  bool
}

// NewKeyboard returns a decoder reading from the given port boundary.
func NewKeyboard(ports PortIO) *Keyboard {
	return &Keyboard{ports: ports}
}

// TryPoll implements the algorithm of spec §4.C step by step. It returns
// true and populates ev only for a complete, press-edge, mapped key.
func (k *Keyboard) TryPoll(ev *KeyEvent) bool {
	if k.ports.ReadByte(PortPS2Status)&0x01 == 0 {
		return false
	}

	sc := k.ports.ReadByte(PortPS2Data)

	if sc == scExtended {
		k.extendedPending = true
		return false
	}

	released := sc&scReleased != 0
	code := sc &^ scReleased

	if !k.extendedPending && (code == scLeftShift || code == scRightShift) {
		k.shiftDown = !released
		return false
	}

	if released {
		k.extendedPending = false
		return false
	}

	if k.extendedPending {
		k.extendedPending = false
		switch code {
		case 0x4B:
			ev.Kind = KeyLeft
			return true
		case 0x4D:
			ev.Kind = KeyRight
			return true
		case 0x53:
			ev.Kind = KeyDelete
			return true
		default:
			return false
		}
	}

	var table *[128]byte
	if k.shiftDown {
		table = &scancodeShifted
	} else {
		table = &scancodeUnshifted
	}
	if int(code) >= len(table) {
		return false
	}
	b := table[code]
	switch b {
	case 0:
		return false
	case '\n':
		ev.Kind = KeyEnter
		return true
	case '\b':
		ev.Kind = KeyBackspace
		return true
	default:
		if b < 32 || b > 126 {
			return false
		}
		ev.Kind = KeyChar
		ev.Char = b
		return true
	}
}
