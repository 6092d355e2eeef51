package kernel

// Set-1 scancode-to-ASCII tables for a US keyboard layout, indexed by the
// 7-bit make code (scancode with the release bit masked off). 0 marks an
// unmapped code.
var scancodeUnshifted = [128]byte{
	0x01: 27, // Esc
	0x02: '1', 0x03: '2', 0x04: '3', 0x05: '4', 0x06: '5',
	0x07: '6', 0x08: '7', 0x09: '8', 0x0A: '9', 0x0B: '0',
	0x0C: '-', 0x0D: '=', 0x0E: '\b',
	0x0F: '\t',
	0x10: 'q', 0x11: 'w', 0x12: 'e', 0x13: 'r', 0x14: 't',
	0x15: 'y', 0x16: 'u', 0x17: 'i', 0x18: 'o', 0x19: 'p',
	0x1A: '[', 0x1B: ']', 0x1C: '\n',
	0x1E: 'a', 0x1F: 's', 0x20: 'd', 0x21: 'f', 0x22: 'g',
	0x23: 'h', 0x24: 'j', 0x25: 'k', 0x26: 'l', 0x27: ';',
	0x28: '\'', 0x29: '`',
	0x2B: '\\',
	0x2C: 'z', 0x2D: 'x', 0x2E: 'c', 0x2F: 'v', 0x30: 'b',
	0x31: 'n', 0x32: 'm', 0x33: ',', 0x34: '.', 0x35: '/',
	0x39: ' ',
}

var scancodeShifted = [128]byte{
	0x01: 27,
	0x02: '!', 0x03: '@', 0x04: '#', 0x05: '$', 0x06: '%',
	0x07: '^', 0x08: '&', 0x09: '*', 0x0A: '(', 0x0B: ')',
	0x0C: '_', 0x0D: '+', 0x0E: '\b',
	0x0F: '\t',
	0x10: 'Q', 0x11: 'W', 0x12: 'E', 0x13: 'R', 0x14: 'T',
	0x15: 'Y', 0x16: 'U', 0x17: 'I', 0x18: 'O', 0x19: 'P',
	0x1A: '{', 0x1B: '}', 0x1C: '\n',
	0x1E: 'A', 0x1F: 'S', 0x20: 'D', 0x21: 'F', 0x22: 'G',
	0x23: 'H', 0x24: 'J', 0x25: 'K', 0x26: 'L', 0x27: ':',
	0x28: '"', 0x29: '~',
	0x2B: '|',
	0x2C: 'Z', 0x2D: 'X', 0x2E: 'C', 0x2F: 'V', 0x30: 'B',
	0x31: 'N', 0x32: 'M', 0x33: '<', 0x34: '>', 0x35: '?',
	0x39: ' ',
}

var reverseUnshifted = buildReverseScancode(scancodeUnshifted)
var reverseShifted = buildReverseScancode(scancodeShifted)

func buildReverseScancode(table [128]byte) map[byte]byte {
	inv := make(map[byte]byte, 64)
	for code, ch := range table {
		if ch != 0 {
			inv[ch] = byte(code)
		}
	}
	return inv
}

// ReverseScancode returns the Set-1 make code that would decode to ASCII
// byte b (and whether a shift key must be pressed first), for synthesizing
// keystrokes in tests and in internal/host's input decoder.
func ReverseScancode(b byte) (code byte, shifted bool, ok bool) {
	if c, found := reverseUnshifted[b]; found {
		return c, false, true
	}
	if c, found := reverseShifted[b]; found {
		return c, true, true
	}
	return 0, false, false
}
