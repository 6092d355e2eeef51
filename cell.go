package kernel

// Attr is a VGA-style text attribute byte: low nibble foreground, high
// nibble background, matching the high byte of the 16-bit text-mode cell
// the original spec describes.
type Attr uint8

// MakeAttr packs a foreground/background color pair (0-15 each) into an Attr.
func MakeAttr(fg, bg uint8) Attr {
	return Attr(fg&0x0F | (bg&0x0F)<<4)
}

// DefaultAttr is light-gray on black, the BIOS text-mode default.
const DefaultAttr Attr = 0x07

// Fg returns the foreground nibble.
func (a Attr) Fg() uint8 { return uint8(a) & 0x0F }

// Bg returns the background nibble.
func (a Attr) Bg() uint8 { return (uint8(a) >> 4) & 0x0F }

// Cell is a single text-mode display position: an ASCII byte plus its
// attribute, mirroring the spec's 16-bit packed cell (low 8 bits char, high
// 8 bits attribute).
type Cell struct {
	Char byte
	Attr Attr
}

// NewCell returns a blank cell with the default attribute.
func NewCell() Cell {
	return Cell{Char: ' ', Attr: DefaultAttr}
}

// Reset restores a cell to its blank, default-attribute state.
func (c *Cell) Reset() {
	c.Char = ' '
	c.Attr = DefaultAttr
}

// Pack returns the cell as the 16-bit little-endian word the real MMIO
// buffer would hold: low byte ASCII, high byte attribute.
func (c Cell) Pack() uint16 {
	return uint16(c.Char) | uint16(c.Attr)<<8
}

// Unpack populates a cell from a packed 16-bit MMIO word.
func (c *Cell) Unpack(word uint16) {
	c.Char = byte(word)
	c.Attr = Attr(word >> 8)
}
