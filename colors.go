package kernel

import "image/color"

// VGAPalette is the standard 16-color CGA/VGA text-mode palette, indexed by
// the low or high nibble of an [Attr]. Index order matches the nibble
// encoding: black, blue, green, cyan, red, magenta, brown/yellow, light
// gray, then the eight bright variants.
var VGAPalette = [16]color.RGBA{
	{0x00, 0x00, 0x00, 255}, // 0 black
	{0x00, 0x00, 0xAA, 255}, // 1 blue
	{0x00, 0xAA, 0x00, 255}, // 2 green
	{0x00, 0xAA, 0xAA, 255}, // 3 cyan
	{0xAA, 0x00, 0x00, 255}, // 4 red
	{0xAA, 0x00, 0xAA, 255}, // 5 magenta
	{0xAA, 0x55, 0x00, 255}, // 6 brown
	{0xAA, 0xAA, 0xAA, 255}, // 7 light gray
	{0x55, 0x55, 0x55, 255}, // 8 dark gray
	{0x55, 0x55, 0xFF, 255}, // 9 bright blue
	{0x55, 0xFF, 0x55, 255}, // 10 bright green
	{0x55, 0xFF, 0xFF, 255}, // 11 bright cyan
	{0xFF, 0x55, 0x55, 255}, // 12 bright red
	{0xFF, 0x55, 0xFF, 255}, // 13 bright magenta
	{0xFF, 0xFF, 0x55, 255}, // 14 yellow
	{0xFF, 0xFF, 0xFF, 255}, // 15 bright white
}

// RGBA resolves an attribute's foreground/background nibbles to RGBA colors.
func (a Attr) RGBA() (fg, bg color.RGBA) {
	return VGAPalette[a.Fg()], VGAPalette[a.Bg()]
}
