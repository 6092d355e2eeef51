package kernel

// Cursor tracks the logical write position within the text area and the
// hardware cursor's visibility, per spec §3. Display.Put keeps
// 0 <= Row < H-1 and 0 <= Col < HBCol, starting a new line as soon as Col
// reaches HBCol; Display.CursorSet can place it anywhere up to (H-1, W-1).
type Cursor struct {
	Row     int
	Col     int
	Visible bool
}

// NewCursor returns a cursor at the origin, visible.
func NewCursor() Cursor {
	return Cursor{Row: 0, Col: 0, Visible: true}
}
