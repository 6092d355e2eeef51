package kernel

// Component B — display manager (spec §4.B). Screen geometry and partition
// constants (spec §3).
const (
	W = 80 // text-mode columns
	H = 25 // text-mode rows, row H-1 reserved for the HUD

	HBCol        = 64 // first overlay column; [0, HBCol) is the scrolling region
	HBMaxLines   = 4   // overlay rows available per heartbeat slot
	HB0RowBase   = 0   // heartbeat0's overlay rows start here
	HB1RowBase   = HBMaxLines

	HUDW = W - HBCol // HUD width in columns
	HUDH = 6         // HUD height in rows; the top row stays blank above HUDH-1 task rows
)

// Display owns the cursor and the partitioned text-mode screen: a scrolling
// region, an overlay region written by heartbeat-style producers, and a HUD
// listing live tasks. It performs no locking of its own — per spec §5, a task has exclusive access to shared
// state between its own suspension points, so the scheduler's single
// critical section is enough.
type Display struct {
	mmio      MMIO
	ports     PortIO
	cursor    Cursor
	hudDirty   bool
	hudEnabled bool
	taskLines  func() []hudLine // supplied by the scheduler; see HUDDraw

	// overlayCache holds the last text written to each overlay row via
	// WriteOverlayLine, so OverlaysRedraw can restore overlay content after
	// clear_text_area without needing the owning task to run again.
	overlayCache map[int]string
}

// hudLine is one row of HUD content: a task id, its state character, and name.
type hudLine struct {
	id    int
	state byte
	name  string
}

// NewDisplay creates a display manager over the given MMIO and port
// boundaries, with the cursor at the origin.
func NewDisplay(mmio MMIO, ports PortIO) *Display {
	return &Display{mmio: mmio, ports: ports, cursor: NewCursor(), overlayCache: make(map[int]string), hudEnabled: true}
}

// HUDSetEnabled toggles whether HUDDraw paints the HUD region at all. The
// rows stay reserved either way (spec §3 fixes the partition at compile
// time); disabling just means the caller never wants the task list drawn
// into them, e.g. to save host repaint cost on every tick.
func (d *Display) HUDSetEnabled(enabled bool) {
	d.hudEnabled = enabled
	d.hudDirty = true
}

// PutAt writes one cell with the given attribute; out-of-range coordinates
// are silently ignored (spec §4.B).
func (d *Display) PutAt(row, col int, ch byte, attr Attr) {
	d.mmio.WriteCell(row, col, Cell{Char: ch, Attr: attr})
}

// WriteAt writes a NUL-terminated byte sequence starting at (row, col),
// clipped at the right edge of the text area.
func (d *Display) WriteAt(row, col int, s string, attr Attr) {
	for i := 0; i < len(s) && s[i] != 0; i++ {
		c := col + i
		if c >= W {
			break
		}
		d.PutAt(row, c, s[i], attr)
	}
}

// Put appends one character to the scrolling region at the cursor using the
// default attribute. '\n' and reaching column HBCol (the right edge of the
// scrolling region) both trigger a newline.
// The hardware cursor is repositioned after every call.
func (d *Display) Put(ch byte) {
	if ch == '\n' {
		d.newline()
		d.syncCursor()
		return
	}
	d.PutAt(d.cursor.Row, d.cursor.Col, ch, DefaultAttr)
	d.cursor.Col++
	if d.cursor.Col >= HBCol {
		d.newline()
	}
	d.syncCursor()
}

// PutString writes each byte of s via Put, in order.
func (d *Display) PutString(s string) {
	for i := 0; i < len(s); i++ {
		d.Put(s[i])
	}
}

// newline pads the remainder of the current row's scrolling columns with
// spaces, moves to column 0, and scrolls if the text area is full. Overlay
// and HUD columns are never touched here — the original source scrolled the
// full row width, which clobbered the overlay; this is the corrected
// behavior the spec's open question calls for.
func (d *Display) newline() {
	for c := d.cursor.Col; c < HBCol; c++ {
		d.PutAt(d.cursor.Row, c, ' ', DefaultAttr)
	}
	d.cursor.Col = 0

	if d.cursor.Row+1 >= H-1 {
		d.scroll()
		return
	}
	d.cursor.Row++
}

// scroll shifts rows [1, H-1) up by one within the scrolling region's
// columns [0, HBCol) only; overlay and HUD cells are untouched.
func (d *Display) scroll() {
	for row := 1; row < H-1; row++ {
		for col := 0; col < HBCol; col++ {
			d.mmio.WriteCell(row-1, col, d.mmio.ReadCell(row, col))
		}
	}
	for col := 0; col < HBCol; col++ {
		d.PutAt(H-2, col, ' ', DefaultAttr)
	}
}

// ClearTextArea fills rows [0, H-1) across all columns with spaces and
// resets the cursor to (0,0). Callers must follow up with OverlaysRedraw to
// restore overlay/HUD cells, since this also blanks those columns.
func (d *Display) ClearTextArea() {
	for row := 0; row < H-1; row++ {
		for col := 0; col < W; col++ {
			d.PutAt(row, col, ' ', DefaultAttr)
		}
	}
	d.cursor.Row, d.cursor.Col = 0, 0
	d.syncCursor()
}

// OverlayClearLine fills columns [HBCol, W) of row with spaces.
func (d *Display) OverlayClearLine(row int) {
	for col := HBCol; col < W; col++ {
		d.PutAt(row, col, ' ', DefaultAttr)
	}
	delete(d.overlayCache, row)
}

// WriteOverlayLine clears row's overlay columns and writes s there, caching
// it so a later OverlaysRedraw can restore it without the owning task
// running again.
func (d *Display) WriteOverlayLine(row int, s string, attr Attr) {
	for col := HBCol; col < W; col++ {
		d.PutAt(row, col, ' ', DefaultAttr)
	}
	d.WriteAt(row, HBCol, s, attr)
	d.overlayCache[row] = s
}

// OverlaysRedraw restores every cached overlay row and forces a HUD
// repaint. clear_text_area callers must follow it with this, since
// clearing blanks the overlay and HUD columns along with the scrolling
// region (spec §4.B).
func (d *Display) OverlaysRedraw() {
	for row, s := range d.overlayCache {
		d.WriteAt(row, HBCol, s, DefaultAttr)
	}
	d.hudDirty = true
	d.HUDDraw()
}

// SetHUDSource installs the callback the HUD uses to enumerate live tasks.
// Called once at boot by the scheduler.
func (d *Display) SetHUDSource(f func() []hudLine) {
	d.taskLines = f
}

// HUDMarkDirty flags the HUD for redraw on the next HUDDraw call.
func (d *Display) HUDMarkDirty() {
	d.hudDirty = true
}

// HUDDraw redraws the HUD if it is marked dirty; otherwise it is a no-op.
// Lists up to HUDH-1 non-dead tasks as "#<id> <state> <name>", truncated at
// the right edge of the HUD region.
func (d *Display) HUDDraw() {
	if !d.hudDirty {
		return
	}
	d.hudDirty = false

	if !d.hudEnabled {
		return
	}

	hudRow0 := H - HUDH
	for r := 0; r < HUDH; r++ {
		for c := W - HUDW; c < W; c++ {
			d.PutAt(hudRow0+r, c, ' ', DefaultAttr)
		}
	}

	if d.taskLines == nil {
		return
	}
	lines := d.taskLines()
	max := HUDH - 1
	for i, line := range lines {
		if i >= max {
			break
		}
		text := hudLineText(line)
		d.WriteAt(hudRow0+1+i, W-HUDW, text, DefaultAttr)
	}
}

func hudLineText(l hudLine) string {
	return "#" + itoa(l.id) + " " + string(l.state) + " " + l.name
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// CursorShow marks the hardware cursor visible and writes it through.
func (d *Display) CursorShow() {
	d.cursor.Visible = true
	d.writeCursorVisibility()
}

// CursorHide marks the hardware cursor hidden and writes it through.
func (d *Display) CursorHide() {
	d.cursor.Visible = false
	d.writeCursorVisibility()
}

// CursorSet repositions the logical and hardware cursor, clamped to
// (H-1, W-1).
func (d *Display) CursorSet(row, col int) {
	if row > H-1 {
		row = H - 1
	}
	if row < 0 {
		row = 0
	}
	if col > W-1 {
		col = W - 1
	}
	if col < 0 {
		col = 0
	}
	d.cursor.Row, d.cursor.Col = row, col
	d.syncCursor()
}

// Cursor returns the current logical cursor position.
func (d *Display) Cursor() (row, col int) {
	return d.cursor.Row, d.cursor.Col
}

func (d *Display) syncCursor() {
	pos := uint16(d.cursor.Row*W + d.cursor.Col)
	d.ports.WriteByte(PortCRTCIndex, crtcCursorHigh)
	d.ports.WriteByte(PortCRTCData, byte(pos>>8))
	d.ports.WriteByte(PortCRTCIndex, crtcCursorLow)
	d.ports.WriteByte(PortCRTCData, byte(pos))
}

func (d *Display) writeCursorVisibility() {
	d.ports.WriteByte(PortCRTCIndex, crtcCursorStart)
	if d.cursor.Visible {
		d.ports.WriteByte(PortCRTCData, 0x00)
	} else {
		d.ports.WriteByte(PortCRTCData, cursorDisableBit)
	}
}
