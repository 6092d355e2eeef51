// Package host adapts the simulated kernel onto a real terminal: raw-mode
// keystroke capture translated into PS/2-shaped scancodes, and a
// lipgloss-rendered frame standing in for memory-mapped VGA text video.
//
// This is the one place in the module allowed to know it is running on a
// real terminal; kernel itself only ever sees the MMIO/PortIO interfaces.
package host

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	kernel "github.com/opkernel/miniker"
)

// Terminal implements kernel.MMIO and kernel.PortIO against the process's
// own stdin/stdout, grounded on AhnafCodes-basementui's raw-mode setup
// (golang.org/x/term) and its own escape-sequence input decoder.
type Terminal struct {
	w, h int

	mu        sync.Mutex
	cells     []kernel.Cell
	crtcIndex byte
	crtcData  [0x10]byte

	scMu      sync.Mutex
	scancodes []byte

	in     *os.File
	out    io.Writer
	oldSt  *term.State
	exitFn func(code int)
}

// New puts stdin into raw mode, starts the input-decoding goroutine, and
// returns a Terminal sized w x h. Call Close to restore the terminal.
func New(w, h int) (*Terminal, error) {
	oldSt, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("host: enable raw mode: %w", err)
	}

	cells := make([]kernel.Cell, w*h)
	for i := range cells {
		cells[i] = kernel.NewCell()
	}

	t := &Terminal{
		w: w, h: h,
		cells:  cells,
		in:     os.Stdin,
		out:    os.Stdout,
		oldSt:  oldSt,
		exitFn: os.Exit,
	}
	go t.readLoop()
	return t, nil
}

// Close restores the terminal's original mode.
func (t *Terminal) Close() error {
	return term.Restore(int(t.in.Fd()), t.oldSt)
}

func (t *Terminal) inBounds(row, col int) bool {
	return row >= 0 && row < t.h && col >= 0 && col < t.w
}

// ReadCell implements kernel.MMIO.
func (t *Terminal) ReadCell(row, col int) kernel.Cell {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.inBounds(row, col) {
		return kernel.NewCell()
	}
	return t.cells[row*t.w+col]
}

// WriteCell implements kernel.MMIO.
func (t *Terminal) WriteCell(row, col int, c kernel.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.inBounds(row, col) {
		return
	}
	t.cells[row*t.w+col] = c
}

// ReadByte implements kernel.PortIO.
func (t *Terminal) ReadByte(port uint16) byte {
	switch port {
	case kernel.PortPS2Status:
		t.scMu.Lock()
		defer t.scMu.Unlock()
		if len(t.scancodes) > 0 {
			return 0x01
		}
		return 0x00
	case kernel.PortPS2Data:
		t.scMu.Lock()
		defer t.scMu.Unlock()
		if len(t.scancodes) == 0 {
			return 0
		}
		sc := t.scancodes[0]
		t.scancodes = t.scancodes[1:]
		return sc
	case kernel.PortCRTCData:
		t.mu.Lock()
		defer t.mu.Unlock()
		return t.crtcData[t.crtcIndex]
	}
	return 0
}

// WriteByte implements kernel.PortIO.
func (t *Terminal) WriteByte(port uint16, v byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch port {
	case kernel.PortCRTCIndex:
		t.crtcIndex = v
	case kernel.PortCRTCData:
		t.crtcData[t.crtcIndex] = v
	}
}

// shutdownMagics mirrors the vendor ACPI magics kernel.Shutdown writes, so
// the host can recognize the real shutdown sequence and actually end the
// process rather than merely recording it.
var shutdownMagics = map[[2]uint16]bool{
	{0x604, 0x2000}:  true,
	{0xB004, 0x2000}: true,
	{0x4004, 0x3400}: true,
}

// WriteWord implements kernel.PortIO. On a recognized shutdown magic it
// restores the terminal and exits the process.
func (t *Terminal) WriteWord(port uint16, v uint16) {
	if shutdownMagics[[2]uint16{port, v}] {
		t.Close()
		fmt.Fprint(t.out, "\r\n")
		t.exitFn(0)
	}
}

// pushScancode enqueues one decoded byte for the next PS/2 status/data poll.
func (t *Terminal) pushScancode(sc byte) {
	t.scMu.Lock()
	t.scancodes = append(t.scancodes, sc)
	t.scMu.Unlock()
}

// readLoop decodes raw stdin bytes into Set-1-shaped scancode sequences and
// never blocks the kernel side. Bytes are queued one at a time, so TryPoll
// may see a sequence split across polls; the decoder's shift and extended
// state carries over between them.
func (t *Terminal) readLoop() {
	r := bufio.NewReader(t.in)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return
		}

		if b == 0x1b {
			t.decodeEscape(r)
			continue
		}

		if b == 0x7f { // terminal DEL is conventionally backspace
			t.pushMake(0x0E)
			continue
		}

		t.pushChar(b)
	}
}

// decodeEscape consumes a CSI sequence (ESC [ ...) and emits the matching
// extended scancode; an unrecognized or truncated sequence is dropped.
func (t *Terminal) decodeEscape(r *bufio.Reader) {
	b1, err := r.ReadByte()
	if err != nil || b1 != '[' {
		return
	}
	b2, err := r.ReadByte()
	if err != nil {
		return
	}
	switch b2 {
	case 'D': // left arrow
		t.pushExtended(0x4B)
	case 'C': // right arrow
		t.pushExtended(0x4D)
	case '3': // delete is ESC [ 3 ~
		if b3, err := r.ReadByte(); err == nil && b3 == '~' {
			t.pushExtended(0x53)
		}
	}
}

func (t *Terminal) pushExtended(makeCode byte) {
	t.pushScancode(0xE0)
	t.pushScancode(makeCode)
	t.pushScancode(0xE0)
	t.pushScancode(makeCode | 0x80)
}

func (t *Terminal) pushMake(makeCode byte) {
	t.pushScancode(makeCode)
	t.pushScancode(makeCode | 0x80)
}

// pushChar maps a printable ASCII byte, newline, or tab back to the Set-1
// make code it would have come from, pressing shift first when needed.
func (t *Terminal) pushChar(b byte) {
	code, shifted, ok := kernel.ReverseScancode(b)
	if !ok {
		return
	}
	if shifted {
		t.pushScancode(0x2A) // left shift make
	}
	t.pushMake(code)
	if shifted {
		t.pushScancode(0x2A | 0x80) // left shift break
	}
}

// Render paints the current cell grid to the real terminal using lipgloss
// styles derived from each cell's VGA attribute, and positions the cursor
// using the CRTC registers the kernel has written. It is not called
// automatically — cmd/kernelsim invokes it once per scheduler tick, the
// same "asynchronous scanout" separation real video hardware has from the
// CPU writing to it.
func (t *Terminal) Render() {
	t.mu.Lock()
	defer t.mu.Unlock()

	var b strings.Builder
	b.WriteString("\x1b[H")
	for row := 0; row < t.h; row++ {
		for col := 0; col < t.w; col++ {
			c := t.cells[row*t.w+col]
			fg, bg := c.Attr.RGBA()
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", fg.R, fg.G, fg.B))).
				Background(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", bg.R, bg.G, bg.B)))
			ch := c.Char
			if ch == 0 {
				ch = ' '
			}
			b.WriteString(style.Render(string(ch)))
		}
		b.WriteString("\r\n")
	}

	pos := int(t.crtcData[0x0E])<<8 | int(t.crtcData[0x0F])
	row, col := pos/t.w, pos%t.w
	hidden := t.crtcData[0x0A]&0x20 != 0
	if hidden {
		b.WriteString("\x1b[?25l")
	} else {
		fmt.Fprintf(&b, "\x1b[%d;%dH\x1b[?25h", row+1, col+1)
	}

	fmt.Fprint(t.out, b.String())
}
