package kernel

// Component D — line editor (spec §4.D). Cursor-aware in-place editing over
// a fixed buffer, driven by key events, blocking cooperatively (via Yielder)
// rather than spinning.

// Yielder suspends the calling task in favor of other runnable tasks. The
// scheduler satisfies this.
type Yielder interface {
	Yield()
}

// LineEditor drives ReadLine against a display and keyboard, yielding
// whenever no key is available instead of busy-spinning.
type LineEditor struct {
	d  *Display
	kb *Keyboard
	y  Yielder
}

// NewLineEditor binds an editor to the display it draws on, the keyboard it
// polls, and the scheduler it yields to.
func NewLineEditor(d *Display, kb *Keyboard, y Yielder) *LineEditor {
	return &LineEditor{d: d, kb: kb, y: y}
}

// ReadLine blocks cooperatively until ENTER, leaving a NUL-terminated string
// in buf (capacity len(buf)) and advancing the display cursor to the end of
// the edited text. buf must have length >= 1; at most len(buf)-1 bytes of
// text are accepted.
func (e *LineEditor) ReadLine(buf []byte) string {
	capacity := len(buf)
	inputRow, inputCol := e.d.Cursor()

	var (
		length int
		cursor int
	)
	buf[0] = 0

	redraw := func() {
		e.d.WriteAt(inputRow, inputCol, string(buf[:length]), DefaultAttr)
		padTo := capacity - 1
		if W-inputCol < padTo {
			padTo = W - inputCol
		}
		for c := length; c < padTo; c++ {
			e.d.PutAt(inputRow, inputCol+c, ' ', DefaultAttr)
		}
		e.d.CursorSet(inputRow, inputCol+cursor)
	}

	var ev KeyEvent
	for {
		if !e.kb.TryPoll(&ev) {
			e.y.Yield()
			continue
		}

		switch ev.Kind {
		case KeyLeft:
			if cursor > 0 {
				cursor--
			}
		case KeyRight:
			if cursor < length {
				cursor++
			}
		case KeyBackspace:
			if cursor > 0 {
				copy(buf[cursor-1:length-1], buf[cursor:length])
				cursor--
				length--
			}
		case KeyDelete:
			if cursor < length {
				copy(buf[cursor:length-1], buf[cursor+1:length])
				length--
			}
		case KeyChar:
			if length+1 < capacity {
				copy(buf[cursor+1:length+1], buf[cursor:length])
				buf[cursor] = ev.Char
				cursor++
				length++
			}
		case KeyEnter:
			buf[length] = 0
			e.d.CursorSet(inputRow, inputCol+length)
			e.d.Put('\n')
			return string(buf[:length])
		}

		redraw()
	}
}
