package kernel

import "strconv"

// Component G — heartbeat tasks (spec §4.G). A heartbeat computes its
// instance index — its 0-based rank among live tasks sharing its name —
// and, while that index fits within HBMaxLines, redraws a single overlay
// line at rowBase+index showing its id and a counter. It never exits on
// its own; only "kill <id>" ends it.
//
// The spec's heartbeat delays via a busy loop that yields every 1<<14
// iterations, a pacing device that makes sense when the task and the
// scheduler share a real CPU core with nothing else to do. A goroutine
// spinning that loop here would just burn a host CPU for no visible
// effect, so this heartbeat yields once per redraw instead and leaves
// wall-clock pacing to whatever drives the scheduler's dispatch loop
// (cmd/kernelsim ticks it on an interval; see internal/config's
// HeartbeatTickMillis).
const (
	hb0N = 0
	hb1N = 1
)

// NewHeartbeatEntry returns a task entry that animates overlay rows
// rowBase+instanceIndex, labeled "HB<n>", for a heartbeat spawned under
// the given name ("heartbeat0" or "heartbeat1").
func NewHeartbeatEntry(d *Display, table *TaskTable, n int, rowBase int) TaskEntry {
	return func(y Yielder, self *Task) {
		counter := 0
		for {
			idx := table.InstanceIndex(self)
			if idx < HBMaxLines {
				row := rowBase + idx
				text := "HB" + strconv.Itoa(n) + " #" + strconv.Itoa(self.ID()) + " : " + strconv.Itoa(counter%10)
				d.WriteOverlayLine(row, text, DefaultAttr)
			}
			counter++
			y.Yield()
		}
	}
}
