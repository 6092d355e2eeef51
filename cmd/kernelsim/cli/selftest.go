package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	kernel "github.com/opkernel/miniker"
)

// selftestCmd runs the spec's end-to-end scenarios (S1-S6) headlessly
// against a SimMMIO/SimPortIO pair and reports pass/fail for each. It is
// this repo's analogue of the spec's literal input/output traces — the
// teacher has no equivalent scripted-scenario runner, so this is modeled
// on the shape of a table-driven test without a *testing.T, since it must
// run as a CLI subcommand rather than under `go test`.
var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Run the scripted end-to-end scenarios against a simulated terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		results := []result{
			runS1(),
			runS2(),
			runS3(),
			runS4(),
			runS5(),
			runS6(),
		}

		failed := 0
		for _, r := range results {
			status := "PASS"
			if !r.ok {
				status = "FAIL"
				failed++
			}
			fmt.Printf("%s %s: %s\n", status, r.name, r.detail)
		}
		if failed > 0 {
			return fmt.Errorf("%d scenario(s) failed", failed)
		}
		return nil
	},
}

type result struct {
	name   string
	ok     bool
	detail string
}

type rig struct {
	mmio  *kernel.SimMMIO
	ports *kernel.SimPortIO
	d     *kernel.Display
	kb    *kernel.Keyboard
	table *kernel.TaskTable
	sched *kernel.Scheduler
}

func newRig() *rig {
	mmio := kernel.NewSimMMIO(kernel.W, kernel.H)
	ports := kernel.NewSimPortIO()
	d := kernel.NewDisplay(mmio, ports)
	kb := kernel.NewKeyboard(ports)
	table, sched := kernel.Boot(d, ports, kb, "")
	return &rig{mmio: mmio, ports: ports, d: d, kb: kb, table: table, sched: sched}
}

// typeLine pushes the make-code-only scancodes for line (including any
// trailing '\n') and steps the scheduler until they're consumed.
func (r *rig) typeLine(line string) {
	r.pushString(line)
	r.drain()
}

func (r *rig) pushString(s string) {
	for i := 0; i < len(s); i++ {
		r.pushChar(s[i])
	}
}

func (r *rig) pushChar(b byte) {
	if b == '\n' {
		r.ports.PushScancode(0x1C)
		return
	}
	code, shifted, ok := kernel.ReverseScancode(b)
	if !ok {
		return
	}
	if shifted {
		r.ports.PushScancode(0x2A)
	}
	r.ports.PushScancode(code)
}

func (r *rig) pressLeft()      { r.ports.PushScancode(0xE0); r.ports.PushScancode(0x4B) }
func (r *rig) pressRight()     { r.ports.PushScancode(0xE0); r.ports.PushScancode(0x4D) }
func (r *rig) pressBackspace() { r.ports.PushScancode(0x0E) }

// drain steps the scheduler until the pending scancode queue empties and
// one further round settles any command dispatch the last key triggered.
func (r *rig) drain() {
	for i := 0; i < kernel.MaxTasks*4 && r.ports.Pending() > 0; i++ {
		r.sched.Step()
	}
	r.sched.Step()
}

// rowText reads columns [0, HBCol) of row back out as a trimmed string, for
// asserting on scrolling-region output.
func (r *rig) rowText(row int) string {
	var b strings.Builder
	for col := 0; col < kernel.HBCol; col++ {
		b.WriteByte(r.mmio.ReadCell(row, col).Char)
	}
	return strings.TrimRight(b.String(), " \x00")
}

func (r *rig) overlayText(row int) string {
	var b strings.Builder
	for col := kernel.HBCol; col < kernel.W; col++ {
		b.WriteByte(r.mmio.ReadCell(row, col).Char)
	}
	return strings.TrimRight(b.String(), " \x00")
}

func runS1() result {
	r := newRig()
	r.typeLine("thanks\n")
	for row := 0; row < kernel.H-1; row++ {
		if strings.Contains(r.rowText(row), "You're welcome!") {
			return result{"S1 (greeting)", true, "found greeting in scrolling region"}
		}
	}
	return result{"S1 (greeting)", false, "greeting not found"}
}

func runS2() result {
	r := newRig()
	r.typeLine("ps\n")
	live := r.table.Live()
	if len(live) != 3 {
		return result{"S2 (ps)", false, fmt.Sprintf("expected 3 live tasks, got %d", len(live))}
	}
	names := map[string]bool{}
	for _, t := range live {
		names[t.Name()] = true
	}
	for _, want := range []string{"shell", "heartbeat0", "heartbeat1"} {
		if !names[want] {
			return result{"S2 (ps)", false, "missing task " + want}
		}
	}
	return result{"S2 (ps)", true, "shell, heartbeat0, heartbeat1 all live"}
}

func runS3() result {
	r := newRig()
	r.typeLine("spawn hb0\n")
	if r.table.Get(3) == nil || r.table.Get(3).State() == kernel.Dead {
		return result{"S3 (spawn+kill)", false, "spawn hb0 did not create task 3"}
	}
	idxBefore := r.table.InstanceIndex(r.table.Get(3))
	row := kernel.HB0RowBase + idxBefore
	r.typeLine("kill 3\n")
	if r.table.Get(3).State() != kernel.Dead {
		return result{"S3 (spawn+kill)", false, "task 3 not dead after kill"}
	}
	if r.overlayText(row) != "" {
		return result{"S3 (spawn+kill)", false, "overlay row not cleared after kill"}
	}
	return result{"S3 (spawn+kill)", true, "spawned, killed, overlay cleared"}
}

func runS4() result {
	delivered := make(chan string, 1)
	mmio := kernel.NewSimMMIO(kernel.W, kernel.H)
	ports := kernel.NewSimPortIO()
	d := kernel.NewDisplay(mmio, ports)
	kb := kernel.NewKeyboard(ports)
	table := kernel.NewTaskTable()
	sched := kernel.NewScheduler(table, d)

	echo := func(y kernel.Yielder, self *kernel.Task) {
		ed := kernel.NewLineEditor(d, kb, y)
		buf := make([]byte, 32)
		delivered <- ed.ReadLine(buf)
	}
	sched.Create("echo", echo)

	r := &rig{mmio: mmio, ports: ports, d: d, kb: kb, table: table, sched: sched}
	r.pushString("hello")
	r.drain()
	r.pressLeft()
	r.pressLeft()
	r.drain()
	r.pushString("X")
	r.drain()
	r.pushString("\n")
	r.drain()

	select {
	case got := <-delivered:
		if got == "helXlo" {
			return result{"S4 (editing)", true, "buffer equals helXlo"}
		}
		return result{"S4 (editing)", false, "got " + got + ", want helXlo"}
	default:
		return result{"S4 (editing)", false, "line never delivered"}
	}
}

func runS5() result {
	r := newRig()
	r.typeLine("thanks\n")
	r.typeLine("clear\n")
	if strings.Contains(r.rowText(0), "You're welcome!") {
		return result{"S5 (clear)", false, "scrolling region not blanked"}
	}
	if r.overlayText(kernel.HB0RowBase) == "" {
		return result{"S5 (clear)", false, "heartbeat overlay not redrawn after clear"}
	}
	return result{"S5 (clear)", true, "scrolling region blanked, overlays/HUD redrawn"}
}

func runS6() result {
	r := newRig()
	r.typeLine("exit\n")
	want := [][2]uint16{{0x604, 0x2000}, {0xB004, 0x2000}, {0x4004, 0x3400}}
	if len(r.ports.Shutdowns) != len(want) {
		return result{"S6 (exit)", false, fmt.Sprintf("expected %d shutdown writes, got %d", len(want), len(r.ports.Shutdowns))}
	}
	for i, w := range want {
		if r.ports.Shutdowns[i] != w {
			return result{"S6 (exit)", false, "shutdown port order mismatch"}
		}
	}
	return result{"S6 (exit)", true, "shutdown magics written in order"}
}
