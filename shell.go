package kernel

import "strconv"

// Component G — shell task (spec §4.G). A line-oriented command loop
// running as an ordinary task: it has no privilege the heartbeat tasks
// lack, it just happens to own the keyboard.

// ShellDeps are the collaborators the shell command loop needs. Spawn and
// Kill are scheduler operations rather than direct TaskTable access because
// only the scheduler may safely mutate the table from inside a running
// task's own goroutine.
type ShellDeps struct {
	Display *Display
	Table   *TaskTable
	Sched   *Scheduler
	Ports   PortIO
}

// NewShellEntry returns a task entry running the shell's read-eval-print
// loop against kb for input. The loop ends, and the task dies naturally,
// when the user types "exit".
func NewShellEntry(deps ShellDeps, kb *Keyboard) TaskEntry {
	return func(y Yielder, self *Task) {
		d := deps.Display
		ed := NewLineEditor(d, kb, y)
		buf := make([]byte, 128)

		for {
			d.PutString("> ")
			line := ed.ReadLine(buf)
			if !dispatchShellCommand(deps, d, line) {
				return
			}
			y.Yield() // every dispatched command yields, per spec §4.G
		}
	}
}

// dispatchShellCommand runs one shell command; it returns false when the
// shell task should exit.
func dispatchShellCommand(deps ShellDeps, d *Display, line string) bool {
	cmd, arg := splitCommand(line)
	switch cmd {
	case "":
		// blank line, nothing to do
	case "thanks":
		d.PutString("You're welcome!\n")
	case "exit":
		d.PutString("Shutting down...\n")
		Shutdown(deps.Ports)
		return false
	case "clear":
		d.ClearTextArea()
		d.OverlaysRedraw()
	case "ps":
		printProcessList(deps, d)
	case "kill":
		runKillCommand(deps, d, arg)
	case "spawn":
		runSpawnCommand(deps, d, arg)
	case "yield":
		d.PutString("(yield)\n")
	default:
		d.PutString("Unknown command.\n")
	}
	return true
}

func printProcessList(deps ShellDeps, d *Display) {
	for _, t := range deps.Table.Live() {
		d.PutString(strconv.Itoa(t.ID()) + " " + string(t.State().char()) + " " + t.Name() + "\n")
	}
}

func runKillCommand(deps ShellDeps, d *Display, arg string) {
	id, err := strconv.Atoi(arg)
	if err != nil || !deps.Sched.Kill(id) {
		d.PutString("Usage: kill <id>\n")
		return
	}
	d.PutString("Killed task.\n")
}

func runSpawnCommand(deps ShellDeps, d *Display, arg string) {
	var entry TaskEntry
	var name string
	switch arg {
	case "hb0":
		name = "heartbeat0"
		entry = NewHeartbeatEntry(deps.Display, deps.Table, hb0N, HB0RowBase)
	case "hb1":
		name = "heartbeat1"
		entry = NewHeartbeatEntry(deps.Display, deps.Table, hb1N, HB1RowBase)
	default:
		d.PutString("Unknown command.\n")
		return
	}
	if _, ok := deps.Sched.Create(name, entry); !ok {
		d.PutString("No free task slots.\n")
		return
	}
	d.PutString("Spawned " + arg + ".\n")
}

// splitCommand splits line into its first whitespace-delimited word and the
// remainder, each trimmed of surrounding spaces.
func splitCommand(line string) (cmd, arg string) {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	start := i
	for i < len(line) && line[i] != ' ' {
		i++
	}
	cmd = line[start:i]
	for i < len(line) && line[i] == ' ' {
		i++
	}
	end := len(line)
	for end > i && line[end-1] == ' ' {
		end--
	}
	arg = line[i:end]
	return cmd, arg
}
