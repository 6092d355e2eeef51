package kernel

// Component E — task table & context switch (spec §4.E).
//
// A real context switch saves the outgoing task's registers onto its own
// stack and loads the incoming task's stack pointer; here there is no raw
// stack to manipulate, so the "saved stack pointer" is instead a blocked
// goroutine parked on resumeCh. Preparing a task (task_create) is starting
// that goroutine and leaving it blocked on its own channel until the
// scheduler first resumes it — the moment-in-time equivalent of pushing the
// trampoline return address and the initial register frame. A context
// switch is the scheduler goroutine sending on the incoming task's resumeCh
// and receiving the outgoing task's yield notice on a shared channel; see
// [Scheduler] for the loop that mediates this handoff.

// MaxTasks is the fixed task table size (spec §3).
const MaxTasks = 8

// TaskState is a task descriptor's lifecycle state.
type TaskState int

const (
	Dead TaskState = iota
	Ready
	Running
	// Blocked is reserved for future I/O-wait semantics; no component ever
	// transitions a task into it (spec §9).
	Blocked
)

func (s TaskState) char() byte {
	switch s {
	case Ready:
		return 'R'
	case Running:
		return '*'
	case Blocked:
		return 'B'
	default:
		return 'D'
	}
}

// TaskEntry is a task's body. It runs once per task lifetime and receives
// the Yielder it must use to cooperatively suspend, plus its own
// descriptor (read-only by convention) so it can look up its id and
// instance index without a side channel.
type TaskEntry func(y Yielder, self *Task)

// Task is one task table slot (spec §3). entry and name are cleared
// whenever state == Dead.
type Task struct {
	id       int
	state    TaskState
	name     string
	entry    TaskEntry
	resumeCh chan struct{}
}

// ID returns the task's table index.
func (t *Task) ID() int { return t.id }

// State returns the task's current state.
func (t *Task) State() TaskState { return t.state }

// Name returns the task's stable label.
func (t *Task) Name() string { return t.name }

// TaskTable is the fixed MAX_TASKS array of task descriptors.
type TaskTable struct {
	tasks [MaxTasks]*Task
}

// NewTaskTable returns a table of MaxTasks dead slots.
func NewTaskTable() *TaskTable {
	tt := &TaskTable{}
	for i := range tt.tasks {
		tt.tasks[i] = &Task{id: i, state: Dead}
	}
	return tt
}

// lowestDead returns the lowest-indexed dead slot, or -1 if none.
func (tt *TaskTable) lowestDead() int {
	for i, t := range tt.tasks {
		if t.state == Dead {
			return i
		}
	}
	return -1
}

// Get returns the descriptor at id, or nil if id is out of range.
func (tt *TaskTable) Get(id int) *Task {
	if id < 0 || id >= MaxTasks {
		return nil
	}
	return tt.tasks[id]
}

// Live returns every non-dead descriptor, in id order.
func (tt *TaskTable) Live() []*Task {
	var out []*Task
	for _, t := range tt.tasks {
		if t.state != Dead {
			out = append(out, t)
		}
	}
	return out
}

// InstanceIndex returns the 0-based rank of t among live tasks sharing its
// name (spec §4.G's "instance index").
func (tt *TaskTable) InstanceIndex(t *Task) int {
	idx := 0
	for _, other := range tt.tasks {
		if other == t {
			return idx
		}
		if other.state != Dead && other.name == t.name {
			idx++
		}
	}
	return idx
}
