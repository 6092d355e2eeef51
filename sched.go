package kernel

import "sync"

// Component F — scheduler (spec §4.F). Round-robin cooperative scheduling
// over the task table.
//
// There is no raw stack to switch here, so the scheduler runs its dispatch
// loop on its own goroutine (the stand-in for kmain's call frame) and
// mediates every handoff through two channels per task: resumeCh, which the
// scheduler signals to let a task run, and a shared yieldedCh the running
// task signals to give control back. A task's Yield is therefore never a
// direct task-to-task jump; it is always task-to-scheduler-to-task, which
// is semantically identical to the spec's direct schedule() call for every
// property that matters here (exclusivity, fairness, HUD-dirty timing) and
// avoids goroutines invoking each other's locking logic concurrently.

type yieldMsg struct {
	id     int
	exited bool
}

// Scheduler runs the task table to completion, one task RUNNING at a time.
type Scheduler struct {
	mu         sync.Mutex
	table      *TaskTable
	display    *Display
	current    int // id of the RUNNING task, or -1
	yieldedCh  chan yieldMsg

	// OnTick, if set, runs once after each dispatch round completes (a task
	// yielded or exited and the table settled into its next state). The
	// host terminal uses this to repaint, matching real video hardware's
	// asynchronous scanout rather than a synchronous write-through.
	OnTick func()
}

// NewScheduler binds a scheduler to the task table it runs and the display
// whose HUD it keeps current.
func NewScheduler(table *TaskTable, display *Display) *Scheduler {
	s := &Scheduler{
		table:     table,
		display:   display,
		current:   -1,
		yieldedCh: make(chan yieldMsg),
	}
	display.SetHUDSource(s.hudLines)
	return s
}

func (s *Scheduler) hudLines() []hudLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	var lines []hudLine
	for _, t := range s.table.Live() {
		lines = append(lines, hudLine{id: t.id, state: t.state.char(), name: t.name})
	}
	return lines
}

// Create installs entry in the lowest free slot, named name, and starts its
// goroutine parked until the scheduler first resumes it. Returns the new
// task's id, or -1 and false if the table is full (spec §4.E, "task table
// full").
func (s *Scheduler) Create(name string, entry TaskEntry) (int, bool) {
	s.mu.Lock()
	id := s.table.lowestDead()
	if id < 0 {
		s.mu.Unlock()
		return -1, false
	}
	t := s.table.tasks[id]
	t.state = Ready
	t.name = name
	t.entry = entry
	t.resumeCh = make(chan struct{})
	s.display.HUDMarkDirty()
	s.mu.Unlock()

	yielder := &taskYielder{sched: s, id: id}
	go func() {
		<-t.resumeCh
		entry(yielder, t)
		s.yieldedCh <- yieldMsg{id: id, exited: true}
	}()

	return id, true
}

// Kill marks a non-running, non-dead task dead immediately, per the spec's
// redesign decision against looping task_exit forever. Killing the running
// task or an already-dead/out-of-range id fails.
func (s *Scheduler) Kill(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.table.Get(id)
	if t == nil || t.state == Dead || t.state == Running {
		return false
	}

	var clearRow, clearIdx = -1, -1
	switch t.name {
	case "heartbeat0":
		clearIdx, clearRow = s.table.InstanceIndex(t), HB0RowBase
	case "heartbeat1":
		clearIdx, clearRow = s.table.InstanceIndex(t), HB1RowBase
	}

	t.state = Dead
	t.name = ""
	t.entry = nil
	t.resumeCh = nil
	s.display.HUDMarkDirty()

	if clearRow >= 0 && clearIdx < HBMaxLines {
		s.display.OverlayClearLine(clearRow + clearIdx)
	}
	return true
}

// Current returns the id of the task that is RUNNING, or that most
// recently ran if called between Step calls, or -1 if the scheduler has
// not started.
func (s *Scheduler) Current() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// yield is the scheduler-mediated half of a task's suspend point; tasks
// call it through a *taskYielder, never directly.
func (s *Scheduler) yield(id int) {
	s.yieldedCh <- yieldMsg{id: id}
	<-s.table.tasks[id].resumeCh
}

// taskYielder is the Yielder a task entry receives; it closes over the
// task's own id so Yield never needs the caller to track it.
type taskYielder struct {
	sched *Scheduler
	id    int
}

func (y *taskYielder) Yield() { y.sched.yield(y.id) }

// nextReady scans starting just after prev (or from slot 0 if prev < 0) and
// returns the first READY task id found, or -1.
func (s *Scheduler) nextReady(prev int) int {
	start := 0
	if prev >= 0 {
		start = (prev + 1) % MaxTasks
	}
	for i := 0; i < MaxTasks; i++ {
		idx := (start + i) % MaxTasks
		if s.table.tasks[idx].state == Ready {
			return idx
		}
	}
	return -1
}

// Step runs exactly one dispatch round: pick the next ready task (or resume
// where the schedule() "no switch needed" branch would have left off),
// hand it control until it yields or exits, and update the table. It
// returns false when the scheduler is idle (no task ready or running) —
// the simulated equivalent of schedule() returning to kmain. Step and Run
// must be called only from the boot goroutine; task entries must never
// call either.
func (s *Scheduler) Step() bool {
	s.mu.Lock()
	next := s.nextReady(s.current)
	if next < 0 {
		s.mu.Unlock()
		return false
	}
	s.current = next
	s.table.tasks[next].state = Running
	s.mu.Unlock()
	s.display.HUDDraw()

	s.table.tasks[next].resumeCh <- struct{}{}
	msg := <-s.yieldedCh

	s.mu.Lock()
	if msg.exited {
		t := s.table.tasks[msg.id]
		t.state = Dead
		t.name = ""
		t.entry = nil
		t.resumeCh = nil
	} else {
		s.table.tasks[msg.id].state = Ready
	}
	s.display.HUDMarkDirty()
	s.current = msg.id
	s.mu.Unlock()

	if s.OnTick != nil {
		s.OnTick()
	}
	return true
}

// Run drives Step in a loop until the scheduler goes idle, then returns —
// the simulated equivalent of kmain's "if schedule() returns, halt."
func (s *Scheduler) Run() {
	for s.Step() {
	}
	s.display.HUDDraw()
}
