package kernel

import "testing"

func newSchedRig() (*TaskTable, *Scheduler) {
	mmio := NewSimMMIO(W, H)
	ports := NewSimPortIO()
	d := NewDisplay(mmio, ports)
	table := NewTaskTable()
	return table, NewScheduler(table, d)
}

func TestSchedulerCreateAssignsLowestDeadSlot(t *testing.T) {
	_, s := newSchedRig()
	id, ok := s.Create("a", func(y Yielder, self *Task) {})
	if !ok || id != 0 {
		t.Fatalf("Create = (%d, %v), want (0, true)", id, ok)
	}
}

func TestSchedulerCreateFailsWhenTableFull(t *testing.T) {
	_, s := newSchedRig()
	noop := func(y Yielder, self *Task) { y.Yield() }
	for i := 0; i < MaxTasks; i++ {
		if _, ok := s.Create("t", noop); !ok {
			t.Fatalf("Create failed early at i=%d", i)
		}
	}
	if _, ok := s.Create("overflow", noop); ok {
		t.Error("Create succeeded on a full table, want false")
	}
}

func TestSchedulerRoundRobinFairness(t *testing.T) {
	table, s := newSchedRig()
	var order []int
	entry := func(y Yielder, self *Task) {
		order = append(order, self.ID())
		y.Yield()
		order = append(order, self.ID())
	}
	s.Create("a", entry)
	s.Create("b", entry)
	s.Create("c", entry)

	for i := 0; i < 6; i++ {
		if !s.Step() {
			t.Fatalf("Step() returned false early at round %d", i)
		}
	}
	if s.Step() {
		t.Error("Step() should be idle once all three tasks have exited")
	}

	want := []int{0, 1, 2, 0, 1, 2}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want length %d", order, len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %d, want %d (full order %v)", i, order[i], want[i], order)
		}
	}
	if len(table.Live()) != 0 {
		t.Errorf("expected all tasks dead after exit, got %d live", len(table.Live()))
	}
}

func TestSchedulerKillNonRunningTask(t *testing.T) {
	table, s := newSchedRig()
	id, _ := s.Create("victim", func(y Yielder, self *Task) {
		for {
			y.Yield()
		}
	})
	if !s.Kill(id) {
		t.Fatal("Kill on a Ready task should succeed")
	}
	if table.Get(id).State() != Dead {
		t.Error("killed task should be in Dead state")
	}
}

func TestSchedulerKillRunningTaskFails(t *testing.T) {
	_, s := newSchedRig()
	running := make(chan struct{})
	proceed := make(chan struct{})
	id, _ := s.Create("self-killer", func(y Yielder, self *Task) {
		close(running)
		<-proceed
		y.Yield()
	})

	done := make(chan bool, 1)
	go func() { done <- s.Step() }()

	<-running // task is now Running; Step is blocked waiting for it to yield
	if s.Kill(id) {
		t.Error("Kill on the currently RUNNING task should fail")
	}
	close(proceed)
	<-done
}

func TestSchedulerKillDeadOrUnknownFails(t *testing.T) {
	_, s := newSchedRig()
	if s.Kill(0) {
		t.Error("Kill on a never-created (Dead) slot should fail")
	}
	if s.Kill(-1) || s.Kill(MaxTasks) {
		t.Error("Kill on an out-of-range id should fail")
	}
}

func TestSchedulerKillClearsHeartbeatOverlayRow(t *testing.T) {
	mmio := NewSimMMIO(W, H)
	ports := NewSimPortIO()
	d := NewDisplay(mmio, ports)
	table := NewTaskTable()
	s := NewScheduler(table, d)

	id, _ := s.Create("heartbeat0", func(y Yielder, self *Task) {
		d.WriteOverlayLine(HB0RowBase, "HB0 #0 : 0", DefaultAttr)
		for {
			y.Yield()
		}
	})
	s.Step() // let it write its overlay line and yield
	if got := mmio.ReadCell(HB0RowBase, HBCol).Char; got != 'H' {
		t.Fatalf("overlay not written before kill, row starts with %q", got)
	}
	if !s.Kill(id) {
		t.Fatal("Kill failed")
	}
	if got := mmio.ReadCell(HB0RowBase, HBCol).Char; got != ' ' {
		t.Errorf("overlay row not cleared after kill, got %q", got)
	}
}

func TestSchedulerIdleWithNoTasks(t *testing.T) {
	_, s := newSchedRig()
	if s.Step() {
		t.Error("Step() on an empty table should return false")
	}
	if s.Current() != -1 {
		t.Errorf("Current() = %d, want -1 before anything runs", s.Current())
	}
}
