package kernel

import (
	"strings"
	"testing"
)

func overlayRowText(mmio *SimMMIO, row int) string {
	var b strings.Builder
	for col := HBCol; col < W; col++ {
		b.WriteByte(mmio.ReadCell(row, col).Char)
	}
	return strings.TrimRight(b.String(), " \x00")
}

func TestHeartbeatWritesOverlayLineOnFirstRun(t *testing.T) {
	mmio := NewSimMMIO(W, H)
	ports := NewSimPortIO()
	d := NewDisplay(mmio, ports)
	table := NewTaskTable()
	s := NewScheduler(table, d)

	id, _ := s.Create("heartbeat0", NewHeartbeatEntry(d, table, hb0N, HB0RowBase))
	s.Step()

	want := "HB0 #" + itoa(id) + " : 0"
	if got := overlayRowText(mmio, HB0RowBase); got != want {
		t.Errorf("overlay row = %q, want %q", got, want)
	}
}

func TestHeartbeatCounterAdvancesEachRound(t *testing.T) {
	mmio := NewSimMMIO(W, H)
	ports := NewSimPortIO()
	d := NewDisplay(mmio, ports)
	table := NewTaskTable()
	s := NewScheduler(table, d)

	id, _ := s.Create("heartbeat0", NewHeartbeatEntry(d, table, hb0N, HB0RowBase))
	s.Step()
	s.Step()
	s.Step()

	want := "HB0 #" + itoa(id) + " : 2"
	if got := overlayRowText(mmio, HB0RowBase); got != want {
		t.Errorf("overlay row after 3 rounds = %q, want %q", got, want)
	}
}

func TestHeartbeatCounterWrapsModTen(t *testing.T) {
	mmio := NewSimMMIO(W, H)
	ports := NewSimPortIO()
	d := NewDisplay(mmio, ports)
	table := NewTaskTable()
	s := NewScheduler(table, d)

	id, _ := s.Create("heartbeat0", NewHeartbeatEntry(d, table, hb0N, HB0RowBase))
	for i := 0; i < 11; i++ {
		s.Step()
	}
	want := "HB0 #" + itoa(id) + " : 0"
	if got := overlayRowText(mmio, HB0RowBase); got != want {
		t.Errorf("overlay row after 11 rounds = %q, want %q (counter should wrap mod 10)", got, want)
	}
}

func TestHeartbeatInstanceIndexSelectsRow(t *testing.T) {
	mmio := NewSimMMIO(W, H)
	ports := NewSimPortIO()
	d := NewDisplay(mmio, ports)
	table := NewTaskTable()
	s := NewScheduler(table, d)

	firstID, _ := s.Create("heartbeat0", NewHeartbeatEntry(d, table, hb0N, HB0RowBase))
	secondID, _ := s.Create("heartbeat0", NewHeartbeatEntry(d, table, hb0N, HB0RowBase))
	s.Step() // first's turn
	s.Step() // second's turn

	wantFirst := "HB0 #" + itoa(firstID) + " : 0"
	wantSecond := "HB0 #" + itoa(secondID) + " : 0"
	if got := overlayRowText(mmio, HB0RowBase+0); got != wantFirst {
		t.Errorf("row %d = %q, want %q", HB0RowBase, got, wantFirst)
	}
	if got := overlayRowText(mmio, HB0RowBase+1); got != wantSecond {
		t.Errorf("row %d = %q, want %q", HB0RowBase+1, got, wantSecond)
	}
}

func TestHeartbeatBeyondMaxLinesSkipsDraw(t *testing.T) {
	mmio := NewSimMMIO(W, H)
	ports := NewSimPortIO()
	d := NewDisplay(mmio, ports)
	table := NewTaskTable()
	s := NewScheduler(table, d)

	var ids []int
	for i := 0; i < HBMaxLines+1; i++ {
		id, ok := s.Create("heartbeat0", NewHeartbeatEntry(d, table, hb0N, HB0RowBase))
		if !ok {
			t.Fatalf("Create failed at i=%d", i)
		}
		ids = append(ids, id)
	}
	for i := 0; i < len(ids); i++ {
		s.Step()
	}

	// The (HBMaxLines+1)th instance has index HBMaxLines, out of range: the
	// HBMaxLines rows from HB0RowBase show the in-range instances, and row
	// HB0RowBase+HBMaxLines (unused here, no heartbeat1 runs) stays blank.
	for i := 0; i < HBMaxLines; i++ {
		row := HB0RowBase + i
		if overlayRowText(mmio, row) == "" {
			t.Errorf("row %d should have been written by instance %d", row, i)
		}
	}
	if got := overlayRowText(mmio, HB0RowBase+HBMaxLines); got != "" {
		t.Errorf("row %d = %q, want blank: the out-of-range instance should skip drawing", HB0RowBase+HBMaxLines, got)
	}
}

func TestHeartbeatNeverExitsOnItsOwn(t *testing.T) {
	mmio := NewSimMMIO(W, H)
	ports := NewSimPortIO()
	d := NewDisplay(mmio, ports)
	table := NewTaskTable()
	s := NewScheduler(table, d)

	id, _ := s.Create("heartbeat0", NewHeartbeatEntry(d, table, hb0N, HB0RowBase))
	for i := 0; i < 20; i++ {
		s.Step()
	}
	if table.Get(id).State() == Dead {
		t.Error("a heartbeat should never die except via explicit kill")
	}
}
