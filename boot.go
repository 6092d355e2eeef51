package kernel

// Boot is the kmain entry point (spec §6): clear the text area, show the
// banner, place the hardware cursor, reset the task table, and create the
// shell and the two stock heartbeat tasks. The caller is responsible for
// calling (*Scheduler).Run afterward — Boot only prepares the table, it
// never dispatches.
func Boot(d *Display, ports PortIO, kb *Keyboard, banner string) (*TaskTable, *Scheduler) {
	d.ClearTextArea()
	d.CursorShow()
	if banner != "" {
		d.PutString(banner + "\n")
	}

	table := NewTaskTable()
	sched := NewScheduler(table, d)
	deps := ShellDeps{Display: d, Table: table, Sched: sched, Ports: ports}

	sched.Create("shell", NewShellEntry(deps, kb))
	sched.Create("heartbeat0", NewHeartbeatEntry(d, table, hb0N, HB0RowBase))
	sched.Create("heartbeat1", NewHeartbeatEntry(d, table, hb1N, HB1RowBase))

	return table, sched
}
