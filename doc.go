// Package kernel simulates the core of a small freestanding, single-address-space,
// cooperatively-scheduled text-mode kernel.
//
// Nothing here touches real hardware. A [Display] writes cells through an
// [MMIO] boundary, a [Keyboard] reads scancodes through a [PortIO] boundary,
// and tasks run as goroutines that hand control to each other one at a time
// through [Scheduler] — the same way the real kernel this package models
// would context-switch over prepared stacks, except the "stack pointer" is a
// blocked goroutine instead of a saved %esp. The package boundary is exactly
// where the original spec draws it: everything inside is deterministic and
// host-independent; everything outside (a real terminal, a real PS/2
// controller) is supplied by a caller, see package host.
//
// # Quick start
//
//	mmio := kernel.NewSimMMIO(kernel.W, kernel.H)
//	ports := kernel.NewSimPortIO()
//	d := kernel.NewDisplay(mmio, ports)
//	kb := kernel.NewKeyboard(ports)
//	_, sched := kernel.Boot(d, ports, kb, "miniker ready.")
//	sched.Run()
//
// # Architecture
//
//   - [Cell] / [Display]: the text-mode cell grid and its partitioned regions
//   - [Keyboard]: non-blocking scancode-to-event decoding
//   - [LineEditor]: cursor-aware in-place editing over the display
//   - [TaskTable] / [Scheduler]: the fixed task pool and cooperative scheduler
//   - [Boot]: the kmain-equivalent that wires the shell and stock heartbeats
//     into a fresh task table
package kernel
