// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package monitor provides a manual-reset, level-triggered one-bit event.
//
// A Monitor is a boolean guarded by a mutex and a condition variable. It is
// "manual-reset" in the sense that Signal sets the bit and broadcasts to
// every current waiter, but the bit is only cleared by the code that
// consumes it (Wait clears it as soon as it observes the bit set and
// returns; Reset clears it without waking anyone). Since Wait's own clear
// happens under the same mutex a racing waiter needs to reacquire before
// it can also observe the bit, one Signal releases exactly one Wait call
// even when several goroutines are parked at once — the rest see the bit
// cleared again and go back to waiting. What Signal does guarantee is the
// sticky, late-arrival property the bounded queue in package squeue
// depends on: a Signal that happens before a matching Wait must still
// unblock that Wait, even though no goroutine was parked at the moment
// Signal ran.
//
// # Quick Start
//
//	m := monitor.New()
//
//	go func() {
//	    // ... do some work ...
//	    m.Signal()
//	}()
//
//	m.Wait() // blocks until Signal has run at least once since the last Wait/Reset
//
// Plain sync.Cond is not sufficient on its own: Cond.Signal/Broadcast are
// edge-triggered, so a signal that arrives before anyone calls Wait is lost.
// Monitor fixes this by keeping the "signaled" bit sticky until a waiter
// consumes it.
package monitor
