// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package monitor

import "sync"

// Monitor is a manual-reset, level-triggered one-bit event.
//
// The zero value is not usable; construct one with New. A Monitor is safe
// for concurrent use by multiple goroutines.
type Monitor struct {
	mu       sync.Mutex
	cond     *sync.Cond
	signaled bool
}

// New returns a Monitor, created unsignalled.
func New() *Monitor {
	m := &Monitor{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Signal atomically sets the signaled bit and broadcasts to every
// goroutine currently parked in Wait, plus releases any goroutine that has
// not yet called Wait (late arrivals see the bit set and return
// immediately). Wait clears the bit as soon as one waiter observes and
// consumes it, so a single Signal reliably releases exactly one Wait
// call: broadcast-woken goroutines that lose the race to reacquire the
// mutex see the bit cleared again and re-park. Releasing N waiters
// requires N Signal calls (or callers coordinating their own fan-out).
func (m *Monitor) Signal() {
	m.mu.Lock()
	m.signaled = true
	m.mu.Unlock()
	m.cond.Broadcast()
}

// Reset atomically clears the signaled bit. No waiter is woken; any
// goroutine already blocked in Wait remains blocked.
func (m *Monitor) Reset() {
	m.mu.Lock()
	m.signaled = false
	m.mu.Unlock()
}

// Wait blocks until the signaled bit is observed set, then clears it and
// returns. Spurious wakeups are tolerated: the check is re-run under the
// lock in a loop, per standard condition-variable discipline. The reset is
// performed here, by the consumer of the signal, not by Signal itself —
// this is what gives Signal its broadcast-to-late-arrivals property.
func (m *Monitor) Wait() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for !m.signaled {
		m.cond.Wait()
	}
	m.signaled = false
}

// Close releases the Monitor. Callers must guarantee no goroutine is
// blocked in Wait when Close runs. Idempotent: calling it any number of
// times, signalled or not, never panics or blocks.
func (m *Monitor) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signaled = false
}
