// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package squeue

import (
	"sync"

	"code.hybscloud.com/pipeline/internal/monitor"
)

// Queue is a bounded, blocking, single-producer/single-consumer FIFO of
// strings. The zero value is not usable; construct one with New.
type Queue struct {
	mu       sync.Mutex
	items    []string
	head     int
	tail     int
	count    int
	notEmpty *monitor.Monitor
	notFull  *monitor.Monitor
	finished *monitor.Monitor
	done     bool // set for good by SignalFinished or Close, read/written under mu
	closed   bool
}

// New allocates a queue with the given capacity. Capacity must be
// positive.
func New(capacity int) (*Queue, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &Queue{
		items:    make([]string, capacity),
		notEmpty: monitor.New(),
		notFull:  monitor.New(),
		finished: monitor.New(),
	}, nil
}

// Cap returns the queue's fixed capacity.
func (q *Queue) Cap() int {
	return len(q.items)
}

// Len returns the current number of buffered items. It is a snapshot: by
// the time the caller observes it, concurrent Put/Get calls may have
// already changed it. Intended for diagnostics/metrics, not control flow.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Put appends s to the queue, copying it in. It blocks while the queue is
// full. If the queue has been closed via SignalFinished (either before
// the call, or while it was blocked waiting for room), Put returns
// ErrClosed without adding the item.
func (q *Queue) Put(s string) error {
	q.mu.Lock()
	for q.count == len(q.items) && !q.done {
		q.notFull.Reset()
		q.mu.Unlock()
		q.notFull.Wait()
		q.mu.Lock()
	}
	if q.done {
		q.mu.Unlock()
		return ErrClosed
	}

	q.items[q.tail] = s
	q.tail = (q.tail + 1) % len(q.items)
	q.count++
	q.mu.Unlock()

	q.notEmpty.Signal()
	return nil
}

// Get removes and returns the oldest item in the queue, blocking while the
// queue is empty. Once the queue is closed and drained, Get returns
// ("", false) — idempotently, for every call thereafter.
func (q *Queue) Get() (string, bool) {
	q.mu.Lock()
	for q.count == 0 && !q.done {
		q.notEmpty.Reset()
		q.mu.Unlock()
		q.notEmpty.Wait()
		q.mu.Lock()
	}
	if q.count == 0 && q.done {
		q.mu.Unlock()
		return "", false
	}

	item := q.items[q.head]
	q.items[q.head] = ""
	q.head = (q.head + 1) % len(q.items)
	q.count--
	q.mu.Unlock()

	q.notFull.Signal()
	return item, true
}

// SignalFinished marks the queue as closed: every future Put fails with
// ErrClosed, and Get will return end-of-stream once remaining items are
// drained. It also wakes any goroutine currently blocked in Get on an
// empty queue, or in Put on a full one, so it can observe the closure.
// Idempotent.
func (q *Queue) SignalFinished() {
	q.mu.Lock()
	q.done = true
	q.mu.Unlock()

	q.finished.Signal()
	q.notEmpty.Signal()
	q.notFull.Signal()
}

// WaitFinished blocks until SignalFinished has been called. As with the
// underlying monitor, it is meant to be awaited by a single caller (the
// pipeline driver, once per stage) — concurrent callers would race over
// who observes and clears the signal.
func (q *Queue) WaitFinished() {
	q.finished.Wait()
}

// Close releases the queue. Callers must guarantee no goroutine is still
// blocked in Put or Get when Close runs (the same precondition SignalFinished
// plus a drained WaitFinished is meant to establish). It marks the queue
// closed so any future Put fails with ErrClosed and any future Get returns
// end-of-stream, drops the buffered
// strings so they can be garbage collected, and closes the three monitors.
// Idempotent: a second Close is a no-op.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.done = true
	for i := range q.items {
		q.items[i] = ""
	}
	q.mu.Unlock()

	q.notEmpty.Close()
	q.notFull.Close()
	q.finished.Close()
}
