// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package squeue_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/pipeline/internal/squeue"
)

// =============================================================================
// Construction
// =============================================================================

func TestNewRejectsNonPositiveCapacity(t *testing.T) {
	if _, err := squeue.New(0); err != squeue.ErrInvalidCapacity {
		t.Fatalf("New(0): got %v, want ErrInvalidCapacity", err)
	}
	if _, err := squeue.New(-1); err != squeue.ErrInvalidCapacity {
		t.Fatalf("New(-1): got %v, want ErrInvalidCapacity", err)
	}
}

// =============================================================================
// Basic FIFO behaviour
// =============================================================================

func TestPutGetFIFOOrder(t *testing.T) {
	q, err := squeue.New(4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}

	for i := 0; i < 4; i++ {
		if err := q.Put(fmt.Sprintf("item-%d", i)); err != nil {
			t.Fatalf("Put(%d): %v", i, err)
		}
	}

	for i := 0; i < 4; i++ {
		v, ok := q.Get()
		if !ok {
			t.Fatalf("Get(%d): ok=false, want true", i)
		}
		want := fmt.Sprintf("item-%d", i)
		if v != want {
			t.Fatalf("Get(%d): got %q, want %q", i, v, want)
		}
	}
}

func TestEmptyLineIsAValidItem(t *testing.T) {
	q, _ := squeue.New(1)
	if err := q.Put(""); err != nil {
		t.Fatalf("Put(\"\"): %v", err)
	}
	v, ok := q.Get()
	if !ok || v != "" {
		t.Fatalf("Get: got (%q, %v), want (\"\", true)", v, ok)
	}
}

// =============================================================================
// Blocking semantics
// =============================================================================

// TestPutBlocksWhenFull checks that Put blocks on a full queue until a Get
// makes room.
func TestPutBlocksWhenFull(t *testing.T) {
	q, _ := squeue.New(1)
	if err := q.Put("first"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	putReturned := make(chan error, 1)
	go func() {
		putReturned <- q.Put("second")
	}()

	select {
	case <-putReturned:
		t.Fatal("Put on a full queue returned before room was made")
	case <-time.After(50 * time.Millisecond):
	}

	v, ok := q.Get()
	if !ok || v != "first" {
		t.Fatalf("Get: got (%q, %v), want (\"first\", true)", v, ok)
	}

	select {
	case err := <-putReturned:
		if err != nil {
			t.Fatalf("blocked Put: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("blocked Put did not unblock after Get")
	}
}

// TestGetBlocksWhenEmpty checks that Get blocks on an empty queue until a
// Put supplies an item.
func TestGetBlocksWhenEmpty(t *testing.T) {
	q, _ := squeue.New(1)

	type result struct {
		v  string
		ok bool
	}
	got := make(chan result, 1)
	go func() {
		v, ok := q.Get()
		got <- result{v, ok}
	}()

	select {
	case <-got:
		t.Fatal("Get on an empty queue returned before any Put")
	case <-time.After(50 * time.Millisecond):
	}

	if err := q.Put("hello"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	select {
	case r := <-got:
		if !r.ok || r.v != "hello" {
			t.Fatalf("blocked Get: got (%q, %v), want (\"hello\", true)", r.v, r.ok)
		}
	case <-time.After(time.Second):
		t.Fatal("blocked Get did not unblock after Put")
	}
}

// =============================================================================
// Finished / closed semantics
// =============================================================================

func TestPutAfterFinishReturnsErrClosed(t *testing.T) {
	q, _ := squeue.New(2)
	_ = q.Put("buffered")
	q.SignalFinished()

	if err := q.Put("too-late"); err != squeue.ErrClosed {
		t.Fatalf("Put after finish: got %v, want ErrClosed", err)
	}

	// Existing buffered items still drain normally.
	v, ok := q.Get()
	if !ok || v != "buffered" {
		t.Fatalf("Get after finish: got (%q, %v), want (\"buffered\", true)", v, ok)
	}

	// Queue now closed and empty: Get returns end-of-stream, repeatedly.
	if _, ok := q.Get(); ok {
		t.Fatal("Get on closed+drained queue: ok=true, want false")
	}
	if _, ok := q.Get(); ok {
		t.Fatal("second Get on closed+drained queue: ok=true, want false")
	}
}

func TestSignalFinishedWakesBlockedGet(t *testing.T) {
	q, _ := squeue.New(1)

	done := make(chan bool, 1)
	go func() {
		_, ok := q.Get()
		done <- ok
	}()

	time.Sleep(20 * time.Millisecond)
	q.SignalFinished()

	select {
	case ok := <-done:
		if ok {
			t.Fatal("Get woken by SignalFinished returned ok=true, want false")
		}
	case <-time.After(time.Second):
		t.Fatal("blocked Get was not woken by SignalFinished")
	}
}

func TestSignalFinishedIsIdempotent(t *testing.T) {
	q, _ := squeue.New(1)
	q.SignalFinished()
	q.SignalFinished()
	q.SignalFinished()

	if err := q.Put("x"); err != squeue.ErrClosed {
		t.Fatalf("Put after repeated SignalFinished: got %v, want ErrClosed", err)
	}
}

func TestWaitFinishedLateJoinReturnsPromptly(t *testing.T) {
	q, _ := squeue.New(1)
	q.SignalFinished()
	time.Sleep(100 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		q.WaitFinished()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitFinished did not return promptly for a late caller")
	}
}

// =============================================================================
// Close
// =============================================================================

func TestCloseIsIdempotent(t *testing.T) {
	q, _ := squeue.New(2)
	_ = q.Put("buffered")
	q.SignalFinished()
	q.WaitFinished()

	q.Close()
	q.Close()
	q.Close()
}

func TestCloseMarksQueueDone(t *testing.T) {
	q, _ := squeue.New(2)
	q.Close()

	if err := q.Put("too-late"); err != squeue.ErrClosed {
		t.Fatalf("Put after Close: got %v, want ErrClosed", err)
	}
	if _, ok := q.Get(); ok {
		t.Fatal("Get after Close: ok=true, want false")
	}
}

// =============================================================================
// Capacity-1 stress (spec scenario: 1000 lines through a capacity-1 queue)
// =============================================================================

func TestCapacityOneStress(t *testing.T) {
	q, _ := squeue.New(1)
	const n = 1000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			if err := q.Put(fmt.Sprintf("%d", i)); err != nil {
				t.Errorf("Put(%d): %v", i, err)
				return
			}
		}
		q.SignalFinished()
	}()

	for i := 0; i < n; i++ {
		v, ok := q.Get()
		if !ok {
			t.Fatalf("Get(%d): ok=false, want true", i)
		}
		if want := fmt.Sprintf("%d", i); v != want {
			t.Fatalf("Get(%d): got %q, want %q", i, v, want)
		}
	}
	if _, ok := q.Get(); ok {
		t.Fatal("Get after draining 1000 items: ok=true, want false")
	}

	wg.Wait()
}

// =============================================================================
// Invariant: 0 <= count <= capacity across interleavings
// =============================================================================

func TestCountNeverExceedsCapacity(t *testing.T) {
	const capacity = 8
	q, _ := squeue.New(capacity)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			_ = q.Put(fmt.Sprintf("%d", i))
			if n := q.Len(); n < 0 || n > capacity {
				t.Errorf("Len after Put: got %d, want 0 <= n <= %d", n, capacity)
			}
		}
		q.SignalFinished()
	}()
	go func() {
		defer wg.Done()
		for {
			if _, ok := q.Get(); !ok {
				return
			}
			if n := q.Len(); n < 0 || n > capacity {
				t.Errorf("Len after Get: got %d, want 0 <= n <= %d", n, capacity)
			}
		}
	}()
	wg.Wait()
}
