// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package stage runs one pipeline transformation step: a worker goroutine
// that drains an inbound squeue.Queue, applies a caller-supplied
// transform, and forwards the result to an optional downstream Stage.
//
// A Stage's worker goroutine moves through four states: Spawned, Running,
// Draining, Terminated. It starts Running as soon as Init returns (Init
// blocks until the worker has set its initialised flag, so callers never
// race the worker's startup). It stays Running until it observes either
// the literal sentinel string "<END>" — at which point it forwards the
// sentinel downstream (if attached) and marks its own queue finished so
// WaitFinished unblocks the driver — or its queue reporting end-of-stream
// (already finished and drained), in which case nothing is forwarded. In
// both cases it then transitions to Draining, then Terminated.
//
// # Quick Start
//
//	upper, err := stage.Init(stage.Config{
//	    Name:      "upper",
//	    Capacity:  16,
//	    Transform: func(s string) (string, error) { return strings.ToUpper(s), nil },
//	})
//	// ... construct the next stage, then chain them ...
//	upper.Attach(next.PlaceWork)
//
//	_ = upper.PlaceWork("hello")
//	_ = upper.PlaceWork("<END>")
//
//	upper.WaitFinished()
//	upper.Fini()
package stage
