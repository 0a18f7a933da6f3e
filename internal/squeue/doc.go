// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package squeue provides a bounded, blocking, single-producer/
// single-consumer FIFO queue of strings.
//
// Unlike a lock-free queue, Put blocks while the queue is full and Get
// blocks while the queue is empty — the caller never has to poll or
// retry. A queue also has an explicit "finished" state: once
// SignalFinished is called, every subsequent Put fails immediately with
// ErrClosed, while Get keeps draining whatever is already buffered and
// only then starts returning end-of-stream.
//
// # Quick Start
//
//	q, err := squeue.New(16)
//	if err != nil {
//	    return err
//	}
//
//	go func() { // producer
//	    for _, line := range lines {
//	        if err := q.Put(line); err != nil {
//	            break // queue closed under us
//	        }
//	    }
//	    q.SignalFinished()
//	}()
//
//	for { // consumer
//	    item, ok := q.Get()
//	    if !ok {
//	        break // queue closed and drained
//	    }
//	    process(item)
//	}
//
// # Pipeline Stage Usage
//
// This is the queue a pipeline stage owns as its inbound buffer: the
// upstream stage (or the stdin reader, for stage zero) is the sole
// producer, and the stage's own worker goroutine is the sole consumer.
// Every queue in this system is used exactly this way — single producer,
// single consumer — which is what lets Put/Get stay simple (one lock, two
// wait conditions) instead of needing fairness guarantees across multiple
// producers or consumers.
package squeue
