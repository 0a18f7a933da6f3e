// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package squeue

import "errors"

// ErrClosed indicates Put was called after SignalFinished. It is a
// terminal condition, not a retry signal: once a queue is finished, no
// later Put will ever succeed.
var ErrClosed = errors.New("squeue: put after finish")

// ErrInvalidCapacity indicates New was called with a non-positive capacity.
var ErrInvalidCapacity = errors.New("squeue: capacity must be positive")
