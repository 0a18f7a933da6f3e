// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package metrics exposes Prometheus counters and gauges for pipeline
// activity: items forwarded/dropped per stage, and a per-stage queue-depth
// gauge. It supplements the core spec (which mandates no observability
// surface) without changing any scheduling, persistence, or backpressure
// behavior — metrics recording never blocks or influences control flow.
package metrics
