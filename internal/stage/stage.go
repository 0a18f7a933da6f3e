// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stage

import (
	"errors"
	"fmt"
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"github.com/rs/zerolog"

	"code.hybscloud.com/pipeline/internal/metrics"
	"code.hybscloud.com/pipeline/internal/squeue"
)

// Sentinel is the literal value that propagates stage-to-stage to trigger
// orderly pipeline shutdown.
const Sentinel = "<END>"

// Transform converts one item into its replacement. A non-nil error means
// the item is dropped (logged, not forwarded); the stage keeps running.
type Transform func(string) (string, error)

// Submit matches PlaceWork's contract; it is the shape a Stage exposes to
// whichever component feeds it (the driver, or an upstream Stage).
type Submit func(string) error

// Config configures a new Stage.
type Config struct {
	// Name identifies the stage for diagnostics/logging only.
	Name string
	// Capacity is the inbound queue's fixed size; must be positive.
	Capacity int
	// Transform is applied to every non-sentinel item.
	Transform Transform
	// Logger receives per-stage log events. If the zero value, a
	// disabled logger is used (no output).
	Logger zerolog.Logger
	// Metrics records item outcomes and queue depth. If nil, a noop
	// recorder is used.
	Metrics *metrics.Recorder
}

var (
	// ErrNilTransform is returned by Init when Config.Transform is nil.
	ErrNilTransform = errors.New("stage: nil transform")
	// ErrEmptyName is returned by Init when Config.Name is empty.
	ErrEmptyName = errors.New("stage: empty name")
)

// Stage runs one pipeline transformation step: a worker goroutine that
// drains an inbound queue, applies Transform, and forwards results
// downstream. The zero value is not usable; construct one with Init.
type Stage struct {
	name       string
	queue      *squeue.Queue
	transform  Transform
	log        zerolog.Logger
	metrics    *metrics.Recorder
	downstream atomic.Pointer[Submit]

	initialised atomix.Bool
	finished    atomix.Bool

	initDone   chan struct{}
	terminated chan struct{}
}

// Init validates cfg, allocates the stage's inbound queue, and spawns its
// worker goroutine. It blocks until the worker has set its initialised
// flag, so the returned Stage is always immediately ready to accept work.
func Init(cfg Config) (*Stage, error) {
	if cfg.Transform == nil {
		return nil, ErrNilTransform
	}
	if cfg.Name == "" {
		return nil, ErrEmptyName
	}

	q, err := squeue.New(cfg.Capacity)
	if err != nil {
		return nil, fmt.Errorf("stage %q: %w", cfg.Name, err)
	}

	rec := cfg.Metrics
	if rec == nil {
		rec = metrics.NewNoop()
	}

	s := &Stage{
		name:       cfg.Name,
		queue:      q,
		transform:  cfg.Transform,
		log:        cfg.Logger.With().Str("stage", cfg.Name).Logger(),
		metrics:    rec,
		initDone:   make(chan struct{}),
		terminated: make(chan struct{}),
	}

	go s.run()
	<-s.initDone
	return s, nil
}

// Name returns the stage's diagnostic name.
func (s *Stage) Name() string {
	return s.name
}

// PlaceWork enqueues one item for this stage to process.
func (s *Stage) PlaceWork(item string) error {
	return s.queue.Put(item)
}

// Attach chains this stage's output to a downstream stage's PlaceWork. It
// must be called at most once per stage, before any data flows.
func (s *Stage) Attach(submit Submit) {
	s.downstream.Store(&submit)
}

// WaitFinished blocks until this stage's worker has processed the
// sentinel (or had it signalled via an upstream-finished queue).
func (s *Stage) WaitFinished() {
	s.queue.WaitFinished()
}

// Fini joins the worker (which must already be finishing or finished) and
// releases the stage's queue. Idempotent: the worker's termination signal
// is a closed channel, which every caller can receive from, and the
// queue's own Close is idempotent.
func (s *Stage) Fini() {
	<-s.terminated
	s.queue.Close()
}

// Initialised reports whether the worker has completed startup.
func (s *Stage) Initialised() bool {
	return s.initialised.LoadAcquire()
}

// Finished reports whether the worker has observed the sentinel or
// upstream closure.
func (s *Stage) Finished() bool {
	return s.finished.LoadAcquire()
}

func (s *Stage) submit() Submit {
	if p := s.downstream.Load(); p != nil {
		return *p
	}
	return nil
}

// run is the worker goroutine body: Spawned -> Running -> Draining ->
// Terminated.
func (s *Stage) run() {
	defer close(s.terminated)

	s.initialised.StoreRelease(true)
	close(s.initDone)

	for {
		item, ok := s.queue.Get()
		if !ok {
			// Upstream queue closed and drained with no sentinel seen
			// (e.g. this stage's own queue was closed directly).
			break
		}
		s.metrics.SetQueueDepth(s.name, s.queue.Len())

		if item == Sentinel {
			if submit := s.submit(); submit != nil {
				if err := submit(Sentinel); err != nil {
					s.log.Error().Err(err).Msg("failed to forward sentinel downstream")
				}
			}
			s.metrics.Observe(s.name, metrics.OutcomeSentinel)
			s.queue.SignalFinished()
			break
		}

		out, err := s.transform(item)
		if err != nil {
			s.log.Error().Err(err).Str("item", item).Msg("transform failed, dropping item")
			s.metrics.Observe(s.name, metrics.OutcomeDroppedTransform)
			continue
		}

		if submit := s.submit(); submit != nil {
			if err := submit(out); err != nil {
				s.log.Error().Err(err).Str("item", out).Msg("downstream submit failed, dropping item")
				s.metrics.Observe(s.name, metrics.OutcomeDroppedSubmit)
				continue
			}
		}
		s.metrics.Observe(s.name, metrics.OutcomeForwarded)
	}

	s.finished.StoreRelease(true)
}
