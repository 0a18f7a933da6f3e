// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels the fate of one item processed by a stage.
type Outcome string

const (
	OutcomeForwarded        Outcome = "forwarded"
	OutcomeDroppedTransform Outcome = "dropped_transform"
	OutcomeDroppedSubmit    Outcome = "dropped_submit"
	OutcomeSentinel         Outcome = "sentinel"
)

// Recorder records pipeline activity. A zero-value Recorder (obtained via
// NewNoop) is safe to use and records nothing; it lets callers that don't
// enable --metrics-addr skip the Prometheus plumbing entirely.
type Recorder struct {
	registry   *prometheus.Registry
	items      *prometheus.CounterVec
	queueDepth *prometheus.GaugeVec
	enabled    bool
}

// New creates a Recorder backed by a fresh Prometheus registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()

	items := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pipeline",
		Name:      "items_total",
		Help:      "Items processed by a stage, labeled by stage and outcome.",
	}, []string{"stage", "outcome"})

	queueDepth := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "pipeline",
		Name:      "queue_depth",
		Help:      "Current number of buffered items in a stage's inbound queue.",
	}, []string{"stage"})

	reg.MustRegister(items, queueDepth)

	return &Recorder{registry: reg, items: items, queueDepth: queueDepth, enabled: true}
}

// NewNoop returns a Recorder that discards everything it's given.
func NewNoop() *Recorder {
	return &Recorder{}
}

// Observe records one item's outcome for a stage.
func (r *Recorder) Observe(stageName string, outcome Outcome) {
	if !r.enabled {
		return
	}
	r.items.WithLabelValues(stageName, string(outcome)).Inc()
}

// SetQueueDepth records the current buffered-item count for a stage.
func (r *Recorder) SetQueueDepth(stageName string, depth int) {
	if !r.enabled {
		return
	}
	r.queueDepth.WithLabelValues(stageName).Set(float64(depth))
}

// Serve starts an HTTP server exposing /metrics on addr and blocks until
// ctx is cancelled, then shuts the server down. For a noop Recorder it
// serves nothing and just blocks until ctx is cancelled.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	if !r.enabled {
		<-ctx.Done()
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
