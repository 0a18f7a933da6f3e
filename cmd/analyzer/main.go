// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command analyzer wires together a line-oriented string-processing
// pipeline: a chain of stages, each either a built-in transform or a
// dynamically loaded plugin, fed from stdin and drained to completion on
// the literal sentinel line "<END>".
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"code.hybscloud.com/pipeline/internal/builtin"
	"code.hybscloud.com/pipeline/internal/config"
	"code.hybscloud.com/pipeline/internal/metrics"
	"code.hybscloud.com/pipeline/internal/pluginload"
	"code.hybscloud.com/pipeline/internal/stage"
)

// pipelineStage is the common shape of both a plugin-backed handle
// (internal/pluginload.Handle) and an in-process *stage.Stage. The driver
// treats every stage uniformly through this interface once construction
// has decided which one backs it.
type pipelineStage interface {
	PlaceWork(item string) error
	Attach(submit stage.Submit)
	WaitFinished()
	Fini()
}

var (
	pluginDir   string
	manifest    string
	metricsAddr string
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyzer <queue_capacity> <stage1> [stage2 ...]",
		Short: "Run a line-oriented string-processing pipeline over stdin",
		Args:  validateArgs,
		RunE:  run,
	}
	cmd.Flags().StringVar(&pluginDir, "plugin-dir", "/output", "directory to search for compiled stage plugins (<dir>/<name>.so)")
	cmd.Flags().StringVar(&manifest, "manifest", "", "path to a TOML pipeline manifest; overrides positional stage args")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on (disabled if empty)")
	return cmd
}

func validateArgs(cmd *cobra.Command, args []string) error {
	if manifest != "" {
		return nil
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: analyzer <queue_capacity> <stage1> [stage2 ...]")
	}
	if _, err := strconv.Atoi(args[0]); err != nil {
		return fmt.Errorf("<queue_capacity> must be a valid integer: %w", err)
	}
	return nil
}

type stageSpec struct {
	name     string
	capacity int
}

func resolveStages(args []string) ([]stageSpec, error) {
	if manifest != "" {
		m, err := config.Load(manifest)
		if err != nil {
			return nil, err
		}
		specs := make([]stageSpec, len(m.Stages))
		for i, s := range m.Stages {
			specs[i] = stageSpec{name: s.Name, capacity: s.Capacity}
			if s.Path != "" {
				specs[i].name = s.Path
			}
		}
		return specs, nil
	}

	capacity, err := strconv.Atoi(args[0])
	if err != nil || capacity <= 0 {
		return nil, fmt.Errorf("<queue_capacity> must be a positive integer")
	}
	specs := make([]stageSpec, len(args)-1)
	for i, name := range args[1:] {
		specs[i] = stageSpec{name: name, capacity: capacity}
	}
	return specs, nil
}

func run(cmd *cobra.Command, args []string) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	specs, err := resolveStages(args)
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		return errors.New("analyzer: needs at least one stage to start pipeline")
	}

	rec := metrics.NewNoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if metricsAddr != "" {
		rec = metrics.New()
		go func() {
			if err := rec.Serve(ctx, metricsAddr); err != nil {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	builtins := builtin.Registry(log)

	stages := make([]pipelineStage, len(specs))
	for i, spec := range specs {
		s, err := loadStage(spec, log, rec, builtins)
		if err != nil {
			for j := 0; j < i; j++ {
				_ = stages[j].PlaceWork(stage.Sentinel)
				stages[j].Fini()
			}
			return fmt.Errorf("analyzer: loading stage %q: %w", spec.name, err)
		}
		stages[i] = s
		log.Info().Str("stage", spec.name).Msg("loaded plugin")
	}

	for i := 0; i < len(stages)-1; i++ {
		next := stages[i+1]
		stages[i].Attach(next.PlaceWork)
	}

	if err := feedStdin(stages[0], log); err != nil {
		return fmt.Errorf("analyzer: reading stdin: %w", err)
	}

	for _, s := range stages {
		s.WaitFinished()
	}
	for _, s := range stages {
		s.Fini()
	}

	return nil
}

func loadStage(spec stageSpec, log zerolog.Logger, rec *metrics.Recorder, builtins map[string]stage.Transform) (pipelineStage, error) {
	if h, err := pluginload.Load(pluginDir, spec.name, spec.capacity); err == nil {
		return h, nil
	}

	transform, ok := builtins[spec.name]
	if !ok {
		return nil, fmt.Errorf("no plugin or built-in transform named %q", spec.name)
	}

	return stage.Init(stage.Config{
		Name:      spec.name,
		Capacity:  spec.capacity,
		Transform: transform,
		Logger:    log,
		Metrics:   rec,
	})
}

// feedStdin reads stdin line by line, stripping the trailing newline, and
// forwards each line to the first stage via PlaceWork. The literal line
// "<END>" is forwarded like any other item and also terminates the loop.
func feedStdin(first pipelineStage, log zerolog.Logger) error {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if err := first.PlaceWork(line); err != nil {
			log.Error().Err(err).Msg("failed to place work on stage 0")
		}
		if line == stage.Sentinel {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	return first.PlaceWork(stage.Sentinel)
}
