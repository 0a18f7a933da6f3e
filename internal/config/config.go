// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// StageSpec describes one stage entry in a pipeline manifest.
type StageSpec struct {
	// Name identifies the stage and, absent Path, selects a built-in
	// transform from internal/builtin's registry.
	Name string `toml:"name"`
	// Path, if set, points at a ".so" built with `go build -buildmode=plugin`
	// to load instead of a built-in transform.
	Path string `toml:"path"`
	// Capacity is the stage's inbound queue size. Defaults to
	// DefaultCapacity if zero or absent.
	Capacity int `toml:"capacity"`
}

// Manifest is the top-level shape of a pipeline TOML file: an ordered list
// of stages, first to last.
type Manifest struct {
	Stages []StageSpec `toml:"stage"`
}

// DefaultCapacity is used for any StageSpec that omits capacity.
const DefaultCapacity = 16

// ErrNoStages is returned by Load when the manifest defines zero stages.
var ErrNoStages = errors.New("config: manifest defines no stages")

// Load reads and parses a pipeline manifest from path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading manifest: %w", err)
	}

	var m Manifest
	if _, err := toml.Decode(string(data), &m); err != nil {
		return nil, fmt.Errorf("config: parsing manifest %s: %w", path, err)
	}
	if len(m.Stages) == 0 {
		return nil, ErrNoStages
	}

	for i := range m.Stages {
		if m.Stages[i].Name == "" {
			return nil, fmt.Errorf("config: stage %d: empty name", i)
		}
		if m.Stages[i].Capacity <= 0 {
			m.Stages[i].Capacity = DefaultCapacity
		}
	}

	return &m, nil
}
