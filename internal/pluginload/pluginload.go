// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pluginload

import (
	"fmt"
	"path/filepath"
	"plugin"

	"code.hybscloud.com/pipeline/internal/stage"
)

// Handle is a loaded stage plugin after Load has called its Init: it
// exposes the remaining operations PlaceWork/Attach/WaitFinished/Fini.
type Handle interface {
	PlaceWork(item string) error
	Attach(submit stage.Submit)
	WaitFinished()
	Fini()
}

// Load resolves name to "<dir>/<name>.so", opens it, looks up the five
// required symbols, calls Init(capacity), and returns a Handle wrapping
// the plugin's exported operations. Any failure (missing file, missing
// symbol, wrong symbol signature, Init error) is returned wrapped with the
// plugin path or name; no partial state is left registered.
func Load(dir, name string, capacity int) (Handle, error) {
	path := filepath.Join(dir, name+".so")

	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pluginload: open %s: %w", path, err)
	}

	initSym, err := p.Lookup("Init")
	if err != nil {
		return nil, fmt.Errorf("pluginload: %s: missing Init: %w", name, err)
	}
	initFn, ok := initSym.(func(int) error)
	if !ok {
		return nil, fmt.Errorf("pluginload: %s: Init has the wrong signature", name)
	}

	placeWorkSym, err := p.Lookup("PlaceWork")
	if err != nil {
		return nil, fmt.Errorf("pluginload: %s: missing PlaceWork: %w", name, err)
	}
	placeWorkFn, ok := placeWorkSym.(func(string) error)
	if !ok {
		return nil, fmt.Errorf("pluginload: %s: PlaceWork has the wrong signature", name)
	}

	attachSym, err := p.Lookup("Attach")
	if err != nil {
		return nil, fmt.Errorf("pluginload: %s: missing Attach: %w", name, err)
	}
	attachFn, ok := attachSym.(func(stage.Submit))
	if !ok {
		return nil, fmt.Errorf("pluginload: %s: Attach has the wrong signature", name)
	}

	waitFinishedSym, err := p.Lookup("WaitFinished")
	if err != nil {
		return nil, fmt.Errorf("pluginload: %s: missing WaitFinished: %w", name, err)
	}
	waitFinishedFn, ok := waitFinishedSym.(func())
	if !ok {
		return nil, fmt.Errorf("pluginload: %s: WaitFinished has the wrong signature", name)
	}

	finiSym, err := p.Lookup("Fini")
	if err != nil {
		return nil, fmt.Errorf("pluginload: %s: missing Fini: %w", name, err)
	}
	finiFn, ok := finiSym.(func())
	if !ok {
		return nil, fmt.Errorf("pluginload: %s: Fini has the wrong signature", name)
	}

	if err := initFn(capacity); err != nil {
		return nil, fmt.Errorf("pluginload: %s: Init(%d): %w", name, capacity, err)
	}

	return &handle{
		placeWork:    placeWorkFn,
		attach:       attachFn,
		waitFinished: waitFinishedFn,
		fini:         finiFn,
	}, nil
}

type handle struct {
	placeWork    func(string) error
	attach       func(stage.Submit)
	waitFinished func()
	fini         func()
}

func (h *handle) PlaceWork(item string) error { return h.placeWork(item) }
func (h *handle) Attach(submit stage.Submit)  { h.attach(submit) }
func (h *handle) WaitFinished()               { h.waitFinished() }
func (h *handle) Fini()                       { h.fini() }
