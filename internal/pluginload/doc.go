// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pluginload resolves a stage name to a dynamically loaded plugin
// exposing the five-operation stage ABI (spec.md §6): Init, PlaceWork,
// Attach, WaitFinished, Fini. It is the direct Go analogue of the
// original's dlopen/dlsym-based loader (original_source/main.c): where the
// original resolved "<name>" to "/output/<name>.so" and pulled symbols via
// dlsym, this package resolves it to "<dir>/<name>.so" and pulls them via
// the standard library's plugin.Open/plugin.Lookup.
//
// Path resolution (the plugin directory, the ".so" extension) is an
// external-collaborator concern, not part of the pipeline core — exactly
// as spec.md §6 describes it.
package pluginload
