// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package builtin provides in-process stage.Transform implementations for
// the pipeline's original set of stages, so the pipeline is runnable
// end-to-end without any pre-built plugin artifacts. cmd/analyzer falls
// back to this registry by stage name whenever internal/pluginload fails
// to resolve a loadable plugin for that name.
//
// Every transform here is ported from one file in original_source/plugins:
// Upper from uppercaser.c, Reverse from flipper.c, Expand from expander.c,
// Rotate from rotator.c, NewLogger from logger.c, NewTypewriter from
// typewriter.c.
package builtin
