// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config loads a declarative pipeline manifest: an ordered list of
// stage descriptors (name, optional plugin path, queue capacity) read from
// a TOML file via the --manifest flag. It supplements the purely positional
// CLI form, which cannot express per-stage queue capacities or plugin
// paths.
package config
