// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package builtin

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"code.hybscloud.com/pipeline/internal/stage"
)

// typewriterDelay matches the original's SECOND = 100000us per character.
const typewriterDelay = 100 * time.Millisecond

// Upper uppercases ASCII letters a-z, leaving everything else untouched.
// Ported from plugins/uppercaser.c.
func Upper(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			r = r - 'a' + 'A'
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

// Reverse reverses the input by rune. Ported from plugins/flipper.c.
func Reverse(s string) (string, error) {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r), nil
}

// Expand inserts a single space between every pair of adjacent runes,
// without a leading or trailing space. Ported from plugins/expander.c.
func Expand(s string) (string, error) {
	r := []rune(s)
	if len(r) <= 1 {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s)*2 - 1)
	for i, c := range r {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(c)
	}
	return b.String(), nil
}

// Rotate moves the last rune to the front, shifting everything else one
// position right. A one-rune (or empty) input is returned unchanged.
// Ported from plugins/rotator.c.
func Rotate(s string) (string, error) {
	r := []rune(s)
	if len(r) <= 1 {
		return s, nil
	}
	last := r[len(r)-1]
	copy(r[1:], r[:len(r)-1])
	r[0] = last
	return string(r), nil
}

// NewLogger returns a pass-through transform that logs every item it sees
// at info level (mirroring plugins/logger.c's "[logger] %s\n" to stdout)
// and forwards it unchanged.
func NewLogger(log zerolog.Logger) stage.Transform {
	return func(s string) (string, error) {
		log.Info().Str("item", s).Msg("logger")
		return s, nil
	}
}

// NewTypewriter returns a pass-through transform that echoes the input to
// stderr one rune at a time with a short delay between runes (ported from
// plugins/typewriter.c's usleep-driven character echo), then forwards the
// input unchanged.
func NewTypewriter() stage.Transform {
	return func(s string) (string, error) {
		fmt.Fprint(os.Stderr, "[typewriter] ")
		for _, r := range s {
			time.Sleep(typewriterDelay)
			fmt.Fprintf(os.Stderr, "%c", r)
		}
		fmt.Fprintln(os.Stderr)
		return s, nil
	}
}

// Registry returns a map from stage name to its built-in Transform.
// cmd/analyzer consults this when internal/pluginload cannot resolve a
// stage name to a loadable plugin.
func Registry(log zerolog.Logger) map[string]stage.Transform {
	return map[string]stage.Transform{
		"upper":      Upper,
		"uppercaser": Upper,
		"reverse":    Reverse,
		"flipper":    Reverse,
		"expand":     Expand,
		"expander":   Expand,
		"rotate":     Rotate,
		"rotator":    Rotate,
		"logger":     NewLogger(log),
		"typewriter": NewTypewriter(),
	}
}
