// This file is part of picoforth, derived from the ngaro virtual machine.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import (
	"io"

	"github.com/pkg/errors"
)

// stickyWriter wraps an io.Writer and remembers the first write error it
// sees, returning that same error on every subsequent call instead of
// retrying a writer already known to be broken (e.g. a closed stdout). It
// backs the default CharOutput/LineOutput hooks (see New in instance.go).
type stickyWriter struct {
	w   io.Writer
	err error
}

func newStickyWriter(w io.Writer) *stickyWriter { return &stickyWriter{w: w} }

func (w *stickyWriter) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.err = errors.Wrap(err, "write failed")
	}
	return n, w.err
}

// EmitChar writes a single character through the configured CharOutput hook.
// It is the only way EMIT, the runtime half of ." and interpret-mode ."
// itself reach the outside world (spec §6).
func (i *Instance) EmitChar(r rune) error { return i.charOut(r) }

// EmitLine writes a line terminator through the configured LineOutput hook,
// used by CR.
func (i *Instance) EmitLine() error { return i.lineOut() }

// EmitString writes s one character at a time through EmitChar, used by the
// interpret-state runtime behavior of .".
func (i *Instance) EmitString(s string) error {
	for _, r := range s {
		if err := i.EmitChar(r); err != nil {
			return err
		}
	}
	return nil
}
