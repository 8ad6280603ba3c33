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

package forth

import "github.com/db47h/picoforth/vm"

// Interpreter is the outer interpreter: it drives a vm.Instance from lines
// of text, classifying each token as a dictionary word, a number or an
// error, and dispatching it to execution or compilation accordingly.
type Interpreter struct {
	VM  *vm.Instance
	tok *Tokenizer

	// OnError, if set, is called synchronously for every error encountered
	// while interpreting a line, including ones that do not stop the rest
	// of the line from running. This is how a host reproduces the
	// print-and-continue behavior of the reference REPL without the forth
	// package itself doing any printing: it only ever calls this hook.
	OnError func(err error)
}

// New builds an Interpreter around a freshly constructed vm.Instance,
// registering the control-flow compiler's immediate words alongside the
// core primitive set.
func New(opts ...vm.Option) *Interpreter {
	it := &Interpreter{VM: vm.New(opts...)}
	it.registerImmediates()
	return it
}

// Interpret processes one line of input: tokenizes it and dispatches each
// token in turn. Unlike a single bad token aborting the whole session, in
// interpret state only an unknown word ends the line early; stack errors and
// the like are recorded and reported but parsing continues with the next
// token, matching original_source's interpret() loop exactly (see
// SPEC_FULL.md §12). While compiling, any error clears Running (spec §7) and
// the rest of the line is discarded.
//
// Interpret itself resets Running at the start of every line. When the
// previous line ended with Running cleared by a compile-time error, it also
// clears Compiling, so the new line is interpreted rather than appended to
// the abandoned definition; that definition's dictionary entry stays in
// place. A definition that is still open because ";" simply hasn't appeared
// yet (a legitimate multi-line `: NAME ... ;`) is left untouched.
func (it *Interpreter) Interpret(line string) error {
	it.VM.ClearLastError()
	if !it.VM.Running() {
		it.VM.SetCompiling(false)
	}
	it.VM.SetRunning(true)
	it.tok = NewTokenizer(line)
	for {
		tokStr, ok := it.tok.Next()
		if !ok {
			break
		}
		stop, err := it.dispatch(tokStr)
		if err != nil {
			it.recordError(err)
		}
		if stop || !it.VM.Running() {
			break
		}
	}
	return it.VM.LastError()
}

func (it *Interpreter) recordError(err error) {
	it.VM.SetLastError(err)
	if it.VM.Compiling() {
		it.VM.SetRunning(false)
	}
	if it.OnError != nil {
		it.OnError(err)
	}
}

// dispatch classifies and handles a single token. stop reports whether the
// rest of the line must be abandoned (true only for an unknown word, per
// original_source's explicit break).
func (it *Interpreter) dispatch(tokStr string) (stop bool, err error) {
	if idx := it.VM.Find(tokStr); idx != vm.NotFound {
		immediate := it.VM.Immediate(idx)
		switch {
		case it.VM.Compiling() && it.VM.IsExit(idx):
			// An EXIT typed inside a definition compiles to the real
			// terminator opcode (the same one `;` emits through EmitExit) —
			// compiling it as an ordinary OpCall to EXIT's no-op host
			// function would just fall through to the rest of the body.
			_, err = it.VM.EmitExit()
		case it.VM.Compiling() && !immediate:
			_, err = it.VM.EmitCall(idx)
		default:
			err = it.VM.Exec(idx)
		}
		return false, err
	}
	if IsNumber(tokStr) {
		v := ParseNumber(tokStr)
		if it.VM.Compiling() {
			_, err = it.VM.EmitLiteral(v)
		} else {
			err = it.VM.Push(v)
		}
		return false, err
	}
	return true, newErr(ErrUnknownWord, tokStr)
}
