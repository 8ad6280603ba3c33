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

// Package forth implements the outer interpreter: the tokenizer, number
// classifier, token dispatch loop and the `:`/`;`/control-flow compiler that
// together turn a line of text into either immediate execution or compiled
// code in a vm.Instance's code space.
package forth

// isSpace reports whether b is an ASCII whitespace byte: space, tab, newline
// or carriage return.
func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// Tokenizer consumes one input line, yielding whitespace-delimited tokens,
// plus the two extra raw-scanning services spec §4.D requires for string
// operators like `."`.
type Tokenizer struct {
	buf string
	pos int
}

// NewTokenizer returns a Tokenizer positioned at the start of line.
func NewTokenizer(line string) *Tokenizer {
	return &Tokenizer{buf: line}
}

// Next skips leading whitespace and returns the next whitespace-delimited
// token, or ok=false at end of input.
func (t *Tokenizer) Next() (tok string, ok bool) {
	for t.pos < len(t.buf) && isSpace(t.buf[t.pos]) {
		t.pos++
	}
	if t.pos >= len(t.buf) {
		return "", false
	}
	start := t.pos
	for t.pos < len(t.buf) && !isSpace(t.buf[t.pos]) {
		t.pos++
	}
	return t.buf[start:t.pos], true
}

// SkipSpaceOnce discards exactly one whitespace character at the current
// position, if there is one. Used immediately after `."` to discard the
// mandatory separating space before the string body.
func (t *Tokenizer) SkipSpaceOnce() {
	if t.pos < len(t.buf) && isSpace(t.buf[t.pos]) {
		t.pos++
	}
}

// RawUntil returns the slice from the current position up to (but not
// including) the next occurrence of delim, and advances past the delimiter.
// It fails with an UnterminatedString error if delim is never found.
func (t *Tokenizer) RawUntil(delim byte) (string, error) {
	start := t.pos
	for t.pos < len(t.buf) {
		if t.buf[t.pos] == delim {
			s := t.buf[start:t.pos]
			t.pos++
			return s, nil
		}
		t.pos++
	}
	t.pos = len(t.buf)
	return "", newErr(ErrUnterminatedString, "")
}
