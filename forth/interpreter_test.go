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

package forth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db47h/picoforth/forth"
	"github.com/db47h/picoforth/vm"
)

// newCapturing returns an Interpreter whose CharOutput hook appends to a
// *strings.Builder, so tests can assert on exactly what the runtime wrote.
func newCapturing(opts ...vm.Option) (*forth.Interpreter, *strings.Builder) {
	var out strings.Builder
	base := []vm.Option{
		vm.CharOutput(func(r rune) error {
			out.WriteRune(r)
			return nil
		}),
		vm.LineOutput(func() error {
			out.WriteByte('\n')
			return nil
		}),
	}
	it := forth.New(append(base, opts...)...)
	return it, &out
}

func TestArithmeticAndPrint(t *testing.T) {
	it, out := newCapturing()
	require.NoError(t, it.Interpret("3 4 + ."))
	assert.Equal(t, "7 ", out.String())
}

func TestDefineAndCallWord(t *testing.T) {
	it, out := newCapturing()
	require.NoError(t, it.Interpret(": SQUARE DUP * ;"))
	require.NoError(t, it.Interpret("5 SQUARE ."))
	assert.Equal(t, "25 ", out.String())
}

func TestConditionalWord(t *testing.T) {
	it, out := newCapturing()
	require.NoError(t, it.Interpret(": ADD1IF DUP 0 > IF 1 + THEN ;"))

	require.NoError(t, it.Interpret("5 ADD1IF ."))
	assert.Equal(t, "6 ", out.String())

	it2, out2 := newCapturing()
	require.NoError(t, it2.Interpret(": ADD1IF DUP 0 > IF 1 + THEN ;"))
	require.NoError(t, it2.Interpret("0 ADD1IF ."))
	assert.Equal(t, "0 ", out2.String())
}

func TestIfElse(t *testing.T) {
	it, out := newCapturing()
	require.NoError(t, it.Interpret(": SIGN DUP 0 < IF DROP -1 ELSE DROP 1 THEN ;"))
	require.NoError(t, it.Interpret("-5 SIGN ."))
	assert.Equal(t, "-1 ", out.String())

	it2, out2 := newCapturing()
	require.NoError(t, it2.Interpret(": SIGN DUP 0 < IF DROP -1 ELSE DROP 1 THEN ;"))
	require.NoError(t, it2.Interpret("5 SIGN ."))
	assert.Equal(t, "1 ", out2.String())
}

func TestDotQuoteImmediate(t *testing.T) {
	it, out := newCapturing()
	require.NoError(t, it.Interpret(`." Hello, World!"`))
	assert.Equal(t, "Hello, World!", out.String())
}

func TestDotQuoteCompiled(t *testing.T) {
	it, out := newCapturing()
	require.NoError(t, it.Interpret(`: GREET ." Hello, World!" ;`))
	require.NoError(t, it.Interpret("GREET"))
	assert.Equal(t, "Hello, World!", out.String())
}

func TestExplicitExitStopsBody(t *testing.T) {
	it, out := newCapturing()
	require.NoError(t, it.Interpret(": FOO 1 . EXIT 2 . ;"))
	require.NoError(t, it.Interpret("FOO"))
	assert.Equal(t, "1 ", out.String(), "EXIT typed mid-body must return immediately, not fall through to the rest of the definition")
}

func TestDoLoopWithExit(t *testing.T) {
	it, out := newCapturing()
	require.NoError(t, it.Interpret(": COUNTDOWN DO DUP . DUP 0 = IF DROP EXIT THEN 1 - LOOP ;"))
	require.NoError(t, it.Interpret("3 COUNTDOWN"))
	assert.Equal(t, "3 2 1 0 ", out.String())
	assert.Equal(t, 0, it.VM.Depth(), "EXIT's DROP must leave the loop counter fully consumed")
}

func TestNumberSaturation(t *testing.T) {
	it, out := newCapturing()
	require.NoError(t, it.Interpret("100000 ."))
	assert.Equal(t, "32767 ", out.String())

	it2, out2 := newCapturing()
	require.NoError(t, it2.Interpret("-100000 ."))
	assert.Equal(t, "-32768 ", out2.String())
}

func TestHexLiteral(t *testing.T) {
	it, out := newCapturing()
	require.NoError(t, it.Interpret("0xFF ."))
	assert.Equal(t, "255 ", out.String())
}

func TestUnknownWordStopsLine(t *testing.T) {
	it, out := newCapturing()
	err := it.Interpret("1 2 BOGUS 3 .")
	require.Error(t, err)
	kind, ok := forth.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, forth.ErrUnknownWord, kind)
	assert.Empty(t, out.String(), "BOGUS must stop the line before the trailing `.` ever runs")
}

func TestStackUnderflowContinuesLine(t *testing.T) {
	it, out := newCapturing()
	err := it.Interpret("DROP 1 .")
	require.Error(t, err)
	kind, ok := vm.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, vm.ErrStackUnderflow, kind)
	assert.Equal(t, "1 ", out.String(), "an underflow inside DROP must not prevent `1 .` from still running")
}

func TestDivisionByZeroPushesZero(t *testing.T) {
	it, out := newCapturing()
	err := it.Interpret("5 0 / .")
	require.Error(t, err)
	kind, ok := vm.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, vm.ErrDivisionByZero, kind)
	assert.Equal(t, "0 ", out.String())
}

func TestOnErrorHookSeesEveryError(t *testing.T) {
	it, _ := newCapturing()
	var seen []error
	it.OnError = func(err error) { seen = append(seen, err) }
	// last_error reflects the most recently recorded error in the line (the
	// second DROP's underflow), even though "1 ." ran cleanly afterward; it
	// is only cleared at the start of the next line (spec §6).
	require.Error(t, it.Interpret("DROP DROP 1 ."))
	require.Len(t, seen, 2)
}

func TestCompileOnlyWordOutsideDefinition(t *testing.T) {
	it, _ := newCapturing()
	err := it.Interpret("IF")
	require.Error(t, err)
	kind, ok := forth.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, forth.ErrMisplacedControlWord, kind)
}

func TestUnbalancedThen(t *testing.T) {
	it, _ := newCapturing()
	err := it.Interpret(": BAD THEN ;")
	require.Error(t, err)
	kind, ok := forth.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, forth.ErrUnbalancedControlFlow, kind)
}

func TestCompileErrorDiscardsPartialDefinition(t *testing.T) {
	it, out := newCapturing()
	err := it.Interpret(": BAD THEN ;")
	require.Error(t, err)
	require.True(t, it.VM.Compiling(), "the aborted definition leaves compiling set until the next line")

	// The next line must run as plain interpret-mode code, not get silently
	// absorbed into BAD's abandoned body.
	require.NoError(t, it.Interpret("3 4 + ."))
	assert.Equal(t, "7 ", out.String())
	assert.False(t, it.VM.Compiling())
}
