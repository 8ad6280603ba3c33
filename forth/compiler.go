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

// registerImmediates installs the compile-only words on it.VM: `:`, `;`,
// `IF`/`ELSE`/`THEN`, `DO`/`LOOP` and `."`. Each is a primitive marked
// immediate, so the outer interpreter (interpreter.go) always executes it
// rather than compiling a call to it, matching spec §4.H.
func (it *Interpreter) registerImmediates() {
	must := func(name string, fn vm.PrimitiveFunc) {
		if _, err := it.VM.AddPrimitive(name, true, fn); err != nil {
			panic(err)
		}
	}
	must(":", it.opColon)
	must(";", it.opSemicolon)
	must("IF", it.opIf)
	must("ELSE", it.opElse)
	must("THEN", it.opThen)
	must("DO", it.opDo)
	must("LOOP", it.opLoop)
	must(`."`, it.opDotQuote)
}

// opColon implements `:`: read the following token as the new word's name,
// create its dictionary entry, and enter compiling state.
func (it *Interpreter) opColon(i *vm.Instance) error {
	name, ok := it.tok.Next()
	if !ok {
		return newErr(ErrMisplacedControlWord, ":")
	}
	if _, err := i.CreateUser(name); err != nil {
		return err
	}
	i.SetCompiling(true)
	return nil
}

// opSemicolon implements `;`: close the current definition. EXIT is the
// dedicated terminator opcode the inner interpreter decodes directly (spec
// §9), so this emits it straight through EmitExit rather than compiling a
// call to the dictionary's "EXIT" entry.
func (it *Interpreter) opSemicolon(i *vm.Instance) error {
	if !i.Compiling() {
		return newErr(ErrMisplacedControlWord, ";")
	}
	if _, err := i.EmitExit(); err != nil {
		return err
	}
	i.SetCompiling(false)
	return nil
}

// opIf implements `IF`: emit a conditional branch with a placeholder target
// and push the hole's offset onto the control stack (the return stack,
// reused at compile time per spec §3 use 4).
func (it *Interpreter) opIf(i *vm.Instance) error {
	if !i.Compiling() {
		return newErr(ErrMisplacedControlWord, "IF")
	}
	hole, err := i.EmitBranch(true)
	if err != nil {
		return err
	}
	return i.Rpush(vm.Cell(hole))
}

// opElse implements `ELSE`: close the IF branch over the true arm with an
// unconditional jump past the false arm, patch the IF hole to land here, and
// push the new hole for THEN to patch.
func (it *Interpreter) opElse(i *vm.Instance) error {
	if !i.Compiling() {
		return newErr(ErrMisplacedControlWord, "ELSE")
	}
	ifHole, err := i.Rpop()
	if err != nil {
		return newErr(ErrUnbalancedControlFlow, "ELSE")
	}
	elseHole, err := i.EmitBranch(false)
	if err != nil {
		return err
	}
	if err := i.PatchBranch(int(ifHole), i.CodeCursor()); err != nil {
		return err
	}
	return i.Rpush(vm.Cell(elseHole))
}

// opThen implements `THEN`: patch the pending hole (from IF or ELSE) to the
// current cursor.
func (it *Interpreter) opThen(i *vm.Instance) error {
	if !i.Compiling() {
		return newErr(ErrMisplacedControlWord, "THEN")
	}
	hole, err := i.Rpop()
	if err != nil {
		return newErr(ErrUnbalancedControlFlow, "THEN")
	}
	return i.PatchBranch(int(hole), i.CodeCursor())
}

// opDo implements `DO`: remember the current cursor as the loop top.
func (it *Interpreter) opDo(i *vm.Instance) error {
	if !i.Compiling() {
		return newErr(ErrMisplacedControlWord, "DO")
	}
	return i.Rpush(vm.Cell(i.CodeCursor()))
}

// opLoop implements `LOOP`: emit an unconditional branch back to the
// matching DO's cursor. This is an unconditional repeat with no index/limit
// test, a deliberate simplification of full DO/LOOP semantics (see
// DESIGN.md, "Open Questions (resolved)" item 5); callers needing termination
// compose it with IF/EXIT.
func (it *Interpreter) opLoop(i *vm.Instance) error {
	if !i.Compiling() {
		return newErr(ErrMisplacedControlWord, "LOOP")
	}
	top, err := i.Rpop()
	if err != nil {
		return newErr(ErrUnbalancedControlFlow, "LOOP")
	}
	hole, err := i.EmitBranch(false)
	if err != nil {
		return err
	}
	return i.PatchBranch(hole, int(top))
}

// opDotQuote implements `."`: in interpret state it prints the delimited
// string immediately; while compiling it emits a literal-then-EMIT pair for
// every character so the string is produced each time the definition runs.
func (it *Interpreter) opDotQuote(i *vm.Instance) error {
	it.tok.SkipSpaceOnce()
	s, err := it.tok.RawUntil('"')
	if err != nil {
		return err
	}
	if !i.Compiling() {
		return i.EmitString(s)
	}
	emit := i.Find("EMIT")
	for _, r := range s {
		if _, err := i.EmitLiteral(vm.Cell(r)); err != nil {
			return err
		}
		if _, err := i.EmitCall(emit); err != nil {
			return err
		}
	}
	return nil
}
