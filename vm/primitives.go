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

import "strconv"

// registerPrimitives installs the minimum primitive set required by spec
// §4.I. Stack effects and the exact behavior of `.S`'s bracketed rendering
// follow original_source/src/main.py's _init_primitives / helper methods.
func registerPrimitives(i *Instance) {
	must := func(name string, immediate bool, fn PrimitiveFunc) {
		if _, err := i.AddPrimitive(name, immediate, fn); err != nil {
			panic(err) // only happens if DictionarySize is absurdly small
		}
	}

	must("DUP", false, opDup)
	must("DROP", false, opDrop)
	must("SWAP", false, opSwap)
	must("OVER", false, opOver)
	must("ROT", false, opRot)

	must(">R", false, opToR)
	must("R>", false, opRFrom)
	must("R@", false, opRFetch)

	must("+", false, binOp(func(a, b Cell) Cell { return a + b }))
	must("-", false, binOp(func(a, b Cell) Cell { return a - b }))
	must("*", false, binOp(func(a, b Cell) Cell { return a * b }))
	must("/", false, opDiv)
	must("MOD", false, opMod)

	must("AND", false, binOp(func(a, b Cell) Cell { return a & b }))
	must("OR", false, binOp(func(a, b Cell) Cell { return a | b }))
	must("XOR", false, binOp(func(a, b Cell) Cell { return a ^ b }))
	must("NOT", false, opNot)

	must("=", false, cmpOp(func(a, b Cell) bool { return a == b }))
	must("<>", false, cmpOp(func(a, b Cell) bool { return a != b }))
	must("<", false, cmpOp(func(a, b Cell) bool { return a < b }))
	must(">", false, cmpOp(func(a, b Cell) bool { return a > b }))
	must("<=", false, cmpOp(func(a, b Cell) bool { return a <= b }))
	must(">=", false, cmpOp(func(a, b Cell) bool { return a >= b }))

	must("EMIT", false, opEmit)
	must("CR", false, opCR)
	must(".", false, opDot)
	must(".S", false, opDotS)

	must("I", false, opI)
	must("J", false, opJ)

	// EXIT is compiled by `;` at the end of every definition, and may also be
	// typed explicitly inside a definition's body to return early. Either way
	// it must compile to the dedicated OpExit opcode (vm/run.go), never a
	// plain OpCall to this entry — see IsExit and its caller in
	// forth/interpreter.go's dispatch (`;` itself calls EmitExit directly).
	// The dictionary entry still needs to exist so an explicitly typed "EXIT"
	// token is found and recognized by IsExit; invoking it directly (the
	// non-compiling, interpret-state case) is a no-op, matching
	// original_source's _exit.
	idx, err := i.AddPrimitive("EXIT", false, func(*Instance) error { return nil })
	if err != nil {
		panic(err)
	}
	i.exitIdx = idx
}

func opDup(i *Instance) error {
	v, err := i.data.peek(0)
	if err != nil {
		return err
	}
	return i.Push(v)
}

func opDrop(i *Instance) error {
	_, err := i.Pop()
	return err
}

func opSwap(i *Instance) error {
	a, err := i.data.peek(1)
	if err != nil {
		return err
	}
	b, err := i.data.peek(0)
	if err != nil {
		return err
	}
	if err := i.data.set(1, b); err != nil {
		return err
	}
	return i.data.set(0, a)
}

func opOver(i *Instance) error {
	v, err := i.data.peek(1)
	if err != nil {
		return err
	}
	return i.Push(v)
}

func opRot(i *Instance) error {
	a, err := i.data.peek(2)
	if err != nil {
		return err
	}
	b, err := i.data.peek(1)
	if err != nil {
		return err
	}
	c, err := i.data.peek(0)
	if err != nil {
		return err
	}
	if err := i.data.set(2, b); err != nil {
		return err
	}
	if err := i.data.set(1, c); err != nil {
		return err
	}
	return i.data.set(0, a)
}

func opToR(i *Instance) error {
	v, err := i.Pop()
	if err != nil {
		return err
	}
	return i.Rpush(v)
}

func opRFrom(i *Instance) error {
	v, err := i.Rpop()
	if err != nil {
		return err
	}
	return i.Push(v)
}

func opRFetch(i *Instance) error {
	v, err := i.Rpeek(0)
	if err != nil {
		return err
	}
	return i.Push(v)
}

// binOp pops b then a (b was pushed last) and pushes f(a, b).
func binOp(f func(a, b Cell) Cell) PrimitiveFunc {
	return func(i *Instance) error {
		b, err := i.Pop()
		if err != nil {
			return err
		}
		a, err := i.Pop()
		if err != nil {
			return err
		}
		return i.Push(f(a, b))
	}
}

func cmpOp(f func(a, b Cell) bool) PrimitiveFunc {
	return func(i *Instance) error {
		b, err := i.Pop()
		if err != nil {
			return err
		}
		a, err := i.Pop()
		if err != nil {
			return err
		}
		return i.Push(FromBool(f(a, b)))
	}
}

func opDiv(i *Instance) error {
	b, err := i.Pop()
	if err != nil {
		return err
	}
	a, err := i.Pop()
	if err != nil {
		return err
	}
	if b == 0 {
		if pushErr := i.Push(0); pushErr != nil {
			return pushErr
		}
		return newErr(ErrDivisionByZero)
	}
	return i.Push(a / b)
}

func opMod(i *Instance) error {
	b, err := i.Pop()
	if err != nil {
		return err
	}
	a, err := i.Pop()
	if err != nil {
		return err
	}
	if b == 0 {
		if pushErr := i.Push(0); pushErr != nil {
			return pushErr
		}
		return newErr(ErrDivisionByZero)
	}
	return i.Push(a % b)
}

func opNot(i *Instance) error {
	v, err := i.Pop()
	if err != nil {
		return err
	}
	return i.Push(^v)
}

func opEmit(i *Instance) error {
	v, err := i.Pop()
	if err != nil {
		return err
	}
	return i.EmitChar(rune(v))
}

func opCR(i *Instance) error {
	return i.EmitLine()
}

func opDot(i *Instance) error {
	v, err := i.Pop()
	if err != nil {
		return err
	}
	return i.EmitString(strconv.Itoa(int(v)) + " ")
}

func opDotS(i *Instance) error {
	if err := i.EmitString("[ "); err != nil {
		return err
	}
	for _, v := range i.Stack() {
		if err := i.EmitString(strconv.Itoa(int(v)) + " "); err != nil {
			return err
		}
	}
	return i.EmitString("]")
}

func opI(i *Instance) error {
	v, err := i.Rpeek(0)
	if err != nil {
		return err
	}
	return i.Push(v)
}

func opJ(i *Instance) error {
	v, err := i.Rpeek(2)
	if err != nil {
		return err
	}
	return i.Push(v)
}
