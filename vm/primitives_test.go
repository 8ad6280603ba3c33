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

package vm_test

import (
	"testing"

	"github.com/db47h/picoforth/vm"
)

// C is a short alias for a slice of cells, used to build expected stack
// contents in test tables.
type C []vm.Cell

func pushAll(i *vm.Instance, vs C) {
	for _, v := range vs {
		if err := i.Push(v); err != nil {
			panic(err)
		}
	}
}

func assertStack(t *testing.T, i *vm.Instance, want C) {
	t.Helper()
	got := i.Stack()
	if len(got) != len(want) {
		t.Fatalf("stack depth = %d, want %d (got %v)", len(got), len(want), got)
	}
	for n := range got {
		if got[n] != want[n] {
			t.Fatalf("stack[%d] = %d, want %d (got %v)", n, got[n], want[n], got)
		}
	}
}

func exec(t *testing.T, i *vm.Instance, word string) error {
	t.Helper()
	idx := i.Find(word)
	if idx == vm.NotFound {
		t.Fatalf("word %q not in dictionary", word)
	}
	return i.Exec(idx)
}

func TestStackManipulation(t *testing.T) {
	cases := []struct {
		name  string
		setup C
		word  string
		want  C
	}{
		{"dup", C{5}, "DUP", C{5, 5}},
		{"drop", C{5, 6}, "DROP", C{5}},
		{"swap", C{10, 5}, "SWAP", C{5, 10}},
		{"over", C{10, 5}, "OVER", C{10, 5, 10}},
		{"rot", C{1, 2, 3}, "ROT", C{2, 3, 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			i := vm.New()
			pushAll(i, c.setup)
			if err := exec(t, i, c.word); err != nil {
				t.Fatalf("%s: %v", c.word, err)
			}
			assertStack(t, i, c.want)
		})
	}
}

func TestArithmetic(t *testing.T) {
	cases := []struct {
		a, b vm.Cell
		word string
		want vm.Cell
	}{
		{3, 4, "+", 7},
		{10, 3, "-", 7},
		{3, 4, "*", 12},
		{10, 2, "/", 5},
	}
	for _, c := range cases {
		t.Run(c.word, func(t *testing.T) {
			i := vm.New()
			pushAll(i, C{c.a, c.b})
			if err := exec(t, i, c.word); err != nil {
				t.Fatalf("%s: %v", c.word, err)
			}
			assertStack(t, i, C{c.want})
		})
	}
}

func TestComparisons(t *testing.T) {
	cases := []struct {
		a, b vm.Cell
		word string
		want vm.Cell
	}{
		{5, 5, "=", vm.True},
		{5, 6, "=", vm.False},
		{5, 10, "<", vm.True},
		{10, 5, "<", vm.False},
	}
	for _, c := range cases {
		t.Run(c.word, func(t *testing.T) {
			i := vm.New()
			pushAll(i, C{c.a, c.b})
			if err := exec(t, i, c.word); err != nil {
				t.Fatalf("%s: %v", c.word, err)
			}
			assertStack(t, i, C{c.want})
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	i := vm.New()
	pushAll(i, C{5, 0})
	err := exec(t, i, "/")
	if err == nil {
		t.Fatal("expected an error")
	}
	if kind, ok := vm.KindOf(err); !ok || kind != vm.ErrDivisionByZero {
		t.Fatalf("got kind %v, ok=%v, want ErrDivisionByZero", kind, ok)
	}
	assertStack(t, i, C{0})
}

func TestStackUnderflow(t *testing.T) {
	i := vm.New()
	err := exec(t, i, "DROP")
	if err == nil {
		t.Fatal("expected an error")
	}
	if kind, ok := vm.KindOf(err); !ok || kind != vm.ErrStackUnderflow {
		t.Fatalf("got kind %v, ok=%v, want ErrStackUnderflow", kind, ok)
	}
	assertStack(t, i, C{})
}

func TestReturnStackTransfer(t *testing.T) {
	i := vm.New()
	pushAll(i, C{42})
	if err := exec(t, i, ">R"); err != nil {
		t.Fatal(err)
	}
	assertStack(t, i, C{})
	if i.ReturnDepth() != 1 {
		t.Fatalf("return depth = %d, want 1", i.ReturnDepth())
	}
	if err := exec(t, i, "R@"); err != nil {
		t.Fatal(err)
	}
	assertStack(t, i, C{42})
	if i.ReturnDepth() != 1 {
		t.Fatalf("R@ must not consume the return stack, depth = %d", i.ReturnDepth())
	}
	if err := exec(t, i, "R>"); err != nil {
		t.Fatal(err)
	}
	assertStack(t, i, C{42, 42})
	if i.ReturnDepth() != 0 {
		t.Fatalf("R> must consume the return stack, depth = %d", i.ReturnDepth())
	}
}
