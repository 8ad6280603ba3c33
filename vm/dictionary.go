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

import "strings"

// PrimitiveFunc is the host-level operation backing a primitive dictionary
// entry.
type PrimitiveFunc func(*Instance) error

// entryKind distinguishes a primitive (host-level) dictionary entry from a
// user-defined (code-space) one.
type entryKind uint8

const (
	kindPrimitive entryKind = iota
	kindUser
)

// entry is one dictionary record: (name, immediate_flag, body, kind).
type entry struct {
	name      string
	immediate bool
	kind      entryKind
	body      int           // code-space offset, valid when kind == kindUser
	prim      PrimitiveFunc // host operation, valid when kind == kindPrimitive
}

// NotFound is the sentinel index returned by Find when a name is absent.
const NotFound = -1

// Find looks up name case-insensitively, newest entry first, so that
// redefining a name shadows the previous definition.
func (i *Instance) Find(name string) int {
	for idx := len(i.dict) - 1; idx >= 0; idx-- {
		if strings.EqualFold(i.dict[idx].name, name) {
			return idx
		}
	}
	return NotFound
}

// AddPrimitive registers a built-in word backed by fn. immediate marks it as
// a compile-time (immediate) word.
func (i *Instance) AddPrimitive(name string, immediate bool, fn PrimitiveFunc) (int, error) {
	if len(i.dict) >= i.dictCap {
		return NotFound, newErr(ErrDictionaryFull)
	}
	i.dict = append(i.dict, entry{name: name, immediate: immediate, kind: kindPrimitive, prim: fn})
	return len(i.dict) - 1, nil
}

// CreateUser appends a new user-word entry whose body starts at the current
// code-space cursor, and returns its dictionary index. The name is not
// usable until the caller finishes compiling the body (commit is implicit:
// the entry already exists in the dictionary, matching the reference
// behavior where a partial definition is merely unreachable dead code, never
// rolled back).
func (i *Instance) CreateUser(name string) (int, error) {
	if len(i.dict) >= i.dictCap {
		return NotFound, newErr(ErrDictionaryFull)
	}
	i.dict = append(i.dict, entry{name: name, kind: kindUser, body: i.code.cursor()})
	return len(i.dict) - 1, nil
}

// EntryName returns the name of the dictionary entry at idx, or "" if idx is
// out of range.
func (i *Instance) EntryName(idx int) string {
	if idx < 0 || idx >= len(i.dict) {
		return ""
	}
	return i.dict[idx].name
}

// IsExit reports whether idx is the dictionary index of the built-in EXIT
// word, the one ordinary (non-immediate) word the outer interpreter must
// never compile as a plain OpCall: compiling a call to EXIT's no-op host
// function would silently fall through to the rest of the definition
// instead of returning from it, so the compiler special-cases it into a real
// EmitExit the same way it special-cases the immediate control-flow words.
// A later shadowing redefinition of the name "EXIT" is unaffected — IsExit
// only recognizes the original built-in's own index.
func (i *Instance) IsExit(idx int) bool { return idx == i.exitIdx }

// Immediate reports whether the dictionary entry at idx is marked immediate
// (executed during compilation rather than compiled into the enclosing
// definition). Returns false for an out-of-range idx.
func (i *Instance) Immediate(idx int) bool {
	if idx < 0 || idx >= len(i.dict) {
		return false
	}
	return i.dict[idx].immediate
}

// DictDepth returns the number of dictionary entries defined so far.
func (i *Instance) DictDepth() int { return len(i.dict) }
