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

// Exec runs the dictionary entry at idx: a primitive invokes its host
// function directly, a user word starts a fetch loop at its code-space body
// and recurses into Exec for every nested OpCall it encounters, exactly as
// spec §4.G describes ("recurses for nested calls"). Fetch, decode and
// dispatch are strictly serial (spec §5).
func (i *Instance) Exec(idx int) error {
	if idx < 0 || idx >= len(i.dict) {
		return newErr(ErrInvalidWordIndex)
	}
	e := i.dict[idx]
	if e.kind == kindPrimitive {
		return e.prim(i)
	}
	return i.run(e.body)
}

// run walks the code space starting at ip until an OpExit instruction
// returns control to the caller or the code space is exhausted.
func (i *Instance) run(ip int) error {
	for {
		w, ok := i.code.at(ip)
		if !ok {
			return nil
		}
		switch w.op {
		case OpLiteral:
			if err := i.Push(w.arg); err != nil {
				return err
			}
			ip++
		case OpCall:
			if err := i.Exec(int(w.arg)); err != nil {
				return err
			}
			ip++
		case Op0Branch:
			v, err := i.Pop()
			if err != nil {
				return err
			}
			if v == False {
				ip = int(w.arg)
			} else {
				ip++
			}
		case OpBranch:
			ip = int(w.arg)
		case OpExit:
			return nil
		default:
			return newErr(ErrInvalidWordIndex)
		}
	}
}
