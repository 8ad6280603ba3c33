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

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrKind classifies an outer-interpreter error, the half of the error
// taxonomy (spec §7) that belongs to parsing and compilation rather than to
// vm.Instance's runtime.
type ErrKind int

const (
	// ErrUnknownWord: a token is neither a dictionary word nor a valid
	// number.
	ErrUnknownWord ErrKind = iota
	// ErrInvalidNumber: a token looked like a number but failed to parse
	// (currently unused by ParseNumber, which classifies before parsing;
	// kept for completeness of the taxonomy).
	ErrInvalidNumber
	// ErrMisplacedControlWord: a compile-only word (;, IF, ELSE, THEN, DO,
	// LOOP) was used outside of a definition.
	ErrMisplacedControlWord
	// ErrUnbalancedControlFlow: ELSE, THEN or LOOP found no matching
	// control-flow marker on the control stack.
	ErrUnbalancedControlFlow
	// ErrUnterminatedString: ." was never closed with a matching quote on
	// the same line.
	ErrUnterminatedString
)

var errKindText = [...]string{
	ErrUnknownWord:           "Unknown word",
	ErrInvalidNumber:         "Invalid number",
	ErrMisplacedControlWord:  "misplaced control word",
	ErrUnbalancedControlFlow: "unbalanced control flow",
	ErrUnterminatedString:    "unterminated string",
}

func (k ErrKind) String() string {
	if int(k) < 0 || int(k) >= len(errKindText) {
		return "Unknown error"
	}
	return errKindText[k]
}

// Error is the concrete error type raised by the outer interpreter and
// compiler. Word carries the offending token, when there is one.
type Error struct {
	Kind ErrKind
	Word string
}

func (e *Error) Error() string {
	if e.Word == "" {
		return e.Kind.String()
	}
	switch e.Kind {
	case ErrUnknownWord:
		return fmt.Sprintf("Unknown word: %s", e.Word)
	case ErrMisplacedControlWord:
		return fmt.Sprintf("%q outside of a definition", e.Word)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Word)
	}
}

func newErr(kind ErrKind, word string) error {
	return errors.WithStack(&Error{Kind: kind, Word: word})
}

// KindOf extracts the ErrKind from err if it (or something it wraps) is a
// *Error, and reports whether one was found.
func KindOf(err error) (ErrKind, bool) {
	type causer interface{ Cause() error }
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind, true
		}
		c, ok := err.(causer)
		if !ok {
			return 0, false
		}
		err = c.Cause()
	}
	return 0, false
}
