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
	"strconv"
	"strings"

	"github.com/db47h/picoforth/vm"
)

// IsNumber reports whether tok has the shape of a numeric literal: an
// optional leading '-' followed by one or more decimal digits, or a 0x/0X
// prefix followed by one or more hex digits. It does not by itself guarantee
// ParseNumber will succeed against pathological input, but in practice the
// two always agree: ParseNumber only clamps magnitude, it never rejects a
// token IsNumber accepted.
func IsNumber(tok string) bool {
	if tok == "" {
		return false
	}
	if hex := hexDigits(tok); hex != "" {
		return true
	}
	s := tok
	if s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// hexDigits returns the digit portion of tok if it carries a 0x/0X prefix
// and at least one following hex digit, or "" otherwise.
func hexDigits(tok string) string {
	if len(tok) < 3 {
		return ""
	}
	if tok[0] != '0' || (tok[1] != 'x' && tok[1] != 'X') {
		return ""
	}
	digits := tok[2:]
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if !(c >= '0' && c <= '9') && !(c >= 'a' && c <= 'f') && !(c >= 'A' && c <= 'F') {
			return ""
		}
	}
	return digits
}

// ParseNumber converts a token already accepted by IsNumber into a Cell.
// Hex literals (0x.../0X...) are parsed as an unsigned magnitude and then
// saturated into the signed 16-bit range; decimal literals are parsed signed
// and saturated the same way. This mirrors original_source's int(tok, 16)
// followed by clamping, rather than rejecting out-of-range input.
func ParseNumber(tok string) vm.Cell {
	if digits := hexDigits(tok); digits != "" {
		u, err := strconv.ParseUint(digits, 16, 64)
		if err != nil || u > uint64(vm.MaxCell) {
			// Magnitudes past MaxCell, including overlong hex literals that
			// overflow uint64, saturate to the top of the range, matching the
			// "never fails, only saturates" policy.
			return vm.MaxCell
		}
		return vm.Clamp16(int64(u))
	}
	neg := strings.HasPrefix(tok, "-")
	s := strings.TrimPrefix(tok, "-")
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		// Overlong decimal literal overflows uint64; saturate toward the end
		// of the range its sign points at.
		if neg {
			return vm.MinCell
		}
		return vm.MaxCell
	}
	if u > 1<<15 {
		// Every magnitude past 32768 saturates the same way; capping here also
		// keeps the int64 conversion below from wrapping negative.
		u = 1 << 15
	}
	v := int64(u)
	if neg {
		v = -v
	}
	return vm.Clamp16(v)
}
