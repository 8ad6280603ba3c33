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

// Command picoforth is an interactive line-at-a-time REPL for the picoforth
// virtual machine.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/db47h/picoforth/forth"
	"github.com/db47h/picoforth/vm"
)

const banner = "picoforth  (type `bye` to exit)"

var (
	dataSize = flag.Int("data-stack", vm.DefaultDataStackSize, "data stack capacity, in cells")
	retSize  = flag.Int("return-stack", vm.DefaultReturnStackSize, "return stack capacity, in cells")
	dictSize = flag.Int("dictionary", vm.DefaultDictionarySize, "dictionary capacity, in entries")
	codeSize = flag.Int("code-space", vm.DefaultCodeSpaceSize, "code space capacity, in cells")
)

func main() {
	flag.Parse()
	if err := run(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, errors.Cause(err))
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer) error {
	it := forth.New(
		vm.DataStackSize(*dataSize),
		vm.ReturnStackSize(*retSize),
		vm.DictionarySize(*dictSize),
		vm.CodeSpaceSize(*codeSize),
		vm.CharOutput(func(r rune) error {
			_, err := fmt.Fprint(out, string(r))
			return errors.Wrap(err, "write failed")
		}),
		vm.LineOutput(func() error {
			_, err := fmt.Fprintln(out)
			return errors.Wrap(err, "write failed")
		}),
	)
	it.OnError = func(err error) {
		fmt.Fprintf(out, "Error: %s\n", err)
	}

	fmt.Fprintln(out, banner)
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if strings.EqualFold(strings.TrimSpace(line), "bye") {
			break
		}
		// Interpret's own error reporting happens through OnError above;
		// the returned error only tells us whether the line finished
		// clean, which the REPL doesn't otherwise need.
		_ = it.Interpret(line)
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading input")
	}
	return nil
}
