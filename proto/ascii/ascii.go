// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
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

// Package ascii implements the ASCII convention used by many Intcode programs:
// input is fed one character per value, lines are terminated by '\n', and
// output values in the range 0-127 are text. Any other output value is
// returned to the caller as is.
package ascii

import (
	"io"

	"github.com/db47h/intcode/internal/iox"
	"github.com/db47h/intcode/vm"
)

// MaxChar is the largest output value treated as text.
const MaxChar = 127

var maxChar = vm.Int(MaxChar)

// IsText returns true if v is an ASCII character code.
func IsText(v vm.Cell) bool {
	return v.Sign() >= 0 && !maxChar.Less(v)
}

// Encode returns s as a sequence of character codes. Bytes are mapped
// unchanged, so s should only contain ASCII text.
func Encode(s string) []vm.Cell {
	out := make([]vm.Cell, len(s))
	for k := 0; k < len(s); k++ {
		out[k] = vm.Int(int64(s[k]))
	}
	return out
}

// Feed queues line followed by a newline in i's input queue.
func Feed(i *vm.Instance, line string) {
	i.AddInput(Encode(line)...)
	i.AddInput(vm.Int('\n'))
}

// Drain runs i until it terminates or needs input. Text output is written to
// w and any other output value is appended to values.
//
// A write error stops the machine before it runs any further; it is returned
// along with the status of the last Run.
func Drain(i *vm.Instance, w io.Writer) (values []vm.Cell, st vm.Status, err error) {
	ew := iox.NewErrWriter(w)
	var b [1]byte
	for {
		var v vm.Cell
		st, v, err = i.Run()
		if err != nil || st != vm.Output {
			return values, st, err
		}
		if !IsText(v) {
			values = append(values, v)
			continue
		}
		b[0] = byte(v.Int64())
		if _, err = ew.Write(b[:]); err != nil {
			return values, st, err
		}
	}
}

// LineReader is the interface that wraps the Readline method.
//
// Readline returns the next line of input without its line terminator.
// *readline.Instance satisfies this interface.
type LineReader interface {
	Readline() (string, error)
}

// Session connects an instance to a line oriented terminal.
type Session struct {
	In  LineReader
	Out io.Writer
	// Value, if not nil, is called for every non text output value.
	Value func(v vm.Cell) error
}

// Run drives i until it terminates or In reaches end of file.
//
// The returned status is vm.Terminated if the program halted, or
// vm.WaitForInput if it stopped on io.EOF while waiting for a line. Any other
// error from In, Out, Value or the machine itself is returned as is.
func (s *Session) Run(i *vm.Instance) (vm.Status, error) {
	for {
		values, st, err := Drain(i, s.Out)
		if err != nil {
			return st, err
		}
		for _, v := range values {
			if s.Value == nil {
				continue
			}
			if err = s.Value(v); err != nil {
				return st, err
			}
		}
		if st == vm.Terminated {
			return st, nil
		}
		line, err := s.In.Readline()
		if err != nil {
			if err == io.EOF {
				return st, nil
			}
			return st, err
		}
		Feed(i, line)
	}
}
