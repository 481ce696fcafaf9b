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

package vm

import "github.com/pkg/errors"

// Opcode is the operation-selecting part of an instruction word (the word
// modulo 100).
type Opcode int

// Intcode opcodes.
const (
	OpAdd     Opcode = 1
	OpMul     Opcode = 2
	OpIn      Opcode = 3
	OpOut     Opcode = 4
	OpJnz     Opcode = 5
	OpJz      Opcode = 6
	OpLt      Opcode = 7
	OpEq      Opcode = 8
	OpArb     Opcode = 9
	OpHalt    Opcode = 99
	opInvalid Opcode = -1
)

var opcodes = map[Opcode]struct {
	name string
	args int
}{
	OpAdd:  {"add", 3},
	OpMul:  {"mul", 3},
	OpIn:   {"in", 1},
	OpOut:  {"out", 1},
	OpJnz:  {"jnz", 2},
	OpJz:   {"jz", 2},
	OpLt:   {"lt", 3},
	OpEq:   {"eq", 3},
	OpArb:  {"arb", 1},
	OpHalt: {"hlt", 0},
}

// Valid reports whether op is a known opcode.
func (op Opcode) Valid() bool {
	_, ok := opcodes[op]
	return ok
}

// Args returns the number of parameters op takes, or -1 if op is unknown.
func (op Opcode) Args() int {
	if o, ok := opcodes[op]; ok {
		return o.args
	}
	return -1
}

// Size returns the number of cells occupied by an instruction using op,
// opcode included.
func (op Opcode) Size() int {
	return op.Args() + 1
}

func (op Opcode) String() string {
	if o, ok := opcodes[op]; ok {
		return o.name
	}
	return "???"
}

// Mode is a parameter addressing mode.
type Mode int

// Addressing modes.
const (
	Position  Mode = 0
	Immediate Mode = 1
	Relative  Mode = 2
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return "invalid"
}

// Instruction is a decoded instruction word. The number of parameters is not
// known to the decoder; callers ask for the mode of the n-th parameter of the
// opcode they execute.
type Instruction struct {
	Op    Opcode
	modes int64
}

// Decode splits an instruction word into its opcode and parameter modes.
// Words that are negative or do not fit in an int64 decode to an invalid
// opcode.
func Decode(w Cell) Instruction {
	if !w.IsInt64() || w.Sign() < 0 {
		return Instruction{Op: opInvalid}
	}
	v := w.Int64()
	return Instruction{Op: Opcode(v % 100), modes: v / 100}
}

// Encode builds an instruction word from an opcode and parameter modes.
func Encode(op Opcode, modes ...Mode) Cell {
	w := int64(op)
	m := int64(100)
	for _, md := range modes {
		w += int64(md) * m
		m *= 10
	}
	return Int(w)
}

// Mode returns the addressing mode of parameter n (0 based). Missing digits
// default to Position.
func (ins Instruction) Mode(n int) (Mode, error) {
	d := ins.modes
	for k := n; k > 0 && d != 0; k-- {
		d /= 10
	}
	switch m := Mode(d % 10); m {
	case Position, Immediate, Relative:
		return m, nil
	default:
		return m, errors.Wrapf(ErrInvalidMode, "mode %d for parameter %d", m, n)
	}
}
