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

package asm

import (
	"fmt"
	"io"
	"strings"
	"text/scanner"

	"github.com/db47h/intcode/internal/iox"
	"github.com/db47h/intcode/vm"
)

var mnemonics = map[vm.Opcode][]string{
	vm.OpAdd:  {"add"},
	vm.OpMul:  {"mul"},
	vm.OpIn:   {"in"},
	vm.OpOut:  {"out"},
	vm.OpJnz:  {"jnz", "jt"},
	vm.OpJz:   {"jz", "jf"},
	vm.OpLt:   {"lt"},
	vm.OpEq:   {"eq"},
	vm.OpArb:  {"arb", "rbo"},
	vm.OpHalt: {"hlt", "halt"},
}

var opcodeIndex = make(map[string]vm.Opcode)

func init() {
	for op, names := range mnemonics {
		for _, n := range names {
			opcodeIndex[n] = op
		}
	}
}

// writes reports whether parameter n of op is a write target.
func writes(op vm.Opcode, n int) bool {
	switch op {
	case vm.OpAdd, vm.OpMul, vm.OpLt, vm.OpEq:
		return n == 2
	case vm.OpIn:
		return n == 0
	}
	return false
}

// ErrPos is an assembly error at a given source position.
type ErrPos struct {
	Pos scanner.Position
	Msg string
}

func (e *ErrPos) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// ErrAsm is the error type returned by Assemble. It holds up to 10 errors.
type ErrAsm []ErrPos

func (e ErrAsm) Error() string {
	var b strings.Builder
	for i := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e[i].Error())
	}
	return b.String()
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting program and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries, unless reading from r failed.
func Assemble(name string, r io.Reader) (prog []vm.Cell, err error) {
	p := newParser(name)
	if err = p.parse(r); err != nil {
		return nil, err
	}
	return p.prog, nil
}

// MustAssemble is like Assemble but panics on error. It is meant for
// programs embedded in Go source.
func MustAssemble(src string) []vm.Cell {
	prog, err := Assemble("", strings.NewReader(src))
	if err != nil {
		panic(err)
	}
	return prog
}

// decode returns the instruction at pc if the cells starting at pc form a
// well formed instruction.
func decode(mem []vm.Cell, pc int) (ins vm.Instruction, modes []vm.Mode, ok bool) {
	ins = vm.Decode(mem[pc])
	n := ins.Op.Args()
	if n < 0 || pc+n >= len(mem) {
		return ins, nil, false
	}
	modes = make([]vm.Mode, n)
	for k := range modes {
		m, err := ins.Mode(k)
		if err != nil || (m == vm.Immediate && writes(ins.Op, k)) {
			return ins, nil, false
		}
		modes[k] = m
	}
	// reject words with stray mode digits, like 10099.
	if vm.Encode(ins.Op, modes...) != mem[pc] {
		return ins, nil, false
	}
	return ins, modes, true
}

// Disassemble writes a disassembly of the cells in the given slice at position
// pc to the specified io.Writer and returns the position of the next
// instruction and any write error.
//
// Cells that do not start a well formed instruction are written as a data
// directive.
func Disassemble(mem []vm.Cell, pc int, w io.Writer) (next int, err error) {
	ew := iox.NewErrWriter(w)

	ins, modes, ok := decode(mem, pc)
	if !ok {
		io.WriteString(ew, "data ")
		io.WriteString(ew, mem[pc].String())
		return pc + 1, ew.Err
	}
	io.WriteString(ew, ins.Op.String())
	for k, m := range modes {
		if k == 0 {
			ew.Write([]byte{' '})
		} else {
			io.WriteString(ew, ", ")
		}
		switch m {
		case vm.Immediate:
			ew.Write([]byte{'#'})
		case vm.Relative:
			ew.Write([]byte{'@'})
		}
		io.WriteString(ew, mem[pc+1+k].String())
	}
	return pc + 1 + len(modes), ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer, one instruction per line. The base argument
// specifies the real address of the first cell (mem[0]); addresses are written
// as comments so that the output can be fed back to Assemble. It will return
// any write error.
func DisassembleAll(mem []vm.Cell, base int, w io.Writer) error {
	ew := iox.NewErrWriter(w)
	var b strings.Builder
	for pc := 0; pc < len(mem); {
		b.Reset()
		next, _ := Disassemble(mem, pc, &b)
		fmt.Fprintf(ew, "\t%-40s; %d\n", b.String(), base+pc)
		if ew.Err != nil {
			return ew.Err
		}
		pc = next
	}
	return nil
}
