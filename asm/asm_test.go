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

package asm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quine = `
	.equ count 100
	.equ flag  count+1

	arb #1
loop:	out @-1
	add count, #1, count
	eq count, #16, flag
	jz flag, #0
	hlt
`

func TestAssemble(t *testing.T) {
	var tests = [...]struct {
		name string
		code string
		prog []vm.Cell
	}{
		{"quine", quine, vm.Ints(109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99)},
		{"published", "add 9, 10, 3\nmul 3 11 0\nHLT\ndata 30, 40, 50", vm.Ints(1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50)},
		{"forward", "jnz #1, #end\nout #1\nend: halt", vm.Ints(1105, 1, 5, 104, 1, 99)},
		{"labels", "a: b: data a, b, c\nc: data c-1, -c, 'A'+1, ';'", vm.Ints(0, 0, 3, 2, -3, 66, 59)},
		{"relative", "arb #-3\nin @3\nout @+3", vm.Ints(109, -3, 203, 3, 204, 3)},
		{"org", "out #1\n.org 5\nhlt", vm.Ints(104, 1, 0, 0, 0, 99)},
		{"comment", "; only a comment\n\n  hlt ; halt\n", vm.Ints(99)},
		{"wide", "data 1267650600228229401496703205376", []vm.Cell{vm.MustParseCell("1267650600228229401496703205376")}},
	}
	for _, test := range tests {
		prog, err := asm.Assemble(test.name, strings.NewReader(test.code))
		if !assert.NoError(t, err, test.name) {
			continue
		}
		assert.Equal(t, test.prog, prog, test.name)
	}
}

// check some errors. We're not checking the messages, rather that they point at
// the correct place.
func TestAssemble_errors(t *testing.T) {
	code := `foo: bar
	add 1, 2
	add 1, 2, #3
	in undef
	1foo: hlt
foo: hlt
	data #4
	out 1-
	.equ x later
later:	.org -1
`
	_, err := asm.Assemble("test_errors", strings.NewReader(code))
	require.Error(t, err)
	errs, ok := err.(asm.ErrAsm)
	require.True(t, ok, "%T", err)

	expected := []struct {
		line, col int
	}{
		{1, 6},   // unknown instruction bar
		{2, 2},   // operand count
		{3, 12},  // immediate write
		{5, 2},   // invalid label name
		{6, 1},   // redefinition
		{7, 7},   // addressing mode in data
		{9, 9},   // .equ referring to a label
		{10, 13}, // .org -1
		{4, 5},   // undefined
		{7, 7},   // #4 is not an expression
	}
	got := make([]struct{ line, col int }, len(errs))
	for k, e := range errs {
		got[k].line, got[k].col = e.Pos.Line, e.Pos.Column
		assert.Equal(t, "test_errors", e.Pos.Filename)
	}
	// the error for "out 1-" is dropped: only the first 10 errors are kept.
	assert.Len(t, errs, 10)
	assert.Contains(t, err.Error(), "test_errors:1:6: unknown instruction bar")
	for _, exp := range expected {
		assert.Contains(t, got, exp)
	}
}

func TestDisassemble(t *testing.T) {
	prog := vm.Ints(1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50)
	var b bytes.Buffer
	for pc := 0; pc < len(prog); {
		var err error
		pc, err = asm.Disassemble(prog, pc, &b)
		require.NoError(t, err)
		b.WriteByte('\n')
	}
	assert.Equal(t, "add 9, 10, 3\nmul 3, 11, 0\nhlt\ndata 30\ndata 40\ndata 50\n", b.String())

	for _, test := range []struct {
		prog []vm.Cell
		text string
	}{
		{vm.Ints(21101, 1, -2, 3), "add #1, #-2, @3"},
		{vm.Ints(11101, 1, 2, 3), "data 11101"}, // immediate write
		{vm.Ints(1, 1, 2), "data 1"},            // truncated
		{vm.Ints(10099), "data 10099"},          // stray mode
		{vm.Ints(304, 1), "data 304"},           // bad mode
		{vm.Ints(-4), "data -4"},                // negative word
		{vm.Ints(1006, 101, 0), "jz 101, #0"},
	} {
		b.Reset()
		_, err := asm.Disassemble(test.prog, 0, &b)
		require.NoError(t, err)
		assert.Equal(t, test.text, b.String())
	}
}

func TestRoundTrip(t *testing.T) {
	progs := [][]vm.Cell{
		vm.Ints(109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99),
		vm.Ints(3, 21, 1008, 21, 8, 20, 1005, 20, 22, 107, 8, 21, 20, 1006, 20, 31,
			1106, 0, 36, 98, 0, 0, 1002, 21, 125, 20, 4, 20, 1105, 1, 46, 104,
			999, 1105, 1, 46, 1101, 1000, 1, 20, 4, 20, 1105, 1, 46, 98, 99),
		vm.Ints(1102, 34915192, 34915192, 7, 4, 7, 99, 0),
	}
	for _, prog := range progs {
		var b bytes.Buffer
		require.NoError(t, asm.DisassembleAll(prog, 0, &b))
		got, err := asm.Assemble("roundtrip", &b)
		require.NoError(t, err)
		assert.Equal(t, prog, got)
	}
}

func TestMustAssemble(t *testing.T) {
	assert.Equal(t, vm.Ints(104, 42, 99), asm.MustAssemble("out #42\nhlt"))
	assert.Panics(t, func() { asm.MustAssemble("nope") })
}
