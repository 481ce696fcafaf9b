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

// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	opcode	asm		args	description
//	------	---		----	------------------------------------------------------------
//	1	add		a b c	store a + b at c
//	2	mul		a b c	store a * b at c
//	3	in		a	store the next input value at a
//	4	out		a	output a
//	5	jnz, jt		a b	jump to b if a != 0
//	6	jz, jf		a b	jump to b if a == 0
//	7	lt		a b c	store 1 at c if a < b, 0 otherwise
//	8	eq		a b c	store 1 at c if a == b, 0 otherwise
//	9	arb, rbo	a	add a to the relative base
//	99	hlt, halt		halt
//
// Mnemonics are case insensitive. Operands are separated by commas and/or white
// space, and there must be no white space within an operand.
//
// Comments:
//
// A semicolon starts a comment that runs until the end of the line:
//
//	add 9, 10, 3	; [3] = [9] + [10]
//
// Addressing modes:
//
// Each operand is written as an expression, optionally prefixed by a mode:
//
//	expr	position mode: the operand is the value at address expr
//	#expr	immediate mode: the operand is expr itself
//	@expr	relative mode: the operand is the value at address rb+expr
//
// Write targets (the last operand of add, mul, lt, eq and the operand of in)
// cannot use immediate mode.
//
// Expressions are made of integer literals, Go character literals, label names
// and constant names combined with + and -:
//
//	out #'a'		; output 97
//	add count, #-1, count
//	jnz flag, #loop+2
//
// Labels:
//
// Labels are defined by suffixing them with a colon. A label evaluates to the
// address of the next instruction or data cell. Forward references are fine:
//
//	loop:	in @0
//		jnz @0, #loop
//	done:	hlt
//
// Any number of labels may precede an instruction on the same line.
//
// Assembler directives:
//
//	data <value>, ...	(alias .dat)
//
// Will compile the specified values as-is. This is primarily used for data
// storage and for self-modifying code:
//
//	table:	data 65, 'B', table+2
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant. The value can only refer to previously defined constants.
//
//	.org <value>
//
// Will place the next instruction at the address specified by the given value.
// Any gap is filled with zeros.
package asm
