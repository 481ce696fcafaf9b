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
	"fmt"
	"os"
	"strings"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
)

// Assemble a program that counts down from 3, then run it.
func ExampleAssemble() {
	code := `
	.equ START 3	; a constant

loop:	out n
	add n, #-1, n
	jnz n, #loop
	hlt
n:	data START
`
	prog, err := asm.Assemble("countdown", strings.NewReader(code))
	if err != nil {
		fmt.Println(err)
		return
	}
	vm.Save(os.Stdout, prog)

	i, err := vm.New(prog)
	if err != nil {
		fmt.Println(err)
		return
	}
	out, _, err := i.Drain()
	fmt.Println(out, err)

	// Output:
	// 4,10,1001,10,-1,10,1005,10,0,99,3
	// [3 2 1] <nil>
}

// Disassemble the first published sample program.
func ExampleDisassemble() {
	prog := vm.Ints(1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50)
	var b strings.Builder
	for pc := 0; pc < len(prog); {
		b.Reset()
		next, _ := asm.Disassemble(prog, pc, &b)
		fmt.Printf("%2d  %s\n", pc, b.String())
		pc = next
	}

	// Output:
	//  0  add 9, 10, 3
	//  4  mul 3, 11, 0
	//  8  hlt
	//  9  data 30
	// 10  data 40
	// 11  data 50
}
