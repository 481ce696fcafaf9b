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

package vm_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/db47h/intcode/vm"
)

// Shows the host loop driving a program that reads values until it gets a 0,
// then outputs their sum.
func ExampleInstance_Run() {
	prog, err := vm.ParseString("3,13,1,13,14,14,1005,13,0,4,14,99")
	if err != nil {
		panic(err)
	}
	i, err := vm.New(prog)
	if err != nil {
		panic(err)
	}

	input := []int64{3, 4, 5, 0}
	for {
		st, v, err := i.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%+v\n", err)
			return
		}
		switch st {
		case vm.WaitForInput:
			fmt.Println("input", input[0])
			i.AddInput(vm.Int(input[0]))
			input = input[1:]
		case vm.Output:
			fmt.Println("output", v)
		case vm.Terminated:
			fmt.Println("done")
			return
		}
	}

	// Output:
	// input 3
	// input 4
	// input 5
	// input 0
	// output 12
	// done
}

// Spawns a couple of machines from a single template.
func ExampleInstance_Clone() {
	prog, _ := vm.ParseString("3,9,102,2,9,9,4,9,99")
	tmpl, _ := vm.New(prog)
	for n := int64(1); n <= 3; n++ {
		i := tmpl.Clone()
		i.AddInput(vm.Int(n))
		out, _, _ := i.Drain()
		fmt.Println(out)
	}

	// Output:
	// [2]
	// [4]
	// [6]
}

func ExampleSave() {
	prog, _ := vm.Parse(strings.NewReader("1,9,10,3,\n2,3,11,0,\n99,30,40,50\n"))
	i, _ := vm.New(prog)
	i.Drain()
	vm.Save(os.Stdout, i.Image())

	// Output:
	// 3500,9,10,70,2,3,11,0,99,30,40,50
}
