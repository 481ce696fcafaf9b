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

// Package vm implements the Intcode virtual machine.
//
// An Instance owns its memory, instruction pointer, relative base and input
// queue. The host drives it by queuing input with AddInput and calling Run
// repeatedly; Run returns whenever the program outputs a value, blocks on an
// empty input queue, or halts:
//
//	for {
//		st, v, err := i.Run()
//		if err != nil {
//			return err
//		}
//		switch st {
//		case vm.Output:
//			// use v
//		case vm.WaitForInput:
//			i.AddInput(next())
//		case vm.Terminated:
//			return nil
//		}
//	}
//
// Blocking on input is reported as a Status, never as an error, and does not
// stall the calling goroutine. Instances are not safe for concurrent use, but
// any number of them, typically obtained with Clone, can run side by side as
// long as each one is confined to a single goroutine at a time.
//
// Memory cells are 256 bits signed integers. Memory is unbounded as far as
// programs are concerned: unwritten addresses read as 0 and writes extend it
// transparently, up to the limit set with the MaxMemory option.
//
// For performance reasons, the PC is not incremented in a single place, rather
// each opcode deals with the PC as needed.
package vm
