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

// Memory returns the value stored at addr. Addresses that have never been
// written, including negative ones, read as 0.
func (i *Instance) Memory(addr int) Cell {
	if addr < 0 || addr >= len(i.mem) {
		return Cell{}
	}
	return i.mem[addr]
}

// SetMemory stores v at addr, growing memory as needed.
func (i *Instance) SetMemory(addr int, v Cell) error {
	if addr < 0 || addr >= i.maxMem {
		return errors.Wrapf(ErrInvalidAddress, "address %d", addr)
	}
	if addr >= len(i.mem) {
		i.grow(addr + 1)
	}
	i.mem[addr] = v
	return nil
}

// Image returns a copy of the memory contents, up to the highest address
// written so far or the end of the program, whichever is greater.
func (i *Instance) Image() []Cell {
	m := make([]Cell, len(i.mem))
	copy(m, i.mem)
	return m
}

// grow extends memory to n cells. The new cells are zero filled.
func (i *Instance) grow(n int) {
	i.mem = append(i.mem, make([]Cell, n-len(i.mem))...)
}
