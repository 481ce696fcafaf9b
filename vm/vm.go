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

// DefaultMaxMemory is the default memory ceiling, in cells.
const DefaultMaxMemory = 1 << 24

// Fatal error conditions. Run wraps them with the location of the faulting
// instruction; use errors.Cause to test for a specific condition.
var (
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrInvalidMode    = errors.New("invalid addressing mode")
	ErrInvalidAddress = errors.New("negative or invalid address")
)

// Status is the state of an Instance after a call to Run.
type Status int

// Run results.
const (
	Terminated Status = iota
	Output
	WaitForInput
)

func (s Status) String() string {
	switch s {
	case Terminated:
		return "terminated"
	case Output:
		return "output"
	case WaitForInput:
		return "wait for input"
	}
	return "invalid status"
}

// Instance represents an Intcode VM instance.
type Instance struct {
	pc       int
	rb       Cell
	mem      []Cell
	input    []Cell
	maxMem   int
	insCount int64
	halted   bool
	err      error
}

// Option interface
type Option func(*Instance) error

// Input appends the given values to the input queue.
func Input(values ...Cell) Option {
	return func(i *Instance) error {
		i.AddInput(values...)
		return nil
	}
}

// Patch sets the memory cell at addr to v before execution starts. A common
// use is to flip a configuration cell of a program (e.g. address 0 set to 2).
func Patch(addr int, v Cell) Option {
	return func(i *Instance) error {
		return i.SetMemory(addr, v)
	}
}

// MaxMemory sets the maximum number of memory cells the instance is allowed
// to use. Writes beyond this limit fail with ErrInvalidAddress. The default is
// DefaultMaxMemory. Options are applied in order, so MaxMemory should be set
// before any Patch.
func MaxMemory(cells int) Option {
	return func(i *Instance) error {
		if cells <= 0 {
			return errors.Errorf("invalid memory size %d", cells)
		}
		if cells < len(i.mem) {
			return errors.Errorf("memory size %d smaller than program size %d", cells, len(i.mem))
		}
		i.maxMem = cells
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Intcode Virtual Machine instance.
//
// The program is copied into the instance memory, so the same program slice
// can be used to create any number of instances. Addresses past the end of
// the program read as 0.
//
// Options will be set by calling SetOptions.
func New(program []Cell, opts ...Option) (*Instance, error) {
	i := &Instance{
		mem:    make([]Cell, len(program)),
		maxMem: DefaultMaxMemory,
	}
	copy(i.mem, program)
	if len(i.mem) > i.maxMem {
		i.maxMem = len(i.mem)
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// Clone returns a deep copy of the instance. The copy shares no state with
// the original.
func (i *Instance) Clone() *Instance {
	c := *i
	c.mem = make([]Cell, len(i.mem))
	copy(c.mem, i.mem)
	c.input = make([]Cell, len(i.input))
	copy(c.input, i.input)
	return &c
}

// AddInput appends values to the input queue. It can be called at any time,
// including before the first call to Run.
func (i *Instance) AddInput(values ...Cell) {
	i.input = append(i.input, values...)
}

// Pending returns the number of queued input values.
func (i *Instance) Pending() int {
	return len(i.input)
}

// PC returns the instruction pointer.
func (i *Instance) PC() int {
	return i.pc
}

// RelativeBase returns the relative base register.
func (i *Instance) RelativeBase() Cell {
	return i.rb
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Halted reports whether the program has executed a halt instruction.
func (i *Instance) Halted() bool {
	return i.halted
}

// Err returns the fatal error that stopped the instance, if any.
func (i *Instance) Err() error {
	return i.err
}
