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

// raw returns the unresolved value of parameter n of the current instruction.
func (i *Instance) raw(n int) Cell {
	return i.Memory(i.pc + 1 + n)
}

// read resolves parameter n of ins as an operand.
func (i *Instance) read(ins Instruction, n int) (Cell, error) {
	m, err := ins.Mode(n)
	if err != nil {
		return Cell{}, err
	}
	p := i.raw(n)
	switch m {
	case Immediate:
		return p, nil
	case Relative:
		p = p.Add(i.rb)
	}
	a, ok := p.address()
	if !ok {
		return Cell{}, errors.Wrapf(ErrInvalidAddress, "parameter %d: address %v", n, p)
	}
	return i.Memory(a), nil
}

// target resolves parameter n of ins as the address of a write.
func (i *Instance) target(ins Instruction, n int) (int, error) {
	m, err := ins.Mode(n)
	if err != nil {
		return 0, err
	}
	p := i.raw(n)
	switch m {
	case Immediate:
		return 0, errors.Wrapf(ErrInvalidMode, "parameter %d: immediate mode write", n)
	case Relative:
		p = p.Add(i.rb)
	}
	a, ok := p.address()
	if !ok || a >= i.maxMem {
		return 0, errors.Wrapf(ErrInvalidAddress, "parameter %d: address %v", n, p)
	}
	return a, nil
}

// store writes v at an address previously validated by target.
func (i *Instance) store(addr int, v Cell) {
	if addr >= len(i.mem) {
		i.grow(addr + 1)
	}
	i.mem[addr] = v
}

func boolCell(b bool) Cell {
	if b {
		return Int(1)
	}
	return Cell{}
}

// Run executes instructions until the program outputs a value, needs input
// that has not been queued yet, or halts.
//
// On Output, v holds the output value and the PC points to the next
// instruction. On WaitForInput, nothing has been executed: the PC still points
// to the input instruction, which will be attempted again by the next call to
// Run. Once Terminated has been returned, subsequent calls keep returning
// Terminated.
//
// Errors are fatal: the PC points to the faulting instruction, and every
// subsequent call returns the same error.
func (i *Instance) Run() (st Status, v Cell, err error) {
	if i.err != nil {
		return Terminated, Cell{}, i.err
	}
	if i.halted {
		return Terminated, Cell{}, nil
	}
	defer func() {
		if err != nil {
			err = errors.Wrapf(err, "@pc=%d (%v)", i.pc, i.Memory(i.pc))
			i.err = err
			st, v = Terminated, Cell{}
		}
	}()
	for {
		ins := Decode(i.Memory(i.pc))
		switch ins.Op {
		case OpAdd, OpMul, OpLt, OpEq:
			a, err := i.read(ins, 0)
			if err != nil {
				return Terminated, Cell{}, err
			}
			b, err := i.read(ins, 1)
			if err != nil {
				return Terminated, Cell{}, err
			}
			c, err := i.target(ins, 2)
			if err != nil {
				return Terminated, Cell{}, err
			}
			switch ins.Op {
			case OpAdd:
				i.store(c, a.Add(b))
			case OpMul:
				i.store(c, a.Mul(b))
			case OpLt:
				i.store(c, boolCell(a.Less(b)))
			case OpEq:
				i.store(c, boolCell(a == b))
			}
			i.pc += 4
		case OpIn:
			c, err := i.target(ins, 0)
			if err != nil {
				return Terminated, Cell{}, err
			}
			if len(i.input) == 0 {
				return WaitForInput, Cell{}, nil
			}
			i.store(c, i.input[0])
			i.input = i.input[1:]
			i.pc += 2
		case OpOut:
			a, err := i.read(ins, 0)
			if err != nil {
				return Terminated, Cell{}, err
			}
			i.pc += 2
			i.insCount++
			return Output, a, nil
		case OpJnz, OpJz:
			a, err := i.read(ins, 0)
			if err != nil {
				return Terminated, Cell{}, err
			}
			b, err := i.read(ins, 1)
			if err != nil {
				return Terminated, Cell{}, err
			}
			if a.IsZero() == (ins.Op == OpJz) {
				pc, ok := b.address()
				if !ok {
					return Terminated, Cell{}, errors.Wrapf(ErrInvalidAddress, "jump to %v", b)
				}
				i.pc = pc
			} else {
				i.pc += 3
			}
		case OpArb:
			a, err := i.read(ins, 0)
			if err != nil {
				return Terminated, Cell{}, err
			}
			i.rb = i.rb.Add(a)
			i.pc += 2
		case OpHalt:
			i.halted = true
			i.insCount++
			return Terminated, Cell{}, nil
		default:
			return Terminated, Cell{}, errors.Wrapf(ErrUnknownOpcode, "opcode %d", ins.Op)
		}
		i.insCount++
	}
}

// Drain runs the instance until it waits for input or terminates, and returns
// the values output in between. The returned status is either WaitForInput or
// Terminated.
func (i *Instance) Drain() (out []Cell, st Status, err error) {
	for {
		st, v, err := i.Run()
		if err != nil || st != Output {
			return out, st, err
		}
		out = append(out, v)
	}
}
