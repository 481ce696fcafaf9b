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
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

type C []vm.Cell

func ints(vs ...int64) C { return vm.Ints(vs...) }

func setup(t *testing.T, code C, opts ...vm.Option) *vm.Instance {
	t.Helper()
	i, err := vm.New(code, opts...)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return i
}

// runAll runs i to completion and returns its outputs.
func runAll(t *testing.T, i *vm.Instance) C {
	t.Helper()
	out, st, err := i.Drain()
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if st != vm.Terminated {
		t.Fatalf("expected %v, got %v", vm.Terminated, st)
	}
	return out
}

func equal(a, b C) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var memTests = [...]struct {
	name string
	code C
	mem  C
}{
	{"add", ints(1, 0, 0, 0, 99), ints(2, 0, 0, 0, 99)},
	{"mul", ints(2, 3, 0, 3, 99), ints(2, 3, 0, 6, 99)},
	{"mul_past_end", ints(2, 4, 4, 5, 99, 0), ints(2, 4, 4, 5, 99, 9801)},
	{"self_modify", ints(1, 1, 1, 4, 99, 5, 6, 0, 99), ints(30, 1, 1, 4, 2, 5, 6, 0, 99)},
	{"published", ints(1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50), ints(3500, 9, 10, 70, 2, 3, 11, 0, 99, 30, 40, 50)},
	{"immediate", ints(1002, 4, 3, 4, 33), ints(1002, 4, 3, 4, 99)},
	{"negative", ints(1101, 100, -1, 4, 0), ints(1101, 100, -1, 4, 99)},
	{"lt", ints(1107, 1, 2, 5, 99, -1), ints(1107, 1, 2, 5, 99, 1)},
	{"eq", ints(1108, 1, 2, 5, 99, -1), ints(1108, 1, 2, 5, 99, 0)},
	{"grow", ints(1101, 3, 4, 7, 99), ints(1101, 3, 4, 7, 99, 0, 0, 7)},
}

func TestCore(t *testing.T) {
	for _, test := range memTests {
		i := setup(t, test.code)
		if out := runAll(t, i); len(out) != 0 {
			t.Errorf("%s: unexpected output %v", test.name, out)
		}
		if mem := i.Image(); !equal(mem, test.mem) {
			t.Errorf("%s: memory error: expected %v, got %v", test.name, test.mem, mem)
		}
	}
}

var ioTests = [...]struct {
	name string
	code C
	in   C
	out  C
}{
	{"echo", ints(3, 0, 4, 0, 99), ints(42), ints(42)},
	{"eq8_pos", ints(3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8), ints(8), ints(1)},
	{"eq8_pos_ne", ints(3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8), ints(7), ints(0)},
	{"lt8_pos", ints(3, 9, 7, 9, 10, 9, 4, 9, 99, -1, 8), ints(5), ints(1)},
	{"eq8_imm", ints(3, 3, 1108, -1, 8, 3, 4, 3, 99), ints(8), ints(1)},
	{"lt8_imm", ints(3, 3, 1107, -1, 8, 3, 4, 3, 99), ints(9), ints(0)},
	{"jz_pos", ints(3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9), ints(0), ints(0)},
	{"jz_pos_nz", ints(3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9), ints(5), ints(1)},
	{"jnz_imm", ints(3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1), ints(0), ints(0)},
	{"jnz_imm_nz", ints(3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1), ints(-3), ints(1)},
	{"arb", ints(109, 19, 204, -15, 99), nil, ints(99)},
	{"relative_write", ints(109, 10, 203, 2, 4, 12, 99), ints(77), ints(77)},
	{"big_mul", ints(1102, 34915192, 34915192, 7, 4, 7, 99, 0), nil, ints(1219070632396864)},
	{"big_literal", ints(104, 1125899906842624, 99), nil, ints(1125899906842624)},
	{"quine", ints(109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99), nil,
		ints(109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99)},
}

func TestIO(t *testing.T) {
	for _, test := range ioTests {
		i := setup(t, test.code, vm.Input(test.in...))
		if out := runAll(t, i); !equal(out, test.out) {
			t.Errorf("%s: output error: expected %v, got %v", test.name, test.out, out)
		}
	}
}

// cmp8 outputs 999 if the input is below 8, 1000 if it is equal to 8, or 1001
// if it is greater than 8.
var cmp8 = ints(3, 21, 1008, 21, 8, 20, 1005, 20, 22, 107, 8, 21, 20, 1006, 20, 31,
	1106, 0, 36, 98, 0, 0, 1002, 21, 125, 20, 4, 20, 1105, 1, 46, 104,
	999, 1105, 1, 46, 1101, 1000, 1, 20, 4, 20, 1105, 1, 46, 98, 99)

func TestCompare8(t *testing.T) {
	for in, exp := range map[int64]int64{-5: 999, 7: 999, 8: 1000, 9: 1001, 1 << 40: 1001} {
		i := setup(t, cmp8, vm.Input(vm.Int(in)))
		out := runAll(t, i)
		if !equal(out, ints(exp)) {
			t.Errorf("input %d: expected %d, got %v", in, exp, out)
		}
	}
}

var errTests = [...]struct {
	name string
	code C
	err  error
}{
	{"unknown", ints(42), vm.ErrUnknownOpcode},
	{"zero", ints(0), vm.ErrUnknownOpcode},
	{"negative_word", ints(-1), vm.ErrUnknownOpcode},
	{"fell_off", ints(1101, 1, 1, 5, 0), vm.ErrUnknownOpcode},
	{"imm_write", ints(11101, 1, 1, 5, 99), vm.ErrInvalidMode},
	{"imm_input", ints(103, 0, 99), vm.ErrInvalidMode},
	{"mode_3", ints(301, 0, 0, 0, 99), vm.ErrInvalidMode},
	{"mode_9_3rd", ints(90001, 0, 0, 0, 99), vm.ErrInvalidMode},
	{"neg_read", ints(4, -1, 99), vm.ErrInvalidAddress},
	{"neg_write", ints(1101, 1, 1, -1, 99), vm.ErrInvalidAddress},
	{"neg_relative", ints(109, -5, 204, 0, 99), vm.ErrInvalidAddress},
	{"neg_jump", ints(1105, 1, -7, 99), vm.ErrInvalidAddress},
	{"huge_write", ints(1101, 1, 1, 1<<40, 99), vm.ErrInvalidAddress},
}

func TestErrors(t *testing.T) {
	for _, test := range errTests {
		i := setup(t, test.code, vm.Input(vm.Int(1)))
		_, _, err := i.Run()
		if errors.Cause(err) != test.err {
			t.Errorf("%s: expected %v, got %v", test.name, test.err, err)
			continue
		}
		// fatal errors stick, and the PC does not move past the fault.
		pc := i.PC()
		_, _, err2 := i.Run()
		if err2 != err || i.Err() != err {
			t.Errorf("%s: error not sticky: %v, %v", test.name, err2, i.Err())
		}
		if i.PC() != pc {
			t.Errorf("%s: PC moved from %d to %d", test.name, pc, i.PC())
		}
	}
}
