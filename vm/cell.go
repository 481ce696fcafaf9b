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

import (
	"math"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Cell is the raw type stored in a memory location. It is a 256 bits signed
// integer in two's complement form. The zero value is 0.
//
// Cells are comparable with ==.
type Cell struct {
	u uint256.Int
}

var (
	minInt64 = Int(math.MinInt64)
	maxInt64 = Int(math.MaxInt64)
)

// Int returns v as a Cell.
func Int(v int64) Cell {
	var c Cell
	if v < 0 {
		c.u.SetUint64(uint64(-(v + 1)) + 1)
		c.u.Neg(&c.u)
	} else {
		c.u.SetUint64(uint64(v))
	}
	return c
}

// Ints converts a list of int64 values to Cells.
func Ints(vs ...int64) []Cell {
	cs := make([]Cell, len(vs))
	for i, v := range vs {
		cs[i] = Int(v)
	}
	return cs
}

// ParseCell parses a base 10 signed integer.
func ParseCell(s string) (Cell, error) {
	var (
		c   Cell
		neg bool
	)
	digits := s
	switch {
	case strings.HasPrefix(digits, "-"):
		neg = true
		digits = digits[1:]
	case strings.HasPrefix(digits, "+"):
		digits = digits[1:]
	}
	if digits == "" || digits[0] < '0' || digits[0] > '9' {
		return c, errors.Errorf("invalid integer %q", s)
	}
	if err := c.u.SetFromDecimal(digits); err != nil {
		return c, errors.Wrapf(err, "invalid integer %q", s)
	}
	if neg {
		c.u.Neg(&c.u)
		if c.Sign() > 0 {
			return Cell{}, errors.Errorf("integer %q out of range", s)
		}
	} else if c.Sign() < 0 {
		return Cell{}, errors.Errorf("integer %q out of range", s)
	}
	return c, nil
}

// MustParseCell is like ParseCell but panics on error.
func MustParseCell(s string) Cell {
	c, err := ParseCell(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Add returns c + d.
func (c Cell) Add(d Cell) Cell {
	var r Cell
	r.u.Add(&c.u, &d.u)
	return r
}

// Mul returns c * d.
func (c Cell) Mul(d Cell) Cell {
	var r Cell
	r.u.Mul(&c.u, &d.u)
	return r
}

// Neg returns -c.
func (c Cell) Neg() Cell {
	var r Cell
	r.u.Neg(&c.u)
	return r
}

// Less reports whether c < d.
func (c Cell) Less(d Cell) bool {
	return c.u.Slt(&d.u)
}

// Sign returns -1, 0 or 1 depending on the sign of c.
func (c Cell) Sign() int {
	return c.u.Sign()
}

// IsZero reports whether c == 0.
func (c Cell) IsZero() bool {
	return c.u.IsZero()
}

// IsInt64 reports whether c can be represented as an int64.
func (c Cell) IsInt64() bool {
	return !c.u.Slt(&minInt64.u) && !maxInt64.u.Slt(&c.u)
}

// Int64 returns the low 64 bits of c as an int64. The result is undefined if
// !c.IsInt64().
func (c Cell) Int64() int64 {
	return int64(c.u.Uint64())
}

// String returns the base 10 representation of c.
func (c Cell) String() string {
	if c.Sign() < 0 {
		var m uint256.Int
		m.Neg(&c.u)
		return "-" + m.Dec()
	}
	return c.u.Dec()
}

// address converts c to a memory address.
func (c Cell) address() (int, bool) {
	if !c.IsInt64() {
		return 0, false
	}
	a := c.Int64()
	if a < 0 || a > math.MaxInt {
		return 0, false
	}
	return int(a), true
}
