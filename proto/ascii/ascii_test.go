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

package ascii_test

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/proto/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echo copies its input to its output and outputs 1000 after each line.
const echo = `
loop:	in c
	out c
	eq c, #10, nl
	jz nl, #loop
	out #1000
	jz #0, #loop
c:	data 0
nl:	data 0
`

type lines []string

func (l *lines) Readline() (string, error) {
	if len(*l) == 0 {
		return "", io.EOF
	}
	s := (*l)[0]
	*l = (*l)[1:]
	return s, nil
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestIsText(t *testing.T) {
	for _, v := range []int64{0, 10, 'A', 127} {
		assert.True(t, ascii.IsText(vm.Int(v)), "%d", v)
	}
	for _, v := range []int64{-1, 128, 1000} {
		assert.False(t, ascii.IsText(vm.Int(v)), "%d", v)
	}
}

func TestFeed(t *testing.T) {
	i, err := vm.New(vm.Ints(99))
	require.NoError(t, err)
	ascii.Feed(i, "AB")
	assert.Equal(t, 3, i.Pending())
	assert.Equal(t, vm.Ints('A', 'B'), ascii.Encode("AB"))
}

func TestDrain(t *testing.T) {
	i, err := vm.New(vm.Ints(104, 'H', 104, 'i', 104, 1000, 104, 10, 99))
	require.NoError(t, err)
	var b bytes.Buffer
	values, st, err := ascii.Drain(i, &b)
	require.NoError(t, err)
	assert.Equal(t, vm.Terminated, st)
	assert.Equal(t, "Hi\n", b.String())
	assert.Equal(t, vm.Ints(1000), values)

	i, err = vm.New(vm.Ints(104, 'H', 99))
	require.NoError(t, err)
	_, st, err = ascii.Drain(i, failWriter{})
	assert.Error(t, err)
	assert.Equal(t, vm.Output, st)
}

func TestSession(t *testing.T) {
	prog := asm.MustAssemble(echo)
	i, err := vm.New(prog)
	require.NoError(t, err)
	var (
		b   bytes.Buffer
		got []vm.Cell
	)
	in := lines{"hello", "world"}
	s := ascii.Session{
		In:  &in,
		Out: &b,
		Value: func(v vm.Cell) error {
			got = append(got, v)
			return nil
		},
	}
	st, err := s.Run(i)
	require.NoError(t, err)
	assert.Equal(t, vm.WaitForInput, st)
	assert.Equal(t, "hello\nworld\n", b.String())
	assert.Equal(t, vm.Ints(1000, 1000), got)
}

func TestSession_value_error(t *testing.T) {
	i, err := vm.New(asm.MustAssemble(echo))
	require.NoError(t, err)
	in := lines{"x"}
	stop := errors.New("stop")
	s := ascii.Session{
		In:    &in,
		Out:   io.Discard,
		Value: func(vm.Cell) error { return stop },
	}
	_, err = s.Run(i)
	assert.Equal(t, stop, errors.Cause(err))
}

func ExampleSession() {
	i, err := vm.New(asm.MustAssemble(`
	out #'>'
	out #10
	hlt`))
	if err != nil {
		fmt.Println(err)
		return
	}
	s := ascii.Session{Out: os.Stdout}
	st, err := s.Run(i)
	fmt.Println(st, err)

	// Output:
	// >
	// terminated <nil>
}
