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

package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/db47h/intcode/proto/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

const (
	keyCtrlC = 3
	keyCtrlD = 4
)

var keyNames = map[string]byte{
	"tab":       '\t',
	"enter":     '\n',
	"esc":       27,
	"space":     ' ',
	"backspace": 127,
}

// keymap maps key presses to input values. Unmapped keys send their
// character code.
type keymap [256]vm.Cell

func newKeymap(keys map[string]int64) (*keymap, error) {
	var m keymap
	for k := range m {
		m[k] = vm.Int(int64(k))
	}
	for name, v := range keys {
		c, ok := keyNames[name]
		if !ok {
			if len(name) != 1 {
				return nil, errors.Errorf("invalid key name %q", name)
			}
			c = name[0]
		}
		m[c] = vm.Int(v)
	}
	return &m, nil
}

// rawIO is implemented by *os.File.
type rawIO interface {
	io.Reader
	Fd() uintptr
}

// runRaw drives i one key press at a time. Ctrl-C or Ctrl-D stop the program.
func runRaw(i *vm.Instance, in rawIO, out *bufio.Writer, keys map[string]int64) error {
	km, err := newKeymap(keys)
	if err != nil {
		return err
	}
	restore, err := setRawIO(in.Fd())
	if err != nil {
		return err
	}
	defer restore()

	var b [1]byte
	for {
		values, st, err := ascii.Drain(i, out)
		for _, v := range values {
			fmt.Fprintf(out, "%v\n", v)
		}
		if err != nil {
			return err
		}
		if err = out.Flush(); err != nil || st == vm.Terminated {
			return err
		}
		if _, err = io.ReadFull(in, b[:]); err != nil {
			if err == io.EOF {
				return nil
			}
			return errors.Wrap(err, "read key")
		}
		switch b[0] {
		case keyCtrlC, keyCtrlD:
			log.Infof("interrupted")
			return nil
		}
		i.AddInput(km[b[0]])
	}
}
