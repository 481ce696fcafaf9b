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
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Parse reads an Intcode program in its text form: a comma separated list of
// base 10 integers. White space, including line breaks, is ignored and empty
// fields are skipped.
func Parse(r io.Reader) ([]Cell, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1<<26)
	s.Split(splitComma)
	var (
		prog []Cell
		n    int
	)
	for s.Scan() {
		n++
		f := strings.TrimSpace(s.Text())
		if f == "" {
			continue
		}
		c, err := ParseCell(f)
		if err != nil {
			return nil, errors.Wrapf(err, "field %d", n)
		}
		prog = append(prog, c)
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "Parse")
	}
	return prog, nil
}

func splitComma(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if i := bytes.IndexByte(data, ','); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// ParseString is a shorthand for Parse(strings.NewReader(s)).
func ParseString(s string) ([]Cell, error) {
	return Parse(strings.NewReader(s))
}

// Load loads a program from file fileName.
func Load(fileName string) ([]Cell, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	prog, err := Parse(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "Load %s", fileName)
	}
	return prog, nil
}

// Save writes mem to w in the text form read by Parse, followed by a new line.
func Save(w io.Writer, mem []Cell) error {
	bw := bufio.NewWriter(w)
	for k, c := range mem {
		if k > 0 {
			bw.WriteByte(',')
		}
		bw.WriteString(c.String())
	}
	bw.WriteByte('\n')
	return errors.Wrap(bw.Flush(), "Save")
}
