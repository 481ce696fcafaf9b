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

package asm

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

const maxErrors = 10

type labelSite struct {
	pos     scanner.Position
	address int
}

// operand is a cell whose value is resolved once all labels are known.
type operand struct {
	pos     scanner.Position
	address int
	expr    string
}

type field struct {
	text string
	col  int
}

type parser struct {
	name   string
	prog   []vm.Cell
	pc     int
	labels map[string]labelSite
	consts map[string]labelSite
	values map[string]vm.Cell
	uses   []operand
	errs   ErrAsm
}

func newParser(name string) *parser {
	return &parser{
		name:   name,
		labels: make(map[string]labelSite),
		consts: make(map[string]labelSite),
		values: make(map[string]vm.Cell),
	}
}

func (p *parser) error(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, ErrPos{pos, msg})
	}
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.prog) {
		p.prog = append(p.prog, vm.Cell{})
	}
	p.prog[p.pc] = v
	p.pc++
}

// use writes a placeholder for expr at the current address.
func (p *parser) use(pos scanner.Position, expr string) {
	p.uses = append(p.uses, operand{pos, p.pc, expr})
	p.write(vm.Cell{})
}

func isIdent(s string) bool {
	for i, r := range s {
		if !(unicode.IsLetter(r) || r == '_' || r == '.' || (i > 0 && unicode.IsDigit(r))) {
			return false
		}
	}
	return s != ""
}

func isSep(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == ','
}

// splitFields splits a source line into fields separated by white space or
// commas. A semicolon starts a comment that runs until the end of the line.
// Character literals may contain any of these.
func splitFields(line string) []field {
	var fs []field
	for i := 0; i < len(line); {
		switch c := line[i]; {
		case c == ';':
			return fs
		case isSep(c):
			i++
		default:
			start := i
			for i < len(line) {
				if line[i] == '\'' {
					if q, err := strconv.QuotedPrefix(line[i:]); err == nil {
						i += len(q)
						continue
					}
				}
				if isSep(line[i]) || line[i] == ';' {
					break
				}
				i++
			}
			fs = append(fs, field{line[start:i], start + 1})
		}
	}
	return fs
}

// term evaluates an integer literal, character literal or identifier.
func (p *parser) term(t string, withLabels bool) (vm.Cell, error) {
	switch {
	case t[0] >= '0' && t[0] <= '9':
		return vm.ParseCell(t)
	case t[0] == '\'':
		s, err := strconv.Unquote(t)
		if err != nil {
			return vm.Cell{}, errors.Errorf("invalid character literal %s", t)
		}
		return vm.Int(int64([]rune(s)[0])), nil
	}
	if v, ok := p.values[t]; ok {
		return v, nil
	}
	if l, ok := p.labels[t]; ok && withLabels {
		return vm.Int(int64(l.address)), nil
	}
	if !isIdent(t) {
		return vm.Cell{}, errors.Errorf("invalid operand %s", t)
	}
	return vm.Cell{}, errors.Errorf("undefined: %s", t)
}

// termEnd returns the end of the term starting at s[i].
func termEnd(s string, i int) int {
	if s[i] == '\'' {
		if q, err := strconv.QuotedPrefix(s[i:]); err == nil {
			return i + len(q)
		}
	}
	for i < len(s) && s[i] != '+' && s[i] != '-' {
		i++
	}
	return i
}

// eval evaluates expressions of the form [+-]term{[+-]term}.
func (p *parser) eval(s string, withLabels bool) (vm.Cell, error) {
	var (
		sum vm.Cell
		neg bool
		i   int
	)
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		i = 1
	}
	for {
		if i >= len(s) {
			return sum, errors.Errorf("invalid expression %q", s)
		}
		j := termEnd(s, i)
		if j == i {
			return sum, errors.Errorf("invalid expression %q", s)
		}
		v, err := p.term(s[i:j], withLabels)
		if err != nil {
			return sum, err
		}
		if neg {
			v = v.Neg()
		}
		sum = sum.Add(v)
		if j == len(s) {
			return sum, nil
		}
		neg = s[j] == '-'
		i = j + 1
	}
}

func (p *parser) defined(pos scanner.Position, name string) bool {
	if l, ok := p.labels[name]; ok {
		p.error(pos, "redefinition of "+name+", previous definition here: "+l.pos.String())
		return true
	}
	if c, ok := p.consts[name]; ok {
		p.error(pos, "redefinition of "+name+", previously defined as a constant here: "+c.pos.String())
		return true
	}
	return false
}

func (p *parser) parseLine(line string, pos scanner.Position) {
	at := func(f field) scanner.Position {
		ps := pos
		ps.Column = f.col
		ps.Offset += f.col - 1
		return ps
	}

	fs := splitFields(line)
	// labels
	for len(fs) > 0 && strings.HasSuffix(fs[0].text, ":") {
		n := strings.TrimSuffix(fs[0].text, ":")
		switch {
		case !isIdent(n):
			p.error(at(fs[0]), "invalid label name "+strconv.Quote(n))
		case !p.defined(at(fs[0]), n):
			p.labels[n] = labelSite{at(fs[0]), p.pc}
		}
		fs = fs[1:]
	}
	if len(fs) == 0 {
		return
	}

	ins, args := fs[0], fs[1:]
	switch s := strings.ToLower(ins.text); s {
	case ".equ":
		if len(args) != 2 {
			p.error(at(ins), ".equ: expected name and value")
			return
		}
		n := args[0].text
		if !isIdent(n) {
			p.error(at(args[0]), ".equ: invalid name "+strconv.Quote(n))
			return
		}
		v, err := p.eval(args[1].text, false)
		if err != nil {
			p.error(at(args[1]), ".equ: "+err.Error())
			return
		}
		if !p.defined(at(args[0]), n) {
			p.consts[n] = labelSite{at(args[0]), 0}
			p.values[n] = v
		}
	case ".org":
		if len(args) != 1 {
			p.error(at(ins), ".org: expected address")
			return
		}
		v, err := p.eval(args[0].text, false)
		if err != nil {
			p.error(at(args[0]), ".org: "+err.Error())
			return
		}
		if !v.IsInt64() || v.Sign() < 0 || v.Int64() >= vm.DefaultMaxMemory {
			p.error(at(args[0]), ".org: invalid address "+v.String())
			return
		}
		p.pc = int(v.Int64())
	case "data", ".dat":
		if len(args) == 0 {
			p.error(at(ins), s+": expected value")
		}
		for _, a := range args {
			if a.text[0] == '#' || a.text[0] == '@' {
				p.error(at(a), s+": unexpected addressing mode in "+a.text)
			}
			p.use(at(a), a.text)
		}
	default:
		op, ok := opcodeIndex[s]
		if !ok {
			p.error(at(ins), "unknown instruction "+ins.text)
			return
		}
		if len(args) != op.Args() {
			p.error(at(ins), ins.text+": expected "+strconv.Itoa(op.Args())+" operands, got "+strconv.Itoa(len(args)))
			return
		}
		modes := make([]vm.Mode, len(args))
		for k, a := range args {
			switch a.text[0] {
			case '#':
				modes[k] = vm.Immediate
				if writes(op, k) {
					p.error(at(a), ins.text+": immediate write operand "+a.text)
				}
			case '@':
				modes[k] = vm.Relative
			}
		}
		p.write(vm.Encode(op, modes...))
		for k, a := range args {
			expr := a.text
			if modes[k] != vm.Position {
				expr = expr[1:]
			}
			p.use(at(a), expr)
		}
	}
}

func (p *parser) parse(r io.Reader) error {
	s := bufio.NewScanner(r)
	pos := scanner.Position{Filename: p.name, Line: 0, Column: 1}
	for s.Scan() {
		pos.Line++
		line := s.Text()
		p.parseLine(line, pos)
		pos.Offset += len(line) + 1
	}
	if err := s.Err(); err != nil {
		return errors.Wrap(err, "read failed")
	}

	for _, u := range p.uses {
		v, err := p.eval(u.expr, true)
		if err != nil {
			p.error(u.pos, err.Error())
			continue
		}
		p.prog[u.address] = v
	}
	if len(p.errs) > 0 {
		return p.errs
	}
	return nil
}
