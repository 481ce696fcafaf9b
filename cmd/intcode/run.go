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
	"os"

	"github.com/chzyer/readline"
	"github.com/db47h/intcode/internal/iox"
	"github.com/db47h/intcode/proto/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] program",
		Short: "Run an Intcode program",
		Long: `Run an Intcode program read from a file of comma separated values.

Modes:
  numeric  output values are printed one per line; input values are read from
           the terminal, several values per line separated by commas.
  ascii    output values 0-127 are printed as text; each input line is sent
           as character codes followed by a newline.
  raw      the terminal is put in raw mode and each key press is sent as
           input, mapped through the [run.keys] table of the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], &cfg.Run)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&cfg.Run.Mode, "mode", "m", cfg.Run.Mode, "I/O `mode`: numeric, ascii or raw")
	f.IntVar(&cfg.Run.MaxMemory, "max-memory", 0, "maximum memory size in `cells`")
	f.StringSliceVarP(&cfg.Run.Input, "input", "i", nil, "queue `values` as input before running")
	f.StringArrayVarP(&cfg.Run.Lines, "line", "l", nil, "queue a `line` of text as input before running (ascii mode)")
	f.StringSliceVarP(&cfg.Run.Patch, "patch", "p", nil, "patch memory before running (`addr=value`)")
	f.StringVar(&cfg.Run.Dump, "dump", "", "save the final memory image to `file` (- for stdout)")
	f.StringVar(&cfg.Run.Prompt, "prompt", cfg.Run.Prompt, "input prompt")
	f.StringVar(&cfg.Run.History, "history", "", "line editor history `file`")
	return cmd
}

func newInstance(fileName string, c *runConfig) (*vm.Instance, error) {
	prog, err := loadProgram(fileName)
	if err != nil {
		return nil, err
	}
	var opts []vm.Option
	if c.MaxMemory > 0 {
		opts = append(opts, vm.MaxMemory(c.MaxMemory))
	}
	for _, p := range c.Patch {
		o, err := parsePatch(p)
		if err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	in, err := parseCells(c.Input)
	if err != nil {
		return nil, errors.Wrap(err, "input")
	}
	if len(in) > 0 {
		opts = append(opts, vm.Input(in...))
	}
	i, err := vm.New(prog, opts...)
	if err != nil {
		return nil, err
	}
	for _, l := range c.Lines {
		ascii.Feed(i, l)
	}
	return i, nil
}

func run(fileName string, c *runConfig) (err error) {
	i, err := newInstance(fileName, c)
	if err != nil {
		return err
	}
	out := bufio.NewWriter(os.Stdout)
	defer func() {
		if e := out.Flush(); err == nil {
			err = e
		}
		if err == nil && c.Dump != "" {
			err = dump(c.Dump, i)
		}
		log.Infof("%d instructions executed", i.InstructionCount())
	}()

	switch c.Mode {
	case "numeric":
		var in ascii.LineReader
		if in, err = lineReader(c, out); err != nil {
			return err
		}
		defer closeReader(in)
		return runNumeric(i, in, out)
	case "ascii":
		var in ascii.LineReader
		if in, err = lineReader(c, out); err != nil {
			return err
		}
		defer closeReader(in)
		s := ascii.Session{
			In:  in,
			Out: out,
			Value: func(v vm.Cell) error {
				_, err := fmt.Fprintf(out, "%v\n", v)
				return err
			},
		}
		st, err := s.Run(i)
		if err == nil && st != vm.Terminated {
			log.Warningf("end of input while program waiting for input")
		}
		return err
	case "raw":
		return runRaw(i, os.Stdin, out, c.Keys)
	}
	return errors.Errorf("unknown mode %q", c.Mode)
}

// runNumeric drives i with numeric I/O: one output value per line, and
// comma separated input values.
func runNumeric(i *vm.Instance, in ascii.LineReader, out *bufio.Writer) error {
	w := iox.NewErrWriter(out)
	for {
		st, v, err := i.Run()
		if err != nil {
			return err
		}
		switch st {
		case vm.Terminated:
			return w.Err
		case vm.Output:
			fmt.Fprintln(w, v)
		case vm.WaitForInput:
			if w.Err != nil {
				return w.Err
			}
			if err = out.Flush(); err != nil {
				return err
			}
			line, err := in.Readline()
			if err == io.EOF {
				log.Warningf("end of input while program waiting for input")
				return nil
			}
			if err != nil {
				return err
			}
			vs, err := vm.ParseString(line)
			if err != nil {
				// let the user try again
				fmt.Fprintln(w, err)
				continue
			}
			i.AddInput(vs...)
		}
	}
}

// lineReader returns a line editor if stdin is a terminal, or a plain line
// scanner otherwise.
func lineReader(c *runConfig, out *bufio.Writer) (ascii.LineReader, error) {
	if !readline.IsTerminal(int(os.Stdin.Fd())) {
		return &scanReader{bufio.NewScanner(os.Stdin)}, nil
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          c.Prompt,
		HistoryFile:     c.History,
		InterruptPrompt: "^C",
		EOFPrompt:       "^D",
	})
	if err != nil {
		return nil, errors.Wrap(err, "line editor")
	}
	return &flushReader{rl, out}, nil
}

func closeReader(r ascii.LineReader) {
	if c, ok := r.(io.Closer); ok {
		c.Close()
	}
}

// flushReader flushes pending output before prompting.
type flushReader struct {
	*readline.Instance
	out *bufio.Writer
}

func (r *flushReader) Readline() (string, error) {
	if err := r.out.Flush(); err != nil {
		return "", err
	}
	line, err := r.Instance.Readline()
	if err == readline.ErrInterrupt {
		return "", io.EOF
	}
	return line, err
}

type scanReader struct {
	s *bufio.Scanner
}

func (r *scanReader) Readline() (string, error) {
	if r.s.Scan() {
		return r.s.Text(), nil
	}
	if err := r.s.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func dump(fileName string, i *vm.Instance) error {
	if fileName == "-" {
		return vm.Save(os.Stdout, i.Image())
	}
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "dump")
	}
	err = vm.Save(f, i.Image())
	if e := f.Close(); err == nil {
		err = e
	}
	return err
}
