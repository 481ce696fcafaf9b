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
	"io"
	"os"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newAsmCmd() *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "asm [flags] source",
		Short: "Assemble Intcode assembly into a program file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := assemble(args[0])
			if err != nil {
				return err
			}
			return writeOut(outFile, func(w io.Writer) error {
				return vm.Save(w, prog)
			})
		},
	}
	cmd.Flags().StringVarP(&outFile, "output", "o", "-", "output `file` (- for stdout)")
	return cmd
}

func newDisasmCmd() *cobra.Command {
	var (
		outFile string
		base    int
	)
	cmd := &cobra.Command{
		Use:   "disasm [flags] program",
		Short: "Disassemble an Intcode program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := loadProgram(args[0])
			if err != nil {
				return err
			}
			return writeOut(outFile, func(w io.Writer) error {
				return asm.DisassembleAll(prog, base, w)
			})
		},
	}
	cmd.Flags().StringVarP(&outFile, "output", "o", "-", "output `file` (- for stdout)")
	cmd.Flags().IntVar(&base, "base", 0, "address of the first cell")
	return cmd
}

func assemble(fileName string) ([]vm.Cell, error) {
	if fileName == "-" {
		return asm.Assemble("<stdin>", os.Stdin)
	}
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open source")
	}
	defer f.Close()
	return asm.Assemble(fileName, f)
}

// writeOut calls fn with a buffered writer to fileName, or stdout if fileName
// is "-".
func writeOut(fileName string, fn func(w io.Writer) error) (err error) {
	var f *os.File
	if fileName == "-" {
		f = os.Stdout
	} else {
		if f, err = os.Create(fileName); err != nil {
			return errors.Wrap(err, "create output")
		}
		defer func() {
			if e := f.Close(); err == nil {
				err = e
			}
		}()
	}
	w := bufio.NewWriter(f)
	if err = fn(w); err != nil {
		return err
	}
	return w.Flush()
}
