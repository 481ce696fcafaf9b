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
	"fmt"

	"github.com/db47h/intcode/amp"
	"github.com/db47h/intcode/vm"
	"github.com/spf13/cobra"
)

func newAmpCmd() *cobra.Command {
	c := &cfg.Amp
	cmd := &cobra.Command{
		Use:   "amp [flags] program",
		Short: "Run a program as a chain of amplifiers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := loadProgram(args[0])
			if err != nil {
				return err
			}
			opts := []amp.Option{amp.Feedback(c.Feedback)}
			if c.Search {
				best, order, err := amp.Max(prog, c.Phases, opts...)
				if err != nil {
					return err
				}
				fmt.Printf("%v %v\n", best, order)
				return nil
			}
			var v vm.Cell
			if c.Concurrent {
				ctx, cancel := interruptible()
				defer cancel()
				v, err = amp.RunConcurrent(ctx, prog, c.Phases, opts...)
			} else {
				v, err = amp.Run(prog, c.Phases, opts...)
			}
			if err != nil {
				return err
			}
			fmt.Println(v)
			return nil
		},
	}
	f := cmd.Flags()
	f.Int64SliceVar(&c.Phases, "phases", c.Phases, "phase settings, one per amplifier")
	f.BoolVar(&c.Feedback, "feedback", false, "loop the last amplifier output back to the first")
	f.BoolVar(&c.Concurrent, "concurrent", false, "run each amplifier in its own goroutine")
	f.BoolVar(&c.Search, "search", false, "try all phase orderings and print the best signal")
	return cmd
}
