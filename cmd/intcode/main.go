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
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/kutil/util"
)

var log = commonlog.GetLogger("intcode.cmd")

var (
	cfg        = defaultConfig()
	configFile string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "intcode",
		Short:         "Intcode virtual machine and tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.load(configFile, cmd.Flags()); err != nil {
				return err
			}
			var path *string
			if cfg.Log.File != "" {
				path = &cfg.Log.File
			}
			commonlog.Configure(cfg.Log.Verbosity, path)
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "load settings from `file` (default ./"+defaultConfigFile+" if present)")
	pf.CountVarP(&cfg.Log.Verbosity, "verbose", "v", "increase log verbosity (can be repeated)")
	pf.StringVar(&cfg.Log.File, "log", "", "write logs to `file` instead of stderr")
	pf.BoolVar(&cfg.Log.Debug, "debug", false, "print full error traces")

	root.AddCommand(
		newRunCmd(),
		newAsmCmd(),
		newDisasmCmd(),
		newAmpCmd(),
		newNetCmd(),
	)
	return root
}

// loadProgram loads an Intcode program from a text file. If fileName is "-",
// the program is read from stdin.
func loadProgram(fileName string) ([]vm.Cell, error) {
	if fileName == "-" {
		return vm.Parse(os.Stdin)
	}
	return vm.Load(fileName)
}

// parseCells parses a list of comma separated values, e.g. from repeated
// command line flags.
func parseCells(list []string) ([]vm.Cell, error) {
	var out []vm.Cell
	for _, s := range list {
		vs, err := vm.ParseString(s)
		if err != nil {
			return nil, err
		}
		out = append(out, vs...)
	}
	return out, nil
}

// parsePatch parses an addr=value memory patch.
func parsePatch(s string) (vm.Option, error) {
	as, vs, ok := strings.Cut(s, "=")
	if !ok {
		return nil, errors.Errorf("invalid patch %q: expected addr=value", s)
	}
	a, err := vm.ParseCell(strings.TrimSpace(as))
	if err != nil {
		return nil, errors.Wrapf(err, "patch %q", s)
	}
	if !a.IsInt64() || a.Sign() < 0 || a.Int64() > int64(^uint(0)>>1) {
		return nil, errors.Errorf("patch %q: invalid address", s)
	}
	v, err := vm.ParseCell(strings.TrimSpace(vs))
	if err != nil {
		return nil, errors.Wrapf(err, "patch %q", s)
	}
	return vm.Patch(int(a.Int64()), v), nil
}

// interruptible returns a context cancelled on SIGINT.
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func atExit(err error) {
	if err == nil {
		util.Exit(0)
	}
	if cfg.Log.Debug {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	util.Exit(1)
}

func main() {
	atExit(newRootCmd().Execute())
}
