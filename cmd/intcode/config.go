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
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// defaultConfigFile is loaded from the current directory when --config is not
// set and the file exists.
const defaultConfigFile = "intcode.toml"

type logConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
	Debug     bool   `toml:"debug"`
}

type runConfig struct {
	Mode      string           `toml:"mode"`
	MaxMemory int              `toml:"max_memory"`
	Input     []string         `toml:"input"`
	Lines     []string         `toml:"lines"`
	Patch     []string         `toml:"patch"`
	Dump      string           `toml:"dump"`
	Prompt    string           `toml:"prompt"`
	History   string           `toml:"history"`
	Keys      map[string]int64 `toml:"keys"`
}

type ampConfig struct {
	Phases     []int64 `toml:"phases"`
	Feedback   bool    `toml:"feedback"`
	Concurrent bool    `toml:"concurrent"`
	Search     bool    `toml:"search"`
}

type netConfig struct {
	Nodes int    `toml:"nodes"`
	NAT   int    `toml:"nat"`
	Stop  string `toml:"stop"`
}

type config struct {
	Log logConfig `toml:"log"`
	Run runConfig `toml:"run"`
	Amp ampConfig `toml:"amp"`
	Net netConfig `toml:"net"`
}

func defaultConfig() config {
	return config{
		Run: runConfig{
			Mode:   "numeric",
			Prompt: "? ",
		},
		Amp: ampConfig{
			Phases: []int64{0, 1, 2, 3, 4},
		},
		Net: netConfig{
			Nodes: 50,
			NAT:   255,
			Stop:  "first",
		},
	}
}

// binding ties a config file key to the command line flag that overrides it.
type binding struct {
	key  []string
	flag string
	set  func(dst, src *config)
}

var bindings = [...]binding{
	{[]string{"log", "verbosity"}, "verbose", func(d, s *config) { d.Log.Verbosity = s.Log.Verbosity }},
	{[]string{"log", "file"}, "log", func(d, s *config) { d.Log.File = s.Log.File }},
	{[]string{"log", "debug"}, "debug", func(d, s *config) { d.Log.Debug = s.Log.Debug }},
	{[]string{"run", "mode"}, "mode", func(d, s *config) { d.Run.Mode = s.Run.Mode }},
	{[]string{"run", "max_memory"}, "max-memory", func(d, s *config) { d.Run.MaxMemory = s.Run.MaxMemory }},
	{[]string{"run", "input"}, "input", func(d, s *config) { d.Run.Input = s.Run.Input }},
	{[]string{"run", "lines"}, "line", func(d, s *config) { d.Run.Lines = s.Run.Lines }},
	{[]string{"run", "patch"}, "patch", func(d, s *config) { d.Run.Patch = s.Run.Patch }},
	{[]string{"run", "dump"}, "dump", func(d, s *config) { d.Run.Dump = s.Run.Dump }},
	{[]string{"run", "prompt"}, "prompt", func(d, s *config) { d.Run.Prompt = s.Run.Prompt }},
	{[]string{"run", "history"}, "history", func(d, s *config) { d.Run.History = s.Run.History }},
	{[]string{"run", "keys"}, "", func(d, s *config) { d.Run.Keys = s.Run.Keys }},
	{[]string{"amp", "phases"}, "phases", func(d, s *config) { d.Amp.Phases = s.Amp.Phases }},
	{[]string{"amp", "feedback"}, "feedback", func(d, s *config) { d.Amp.Feedback = s.Amp.Feedback }},
	{[]string{"amp", "concurrent"}, "concurrent", func(d, s *config) { d.Amp.Concurrent = s.Amp.Concurrent }},
	{[]string{"amp", "search"}, "search", func(d, s *config) { d.Amp.Search = s.Amp.Search }},
	{[]string{"net", "nodes"}, "nodes", func(d, s *config) { d.Net.Nodes = s.Net.Nodes }},
	{[]string{"net", "nat"}, "nat", func(d, s *config) { d.Net.NAT = s.Net.NAT }},
	{[]string{"net", "stop"}, "stop", func(d, s *config) { d.Net.Stop = s.Net.Stop }},
}

// load reads the config file fileName into c. Values set on the command line
// take precedence over the ones from the file. If fileName is empty, the
// default config file is used if present.
func (c *config) load(fileName string, flags *pflag.FlagSet) error {
	if fileName == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return nil
		}
		fileName = defaultConfigFile
	}
	var file config
	md, err := toml.DecodeFile(fileName, &file)
	if err != nil {
		return errors.Wrapf(err, "load config %s", fileName)
	}
	if u := md.Undecoded(); len(u) > 0 {
		return errors.Errorf("%s: unknown key %s", fileName, u[0])
	}
	for _, b := range bindings {
		if !md.IsDefined(b.key...) || (b.flag != "" && flags.Changed(b.flag)) {
			continue
		}
		b.set(c, &file)
	}
	return nil
}
