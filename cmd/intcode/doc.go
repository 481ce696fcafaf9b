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

// The intcode command line tool runs and inspects Intcode programs.
//
// Usage:
//
//	intcode run [flags] program
//	intcode asm [-o file] source
//	intcode disasm [-o file] [--base addr] program
//	intcode amp [flags] program
//	intcode net [flags] program
//
// Programs are text files of comma separated integers. A file name of "-"
// reads from stdin.
//
// run executes a program in one of three I/O modes. In numeric mode, output
// values are printed one per line and input is read from the terminal with
// line editing, several comma separated values per line. In ascii mode,
// output values 0-127 are printed as text and each input line is sent as
// character codes followed by '\n'. In raw mode, the terminal is switched to
// raw input and every key press is sent as a value, translated through the
// [run.keys] table of the config file. Ctrl-C or Ctrl-D end a raw session.
//
//	-i, --input values	queue comma separated values before running
//	-l, --line text		queue a line of text before running (ascii mode)
//	-p, --patch addr=value	patch memory before running, e.g. -p 1=12 -p 2=2
//	--dump file		save the final memory image
//	--max-memory cells	maximum memory size
//
// asm and disasm convert between assembly source and program files. See
// package github.com/db47h/intcode/asm for the assembly syntax.
//
// amp runs a chain of amplifiers with the given --phases. With --feedback, the
// last output is fed back to the first amplifier until the chain halts;
// --concurrent runs amplifiers on separate goroutines and --search tries all
// phase orderings.
//
// net runs --nodes copies of a program on a packet network, with a NAT at
// address --nat. The --stop flag selects when to stop: on the first packet
// sent outside of the network, when the NAT sends the same Y value twice in a
// row, or never.
//
// Global flags:
//
//	--config file	settings file (default ./intcode.toml if it exists)
//	-v, --verbose	increase log verbosity, can be repeated
//	--log file	write logs to file
//	--debug		print full error traces
//
// Any flag can be given a default in the settings file:
//
//	[log]
//	verbosity = 1
//
//	[run]
//	mode = "raw"
//	patch = ["0=2"]
//
//	[run.keys]
//	a = -1
//	s = 0
//	d = 1
//
//	[net]
//	nodes = 50
//	stop = "repeat"
package main
