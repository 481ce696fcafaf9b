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

	"github.com/db47h/intcode/network"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// stopper returns a network monitor for the given stop condition:
//
//	first	stop on the first packet sent outside of the network
//	repeat	stop when the NAT sends the same Y value twice in a row
//	never	run until interrupted
//
// The monitor calls report for every packet and stores the packet that
// stopped the network in last.
func stopper(mode string, nat int, report func(network.Packet), last *network.Packet) (network.Monitor, error) {
	var (
		prevY   vm.Cell
		natSent bool
	)
	switch mode {
	case "first":
		return func(p network.Packet) bool {
			report(p)
			*last = p
			return true
		}, nil
	case "repeat":
		return func(p network.Packet) bool {
			report(p)
			if p.Src != nat {
				return false
			}
			if natSent && p.Y == prevY {
				*last = p
				return true
			}
			prevY, natSent = p.Y, true
			return false
		}, nil
	case "never":
		return func(p network.Packet) bool {
			report(p)
			return false
		}, nil
	}
	return nil, errors.Errorf("invalid stop condition %q", mode)
}

func newNetCmd() *cobra.Command {
	c := &cfg.Net
	cmd := &cobra.Command{
		Use:   "net [flags] program",
		Short: "Run a program on a network of Intcode computers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := loadProgram(args[0])
			if err != nil {
				return err
			}
			var opts []network.Option
			if c.NAT >= 0 {
				opts = append(opts, network.NAT(c.NAT))
			}
			n, err := network.New(prog, c.Nodes, opts...)
			if err != nil {
				return err
			}
			var last network.Packet
			m, err := stopper(c.Stop, c.NAT, func(p network.Packet) {
				log.Debugf("%v", p)
			}, &last)
			if err != nil {
				return err
			}
			ctx, cancel := interruptible()
			defer cancel()
			err = n.Run(ctx, m)
			if c.Stop == "never" && errors.Cause(err) == context.Canceled {
				return nil
			}
			if err != nil {
				return err
			}
			log.Infof("stopped after %d rounds", n.Rounds())
			fmt.Println(last.Y)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVarP(&c.Nodes, "nodes", "n", c.Nodes, "number of nodes")
	f.IntVar(&c.NAT, "nat", c.NAT, "NAT `address`, -1 to disable")
	f.StringVar(&c.Stop, "stop", c.Stop, "stop `condition`: first, repeat or never")
	return cmd
}
