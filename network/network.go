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

// Package network runs a network of Intcode computers exchanging packets.
//
// Each node is a copy of the same program. On boot, node k receives its
// network address k as its first input. Nodes then send packets as three
// consecutive output values: destination address, X and Y. A packet sent to a
// node is appended to that node's input queue as X then Y. A node that asks
// for input with an empty queue receives -1.
//
// Nodes are scheduled round robin in a single goroutine. During its turn, a
// node runs until it asks for input a second time with an empty queue.
//
// Packets sent to addresses outside of the network are handed to a Monitor.
// An optional NAT can be attached to such an address: it keeps the last
// packet it received and, whenever a full round goes by with every node idle,
// it sends that packet to node 0.
package network

import (
	"context"
	"fmt"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("intcode.network")

// NoInput is the value received by a node reading from an empty queue.
var NoInput = vm.Int(-1)

// Errors returned by Network methods.
var (
	ErrNodeTerminated = errors.New("node terminated")
	ErrNoNodes        = errors.New("network must have at least one node")
	ErrNATAddress     = errors.New("NAT address collides with a node address")
)

// Packet is a single network packet.
type Packet struct {
	Src  int
	Dst  vm.Cell
	X, Y vm.Cell
}

func (p Packet) String() string {
	return fmt.Sprintf("%d -> %v (%v, %v)", p.Src, p.Dst, p.X, p.Y)
}

// A Monitor is called for every packet sent to an address outside of the
// network, including packets sent to the NAT, and for every packet sent by the
// NAT. Returning true stops the network.
type Monitor func(p Packet) (stop bool)

type node struct {
	*vm.Instance
	buf []vm.Cell
}

// Network is a network of Intcode computers.
type Network struct {
	nodes  []node
	nat    int
	natPkt *Packet
	rounds int
}

// Option configures a Network.
type Option func(*Network) error

// NAT attaches a NAT at the given address.
func NAT(addr int) Option {
	return func(n *Network) error {
		if addr >= 0 && addr < len(n.nodes) {
			return errors.Wrapf(ErrNATAddress, "NAT address %d", addr)
		}
		n.nat = addr
		return nil
	}
}

// New returns a new network of size nodes running program.
func New(program []vm.Cell, size int, opts ...Option) (*Network, error) {
	if size <= 0 {
		return nil, ErrNoNodes
	}
	base, err := vm.New(program)
	if err != nil {
		return nil, err
	}
	n := &Network{nodes: make([]node, size), nat: -1}
	for k := range n.nodes {
		i := base.Clone()
		i.AddInput(vm.Int(int64(k)))
		n.nodes[k].Instance = i
	}
	for _, o := range opts {
		if err = o(n); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// Size returns the number of nodes in the network.
func (n *Network) Size() int { return len(n.nodes) }

// Node returns the Intcode instance of node addr.
func (n *Network) Node(addr int) *vm.Instance { return n.nodes[addr].Instance }

// Rounds returns the number of scheduling rounds completed so far.
func (n *Network) Rounds() int { return n.rounds }

// NATPacket returns the last packet received by the NAT.
func (n *Network) NATPacket() (Packet, bool) {
	if n.natPkt == nil {
		return Packet{}, false
	}
	return *n.natPkt, true
}

func (n *Network) nodeAddr(dst vm.Cell) (int, bool) {
	if !dst.IsInt64() {
		return 0, false
	}
	a := dst.Int64()
	if a < 0 || a >= int64(len(n.nodes)) {
		return 0, false
	}
	return int(a), true
}

// route delivers p and reports whether the monitor asked to stop.
func (n *Network) route(p Packet, m Monitor) bool {
	if k, ok := n.nodeAddr(p.Dst); ok {
		n.nodes[k].AddInput(p.X, p.Y)
		return false
	}
	if n.nat >= 0 && p.Dst == vm.Int(int64(n.nat)) {
		pkt := p
		n.natPkt = &pkt
	}
	return m(p)
}

// turn runs node k until it asks for input twice with an empty queue. It
// reports whether the node was idle, that is it started with an empty queue
// and sent nothing.
func (n *Network) turn(k int, m Monitor) (idle, stop bool, err error) {
	nd := &n.nodes[k]
	idle = nd.Pending() == 0
	polled := false
	for {
		st, v, err := nd.Run()
		if err != nil {
			return false, false, errors.Wrapf(err, "node %d", k)
		}
		switch st {
		case vm.Output:
			nd.buf = append(nd.buf, v)
			if len(nd.buf) < 3 {
				continue
			}
			p := Packet{Src: k, Dst: nd.buf[0], X: nd.buf[1], Y: nd.buf[2]}
			nd.buf = nd.buf[:0]
			idle = false
			if n.route(p, m) {
				return false, true, nil
			}
		case vm.WaitForInput:
			if polled {
				return idle, false, nil
			}
			polled = true
			nd.AddInput(NoInput)
		case vm.Terminated:
			return false, false, errors.Wrapf(ErrNodeTerminated, "node %d", k)
		}
	}
}

// Run runs the network until m returns true, ctx is cancelled, or a node
// fails or terminates. Run can be called again after m stopped the network.
func (n *Network) Run(ctx context.Context, m Monitor) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		idle := true
		for k := range n.nodes {
			i, stop, err := n.turn(k, m)
			if err != nil || stop {
				return err
			}
			idle = idle && i
		}
		n.rounds++
		if !idle || n.natPkt == nil {
			continue
		}
		p := Packet{Src: n.nat, Dst: vm.Int(0), X: n.natPkt.X, Y: n.natPkt.Y}
		log.Debugf("round %d: network idle, NAT sends %v", n.rounds, p)
		n.nodes[0].AddInput(p.X, p.Y)
		if m(p) {
			return nil
		}
	}
}
