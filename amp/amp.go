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

// Package amp runs chains of amplifiers: copies of one Intcode program, each
// primed with a phase setting, where the output of each amplifier is the input
// of the next one.
//
// The first amplifier receives the signal 0 after its phase setting. In
// feedback mode, the output of the last amplifier is fed back into the first
// one until the chain terminates.
package amp

import (
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("intcode.amp")

// Errors returned by Run and RunConcurrent.
var (
	ErrNoPhases = errors.New("no phase settings")
	ErrNoOutput = errors.New("amplifier terminated without output")
	ErrStalled  = errors.New("amplifier waiting for more than one input per signal")
)

// Option configures a chain.
type Option func(*config)

type config struct {
	feedback bool
}

// Feedback enables or disables feedback mode.
func Feedback(enable bool) Option {
	return func(c *config) {
		c.feedback = enable
	}
}

func newConfig(opts []Option) config {
	var c config
	for _, o := range opts {
		o(&c)
	}
	return c
}

// chain returns one primed instance per phase.
func chain(program []vm.Cell, phases []int64) ([]*vm.Instance, error) {
	if len(phases) == 0 {
		return nil, ErrNoPhases
	}
	base, err := vm.New(program)
	if err != nil {
		return nil, err
	}
	amps := make([]*vm.Instance, len(phases))
	for k, p := range phases {
		amps[k] = base.Clone()
		amps[k].AddInput(vm.Int(p))
	}
	return amps, nil
}

// Run runs program as a chain of amplifiers, one per phase, and returns the
// last signal output by the last amplifier.
//
// Amplifiers run one after the other, each one until it outputs a signal. In
// feedback mode, the chain loops until one of the amplifiers terminates.
func Run(program []vm.Cell, phases []int64, opts ...Option) (vm.Cell, error) {
	cfg := newConfig(opts)
	amps, err := chain(program, phases)
	if err != nil {
		return vm.Cell{}, err
	}
	var (
		signal = vm.Int(0)
		last   vm.Cell
		seen   bool
	)
	for round := 0; ; round++ {
		for k, a := range amps {
			a.AddInput(signal)
			st, v, err := a.Run()
			if err != nil {
				return vm.Cell{}, errors.Wrapf(err, "amplifier %d", k)
			}
			switch st {
			case vm.Output:
				signal = v
			case vm.WaitForInput:
				return vm.Cell{}, errors.Wrapf(ErrStalled, "amplifier %d", k)
			case vm.Terminated:
				if !cfg.feedback || !seen {
					return vm.Cell{}, errors.Wrapf(ErrNoOutput, "amplifier %d", k)
				}
				log.Debugf("amplifier %d terminated in round %d", k, round)
				return last, nil
			}
		}
		last, seen = signal, true
		if !cfg.feedback {
			return last, nil
		}
	}
}

// Max tries every ordering of phases and returns the highest signal along with
// the phase ordering that produced it.
func Max(program []vm.Cell, phases []int64, opts ...Option) (best vm.Cell, order []int64, err error) {
	if len(phases) == 0 {
		return vm.Cell{}, nil, ErrNoPhases
	}
	first := true
	err = permute(append([]int64(nil), phases...), func(p []int64) error {
		v, err := Run(program, p, opts...)
		if err != nil {
			return errors.Wrapf(err, "phases %v", p)
		}
		if first || best.Less(v) {
			best, order, first = v, append(order[:0], p...), false
		}
		return nil
	})
	if err != nil {
		return vm.Cell{}, nil, err
	}
	log.Infof("best signal %v with phases %v", best, order)
	return best, order, nil
}

// permute calls fn for every permutation of a, using Heap's algorithm. fn must
// not retain its argument.
func permute(a []int64, fn func([]int64) error) error {
	c := make([]int, len(a))
	if err := fn(a); err != nil {
		return err
	}
	for k := 0; k < len(a); {
		if c[k] < k {
			if k%2 == 0 {
				a[0], a[k] = a[k], a[0]
			} else {
				a[c[k]], a[k] = a[k], a[c[k]]
			}
			if err := fn(a); err != nil {
				return err
			}
			c[k]++
			k = 0
		} else {
			c[k] = 0
			k++
		}
	}
	return nil
}
