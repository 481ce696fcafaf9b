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

package amp

import (
	"context"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// RunConcurrent is like Run but runs each amplifier in its own goroutine,
// connected to the next one by a channel. Amplifiers are not limited to one
// output per input.
//
// The chain stops when the last amplifier terminates, when any amplifier
// fails, or when ctx is cancelled.
func RunConcurrent(ctx context.Context, program []vm.Cell, phases []int64, opts ...Option) (vm.Cell, error) {
	cfg := newConfig(opts)
	amps, err := chain(program, phases)
	if err != nil {
		return vm.Cell{}, err
	}

	// Cancelled once the last amplifier is done so that upstream amplifiers
	// blocked on a channel return.
	runCtx, finish := context.WithCancel(ctx)
	defer finish()
	g, gctx := errgroup.WithContext(runCtx)

	n := len(amps)
	links := make([]chan vm.Cell, n)
	dones := make([]chan struct{}, n)
	for k := range links {
		links[k] = make(chan vm.Cell, 1)
		dones[k] = make(chan struct{})
	}
	links[0] <- vm.Int(0)

	// the first amplifier has no upstream outside of feedback mode.
	closed := make(chan struct{})
	close(closed)

	var (
		last vm.Cell
		seen bool
	)
	for k, a := range amps {
		k, a := k, a
		in, done := links[k], dones[k]
		upstream := closed
		if k > 0 {
			upstream = dones[k-1]
		} else if cfg.feedback {
			upstream = dones[n-1]
		}
		var out chan vm.Cell
		var downstream chan struct{}
		if k < n-1 {
			out, downstream = links[k+1], dones[k+1]
		} else if cfg.feedback {
			out, downstream = links[0], dones[0]
		}
		g.Go(func() error {
			defer close(done)
			for {
				st, v, err := a.Run()
				if err != nil {
					return errors.Wrapf(err, "amplifier %d", k)
				}
				switch st {
				case vm.Output:
					if k == n-1 {
						last, seen = v, true
					}
					if out == nil {
						continue
					}
					select {
					case out <- v:
					case <-downstream:
						// dropped
					case <-gctx.Done():
						return ctx.Err()
					}
				case vm.WaitForInput:
					select {
					case v := <-in:
						a.AddInput(v)
					case <-upstream:
						select {
						case v := <-in:
							a.AddInput(v)
						default:
							return errors.Wrapf(ErrStalled, "amplifier %d", k)
						}
					case <-gctx.Done():
						return ctx.Err()
					}
				case vm.Terminated:
					log.Debugf("amplifier %d terminated", k)
					if k == n-1 {
						finish()
					}
					return nil
				}
			}
		})
	}
	if err = g.Wait(); err != nil {
		return vm.Cell{}, err
	}
	if !seen {
		return vm.Cell{}, errors.Wrapf(ErrNoOutput, "amplifier %d", n-1)
	}
	return last, nil
}
