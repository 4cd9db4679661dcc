// Package driver executes a prepared graph.Prepared two ways: Cooperative
// runs every block on a single task in round-robin order, and Process runs
// each block in its own OS process connected by the pipes graph.Composite
// already created. See DESIGN.md for how each is grounded.
package driver

import (
	"sync"
	"sync/atomic"

	"github.com/flowrt/flowrt/block"
	"github.com/flowrt/flowrt/flowerr"
	"github.com/flowrt/flowrt/flowlog"
)

// Driver is the common lifecycle every execution strategy exposes.
type Driver interface {
	Start() error
	Wait() error
	Stop() error
	Status() bool
}

// Cooperative drives every block from a single goroutine, one round-robin
// pass at a time: call RunOnce on each block in dependency order, skip any
// block whose skip set was triggered by an idle upstream this pass, and
// stop the instant any block reports EOF or a block-runtime error.
type Cooperative struct {
	order    []block.Block
	skipSets map[block.Block]map[block.Block]struct{}

	once     sync.Once
	started  atomic.Bool
	stopping atomic.Bool
	stopCh   chan struct{}
	done     chan struct{}
	runErr   error
}

// NewCooperative builds a Cooperative driver over a prepared execution
// order and its precomputed skip sets.
func NewCooperative(order []block.Block, skipSets map[block.Block]map[block.Block]struct{}) *Cooperative {
	return &Cooperative{
		order:    order,
		skipSets: skipSets,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (d *Cooperative) Start() error {
	d.started.Store(true)
	go d.loop()
	return nil
}

func (d *Cooperative) loop() {
	defer func() {
		for _, b := range d.order {
			if err := b.Cleanup(); err != nil && d.runErr == nil {
				d.runErr = flowerr.BlockRuntime(b.Name(), err)
			}
		}
		close(d.done)
	}()

	flowlog.Lifecycle("cooperative driver started", "blocks", len(d.order))

	for {
		skip := map[block.Block]struct{}{}
		terminate := false

		for _, b := range d.order {
			if _, skipped := skip[b]; skipped {
				continue
			}

			outcome, err := b.RunOnce()
			if err != nil {
				d.runErr = flowerr.BlockRuntime(b.Name(), err)
				terminate = true
				break
			}

			switch outcome {
			case block.Produced:
			case block.Idle:
				for s := range d.skipSets[b] {
					skip[s] = struct{}{}
				}
			case block.EOF:
				flowlog.Lifecycle("block reached eof", "block", b.Name())
				terminate = true
			}

			if terminate {
				break
			}
		}

		if terminate {
			return
		}

		select {
		case <-d.stopCh:
			return
		default:
		}
	}
}

func (d *Cooperative) Wait() error {
	<-d.done
	return d.runErr
}

// Stop requests a graceful halt after the current pass finishes. It is
// idempotent and safe to call before Start (in which case the loop, once
// started, will run at most one more pass before exiting).
func (d *Cooperative) Stop() error {
	d.once.Do(func() {
		d.stopping.Store(true)
		close(d.stopCh)
	})
	return nil
}

func (d *Cooperative) Status() bool {
	if !d.started.Load() {
		return false
	}
	select {
	case <-d.done:
		return false
	default:
		return true
	}
}
