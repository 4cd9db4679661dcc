package graph

import (
	"github.com/flowrt/flowrt/block"
	"github.com/flowrt/flowrt/datatype"
	"github.com/flowrt/flowrt/flowerr"
	"github.com/flowrt/flowrt/flowlog"
)

// Prepared is the output of PrepareToRun: blocks in an order a driver can
// execute (every block's dependencies precede it), plus the dependency and
// skip-set structure the cooperative driver needs to propagate idleness.
type Prepared struct {
	Blocks   []block.Block
	Deps     map[block.Block][]block.Block
	SkipSets map[block.Block]map[block.Block]struct{}
}

// PrepareToRun runs the full construction-to-execution pipeline in a fixed
// staged order: crawl the pipe graph to its fixed point, validate every
// discovered input is bound, topologically order the blocks, differentiate
// each block's types, propagate and check rates, and initialize every
// block. Any failure aborts before a single block runs. One small private
// method per concern, called in a fixed sequence from this public entry
// point.
func (c *Composite) PrepareToRun() (*Prepared, error) {
	blocks, conns, err := c.crawl()
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, flowerr.Topology("composite %q has no connected blocks", c.name)
	}

	if err := validateInputsConnected(blocks); err != nil {
		return nil, err
	}

	an, err := analyze(blocks, conns)
	if err != nil {
		return nil, err
	}

	if err := differentiateTypes(an.order); err != nil {
		return nil, err
	}

	if err := resolveRates(an.order); err != nil {
		return nil, err
	}

	if err := initializeAll(an.order); err != nil {
		return nil, err
	}

	flowlog.Lifecycle("graph prepared", "composite", c.name, "blocks", len(an.order))

	return &Prepared{Blocks: an.order, Deps: an.deps, SkipSets: an.skipSets}, nil
}

func validateInputsConnected(blocks []block.Block) error {
	for _, b := range blocks {
		for _, in := range b.InputPorts() {
			if in.Pipe() == nil {
				return flowerr.Topology("input %q of block %q is never connected", in.PortName(), b.Name())
			}
		}
	}
	return nil
}

// differentiateTypes calls Differentiate on each block in dependency order,
// so that by the time a block's turn comes, every pipe feeding it already
// carries a resolved source type.
func differentiateTypes(order []block.Block) error {
	for _, b := range order {
		ins := b.InputPorts()
		inputTypes := make([]datatype.DataType, len(ins))
		for i, in := range ins {
			inputTypes[i] = in.Pipe().GetDataType()
		}

		if err := b.Differentiate(inputTypes); err != nil {
			return flowerr.TypeMismatch(b.Name(), err)
		}
		flowlog.Topology("differentiated block", "block", b.Name())
	}
	return nil
}

func resolveRates(order []block.Block) error {
	for _, b := range order {
		ins := b.InputPorts()
		if len(ins) > 0 {
			first := ins[0].Pipe().GetRate()
			for _, in := range ins[1:] {
				r := in.Pipe().GetRate()
				if r != first {
					return flowerr.RateMismatch(b.Name(), "inputs disagree on rate: %v vs %v", first, r)
				}
			}
		}

		rate := b.Rate()
		for _, out := range b.OutputPorts() {
			out.SetRate(rate)
		}
	}
	return nil
}

func initializeAll(order []block.Block) error {
	for _, b := range order {
		if err := b.Initialize(); err != nil {
			return flowerr.BlockRuntime(b.Name(), err)
		}
		flowlog.Lifecycle("initialized block", "block", b.Name())
	}
	return nil
}
