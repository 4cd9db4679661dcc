package graph

import (
	"github.com/flowrt/flowrt/block"
	"github.com/flowrt/flowrt/flowerr"
	"github.com/flowrt/flowrt/port"
)

// crawl discovers every block reachable from c's own recorded connections by
// following bound pipes outward — an input port's pipe leads to its source
// block, an output port's fan-out pipes lead to their destination blocks —
// repeating until no new block turns up. This is what makes aliasing
// transparent: a nested composite wires its own blocks through its own
// Connect calls, which c never sees directly, but the pipes those calls
// created are still reachable by walking the ports of whatever block c's
// own connections first reveal.
//
// The traversal itself only ever consumes slices (c.connOrder, and each
// block's InputPorts()/OutputPorts(), themselves populated in declaration
// order), so the returned order is reproducible across runs of the same
// program — it becomes the insertion-order tie-break for topological sort.
func (c *Composite) crawl() (order []block.Block, conns map[*port.InputPort]*port.OutputPort, err error) {
	conns = map[*port.InputPort]*port.OutputPort{}
	seen := map[block.Block]bool{}
	var queue []block.Block

	ensure := func(owner port.Owner) (block.Block, error) {
		b, ok := owner.(block.Block)
		if !ok {
			return nil, flowerr.Topology("port owner %v does not implement block.Block", owner)
		}
		if !seen[b] {
			seen[b] = true
			order = append(order, b)
			queue = append(queue, b)
		}
		return b, nil
	}

	for _, edge := range c.connOrder {
		conns[edge.in] = edge.out
		if _, err := ensure(edge.in.Owner()); err != nil {
			return nil, nil, err
		}
		if _, err := ensure(edge.out.Owner()); err != nil {
			return nil, nil, err
		}
	}

	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]

		for _, in := range b.InputPorts() {
			p := in.Pipe()
			if p == nil {
				continue
			}
			out := p.Src()
			conns[in] = out
			if _, err := ensure(out.Owner()); err != nil {
				return nil, nil, err
			}
		}

		for _, out := range b.OutputPorts() {
			for _, p := range out.Pipes() {
				in := p.Dst()
				conns[in] = out
				if _, err := ensure(in.Owner()); err != nil {
					return nil, nil, err
				}
			}
		}
	}

	return order, conns, nil
}
