package graph

import (
	"sort"

	"github.com/flowrt/flowrt/block"
	"github.com/flowrt/flowrt/flowerr"
	"github.com/flowrt/flowrt/port"
)

// analysis is the computed dependency structure for one prepared graph: a
// topological execution order, the forward and reverse dependency edges it
// was derived from, and the skip set each block implies when it goes idle.
type analysis struct {
	order       []block.Block
	deps        map[block.Block][]block.Block
	reverseDeps map[block.Block][]block.Block
	skipSets    map[block.Block]map[block.Block]struct{}
}

// analyze builds the dependency graph over blocks (a deterministic,
// insertion-ordered slice from crawl) and conns (input -> source output),
// topologically sorts it with insertion order as the tie-break, and derives
// each block's skip set.
func analyze(blocks []block.Block, conns map[*port.InputPort]*port.OutputPort) (*analysis, error) {
	index := make(map[block.Block]int, len(blocks))
	for i, b := range blocks {
		index[b] = i
	}

	deps := make(map[block.Block][]block.Block, len(blocks))
	reverseDeps := make(map[block.Block][]block.Block, len(blocks))
	for _, b := range blocks {
		deps[b] = nil
		reverseDeps[b] = nil
	}

	type edgeKey struct{ src, dst block.Block }
	seenEdge := map[edgeKey]bool{}

	for in, out := range conns {
		srcB, ok := out.Owner().(block.Block)
		if !ok {
			return nil, flowerr.Topology("output port %q owner is not a block", out.PortName())
		}
		dstB, ok := in.Owner().(block.Block)
		if !ok {
			return nil, flowerr.Topology("input port %q owner is not a block", in.PortName())
		}
		key := edgeKey{src: srcB, dst: dstB}
		if seenEdge[key] {
			continue
		}
		seenEdge[key] = true
		deps[dstB] = append(deps[dstB], srcB)
		reverseDeps[srcB] = append(reverseDeps[srcB], dstB)
	}

	for _, b := range blocks {
		byInsertion(deps[b], index)
		byInsertion(reverseDeps[b], index)
	}

	order, err := topoSort(blocks, deps, index)
	if err != nil {
		return nil, err
	}

	return &analysis{
		order:       order,
		deps:        deps,
		reverseDeps: reverseDeps,
		skipSets:    computeSkipSets(blocks, reverseDeps),
	}, nil
}

func byInsertion(bs []block.Block, index map[block.Block]int) {
	sort.SliceStable(bs, func(i, j int) bool { return index[bs[i]] < index[bs[j]] })
}

// topoSort repeatedly picks the earliest-inserted remaining block whose
// dependencies have all already been placed. O(n^2), which is fine at the
// block counts this engine is meant to run (tens, not millions).
func topoSort(blocks []block.Block, deps map[block.Block][]block.Block, index map[block.Block]int) ([]block.Block, error) {
	placed := make(map[block.Block]bool, len(blocks))
	remaining := append([]block.Block(nil), blocks...)
	order := make([]block.Block, 0, len(blocks))

	for len(remaining) > 0 {
		pick := -1
		for i, b := range remaining {
			ready := true
			for _, d := range deps[b] {
				if !placed[d] {
					ready = false
					break
				}
			}
			if ready {
				pick = i
				break
			}
		}
		if pick < 0 {
			return nil, flowerr.Topology("cycle detected among %d block(s): %s", len(remaining), namesOf(remaining))
		}
		b := remaining[pick]
		order = append(order, b)
		placed[b] = true
		remaining = append(remaining[:pick], remaining[pick+1:]...)
	}

	return order, nil
}

func namesOf(bs []block.Block) string {
	s := ""
	for i, b := range bs {
		if i > 0 {
			s += ", "
		}
		s += b.Name()
	}
	return s
}

// computeSkipSets derives, for every block b, the set of blocks that can
// never do useful work in the same round if b goes idle: b's transitive
// dependents, reached by walking reverseDeps from b.
func computeSkipSets(blocks []block.Block, reverseDeps map[block.Block][]block.Block) map[block.Block]map[block.Block]struct{} {
	skip := make(map[block.Block]map[block.Block]struct{}, len(blocks))
	for _, b := range blocks {
		visited := map[block.Block]struct{}{}
		var dfs func(block.Block)
		dfs = func(cur block.Block) {
			for _, next := range reverseDeps[cur] {
				if _, ok := visited[next]; ok {
					continue
				}
				visited[next] = struct{}{}
				dfs(next)
			}
		}
		dfs(b)
		skip[b] = visited
	}
	return skip
}
