package graph

import (
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/flowrt/flowrt/block"
)

// Render formats a prepared graph's execution order and dependencies as a
// table, for debug output.
func (p *Prepared) Render() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Block", "Depends On", "Skips When Idle"})

	for i, b := range p.Blocks {
		t.AppendRow(table.Row{i, b.Name(), namesOf(p.Deps[b]), namesOfSet(p.SkipSets[b])})
	}

	return t.Render()
}

func namesOfSet(set map[block.Block]struct{}) string {
	names := make([]string, 0, len(set))
	for b := range set {
		names = append(names, b.Name())
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
