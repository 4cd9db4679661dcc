// Command flowctl is a thin example runner: it wires a small two-source
// mixer graph and runs it under whichever driver flowcfg selects. A full
// CLI (flag parsing, block registry, file formats) is out of scope for this
// engine; this program exists only to give the engine a runnable entry
// point.
package main

import (
	"fmt"
	"os"

	"github.com/tebeka/atexit"

	"github.com/flowrt/flowrt/driver"
	"github.com/flowrt/flowrt/examples/blocks"
	"github.com/flowrt/flowrt/flowcfg"
	"github.com/flowrt/flowrt/flowlog"
	"github.com/flowrt/flowrt/graph"
)

func buildGraph() (*graph.Composite, *blocks.Sink) {
	g := graph.New("flowctl")

	srcA := blocks.NewSource("srcA", []float32{1, 2, 3, 4, 5, 6, 7, 8}, 2, 8000)
	srcB := blocks.NewSource("srcB", []float32{1, 1, 1, 1, 1, 1, 1, 1}, 2, 8000)
	mul := blocks.NewMultiply("mul")
	sink := blocks.NewSink("sink")

	must(g.Connect(srcA, "out", mul, "a"))
	must(g.Connect(srcB, "out", mul, "b"))
	must(g.Connect(mul, "out", sink, "in"))

	return g, sink
}

func must(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "flowctl:", err)
		os.Exit(1)
	}
}

func main() {
	g, sink := buildGraph()

	prepared, err := g.PrepareToRun()
	must(err)

	// The process driver's children re-exec this same binary; give them a
	// chance to take over before this process does anything else.
	if driver.RunChild(prepared) {
		return
	}

	cfg, err := flowcfg.Load("flowctl.yaml")
	must(err)
	flowlog.SetDebug(cfg.Debug)

	if flowlog.Debug() {
		fmt.Println(prepared.Render())
	}

	session := driver.NewSession(prepared, cfg)
	must(session.Run())

	fmt.Println(sink.Collected)

	atexit.Exit(0)
}
