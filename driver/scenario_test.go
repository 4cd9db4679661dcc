package driver_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/flowrt/flowrt/driver"
	"github.com/flowrt/flowrt/examples/blocks"
	"github.com/flowrt/flowrt/graph"
)

var _ = Describe("Cooperative over a real graph", func() {
	It("mixes two finite sources through a real Multiply into a real Sink, then cleans up", func() {
		g := graph.New("mixer")
		a := blocks.NewSource("a", []float32{1, 2, 3}, 3, 1000)
		b := blocks.NewSource("b", []float32{10, 10, 10}, 3, 1000)
		mul := blocks.NewMultiply("mul")
		sink := blocks.NewSink("sink")

		Expect(g.Connect(a, "out", mul, "a")).To(Succeed())
		Expect(g.Connect(b, "out", mul, "b")).To(Succeed())
		Expect(g.Connect(mul, "out", sink, "in")).To(Succeed())

		prepared, err := g.PrepareToRun()
		Expect(err).NotTo(HaveOccurred())
		Expect(prepared.Blocks).To(HaveLen(4))

		d := driver.NewCooperative(prepared.Blocks, prepared.SkipSets)
		Expect(d.Start()).To(Succeed())
		Expect(d.Wait()).To(Succeed())

		Expect(sink.Collected).To(Equal([]float32{10, 20, 30}))
	})
})
