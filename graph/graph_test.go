package graph_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/flowrt/flowrt/block"
	"github.com/flowrt/flowrt/datatype"
	"github.com/flowrt/flowrt/examples/blocks"
	"github.com/flowrt/flowrt/flowerr"
	"github.com/flowrt/flowrt/graph"
	"github.com/flowrt/flowrt/port"
)

// polySig is a two-input block with two candidate signatures, used to drive
// type-differentiation scenarios without needing a full DSP implementation.
type polySig struct {
	*block.Base
	a, b *port.InputPort
	out  *port.OutputPort
}

func newPolySig(name string) *polySig {
	p := &polySig{Base: block.NewBase(name)}
	p.a = p.AddInput(p, "a")
	p.b = p.AddInput(p, "b")
	p.out = p.AddOutput(p, "out")
	return p
}

func (p *polySig) Signatures() []block.Signature {
	return []block.Signature{
		{
			Inputs: []block.PortSpec{
				{Name: "a", Type: datatype.Complex},
				{Name: "b", Type: datatype.Complex},
			},
			Outputs: []block.PortSpec{{Name: "out", Type: datatype.Complex}},
		},
		{
			Inputs: []block.PortSpec{
				{Name: "a", Type: datatype.Real},
				{Name: "b", Type: datatype.Real},
			},
			Outputs: []block.PortSpec{{Name: "out", Type: datatype.Real}},
		},
	}
}

func (p *polySig) Differentiate(inputTypes []datatype.DataType) error {
	return p.DifferentiateFrom(p.Signatures(), inputTypes)
}
func (p *polySig) Rate() float64                { return p.a.Rate() }
func (p *polySig) Initialize() error            { return nil }
func (p *polySig) RunOnce() (block.Outcome, error) { return block.EOF, nil }
func (p *polySig) Run(ctx context.Context) error { return block.RunLoop(ctx, p) }

// complexSource emits a single complex-typed vector, for type-mismatch
// scenarios that need a non-Real producer.
type complexSource struct {
	*block.Base
	out *port.OutputPort
	did bool
}

func newComplexSource(name string) *complexSource {
	s := &complexSource{Base: block.NewBase(name)}
	s.out = s.AddOutput(s, "out")
	s.out.SetDataType(datatype.Complex)
	return s
}

func (s *complexSource) Signatures() []block.Signature {
	return []block.Signature{{Outputs: []block.PortSpec{{Name: "out", Type: datatype.Complex}}}}
}
func (s *complexSource) Differentiate(inputTypes []datatype.DataType) error {
	return s.DifferentiateFrom(s.Signatures(), inputTypes)
}
func (s *complexSource) Rate() float64     { return 1000 }
func (s *complexSource) Initialize() error { return nil }
func (s *complexSource) RunOnce() (block.Outcome, error) {
	if s.did {
		return block.EOF, nil
	}
	s.did = true
	_ = s.out.Write(datatype.NewVector(datatype.Complex, 1))
	return block.Produced, nil
}
func (s *complexSource) Run(ctx context.Context) error { return block.RunLoop(ctx, s) }

var _ = Describe("Composite", func() {
	It("wires a two-source mixer end to end", func() {
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
	})

	It("rejects a second connection to an already-bound input", func() {
		g := graph.New("double-connect")
		a := blocks.NewSource("a", []float32{1}, 1, 1000)
		b := blocks.NewSource("b", []float32{2}, 1, 1000)
		sink := blocks.NewSink("sink")

		Expect(g.Connect(a, "out", sink, "in")).To(Succeed())

		err := g.Connect(b, "out", sink, "in")
		Expect(err).To(HaveOccurred())
		var fe *flowerr.Error
		Expect(err).To(BeAssignableToTypeOf(fe))
		Expect(err.(*flowerr.Error).Kind).To(Equal(flowerr.KindMalformedConnection))
	})

	It("fails PrepareToRun with a rate mismatch naming the offending block", func() {
		g := graph.New("rate-mismatch")
		a := blocks.NewSource("a", []float32{1, 2, 3}, 3, 1000)
		b := blocks.NewSource("b", []float32{1, 2, 3}, 3, 2000)
		mul := blocks.NewMultiply("mul")
		sink := blocks.NewSink("sink")

		Expect(g.Connect(a, "out", mul, "a")).To(Succeed())
		Expect(g.Connect(b, "out", mul, "b")).To(Succeed())
		Expect(g.Connect(mul, "out", sink, "in")).To(Succeed())

		_, err := g.PrepareToRun()
		Expect(err).To(HaveOccurred())
		Expect(err.(*flowerr.Error).Kind).To(Equal(flowerr.KindRateMismatch))
		Expect(err.(*flowerr.Error).Block).To(Equal("mul"))
	})

	It("fails PrepareToRun with a type mismatch naming the offending block", func() {
		g := graph.New("type-mismatch")
		a := newComplexSource("a")
		b := blocks.NewSource("b", []float32{1, 2, 3}, 3, 1000)
		mul := newPolySig("mul")

		Expect(g.Connect(a, "out", mul, "a")).To(Succeed())
		Expect(g.Connect(b, "out", mul, "b")).To(Succeed())

		_, err := g.PrepareToRun()
		Expect(err).To(HaveOccurred())
		Expect(err.(*flowerr.Error).Kind).To(Equal(flowerr.KindTypeMismatch))
		Expect(err.(*flowerr.Error).Block).To(Equal("mul"))
	})

	It("resolves an aliased composite input to both children when a parent connects to it", func() {
		c := graph.New("mixer-composite")
		first := blocks.NewSink("first")
		second := blocks.NewSink("second")
		c.AddTypeSignature(
			[]block.PortSpec{{Name: "x", Type: datatype.Real}},
			nil,
		)
		Expect(c.Connect(c, "x", first, "in")).To(Succeed())
		Expect(c.Connect(c, "x", second, "in")).To(Succeed())

		top := graph.New("top")
		src := blocks.NewSource("src", []float32{1, 2, 3}, 3, 1000)
		Expect(top.Connect(src, "out", c, "x")).To(Succeed())

		prepared, err := top.PrepareToRun()
		Expect(err).NotTo(HaveOccurred())
		Expect(prepared.Blocks).To(HaveLen(3))
	})
})
