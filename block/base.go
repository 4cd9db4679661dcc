package block

import (
	"fmt"
	"os"

	"github.com/flowrt/flowrt/datatype"
	"github.com/flowrt/flowrt/port"
)

// Base is the embeddable scaffolding concrete blocks build on: named port
// storage, default Files()/Cleanup() no-ops, and a DifferentiateFrom helper
// that matches a declared Signature list against observed input types.
// Embedding it states the ambient machinery once, so each concrete type
// only needs to override what makes it different.
type Base struct {
	name    string
	inputs  []*port.InputPort
	outputs []*port.OutputPort

	signature      Signature
	differentiated bool
}

// NewBase creates the named port scaffolding for a concrete block.
func NewBase(name string) *Base {
	return &Base{name: name}
}

func (b *Base) Name() string { return b.name }

// AddInput declares a new input port owned by self and returns it so the
// concrete block can store it for use in RunOnce. self must be the
// concrete block embedding this Base, not Base itself — embedding does not
// let Base recover the outer type, so every port needs to be told who
// really owns it.
func (b *Base) AddInput(self port.Owner, name string) *port.InputPort {
	p := port.NewInputPort(self, name)
	b.inputs = append(b.inputs, p)
	return p
}

// AddOutput declares a new output port owned by self and returns it, for
// the same reason AddInput takes an explicit owner.
func (b *Base) AddOutput(self port.Owner, name string) *port.OutputPort {
	p := port.NewOutputPort(self, name)
	b.outputs = append(b.outputs, p)
	return p
}

func (b *Base) InputPorts() []*port.InputPort   { return b.inputs }
func (b *Base) OutputPorts() []*port.OutputPort { return b.outputs }

// Files returns nil: most blocks open no resources beyond their ports.
// Blocks that do (e.g. a disk-backed source) override this method.
func (b *Base) Files() []*os.File { return nil }

// Cleanup is a no-op default. Blocks holding real resources override it.
func (b *Base) Cleanup() error { return nil }

// Signature returns the signature chosen by the most recent
// DifferentiateFrom call, or the zero Signature before differentiation.
func (b *Base) Signature() Signature { return b.signature }

// DifferentiateFrom matches inputTypes pointwise against each candidate
// signature's input types (in declaration order, first match wins), records
// the match, and assigns each of this block's output ports the matching
// signature's output type. It is the one piece of differentiation logic
// every Differentiate implementation shares; blocks with side effects beyond
// type bookkeeping (e.g. recomputing internal buffer sizes) wrap it.
func (b *Base) DifferentiateFrom(signatures []Signature, inputTypes []datatype.DataType) error {
	for _, sig := range signatures {
		if signatureMatches(sig, inputTypes) {
			b.signature = sig
			b.differentiated = true
			for i, spec := range sig.Outputs {
				if i < len(b.outputs) {
					b.outputs[i].SetDataType(spec.Type)
				}
			}
			return nil
		}
	}
	return fmt.Errorf("block %q: no declared signature matches input types %v", b.name, typeNames(inputTypes))
}

// Differentiated reports whether DifferentiateFrom has already succeeded.
func (b *Base) Differentiated() bool { return b.differentiated }

func signatureMatches(sig Signature, inputTypes []datatype.DataType) bool {
	if len(sig.Inputs) != len(inputTypes) {
		return false
	}
	for i, spec := range sig.Inputs {
		if inputTypes[i] == nil || !inputTypes[i].Equal(spec.Type) {
			return false
		}
	}
	return true
}

func typeNames(types []datatype.DataType) []string {
	names := make([]string, len(types))
	for i, t := range types {
		if t == nil {
			names[i] = "<unresolved>"
			continue
		}
		names[i] = t.Name()
	}
	return names
}
