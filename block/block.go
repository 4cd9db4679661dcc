// Package block defines the contract every flow-graph node implements:
// declare candidate type signatures, settle on one once input types are
// known, advance by one tick, and release resources at teardown.
package block

import (
	"context"
	"os"

	"github.com/flowrt/flowrt/datatype"
	"github.com/flowrt/flowrt/port"
)

// PortSpec names one port and the element type it carries under a given
// signature.
type PortSpec struct {
	Name string
	Type datatype.DataType
}

// Signature is one candidate (input types) -> (output types) pairing a
// block supports. A block with a single signature is monomorphic; one with
// several is differentiated at connect time based on what its inputs
// actually carry.
type Signature struct {
	Inputs  []PortSpec
	Outputs []PortSpec
}

// Outcome is what happened during one RunOnce call.
type Outcome int

const (
	// Produced means the block consumed and/or emitted at least one vector.
	Produced Outcome = iota
	// Idle means the block had nothing to do this round (typically: an
	// input had no data ready yet). The driver skips every block
	// downstream of this one for the rest of the pass.
	Idle
	// EOF means the block has permanently finished (an upstream source
	// closed, or the block decided it is done) and will never do useful
	// work again.
	EOF
)

func (o Outcome) String() string {
	switch o {
	case Produced:
		return "produced"
	case Idle:
		return "idle"
	case EOF:
		return "eof"
	default:
		return "unknown"
	}
}

// Block is the contract the flow-graph engine drives. Implementations
// normally embed *Base, which supplies Name, the port accessors, Files and
// Cleanup; they write Signatures, Rate, Initialize and RunOnce themselves,
// plus a Differentiate that calls Base.DifferentiateFrom and a Run that
// calls RunLoop.
type Block interface {
	Name() string

	// Signatures lists every (input types -> output types) pairing this
	// block can be differentiated into.
	Signatures() []Signature

	// Differentiate picks exactly one signature whose input types match
	// inputTypes pointwise and records its output types on this block's
	// output ports. It is called exactly once, in topological order, after
	// every input port has a bound pipe.
	Differentiate(inputTypes []datatype.DataType) error

	// Rate returns this block's output sample rate, usually derived from
	// an input pipe's already-resolved rate. Called after Differentiate,
	// once every input pipe's rate is known.
	Rate() float64

	// Initialize runs once, in topological order, after every block has
	// been differentiated and every rate has been checked.
	Initialize() error

	// RunOnce advances the block by one unit of work: read what is ready,
	// produce what follows, and report what happened. It must not block
	// indefinitely — a cooperative driver calls it on a single task shared
	// by every block in the graph.
	RunOnce() (Outcome, error)

	// Run drives this block to completion on its own, for use inside a
	// dedicated process or goroutine. The default behavior (RunLoop) simply
	// calls RunOnce until EOF or ctx is cancelled.
	Run(ctx context.Context) error

	// Cleanup releases any resources this block opened. It is called
	// exactly once, regardless of how the block's run ended.
	Cleanup() error

	// Files lists any OS file descriptors this block opened outside of its
	// ports (e.g. a source reading from disk) that must survive a fork in
	// process-driver mode.
	Files() []*os.File

	InputPorts() []*port.InputPort
	OutputPorts() []*port.OutputPort
}

// RunLoop is the default Run implementation: call RunOnce until EOF, error,
// or ctx cancellation. Concrete blocks that embed *Base call this from their
// own Run method.
func RunLoop(ctx context.Context, b Block) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		outcome, err := b.RunOnce()
		if err != nil {
			return err
		}
		if outcome == EOF {
			return nil
		}
	}
}
