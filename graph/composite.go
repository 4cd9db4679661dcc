// Package graph builds and prepares flow-graphs: Composite records
// connections (including aliased composite ports) and resolves them to
// concrete output->input pipes; Composite.PrepareToRun crawls the resulting
// pipe graph, validates it, differentiates every block's types, propagates
// rates, and returns the blocks in an order a driver can execute. Recording
// the wiring is kept separate from the later validate-and-instantiate pass.
package graph

import (
	"fmt"

	"github.com/flowrt/flowrt/block"
	"github.com/flowrt/flowrt/flowerr"
	"github.com/flowrt/flowrt/flowlog"
	"github.com/flowrt/flowrt/port"
)

type connEdge struct {
	in  *port.InputPort
	out *port.OutputPort
}

// Composite is both a wiring namespace (own alias ports, for use as a
// nested block inside a parent composite) and, at the top level, the entry
// point for preparing and running a graph.
type Composite struct {
	name string

	conns     map[*port.InputPort]*port.OutputPort
	connOrder []connEdge

	ownInputs  map[string]*AliasInput
	ownOutputs map[string]*AliasOutput
	signatures []block.Signature

	blockOrder []block.Block
	blockSeen  map[block.Block]bool

	pipeSeq int
}

// New creates an empty composite named for debug/error messages.
func New(name string) *Composite {
	return &Composite{
		name:       name,
		conns:      map[*port.InputPort]*port.OutputPort{},
		ownInputs:  map[string]*AliasInput{},
		ownOutputs: map[string]*AliasOutput{},
		blockSeen:  map[block.Block]bool{},
	}
}

func (c *Composite) Name() string { return c.name }

// AddTypeSignature declares one signature a parent composite may connect
// against when this composite is used, itself, as a nested block. It also
// creates the named own-input/own-output alias ports those signatures
// reference, if they do not already exist.
func (c *Composite) AddTypeSignature(inputs, outputs []block.PortSpec) {
	c.signatures = append(c.signatures, block.Signature{Inputs: inputs, Outputs: outputs})
	for _, in := range inputs {
		if _, ok := c.ownInputs[in.Name]; !ok {
			c.ownInputs[in.Name] = &AliasInput{name: in.Name}
		}
	}
	for _, out := range outputs {
		if _, ok := c.ownOutputs[out.Name]; !ok {
			c.ownOutputs[out.Name] = &AliasOutput{name: out.Name}
		}
	}
}

// Signatures returns the signatures declared via AddTypeSignature, for a
// parent composite connecting against this one as a nested block.
func (c *Composite) Signatures() []block.Signature { return c.signatures }

// noteBlock records b's first-seen order, which later becomes the
// insertion-order tie-break in topological sort. It is driven entirely by
// slices (connOrder, blockOrder), never by map iteration, so the recorded
// order is reproducible across runs of the same program.
func (c *Composite) noteBlock(b block.Block) {
	if b == nil || c.blockSeen[b] {
		return
	}
	c.blockSeen[b] = true
	c.blockOrder = append(c.blockOrder, b)
}

// lookupEndpoint finds the named port on participant (either a block.Block
// or *Composite), searching outputs first, then inputs. It reports whether
// the name was an output.
func lookupEndpoint(participant any, name string) (e port.Endpoint, isOutput bool, found bool) {
	switch p := participant.(type) {
	case *Composite:
		if out, ok := p.ownOutputs[name]; ok {
			return out, true, true
		}
		if in, ok := p.ownInputs[name]; ok {
			return in, false, true
		}
	case block.Block:
		for _, op := range p.OutputPorts() {
			if op.PortName() == name {
				return op, true, true
			}
		}
		for _, ip := range p.InputPorts() {
			if ip.PortName() == name {
				return ip, false, true
			}
		}
	}
	return nil, false, false
}

func participantName(participant any) string {
	switch p := participant.(type) {
	case *Composite:
		return p.name
	case block.Block:
		return p.Name()
	default:
		return fmt.Sprintf("%v", participant)
	}
}

// Connect wires srcName on src to dstName on dst. src and dst are each
// either a block.Block or a *Composite (including c itself, to declare an
// alias on c's own boundary). Exactly one real edge is created per concrete
// destination input the names resolve to.
func (c *Composite) Connect(src any, srcName string, dst any, dstName string) error {
	srcEnd, srcIsOutput, ok := lookupEndpoint(src, srcName)
	if !ok {
		return flowerr.MalformedConnection("no port named %q on %q", srcName, participantName(src))
	}
	dstEnd, dstIsOutput, ok := lookupEndpoint(dst, dstName)
	if !ok {
		return flowerr.MalformedConnection("no port named %q on %q", dstName, participantName(dst))
	}

	srcIsSelf := isComposite(src, c)
	dstIsSelf := isComposite(dst, c)

	if !srcIsSelf && !dstIsSelf {
		return c.connectReal(srcEnd, srcIsOutput, dstEnd, dstIsOutput)
	}
	return c.connectAlias(srcIsSelf, srcEnd, srcIsOutput, dstIsSelf, dstEnd, dstIsOutput)
}

func isComposite(participant any, c *Composite) bool {
	p, ok := participant.(*Composite)
	return ok && p == c
}

// ConnectChain is the positional convenience form: connect each block's
// first output to the next block's first input, in order.
func (c *Composite) ConnectChain(blocks ...block.Block) error {
	for i := 0; i+1 < len(blocks); i++ {
		src, dst := blocks[i], blocks[i+1]
		srcPorts := src.OutputPorts()
		dstPorts := dst.InputPorts()
		if len(srcPorts) == 0 {
			return flowerr.MalformedConnection("block %q has no output port for chain connect", src.Name())
		}
		if len(dstPorts) == 0 {
			return flowerr.MalformedConnection("block %q has no input port for chain connect", dst.Name())
		}
		if err := c.Connect(src, srcPorts[0].PortName(), dst, dstPorts[0].PortName()); err != nil {
			return err
		}
	}
	return nil
}

func (c *Composite) connectReal(srcEnd port.Endpoint, srcIsOutput bool, dstEnd port.Endpoint, dstIsOutput bool) error {
	if !srcIsOutput || dstIsOutput {
		return flowerr.MalformedConnection("a connection must run from an output port to an input port")
	}

	srcOut := resolveOutput(srcEnd)
	if srcOut == nil {
		return flowerr.MalformedConnection("source alias %q has no concrete output behind it", srcEnd.PortName())
	}
	dstIns := resolveInput(dstEnd)
	if len(dstIns) == 0 {
		return flowerr.MalformedConnection("destination alias %q resolves to no concrete input", dstEnd.PortName())
	}

	for _, dstIn := range dstIns {
		if _, exists := c.conns[dstIn]; exists {
			return flowerr.MalformedConnection("input %q of block %q is already connected",
				dstIn.PortName(), dstIn.Owner().Name())
		}
	}

	for _, dstIn := range dstIns {
		c.pipeSeq++
		name := fmt.Sprintf("%s.%s->%s.%s", srcOut.Owner().Name(), srcOut.PortName(), dstIn.Owner().Name(), dstIn.PortName())
		p, err := port.NewPipe(name, srcOut, dstIn)
		if err != nil {
			return flowerr.OS("failed to create pipe "+name, err)
		}
		srcOut.AddPipe(p)
		if err := dstIn.Bind(p); err != nil {
			return flowerr.MalformedConnection("%s", err.Error())
		}

		c.conns[dstIn] = srcOut
		c.connOrder = append(c.connOrder, connEdge{in: dstIn, out: srcOut})

		if ownerBlock, ok := srcOut.Owner().(block.Block); ok {
			c.noteBlock(ownerBlock)
		}
		if ownerBlock, ok := dstIn.Owner().(block.Block); ok {
			c.noteBlock(ownerBlock)
		}

		flowlog.Topology("connected pipe", "name", name)
	}

	return nil
}

func (c *Composite) connectAlias(srcIsSelf bool, srcEnd port.Endpoint, srcIsOutput bool, dstIsSelf bool, dstEnd port.Endpoint, dstIsOutput bool) error {
	var ownEnd, childEnd port.Endpoint
	var ownIsOutput, childIsOutput bool
	if srcIsSelf {
		ownEnd, ownIsOutput = srcEnd, srcIsOutput
		childEnd, childIsOutput = dstEnd, dstIsOutput
	} else {
		ownEnd, ownIsOutput = dstEnd, dstIsOutput
		childEnd, childIsOutput = srcEnd, srcIsOutput
	}

	switch own := ownEnd.(type) {
	case *AliasInput:
		if ownIsOutput || childIsOutput {
			return flowerr.MalformedConnection("an alias input must connect to a child input")
		}
		switch child := childEnd.(type) {
		case *port.InputPort:
			own.targets = append(own.targets, child)
		case *AliasInput:
			own.targets = append(own.targets, child.targets...)
		default:
			return flowerr.MalformedConnection("alias input cannot connect to %T", childEnd)
		}
		return nil

	case *AliasOutput:
		if !ownIsOutput || !childIsOutput {
			return flowerr.MalformedConnection("an alias output must connect to a child output")
		}
		if own.delegate != nil {
			return flowerr.MalformedConnection("composite output %q is already aliased", own.name)
		}
		switch child := childEnd.(type) {
		case *port.OutputPort:
			own.delegate = child
		case *AliasOutput:
			if child.delegate == nil {
				return flowerr.MalformedConnection("nested alias output %q has no delegate yet", child.name)
			}
			own.delegate = child.delegate
		default:
			return flowerr.MalformedConnection("alias output cannot connect to %T", childEnd)
		}
		return nil

	default:
		return flowerr.MalformedConnection("unreachable alias endpoint type %T", ownEnd)
	}
}
