package port

import (
	"fmt"
	"sync"

	"github.com/flowrt/flowrt/datatype"
)

// Endpoint is anything connect() can resolve to: a concrete InputPort or
// OutputPort, or an alias chain owned by a composite (see package graph).
// It exists so the port package can hand back a resolvable handle without
// importing graph, which would create a cycle.
type Endpoint interface {
	PortName() string
}

// OutputPort is a block's named production point. It fans a single produced
// vector out to every connected pipe; the resolved data type and rate are
// set once, during differentiation/rate-propagation, and read many times.
type OutputPort struct {
	owner Owner
	name  string

	mu       sync.RWMutex
	dataType datatype.DataType
	rate     float64
	pipes    []*Pipe
}

// NewOutputPort creates an unconnected, unresolved output port belonging to
// owner.
func NewOutputPort(owner Owner, name string) *OutputPort {
	return &OutputPort{owner: owner, name: name}
}

func (o *OutputPort) Owner() Owner     { return o.owner }
func (o *OutputPort) Name() string     { return o.name }
func (o *OutputPort) PortName() string { return o.name }

// DataType returns the resolved element type, or nil before differentiation.
func (o *OutputPort) DataType() datatype.DataType {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.dataType
}

// SetDataType records the type chosen for this port by block differentiation.
func (o *OutputPort) SetDataType(dt datatype.DataType) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.dataType = dt
}

// Rate returns the resolved sample rate, or zero before rate propagation.
func (o *OutputPort) Rate() float64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.rate
}

// SetRate records the rate computed for this port by rate propagation.
func (o *OutputPort) SetRate(r float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rate = r
}

// AddPipe registers p as a fan-out destination. Called once per connection
// by graph.Composite after a connect() call has passed validation.
func (o *OutputPort) AddPipe(p *Pipe) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pipes = append(o.pipes, p)
}

// Pipes returns the fan-out set in connection order.
func (o *OutputPort) Pipes() []*Pipe {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]*Pipe, len(o.pipes))
	copy(out, o.pipes)
	return out
}

// Write duplicates v across every fan-out pipe, in connection order. It
// blocks on whichever reader drains slowest, giving this engine's
// concurrency model its backpressure.
func (o *OutputPort) Write(v datatype.Vector) error {
	o.mu.RLock()
	pipes := o.pipes
	o.mu.RUnlock()

	for _, p := range pipes {
		if err := p.Write(v); err != nil {
			return fmt.Errorf("port: output %q: %w", o.name, err)
		}
	}
	return nil
}

// Close closes the write end of every fan-out pipe, surfacing EOF downstream.
func (o *OutputPort) Close() error {
	o.mu.RLock()
	pipes := o.pipes
	o.mu.RUnlock()

	var first error
	for _, p := range pipes {
		if err := p.CloseWrite(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// InputPort is a block's named consumption point. At most one pipe may ever
// be bound to it; a second bind attempt is rejected by the caller before it
// reaches here (graph.Composite checks the connection set first).
type InputPort struct {
	owner Owner
	name  string

	mu   sync.Mutex
	pipe *Pipe
}

// NewInputPort creates an unconnected input port belonging to owner.
func NewInputPort(owner Owner, name string) *InputPort {
	return &InputPort{owner: owner, name: name}
}

func (i *InputPort) Owner() Owner     { return i.owner }
func (i *InputPort) Name() string     { return i.name }
func (i *InputPort) PortName() string { return i.name }

// Bind attaches p as this port's sole source pipe. It fails if a pipe is
// already bound.
func (i *InputPort) Bind(p *Pipe) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.pipe != nil {
		return fmt.Errorf("port: input %q is already connected", i.name)
	}
	i.pipe = p
	return nil
}

// Pipe returns the bound pipe, or nil if this input has never been connected.
func (i *InputPort) Pipe() *Pipe {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.pipe
}

// DataType returns the bound pipe's resolved element type.
func (i *InputPort) DataType() datatype.DataType {
	p := i.Pipe()
	if p == nil {
		return nil
	}
	return p.GetDataType()
}

// Rate returns the bound pipe's resolved sample rate.
func (i *InputPort) Rate() float64 {
	p := i.Pipe()
	if p == nil {
		return 0
	}
	return p.GetRate()
}

// Read blocks for the next vector from the bound pipe.
func (i *InputPort) Read() (datatype.Vector, error) {
	p := i.Pipe()
	if p == nil {
		return datatype.Vector{}, fmt.Errorf("port: input %q has no bound pipe", i.name)
	}
	return p.Read()
}

// TryRead performs a non-blocking read attempt on the bound pipe.
func (i *InputPort) TryRead() (datatype.Vector, bool, error) {
	p := i.Pipe()
	if p == nil {
		return datatype.Vector{}, false, fmt.Errorf("port: input %q has no bound pipe", i.name)
	}
	return p.TryRead()
}

// Close closes this port's read end.
func (i *InputPort) Close() error {
	p := i.Pipe()
	if p == nil {
		return nil
	}
	return p.CloseRead()
}
