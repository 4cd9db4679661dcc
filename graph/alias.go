package graph

import "github.com/flowrt/flowrt/port"

// AliasInput is a composite's own input port. It fans out to every concrete
// input (or further nested alias input) it has been connected to, so that
// connecting a vector producer to the composite's name reaches every block
// inside that actually needs it.
type AliasInput struct {
	name    string
	targets []port.Endpoint
}

func (a *AliasInput) PortName() string { return a.name }

// AliasOutput is a composite's own output port. It delegates to exactly one
// concrete output (or further nested alias output); a second delegate
// assignment is rejected, matching the fan-in restriction a composite output
// has by construction (only one block can stand behind a single name).
type AliasOutput struct {
	name     string
	delegate port.Endpoint
}

func (a *AliasOutput) PortName() string { return a.name }

// resolveInput recursively flattens an endpoint down to the concrete input
// ports it ultimately reaches. A *port.InputPort is already concrete; an
// *AliasInput expands to the resolution of each of its current targets.
func resolveInput(e port.Endpoint) []*port.InputPort {
	switch t := e.(type) {
	case *port.InputPort:
		return []*port.InputPort{t}
	case *AliasInput:
		var out []*port.InputPort
		for _, target := range t.targets {
			out = append(out, resolveInput(target)...)
		}
		return out
	default:
		return nil
	}
}

// resolveOutput recursively flattens an endpoint down to the single concrete
// output port it ultimately reaches, or nil if the chain has no delegate yet.
func resolveOutput(e port.Endpoint) *port.OutputPort {
	switch t := e.(type) {
	case *port.OutputPort:
		return t
	case *AliasOutput:
		if t.delegate == nil {
			return nil
		}
		return resolveOutput(t.delegate)
	default:
		return nil
	}
}
