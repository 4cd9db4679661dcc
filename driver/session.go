package driver

import (
	"github.com/flowrt/flowrt/block"
	"github.com/flowrt/flowrt/flowcfg"
	"github.com/flowrt/flowrt/flowlog"
	"github.com/flowrt/flowrt/graph"
	"github.com/flowrt/flowrt/port"
)

// Session picks and owns whichever Driver a flowcfg.Config selects, so
// callers don't need to know about Cooperative/Process directly.
type Session struct {
	Driver
}

// NewSession builds the driver a prepared graph should run under: Process
// when cfg.Multiprocess is set, Cooperative otherwise. Before either driver
// starts, every pipe in the graph has its OS buffer resized to cfg's
// configured depth.
func NewSession(prepared *graph.Prepared, cfg flowcfg.Config) *Session {
	applyBufferDepth(prepared.Blocks, cfg.BufferDepth)

	if cfg.Multiprocess {
		return &Session{Driver: NewProcess(prepared.Blocks)}
	}
	return &Session{Driver: NewCooperative(prepared.Blocks, prepared.SkipSets)}
}

// applyBufferDepth resizes every distinct pipe feeding one of blocks to
// hold depth elements, once. A depth of zero leaves the OS default in
// place.
func applyBufferDepth(blocks []block.Block, depth int) {
	if depth <= 0 {
		return
	}

	seen := map[*port.Pipe]bool{}
	for _, b := range blocks {
		for _, in := range b.InputPorts() {
			p := in.Pipe()
			if p == nil || seen[p] {
				continue
			}
			seen[p] = true
			if err := p.SetBufferDepth(depth); err != nil {
				flowlog.Error("failed to apply buffer depth", "pipe", p.Name(), "err", err)
			}
		}
	}
}

// Run starts the session and blocks until it finishes.
func (s *Session) Run() error {
	if err := s.Start(); err != nil {
		return err
	}
	return s.Wait()
}
