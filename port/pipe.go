// Package port implements the typed port and pipe transport that blocks use
// to exchange sample vectors: a Pipe is a one-writer/one-reader byte channel
// carrying framed vectors, and OutputPort/InputPort are the typed endpoints
// a block owns.
package port

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/flowrt/flowrt/datatype"
)

// Owner is the minimal identity a port needs from the block that holds it.
// It is satisfied implicitly by block.Block so this package never imports
// the block package.
type Owner interface {
	Name() string
}

// Pipe is a one-writer/one-reader channel bound to exactly one source
// output port and one destination input port. It carries frames of
// homogeneous samples, each prefixed with its payload length in bytes, over an OS pipe, so the same transport
// serves both the cooperative driver (in-process) and the process driver
// (across a fork/exec boundary, where the fds survive independently).
type Pipe struct {
	name string
	src  *OutputPort
	dst  *InputPort

	mu sync.Mutex
	r  *os.File
	w  *os.File
}

// NewPipe allocates an OS pipe and wires it between src and dst. It does not
// register itself on either port; callers (graph.Composite) do that once
// the edge has passed validation, so that a rejected connection never
// leaves a dangling pipe.
func NewPipe(name string, src *OutputPort, dst *InputPort) (*Pipe, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("port: failed to create pipe %q: %w", name, err)
	}
	return &Pipe{name: name, src: src, dst: dst, r: r, w: w}, nil
}

// Name returns the pipe's debug identifier.
func (p *Pipe) Name() string { return p.name }

// Src returns the output port this pipe carries samples from.
func (p *Pipe) Src() *OutputPort { return p.src }

// Dst returns the input port this pipe delivers samples to.
func (p *Pipe) Dst() *InputPort { return p.dst }

// GetDataType returns the resolved type of the data flowing through this
// pipe, which is always the type resolved on the source port.
func (p *Pipe) GetDataType() datatype.DataType { return p.src.DataType() }

// GetRate returns the resolved sample rate of the data flowing through this
// pipe, which is always the rate resolved on the source port.
func (p *Pipe) GetRate() float64 { return p.src.Rate() }

// Write serializes a vector as a length-prefixed frame. The header and
// payload are combined into a single write so that frames up to PIPE_BUF
// (4096 bytes on Linux) are delivered atomically to the reader; larger
// vectors lose that atomicity guarantee, which is acceptable for the
// typical small-tick vectors this engine moves.
func (p *Pipe) Write(v datatype.Vector) error {
	p.mu.Lock()
	w := p.w
	p.mu.Unlock()

	if w == nil {
		return fmt.Errorf("port: pipe %q has no write end", p.name)
	}

	frame := make([]byte, 4+len(v.Data))
	binary.LittleEndian.PutUint32(frame, uint32(len(v.Data)))
	copy(frame[4:], v.Data)

	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("port: write on pipe %q: %w", p.name, err)
	}
	return nil
}

// Read blocks until one full frame is available and returns it, or returns
// io.EOF once the writer has closed and no bytes remain.
func (p *Pipe) Read() (datatype.Vector, error) {
	p.mu.Lock()
	r := p.r
	p.mu.Unlock()

	if r == nil {
		return datatype.Vector{}, fmt.Errorf("port: pipe %q has no read end", p.name)
	}

	hdr := make([]byte, 4)
	if _, err := io.ReadFull(r, hdr); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return datatype.Vector{}, io.EOF
		}
		return datatype.Vector{}, fmt.Errorf("port: read header on pipe %q: %w", p.name, err)
	}

	n := binary.LittleEndian.Uint32(hdr)
	data := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r, data); err != nil {
			return datatype.Vector{}, fmt.Errorf("port: read payload on pipe %q: %w", p.name, err)
		}
	}

	return datatype.Vector{Type: p.src.DataType(), Data: data}, nil
}

// TryRead performs a non-blocking readiness check before reading, so a
// cooperative-mode block can distinguish "no data yet" (ok=false, err=nil)
// from end-of-stream (err=io.EOF) without stalling the single driver task.
func (p *Pipe) TryRead() (v datatype.Vector, ok bool, err error) {
	p.mu.Lock()
	r := p.r
	p.mu.Unlock()

	if r == nil {
		return datatype.Vector{}, false, fmt.Errorf("port: pipe %q has no read end", p.name)
	}

	ready, perr := pollReadable(r.Fd(), 0)
	if perr != nil {
		return datatype.Vector{}, false, fmt.Errorf("port: poll on pipe %q: %w", p.name, perr)
	}
	if !ready {
		return datatype.Vector{}, false, nil
	}

	v, err = p.Read()
	if err == io.EOF {
		return datatype.Vector{}, false, io.EOF
	}
	if err != nil {
		return datatype.Vector{}, false, err
	}
	return v, true, nil
}

func pollReadable(fd uintptr, timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	ms := int(timeout / time.Millisecond)
	n, err := unix.Poll(fds, ms)
	if err != nil {
		if err == unix.EINTR {
			return false, nil
		}
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	return fds[0].Revents&(unix.POLLIN|unix.POLLHUP) != 0, nil
}

// CloseWrite closes the write end owned by this pipe. Subsequent reads
// observe EOF once buffered bytes are drained. Safe to call more than once.
func (p *Pipe) CloseWrite() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.w == nil {
		return nil
	}
	err := p.w.Close()
	p.w = nil
	return err
}

// CloseRead closes the read end owned by this pipe. Safe to call more than
// once.
func (p *Pipe) CloseRead() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.r == nil {
		return nil
	}
	err := p.r.Close()
	p.r = nil
	return err
}

// CloseBoth closes both ends, used by the process driver to drop the
// parent's copy of a pipe once both endpoint processes have inherited
// their own descriptors via fork/exec.
func (p *Pipe) CloseBoth() error {
	errW := p.CloseWrite()
	errR := p.CloseRead()
	if errW != nil {
		return errW
	}
	return errR
}

// ReadFile returns the underlying read-end file, for passing through
// exec.Cmd.ExtraFiles in the process driver.
func (p *Pipe) ReadFile() *os.File {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.r
}

// WriteFile returns the underlying write-end file, for passing through
// exec.Cmd.ExtraFiles in the process driver.
func (p *Pipe) WriteFile() *os.File {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.w
}

// Filenos returns the raw read/write descriptors, zero for an end that is
// closed. The process driver does not use it; it passes the *os.File ends
// from ReadFile/WriteFile to its children.
func (p *Pipe) Filenos() [2]uintptr {
	p.mu.Lock()
	defer p.mu.Unlock()
	var r, w uintptr
	if p.r != nil {
		r = p.r.Fd()
	}
	if p.w != nil {
		w = p.w.Fd()
	}
	return [2]uintptr{r, w}
}

// SetBufferDepth resizes the pipe's underlying OS buffer to hold
// approximately vectors elements of this pipe's resolved type, by setting
// F_SETPIPE_SZ on the read end (Linux grows the write end's capacity to
// match). vectors <= 0 is a no-op, leaving the OS default buffer size in
// place. Must be called after the source port's type has been resolved
// (i.e. once PrepareToRun has run), since the byte size it requests depends
// on GetDataType.
func (p *Pipe) SetBufferDepth(vectors int) error {
	if vectors <= 0 {
		return nil
	}

	p.mu.Lock()
	r := p.r
	p.mu.Unlock()
	if r == nil {
		return nil
	}

	size := vectors * p.src.DataType().Size()
	if size <= 0 {
		return nil
	}

	if _, err := unix.FcntlInt(r.Fd(), unix.F_SETPIPE_SZ, size); err != nil {
		return fmt.Errorf("port: setting buffer depth on pipe %q: %w", p.name, err)
	}
	return nil
}

// Rebind replaces this pipe's read and/or write end with descriptors
// inherited from a parent process (the child side of the process driver).
// A nil argument leaves that end unchanged.
func (p *Pipe) Rebind(r, w *os.File) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if r != nil {
		p.r = r
	}
	if w != nil {
		p.w = w
	}
}
