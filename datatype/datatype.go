// Package datatype provides the sample data-type abstraction that flows
// through ports and pipes. The flow-graph engine only needs to know a
// type's element size and identity; it never interprets the bytes itself.
package datatype

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
)

// DataType identifies the element type carried by a port or pipe. Two
// DataTypes are interchangeable wherever they compare Equal, regardless of
// whether they are the same Go value.
type DataType interface {
	// Name returns a human-readable identity, used in error messages and
	// debug logs.
	Name() string

	// Size returns the number of bytes occupied by one element.
	Size() int

	// Equal reports whether other denotes the same wire type.
	Equal(other DataType) bool
}

type primitive struct {
	name string
	size int
}

func (p primitive) Name() string { return p.name }
func (p primitive) Size() int    { return p.size }

func (p primitive) Equal(other DataType) bool {
	o, ok := other.(primitive)
	if !ok {
		return false
	}
	return p.name == o.name && p.size == o.size
}

var (
	// Real is a 32-bit floating point sample.
	Real = primitive{name: "real", size: 4}
	// Complex is a pair of 32-bit floats (real, imaginary).
	Complex = primitive{name: "complex", size: 8}
	// Byte is a single octet, used by blocks that move raw bitstreams.
	Byte = primitive{name: "byte", size: 1}
	// Bit is a packed boolean sample, one byte per element on the wire
	// (the packing itself is a block concern, out of scope for the core).
	Bit = primitive{name: "bit", size: 1}
)

var (
	registryMu sync.RWMutex
	registry   = map[string]primitive{}
)

// Register declares a new named element type of the given per-element byte
// size, for blocks that need a custom sample representation the built-in
// Real/Complex/Byte/Bit set does not cover. Registering the same name twice
// with different sizes panics, matching the engine's policy that identity
// mismatches are programmer error, not a runtime condition to recover from.
func Register(name string, size int) DataType {
	registryMu.Lock()
	defer registryMu.Unlock()

	if existing, ok := registry[name]; ok {
		if existing.size != size {
			panic(fmt.Sprintf(
				"datatype: %q already registered with size %d, got %d",
				name, existing.size, size))
		}
		return existing
	}

	dt := primitive{name: name, size: size}
	registry[name] = dt
	return dt
}

// Lookup returns a previously Register-ed (or built-in) type by name.
func Lookup(name string) (DataType, bool) {
	switch name {
	case Real.name:
		return Real, true
	case Complex.name:
		return Complex, true
	case Byte.name:
		return Byte, true
	case Bit.name:
		return Bit, true
	}

	registryMu.RLock()
	defer registryMu.RUnlock()
	dt, ok := registry[name]
	return dt, ok
}

// Vector is a contiguous, homogeneously typed sample buffer — the unit of
// transport a Pipe carries between ticks.
type Vector struct {
	Type DataType
	Data []byte
}

// NewVector allocates a zeroed vector of n elements of the given type.
func NewVector(dt DataType, n int) Vector {
	return Vector{Type: dt, Data: make([]byte, n*dt.Size())}
}

// Len returns the number of elements held by the vector.
func (v Vector) Len() int {
	if v.Type == nil || v.Type.Size() == 0 {
		return 0
	}
	return len(v.Data) / v.Type.Size()
}

// WriteFloat32s encodes a slice of real samples into a new Vector typed as
// Real. Used by Real-typed source blocks and by tests driving the engine
// end-to-end.
func WriteFloat32s(values []float32) Vector {
	v := NewVector(Real, len(values))
	for i, f := range values {
		binary.LittleEndian.PutUint32(v.Data[i*4:], math.Float32bits(f))
	}
	return v
}

// ReadFloat32s decodes a Real-typed vector back into a slice of samples.
func ReadFloat32s(v Vector) []float32 {
	if !v.Type.Equal(Real) {
		panic("datatype: ReadFloat32s on non-Real vector")
	}
	out := make([]float32, v.Len())
	for i := range out {
		bits := binary.LittleEndian.Uint32(v.Data[i*4:])
		out[i] = math.Float32frombits(bits)
	}
	return out
}
