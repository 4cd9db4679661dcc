// Package flowerr is the engine's typed error taxonomy: construction-time
// failures (malformed connection, non-DAG topology, type/rate mismatch) and
// runtime failures (transport, OS, block) are distinct kinds so callers can
// errors.As/errors.Is against them instead of string-matching. Programmer
// errors that should never occur given a correctly-built graph still panic
// rather than return one of these.
package flowerr

import "fmt"

// Kind classifies an Error.
type Kind int

const (
	// KindMalformedConnection covers double-connects, polarity mismatches
	// (output-to-output, input-to-input), and alias connections that
	// resolve to nothing concrete.
	KindMalformedConnection Kind = iota
	// KindTopology covers cycles and unconnected required inputs.
	KindTopology
	// KindTypeMismatch covers a block whose input types match no declared
	// signature.
	KindTypeMismatch
	// KindRateMismatch covers a block whose input pipes disagree on rate.
	KindRateMismatch
	// KindTransport covers pipe read/write failures.
	KindTransport
	// KindOS covers OS pipe creation failures while connecting, and process
	// spawn, signal, and descriptor failures in the process driver.
	KindOS
	// KindBlockRuntime covers a block's own RunOnce/Run/Initialize/Cleanup
	// returning an error.
	KindBlockRuntime
)

func (k Kind) String() string {
	switch k {
	case KindMalformedConnection:
		return "malformed-connection"
	case KindTopology:
		return "topology"
	case KindTypeMismatch:
		return "type-mismatch"
	case KindRateMismatch:
		return "rate-mismatch"
	case KindTransport:
		return "transport"
	case KindOS:
		return "os"
	case KindBlockRuntime:
		return "block-runtime"
	default:
		return "unknown"
	}
}

// Error is the concrete type every flowerr constructor returns. Block is
// the offending block's name, when the failure is attributable to one.
type Error struct {
	Kind  Kind
	Block string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e.Block != "" {
		return fmt.Sprintf("%s: block %q: %s", e.Kind, e.Block, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a flowerr.Error of the same Kind, so callers
// can do errors.Is(err, &flowerr.Error{Kind: flowerr.KindTopology}) without
// needing a matching Msg/Block.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func MalformedConnection(format string, args ...any) *Error {
	return &Error{Kind: KindMalformedConnection, Msg: fmt.Sprintf(format, args...)}
}

func Topology(format string, args ...any) *Error {
	return &Error{Kind: KindTopology, Msg: fmt.Sprintf(format, args...)}
}

func TypeMismatch(blockName string, err error) *Error {
	return &Error{Kind: KindTypeMismatch, Block: blockName, Msg: err.Error(), Err: err}
}

func RateMismatch(blockName, format string, args ...any) *Error {
	return &Error{Kind: KindRateMismatch, Block: blockName, Msg: fmt.Sprintf(format, args...)}
}

func Transport(format string, err error, args ...any) *Error {
	return &Error{Kind: KindTransport, Msg: fmt.Sprintf(format, args...), Err: err}
}

func OS(msg string, err error) *Error {
	return &Error{Kind: KindOS, Msg: msg, Err: err}
}

func BlockRuntime(blockName string, err error) *Error {
	return &Error{Kind: KindBlockRuntime, Block: blockName, Msg: err.Error(), Err: err}
}
