// Package fault defines the typed errors shared by the generator, the
// renderer and the configuration layer.
//
// Every error carries a [Kind]. Callers match kinds with errors.Is against
// the sentinels:
//
//	if errors.Is(err, fault.ErrConfiguration) {
//	    // bad input, do not retry
//	}
//
// Rendering is deterministic for a given config and seed, so neither kind is
// retryable.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies an error.
type Kind int

const (
	// Configuration covers invalid or degenerate parameters: non-positive
	// canvas dimensions, zero total weight, unsupported IFS or RNG names.
	Configuration Kind = iota + 1

	// Generation covers numerically degenerate maps the sigma-factor
	// normalization could not repair.
	Generation
)

// Sentinels matched by errors.Is for each kind.
var (
	ErrConfiguration = errors.New("randomlogo: configuration error")
	ErrGeneration    = errors.New("randomlogo: generation error")
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "configuration"
	case Generation:
		return "generation"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case Configuration:
		return ErrConfiguration
	case Generation:
		return ErrGeneration
	default:
		return nil
	}
}

// Error wraps a failure with its kind and the operation that raised it.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// Configf returns a Configuration error for op.
func Configf(op, format string, args ...any) error {
	return &Error{Kind: Configuration, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Generationf returns a Generation error for op.
func Generationf(op, format string, args ...any) error {
	return &Error{Kind: Generation, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches kind and op to cause. A nil cause yields nil.
func Wrap(kind Kind, op string, cause error, format string, args ...any) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func IsConfiguration(err error) bool { return errors.Is(err, ErrConfiguration) }

func IsGeneration(err error) bool { return errors.Is(err, ErrGeneration) }

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
