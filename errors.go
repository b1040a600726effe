package clonecoco

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dszilagyiques/CloneCoCo/ident"
)

// Sentinel errors for common transformation failures.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrMalformedInput indicates the source document is missing a
	// required field, such as a module without its moduleId. The
	// transformation aborts without producing a partial payload.
	ErrMalformedInput = errors.New("malformed source document")

	// ErrNilDocument indicates Transform was called without a source
	// document.
	ErrNilDocument = errors.New("source document is nil")

	// ErrIdentifierSpaceExhausted reports that identifier generation gave
	// up after exhausting its attempt budget. It aliases the sentinel from
	// the ident package so callers need only import this one.
	ErrIdentifierSpaceExhausted = ident.ErrSpaceExhausted
)

// Error kinds categorize errors by their type.
const (
	// KindMalformedInput represents structural problems in the source
	// document.
	KindMalformedInput = "malformed_input"

	// KindIdentifierSpace represents identifier generation giving up
	// after its attempt budget.
	KindIdentifierSpace = "identifier_space"

	// KindConfiguration represents errors in engine or glue
	// configuration.
	KindConfiguration = "configuration"

	// KindNetwork represents errors from the backend HTTP glue.
	KindNetwork = "network"

	// KindInternal represents internal engine errors.
	KindInternal = "internal"
)

// Error is a structured error type that wraps underlying errors with the
// operation that failed and the category of failure.
//
// Error implements the error interface and supports unwrapping, making it
// compatible with errors.Is() and errors.As().
type Error struct {
	// Op is the operation that failed (e.g. "Transformer.Transform").
	Op string

	// Kind categorizes the error (e.g. KindMalformedInput).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional),
	// such as module identifiers or the target phase.
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("clonecoco: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("clonecoco: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("clonecoco: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for Error, allowing comparison based on the
// underlying error or on another Error's Kind/Op.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// WithContext returns a copy of the error with the provided context added.
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	if newErr.Context == nil {
		newErr.Context = make(map[string]any)
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewMalformedInputError creates a new Error with KindMalformedInput.
func NewMalformedInputError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindMalformedInput,
		Err:  err,
	}
}

// NewIdentifierSpaceError creates a new Error with KindIdentifierSpace.
func NewIdentifierSpaceError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindIdentifierSpace,
		Err:  err,
	}
}

// NewConfigurationError creates a new Error with KindConfiguration.
func NewConfigurationError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindConfiguration,
		Err:  err,
	}
}

// NewNetworkError creates a new Error with KindNetwork.
func NewNetworkError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindNetwork,
		Err:  err,
	}
}

// NewInternalError creates a new Error with KindInternal.
func NewInternalError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindInternal,
		Err:  err,
	}
}

// CloseWithLog attempts to close the provided resource and logs any error at
// warning level. This is intended for use in defer statements so cleanup
// errors are not silently ignored.
//
// The name parameter should describe the resource being closed (e.g.
// "response body", "config file"). If logger is nil, slog.Default() is used.
func CloseWithLog(closer io.Closer, logger *slog.Logger, name string) {
	if closer == nil {
		return
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := closer.Close(); err != nil {
		logger.Warn("failed to close resource",
			"resource", name,
			"error", err)
	}
}
