package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnauthorized is returned when an operation is missing a
	// required authorization.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound is returned when an entity does not exist.
	ErrNotFound = Register(3, "not found")

	// ErrMsg is returned whenever a message is invalid and cannot be
	// processed.
	ErrMsg = Register(4, "invalid message")

	// ErrModel is returned whenever a persisted entity is invalid.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate is returned when there is a record already that has
	// the same unique key or index.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman stands for a human error, like a misconfiguration, that
	// an operator must take action on.
	ErrHuman = Register(7, "human error")

	// ErrImmutable is returned when an attempt was made to modify an
	// entity that cannot be changed.
	ErrImmutable = Register(8, "cannot be modified")

	// ErrEmpty is returned when a value that must be set is empty.
	ErrEmpty = Register(9, "value is empty")

	// ErrState is returned when an operation is not valid for the
	// current state of the entity.
	ErrState = Register(10, "invalid state")

	// ErrType is returned when a value is of the wrong type.
	ErrType = Register(11, "invalid type")

	// ErrAmount is returned when a monetary amount is invalid.
	ErrAmount = Register(12, "invalid amount")

	// ErrInput is a generic error for an invalid user input.
	ErrInput = Register(13, "invalid input")

	// ErrExpired is returned when an entity has passed its deadline.
	ErrExpired = Register(14, "expired")

	// ErrOverflow is returned when a computation exceeds the range of
	// its result type.
	ErrOverflow = Register(15, "an operation cannot be completed due to value overflow")

	// ErrIteratorDone signals that an iterator has no more elements.
	ErrIteratorDone = Register(16, "iterator done")

	// ErrMetadata is returned when entity metadata is missing or
	// invalid.
	ErrMetadata = Register(17, "invalid metadata")

	// ErrPanic is set only when a panic is recovered during processing.
	ErrPanic = Register(111222, "panic")
)

// Register returns an error instance that should be used as the base for
// creating error instances during runtime.
//
// Each error code must be unique within the whole application. Popular
// root errors are declared in this package; modules register their own
// within their assigned code ranges.
func Register(code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	err := &Error{
		code: code,
		desc: description,
	}
	usedCodes[code] = err
	return err
}

// usedCodes is keeping track of used codes to ensure uniqueness. Code 1
// is reserved for non-specific errors created only by wrapping.
var usedCodes = map[uint32]*Error{
	1: {code: 1, desc: "internal"},
}

// Error represents a root error. Instances are not meant to be returned
// directly but rather wrapped to provide context.
type Error struct {
	code uint32
	desc string
}

// Error satisfies the standard error interface.
func (e *Error) Error() string {
	return e.desc
}

// Code returns the error code of this error kind.
func (e *Error) Code() uint32 {
	return e.code
}

// Is returns true if the given error is of this kind. It unwraps the
// error chain looking for a matching root.
func (kind *Error) Is(err error) bool {
	for {
		if err == kind {
			return true
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return false
		}
	}
}

type causer interface {
	Cause() error
}

// Wrap extends the given error with an additional description and
// attaches a stack trace at the point Wrap was first called.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	// Reuse the outermost stack trace if one is already attached.
	if _, ok := err.(stackTracer); ok {
		return &wrappedError{
			parent: err,
			msg:    description,
		}
	}
	return &wrappedError{
		parent: errors.WithStack(err),
		msg:    description,
	}
}

// Wrapf extends the given error with a formatted description.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

type wrappedError struct {
	// This error layer description.
	msg string
	// The underlying error that triggered this one.
	parent error
}

func (e *wrappedError) StackTrace() errors.StackTrace {
	if st, ok := e.parent.(stackTracer); ok {
		return st.StackTrace()
	}
	return nil
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Cause returns the root error of the given error chain.
func Cause(err error) error {
	return errors.Cause(err)
}
