// Package errors classifies scheduler failures. Every failure the scheduler
// reports is an expected, recoverable outcome carrying one of a small set of kinds.
package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is the class of a scheduler failure.
type Kind int

const (
	// Unknown is reported for nil errors and errors not produced by NewError.
	Unknown Kind = iota
	InvalidArgument
	AlreadyExists
	NotFound
	NoSuitablePlan
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case AlreadyExists:
		return "AlreadyExists"
	case NotFound:
		return "NotFound"
	case NoSuitablePlan:
		return "NoSuitablePlan"
	default:
		return "Unknown"
	}
}

type KindError struct {
	kind Kind
	error
}

func NewError(err error, kind Kind) *KindError {
	if err == nil {
		return nil
	}
	return &KindError{kind, err}
}

// Errorf builds a KindError from a formatted message. The message is created
// with pkg/errors so it carries a stack trace.
func Errorf(kind Kind, format string, args ...interface{}) *KindError {
	return &KindError{kind, errors.Errorf(format, args...)}
}

func (e *KindError) GetKind() Kind {
	if e == nil {
		return Unknown
	}
	return e.kind
}

func (e *KindError) Cause() error {
	return e.error
}

func (e *KindError) Format(s fmt.State, verb rune) {
	if f, ok := e.error.(fmt.Formatter); ok {
		f.Format(s, verb)
		return
	}
	fmt.Fprint(s, e.error.Error())
}

// KindOf walks the chain of wrapped errors and returns the first Kind found.
func KindOf(err error) Kind {
	for err != nil {
		if ke, ok := err.(*KindError); ok {
			return ke.kind
		}
		cause, ok := err.(interface{ Cause() error })
		if !ok {
			break
		}
		err = cause.Cause()
	}
	return Unknown
}

// Is reports whether err was classified with kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
