// Package errors provides error handling utilities for faire2ena: consistent
// wrapping with operation context and a small taxonomy separating fatal
// configuration problems from recoverable per-record ones.
package errors

import (
	stderrors "errors"
	"strings"
)

// Op represents an operation name for error context.
type Op string

// Kind represents the category of error.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindConfig
	KindParse
	KindValidation
	KindDatabase
	KindUpload
	KindIO
)

// String returns the string representation of the error kind.
func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindParse:
		return "parse"
	case KindValidation:
		return "validation"
	case KindDatabase:
		return "database"
	case KindUpload:
		return "upload"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error represents an application error with context.
type Error struct {
	Op   Op     // Operation that failed
	Kind Kind   // Category of error
	Err  error  // Underlying error
	Msg  string // Additional context message
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(string(e.Op))
		b.WriteString(": ")
	}
	if e.Msg != "" {
		b.WriteString(e.Msg)
		if e.Err != nil {
			b.WriteString(": ")
		}
	}
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error from the given arguments. Arguments can be: Op,
// Kind, error, string (message).
func E(args ...interface{}) *Error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case error:
			e.Err = a
		case string:
			e.Msg = a
		}
	}
	return e
}

// Wrap wraps an error with an operation name for context.
func Wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// WrapMsg wraps an error with an operation name and message.
func WrapMsg(op Op, msg string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Msg: msg, Err: err}
}

// IsKind checks whether any error in the chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for stderrors.As(err, &e) {
		if e.Kind != KindUnknown {
			return e.Kind == kind
		}
		err = e.Err
		if err == nil {
			break
		}
	}
	return false
}

// GetKind returns the first explicit kind in the error chain.
func GetKind(err error) Kind {
	var e *Error
	for stderrors.As(err, &e) {
		if e.Kind != KindUnknown {
			return e.Kind
		}
		err = e.Err
		if err == nil {
			break
		}
	}
	return KindUnknown
}
