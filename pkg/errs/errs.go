// Package errs defines the kind-tagged error type shared by every stage of
// the query pipeline: tokenizer, parser, operator registry, evaluator, and
// ingest.
package errs

import (
	"errors"
	"fmt"
)

// Kind tags the category of failure. The REPL prints it verbatim alongside
// the message; there is no catalog of numbered error codes.
type Kind string

const (
	Syntax  Kind = "Syntax"
	Runtime Kind = "Runtime"
	Type    Kind = "Type"
	Lookup  Kind = "Lookup"
	IO      Kind = "IO"
)

// Error is the only error type the query pipeline returns.
type Error struct {
	Kind    Kind
	Message string
}

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s Error: %s", e.Kind, e.Message)
}

func Syntaxf(format string, args ...interface{}) *Error  { return New(Syntax, format, args...) }
func Runtimef(format string, args ...interface{}) *Error { return New(Runtime, format, args...) }
func Typef(format string, args ...interface{}) *Error    { return New(Type, format, args...) }
func Lookupf(format string, args ...interface{}) *Error  { return New(Lookup, format, args...) }
func IOf(format string, args ...interface{}) *Error      { return New(IO, format, args...) }

// KindOf returns the Kind of err if it is (or wraps) an *Error, and Runtime
// otherwise — used when a stage surfaces a stdlib error (e.g. os.Open) that
// was not already tagged.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Runtime
}
