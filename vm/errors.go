package vm

import (
	"errors"
	"fmt"
)

// Classified error codes. When a runtime error reaches the CLI the code
// becomes the process exit status.
const (
	CodeNoEntry       = 31 // no Main class, no run method, or run takes parameters
	CodeUndefinedVar  = 32 // read of a variable with no binding, or self outside a method
	CodeParamAssign   = 34 // assignment to a block parameter
	CodeNotUnderstood = 51 // receiver does not understand the message
	CodeBadOperand    = 53 // argument has the wrong type or value
	CodeInternal      = 99 // interpreter invariant violated or malformed tree
)

// Error is a classified runtime failure.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Errorf builds a classified error.
func Errorf(code int, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ExitCode extracts the classified code from err. Unclassified errors map
// to CodeInternal.
func ExitCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

func notUnderstood(class, selector string) *Error {
	return Errorf(CodeNotUnderstood, "%s does not understand %s", class, selector)
}

func undefinedVar(name string) *Error {
	return Errorf(CodeUndefinedVar, "undefined variable %s", name)
}

func paramAssign(name string) *Error {
	return Errorf(CodeParamAssign, "cannot assign to parameter %s", name)
}

func internalf(format string, args ...interface{}) *Error {
	return Errorf(CodeInternal, format, args...)
}
