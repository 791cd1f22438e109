package vm

import (
	"errors"
	"fmt"
)

var (
	ErrSetupOrder        = errors.New("setup declarations out of order")
	ErrLoopNesting       = errors.New("malformed loop nesting")
	ErrNegativeLoop      = errors.New("loop value should be non-negative")
	ErrFunctionDef       = errors.New("malformed function definition")
	ErrUndefinedFunction = errors.New("undefined function")
	ErrArity             = errors.New("argument count mismatch")
	ErrRedefined         = errors.New("variable already defined")
	ErrNotSealed         = errors.New("program is not sealed")
	ErrSealed            = errors.New("program is already sealed")
	ErrMaxStepsExceeded  = errors.New("maximum steps exceeded")
)

// Error is a fault tied to a source line. Line 0 means no line is known.
type Error struct {
	Line int
	Msg  string
	Err  error // sentinel classifying the fault, may be nil
}

func (e *Error) Error() string {
	if e.Line <= 0 {
		return e.Msg
	}

	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// errorf builds an *Error classified by kind.
func errorf(line int, kind error, format string, args ...any) *Error {
	return &Error{
		Line: line,
		Msg:  fmt.Sprintf(format, args...),
		Err:  kind,
	}
}
