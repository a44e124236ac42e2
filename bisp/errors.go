package bisp

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an Error value.
type ErrorKind int

const (
	SyntaxError ErrorKind = iota
	TypeError
	ArityError
	DivisionByZero
	ModuloByZero
	UnknownFunction
)

// NoError is the kind reported for values that are not Error values.
const NoError ErrorKind = -2

func (k ErrorKind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case TypeError:
		return "TypeError"
	case ArityError:
		return "ArityError"
	case DivisionByZero:
		return "DivisionByZero"
	case ModuloByZero:
		return "ModuloByZero"
	case UnknownFunction:
		return "UnknownFunction"
	case NoError:
		return "NoError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// EvalError is the Go error form of an Error value.
type EvalError struct {
	Kind    ErrorKind
	Message string
}

func (e *EvalError) Error() string {
	return "Error: " + e.Message
}

// Is matches any *EvalError of the same kind, so callers can write
// errors.Is(err, &EvalError{Kind: DivisionByZero}).
func (e *EvalError) Is(target error) bool {
	other, ok := target.(*EvalError)
	return ok && other.Kind == e.Kind
}

// Err returns v as an *EvalError when v is an Error value, and nil otherwise.
func (v *Value) Err() error {
	if v.kind != KindError {
		return nil
	}
	return &EvalError{Kind: v.errKind, Message: v.str}
}

var (
	ErrStepQuotaExceeded  = errors.New("step quota exceeded")
	ErrRecursionLimit     = errors.New("recursion limit exceeded")
	ErrValueQuotaExceeded = errors.New("value quota exceeded")
)

// ContractViolation is the panic payload for misuse of the ownership API:
// appending to a non-list, popping out of range, releasing twice. These are
// programming errors, never user-facing Error values.
type ContractViolation string

func (c ContractViolation) Error() string {
	return "bisp: contract violation: " + string(c)
}

func contractViolation(msg string) ContractViolation {
	return ContractViolation(msg)
}
