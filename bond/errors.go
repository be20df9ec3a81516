package bond

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks inputs rejected before any arithmetic runs.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrArithmeticDomain marks inputs that pass validation but leave the
	// domain of the formulas (non-positive discount base, non-finite result).
	ErrArithmeticDomain = errors.New("arithmetic domain error")
)

// InputError describes why an evaluation was refused.
type InputError struct {
	Op     string
	Field  string
	Value  float64
	Reason string
	// Kind is ErrInvalidArgument or ErrArithmeticDomain.
	Kind error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s %s (got %g): %v", e.Op, e.Field, e.Reason, e.Value, e.Kind)
}

func (e *InputError) Unwrap() error {
	return e.Kind
}

func invalid(op, field string, value float64, reason string) error {
	return &InputError{Op: op, Field: field, Value: value, Reason: reason, Kind: ErrInvalidArgument}
}

func outOfDomain(op, field string, value float64, reason string) error {
	return &InputError{Op: op, Field: field, Value: value, Reason: reason, Kind: ErrArithmeticDomain}
}
