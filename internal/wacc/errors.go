package wacc

import (
	"errors"
	"fmt"
)

// Kind classifies computation failures so callers can map them to
// HTTP statuses or user-facing guidance.
type Kind string

const (
	// KindValidation covers non-numeric or out-of-range inputs.
	KindValidation Kind = "validation"
	// KindMissingInputs covers absent required rates (no Re and an
	// incomplete CAPM triple, or missing Rd / tax rate).
	KindMissingInputs Kind = "missing_inputs"
	// KindDegenerateCapital covers E + D = 0, where weights are undefined.
	KindDegenerateCapital Kind = "degenerate_capital"
)

// Error is a structured computation error. The core never panics;
// every failure is returned as one of these.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func validationError(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func missingInputsError(message string) *Error {
	return &Error{Kind: KindMissingInputs, Message: message}
}

// ErrDegenerateCapital is returned when equity and debt are both zero.
// Weights E/V and D/V are undefined in that case; reporting 0/0 would
// misstate the capital structure, so Compute fails fast instead.
var ErrDegenerateCapital = &Error{
	Kind:    KindDegenerateCapital,
	Message: "capital structure is degenerate: equity and debt are both zero",
}

// KindOf extracts the error kind, or "" for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
