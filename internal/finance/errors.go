package finance

import (
	"errors"
	"fmt"
)

// UserMessage is what the presentation layer shows for any failed calculation.
const UserMessage = "Error en los cálculos. Verifique los valores ingresados."

var (
	ErrParse          = errors.New("invalid number")
	ErrMissingField   = errors.New("required field missing")
	ErrDivisionByZero = errors.New("division by zero")
	ErrOverflow       = errors.New("result out of range")
	ErrUnknownDomain  = errors.New("no calculator for domain")
)

// ErrorKind classifies a failed calculation.
type ErrorKind string

const (
	KindParse          ErrorKind = "PARSE_ERROR"
	KindMissingField   ErrorKind = "MISSING_REQUIRED_FIELD"
	KindDivisionByZero ErrorKind = "DIVISION_BY_ZERO"
	KindOverflow       ErrorKind = "NUMERIC_OVERFLOW"
)

// CalculationError is the single error outcome of a calculation call.
type CalculationError struct {
	Kind    ErrorKind
	Domain  Domain
	Field   string
	Message string
}

func (e *CalculationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Domain, e.Message)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Field, e.Message)
}

// Unwrap exposes the sentinel matching Kind so callers can use errors.Is.
func (e *CalculationError) Unwrap() error {
	switch e.Kind {
	case KindParse:
		return ErrParse
	case KindMissingField:
		return ErrMissingField
	case KindDivisionByZero:
		return ErrDivisionByZero
	case KindOverflow:
		return ErrOverflow
	}
	return nil
}

// IsValidation reports whether err stems from bad input rather than arithmetic.
func IsValidation(err error) bool {
	return errors.Is(err, ErrParse) || errors.Is(err, ErrMissingField)
}
