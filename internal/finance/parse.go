package finance

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Form field names, shared by the CLI flags and the HTTP payload.
const (
	FieldProductName         = "productName"
	FieldBasePrice           = "basePrice"
	FieldCost                = "cost"
	FieldFixedCosts          = "fixedCosts"
	FieldVariableCost        = "variableCost"
	FieldInvestment          = "investment"
	FieldBaseSalary          = "baseSalary"
	FieldAdditionalBenefits  = "additionalBenefits"
	FieldEmployeeID          = "employeeId"
	FieldDayOvertimeHours    = "dayOvertimeHours"
	FieldNightOvertimeHours  = "nightOvertimeHours"
	FieldSundayOvertimeHours = "sundayOvertimeHours"
)

// Fields maps a form field name to the text the user typed.
type Fields map[string]string

// ParseAmount parses a non-negative decimal written with digits and at most
// one '.' separator. Blank text yields ErrMissingField, anything else that
// does not fit the grammar yields ErrParse.
func ParseAmount(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrMissingField
	}
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		case r == '-':
			return 0, fmt.Errorf("%w: %q must not be negative", ErrParse, s)
		default:
			return 0, fmt.Errorf("%w: unexpected %q in %q", ErrParse, r, s)
		}
	}
	if digits == 0 || dots > 1 {
		return 0, fmt.Errorf("%w: %q is not a decimal number", ErrParse, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is out of range", ErrParse, s)
	}
	return v, nil
}

// ParseProductInput builds a ProductInput. Every numeric field is required.
func ParseProductInput(f Fields) (ProductInput, error) {
	p := parser{domain: DomainProduct, fields: f}
	in := ProductInput{
		ProductName:  f[FieldProductName],
		BasePrice:    p.required(FieldBasePrice),
		Cost:         p.required(FieldCost),
		FixedCosts:   p.required(FieldFixedCosts),
		VariableCost: p.required(FieldVariableCost),
		Investment:   p.required(FieldInvestment),
	}
	if p.err != nil {
		return ProductInput{}, p.err
	}
	return in, nil
}

// ParseEmployerInput builds an EmployerInput; additional benefits fall back to 0.
func ParseEmployerInput(f Fields) (EmployerInput, error) {
	p := parser{domain: DomainEmployer, fields: f}
	in := EmployerInput{
		BaseSalary:         p.required(FieldBaseSalary),
		AdditionalBenefits: p.optional(FieldAdditionalBenefits),
	}
	if p.err != nil {
		return EmployerInput{}, p.err
	}
	return in, nil
}

// ParseEmployeeInput builds an EmployeeInput; overtime hours fall back to 0.
func ParseEmployeeInput(f Fields) (EmployeeInput, error) {
	p := parser{domain: DomainEmployee, fields: f}
	in := EmployeeInput{
		EmployeeID:          f[FieldEmployeeID],
		BaseSalary:          p.required(FieldBaseSalary),
		DayOvertimeHours:    p.optional(FieldDayOvertimeHours),
		NightOvertimeHours:  p.optional(FieldNightOvertimeHours),
		SundayOvertimeHours: p.optional(FieldSundayOvertimeHours),
	}
	if p.err != nil {
		return EmployeeInput{}, p.err
	}
	return in, nil
}

// parser keeps only the first failure; later fields are skipped.
type parser struct {
	domain Domain
	fields Fields
	err    error
}

func (p *parser) required(name string) float64 {
	if p.err != nil {
		return 0
	}
	v, err := ParseAmount(p.fields[name])
	if err == nil {
		return v
	}
	if errors.Is(err, ErrMissingField) {
		p.err = &CalculationError{Kind: KindMissingField, Domain: p.domain, Field: name, Message: "is required"}
	} else {
		p.err = &CalculationError{Kind: KindParse, Domain: p.domain, Field: name, Message: strings.TrimPrefix(err.Error(), ErrParse.Error()+": ")}
	}
	return 0
}

func (p *parser) optional(name string) float64 {
	v, err := ParseAmount(p.fields[name])
	if err != nil {
		return 0
	}
	return v
}
