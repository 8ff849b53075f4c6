package finance

import "strings"

// Domain selects which calculator and history log a request targets.
type Domain string

const (
	DomainProduct  Domain = "product"
	DomainEmployer Domain = "employer"
	DomainEmployee Domain = "employee"
	// DomainGeneric is the fallback for categories without a calculator.
	DomainGeneric Domain = "generic"
)

// Category is an entry of the category list shown on the home screen.
type Category struct {
	Domain Domain `json:"domain"`
	Label  string `json:"label"`
}

var categories = []Category{
	{Domain: DomainProduct, Label: "Cálculos de Productos"},
	{Domain: DomainEmployer, Label: "Cálculos de Empleador"},
	{Domain: DomainEmployee, Label: "Cálculos de Empleado"},
}

// Categories returns the calculable categories in display order.
func Categories() []Category {
	return append([]Category{}, categories...)
}

// ParseDomain resolves a category label or domain slug. Anything unknown maps
// to DomainGeneric.
func ParseDomain(s string) Domain {
	s = strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(s, string(c.Domain)) || strings.EqualFold(s, c.Label) {
			return c.Domain
		}
	}
	return DomainGeneric
}

// Label returns the display label, or "" for the generic domain.
func (d Domain) Label() string {
	for _, c := range categories {
		if c.Domain == d {
			return c.Label
		}
	}
	return ""
}

// Calculable reports whether d has a calculator and a history log.
func (d Domain) Calculable() bool {
	switch d {
	case DomainProduct, DomainEmployer, DomainEmployee:
		return true
	}
	return false
}

// DetailTitle is the heading of the generic category screen.
func DetailTitle(name string) string {
	if strings.TrimSpace(name) == "" {
		name = "Sin nombre"
	}
	return "Detalles de: " + name
}

// InputFields lists the form fields accepted by d, in form order.
func (d Domain) InputFields() []string {
	switch d {
	case DomainProduct:
		return []string{FieldProductName, FieldBasePrice, FieldCost, FieldFixedCosts, FieldVariableCost, FieldInvestment}
	case DomainEmployer:
		return []string{FieldBaseSalary, FieldAdditionalBenefits}
	case DomainEmployee:
		return []string{FieldEmployeeID, FieldBaseSalary, FieldDayOvertimeHours, FieldNightOvertimeHours, FieldSundayOvertimeHours}
	}
	return nil
}
