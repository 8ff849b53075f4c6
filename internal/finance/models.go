package finance

import (
	"fmt"
	"strings"
)

// ProductInput is the parsed product pricing form.
type ProductInput struct {
	ProductName  string  `json:"productName"`
	BasePrice    float64 `json:"basePrice"`
	Cost         float64 `json:"cost"`
	FixedCosts   float64 `json:"fixedCosts"`
	VariableCost float64 `json:"variableCost"`
	Investment   float64 `json:"investment"`
}

// ProductResult holds the pricing figures for one product.
type ProductResult struct {
	ProductName    string  `json:"productName"`
	PriceWithTax   float64 `json:"priceWithTax"`
	MarginPercent  float64 `json:"marginPercent"`
	BreakEvenUnits float64 `json:"breakEvenUnits"`
	ROIPercent     float64 `json:"roiPercent"`
}

// EmployerInput is the parsed employer payroll form.
type EmployerInput struct {
	BaseSalary         float64 `json:"baseSalary"`
	AdditionalBenefits float64 `json:"additionalBenefits"`
}

// EmployerResult is the employer-side cost of one salary.
type EmployerResult struct {
	BaseSalary                  float64 `json:"baseSalary"`
	TotalPayrollCost            float64 `json:"totalPayrollCost"`
	PayrollTaxes                float64 `json:"payrollTaxes"`
	SocialSecurityContributions float64 `json:"socialSecurityContributions"`
	SocialBenefitsProvision     float64 `json:"socialBenefitsProvision"`
	AdditionalBenefits          float64 `json:"additionalBenefits"`
}

// EmployeeInput is the parsed employee payroll form.
type EmployeeInput struct {
	EmployeeID          string  `json:"employeeId"`
	BaseSalary          float64 `json:"baseSalary"`
	DayOvertimeHours    float64 `json:"dayOvertimeHours"`
	NightOvertimeHours  float64 `json:"nightOvertimeHours"`
	SundayOvertimeHours float64 `json:"sundayOvertimeHours"`
}

// EmployeeResult is the monthly pay of one employee including overtime.
type EmployeeResult struct {
	EmployeeID        string  `json:"employeeId"`
	TotalSalary       float64 `json:"totalSalary"`
	PensionDeduction  float64 `json:"pensionDeduction"`
	HealthDeduction   float64 `json:"healthDeduction"`
	NetSalary         float64 `json:"netSalary"`
	HourlyRate        float64 `json:"hourlyRate"`
	DayOvertimePay    float64 `json:"dayOvertimePay"`
	NightOvertimePay  float64 `json:"nightOvertimePay"`
	SundayOvertimePay float64 `json:"sundayOvertimePay"`
}

// Field is one formatted value of a result, in display order.
type Field struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Result is implemented by the three result records.
type Result interface {
	Domain() Domain
	Display() []Field
	Summary() string
}

var (
	_ Result = ProductResult{}
	_ Result = EmployerResult{}
	_ Result = EmployeeResult{}
)

func (ProductResult) Domain() Domain { return DomainProduct }

func (r ProductResult) Display() []Field {
	return []Field{
		{Key: "productName", Label: "Producto", Value: r.ProductName},
		{Key: "priceWithTax", Label: "Precio con IVA", Value: FormatAmount(r.PriceWithTax)},
		{Key: "marginPercent", Label: "Margen de ganancia", Value: FormatPercent(r.MarginPercent)},
		{Key: "breakEvenUnits", Label: "Punto de equilibrio", Value: FormatAmount(r.BreakEvenUnits)},
		{Key: "roiPercent", Label: "ROI", Value: FormatPercent(r.ROIPercent)},
	}
}

func (r ProductResult) Summary() string { return summary(r.Display()) }

func (EmployerResult) Domain() Domain { return DomainEmployer }

func (r EmployerResult) Display() []Field {
	return []Field{
		{Key: "baseSalary", Label: "Salario base", Value: FormatAmount(r.BaseSalary)},
		{Key: "totalPayrollCost", Label: "Costo total de nómina", Value: FormatAmount(r.TotalPayrollCost)},
		{Key: "payrollTaxes", Label: "Aportes parafiscales", Value: FormatAmount(r.PayrollTaxes)},
		{Key: "socialSecurityContributions", Label: "Seguridad social", Value: FormatAmount(r.SocialSecurityContributions)},
		{Key: "socialBenefitsProvision", Label: "Prestaciones sociales", Value: FormatAmount(r.SocialBenefitsProvision)},
	}
}

func (r EmployerResult) Summary() string {
	fields := r.Display()
	return "Para un salario base : " + fields[0].Value + "\n" + summary(fields[1:])
}

func (EmployeeResult) Domain() Domain { return DomainEmployee }

func (r EmployeeResult) Display() []Field {
	return []Field{
		{Key: "employeeId", Label: "Id Empleado", Value: r.EmployeeID},
		{Key: "totalSalary", Label: "Salario total del empleado", Value: FormatAmount(r.TotalSalary)},
	}
}

// Summary is the one-line history entry: employee id and total salary.
func (r EmployeeResult) Summary() string {
	return fmt.Sprintf("Id Empleado: %s, Salario: %s", r.EmployeeID, FormatAmount(r.TotalSalary))
}

func summary(fields []Field) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(f.Label)
		b.WriteString(": ")
		b.WriteString(f.Value)
	}
	return b.String()
}
