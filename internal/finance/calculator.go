package finance

import "math"

// breakEvenTolerance is the fraction of max(priceWithTax, variableCost) under
// which their difference counts as zero.
const breakEvenTolerance = 1e-9

// Calculator evaluates the pricing and payroll formulas. It holds no state
// besides its rates and is safe for concurrent use.
type Calculator struct {
	Rates Rates
}

func NewCalculator(rates Rates) Calculator {
	return Calculator{Rates: rates}
}

// CalculateProduct derives price with tax, margin, break-even volume and ROI.
func (c Calculator) CalculateProduct(in ProductInput) (ProductResult, error) {
	if err := checkInputs(DomainProduct,
		named{FieldBasePrice, in.BasePrice},
		named{FieldCost, in.Cost},
		named{FieldFixedCosts, in.FixedCosts},
		named{FieldVariableCost, in.VariableCost},
		named{FieldInvestment, in.Investment},
	); err != nil {
		return ProductResult{}, err
	}

	priceWithTax := in.BasePrice * c.Rates.VATFactor
	if err := checkOutputs(DomainProduct, priceWithTax); err != nil {
		return ProductResult{}, err
	}
	margin, err := ratio(DomainProduct, FieldBasePrice, priceWithTax-in.Cost, priceWithTax)
	if err != nil {
		return ProductResult{}, err
	}
	unitMargin := priceWithTax - in.VariableCost
	if math.Abs(unitMargin) <= breakEvenTolerance*math.Max(priceWithTax, in.VariableCost) {
		unitMargin = 0
	}
	breakEven, err := ratio(DomainProduct, FieldVariableCost, in.FixedCosts, unitMargin)
	if err != nil {
		return ProductResult{}, err
	}
	roi, err := ratio(DomainProduct, FieldInvestment, priceWithTax-in.Investment, in.Investment)
	if err != nil {
		return ProductResult{}, err
	}

	res := ProductResult{
		ProductName:    in.ProductName,
		PriceWithTax:   priceWithTax,
		MarginPercent:  margin * 100,
		BreakEvenUnits: breakEven,
		ROIPercent:     roi * 100,
	}
	if err := checkOutputs(DomainProduct, res.PriceWithTax, res.MarginPercent, res.BreakEvenUnits, res.ROIPercent); err != nil {
		return ProductResult{}, err
	}
	return res, nil
}

// CalculateEmployer derives the employer's total payroll cost for one salary.
func (c Calculator) CalculateEmployer(in EmployerInput) (EmployerResult, error) {
	if err := checkInputs(DomainEmployer,
		named{FieldBaseSalary, in.BaseSalary},
		named{FieldAdditionalBenefits, in.AdditionalBenefits},
	); err != nil {
		return EmployerResult{}, err
	}

	payrollTaxes := in.BaseSalary * c.Rates.PayrollTaxRate
	socialSecurity := in.BaseSalary * c.Rates.SocialSecurityRate
	socialBenefits := in.BaseSalary * c.Rates.SocialBenefitsRate
	total := in.BaseSalary + payrollTaxes + socialSecurity + socialBenefits + in.AdditionalBenefits

	res := EmployerResult{
		BaseSalary:                  in.BaseSalary,
		TotalPayrollCost:            total,
		PayrollTaxes:                payrollTaxes,
		SocialSecurityContributions: socialSecurity,
		SocialBenefitsProvision:     socialBenefits,
		AdditionalBenefits:          in.AdditionalBenefits,
	}
	if err := checkOutputs(DomainEmployer, total); err != nil {
		return EmployerResult{}, err
	}
	return res, nil
}

// CalculateEmployee derives net pay after deductions plus overtime pay.
func (c Calculator) CalculateEmployee(in EmployeeInput) (EmployeeResult, error) {
	if err := checkInputs(DomainEmployee,
		named{FieldBaseSalary, in.BaseSalary},
		named{FieldDayOvertimeHours, in.DayOvertimeHours},
		named{FieldNightOvertimeHours, in.NightOvertimeHours},
		named{FieldSundayOvertimeHours, in.SundayOvertimeHours},
	); err != nil {
		return EmployeeResult{}, err
	}

	pension := in.BaseSalary * c.Rates.PensionRate
	health := in.BaseSalary * c.Rates.HealthRate
	net := in.BaseSalary - pension - health

	hourly, err := ratio(DomainEmployee, FieldBaseSalary, in.BaseSalary, c.Rates.MonthlyHours)
	if err != nil {
		return EmployeeResult{}, err
	}
	dayPay := hourly * c.Rates.DayOvertimeFactor * in.DayOvertimeHours
	nightPay := hourly * c.Rates.NightOvertimeFactor * in.NightOvertimeHours
	sundayPay := hourly * c.Rates.SundayOvertimeFactor * in.SundayOvertimeHours

	res := EmployeeResult{
		EmployeeID:        in.EmployeeID,
		TotalSalary:       net + dayPay + nightPay + sundayPay,
		PensionDeduction:  pension,
		HealthDeduction:   health,
		NetSalary:         net,
		HourlyRate:        hourly,
		DayOvertimePay:    dayPay,
		NightOvertimePay:  nightPay,
		SundayOvertimePay: sundayPay,
	}
	if err := checkOutputs(DomainEmployee, res.TotalSalary); err != nil {
		return EmployeeResult{}, err
	}
	return res, nil
}

type named struct {
	field string
	value float64
}

func checkInputs(d Domain, values ...named) error {
	for _, v := range values {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) || v.value < 0 {
			return &CalculationError{Kind: KindParse, Domain: d, Field: v.field, Message: "must be a non-negative finite number"}
		}
	}
	return nil
}

func ratio(d Domain, field string, num, den float64) (float64, error) {
	if den == 0 {
		return 0, &CalculationError{Kind: KindDivisionByZero, Domain: d, Field: field, Message: "denominator is zero"}
	}
	return num / den, nil
}

func checkOutputs(d Domain, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &CalculationError{Kind: KindOverflow, Domain: d, Message: "result is not a finite number"}
		}
	}
	return nil
}
