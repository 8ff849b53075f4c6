package finance

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

func TestCalculateProduct_ReferenceFigures(t *testing.T) {
	calc := NewCalculator(DefaultRates())
	res, err := calc.CalculateProduct(sampleProduct())
	if err != nil {
		t.Fatalf("CalculateProduct() error = %v", err)
	}

	tests := []struct {
		name string
		got  float64
		want string
	}{
		{"priceWithTax", res.PriceWithTax, "119.00"},
		{"marginPercent", res.MarginPercent, "57.98"},
		{"breakEvenUnits", res.BreakEvenUnits, "16.95"},
		{"roiPercent", res.ROIPercent, "-76.20"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.got); got != tt.want {
			t.Errorf("%s = %s, want %s", tt.name, got, tt.want)
		}
	}
	if res.ProductName != "Widget" {
		t.Errorf("ProductName = %q, want Widget", res.ProductName)
	}
}

func TestCalculateProduct_PriceWithTaxInvariant(t *testing.T) {
	calc := NewCalculator(DefaultRates())
	for _, base := range []float64{0.01, 1, 99.99, 100, 1234.5, 1e6, 7.3e9} {
		in := sampleProduct()
		in.BasePrice = base
		in.VariableCost = 0
		res, err := calc.CalculateProduct(in)
		if err != nil {
			t.Fatalf("CalculateProduct(base=%v) error = %v", base, err)
		}
		if math.Abs(res.PriceWithTax-base*1.19) > tolerance*math.Max(1, base) {
			t.Errorf("PriceWithTax(base=%v) = %v, want %v", base, res.PriceWithTax, base*1.19)
		}
	}
}

func TestCalculateProduct_DivisionByZero(t *testing.T) {
	calc := NewCalculator(DefaultRates())

	tests := []struct {
		name  string
		in    func() ProductInput
		field string
	}{
		{
			name: "break-even when variable cost equals price with tax",
			in: func() ProductInput {
				in := sampleProduct()
				in.VariableCost = in.BasePrice * 1.19
				return in
			},
			field: FieldVariableCost,
		},
		{
			name: "roi with zero investment",
			in: func() ProductInput {
				in := sampleProduct()
				in.Investment = 0
				return in
			},
			field: FieldInvestment,
		},
		{
			name: "margin with zero base price",
			in: func() ProductInput {
				in := sampleProduct()
				in.BasePrice = 0
				return in
			},
			field: FieldBasePrice,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := calc.CalculateProduct(tt.in())
			if !errors.Is(err, ErrDivisionByZero) {
				t.Fatalf("error = %v, want ErrDivisionByZero", err)
			}
			var calcErr *CalculationError
			if !errors.As(err, &calcErr) || calcErr.Field != tt.field {
				t.Fatalf("error = %#v, want field %s", err, tt.field)
			}
			if res != (ProductResult{}) {
				t.Errorf("partial result returned: %+v", res)
			}
		})
	}
}

func TestCalculateProduct_TinyNonZeroDenominators(t *testing.T) {
	calc := NewCalculator(DefaultRates())

	tests := []struct {
		name string
		in   func() ProductInput
	}{
		{
			name: "tiny investment",
			in: func() ProductInput {
				in := sampleProduct()
				in.Investment = 0.0000000005
				return in
			},
		},
		{
			name: "tiny base price",
			in: func() ProductInput {
				in := sampleProduct()
				in.BasePrice = 0.0000000001
				return in
			},
		},
		{
			name: "tiny price and variable cost apart",
			in: func() ProductInput {
				in := sampleProduct()
				in.BasePrice = 0.0000000001
				in.VariableCost = 0.0000000001
				return in
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := calc.CalculateProduct(tt.in())
			if err != nil {
				t.Fatalf("CalculateProduct() error = %v", err)
			}
			for _, v := range []float64{res.MarginPercent, res.BreakEvenUnits, res.ROIPercent} {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("non-finite result: %+v", res)
				}
			}
		})
	}
}

func TestCalculateProduct_TinyBreakEvenIsRelative(t *testing.T) {
	calc := NewCalculator(DefaultRates())
	in := sampleProduct()
	in.BasePrice = 0.0000000001
	in.VariableCost = in.BasePrice * 1.19
	if _, err := calc.CalculateProduct(in); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("error = %v, want ErrDivisionByZero", err)
	}
}

func TestService_TinyInvestmentIsRecorded(t *testing.T) {
	svc := newTestService()
	f := sampleProductFields()
	f[FieldInvestment] = "0.0000000005"
	if _, err := svc.Calculate(DomainProduct, f); err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if n := len(mustHistory(t, svc, DomainProduct)); n != 1 {
		t.Fatalf("history len = %d, want 1", n)
	}
}

func TestCalculateProduct_RejectsNegativeInput(t *testing.T) {
	calc := NewCalculator(DefaultRates())
	in := sampleProduct()
	in.Investment = -500
	if _, err := calc.CalculateProduct(in); !errors.Is(err, ErrParse) {
		t.Fatalf("error = %v, want ErrParse", err)
	}
}

func TestCalculateProduct_Overflow(t *testing.T) {
	calc := NewCalculator(DefaultRates())
	in := sampleProduct()
	in.BasePrice = math.MaxFloat64
	if _, err := calc.CalculateProduct(in); !errors.Is(err, ErrOverflow) {
		t.Fatalf("error = %v, want ErrOverflow", err)
	}
}

func TestCalculateEmployer_TotalIdentity(t *testing.T) {
	calc := NewCalculator(DefaultRates())
	tests := []EmployerInput{
		{BaseSalary: 0, AdditionalBenefits: 0},
		{BaseSalary: 1300000, AdditionalBenefits: 0},
		{BaseSalary: 1300000, AdditionalBenefits: 162000},
		{BaseSalary: 2500000.75, AdditionalBenefits: 10.5},
		{BaseSalary: 0, AdditionalBenefits: 400},
	}
	for _, in := range tests {
		res, err := calc.CalculateEmployer(in)
		if err != nil {
			t.Fatalf("CalculateEmployer(%+v) error = %v", in, err)
		}
		want := in.BaseSalary + 0.09*in.BaseSalary + 0.205*in.BaseSalary + 0.2183*in.BaseSalary + in.AdditionalBenefits
		if math.Abs(res.TotalPayrollCost-want) > tolerance*math.Max(1, want) {
			t.Errorf("TotalPayrollCost(%+v) = %v, want %v", in, res.TotalPayrollCost, want)
		}
		if math.Abs(res.PayrollTaxes-0.09*in.BaseSalary) > tolerance*math.Max(1, in.BaseSalary) {
			t.Errorf("PayrollTaxes(%+v) = %v", in, res.PayrollTaxes)
		}
		if res.AdditionalBenefits != in.AdditionalBenefits {
			t.Errorf("AdditionalBenefits = %v, want %v", res.AdditionalBenefits, in.AdditionalBenefits)
		}
	}
}

func TestCalculateEmployer_Figures(t *testing.T) {
	calc := NewCalculator(DefaultRates())
	res, err := calc.CalculateEmployer(EmployerInput{BaseSalary: 1000000, AdditionalBenefits: 50000})
	if err != nil {
		t.Fatalf("CalculateEmployer() error = %v", err)
	}
	checks := map[string]struct {
		got  float64
		want string
	}{
		"payrollTaxes":   {res.PayrollTaxes, "90000.00"},
		"socialSecurity": {res.SocialSecurityContributions, "205000.00"},
		"socialBenefits": {res.SocialBenefitsProvision, "218300.00"},
		"total":          {res.TotalPayrollCost, "1563300.00"},
	}
	for name, c := range checks {
		if got := FormatAmount(c.got); got != c.want {
			t.Errorf("%s = %s, want %s", name, got, c.want)
		}
	}
}

func TestCalculateEmployee_NoOvertime(t *testing.T) {
	calc := NewCalculator(DefaultRates())
	in := EmployeeInput{EmployeeID: "E-1", BaseSalary: 2000000}
	res, err := calc.CalculateEmployee(in)
	if err != nil {
		t.Fatalf("CalculateEmployee() error = %v", err)
	}
	if math.Abs(res.TotalSalary-in.BaseSalary*0.92) > tolerance*in.BaseSalary {
		t.Fatalf("TotalSalary = %v, want %v", res.TotalSalary, in.BaseSalary*0.92)
	}
	if res.EmployeeID != "E-1" {
		t.Errorf("EmployeeID = %q, want E-1", res.EmployeeID)
	}
	if res.DayOvertimePay != 0 || res.NightOvertimePay != 0 || res.SundayOvertimePay != 0 {
		t.Errorf("unexpected overtime pay: %+v", res)
	}
}

func TestCalculateEmployee_Overtime(t *testing.T) {
	calc := NewCalculator(DefaultRates())
	in := EmployeeInput{
		EmployeeID:          "E-2",
		BaseSalary:          2400000,
		DayOvertimeHours:    4,
		NightOvertimeHours:  2,
		SundayOvertimeHours: 1,
	}
	res, err := calc.CalculateEmployee(in)
	if err != nil {
		t.Fatalf("CalculateEmployee() error = %v", err)
	}
	// hourly 10000: day 12500*4, night 17500*2, sunday 20000*1
	want := 2400000*0.92 + 50000 + 35000 + 20000
	if math.Abs(res.TotalSalary-want) > tolerance*want {
		t.Fatalf("TotalSalary = %v, want %v", res.TotalSalary, want)
	}
	if FormatAmount(res.HourlyRate) != "10000.00" {
		t.Errorf("HourlyRate = %v, want 10000", res.HourlyRate)
	}
	if FormatAmount(res.NetSalary) != "2208000.00" {
		t.Errorf("NetSalary = %v, want 2208000", res.NetSalary)
	}
}

func TestCalculateEmployee_ZeroMonthlyHours(t *testing.T) {
	rates := DefaultRates()
	rates.MonthlyHours = 0
	calc := NewCalculator(rates)
	if _, err := calc.CalculateEmployee(EmployeeInput{BaseSalary: 100}); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("error = %v, want ErrDivisionByZero", err)
	}
}

func sampleProduct() ProductInput {
	return ProductInput{
		ProductName:  "Widget",
		BasePrice:    100,
		Cost:         50,
		FixedCosts:   1000,
		VariableCost: 60,
		Investment:   500,
	}
}
