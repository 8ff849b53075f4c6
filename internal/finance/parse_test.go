package finance

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr error
	}{
		{raw: "100", want: 100},
		{raw: " 12.50 ", want: 12.5},
		{raw: ".5", want: 0.5},
		{raw: "5.", want: 5},
		{raw: "0", want: 0},
		{raw: "", wantErr: ErrMissingField},
		{raw: "   ", wantErr: ErrMissingField},
		{raw: "abc", wantErr: ErrParse},
		{raw: "1.2.3", wantErr: ErrParse},
		{raw: ".", wantErr: ErrParse},
		{raw: "-5", wantErr: ErrParse},
		{raw: "1,5", wantErr: ErrParse},
		{raw: "1e3", wantErr: ErrParse},
		{raw: "NaN", wantErr: ErrParse},
		{raw: "Inf", wantErr: ErrParse},
		{raw: "0x10", wantErr: ErrParse},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.raw)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseAmount(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAmount(%q) error = %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParseAmount_OutOfRange(t *testing.T) {
	huge := "1"
	for i := 0; i < 400; i++ {
		huge += "0"
	}
	if _, err := ParseAmount(huge); !errors.Is(err, ErrParse) {
		t.Fatalf("error = %v, want ErrParse", err)
	}
}

func TestParseProductInput(t *testing.T) {
	in, err := ParseProductInput(sampleProductFields())
	if err != nil {
		t.Fatalf("ParseProductInput() error = %v", err)
	}
	if in != sampleProduct() {
		t.Fatalf("ParseProductInput() = %+v, want %+v", in, sampleProduct())
	}
}

func TestParseProductInput_RequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		kind  ErrorKind
	}{
		{"blank base price", FieldBasePrice, "", KindMissingField},
		{"non-numeric cost", FieldCost, "cincuenta", KindParse},
		{"negative fixed costs", FieldFixedCosts, "-1", KindParse},
		{"blank investment", FieldInvestment, " ", KindMissingField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := sampleProductFields()
			f[tt.field] = tt.value
			_, err := ParseProductInput(f)
			var calcErr *CalculationError
			if !errors.As(err, &calcErr) {
				t.Fatalf("error = %v, want *CalculationError", err)
			}
			if calcErr.Kind != tt.kind || calcErr.Field != tt.field {
				t.Fatalf("error = %+v, want kind %s field %s", calcErr, tt.kind, tt.field)
			}
			if !IsValidation(err) {
				t.Errorf("IsValidation(%v) = false", err)
			}
		})
	}
}

func TestParseProductInput_FirstFailureWins(t *testing.T) {
	f := sampleProductFields()
	f[FieldBasePrice] = "x"
	f[FieldInvestment] = ""
	_, err := ParseProductInput(f)
	var calcErr *CalculationError
	if !errors.As(err, &calcErr) || calcErr.Field != FieldBasePrice {
		t.Fatalf("error = %v, want failure on %s", err, FieldBasePrice)
	}
}

func TestParseEmployerInput_BenefitsSoftFail(t *testing.T) {
	for _, raw := range []string{"", "n/a", "-3", "1..2"} {
		in, err := ParseEmployerInput(Fields{FieldBaseSalary: "1300000", FieldAdditionalBenefits: raw})
		if err != nil {
			t.Fatalf("ParseEmployerInput(benefits=%q) error = %v", raw, err)
		}
		if in.AdditionalBenefits != 0 {
			t.Errorf("AdditionalBenefits(%q) = %v, want 0", raw, in.AdditionalBenefits)
		}
	}

	in, err := ParseEmployerInput(Fields{FieldBaseSalary: "1300000", FieldAdditionalBenefits: "162000"})
	if err != nil {
		t.Fatalf("ParseEmployerInput() error = %v", err)
	}
	if in.AdditionalBenefits != 162000 {
		t.Errorf("AdditionalBenefits = %v, want 162000", in.AdditionalBenefits)
	}
}

func TestParseEmployerInput_SalaryRequired(t *testing.T) {
	_, err := ParseEmployerInput(Fields{FieldAdditionalBenefits: "10"})
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("error = %v, want ErrMissingField", err)
	}
}

func TestParseEmployeeInput(t *testing.T) {
	in, err := ParseEmployeeInput(Fields{
		FieldEmployeeID:          "0042",
		FieldBaseSalary:          "2000000",
		FieldDayOvertimeHours:    "3",
		FieldNightOvertimeHours:  "",
		FieldSundayOvertimeHours: "dos",
	})
	if err != nil {
		t.Fatalf("ParseEmployeeInput() error = %v", err)
	}
	want := EmployeeInput{EmployeeID: "0042", BaseSalary: 2000000, DayOvertimeHours: 3}
	if in != want {
		t.Fatalf("ParseEmployeeInput() = %+v, want %+v", in, want)
	}
}

func TestParseEmployeeInput_IDPassesThrough(t *testing.T) {
	in, err := ParseEmployeeInput(Fields{FieldEmployeeID: "  abc-7 ", FieldBaseSalary: "1"})
	if err != nil {
		t.Fatalf("ParseEmployeeInput() error = %v", err)
	}
	if in.EmployeeID != "  abc-7 " {
		t.Fatalf("EmployeeID = %q, want it unmodified", in.EmployeeID)
	}
}

func sampleProductFields() Fields {
	return Fields{
		FieldProductName:  "Widget",
		FieldBasePrice:    "100",
		FieldCost:         "50",
		FieldFixedCosts:   "1000",
		FieldVariableCost: "60",
		FieldInvestment:   "500",
	}
}
