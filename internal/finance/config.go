package finance

import (
	"os"
	"strconv"
)

// Rates holds the statutory factors applied by the calculators.
type Rates struct {
	// VATFactor multiplies the base price to obtain the price with tax.
	VATFactor float64
	// PayrollTaxRate is the employer's parafiscal contribution.
	PayrollTaxRate float64
	// SocialSecurityRate is the employer's social security contribution.
	SocialSecurityRate float64
	// SocialBenefitsRate is the provision for mandated employee benefits.
	SocialBenefitsRate float64
	// PensionRate and HealthRate are deducted from the employee's salary.
	PensionRate float64
	HealthRate  float64
	// MonthlyHours divides the monthly salary into an hourly wage.
	MonthlyHours float64
	// Overtime premiums applied to the hourly wage.
	DayOvertimeFactor    float64
	NightOvertimeFactor  float64
	SundayOvertimeFactor float64
}

// DefaultRates returns the factors used when no override is configured.
func DefaultRates() Rates {
	return Rates{
		VATFactor:            1.19,
		PayrollTaxRate:       0.09,
		SocialSecurityRate:   0.205,
		SocialBenefitsRate:   0.2183,
		PensionRate:          0.04,
		HealthRate:           0.04,
		MonthlyHours:         240,
		DayOvertimeFactor:    1.25,
		NightOvertimeFactor:  1.75,
		SundayOvertimeFactor: 2.00,
	}
}

// Config holds environment-driven settings for the calculation engine.
type Config struct {
	Rates Rates
	// ReportTitlePrefix prefixes the title of exported history reports.
	ReportTitlePrefix string
}

func LoadConfig() Config {
	def := DefaultRates()
	return Config{
		Rates: Rates{
			VATFactor:            getFloat("VAT_FACTOR", def.VATFactor),
			PayrollTaxRate:       getFloat("PAYROLL_TAX_RATE", def.PayrollTaxRate),
			SocialSecurityRate:   getFloat("SOCIAL_SECURITY_RATE", def.SocialSecurityRate),
			SocialBenefitsRate:   getFloat("SOCIAL_BENEFITS_RATE", def.SocialBenefitsRate),
			PensionRate:          getFloat("PENSION_RATE", def.PensionRate),
			HealthRate:           getFloat("HEALTH_RATE", def.HealthRate),
			MonthlyHours:         getFloat("MONTHLY_HOURS", def.MonthlyHours),
			DayOvertimeFactor:    getFloat("DAY_OVERTIME_FACTOR", def.DayOvertimeFactor),
			NightOvertimeFactor:  getFloat("NIGHT_OVERTIME_FACTOR", def.NightOvertimeFactor),
			SundayOvertimeFactor: getFloat("SUNDAY_OVERTIME_FACTOR", def.SundayOvertimeFactor),
		},
		ReportTitlePrefix: getenv("REPORT_TITLE_PREFIX", "FinanciApp"),
	}
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
