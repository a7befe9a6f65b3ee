package payroll

import "math"

// Spec is an employee's compensation configuration as entered or loaded.
type Spec struct {
	BasicSalary         float64    `json:"basicSalary"`
	Allowances          Allowances `json:"allowances"`
	TaxPercentage       float64    `json:"taxPercentage"`
	InsurancePercentage float64    `json:"insurancePercentage"`
	PensionDeduction    float64    `json:"pensionDeduction"`
	OtherDeduction      float64    `json:"otherDeduction"`
	Currency            string     `json:"currency"`
	EffectiveDate       string     `json:"effectiveDate,omitempty"`
	Status              string     `json:"status,omitempty"`
}

type Allowances struct {
	Housing   float64 `json:"housing"`
	Transport float64 `json:"transport"`
	Meal      float64 `json:"meal"`
	Medical   float64 `json:"medical"`
	Other     float64 `json:"other"`
}

// Breakdown holds the derived salary figures. These are never a source of
// truth on their own: every display, preview, and persisted record must
// recompute them through Compute from the current Spec inputs.
type Breakdown struct {
	TotalAllowances float64 `json:"totalAllowances"`
	GrossSalary     float64 `json:"grossSalary"`
	TaxAmount       float64 `json:"taxAmount"`
	InsuranceAmount float64 `json:"insuranceAmount"`
	TotalDeductions float64 `json:"totalDeductions"`
	NetSalary       float64 `json:"netSalary"`
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Compute derives the full salary breakdown. Blank or unparseable form
// inputs arrive as zero values; anything negative or NaN is treated as 0
// rather than erroring, matching how the entry forms behave.
func Compute(spec Spec) Breakdown {
	basic := amount(spec.BasicSalary)
	total := amount(spec.Allowances.Housing) +
		amount(spec.Allowances.Transport) +
		amount(spec.Allowances.Meal) +
		amount(spec.Allowances.Medical) +
		amount(spec.Allowances.Other)

	gross := basic + total
	tax := gross * amount(spec.TaxPercentage) / 100
	insurance := basic * amount(spec.InsurancePercentage) / 100
	deductions := tax + insurance + amount(spec.PensionDeduction) + amount(spec.OtherDeduction)

	return Breakdown{
		TotalAllowances: total,
		GrossSalary:     gross,
		TaxAmount:       tax,
		InsuranceAmount: insurance,
		TotalDeductions: deductions,
		NetSalary:       gross - deductions,
	}
}

// DerivePercentages reconstructs the percentage fields from a persisted
// record's absolute amounts, so an edit form shows what was actually
// charged rather than whatever percentages happened to be stored. A zero
// divisor yields 0, never NaN.
func DerivePercentages(basicSalary, grossSalary, taxAmount, insuranceAmount float64) (taxPct, insurancePct float64) {
	if grossSalary > 0 {
		taxPct = taxAmount / grossSalary * 100
	}
	if basicSalary > 0 {
		insurancePct = insuranceAmount / basicSalary * 100
	}
	return taxPct, insurancePct
}

func amount(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
