package payroll

import (
	"math"
	"testing"
)

func TestComputeDeterminism(t *testing.T) {
	b := Compute(Spec{
		BasicSalary:         50000,
		Allowances:          Allowances{Housing: 5000, Transport: 2000},
		TaxPercentage:       15,
		InsurancePercentage: 5,
	})

	if b.TotalAllowances != 7000 {
		t.Fatalf("totalAllowances: got %v", b.TotalAllowances)
	}
	if b.GrossSalary != 57000 {
		t.Fatalf("grossSalary: got %v", b.GrossSalary)
	}
	if b.TaxAmount != 8550 {
		t.Fatalf("taxAmount: got %v", b.TaxAmount)
	}
	if b.InsuranceAmount != 2500 {
		t.Fatalf("insuranceAmount: got %v", b.InsuranceAmount)
	}
	if b.TotalDeductions != 11050 {
		t.Fatalf("totalDeductions: got %v", b.TotalDeductions)
	}
	if b.NetSalary != 45950 {
		t.Fatalf("netSalary: got %v", b.NetSalary)
	}
}

func TestComputeFlatDeductions(t *testing.T) {
	b := Compute(Spec{
		BasicSalary:      40000,
		PensionDeduction: 1000,
		OtherDeduction:   500,
	})
	if b.TotalDeductions != 1500 {
		t.Fatalf("expected flat deductions 1500, got %v", b.TotalDeductions)
	}
	if b.NetSalary != 38500 {
		t.Fatalf("expected net 38500, got %v", b.NetSalary)
	}
}

func TestComputeTreatsBadInputsAsZero(t *testing.T) {
	b := Compute(Spec{
		BasicSalary: 1000,
		Allowances:  Allowances{Housing: -50, Meal: math.NaN()},
	})
	if b.TotalAllowances != 0 {
		t.Fatalf("negative and NaN allowances should contribute 0, got %v", b.TotalAllowances)
	}
	if b.GrossSalary != 1000 {
		t.Fatalf("expected gross 1000, got %v", b.GrossSalary)
	}
}

func TestDerivePercentagesRoundTrip(t *testing.T) {
	taxPct, insurancePct := DerivePercentages(50000, 57000, 8550, 2500)
	if math.Abs(taxPct-15) > 1e-9 {
		t.Fatalf("expected tax 15%%, got %v", taxPct)
	}
	if math.Abs(insurancePct-5) > 1e-9 {
		t.Fatalf("expected insurance 5%%, got %v", insurancePct)
	}
}

func TestDerivePercentagesZeroDivisors(t *testing.T) {
	taxPct, insurancePct := DerivePercentages(0, 0, 8550, 2500)
	if taxPct != 0 || insurancePct != 0 {
		t.Fatalf("zero divisors must yield 0, got %v and %v", taxPct, insurancePct)
	}
	if math.IsNaN(taxPct) || math.IsNaN(insurancePct) {
		t.Fatal("derived percentages must never be NaN")
	}
}

func TestDeriveThenComputeAgrees(t *testing.T) {
	original := Spec{
		BasicSalary:         50000,
		Allowances:          Allowances{Housing: 5000, Transport: 2000},
		TaxPercentage:       15,
		InsurancePercentage: 5,
	}
	b := Compute(original)

	taxPct, insurancePct := DerivePercentages(original.BasicSalary, b.GrossSalary, b.TaxAmount, b.InsuranceAmount)
	rederived := original
	rederived.TaxPercentage = taxPct
	rederived.InsurancePercentage = insurancePct

	again := Compute(rederived)
	if math.Abs(again.NetSalary-b.NetSalary) > 1e-9 {
		t.Fatalf("edit round trip drifted: %v vs %v", again.NetSalary, b.NetSalary)
	}
}
