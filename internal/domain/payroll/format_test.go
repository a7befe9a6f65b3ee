package payroll

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatAmountNPR(t *testing.T) {
	got := FormatAmount("NPR", 57000)
	if !strings.HasPrefix(got, "Rs. ") {
		t.Fatalf("NPR must use the literal Rs. prefix, got %q", got)
	}
	if !strings.Contains(got, "57,000") {
		t.Fatalf("expected digit grouping, got %q", got)
	}
}

func TestFormatAmountUnknownCodeFallsBack(t *testing.T) {
	got := FormatAmount("???", 1234.5)
	if got != "1234.50" {
		t.Fatalf("unknown code should fall back to the raw number, got %q", got)
	}
}

func TestFormatAmountKnownCode(t *testing.T) {
	got := FormatAmount("USD", 10)
	if got == "" || got == "10" {
		t.Fatalf("expected a currency-formatted value, got %q", got)
	}
}

func TestRenderPayslip(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPayslip(&buf, PayslipData{
		EmployeeName: "Asha Karki",
		Period:       "2025-07",
		Currency:     "NPR",
		BasicSalary:  50000,
		Breakdown: Compute(Spec{
			BasicSalary:         50000,
			Allowances:          Allowances{Housing: 5000, Transport: 2000},
			TaxPercentage:       15,
			InsurancePercentage: 5,
		}),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("expected a PDF document")
	}
}
