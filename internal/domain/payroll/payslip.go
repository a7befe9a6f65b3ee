package payroll

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

type PayslipData struct {
	EmployeeName string
	Email        string
	Period       string
	Currency     string
	BasicSalary  float64
	Breakdown    Breakdown
}

// RenderPayslip writes an A4 payslip PDF for one employee. The figures
// come from Compute output so the document can never disagree with what
// the calculator would show on screen.
func RenderPayslip(w io.Writer, data PayslipData) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", data.EmployeeName))
	pdf.Ln(7)
	if data.Email != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Email: %s", data.Email))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", data.Period))
	pdf.Ln(10)

	b := data.Breakdown
	rows := []struct {
		label string
		value float64
	}{
		{"Basic Salary", data.BasicSalary},
		{"Total Allowances", b.TotalAllowances},
		{"Gross Salary", b.GrossSalary},
		{"Tax", b.TaxAmount},
		{"Insurance", b.InsuranceAmount},
		{"Total Deductions", b.TotalDeductions},
	}
	for _, row := range rows {
		pdf.Cell(0, 8, fmt.Sprintf("%s: %s", row.label, FormatAmount(data.Currency, row.value)))
		pdf.Ln(7)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net Salary: %s", FormatAmount(data.Currency, b.NetSalary)))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render payslip: %w", err)
	}
	return nil
}
