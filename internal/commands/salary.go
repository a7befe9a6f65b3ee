package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhidhakal/hready/internal/domain/payroll"
	"github.com/abhidhakal/hready/internal/services"
	"github.com/abhidhakal/hready/internal/session"
)

var salaryCmd = &cobra.Command{
	Use:   "salary",
	Short: "Salary records and computation",
}

var computeSpec payroll.Spec

var salaryComputeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute a salary breakdown locally",
	RunE: func(_ *cobra.Command, _ []string) error {
		printBreakdown(computeSpec.Currency, computeSpec.BasicSalary, payroll.Compute(computeSpec))
		return nil
	},
}

var salaryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List salary records (admin)",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		if _, err := a.requireRole(session.RoleAdmin); err != nil {
			return err
		}
		res := services.NewSalaries(a.client).List(cmd.Context())
		if !res.OK {
			return res.Err
		}
		for _, rec := range res.Data {
			fmt.Printf("%s  employee=%s  net=%s  status=%s\n",
				rec.ID, rec.EmployeeID, payroll.FormatAmount(rec.Currency, rec.NetSalary), rec.Status)
		}
		return nil
	}),
}

var salaryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one salary record with re-derived percentages",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		res := services.NewSalaries(a.client).Get(cmd.Context(), args[0])
		if !res.OK {
			return res.Err
		}
		rec := res.Data
		spec := rec.EditSpec()
		printBreakdown(rec.Currency, rec.BasicSalary, payroll.Compute(spec))
		fmt.Printf("Tax rate:       %.3f%%\n", spec.TaxPercentage)
		fmt.Printf("Insurance rate: %.3f%%\n", spec.InsurancePercentage)
		return nil
	}),
}

var payslipOut string

var salaryPayslipCmd = &cobra.Command{
	Use:   "payslip <id>",
	Short: "Export a salary record as a PDF payslip",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		sess, err := a.manager.Current()
		if err != nil {
			return fmt.Errorf("not logged in: run `hready login`")
		}

		res := services.NewSalaries(a.client).Get(cmd.Context(), args[0])
		if !res.OK {
			return res.Err
		}
		rec := res.Data

		out, err := os.Create(payslipOut)
		if err != nil {
			return err
		}
		defer out.Close()

		err = payroll.RenderPayslip(out, payroll.PayslipData{
			EmployeeName: sess.Name,
			Period:       rec.EffectiveDate,
			Currency:     rec.Currency,
			BasicSalary:  rec.BasicSalary,
			Breakdown:    payroll.Compute(rec.EditSpec()),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", payslipOut)
		return nil
	}),
}

func printBreakdown(currency string, basic float64, b payroll.Breakdown) {
	rows := []struct {
		label string
		value float64
	}{
		{"Basic salary", basic},
		{"Total allowances", b.TotalAllowances},
		{"Gross salary", b.GrossSalary},
		{"Tax", b.TaxAmount},
		{"Insurance", b.InsuranceAmount},
		{"Total deductions", b.TotalDeductions},
		{"Net salary", b.NetSalary},
	}
	for _, row := range rows {
		fmt.Printf("%-18s %s\n", row.label+":", payroll.FormatAmount(currency, row.value))
	}
}

func init() {
	flags := salaryComputeCmd.Flags()
	flags.Float64Var(&computeSpec.BasicSalary, "basic", 0, "basic salary")
	flags.Float64Var(&computeSpec.Allowances.Housing, "housing", 0, "housing allowance")
	flags.Float64Var(&computeSpec.Allowances.Transport, "transport", 0, "transport allowance")
	flags.Float64Var(&computeSpec.Allowances.Meal, "meal", 0, "meal allowance")
	flags.Float64Var(&computeSpec.Allowances.Medical, "medical", 0, "medical allowance")
	flags.Float64Var(&computeSpec.Allowances.Other, "other-allowance", 0, "other allowance")
	flags.Float64Var(&computeSpec.TaxPercentage, "tax", 0, "tax percentage of gross")
	flags.Float64Var(&computeSpec.InsurancePercentage, "insurance", 0, "insurance percentage of basic")
	flags.Float64Var(&computeSpec.PensionDeduction, "pension", 0, "flat pension deduction")
	flags.Float64Var(&computeSpec.OtherDeduction, "other-deduction", 0, "flat other deduction")
	flags.StringVar(&computeSpec.Currency, "currency", "NPR", "ISO currency code")

	salaryPayslipCmd.Flags().StringVar(&payslipOut, "out", "payslip.pdf", "output PDF path")

	salaryCmd.AddCommand(salaryComputeCmd)
	salaryCmd.AddCommand(salaryListCmd)
	salaryCmd.AddCommand(salaryShowCmd)
	salaryCmd.AddCommand(salaryPayslipCmd)
}
