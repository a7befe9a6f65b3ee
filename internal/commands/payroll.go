package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	domainpayroll "github.com/abhidhakal/hready/internal/domain/payroll"
	"github.com/abhidhakal/hready/internal/services"
	"github.com/abhidhakal/hready/internal/session"
)

var payrollCmd = &cobra.Command{
	Use:   "payroll",
	Short: "Payroll runs and budget (admin)",
}

var payrollListCmd = &cobra.Command{
	Use:   "list",
	Short: "List payrolls",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		if _, err := a.requireRole(session.RoleAdmin); err != nil {
			return err
		}
		res := services.NewPayrolls(a.client).List(cmd.Context())
		if !res.OK {
			return res.Err
		}
		for _, p := range res.Data {
			fmt.Printf("%s  %s  employee=%s  net=%s  %s\n",
				p.ID, p.Month, p.EmployeeID, domainpayroll.FormatAmount(p.Currency, p.Net), p.Status)
		}
		return nil
	}),
}

var (
	payrollEmployee string
	payrollMonth    string
)

var payrollCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Generate a draft payroll from the active salary record",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		if _, err := a.requireRole(session.RoleAdmin); err != nil {
			return err
		}
		res := services.NewPayrolls(a.client).Create(cmd.Context(), services.PayrollInput{
			EmployeeID: payrollEmployee,
			Month:      payrollMonth,
		})
		if !res.OK {
			return res.Err
		}
		fmt.Printf("Created payroll %s (%s)\n", res.Data.ID, res.Data.Status)
		return nil
	}),
}

var payrollApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a draft payroll",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		if _, err := a.requireRole(session.RoleAdmin); err != nil {
			return err
		}
		res := services.NewPayrolls(a.client).Approve(cmd.Context(), args[0])
		if !res.OK {
			return res.Err
		}
		fmt.Printf("Payroll %s is now %s\n", res.Data.ID, res.Data.Status)
		return nil
	}),
}

var payrollPaidCmd = &cobra.Command{
	Use:   "mark-paid <id>",
	Short: "Mark an approved payroll as paid",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		if _, err := a.requireRole(session.RoleAdmin); err != nil {
			return err
		}
		res := services.NewPayrolls(a.client).MarkPaid(cmd.Context(), args[0])
		if !res.OK {
			return res.Err
		}
		fmt.Printf("Payroll %s is now %s\n", res.Data.ID, res.Data.Status)
		return nil
	}),
}

var payrollBudgetSet float64

var payrollBudgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Show or set the payroll budget",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		if _, err := a.requireRole(session.RoleAdmin); err != nil {
			return err
		}
		svc := services.NewPayrolls(a.client)
		if cmd.Flags().Changed("set") {
			res := svc.SetBudget(cmd.Context(), services.PayrollBudget{Budget: payrollBudgetSet})
			if !res.OK {
				return res.Err
			}
			fmt.Printf("Budget set to %s\n", domainpayroll.FormatAmount(res.Data.Currency, res.Data.Budget))
			return nil
		}
		res := svc.Budget(cmd.Context())
		if !res.OK {
			return res.Err
		}
		fmt.Printf("Budget: %s\n", domainpayroll.FormatAmount(res.Data.Currency, res.Data.Budget))
		return nil
	}),
}

func init() {
	payrollCreateCmd.Flags().StringVar(&payrollEmployee, "employee", "", "employee id")
	payrollCreateCmd.Flags().StringVar(&payrollMonth, "month", "", "payroll month YYYY-MM")
	_ = payrollCreateCmd.MarkFlagRequired("employee")
	_ = payrollCreateCmd.MarkFlagRequired("month")

	payrollBudgetCmd.Flags().Float64Var(&payrollBudgetSet, "set", 0, "new budget amount")

	payrollCmd.AddCommand(payrollListCmd)
	payrollCmd.AddCommand(payrollCreateCmd)
	payrollCmd.AddCommand(payrollApproveCmd)
	payrollCmd.AddCommand(payrollPaidCmd)
	payrollCmd.AddCommand(payrollBudgetCmd)
}
