package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhidhakal/hready/internal/services"
	"github.com/abhidhakal/hready/internal/session"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Bank accounts for salary payment",
}

var bankShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your bank account",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		res := services.NewBanks(a.client).Mine(cmd.Context())
		if !res.OK {
			return res.Err
		}
		b := res.Data
		fmt.Printf("%s  %s  %s (%s)\n", b.BankName, b.AccountNumber, b.AccountName, b.Branch)
		return nil
	}),
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all bank accounts (admin)",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		if _, err := a.requireRole(session.RoleAdmin); err != nil {
			return err
		}
		res := services.NewBanks(a.client).List(cmd.Context())
		if !res.OK {
			return res.Err
		}
		for _, b := range res.Data {
			fmt.Printf("%s  employee=%s  %s %s\n", b.ID, b.EmployeeID, b.BankName, b.AccountNumber)
		}
		return nil
	}),
}

var (
	bankName    string
	bankAccName string
	bankAccNum  string
	bankBranch  string
)

var bankAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register your bank account",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		res := services.NewBanks(a.client).Create(cmd.Context(), services.BankAccountInput{
			BankName:      bankName,
			AccountName:   bankAccName,
			AccountNumber: bankAccNum,
			Branch:        bankBranch,
		})
		if !res.OK {
			return res.Err
		}
		fmt.Printf("Registered bank account %s\n", res.Data.ID)
		return nil
	}),
}

func init() {
	bankAddCmd.Flags().StringVar(&bankName, "bank", "", "bank name")
	bankAddCmd.Flags().StringVar(&bankAccName, "holder", "", "account holder name")
	bankAddCmd.Flags().StringVar(&bankAccNum, "number", "", "account number")
	bankAddCmd.Flags().StringVar(&bankBranch, "branch", "", "branch")
	_ = bankAddCmd.MarkFlagRequired("bank")
	_ = bankAddCmd.MarkFlagRequired("number")

	bankCmd.AddCommand(bankShowCmd)
	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankAddCmd)
}
