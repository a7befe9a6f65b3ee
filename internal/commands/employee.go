package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhidhakal/hready/internal/services"
	"github.com/abhidhakal/hready/internal/session"
)

var employeeCmd = &cobra.Command{
	Use:   "employee",
	Short: "Manage employees (admin)",
}

var employeeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all employees",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		if _, err := a.requireRole(session.RoleAdmin); err != nil {
			return err
		}
		res := services.NewEmployees(a.client).List(cmd.Context())
		if !res.OK {
			return res.Err
		}
		for _, e := range res.Data {
			fmt.Printf("%s  %s <%s>  role=%s  status=%s\n", e.ID, e.Name, e.Email, e.Role, e.Status)
		}
		return nil
	}),
}

var employeeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one employee",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		if _, err := a.requireRole(session.RoleAdmin); err != nil {
			return err
		}
		res := services.NewEmployees(a.client).Get(cmd.Context(), args[0])
		if !res.OK {
			return res.Err
		}
		printEmployee(res.Data)
		return nil
	}),
}

var newEmployee services.EmployeeInput

var employeeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an employee account",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		if _, err := a.requireRole(session.RoleAdmin); err != nil {
			return err
		}
		res := services.NewEmployees(a.client).Create(cmd.Context(), newEmployee)
		if !res.OK {
			return res.Err
		}
		fmt.Printf("Created %s (%s)\n", res.Data.Name, res.Data.ID)
		return nil
	}),
}

var employeeRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete an employee account",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		if _, err := a.requireRole(session.RoleAdmin); err != nil {
			return err
		}
		res := services.NewEmployees(a.client).Delete(cmd.Context(), args[0])
		if !res.OK {
			return res.Err
		}
		fmt.Printf("Removed %s\n", args[0])
		return nil
	}),
}

func init() {
	flags := employeeAddCmd.Flags()
	flags.StringVar(&newEmployee.Name, "name", "", "full name")
	flags.StringVar(&newEmployee.Email, "email", "", "login email")
	flags.StringVar(&newEmployee.Password, "password", "", "initial password")
	flags.StringVar(&newEmployee.Role, "role", session.RoleEmployee, "admin or employee")
	flags.StringVar(&newEmployee.Department, "department", "", "department")
	flags.StringVar(&newEmployee.Position, "position", "", "position")
	flags.StringVar(&newEmployee.Contact, "contact", "", "contact number")
	_ = employeeAddCmd.MarkFlagRequired("name")
	_ = employeeAddCmd.MarkFlagRequired("email")
	_ = employeeAddCmd.MarkFlagRequired("password")

	employeeCmd.AddCommand(employeeListCmd)
	employeeCmd.AddCommand(employeeShowCmd)
	employeeCmd.AddCommand(employeeAddCmd)
	employeeCmd.AddCommand(employeeRemoveCmd)
}
