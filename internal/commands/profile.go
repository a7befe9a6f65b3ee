package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhidhakal/hready/internal/services"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and update your own profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the logged-in employee's profile",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		res := services.NewEmployees(a.client).Me(cmd.Context())
		if !res.OK {
			return res.Err
		}
		printEmployee(res.Data)
		return nil
	}),
}

var (
	profileName       string
	profileDepartment string
	profilePosition   string
	profileContact    string
)

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		res := services.NewEmployees(a.client).UpdateMe(cmd.Context(), services.EmployeeInput{
			Name:       profileName,
			Department: profileDepartment,
			Position:   profilePosition,
			Contact:    profileContact,
		})
		if !res.OK {
			return res.Err
		}
		printEmployee(res.Data)
		return nil
	}),
}

var profilePictureCmd = &cobra.Command{
	Use:   "picture <path>",
	Short: "Upload a profile picture",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		res := services.NewEmployees(a.client).UploadProfilePicture(
			cmd.Context(), filepath.Base(args[0]), content)
		if !res.OK {
			return res.Err
		}
		fmt.Printf("Picture uploaded: %s\n", res.Data.ProfilePicture)
		return nil
	}),
}

func printEmployee(e services.Employee) {
	fmt.Printf("%s <%s>\n", e.Name, e.Email)
	fmt.Printf("  id=%s role=%s status=%s\n", e.ID, e.Role, e.Status)
	if e.Department != "" || e.Position != "" {
		fmt.Printf("  %s / %s\n", e.Department, e.Position)
	}
	if e.Contact != "" {
		fmt.Printf("  contact: %s\n", e.Contact)
	}
}

func init() {
	flags := profileUpdateCmd.Flags()
	flags.StringVar(&profileName, "name", "", "display name")
	flags.StringVar(&profileDepartment, "department", "", "department")
	flags.StringVar(&profilePosition, "position", "", "position")
	flags.StringVar(&profileContact, "contact", "", "contact number")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	profileCmd.AddCommand(profilePictureCmd)
}
