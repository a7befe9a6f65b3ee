package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhidhakal/hready/internal/services"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and persist the session",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		email := loginEmail
		if email == "" {
			var err error
			email, err = promptLine("Email: ")
			if err != nil {
				return err
			}
		}
		password := loginPassword
		if password == "" {
			var err error
			password, err = promptLine("Password: ")
			if err != nil {
				return err
			}
		}

		auth := services.NewAuth(a.client, a.store)
		sess, err := auth.Login(cmd.Context(), email, password)
		if err != nil {
			var authErr *services.AuthError
			if errors.As(err, &authErr) {
				switch authErr.Kind {
				case services.AuthErrLocked, services.AuthErrRateLimited:
					return fmt.Errorf("%s (try again in %s)", authErr.Message, authErr.RetryAfter)
				case services.AuthErrInvalidCredentials:
					return fmt.Errorf("%s (failed attempts: %d)", authErr.Message, auth.FailedAttempts())
				}
			}
			return err
		}

		fmt.Printf("Logged in as %s (%s)\n", sess.Name, sess.Role)
		return nil
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		if err := services.NewAuth(a.client, a.store).Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: withApp(func(a *app, _ *cobra.Command, _ []string) error {
		sess, err := a.manager.Current()
		if err != nil {
			return fmt.Errorf("not logged in: run `hready login`")
		}
		fmt.Printf("%s <%s> role=%s\n", sess.Name, sess.UserID, sess.Role)
		return nil
	}),
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe the backend's health endpoint",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		if a.client.Healthy(cmd.Context()) {
			fmt.Println("Backend is reachable.")
			return nil
		}
		return fmt.Errorf("backend is not reachable at %s", a.cfg.APIBaseURL)
	}),
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (prompted when omitted)")
}
