package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhidhakal/hready/internal/api"
	"github.com/abhidhakal/hready/internal/platform/config"
	"github.com/abhidhakal/hready/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "hready",
	Short: "HReady HR client",
	Long: `hready talks to an HReady HR backend: attendance, leave, tasks,
announcements, payroll and profile management from the terminal.

Set HREADY_API_URL to the backend's base URL before use.`,
	SilenceUsage: true,
}

// app bundles everything a command needs. Built once per invocation, after
// flag parsing, so commands that never touch the network (salary compute,
// stub) don't pay for a store open.
type app struct {
	cfg     config.Config
	store   session.Store
	manager *session.Manager
	client  *api.Client
}

func newApp() (*app, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := session.OpenFileStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	client := api.New(cfg.APIBaseURL, store, api.Options{
		Timeout:       cfg.Timeout,
		HealthTimeout: cfg.HealthTimeout,
		RetryWait:     cfg.RetryWait,
		WarmUpWait:    cfg.WarmUpWait,
	})
	client.OnSessionInvalidated(func() {
		fmt.Fprintln(os.Stderr, "Session expired or rejected. Run `hready login` to sign in again.")
	})

	return &app{
		cfg:     cfg,
		store:   store,
		manager: session.NewManager(store),
		client:  client,
	}, nil
}

// withApp adapts a command body that needs the wired client stack.
func withApp(fn func(a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return fn(a, cmd, args)
	}
}

// requireRole is the CLI's role-gated entry point: the role claim is
// checked before any admin request goes out, not merely hidden from help.
func (a *app) requireRole(role string) (session.Session, error) {
	sess, err := a.manager.RequireRole(role)
	if err != nil {
		switch {
		case err == session.ErrWrongRole:
			return session.Session{}, fmt.Errorf("this command requires the %s role", role)
		default:
			return session.Session{}, fmt.Errorf("not logged in: run `hready login`")
		}
	}
	return sess, nil
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	level := slog.LevelWarn
	if os.Getenv("HREADY_DEBUG") != "" {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if os.Getenv("APP_ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(employeeCmd)
	rootCmd.AddCommand(salaryCmd)
	rootCmd.AddCommand(leaveCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(announceCmd)
	rootCmd.AddCommand(attendanceCmd)
	rootCmd.AddCommand(payrollCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(stubCmd)
}
