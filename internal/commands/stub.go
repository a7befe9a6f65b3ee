package commands

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/abhidhakal/hready/internal/stubserver"
)

var (
	stubAddr   string
	stubSecret string
)

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Run an in-memory HReady backend for local development",
	RunE: func(_ *cobra.Command, _ []string) error {
		srv := stubserver.New(stubSecret)
		fmt.Printf("Stub backend on %s\n", stubAddr)
		fmt.Printf("  admin:    %s / %s\n", stubserver.SeedAdminEmail, stubserver.SeedAdminPassword)
		fmt.Printf("  employee: %s / %s\n", stubserver.SeedEmployeeEmail, stubserver.SeedEmployeePassword)
		return http.ListenAndServe(stubAddr, srv.Handler())
	},
}

func init() {
	stubCmd.Flags().StringVar(&stubAddr, "addr", ":8090", "listen address")
	stubCmd.Flags().StringVar(&stubSecret, "secret", "stub-secret", "token signing secret")
}
