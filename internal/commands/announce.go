package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhidhakal/hready/internal/services"
	"github.com/abhidhakal/hready/internal/session"
)

var announceCmd = &cobra.Command{
	Use:   "announce",
	Short: "Company announcements",
}

var announceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List announcements",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		res := services.NewAnnouncements(a.client).List(cmd.Context())
		if !res.OK {
			return res.Err
		}
		for _, item := range res.Data {
			fmt.Printf("%s  %s\n    %s\n", item.CreatedAt.Format("2006-01-02"), item.Title, item.Message)
		}
		return nil
	}),
}

var (
	announceTitle    string
	announceMessage  string
	announceAudience string
)

var announceCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Post an announcement (admin)",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		if _, err := a.requireRole(session.RoleAdmin); err != nil {
			return err
		}
		res := services.NewAnnouncements(a.client).Create(cmd.Context(), services.AnnouncementInput{
			Title:    announceTitle,
			Message:  announceMessage,
			Audience: announceAudience,
		})
		if !res.OK {
			return res.Err
		}
		fmt.Printf("Posted announcement %s\n", res.Data.ID)
		return nil
	}),
}

var announceDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an announcement (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		if _, err := a.requireRole(session.RoleAdmin); err != nil {
			return err
		}
		res := services.NewAnnouncements(a.client).Delete(cmd.Context(), args[0])
		if !res.OK {
			return res.Err
		}
		fmt.Println("Deleted.")
		return nil
	}),
}

func init() {
	announceCreateCmd.Flags().StringVar(&announceTitle, "title", "", "announcement title")
	announceCreateCmd.Flags().StringVar(&announceMessage, "message", "", "announcement body")
	announceCreateCmd.Flags().StringVar(&announceAudience, "audience", "all", "target audience")
	_ = announceCreateCmd.MarkFlagRequired("title")
	_ = announceCreateCmd.MarkFlagRequired("message")

	announceCmd.AddCommand(announceListCmd)
	announceCmd.AddCommand(announceCreateCmd)
	announceCmd.AddCommand(announceDeleteCmd)
}
