package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhidhakal/hready/internal/domain/leave"
	"github.com/abhidhakal/hready/internal/services"
	"github.com/abhidhakal/hready/internal/session"
)

var leaveCmd = &cobra.Command{
	Use:   "leave",
	Short: "Leave requests and balance",
}

var leaveBalanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show this month's remaining leave",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		res := services.NewLeaves(a.client).Balance(cmd.Context())
		if !res.OK {
			return res.Err
		}
		fmt.Printf("Remaining this month: %.1f of %.0f days\n", res.Data, leave.MonthlyQuota)
		return nil
	}),
}

var leaveListAll bool

var leaveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leave requests",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		svc := services.NewLeaves(a.client)
		var res services.Result[[]leave.Request]
		if leaveListAll {
			if _, err := a.requireRole(session.RoleAdmin); err != nil {
				return err
			}
			res = svc.All(cmd.Context())
		} else {
			res = svc.Mine(cmd.Context())
		}
		if !res.OK {
			return res.Err
		}
		for _, req := range res.Data {
			fmt.Printf("%s  %s  %s to %s  %.1f day(s)  %s\n",
				req.ID, req.LeaveType,
				req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"),
				leave.Days(req), req.Status)
		}
		return nil
	}),
}

var (
	leaveType       string
	leaveStart      string
	leaveEnd        string
	leaveHalfDay    bool
	leaveReason     string
	leaveAttachment string
	leaveFor        string
)

var leaveRequestCmd = &cobra.Command{
	Use:   "request",
	Short: "Submit a leave request",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		start, err := time.Parse("2006-01-02", leaveStart)
		if err != nil {
			return fmt.Errorf("--start must be YYYY-MM-DD")
		}
		end := start
		if leaveEnd != "" {
			if end, err = time.Parse("2006-01-02", leaveEnd); err != nil {
				return fmt.Errorf("--end must be YYYY-MM-DD")
			}
		}

		var attachment []byte
		var attachmentName string
		if leaveAttachment != "" {
			if attachment, err = os.ReadFile(leaveAttachment); err != nil {
				return err
			}
			attachmentName = filepath.Base(leaveAttachment)
		}

		req := leave.Request{
			EmployeeID: leaveFor,
			LeaveType:  leaveType,
			StartDate:  start,
			EndDate:    end,
			HalfDay:    leaveHalfDay,
			Reason:     leaveReason,
		}
		res := services.NewLeaves(a.client).Create(cmd.Context(), req, attachmentName, attachment)
		if !res.OK {
			return res.Err
		}
		fmt.Printf("Submitted %s leave %s (%.1f day(s)), status %s\n",
			res.Data.LeaveType, res.Data.ID, leave.Days(res.Data), res.Data.Status)
		return nil
	}),
}

var (
	leaveApprove bool
	leaveReject  bool
	leaveComment string
)

var leaveDecideCmd = &cobra.Command{
	Use:   "decide <id>",
	Short: "Approve or reject a leave request (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		if _, err := a.requireRole(session.RoleAdmin); err != nil {
			return err
		}
		if leaveApprove == leaveReject {
			return fmt.Errorf("pass exactly one of --approve or --reject")
		}
		status := leave.StatusApproved
		if leaveReject {
			status = leave.StatusRejected
		}
		res := services.NewLeaves(a.client).SetStatus(cmd.Context(), args[0],
			services.LeaveDecision{Status: status, AdminComment: leaveComment})
		if !res.OK {
			return res.Err
		}
		fmt.Printf("Leave %s is now %s\n", res.Data.ID, res.Data.Status)
		return nil
	}),
}

func init() {
	leaveListCmd.Flags().BoolVar(&leaveListAll, "all", false, "list every employee's requests (admin)")

	flags := leaveRequestCmd.Flags()
	flags.StringVar(&leaveType, "type", leave.TypeCasual, "Casual, Sick, Emergency, Annual or Other")
	flags.StringVar(&leaveStart, "start", "", "start date YYYY-MM-DD")
	flags.StringVar(&leaveEnd, "end", "", "end date YYYY-MM-DD (defaults to start)")
	flags.BoolVar(&leaveHalfDay, "half-day", false, "request a half day")
	flags.StringVar(&leaveReason, "reason", "", "reason, at least 10 characters")
	flags.StringVar(&leaveAttachment, "attachment", "", "path to a supporting document")
	flags.StringVar(&leaveFor, "for", "", "employee id to file for (admin)")
	_ = leaveRequestCmd.MarkFlagRequired("start")
	_ = leaveRequestCmd.MarkFlagRequired("reason")

	leaveDecideCmd.Flags().BoolVar(&leaveApprove, "approve", false, "approve the request")
	leaveDecideCmd.Flags().BoolVar(&leaveReject, "reject", false, "reject the request")
	leaveDecideCmd.Flags().StringVar(&leaveComment, "comment", "", "admin comment")

	leaveCmd.AddCommand(leaveBalanceCmd)
	leaveCmd.AddCommand(leaveListCmd)
	leaveCmd.AddCommand(leaveRequestCmd)
	leaveCmd.AddCommand(leaveDecideCmd)
}
