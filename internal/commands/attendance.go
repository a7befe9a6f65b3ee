package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhidhakal/hready/internal/services"
	"github.com/abhidhakal/hready/internal/session"
)

var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Attendance records and check-in/out",
}

var attendanceAll bool

var attendanceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List attendance records",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		svc := services.NewAttendance(a.client)
		var res services.Result[[]services.AttendanceRecord]
		if attendanceAll {
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
		for _, rec := range res.Data {
			out := rec.CheckOutTime
			if out == "" {
				out = "-"
			}
			fmt.Printf("%s  in %s  out %s  %.2fh\n", rec.Date, rec.CheckInTime, out, rec.TotalHours)
		}
		return nil
	}),
}

var attendanceCheckInCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Check in for today",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		res := services.NewAttendance(a.client).CheckIn(cmd.Context())
		if !res.OK {
			return res.Err
		}
		fmt.Printf("Checked in at %s\n", res.Data.CheckInTime)
		return nil
	}),
}

var attendanceCheckOutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Check out for today",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		res := services.NewAttendance(a.client).CheckOut(cmd.Context())
		if !res.OK {
			return res.Err
		}
		fmt.Printf("Checked out at %s (%.2fh)\n", res.Data.CheckOutTime, res.Data.TotalHours)
		return nil
	}),
}

func init() {
	attendanceListCmd.Flags().BoolVar(&attendanceAll, "all", false, "list every employee's records (admin)")

	attendanceCmd.AddCommand(attendanceListCmd)
	attendanceCmd.AddCommand(attendanceCheckInCmd)
	attendanceCmd.AddCommand(attendanceCheckOutCmd)
}
