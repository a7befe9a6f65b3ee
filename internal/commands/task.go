package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhidhakal/hready/internal/services"
	"github.com/abhidhakal/hready/internal/session"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Assigned tasks",
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		res := services.NewTasks(a.client).List(cmd.Context())
		if !res.OK {
			return res.Err
		}
		for _, t := range res.Data {
			due := t.DueDate
			if due == "" {
				due = "-"
			}
			fmt.Printf("%s  [%s]  %s  due %s\n", t.ID, t.Status, t.Title, due)
		}
		return nil
	}),
}

var (
	taskTitle       string
	taskDescription string
	taskAssignee    string
	taskDue         string
)

var taskCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a task (admin)",
	RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
		if _, err := a.requireRole(session.RoleAdmin); err != nil {
			return err
		}
		res := services.NewTasks(a.client).Create(cmd.Context(), services.TaskInput{
			Title:       taskTitle,
			Description: taskDescription,
			AssignedTo:  taskAssignee,
			DueDate:     taskDue,
		})
		if !res.OK {
			return res.Err
		}
		fmt.Printf("Created task %s\n", res.Data.ID)
		return nil
	}),
}

var taskStatus string

var taskStatusCmd = &cobra.Command{
	Use:   "status <id>",
	Short: "Update a task's status",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		res := services.NewTasks(a.client).Update(cmd.Context(), args[0], services.TaskInput{Status: taskStatus})
		if !res.OK {
			return res.Err
		}
		fmt.Printf("Task %s is now %s\n", res.Data.ID, res.Data.Status)
		return nil
	}),
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		if _, err := a.requireRole(session.RoleAdmin); err != nil {
			return err
		}
		res := services.NewTasks(a.client).Delete(cmd.Context(), args[0])
		if !res.OK {
			return res.Err
		}
		fmt.Println("Deleted.")
		return nil
	}),
}

func init() {
	taskCreateCmd.Flags().StringVar(&taskTitle, "title", "", "task title")
	taskCreateCmd.Flags().StringVar(&taskDescription, "description", "", "task description")
	taskCreateCmd.Flags().StringVar(&taskAssignee, "assign", "", "assignee employee id")
	taskCreateCmd.Flags().StringVar(&taskDue, "due", "", "due date YYYY-MM-DD")
	_ = taskCreateCmd.MarkFlagRequired("title")

	taskStatusCmd.Flags().StringVar(&taskStatus, "set", "done", "new status")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(taskStatusCmd)
	taskCmd.AddCommand(taskDeleteCmd)
}
