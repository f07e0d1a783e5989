package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/giraffekitchen/kitchenctl/internal/api"
	"github.com/giraffekitchen/kitchenctl/internal/cli/formatter"
	"github.com/giraffekitchen/kitchenctl/internal/domain"
	"github.com/giraffekitchen/kitchenctl/internal/evaluation"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage recurring tasks and their assignments",
	}

	cmd.AddCommand(
		newTasksListCmd(app),
		newTasksAssignmentsCmd(app),
		newTasksCreateCmd(app),
		newTasksCompleteCmd(app),
		newTasksUncompleteCmd(app),
	)

	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List task definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := restoreSession(ctx, app); err != nil {
				return err
			}

			var active *bool
			if !all {
				t := true
				active = &t
			}
			tasks, err := app.API.ListTasks(ctx, active)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			headers := []string{"ID", "TITLE", "TYPE", "FREQUENCY", "START", "ACTIVE"}
			rows := make([][]string, 0, len(tasks))
			for _, t := range tasks {
				active := formatter.Dim("no")
				if t.IsActive {
					active = formatter.StyleGreen.Render("yes")
				}
				rows = append(rows, []string{
					strconv.Itoa(t.ID),
					formatter.Truncate(t.Title, 40),
					formatter.TaskTypeBadge(t.Type),
					formatter.FrequencyLabel(t.Frequency),
					formatter.ISODate(t.StartDate),
					active,
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive tasks")

	return cmd
}

func newTasksAssignmentsCmd(app *App) *cobra.Command {
	var date string
	var branchID int
	var pending bool

	cmd := &cobra.Command{
		Use:   "assignments",
		Short: "List per-branch task assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sess, err := restoreSession(ctx, app)
			if err != nil {
				return err
			}

			filter := api.AssignmentFilter{Date: date, BranchID: branchID}
			if pending {
				f := false
				filter.Completed = &f
			}

			var assignments []domain.TaskAssignment
			if sess.User.IsHQ() {
				assignments, err = app.API.ListAssignments(ctx, filter)
			} else {
				assignments, err = app.API.MyTasks(ctx, date)
			}
			if err != nil {
				return err
			}
			if len(assignments) == 0 {
				fmt.Println("No assignments found.")
				return nil
			}

			headers := []string{"ID", "DATE", "BRANCH", "TASK", "STATUS"}
			rows := make([][]string, 0, len(assignments))
			for _, a := range assignments {
				rows = append(rows, []string{
					strconv.Itoa(a.ID),
					formatter.ISODate(a.TaskDate),
					a.BranchName,
					formatter.Truncate(a.TaskTitle, 40),
					formatter.CompletionPill(a.IsCompleted),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD), defaults to today")
	cmd.Flags().IntVar(&branchID, "branch", 0, "Filter by branch ID")
	cmd.Flags().BoolVar(&pending, "pending", false, "Only incomplete assignments")

	return cmd
}

func newTasksCreateCmd(app *App) *cobra.Command {
	var taskType, frequency, description, startDate, endDate string
	var dishID int
	var branchIDs []int
	var allBranches bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task and assign it to branches",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := restoreSession(ctx, app); err != nil {
				return err
			}

			draft := evaluation.NewTaskDraft()
			draft.Type = domain.TaskType(taskType)
			draft.Frequency = domain.TaskFrequency(frequency)
			draft.Description = description
			if startDate != "" {
				draft.StartDate = startDate
			}
			if endDate != "" {
				draft.EndDate = endDate
			}
			if dishID > 0 {
				draft.DishID = &dishID
				dishes, err := app.API.ListDishes(ctx)
				if err != nil {
					return err
				}
				for _, d := range dishes {
					if d.ID == dishID {
						draft.DishName = d.Name
						break
					}
				}
			}
			if allBranches {
				draft.SelectAllBranches()
			} else {
				for _, id := range branchIDs {
					draft.SelectBranch(id)
				}
			}

			if errs := draft.Validate(); len(errs) > 0 {
				return fmt.Errorf("%w: %s", api.ErrValidation, errs[0].Message)
			}

			branches, err := app.API.ListBranches(ctx)
			if err != nil {
				return err
			}

			req := api.TaskCreate{
				Title:       draft.Title(),
				Description: draft.Description,
				Type:        draft.Type,
				DishID:      draft.DishID,
				Frequency:   draft.Frequency,
				StartDate:   draft.StartDate,
				BranchIDs:   draft.TargetBranchIDs(branches),
			}
			if draft.EndDate != "" {
				req.EndDate = &draft.EndDate
			}

			task, err := app.API.CreateTask(ctx, req)
			if err != nil {
				return err
			}

			fmt.Printf("Created task #%d: %s (%s)\n", task.ID, task.Title, formatter.FrequencyLabel(task.Frequency))
			return nil
		},
	}

	cmd.Flags().StringVar(&taskType, "type", string(domain.TaskDishCheck), "Task type (DISH_CHECK or RECIPE_REVIEW)")
	cmd.Flags().StringVar(&frequency, "frequency", string(domain.FrequencyOnce), "Frequency (ONCE, DAILY, WEEKLY)")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&startDate, "start", time.Now().Format("2006-01-02"), "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&dishID, "dish", 0, "Dish ID (required for DISH_CHECK)")
	cmd.Flags().IntSliceVar(&branchIDs, "branch", nil, "Target branch ID (repeatable)")
	cmd.Flags().BoolVar(&allBranches, "all-branches", false, "Assign to every branch")

	return cmd
}

func newTasksCompleteCmd(app *App) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "complete <assignment-id>",
		Short: "Mark an assignment as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := restoreSession(ctx, app); err != nil {
				return err
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid assignment id %q", args[0])
			}
			if err := app.API.CompleteAssignment(ctx, id, notes, nil); err != nil {
				return err
			}
			fmt.Printf("Assignment #%d completed.\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Completion notes")

	return cmd
}

func newTasksUncompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "uncomplete <assignment-id>",
		Short: "Revert an assignment completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := restoreSession(ctx, app); err != nil {
				return err
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid assignment id %q", args[0])
			}
			if err := app.API.UncompleteAssignment(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Assignment #%d reopened.\n", id)
			return nil
		},
	}
}
