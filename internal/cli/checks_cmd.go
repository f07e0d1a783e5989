package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/giraffekitchen/kitchenctl/internal/api"
	"github.com/giraffekitchen/kitchenctl/internal/cli/formatter"
)

func newChecksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checks",
		Short: "Record and review dish checks",
	}

	cmd.AddCommand(
		newChecksListCmd(app),
		newChecksAddCmd(app),
	)

	return cmd
}

func newChecksListCmd(app *App) *cobra.Command {
	var branchID, dishID int
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dish checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := restoreSession(ctx, app); err != nil {
				return err
			}

			checks, err := app.API.ListChecks(ctx, api.CheckFilter{
				BranchID: branchID,
				DishID:   dishID,
				Date:     date,
			})
			if err != nil {
				return err
			}
			if len(checks) == 0 {
				fmt.Println("No checks found.")
				return nil
			}

			headers := []string{"DATE", "BRANCH", "DISH", "CHEF", "RATING", "COMMENTS"}
			rows := make([][]string, 0, len(checks))
			for _, c := range checks {
				chef := c.ChefName
				if chef == "" {
					chef = c.ChefNameManual
				}
				rows = append(rows, []string{
					formatter.HumanDate(c.CheckDate),
					c.BranchName,
					c.DishName,
					chef,
					formatter.Rating(c.Rating),
					formatter.Truncate(c.Comments, 40),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&branchID, "branch", 0, "Filter by branch ID")
	cmd.Flags().IntVar(&dishID, "dish", 0, "Filter by dish ID")
	cmd.Flags().StringVar(&date, "date", "", "Filter by date (YYYY-MM-DD)")

	return cmd
}

func newChecksAddCmd(app *App) *cobra.Command {
	var branchID, dishID, chefID int
	var chefName, comments string
	var rating float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a dish check",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := restoreSession(ctx, app); err != nil {
				return err
			}

			req := api.CheckCreate{
				BranchID:       branchID,
				DishID:         dishID,
				ChefNameManual: chefName,
				Rating:         rating,
				Comments:       comments,
			}
			if chefID > 0 {
				req.ChefID = &chefID
			}

			check, err := app.API.CreateCheck(ctx, req)
			if err != nil {
				return err
			}

			fmt.Printf("Recorded check #%d: %s rated %s\n", check.ID, check.DishName, formatter.Rating(check.Rating))
			return nil
		},
	}

	cmd.Flags().IntVar(&branchID, "branch", 0, "Branch ID")
	cmd.Flags().IntVar(&dishID, "dish", 0, "Dish ID")
	cmd.Flags().IntVar(&chefID, "chef", 0, "Chef ID")
	cmd.Flags().StringVar(&chefName, "chef-name", "", "Chef name when not registered")
	cmd.Flags().Float64Var(&rating, "rating", 0, "Rating from 1 to 10")
	cmd.Flags().StringVar(&comments, "comments", "", "Free-text comments")
	_ = cmd.MarkFlagRequired("branch")
	_ = cmd.MarkFlagRequired("dish")
	_ = cmd.MarkFlagRequired("rating")

	return cmd
}
