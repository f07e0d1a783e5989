package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/giraffekitchen/kitchenctl/internal/api"
	"github.com/giraffekitchen/kitchenctl/internal/cli/formatter"
)

func newBranchesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branches",
		Short: "Manage chain branches",
	}

	cmd.AddCommand(
		newBranchesListCmd(app),
		newBranchesAddCmd(app),
	)

	return cmd
}

func newBranchesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all branches",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := restoreSession(ctx, app); err != nil {
				return err
			}

			branches, err := app.API.ListBranches(ctx)
			if err != nil {
				return err
			}
			if len(branches) == 0 {
				fmt.Println("No branches found.")
				return nil
			}

			headers := []string{"ID", "NAME", "LOCATION"}
			rows := make([][]string, 0, len(branches))
			for _, b := range branches {
				rows = append(rows, []string{strconv.Itoa(b.ID), b.Name, b.Location})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newBranchesAddCmd(app *App) *cobra.Command {
	var (
		name     string
		location string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new branch",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := restoreSession(ctx, app); err != nil {
				return err
			}
			if name == "" {
				return fmt.Errorf("%w: --name is required", api.ErrValidation)
			}

			branch, err := app.API.CreateBranch(ctx, name, location)
			if err != nil {
				return err
			}

			fmt.Printf("Created branch %d: %s\n", branch.ID, branch.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Branch name")
	cmd.Flags().StringVar(&location, "location", "", "Branch location")

	return cmd
}

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect user accounts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := restoreSession(ctx, app); err != nil {
				return err
			}

			users, err := app.API.ListUsers(ctx)
			if err != nil {
				return err
			}

			headers := []string{"ID", "NAME", "EMAIL", "ROLE", "BRANCH"}
			rows := make([][]string, 0, len(users))
			for _, u := range users {
				branch := "-"
				if u.BranchID != nil {
					branch = strconv.Itoa(*u.BranchID)
				}
				rows = append(rows, []string{
					strconv.Itoa(u.ID),
					u.FullName,
					u.Email,
					formatter.RoleLabel(u.Role),
					branch,
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	})

	return cmd
}
