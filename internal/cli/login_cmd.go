package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/giraffekitchen/kitchenctl/internal/cli/formatter"
	"github.com/giraffekitchen/kitchenctl/internal/session"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if email == "" || password == "" {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("--email and --password are required outside a terminal")
				}
				if err := promptCredentials(&email, &password); err != nil {
					return err
				}
			}

			result, err := app.API.Login(ctx, email, password)
			if err != nil {
				return err
			}
			if err := app.Session.Save(ctx, result.Token, result.User); err != nil {
				return err
			}

			fmt.Printf("Signed in as %s (%s)\n", result.User.FullName, formatter.RoleLabel(result.User.Role))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")

	return cmd
}

func promptCredentials(email, password *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(email).
				Validate(validateRequired("email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(password).
				Validate(validateRequired("password")),
		),
	).WithTheme(kitchenHuhTheme()).WithShowHelp(false)
	return form.Run()
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Clear(context.Background()); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.Session.Current(context.Background())
			if err != nil {
				if err == session.ErrNoSession {
					fmt.Println("Not signed in.")
					return nil
				}
				return err
			}
			fmt.Printf("%s <%s> — %s\n", sess.User.FullName, sess.User.Email, formatter.RoleLabel(sess.User.Role))
			return nil
		},
	}
}
