package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/giraffekitchen/kitchenctl/internal/api"
	"github.com/giraffekitchen/kitchenctl/internal/domain"
	"github.com/giraffekitchen/kitchenctl/internal/session"
)

// App holds the backend client and local stores used by CLI commands.
type App struct {
	API     *api.Client
	Session *session.Store

	// IsInteractive reports whether stdin is a terminal. The bare
	// root command launches the TUI only when it returns true.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "kitchenctl" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "kitchenctl",
		Short: "Quality management console for the restaurant chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive == nil || !app.IsInteractive() {
				return cmd.Help()
			}
			return runTUI(app)
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newDashboardCmd(app),
		newBranchesCmd(app),
		newUsersCmd(app),
		newChecksCmd(app),
		newTasksCmd(app),
		newAuditsCmd(app),
		newEvaluationsCmd(app),
		newReportsCmd(app),
	)

	return root
}

// newDashboardCmd launches the interactive application explicitly, for
// use in scripts and shells where the bare command would print help.
func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}
}

// restoreSession loads the stored session and installs its token on the
// API client. Commands that talk to the backend call this first.
func restoreSession(ctx context.Context, app *App) (*session.Session, error) {
	sess, err := app.Session.Current(ctx)
	if err != nil {
		if err == session.ErrNoSession {
			return nil, fmt.Errorf("not signed in, run \"kitchenctl login\" first")
		}
		return nil, err
	}
	app.API.SetToken(sess.Token)
	return sess, nil
}

// userBranchID returns the branch the user is scoped to, or 0 for HQ.
func userBranchID(u domain.User) int {
	if u.BranchID != nil {
		return *u.BranchID
	}
	return 0
}
