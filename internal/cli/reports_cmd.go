package cli

import "github.com/spf13/cobra"

// newReportsCmd groups the read-only report listings under one verb,
// mirroring the reports screen of the dashboard.
func newReportsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Quality report listings",
	}

	audits := newAuditsListCmd(app)
	audits.Use = "audits"
	audits.Short = "List sanitation audit scores"

	evals := newEvaluationsListCmd(app)
	evals.Use = "evaluations"
	evals.Short = "List manager evaluation scores"

	cmd.AddCommand(audits, evals)
	return cmd
}
