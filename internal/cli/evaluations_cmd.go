package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/giraffekitchen/kitchenctl/internal/api"
	"github.com/giraffekitchen/kitchenctl/internal/cli/formatter"
	"github.com/giraffekitchen/kitchenctl/internal/evaluation"
)

// prefEvaluationsBranch keys the remembered --branch filter in the
// preferences table.
const prefEvaluationsBranch = "evaluations.branch"

func newEvaluationsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluations",
		Short: "Review manager evaluations",
	}

	cmd.AddCommand(
		newEvaluationsListCmd(app),
		newEvaluationsShowCmd(app),
		newEvaluationsDeleteCmd(app),
	)

	return cmd
}

func newEvaluationsListCmd(app *App) *cobra.Command {
	var branchID int
	var startDate, endDate string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List manager evaluations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := restoreSession(ctx, app); err != nil {
				return err
			}

			// The branch filter sticks between invocations until it is
			// changed again, so repeat reviews of one branch stay short.
			if cmd.Flags().Changed("branch") {
				if err := app.Session.SetPreference(ctx, prefEvaluationsBranch, strconv.Itoa(branchID)); err != nil {
					return err
				}
			} else if saved, err := app.Session.Preference(ctx, prefEvaluationsBranch); err != nil {
				return err
			} else if saved != "" {
				if branchID, err = strconv.Atoi(saved); err != nil {
					return fmt.Errorf("stored branch filter %q: %w", saved, err)
				}
			}

			evals, err := app.API.ListEvaluations(ctx, api.EvaluationFilter{
				BranchID:  branchID,
				StartDate: startDate,
				EndDate:   endDate,
			})
			if err != nil {
				return err
			}
			if len(evals) == 0 {
				fmt.Println("No evaluations found.")
				return nil
			}

			headers := []string{"ID", "DATE", "BRANCH", "MANAGER", "OVERALL", "STATUS"}
			rows := make([][]string, 0, len(evals))
			for _, e := range evals {
				rows = append(rows, []string{
					strconv.Itoa(e.ID),
					formatter.ISODate(e.EvaluationDate),
					e.BranchName,
					e.ManagerName,
					formatter.Rating(e.OverallRating),
					formatter.EvaluationStatusPill(e.Status),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&branchID, "branch", 0, "Filter by branch ID")
	cmd.Flags().StringVar(&startDate, "from", "", "Earliest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "to", "", "Latest date (YYYY-MM-DD)")

	return cmd
}

func newEvaluationsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <evaluation-id>",
		Short: "Show one evaluation with its category breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := restoreSession(ctx, app); err != nil {
				return err
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid evaluation id %q", args[0])
			}
			eval, err := app.API.GetEvaluation(ctx, id)
			if err != nil {
				return err
			}

			var b strings.Builder
			fmt.Fprintf(&b, "%s — %s  %s\n", formatter.Bold(eval.ManagerName), eval.BranchName, formatter.ISODate(eval.EvaluationDate))
			fmt.Fprintf(&b, "Overall: %s  %s\n", formatter.Rating(eval.OverallRating), formatter.EvaluationStatusPill(eval.Status))

			for _, cat := range eval.Categories {
				b.WriteString("\n" + formatter.Header(cat.Name) + "\n")
				fmt.Fprintf(&b, "Rating: %s\n", formatter.Rating(cat.Rating))

				tmpl, ok := evaluation.TemplateByName(cat.Name)
				var subNames []string
				if ok {
					subNames = tmpl.SubCategories
				}
				subs, general := evaluation.DecodeComments(cat.Comments, subNames)
				for _, name := range subNames {
					if text := subs[name]; text != "" {
						fmt.Fprintf(&b, "%s: %s\n", formatter.Bold(name), text)
					}
				}
				if general != "" {
					b.WriteString(general + "\n")
				}
			}

			if eval.GeneralComments != "" {
				b.WriteString("\n" + formatter.Header("General Comments") + "\n" + eval.GeneralComments + "\n")
			}
			if eval.AISummary != "" {
				b.WriteString("\n" + formatter.Header("Summary") + "\n" + eval.AISummary + "\n")
			}

			fmt.Print(b.String())
			return nil
		},
	}
}

func newEvaluationsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <evaluation-id>",
		Short: "Delete an evaluation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := restoreSession(ctx, app); err != nil {
				return err
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid evaluation id %q", args[0])
			}
			if err := app.API.DeleteEvaluation(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Evaluation #%d deleted.\n", id)
			return nil
		},
	}
}
