package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/giraffekitchen/kitchenctl/internal/api"
	"github.com/giraffekitchen/kitchenctl/internal/cli/formatter"
	"github.com/giraffekitchen/kitchenctl/internal/domain"
)

func newAuditsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audits",
		Short: "Review sanitation audits",
	}

	cmd.AddCommand(
		newAuditsListCmd(app),
		newAuditsShowCmd(app),
		newAuditsStartCmd(app),
		newAuditsCloseCmd(app),
		newAuditsSummaryCmd(app),
	)

	return cmd
}

func newAuditsListCmd(app *App) *cobra.Command {
	var branchID int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sanitation audits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := restoreSession(ctx, app); err != nil {
				return err
			}

			audits, err := app.API.ListAudits(ctx, branchID)
			if err != nil {
				return err
			}
			if len(audits) == 0 {
				fmt.Println("No audits found.")
				return nil
			}

			headers := []string{"ID", "DATE", "BRANCH", "AUDITOR", "SCORE", "STATUS"}
			rows := make([][]string, 0, len(audits))
			for _, a := range audits {
				rows = append(rows, []string{
					strconv.Itoa(a.ID),
					formatter.HumanDate(a.AuditDate),
					a.BranchName,
					a.AuditorName,
					formatter.Score(a.TotalScore),
					formatter.AuditStatusPill(a.Status),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&branchID, "branch", 0, "Filter by branch ID")

	return cmd
}

func newAuditsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <audit-id>",
		Short: "Show one audit with its category breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := restoreSession(ctx, app); err != nil {
				return err
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid audit id %q", args[0])
			}
			audit, err := app.API.GetAudit(ctx, id)
			if err != nil {
				return err
			}

			var b strings.Builder
			fmt.Fprintf(&b, "%s  %s\n", formatter.Bold(audit.BranchName), formatter.HumanDate(audit.AuditDate))
			fmt.Fprintf(&b, "Auditor: %s", audit.AuditorName)
			if audit.AccompanistName != "" {
				fmt.Fprintf(&b, "  (with %s)", audit.AccompanistName)
			}
			fmt.Fprintf(&b, "\nScore: %s  %s\n", formatter.Score(audit.TotalScore), formatter.AuditStatusPill(audit.Status))

			if len(audit.Categories) > 0 {
				b.WriteString("\n" + formatter.Header("Categories") + "\n")
				for _, cat := range audit.Categories {
					line := fmt.Sprintf("%s  −%.1f", cat.CategoryName, cat.ScoreDeduction)
					if cat.ScoreDeduction == 0 {
						line = fmt.Sprintf("%s  %s", cat.CategoryName, formatter.StyleGreen.Render("ok"))
					}
					b.WriteString(line + "\n")
					if cat.Notes != "" {
						b.WriteString("  " + formatter.Dim(cat.Notes) + "\n")
					}
				}
			}
			if audit.GeneralNotes != "" {
				b.WriteString("\n" + formatter.Header("Notes") + "\n" + audit.GeneralNotes + "\n")
			}
			if audit.EquipmentIssues != "" {
				b.WriteString("\n" + formatter.Header("Equipment Issues") + "\n" + audit.EquipmentIssues + "\n")
			}

			fmt.Print(b.String())
			return nil
		},
	}
}

func newAuditsStartCmd(app *App) *cobra.Command {
	var (
		branchID    int
		accompanist string
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Open a new sanitation audit with the standard checklist",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sess, err := restoreSession(ctx, app)
			if err != nil {
				return err
			}
			if branchID == 0 {
				return fmt.Errorf("%w: --branch is required", api.ErrValidation)
			}

			now := time.Now()
			audit, err := app.API.CreateAudit(ctx, api.AuditCreate{
				BranchID:        branchID,
				AuditDate:       now,
				StartTime:       now,
				AuditorName:     sess.User.FullName,
				AccompanistName: accompanist,
				Categories:      domain.DefaultAuditCategories(),
			})
			if err != nil {
				return err
			}

			fmt.Printf("Opened audit %d for %s (%d categories).\n",
				audit.ID, audit.BranchName, len(audit.Categories))
			return nil
		},
	}

	cmd.Flags().IntVar(&branchID, "branch", 0, "Branch ID to audit")
	cmd.Flags().StringVar(&accompanist, "accompanist", "", "Branch staff member accompanying the audit")

	return cmd
}

func newAuditsCloseCmd(app *App) *cobra.Command {
	var (
		notes     string
		equipment string
	)

	cmd := &cobra.Command{
		Use:   "close <audit-id>",
		Short: "Complete an audit and record closing notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := restoreSession(ctx, app); err != nil {
				return err
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid audit id %q", args[0])
			}

			now := time.Now()
			status := domain.AuditCompleted
			req := api.AuditUpdate{EndTime: &now, Status: &status}
			if notes != "" {
				req.GeneralNotes = &notes
			}
			if equipment != "" {
				req.EquipmentIssues = &equipment
			}

			audit, err := app.API.UpdateAudit(ctx, id, req)
			if err != nil {
				return err
			}

			fmt.Printf("Audit %d closed with score %s.\n", audit.ID, formatter.Score(audit.TotalScore))
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "General findings")
	cmd.Flags().StringVar(&equipment, "equipment", "", "Equipment issues found")

	return cmd
}

func newAuditsSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <audit-id>",
		Short: "Generate an insight summary for an audit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := restoreSession(ctx, app); err != nil {
				return err
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid audit id %q", args[0])
			}
			insights, err := app.API.GenerateAuditSummary(ctx, id)
			if err != nil {
				return err
			}

			var b strings.Builder
			b.WriteString(insights.Summary + "\n")
			if len(insights.CriticalIssues) > 0 {
				b.WriteString("\n" + formatter.Header("Critical Issues") + "\n")
				for _, issue := range insights.CriticalIssues {
					b.WriteString(formatter.StyleRed.Render("• ") + issue + "\n")
				}
			}
			if len(insights.Recommendations) > 0 {
				b.WriteString("\n" + formatter.Header("Recommendations") + "\n")
				for _, rec := range insights.Recommendations {
					b.WriteString("• " + rec + "\n")
				}
			}

			fmt.Print(b.String())
			return nil
		},
	}
}
