package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/giraffekitchen/kitchenctl/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// HumanDate returns a human-friendly absolute date string.
func HumanDate(t time.Time) string {
	now := time.Now()
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()

	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	yesterday := now.AddDate(0, 0, -1)
	y3, m3, d3 := yesterday.Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// ISODate formats a wire date string ("2006-01-02") for display,
// passing unparseable values through untouched.
func ISODate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return HumanDate(t)
}

// AuditStatusPill returns a colored status indicator for an audit.
func AuditStatusPill(status domain.AuditStatus) string {
	switch status {
	case domain.AuditInProgress:
		return StyleYellow.Render("● In Progress")
	case domain.AuditCompleted:
		return StyleGreen.Render("✔ Completed")
	case domain.AuditReviewed:
		return StyleBlue.Render("✔ Reviewed")
	default:
		return StyleDim.Render(string(status))
	}
}

// EvaluationStatusPill returns a colored status indicator for an evaluation.
func EvaluationStatusPill(status domain.EvaluationStatus) string {
	switch status {
	case domain.EvaluationDraft:
		return StyleDim.Render("○ Draft")
	case domain.EvaluationInProgress:
		return StyleYellow.Render("● In Progress")
	case domain.EvaluationCompleted:
		return StyleGreen.Render("✔ Completed")
	case domain.EvaluationReviewed:
		return StyleBlue.Render("✔ Reviewed")
	case domain.EvaluationApproved:
		return StylePurple.Render("★ Approved")
	default:
		return StyleDim.Render(string(status))
	}
}

// CompletionPill returns a done/pending indicator for a task assignment.
func CompletionPill(completed bool) string {
	if completed {
		return StyleGreen.Render("✔ Done")
	}
	return StyleYellow.Render("○ Pending")
}

// TaskTypeBadge returns a short label for a task type.
func TaskTypeBadge(t domain.TaskType) string {
	switch t {
	case domain.TaskDishCheck:
		return StyleBlue.Render("Dish Check")
	case domain.TaskRecipeReview:
		return StylePurple.Render("Recipe Review")
	default:
		return StyleDim.Render(string(t))
	}
}

// FrequencyLabel returns a display label for a task frequency.
func FrequencyLabel(f domain.TaskFrequency) string {
	switch f {
	case domain.FrequencyOnce:
		return "Once"
	case domain.FrequencyDaily:
		return "Daily"
	case domain.FrequencyWeekly:
		return "Weekly"
	default:
		return string(f)
	}
}

// RoleLabel returns a display label for a user role.
func RoleLabel(r domain.UserRole) string {
	if r == domain.RoleHQ {
		return "HQ"
	}
	return "Branch Manager"
}

// Truncate shortens text to max runes, appending an ellipsis.
// Hebrew text is common here, so it counts runes rather than bytes.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max <= 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// Score renders a colored audit score such as "92.5".
func Score(score float64) string {
	return ScoreStyle(score).Render(fmt.Sprintf("%.1f", score))
}
