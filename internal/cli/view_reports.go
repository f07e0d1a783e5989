package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/giraffekitchen/kitchenctl/internal/cli/formatter"
	"github.com/giraffekitchen/kitchenctl/internal/domain"
)

// auditsLoadedMsg signals that the audit list has been loaded.
type auditsLoadedMsg struct {
	audits []domain.SanitationAudit
	err    error
}

// reportsView lists sanitation audits across the chain.
type reportsView struct {
	state  *SharedState
	ctx    context.Context
	cancel context.CancelFunc

	audits  []domain.SanitationAudit
	cursor  int
	loading bool
}

func newReportsView(state *SharedState) *reportsView {
	ctx, cancel := context.WithCancel(context.Background())
	return &reportsView{state: state, ctx: ctx, cancel: cancel, loading: true}
}

func (v *reportsView) ID() ViewID    { return ViewReports }
func (v *reportsView) Title() string { return "Audits" }
func (v *reportsView) Close()        { v.cancel() }

func (v *reportsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *reportsView) Init() tea.Cmd {
	return v.loadAudits()
}

func (v *reportsView) loadAudits() tea.Cmd {
	app := v.state.App
	ctx := v.ctx
	branchID := 0
	if v.state.User != nil && v.state.User.BranchID != nil {
		branchID = *v.state.User.BranchID
	}
	return func() tea.Msg {
		audits, err := app.API.ListAudits(ctx, branchID)
		return auditsLoadedMsg{audits: audits, err: err}
	}
}

func (v *reportsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case auditsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			return v, loadErrCmd(msg.err)
		}
		v.audits = msg.audits
		if v.cursor >= len(v.audits) {
			v.cursor = 0
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadAudits()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.audits)-1 {
				v.cursor++
			}
		case "enter":
			if v.cursor < len(v.audits) {
				return v, pushView(newAuditDetailView(v.state, v.audits[v.cursor].ID))
			}
		case "r":
			v.loading = true
			return v, v.loadAudits()
		}
	}
	return v, nil
}

func (v *reportsView) View() string {
	var b strings.Builder

	b.WriteString(formatter.Header("Sanitation Audits") + "\n")

	if v.loading {
		b.WriteString(formatter.Dim("Loading...") + "\n")
		return b.String()
	}
	if len(v.audits) == 0 {
		b.WriteString(formatter.Dim("No audits recorded.") + "\n")
		return b.String()
	}

	for i, a := range v.audits {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleHeader.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s  %s  %s %s %s\n",
			cursor,
			formatter.Score(a.TotalScore),
			formatter.AuditStatusPill(a.Status),
			formatter.Truncate(a.BranchName, 24),
			formatter.Dim(a.AuditorName),
			formatter.Dim(formatter.HumanDate(a.AuditDate)))
	}

	return b.String()
}

// ── audit detail ─────────────────────────────────────────────────────────────

// auditDetailLoadedMsg carries one audit with its categories.
type auditDetailLoadedMsg struct {
	audit *domain.SanitationAudit
	err   error
}

// auditDetailView shows one audit's category breakdown in a viewport.
type auditDetailView struct {
	state  *SharedState
	ctx    context.Context
	cancel context.CancelFunc

	auditID int
	audit   *domain.SanitationAudit
	vp      viewport.Model
	loading bool
}

func newAuditDetailView(state *SharedState, auditID int) *auditDetailView {
	ctx, cancel := context.WithCancel(context.Background())
	vp := viewport.New(state.Width, state.ContentHeight())
	return &auditDetailView{
		state:   state,
		ctx:     ctx,
		cancel:  cancel,
		auditID: auditID,
		vp:      vp,
		loading: true,
	}
}

func (v *auditDetailView) ID() ViewID    { return ViewAuditDetail }
func (v *auditDetailView) Title() string { return fmt.Sprintf("Audit #%d", v.auditID) }
func (v *auditDetailView) Close()        { v.cancel() }

func (v *auditDetailView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "scroll")),
	}
}

func (v *auditDetailView) Init() tea.Cmd {
	app := v.state.App
	ctx := v.ctx
	id := v.auditID
	return func() tea.Msg {
		audit, err := app.API.GetAudit(ctx, id)
		return auditDetailLoadedMsg{audit: audit, err: err}
	}
}

func (v *auditDetailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case auditDetailLoadedMsg:
		v.loading = false
		if msg.err != nil {
			return v, loadErrCmd(msg.err)
		}
		v.audit = msg.audit
		v.vp.SetContent(v.renderAudit())
		return v, nil

	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = v.state.ContentHeight()
		return v, nil
	}

	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

func (v *auditDetailView) renderAudit() string {
	a := v.audit
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", formatter.Bold(a.BranchName), formatter.HumanDate(a.AuditDate))
	fmt.Fprintf(&b, "Auditor: %s", a.AuditorName)
	if a.AccompanistName != "" {
		fmt.Fprintf(&b, "  (with %s)", a.AccompanistName)
	}
	fmt.Fprintf(&b, "\nScore: %s  deductions %.1f  %s\n",
		formatter.Score(a.TotalScore), a.TotalDeductions, formatter.AuditStatusPill(a.Status))

	if len(a.Categories) > 0 {
		b.WriteString("\n" + formatter.Header("Categories") + "\n")
		for _, cat := range a.Categories {
			if cat.ScoreDeduction == 0 {
				fmt.Fprintf(&b, "%s  %s\n", cat.CategoryName, formatter.StyleGreen.Render("ok"))
			} else {
				fmt.Fprintf(&b, "%s  %s\n", cat.CategoryName, formatter.StyleRed.Render(fmt.Sprintf("−%.1f", cat.ScoreDeduction)))
			}
			if cat.Notes != "" {
				b.WriteString("  " + formatter.Dim(cat.Notes) + "\n")
			}
		}
	}

	if a.GeneralNotes != "" {
		b.WriteString("\n" + formatter.Header("Notes") + "\n" + a.GeneralNotes + "\n")
	}
	if a.EquipmentIssues != "" {
		b.WriteString("\n" + formatter.Header("Equipment Issues") + "\n" + a.EquipmentIssues + "\n")
	}

	return b.String()
}

func (v *auditDetailView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	return v.vp.View()
}
