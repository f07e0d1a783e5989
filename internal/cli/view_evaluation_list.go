package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/giraffekitchen/kitchenctl/internal/api"
	"github.com/giraffekitchen/kitchenctl/internal/cli/formatter"
	"github.com/giraffekitchen/kitchenctl/internal/domain"
	"github.com/giraffekitchen/kitchenctl/internal/evaluation"
)

// evaluationsLoadedMsg signals that the evaluation list has been loaded.
type evaluationsLoadedMsg struct {
	evals []domain.ManagerEvaluation
	err   error
}

// evaluationListView lists manager evaluations. Creation is wired even
// though the backend may reject non-evaluators; a rejection simply
// returns to login.
type evaluationListView struct {
	state  *SharedState
	ctx    context.Context
	cancel context.CancelFunc

	evals   []domain.ManagerEvaluation
	cursor  int
	loading bool
}

func newEvaluationListView(state *SharedState) *evaluationListView {
	ctx, cancel := context.WithCancel(context.Background())
	return &evaluationListView{state: state, ctx: ctx, cancel: cancel, loading: true}
}

func (v *evaluationListView) ID() ViewID    { return ViewEvaluationList }
func (v *evaluationListView) Title() string { return "Evaluations" }
func (v *evaluationListView) Close()        { v.cancel() }

func (v *evaluationListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new evaluation")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *evaluationListView) Init() tea.Cmd {
	return v.loadEvaluations()
}

func (v *evaluationListView) loadEvaluations() tea.Cmd {
	app := v.state.App
	ctx := v.ctx
	return func() tea.Msg {
		evals, err := app.API.ListEvaluations(ctx, api.EvaluationFilter{})
		return evaluationsLoadedMsg{evals: evals, err: err}
	}
}

func (v *evaluationListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case evaluationsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			return v, loadErrCmd(msg.err)
		}
		v.evals = msg.evals
		if v.cursor >= len(v.evals) {
			v.cursor = 0
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadEvaluations()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.evals)-1 {
				v.cursor++
			}
		case "enter":
			if v.cursor < len(v.evals) {
				return v, pushView(newEvaluationDetailView(v.state, v.evals[v.cursor].ID))
			}
		case "n":
			return v, pushView(newEvaluationWizardView(v.state))
		case "r":
			v.loading = true
			return v, v.loadEvaluations()
		}
	}
	return v, nil
}

func (v *evaluationListView) View() string {
	var b strings.Builder

	b.WriteString(formatter.Header("Manager Evaluations") + "\n")

	if v.loading {
		b.WriteString(formatter.Dim("Loading...") + "\n")
		return b.String()
	}
	if len(v.evals) == 0 {
		b.WriteString(formatter.Dim("No evaluations yet. Press n to start one.") + "\n")
		return b.String()
	}

	for i, e := range v.evals {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleHeader.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s  %s  %s %s %s\n",
			cursor,
			formatter.Rating(e.OverallRating),
			formatter.EvaluationStatusPill(e.Status),
			formatter.Truncate(e.ManagerName, 24),
			formatter.Dim(e.BranchName),
			formatter.Dim(formatter.ISODate(e.EvaluationDate)))
	}

	return b.String()
}

// ── evaluation detail ────────────────────────────────────────────────────────

// evaluationDetailLoadedMsg carries one evaluation with its categories.
type evaluationDetailLoadedMsg struct {
	eval *domain.ManagerEvaluation
	err  error
}

// evaluationDetailView shows one evaluation, decoding each category's
// comment blob back into its sub-category lines.
type evaluationDetailView struct {
	state  *SharedState
	ctx    context.Context
	cancel context.CancelFunc

	evalID  int
	eval    *domain.ManagerEvaluation
	vp      viewport.Model
	loading bool
}

func newEvaluationDetailView(state *SharedState, evalID int) *evaluationDetailView {
	ctx, cancel := context.WithCancel(context.Background())
	vp := viewport.New(state.Width, state.ContentHeight())
	return &evaluationDetailView{
		state:   state,
		ctx:     ctx,
		cancel:  cancel,
		evalID:  evalID,
		vp:      vp,
		loading: true,
	}
}

func (v *evaluationDetailView) ID() ViewID    { return ViewEvaluationList }
func (v *evaluationDetailView) Title() string { return fmt.Sprintf("Evaluation #%d", v.evalID) }
func (v *evaluationDetailView) Close()        { v.cancel() }

func (v *evaluationDetailView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "scroll")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	}
}

func (v *evaluationDetailView) Init() tea.Cmd {
	app := v.state.App
	ctx := v.ctx
	id := v.evalID
	return func() tea.Msg {
		eval, err := app.API.GetEvaluation(ctx, id)
		return evaluationDetailLoadedMsg{eval: eval, err: err}
	}
}

func (v *evaluationDetailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case evaluationDetailLoadedMsg:
		v.loading = false
		if msg.err != nil {
			return v, loadErrCmd(msg.err)
		}
		v.eval = msg.eval
		v.vp.SetContent(v.renderEvaluation())
		return v, nil

	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = v.state.ContentHeight()
		return v, nil

	case tea.KeyMsg:
		if msg.String() == "d" && v.eval != nil {
			return v, pushView(v.confirmDelete())
		}
	}

	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

// confirmDelete wraps a confirm form; deletion pops back to the list.
func (v *evaluationDetailView) confirmDelete() View {
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete the evaluation of %s?", v.eval.ManagerName)).
				Affirmative("Delete").
				Negative("Keep").
				Value(&confirmed),
		),
	).WithTheme(kitchenHuhTheme()).WithShowHelp(false)

	app := v.state.App
	ctx := v.ctx
	id := v.evalID
	return newWizardView(v.state, "Delete", form, func() tea.Cmd {
		if !confirmed {
			return nil
		}
		return func() tea.Msg {
			if err := app.API.DeleteEvaluation(ctx, id); err != nil {
				return loadErrMsg(err)
			}
			return popViewMsg{}
		}
	})
}

func (v *evaluationDetailView) renderEvaluation() string {
	e := v.eval
	var b strings.Builder

	fmt.Fprintf(&b, "%s — %s  %s\n", formatter.Bold(e.ManagerName), e.BranchName, formatter.ISODate(e.EvaluationDate))
	fmt.Fprintf(&b, "Overall: %s  %s\n", formatter.Rating(e.OverallRating), formatter.EvaluationStatusPill(e.Status))

	for _, cat := range e.Categories {
		b.WriteString("\n" + formatter.Header(cat.Name) + "\n")
		fmt.Fprintf(&b, "Rating: %s\n", formatter.Rating(cat.Rating))

		var subNames []string
		if tmpl, ok := evaluation.TemplateByName(cat.Name); ok {
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

	if e.GeneralComments != "" {
		b.WriteString("\n" + formatter.Header("General Comments") + "\n" + e.GeneralComments + "\n")
	}
	if e.AISummary != "" {
		b.WriteString("\n" + formatter.Header("Summary") + "\n" + e.AISummary + "\n")
	}

	return b.String()
}

func (v *evaluationDetailView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	return v.vp.View()
}
