package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/giraffekitchen/kitchenctl/internal/api"
	"github.com/giraffekitchen/kitchenctl/internal/cli/formatter"
	"github.com/giraffekitchen/kitchenctl/internal/domain"
	"github.com/giraffekitchen/kitchenctl/internal/evaluation"
)

// evalWizardLoadedMsg carries the branch list for the wizard.
type evalWizardLoadedMsg struct {
	branches []domain.Branch
	err      error
}

// evalSubmittedMsg carries the remotely created evaluation with its
// generated summary.
type evalSubmittedMsg struct {
	eval *domain.ManagerEvaluation
	err  error
}

// evalFinalizedMsg signals the completion update finished.
type evalFinalizedMsg struct {
	err error
}

// evaluationWizardView walks through the category pages, submits the
// evaluation, shows the generated summary for review, and finalizes.
// Once submitted there is no way back: the remote record exists, and
// the only forward path is confirming the summary.
type evaluationWizardView struct {
	state  *SharedState
	ctx    context.Context
	cancel context.CancelFunc

	flow    *evaluation.Flow
	form    *huh.Form
	loading bool
	busy    bool
	errText string

	branches []domain.Branch

	// Form bindings, parallel to the flow draft's category order.
	branchID   int
	manager    string
	date       string
	ratings    []int
	subAnswers [][]string
	catNotes   []string
	general    string

	// Summary review bindings.
	extraNotes string
	confirmed  bool
}

func newEvaluationWizardView(state *SharedState) *evaluationWizardView {
	ctx, cancel := context.WithCancel(context.Background())
	flow := evaluation.NewFlow()
	draft := flow.Draft()

	v := &evaluationWizardView{
		state:   state,
		ctx:     ctx,
		cancel:  cancel,
		flow:    flow,
		loading: true,
		date:    draft.EvaluationDate,
	}
	for _, c := range draft.Categories {
		v.ratings = append(v.ratings, int(c.Rating))
		v.subAnswers = append(v.subAnswers, make([]string, len(c.Template.SubCategories)))
		v.catNotes = append(v.catNotes, "")
	}
	return v
}

func (v *evaluationWizardView) ID() ViewID    { return ViewEvaluationWizard }
func (v *evaluationWizardView) Title() string { return "New Evaluation" }
func (v *evaluationWizardView) Close()        { v.cancel() }

func (v *evaluationWizardView) ShortHelp() []key.Binding {
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
	}
	if v.flow.State() == evaluation.StateEditing {
		bindings = append(bindings, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "discard")))
	}
	return bindings
}

func (v *evaluationWizardView) Init() tea.Cmd {
	app := v.state.App
	ctx := v.ctx
	cached := v.state.Branches
	return func() tea.Msg {
		branches := cached
		var err error
		if len(branches) == 0 {
			branches, err = app.API.ListBranches(ctx)
			if err != nil {
				return evalWizardLoadedMsg{err: err}
			}
		}
		return evalWizardLoadedMsg{branches: branches}
	}
}

// buildEditForm assembles the multi-page form: header page, one page per
// registered category, and a closing general-comments page.
func (v *evaluationWizardView) buildEditForm() *huh.Form {
	ratingOptions := make([]huh.Option[int], 0, 11)
	for r := 0; r <= 10; r++ {
		ratingOptions = append(ratingOptions, huh.NewOption(fmt.Sprintf("%d", r), r))
	}

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Branch").
				Options(branchOptions(v.branches)...).
				Value(&v.branchID),
			huh.NewInput().
				Title("Manager name").
				Value(&v.manager).
				Validate(validateRequired("manager name")),
			huh.NewInput().
				Title("Evaluation date").
				Value(&v.date).
				Validate(validateDate),
		),
	}

	draft := v.flow.Draft()
	for i := range draft.Categories {
		tmpl := draft.Categories[i].Template
		fields := []huh.Field{
			huh.NewSelect[int]().
				Title(tmpl.Name + " — rating").
				Options(ratingOptions...).
				Value(&v.ratings[i]),
		}
		for j, sub := range tmpl.SubCategories {
			fields = append(fields, huh.NewInput().
				Title(sub).
				Placeholder(tmpl.Placeholder).
				Value(&v.subAnswers[i][j]))
		}
		fields = append(fields, huh.NewText().
			Title("Additional notes").
			Value(&v.catNotes[i]))
		groups = append(groups, huh.NewGroup(fields...))
	}

	groups = append(groups, huh.NewGroup(
		huh.NewText().
			Title("General comments").
			Value(&v.general),
	))

	return huh.NewForm(groups...).WithTheme(kitchenHuhTheme()).WithShowHelp(false)
}

// buildSummaryForm shows the generated summary and asks for confirmation.
func (v *evaluationWizardView) buildSummaryForm() *huh.Form {
	result := v.flow.Result()
	desc := result.AISummary
	if desc == "" {
		desc = "(no summary returned)"
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(fmt.Sprintf("Summary — overall %.1f/10", result.OverallRating)).
				Description(desc),
			huh.NewText().
				Title("Extra notes (appended to the summary)").
				Value(&v.extraNotes),
			huh.NewConfirm().
				Title("Finalize this evaluation?").
				Affirmative("Finalize").
				Negative("Review again").
				Value(&v.confirmed),
		),
	).WithTheme(kitchenHuhTheme()).WithShowHelp(false)
}

func (v *evaluationWizardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case evalWizardLoadedMsg:
		v.loading = false
		if msg.err != nil {
			return v, loadErrCmd(msg.err)
		}
		v.branches = msg.branches
		v.state.Branches = msg.branches
		v.form = v.buildEditForm()
		return v, v.form.Init()

	case evalSubmittedMsg:
		v.busy = false
		if msg.err != nil {
			if isCanceled(msg.err) {
				return v, nil
			}
			if isNotAuthorized(msg.err) {
				return v, func() tea.Msg { return sessionExpiredMsg{} }
			}
			v.errText = msg.err.Error()
			v.form = v.buildEditForm()
			return v, v.form.Init()
		}
		if err := v.flow.MarkSubmitted(msg.eval); err != nil {
			v.errText = err.Error()
			return v, nil
		}
		v.form = v.buildSummaryForm()
		return v, v.form.Init()

	case evalFinalizedMsg:
		v.busy = false
		if msg.err != nil {
			if isCanceled(msg.err) {
				return v, nil
			}
			if isNotAuthorized(msg.err) {
				return v, func() tea.Msg { return sessionExpiredMsg{} }
			}
			v.errText = msg.err.Error()
			return v, nil
		}
		return v, tea.Batch(popView(), refreshViews())

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			// Discarding is only legal before the first submit.
			if err := v.flow.Cancel(); err != nil {
				v.errText = "The evaluation is already saved; confirm the summary to finish."
				return v, nil
			}
			return v, popView()
		}
		if v.busy || v.form == nil {
			return v, nil
		}
	}

	if v.form == nil {
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted && !v.busy {
		switch v.flow.State() {
		case evaluation.StateEditing:
			return v.submit(cmd)
		case evaluation.StateAwaitingSummary:
			if !v.confirmed {
				// Back to the summary page for another look.
				v.form = v.buildSummaryForm()
				return v, v.form.Init()
			}
			return v.finalize(cmd)
		}
	}

	return v, cmd
}

// submit copies the form bindings into the flow draft, encodes the
// sub-category answers, validates, and creates the evaluation remotely
// followed by a summary generation call.
func (v *evaluationWizardView) submit(formCmd tea.Cmd) (tea.Model, tea.Cmd) {
	draft := v.flow.Draft()
	draft.BranchID = v.branchID
	draft.BranchName = v.state.BranchName(v.branchID)
	draft.ManagerName = strings.TrimSpace(v.manager)
	draft.EvaluationDate = v.date
	draft.GeneralComments = v.general

	for i := range draft.Categories {
		c := &draft.Categories[i]
		c.Rating = float64(v.ratings[i])
		blob := ""
		for j, sub := range c.Template.SubCategories {
			blob = evaluation.SetSubComment(blob, sub, strings.TrimSpace(v.subAnswers[i][j]))
		}
		blob = evaluation.SetGeneralComment(blob, strings.TrimSpace(v.catNotes[i]), c.Template.SubCategories)
		c.Comments = blob
	}

	if errs := v.flow.ValidateForSubmit(); len(errs) > 0 {
		v.errText = errs[0].Message
		v.form = v.buildEditForm()
		return v, v.form.Init()
	}

	v.busy = true
	v.errText = ""

	app := v.state.App
	ctx := v.ctx
	req := api.EvaluationCreate{
		BranchID:        draft.BranchID,
		ManagerName:     draft.ManagerName,
		EvaluationDate:  draft.EvaluationDate,
		GeneralComments: draft.GeneralComments,
		Categories:      draft.CategoryPayload(),
	}

	create := func() tea.Msg {
		eval, err := app.API.CreateEvaluation(ctx, req)
		if err != nil {
			return evalSubmittedMsg{err: err}
		}
		status := domain.EvaluationInProgress
		if _, err := app.API.UpdateEvaluation(ctx, eval.ID, api.EvaluationUpdate{Status: &status}); err != nil {
			return evalSubmittedMsg{err: err}
		}
		eval, err = app.API.GenerateEvaluationSummary(ctx, eval.ID)
		return evalSubmittedMsg{eval: eval, err: err}
	}
	return v, tea.Batch(formCmd, create)
}

// finalize stores the confirmed summary text and completes the evaluation.
func (v *evaluationWizardView) finalize(formCmd tea.Cmd) (tea.Model, tea.Cmd) {
	summary, err := v.flow.Finalize(v.extraNotes)
	if err != nil {
		v.errText = err.Error()
		return v, nil
	}

	v.busy = true
	v.errText = ""

	app := v.state.App
	ctx := v.ctx
	evalID := v.flow.Result().ID

	complete := func() tea.Msg {
		status := domain.EvaluationCompleted
		_, err := app.API.UpdateEvaluation(ctx, evalID, api.EvaluationUpdate{
			AISummary: &summary,
			Status:    &status,
		})
		return evalFinalizedMsg{err: err}
	}
	return v, tea.Batch(formCmd, complete)
}

func (v *evaluationWizardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	var b []string
	if v.errText != "" {
		b = append(b, formatter.StyleRed.Render("✗ "+v.errText), "")
	}
	switch {
	case v.busy && v.flow.State() == evaluation.StateEditing:
		b = append(b, formatter.Dim("Saving evaluation and generating summary..."))
	case v.busy:
		b = append(b, formatter.Dim("Finalizing..."))
	case v.form != nil:
		b = append(b, v.form.View())
	}
	return strings.Join(b, "\n")
}
