package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/giraffekitchen/kitchenctl/internal/api"
	"github.com/giraffekitchen/kitchenctl/internal/cli/formatter"
	"github.com/giraffekitchen/kitchenctl/internal/domain"
	"github.com/giraffekitchen/kitchenctl/internal/evaluation"
)

// taskWizardLoadedMsg carries reference data for the task wizard.
type taskWizardLoadedMsg struct {
	branches []domain.Branch
	dishes   []domain.Dish
	err      error
}

// taskCreatedMsg carries the result of the create call.
type taskCreatedMsg struct {
	task *domain.DailyTask
	err  error
}

// taskWizardView creates a task and assigns it to branches. The title
// is derived from the type and dish, never typed by hand.
type taskWizardView struct {
	state  *SharedState
	ctx    context.Context
	cancel context.CancelFunc

	form    *huh.Form
	draft   *evaluation.TaskDraft
	loading bool
	busy    bool
	errText string

	branches []domain.Branch

	taskType  string
	frequency string
	dishID    int
	branchIDs []int
	all       bool
	startDate string
	endDate   string
}

func newTaskWizardView(state *SharedState) *taskWizardView {
	ctx, cancel := context.WithCancel(context.Background())
	draft := evaluation.NewTaskDraft()
	return &taskWizardView{
		state:     state,
		ctx:       ctx,
		cancel:    cancel,
		draft:     draft,
		loading:   true,
		taskType:  string(draft.Type),
		frequency: string(draft.Frequency),
		startDate: draft.StartDate,
	}
}

func (v *taskWizardView) ID() ViewID    { return ViewForm }
func (v *taskWizardView) Title() string { return "New Task" }
func (v *taskWizardView) Close()        { v.cancel() }

func (v *taskWizardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (v *taskWizardView) Init() tea.Cmd {
	return v.loadData()
}

func (v *taskWizardView) loadData() tea.Cmd {
	app := v.state.App
	ctx := v.ctx
	cachedBranches := v.state.Branches
	cachedDishes := v.state.Dishes
	return func() tea.Msg {
		branches := cachedBranches
		var err error
		if len(branches) == 0 {
			branches, err = app.API.ListBranches(ctx)
			if err != nil {
				return taskWizardLoadedMsg{err: err}
			}
		}
		dishes := cachedDishes
		if len(dishes) == 0 {
			dishes, err = app.API.ListDishes(ctx)
			if err != nil {
				return taskWizardLoadedMsg{err: err}
			}
		}
		return taskWizardLoadedMsg{branches: branches, dishes: dishes}
	}
}

func (v *taskWizardView) buildForm(dishes []domain.Dish) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Task type").
				Options(
					huh.NewOption("Dish check", string(domain.TaskDishCheck)),
					huh.NewOption("Recipe review", string(domain.TaskRecipeReview)),
				).
				Value(&v.taskType),
			huh.NewSelect[string]().
				Title("Frequency").
				Options(
					huh.NewOption("Once", string(domain.FrequencyOnce)),
					huh.NewOption("Daily", string(domain.FrequencyDaily)),
					huh.NewOption("Weekly", string(domain.FrequencyWeekly)),
				).
				Value(&v.frequency),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Dish").
				Options(dishOptions(dishes)...).
				Value(&v.dishID),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Assign to all branches?").
				Value(&v.all),
			huh.NewMultiSelect[int]().
				Title("Branches").
				Options(branchOptions(v.branches)...).
				Value(&v.branchIDs),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start date").
				Value(&v.startDate).
				Validate(validateDate),
			huh.NewInput().
				Title("End date (optional)").
				Value(&v.endDate).
				Validate(validateOptionalDate),
		),
	).WithTheme(kitchenHuhTheme()).WithShowHelp(false)
}

func (v *taskWizardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskWizardLoadedMsg:
		v.loading = false
		if msg.err != nil {
			return v, loadErrCmd(msg.err)
		}
		v.branches = msg.branches
		v.state.Branches = msg.branches
		v.state.Dishes = msg.dishes
		v.form = v.buildForm(msg.dishes)
		return v, v.form.Init()

	case taskCreatedMsg:
		v.busy = false
		if msg.err != nil {
			if isCanceled(msg.err) {
				return v, nil
			}
			if isNotAuthorized(msg.err) {
				return v, func() tea.Msg { return sessionExpiredMsg{} }
			}
			v.errText = msg.err.Error()
			v.form = v.buildForm(v.state.Dishes)
			return v, v.form.Init()
		}
		return v, tea.Batch(popView(), refreshViews())

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
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
		return v.submit(cmd)
	}

	return v, cmd
}

// submit fills the draft from the form, validates it, and either shows
// the first violation or creates the task.
func (v *taskWizardView) submit(formCmd tea.Cmd) (tea.Model, tea.Cmd) {
	v.draft.Type = domain.TaskType(v.taskType)
	v.draft.Frequency = domain.TaskFrequency(v.frequency)
	v.draft.StartDate = v.startDate
	v.draft.EndDate = strings.TrimSpace(v.endDate)
	v.draft.DishID = nil
	v.draft.DishName = ""
	if v.draft.Type.RequiresDish() || v.dishID > 0 {
		if v.dishID > 0 {
			dishID := v.dishID
			v.draft.DishID = &dishID
			for _, d := range v.state.Dishes {
				if d.ID == v.dishID {
					v.draft.DishName = d.Name
					break
				}
			}
		}
	}
	if v.all {
		v.draft.SelectAllBranches()
	} else {
		v.draft.AllBranches = false
		v.draft.BranchIDs = nil
		for _, id := range v.branchIDs {
			v.draft.SelectBranch(id)
		}
	}

	if errs := v.draft.Validate(); len(errs) > 0 {
		v.errText = errs[0].Message
		v.form = v.buildForm(v.state.Dishes)
		return v, v.form.Init()
	}

	v.busy = true
	v.errText = ""

	app := v.state.App
	ctx := v.ctx
	draft := v.draft
	branches := v.branches

	create := func() tea.Msg {
		req := api.TaskCreate{
			Title:       draft.Title(),
			Description: draft.Description,
			Type:        draft.Type,
			DishID:      draft.DishID,
			Frequency:   draft.Frequency,
			StartDate:   draft.StartDate,
			BranchIDs:   draft.TargetBranchIDs(branches),
		}
		if draft.EndDate != "" {
			endDate := draft.EndDate
			req.EndDate = &endDate
		}
		task, err := app.API.CreateTask(ctx, req)
		return taskCreatedMsg{task: task, err: err}
	}
	return v, tea.Batch(formCmd, create)
}

func (v *taskWizardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	var b []string
	if v.errText != "" {
		b = append(b, formatter.StyleRed.Render("✗ "+v.errText), "")
	}
	if v.busy {
		b = append(b, formatter.Dim("Creating task..."))
	} else if v.form != nil {
		b = append(b, v.form.View())
	}
	return strings.Join(b, "\n")
}
