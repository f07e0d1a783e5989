package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/giraffekitchen/kitchenctl/internal/api"
	"github.com/giraffekitchen/kitchenctl/internal/cli/formatter"
	"github.com/giraffekitchen/kitchenctl/internal/domain"
)

// checkFormLoadedMsg carries the reference data for the check form.
type checkFormLoadedMsg struct {
	branches []domain.Branch
	dishes   []domain.Dish
	chefs    []domain.Chef
	err      error
}

// checkSavedMsg carries the result of submitting a check.
type checkSavedMsg struct {
	check *domain.DishCheck
	err   error
}

// checkFormView records a dish check: branch, dish, chef, 1-10 rating
// and free-text comments.
type checkFormView struct {
	state  *SharedState
	ctx    context.Context
	cancel context.CancelFunc

	form    *huh.Form
	loading bool
	busy    bool
	errText string
	saved   *domain.DishCheck

	chefs []domain.Chef

	branchID int
	dishID   int
	chefID   int
	chefName string
	rating   string
	comments string
}

func newCheckFormView(state *SharedState) *checkFormView {
	ctx, cancel := context.WithCancel(context.Background())
	return &checkFormView{state: state, ctx: ctx, cancel: cancel, loading: true}
}

func (v *checkFormView) ID() ViewID    { return ViewCheckForm }
func (v *checkFormView) Title() string { return "New Check" }
func (v *checkFormView) Close()        { v.cancel() }

func (v *checkFormView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (v *checkFormView) Init() tea.Cmd {
	return v.loadData()
}

func (v *checkFormView) loadData() tea.Cmd {
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
				return checkFormLoadedMsg{err: err}
			}
		}
		dishes := cachedDishes
		if len(dishes) == 0 {
			dishes, err = app.API.ListDishes(ctx)
			if err != nil {
				return checkFormLoadedMsg{err: err}
			}
		}
		chefs, err := app.API.ListChefs(ctx, 0)
		if err != nil {
			return checkFormLoadedMsg{err: err}
		}
		return checkFormLoadedMsg{branches: branches, dishes: dishes, chefs: chefs}
	}
}

func (v *checkFormView) buildForm(branches []domain.Branch, dishes []domain.Dish) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Branch").
				Options(branchOptions(branches)...).
				Value(&v.branchID),
			huh.NewSelect[int]().
				Title("Dish").
				Options(dishOptions(dishes)...).
				Value(&v.dishID),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Chef").
				OptionsFunc(func() []huh.Option[int] {
					return chefOptions(v.branchChefs())
				}, &v.branchID).
				Value(&v.chefID),
			huh.NewInput().
				Title("Chef name (when not listed)").
				Value(&v.chefName),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Rating (1-10)").
				Value(&v.rating).
				Validate(validateRating),
			huh.NewText().
				Title("Comments").
				Value(&v.comments),
		),
	).WithTheme(kitchenHuhTheme()).WithShowHelp(false)
}

// branchChefs filters the chef list to the selected branch.
func (v *checkFormView) branchChefs() []domain.Chef {
	var out []domain.Chef
	for _, c := range v.chefs {
		if c.BranchID == v.branchID {
			out = append(out, c)
		}
	}
	return out
}

func validateRating(s string) error {
	r, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !domain.ValidCheckRating(r) {
		return fmt.Errorf("rating must be between %d and %d", domain.CheckRatingMin, domain.CheckRatingMax)
	}
	return nil
}

func (v *checkFormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case checkFormLoadedMsg:
		v.loading = false
		if msg.err != nil {
			return v, loadErrCmd(msg.err)
		}
		v.chefs = msg.chefs
		v.state.Branches = msg.branches
		v.state.Dishes = msg.dishes
		v.form = v.buildForm(msg.branches, msg.dishes)
		return v, v.form.Init()

	case checkSavedMsg:
		v.busy = false
		if msg.err != nil {
			if isCanceled(msg.err) {
				return v, nil
			}
			if isNotAuthorized(msg.err) {
				return v, func() tea.Msg { return sessionExpiredMsg{} }
			}
			// Keep the form state so the user can fix and resubmit.
			v.errText = msg.err.Error()
			v.form = v.buildForm(v.state.Branches, v.state.Dishes)
			return v, v.form.Init()
		}
		v.saved = msg.check
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
		v.busy = true
		v.errText = ""
		return v, v.submit()
	}

	return v, cmd
}

func (v *checkFormView) submit() tea.Cmd {
	app := v.state.App
	ctx := v.ctx

	rating, _ := strconv.ParseFloat(strings.TrimSpace(v.rating), 64)
	req := api.CheckCreate{
		BranchID:       v.branchID,
		DishID:         v.dishID,
		ChefNameManual: strings.TrimSpace(v.chefName),
		Rating:         rating,
		Comments:       v.comments,
	}
	if v.chefID > 0 {
		chefID := v.chefID
		req.ChefID = &chefID
		req.ChefNameManual = ""
	}

	return func() tea.Msg {
		check, err := app.API.CreateCheck(ctx, req)
		return checkSavedMsg{check: check, err: err}
	}
}

func (v *checkFormView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	var b []string
	if v.errText != "" {
		b = append(b, formatter.StyleRed.Render("✗ "+v.errText), "")
	}
	if v.busy {
		b = append(b, formatter.Dim("Saving..."))
	} else if v.form != nil {
		b = append(b, v.form.View())
	}
	return strings.Join(b, "\n")
}
