package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/giraffekitchen/kitchenctl/internal/api"
	"github.com/giraffekitchen/kitchenctl/internal/cli/formatter"
	"github.com/giraffekitchen/kitchenctl/internal/domain"
)

// dashboardData holds the loaded data for the dashboard view.
type dashboardData struct {
	branches    []domain.Branch
	dishes      []domain.Dish
	assignments []domain.TaskAssignment
	checks      []domain.DishCheck
}

// dashboardLoadedMsg signals that dashboard data has been loaded.
type dashboardLoadedMsg struct {
	data dashboardData
	err  error
}

// dashboardView is the home screen: branch overview, today's
// assignments, and the most recent dish checks.
type dashboardView struct {
	state   *SharedState
	ctx     context.Context
	cancel  context.CancelFunc
	data    *dashboardData
	loading bool
}

func newDashboardView(state *SharedState) *dashboardView {
	ctx, cancel := context.WithCancel(context.Background())
	return &dashboardView{state: state, ctx: ctx, cancel: cancel, loading: true}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }
func (v *dashboardView) Close()        { v.cancel() }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "new check")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tasks")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "audits")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "evaluations")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.loadData()
}

func (v *dashboardView) loadData() tea.Cmd {
	app := v.state.App
	ctx := v.ctx
	branchID := 0
	if v.state.User != nil && v.state.User.BranchID != nil {
		branchID = *v.state.User.BranchID
	}
	return func() tea.Msg {
		branches, err := app.API.ListBranches(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		dishes, err := app.API.ListDishes(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		today := time.Now().Format("2006-01-02")
		assignments, err := app.API.ListAssignments(ctx, api.AssignmentFilter{Date: today, BranchID: branchID})
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		checks, err := app.API.ListChecks(ctx, api.CheckFilter{BranchID: branchID})
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		return dashboardLoadedMsg{data: dashboardData{
			branches:    branches,
			dishes:      dishes,
			assignments: assignments,
			checks:      checks,
		}}
	}
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		v.loading = false
		if msg.err != nil {
			return v, loadErrCmd(msg.err)
		}
		v.data = &msg.data
		v.state.Branches = msg.data.branches
		v.state.Dishes = msg.data.dishes
		return v, nil

	case refreshViewMsg:
		return v, v.loadData()

	case tea.KeyMsg:
		switch msg.String() {
		case "c":
			return v, pushView(newCheckFormView(v.state))
		case "t":
			return v, pushView(newTaskListView(v.state))
		case "s":
			return v, pushView(newReportsView(v.state))
		case "e":
			return v, pushView(newEvaluationListView(v.state))
		case "r":
			v.loading = true
			return v, v.loadData()
		}
	}
	return v, nil
}

func (v *dashboardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.data == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(formatter.Header("Today's Assignments") + "\n")
	if len(v.data.assignments) == 0 {
		b.WriteString(formatter.Dim("Nothing assigned for today.") + "\n")
	} else {
		done := 0
		for _, a := range v.data.assignments {
			if a.IsCompleted {
				done++
			}
		}
		fmt.Fprintf(&b, "%d of %d completed\n", done, len(v.data.assignments))
		for i, a := range v.data.assignments {
			if i >= 8 {
				fmt.Fprintf(&b, "%s\n", formatter.Dim(fmt.Sprintf("… and %d more", len(v.data.assignments)-i)))
				break
			}
			fmt.Fprintf(&b, "%s  %s %s\n",
				formatter.CompletionPill(a.IsCompleted),
				formatter.Truncate(a.TaskTitle, 44),
				formatter.Dim(a.BranchName))
		}
	}

	b.WriteString("\n" + formatter.Header("Recent Checks") + "\n")
	if len(v.data.checks) == 0 {
		b.WriteString(formatter.Dim("No checks recorded yet.") + "\n")
	} else {
		for i, c := range v.data.checks {
			if i >= 6 {
				break
			}
			fmt.Fprintf(&b, "%s  %s %s %s\n",
				formatter.Rating(c.Rating),
				formatter.Truncate(c.DishName, 30),
				formatter.Dim(c.BranchName),
				formatter.Dim(formatter.HumanDate(c.CheckDate)))
		}
	}

	fmt.Fprintf(&b, "\n%s %d branches, %d dishes on the menu\n",
		formatter.Dim("Chain:"), len(v.data.branches), len(v.data.dishes))

	return b.String()
}
