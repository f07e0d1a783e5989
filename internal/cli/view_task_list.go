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

// taskListLoadedMsg signals that assignments have been loaded.
type taskListLoadedMsg struct {
	assignments []domain.TaskAssignment
	err         error
}

// taskToggledMsg signals that a completion toggle finished.
type taskToggledMsg struct {
	err error
}

// taskListView shows the task assignments for one date with
// toggleable completion state.
type taskListView struct {
	state  *SharedState
	ctx    context.Context
	cancel context.CancelFunc

	date        string
	assignments []domain.TaskAssignment
	cursor      int
	loading     bool
}

func newTaskListView(state *SharedState) *taskListView {
	ctx, cancel := context.WithCancel(context.Background())
	return &taskListView{
		state:   state,
		ctx:     ctx,
		cancel:  cancel,
		date:    time.Now().Format("2006-01-02"),
		loading: true,
	}
}

func (v *taskListView) ID() ViewID    { return ViewTaskList }
func (v *taskListView) Title() string { return "Tasks" }
func (v *taskListView) Close()        { v.cancel() }

func (v *taskListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "toggle done")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task")),
		key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "change day")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *taskListView) Init() tea.Cmd {
	return v.loadAssignments()
}

func (v *taskListView) loadAssignments() tea.Cmd {
	app := v.state.App
	ctx := v.ctx
	date := v.date
	branchID := 0
	if v.state.User != nil && v.state.User.BranchID != nil {
		branchID = *v.state.User.BranchID
	}
	return func() tea.Msg {
		assignments, err := app.API.ListAssignments(ctx, api.AssignmentFilter{Date: date, BranchID: branchID})
		return taskListLoadedMsg{assignments: assignments, err: err}
	}
}

func (v *taskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskListLoadedMsg:
		v.loading = false
		if msg.err != nil {
			return v, loadErrCmd(msg.err)
		}
		v.assignments = msg.assignments
		if v.cursor >= len(v.assignments) {
			v.cursor = 0
		}
		return v, nil

	case taskToggledMsg:
		if msg.err != nil {
			return v, loadErrCmd(msg.err)
		}
		return v, v.loadAssignments()

	case refreshViewMsg:
		return v, v.loadAssignments()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.assignments)-1 {
				v.cursor++
			}
		case " ":
			if v.cursor < len(v.assignments) {
				return v, v.toggle(v.assignments[v.cursor])
			}
		case "n":
			return v, pushView(newTaskWizardView(v.state))
		case "[":
			v.shiftDate(-1)
			v.loading = true
			return v, v.loadAssignments()
		case "]":
			v.shiftDate(1)
			v.loading = true
			return v, v.loadAssignments()
		case "r":
			v.loading = true
			return v, v.loadAssignments()
		}
	}
	return v, nil
}

func (v *taskListView) shiftDate(days int) {
	t, err := time.Parse("2006-01-02", v.date)
	if err != nil {
		t = time.Now()
	}
	v.date = t.AddDate(0, 0, days).Format("2006-01-02")
}

func (v *taskListView) toggle(a domain.TaskAssignment) tea.Cmd {
	app := v.state.App
	ctx := v.ctx
	return func() tea.Msg {
		var err error
		if a.IsCompleted {
			err = app.API.UncompleteAssignment(ctx, a.ID)
		} else {
			err = app.API.CompleteAssignment(ctx, a.ID, "", nil)
		}
		return taskToggledMsg{err: err}
	}
}

func (v *taskListView) View() string {
	var b strings.Builder

	b.WriteString(formatter.Header("Assignments "+formatter.ISODate(v.date)) + "\n")

	if v.loading {
		b.WriteString(formatter.Dim("Loading...") + "\n")
		return b.String()
	}
	if len(v.assignments) == 0 {
		b.WriteString(formatter.Dim("No assignments for this day.") + "\n")
		return b.String()
	}

	for i, a := range v.assignments {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleHeader.Render("> ")
		}
		line := fmt.Sprintf("%s%s  %s %s",
			cursor,
			formatter.CompletionPill(a.IsCompleted),
			formatter.Truncate(a.TaskTitle, 44),
			formatter.Dim(a.BranchName))
		if a.Notes != "" {
			line += "\n    " + formatter.Dim(formatter.Truncate(a.Notes, 60))
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}
