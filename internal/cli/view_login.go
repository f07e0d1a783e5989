package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/giraffekitchen/kitchenctl/internal/cli/formatter"
	"github.com/giraffekitchen/kitchenctl/internal/domain"
)

// loginDoneMsg carries the result of a login attempt.
type loginDoneMsg struct {
	user domain.User
	err  error
}

// loginView is the entry screen: email and password with inline
// validation. API failures show as a banner above the form and the
// typed values survive.
type loginView struct {
	state    *SharedState
	ctx      context.Context
	cancel   context.CancelFunc
	form     *huh.Form
	email    string
	password string
	busy     bool
	errText  string
}

func newLoginView(state *SharedState) *loginView {
	ctx, cancel := context.WithCancel(context.Background())
	v := &loginView{state: state, ctx: ctx, cancel: cancel}
	v.form = v.buildForm()
	return v
}

func (v *loginView) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@company.com").
				Value(&v.email).
				Validate(validateRequired("email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&v.password).
				Validate(validateRequired("password")),
		),
	).WithTheme(kitchenHuhTheme()).WithShowHelp(false)
}

func (v *loginView) ID() ViewID    { return ViewLogin }
func (v *loginView) Title() string { return "Sign In" }
func (v *loginView) Close()        { v.cancel() }

func (v *loginView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "sign in")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (v *loginView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *loginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		v.busy = false
		if msg.err != nil {
			if isCanceled(msg.err) {
				return v, nil
			}
			if isNotAuthorized(msg.err) {
				v.errText = "Wrong email or password."
			} else {
				v.errText = msg.err.Error()
			}
			// Rebuild the form so it can be submitted again; the typed
			// values are kept since the form reads them by pointer.
			v.form = v.buildForm()
			return v, v.form.Init()
		}
		v.state.SetUser(msg.user)
		return v, replaceView(newDashboardView(v.state))

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted && !v.busy {
		v.busy = true
		v.errText = ""
		return v, v.login()
	}

	return v, cmd
}

func (v *loginView) login() tea.Cmd {
	app := v.state.App
	ctx := v.ctx
	email, password := v.email, v.password
	return func() tea.Msg {
		result, err := app.API.Login(ctx, email, password)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		if err := app.Session.Save(ctx, result.Token, result.User); err != nil {
			return loginDoneMsg{err: err}
		}
		return loginDoneMsg{user: result.User}
	}
}

func (v *loginView) View() string {
	var b []string
	if v.errText != "" {
		b = append(b, formatter.StyleRed.Render("✗ "+v.errText), "")
	}
	if v.busy {
		b = append(b, formatter.Dim("Signing in..."))
	} else {
		b = append(b, v.form.View())
	}
	return formatter.RenderBox("Sign In", strings.Join(b, "\n"))
}
