package cli

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/giraffekitchen/kitchenctl/internal/api"
	"github.com/giraffekitchen/kitchenctl/internal/cli/formatter"
)

// appModel is the root bubbletea Model for the TUI.
// It manages a view stack; the bottom view is login or dashboard.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool

	// Transient error banner shown above the active view.
	banner string
}

func newAppModel(app *App) appModel {
	state := &SharedState{App: app}

	m := appModel{state: state}

	// Resume the stored session when one exists, otherwise start at login.
	if sess, err := app.Session.Current(context.Background()); err == nil {
		app.API.SetToken(sess.Token)
		state.SetUser(sess.User)
		m.viewStack = []View{newDashboardView(state)}
	} else {
		m.viewStack = []View{newLoginView(state)}
	}

	return m
}

// runTUI starts the interactive application.
func runTUI(app *App) error {
	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// popActiveView closes and removes the top view. The bottom view stays.
func (m *appModel) popActiveView() {
	if len(m.viewStack) > 1 {
		m.activeView().Close()
		m.viewStack = m.viewStack[:len(m.viewStack)-1]
	}
}

// resetToLogin closes every view and restarts at the login screen.
func (m *appModel) resetToLogin() View {
	for _, v := range m.viewStack {
		v.Close()
	}
	m.state.ClearUser()
	login := newLoginView(m.state)
	m.viewStack = []View{login}
	return login
}

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		if v := m.activeView(); v != nil {
			updated, cmd := v.Update(msg)
			m.setActiveView(updated.(View))
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.banner = ""
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		m.banner = ""
		m.popActiveView()
		return m, nil

	case replaceViewMsg:
		m.banner = ""
		if len(m.viewStack) > 0 {
			m.activeView().Close()
			m.viewStack[len(m.viewStack)-1] = msg.view
		} else {
			m.viewStack = append(m.viewStack, msg.view)
		}
		return m, msg.view.Init()

	case refreshViewMsg:
		// Broadcast to ALL views in the stack so underlying views reload
		// data after mutations made in views above them.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case bannerMsg:
		m.banner = msg.text
		return m, nil

	case sessionExpiredMsg:
		// The backend rejected the token. Drop the stored session and
		// return to login without surfacing a message.
		_ = m.state.App.Session.Clear(context.Background())
		login := m.resetToLogin()
		return m, login.Init()

	case wizardCompleteMsg:
		// Atomically pop the wizard view and execute the follow-up command.
		m.banner = ""
		m.popActiveView()
		return m, tea.Batch(msg.nextCmd, refreshViews())
	}

	// Forward other messages to active view
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// If active view captures input (forms), forward directly so it
	// receives all characters including 'q' and Esc.
	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch {
	case msg.String() == "q":
		m.quitting = true
		return m, tea.Quit

	case msg.Type == tea.KeyEsc:
		m.banner = ""
		if len(m.viewStack) > 1 {
			m.popActiveView()
			return m, nil
		}
		return m, nil
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string

	sections = append(sections, m.renderHeader())

	if m.banner != "" {
		sections = append(sections, formatter.StyleRed.Render("✗ "+m.banner))
	}

	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}

	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("kitchenctl")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	breadcrumb := ""
	if len(crumbs) > 0 {
		breadcrumb = " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	header := title + breadcrumb

	if m.state.User != nil {
		who := m.state.User.FullName
		if m.state.User.BranchID != nil {
			if name := m.state.BranchName(*m.state.User.BranchID); name != "" {
				who += " @ " + name
			}
		}
		header += "  " + formatter.Dim("[") + formatter.StyleGreen.Render(who) + formatter.Dim("]")
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string

	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	if len(m.viewStack) > 1 {
		hints = append(hints, formatter.Dim("esc: back"))
	}

	bar := strings.Join(hints, "  ")
	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + bar
}

// viewCapturesInput returns true if the active view has its own text input
// and should receive all key events (bypassing global keybindings like q/Esc).
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	switch v.ID() {
	case ViewLogin, ViewCheckForm, ViewEvaluationWizard, ViewForm:
		return true
	}
	return false
}

// loadErrCmd maps a load error to either a session reset or a banner.
func loadErrCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return loadErrMsg(err)
	}
}

// loadErrMsg converts an error into the message the app model handles.
// Cancelled contexts produce no visible effect.
func loadErrMsg(err error) tea.Msg {
	switch {
	case err == nil:
		return nil
	case isCanceled(err):
		return nil
	case isNotAuthorized(err):
		return sessionExpiredMsg{}
	default:
		return bannerMsg{text: err.Error()}
	}
}

// isCanceled reports whether the error came from a context cancelled by
// view navigation. Such errors are dropped silently.
func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// isNotAuthorized reports whether the backend rejected the caller.
func isNotAuthorized(err error) bool {
	return errors.Is(err, api.ErrNotAuthorized)
}
