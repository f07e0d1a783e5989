package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// replaceViewMsg replaces the current top view with a new one.
type replaceViewMsg struct {
	view View
}

// refreshViewMsg asks every view on the stack to reload its data.
// Sent after mutations so list views under a form pick up the change.
type refreshViewMsg struct{}

// bannerMsg shows a transient error banner above the active view.
// The view that triggered it keeps its state.
type bannerMsg struct {
	text string
}

// sessionExpiredMsg is sent when any call returns not-authorized.
// The appModel clears the stored session and resets the stack to the
// login view without showing a message.
type sessionExpiredMsg struct{}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel handles it atomically: pop the wizard view, then run nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// replaceView returns a tea.Cmd that replaces the top view.
func replaceView(v View) tea.Cmd {
	return func() tea.Msg { return replaceViewMsg{view: v} }
}

// showBanner returns a tea.Cmd that displays a transient error banner.
func showBanner(text string) tea.Cmd {
	return func() tea.Msg { return bannerMsg{text: text} }
}

// refreshViews returns a tea.Cmd that broadcasts a refresh to the stack.
func refreshViews() tea.Cmd {
	return func() tea.Msg { return refreshViewMsg{} }
}
