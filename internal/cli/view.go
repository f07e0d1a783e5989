package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewLogin ViewID = iota
	ViewDashboard
	ViewCheckForm
	ViewTaskList
	ViewReports
	ViewAuditDetail
	ViewEvaluationList
	ViewEvaluationWizard
	ViewForm
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
//
// Close cancels the view's request context. The app model calls it
// whenever a view leaves the stack, so responses that arrive after
// navigation are dropped instead of mutating a dead view.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
	Close()
}
