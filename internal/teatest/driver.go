// Package teatest drives bubbletea models synchronously in tests.
//
// Instead of starting a tea.Program, the Driver feeds messages straight
// into Update and immediately executes every Cmd the model returns,
// recursing until nothing is left. View() then shows the settled state,
// so tests stay deterministic and need no goroutines or sleeps.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDrainDepth bounds the Cmd recursion so a model that keeps emitting
// messages fails the drain loudly instead of spinning forever.
const maxDrainDepth = 100

// cmdTimeout separates real Cmds from blocking ones. API calls against
// httptest servers and message factories return in microseconds; the
// textinput cursor blink waits ~530ms on a timer, so anything slower
// than this is dropped.
const cmdTimeout = 10 * time.Millisecond

// Driver runs a tea.Model without the bubbletea runtime.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting flips when a tea.QuitMsg comes out of a Cmd. The real
	// runtime swallows that message before the model sees it, so the
	// driver has to catch it itself.
	Quitting bool
}

// Option adjusts a Driver at construction time.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else runs, the same
// way a terminal reports its size on startup.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.T.Helper()
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs the model's Init command chain. Call it once after New.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send pushes one message through Update and drains the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd, 0)
}

// SendKey delivers a raw key event.
func (d *Driver) SendKey(msg tea.KeyMsg) {
	d.T.Helper()
	d.Send(msg)
}

// PressKey sends a single character key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressEnter() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyEnter})
}

func (d *Driver) PressEsc() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyEsc})
}

func (d *Driver) PressCtrlC() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyCtrlC})
}

func (d *Driver) PressUp() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyUp})
}

func (d *Driver) PressDown() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyDown})
}

// Type sends a string one key event per rune, the way a user would type
// into a text input.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

// View renders the model's current output.
func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDrainDepth {
		d.T.Fatalf("teatest: command chain exceeded %d messages", maxDrainDepth)
	}

	msg := runCmd(cmd)
	if msg == nil || isBlinkMsg(msg) {
		return
	}

	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range m {
			if sub != nil {
				d.drain(sub, depth+1)
			}
		}
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(msg)
	default:
		var next tea.Cmd
		d.Model, next = d.Model.Update(msg)
		d.drain(next, depth+1)
	}
}

// runCmd executes a Cmd off the test goroutine and gives up after
// cmdTimeout so blocking Cmds cannot hang the drain.
func runCmd(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isBlinkMsg matches the unexported blink messages from bubbles/cursor,
// which would otherwise chain back into blocking timer Cmds.
func isBlinkMsg(msg tea.Msg) bool {
	name := fmt.Sprintf("%T", msg)
	return strings.Contains(name, "Blink") || strings.Contains(name, "blink")
}
