// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and every returned Cmd is executed and its
// message fed back in, so a test sees the settled model after each input.
package teatest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDepth stops runaway Cmd chains.
const maxDepth = 50

// Driver owns a model under test.
type Driver struct {
	t        *testing.T
	model    tea.Model
	quitting bool
}

// New wraps model and runs its Init Cmd to completion.
func New(t *testing.T, model tea.Model) *Driver {
	t.Helper()
	d := &Driver{t: t, model: model}
	d.drain(model.Init(), 0)
	return d
}

// Model returns the current model.
func (d *Driver) Model() tea.Model { return d.model }

// Quitting reports whether the model issued tea.Quit.
func (d *Driver) Quitting() bool { return d.quitting }

func (d *Driver) View() string { return d.model.View() }

// Send feeds msg through Update and settles the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.t.Helper()
	if d.quitting {
		return
	}
	updated, cmd := d.model.Update(msg)
	d.model = updated
	d.drain(cmd, 0)
}

// Press sends a key by name: "up", "down", "enter", "esc", "space",
// "ctrl+c", or a single printable character.
func (d *Driver) Press(name string) {
	d.t.Helper()
	d.Send(keyMsg(name))
}

func keyMsg(name string) tea.KeyMsg {
	switch name {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
	}
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.t.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.t.Fatalf("teatest: command chain deeper than %d", maxDepth)
	}

	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
	case tea.QuitMsg:
		d.quitting = true
	default:
		updated, next := d.model.Update(msg)
		d.model = updated
		d.drain(next, depth+1)
	}
}
