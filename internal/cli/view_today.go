package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/sprout/internal/cli/formatter"
	"github.com/alexanderramin/sprout/internal/contract"
	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type todayKeys struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Reload key.Binding
	Quit   key.Binding
}

func (k todayKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Reload, k.Quit}
}

func (k todayKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultTodayKeys = todayKeys{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle: key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space/x", "toggle done")),
	Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

type dashboardLoadedMsg struct {
	dash *contract.DashboardResponse
	err  error
}

type taskToggledMsg struct {
	task *domain.Task
	err  error
}

// todayModel is a checklist of today's tasks with the quote and focus area.
type todayModel struct {
	dashboard service.DashboardService
	tasks     service.TaskService
	userID    string
	now       func() time.Time

	dash    *contract.DashboardResponse
	cursor  int
	loading bool
	err     error
	keys    todayKeys
	help    help.Model
}

func newTodayModel(dashboard service.DashboardService, tasks service.TaskService, userID string) *todayModel {
	return &todayModel{
		dashboard: dashboard,
		tasks:     tasks,
		userID:    userID,
		now:       time.Now,
		loading:   true,
		keys:      defaultTodayKeys,
		help:      help.New(),
	}
}

func (m *todayModel) Init() tea.Cmd {
	return m.load()
}

func (m *todayModel) load() tea.Cmd {
	return func() tea.Msg {
		dash, err := m.dashboard.Get(context.Background(), m.userID, m.now())
		return dashboardLoadedMsg{dash: dash, err: err}
	}
}

func (m *todayModel) toggle(t *domain.Task) tea.Cmd {
	id, completed := t.ID, !t.Completed
	return func() tea.Msg {
		updated, err := m.tasks.SetCompleted(context.Background(), m.userID, id, completed)
		return taskToggledMsg{task: updated, err: err}
	}
}

func (m *todayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.dash = msg.dash
			m.cursor = min(m.cursor, max(len(m.dash.Tasks)-1, 0))
		}
		return m, nil

	case taskToggledMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		for i, t := range m.dash.Tasks {
			if t.ID == msg.task.ID {
				m.dash.Tasks[i] = msg.task
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reload):
			m.loading = true
			return m, m.load()
		}
		if m.dash == nil || len(m.dash.Tasks) == 0 {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.dash.Tasks)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			return m, m.toggle(m.dash.Tasks[m.cursor])
		}
	}
	return m, nil
}

func (m *todayModel) View() string {
	if m.loading && m.dash == nil {
		return "Loading...\n"
	}
	var b strings.Builder
	if m.dash == nil {
		fmt.Fprintf(&b, "%s\n", formatter.StyleRed.Render(m.err.Error()))
		return b.String()
	}

	b.WriteString(formatter.Header("Today · "+m.dash.Date) + "\n\n")
	if c := m.dash.DashboardContent; c != nil {
		b.WriteString(formatter.StyleBold.Render("“"+c.DailyQuote+"”") + "\n")
		b.WriteString(formatter.Dim("Focus: ") + formatter.StyleBlue.Render(c.FocusArea) + "\n\n")
	}

	if len(m.dash.Tasks) == 0 {
		b.WriteString(formatter.Dim("No tasks for today. Run `sprout generate` tonight.") + "\n")
	}
	done := 0
	for i, t := range m.dash.Tasks {
		if t.Completed {
			done++
		}
		cursor := "  "
		title := t.Title
		if i == m.cursor {
			cursor = formatter.StyleHeader.Render("> ")
			title = formatter.StyleBold.Render(title)
		}
		fmt.Fprintf(&b, "%s%s %s  %s\n", cursor, formatter.Checkbox(t.Completed), title,
			formatter.Dim(t.TimeEstimate+" · "+string(t.Category)))
	}
	if len(m.dash.Tasks) > 0 {
		pct := done * 100 / len(m.dash.Tasks)
		fmt.Fprintf(&b, "\n%s\n", formatter.RenderProgress(pct, 20))
	}
	if m.err != nil {
		fmt.Fprintf(&b, "\n%s\n", formatter.StyleRed.Render(m.err.Error()))
	}
	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}
