package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nissyi-gh/taskdeck/internal/model"
	"github.com/nissyi-gh/taskdeck/internal/query"
	"github.com/nissyi-gh/taskdeck/internal/report"
	"github.com/nissyi-gh/taskdeck/internal/stats"
	"github.com/nissyi-gh/taskdeck/internal/store"
)

type appState int

const (
	stateList appState = iota
	stateForm
	stateConfirm
	stateSearch
)

var (
	appStyle     = lipgloss.NewStyle().Padding(1, 2)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	confirmStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)
	statsStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241"))

	progressColors = map[stats.Progress]lipgloss.Color{
		stats.ProgressExcellent: lipgloss.Color("34"),
		stats.ProgressGood:      lipgloss.Color("220"),
		stats.ProgressFair:      lipgloss.Color("208"),
		stats.ProgressPoor:      lipgloss.Color("160"),
	}
)

const progressWidth = 30

type extraKeyMap struct {
	Add      key.Binding
	Edit     key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	Search   key.Binding
	Category key.Binding
	Priority key.Binding
	Reset    key.Binding
	Copy     key.Binding
}

func newExtraKeyMap() extraKeyMap {
	return extraKeyMap{
		Add: key.NewBinding(
			key.WithKeys("a", "n"),
			key.WithHelp("a/n", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", "x"),
			key.WithHelp("enter/x", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Category: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "category"),
		),
		Priority: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "priority"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset filters"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy report"),
		),
	}
}

func (k extraKeyMap) bindings() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Toggle, k.Delete, k.Search, k.Category, k.Priority, k.Reset, k.Copy}
}

// Model is the top-level BubbleTea model for the taskdeck TUI.
type Model struct {
	state  appState
	list   list.Model
	search textinput.Model
	form   taskForm
	store  *store.TaskStore
	keys   extraKeyMap
	filter query.Filter
	tasks  []model.Task
	now    func() time.Time
	copy   func(string) error
	notice string
	err    error
	width  int
	height int
}

type tasksLoadedMsg []model.Task

// Option configures a Model.
type Option func(*Model)

// WithClock replaces time.Now for overdue marks and statistics.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) { m.copy = write }
}

// NewModel creates a new TUI model over s.
func NewModel(s *store.TaskStore, opts ...Option) Model {
	keys := newExtraKeyMap()

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)
	l := list.New(nil, delegate, 0, 0)
	l.Title = "taskdeck"
	l.Styles.Title = titleStyle
	l.SetShowHelp(true)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("task", "tasks")
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return keys.bindings()[:5]
	}
	l.AdditionalFullHelpKeys = keys.bindings

	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.Prompt = "/ "
	search.CharLimit = 128

	m := Model{
		state:  stateList,
		list:   l,
		search: search,
		store:  s,
		keys:   keys,
		filter: query.NewFilter(),
		now:    time.Now,
		copy:   clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.form = newTaskForm(m.now)
	return m
}

func (m Model) Init() tea.Cmd {
	return m.loadTasks
}

func (m Model) loadTasks() tea.Msg {
	return tasksLoadedMsg(m.store.Tasks())
}

// applyFilter rebuilds the visible list from the current tasks and filter.
func (m *Model) applyFilter() {
	now := m.now()
	visible := query.Apply(m.tasks, m.filter)
	items := make([]list.Item, len(visible))
	for i, t := range visible {
		items[i] = TaskItem{Task: t, Now: now}
	}
	m.list.SetItems(items)
	if m.width > 0 {
		m.resize()
	}
}

func (m Model) selected() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tasksLoadedMsg:
		m.tasks = []model.Task(msg)
		// A category that no longer exists would hide everything.
		if !contains(query.Categories(m.tasks), m.filter.Category) {
			m.filter.Category = query.All
		}
		m.applyFilter()
		return m, nil
	}

	switch m.state {
	case stateList:
		return m.updateList(msg)
	case stateForm:
		return m.updateForm(msg)
	case stateConfirm:
		return m.updateConfirm(msg)
	case stateSearch:
		return m.updateSearch(msg)
	}

	return m, nil
}

func (m *Model) resize() {
	h, v := appStyle.GetFrameSize()
	header := lipgloss.Height(m.headerView())
	m.list.SetSize(m.width-h, m.height-v-header)
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		m.notice = ""
		switch keyMsg.String() {
		case "a", "n":
			m.state = stateForm
			m.form = newTaskForm(m.now)
			m.err = nil
			cmd := m.form.Focus()
			return m, cmd
		case "e":
			if t, ok := m.selected(); ok {
				m.state = stateForm
				m.form = editTaskForm(t, m.now)
				m.err = nil
				cmd := m.form.Focus()
				return m, cmd
			}
		case "enter", "x":
			if t, ok := m.selected(); ok {
				if _, err := m.store.ToggleCompleted(t.ID); err != nil {
					m.err = err
				}
				return m, m.loadTasks
			}
		case "d":
			if _, ok := m.selected(); ok {
				m.state = stateConfirm
				return m, nil
			}
		case "/":
			m.state = stateSearch
			m.search.SetValue(m.filter.Search)
			m.search.CursorEnd()
			cmd := m.search.Focus()
			return m, cmd
		case "c":
			m.filter.Category = query.Next(query.Categories(m.tasks), m.filter.Category)
			m.applyFilter()
			return m, nil
		case "p":
			m.filter.Priority = query.Next(query.Priorities(), m.filter.Priority)
			m.applyFilter()
			return m, nil
		case "r":
			m.filter = query.NewFilter()
			m.applyFilter()
			return m, nil
		case "y":
			if err := m.copy(report.Summary(m.tasks, m.now())); err != nil {
				m.err = fmt.Errorf("copy report: %w", err)
			} else {
				m.notice = "report copied to clipboard"
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			d, err := m.form.Draft()
			if err != nil {
				m.err = err
				return m, nil
			}
			if strings.TrimSpace(d.Title) == "" {
				m.err = fmt.Errorf("title is required")
				return m, nil
			}
			if m.form.editing != nil {
				t := *m.form.editing
				t.Title, t.Category, t.Priority, t.DueDate = d.Title, d.Category, d.Priority, d.DueDate
				if _, err := m.store.Update(t); err != nil {
					m.err = err
				}
			} else if _, _, err := m.store.Create(d); err != nil {
				m.err = err
			} else {
				m.err = nil
			}
			m.state = stateList
			return m, m.loadTasks
		case "esc":
			m.state = stateList
			m.err = nil
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.state = stateList
			m.search.Blur()
			return m, nil
		case "esc":
			m.state = stateList
			m.search.Blur()
			m.filter.Search = ""
			m.applyFilter()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.filter.Search = m.search.Value()
	m.applyFilter()
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y":
			if t, ok := m.selected(); ok {
				if _, err := m.store.Delete(t.ID); err != nil {
					m.err = err
				}
			}
			m.state = stateList
			return m, m.loadTasks
		case "n", "esc":
			m.state = stateList
			return m, nil
		}
	}
	return m, nil
}

func (m Model) headerView() string {
	st := stats.Compute(m.tasks, m.now())

	counts := fmt.Sprintf("Total %d  Completed %d  Pending %d  High priority %d",
		st.Total, st.Completed, st.Pending, st.HighPriorityPending)

	filled := st.CompletionRate * progressWidth / 100
	bar := lipgloss.NewStyle().Foreground(progressColors[st.Progress()]).Render(strings.Repeat("█", filled)) +
		statusStyle.Render(strings.Repeat("░", progressWidth-filled))
	progress := fmt.Sprintf("%s %d%%", bar, st.CompletionRate)

	lines := []string{counts, progress}
	for _, a := range st.Alerts() {
		style := warnStyle
		if a.Kind == stats.AlertOverdue {
			style = errorStyle
		}
		lines = append(lines, style.Render("! "+a.Text))
	}

	search := m.filter.Search
	if m.state == stateSearch {
		search = m.search.View()
	} else if search == "" {
		search = "-"
	}
	filters := statusStyle.Render(fmt.Sprintf("search: %s  category: %s  priority: %s",
		search, m.filter.Category, m.filter.Priority))

	return statsStyle.Render(strings.Join(lines, "\n")) + "\n" + filters + "\n"
}

func (m Model) View() string {
	var footer string
	if m.err != nil {
		footer = "\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n"
	} else if m.notice != "" {
		footer = "\n" + statusStyle.Render(m.notice) + "\n"
	}

	switch m.state {
	case stateForm:
		header := "New Task"
		if m.form.editing != nil {
			header = "Edit Task"
		}
		return appStyle.Render(
			titleStyle.Render(header) + "\n\n" +
				m.form.View() + "\n\n" +
				statusStyle.Render("tab: next field • ctrl+n: next suggestion • enter: save • esc: cancel") +
				footer,
		)
	case stateConfirm:
		t, _ := m.selected()
		return appStyle.Render(
			confirmStyle.Render("Delete Task?") + "\n\n" +
				"  " + t.Title + "\n\n" +
				statusStyle.Render("y: delete • n/esc: cancel") +
				footer,
		)
	default:
		body := m.list.View()
		if len(m.tasks) == 0 {
			body = statusStyle.Render("No tasks yet! Press a to add your first task.")
		} else if len(m.list.Items()) == 0 {
			body = statusStyle.Render("No tasks found. Try adjusting your search or filters (r resets).")
		}
		return appStyle.Render(m.headerView() + body + footer)
	}
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
