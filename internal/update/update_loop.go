package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tabtodo/internal/model"
	"github.com/sandeepkv93/tabtodo/internal/scheduler"
	"github.com/sandeepkv93/tabtodo/internal/todo"
)

func (m Model) Init() tea.Cmd {
	if m.Scheduler != nil {
		return waitForDueCmd(m.Scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Input != InputNone {
			return m.handleInputKey(typed)
		}
		return m.handleKey(typed)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.logger.Error("app error", "err", typed.Err)
		}
		return m, nil
	case dismissMotivationMsg:
		m.dismissMotivation(typed.seq)
		return m, nil
	case DueMsg:
		m.onDue(typed.Event)
		if m.Scheduler != nil {
			return m, waitForDueCmd(m.Scheduler.C())
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	keyStr := msg.String()
	switch keyStr {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Palette:
		return m.openPalette(), nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
		return m, nil
	case m.Keys.Home:
		m.selectCategory(model.CategoryHome)
		return m, nil
	case m.Keys.Learning:
		m.selectCategory(model.CategoryLearning)
		return m, nil
	case m.Keys.Prayers:
		m.selectCategory(model.CategoryPrayers)
		return m, nil
	case "tab":
		m.cycleCategory(1)
		return m, nil
	case "shift+tab":
		m.cycleCategory(-1)
		return m, nil
	case "]":
		m.cycleSubCategory(1)
		return m, nil
	case "[":
		m.cycleSubCategory(-1)
		return m, nil
	case "D":
		m.cycleDensity()
		return m, nil
	}

	if m.Pane == PaneSubtasks {
		return m.handleSubtaskKey(msg)
	}
	return m.handleTaskKey(msg)
}

func (m Model) handleTaskKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.Cursor < len(m.VisibleTasks())-1 {
			m.Cursor++
		}
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case " ", "x":
		return m, m.toggleSelected()
	case "d", "delete":
		return m, m.deleteSelected()
	case "a", "i":
		m.startInput(InputTask)
	case "s":
		if sel, ok := m.selectedTask(); ok && sel.IsMonthly() {
			m.startInput(InputSubtask)
		} else {
			m.Status = StatusBar{Text: "subtasks belong to monthly tasks", IsError: true}
		}
	case "enter":
		if sel, ok := m.selectedTask(); ok && sel.IsMonthly() {
			m.Pane = PaneSubtasks
			m.SubCursor = 0
		}
	}
	return m, nil
}

func (m Model) handleSubtaskKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	sel, ok := m.selectedTask()
	if !ok || !sel.IsMonthly() {
		m.Pane = PaneTasks
		return m, nil
	}
	switch msg.String() {
	case "esc", "h", "left":
		m.Pane = PaneTasks
	case "j", "down":
		if m.SubCursor < len(sel.DailyTasks)-1 {
			m.SubCursor++
		}
	case "k", "up":
		if m.SubCursor > 0 {
			m.SubCursor--
		}
	case " ", "x", "enter":
		return m, m.toggleSelectedSubtask()
	case "s", "a":
		m.startInput(InputSubtask)
	}
	return m, nil
}

func (m *Model) startInput(mode InputMode) {
	m.Input = mode
	m.taskInput.SetValue("")
	if mode == InputSubtask {
		m.taskInput.Prompt = "subtask> "
	} else {
		m.taskInput.Prompt = "add> "
	}
	m.taskInput.Focus()
}

func (m *Model) stopInput() {
	m.Input = InputNone
	m.taskInput.SetValue("")
	m.taskInput.Blur()
}

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stopInput()
		return m, nil
	case "enter":
		text := m.taskInput.Value()
		mode := m.Input
		m.stopInput()
		if mode == InputSubtask {
			prevErr := m.LastError
			cmd, err := m.addSubtaskToSelected(text)
			if err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			} else if m.LastError == prevErr {
				m.Status = StatusBar{Text: fmt.Sprintf("added subtask: %s", strings.TrimSpace(text))}
			}
			return m, cmd
		}
		_, cmd := m.addTask(text)
		return m, cmd
	}
	switch msg.Type {
	case tea.KeyRunes:
		m.taskInput.SetValue(m.taskInput.Value() + string(msg.Runes))
		return m, nil
	case tea.KeySpace:
		m.taskInput.SetValue(m.taskInput.Value() + " ")
		return m, nil
	}
	m.taskInput, _ = m.taskInput.Update(msg)
	return m, nil
}

func (m *Model) onDue(ev scheduler.DueEvent) {
	m.DueLog = append(m.DueLog, ev)
	if len(m.DueLog) > 20 {
		m.DueLog = m.DueLog[len(m.DueLog)-20:]
	}
	t, ok := todo.Find(m.Tasks, ev.TaskID)
	if !ok || t.Completed {
		m.logger.Debug("stale due notice", "task", ev.TaskID)
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("due today: %s", t.Text)}
	m.logger.Info("task due", "task", t.ID, "due", ev.DueAt.Format(time.DateOnly))
}

func waitForDueCmd(ch <-chan scheduler.DueEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return DueMsg{Event: ev}
	}
}

func dismissMotivationCmd(seq int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return dismissMotivationMsg{seq: seq}
	})
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	return m.render()
}
