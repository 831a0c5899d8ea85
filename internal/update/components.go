package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/tabtodo/internal/model"
	"github.com/sandeepkv93/tabtodo/internal/views"
)

func (m *Model) initBubbleComponents() {
	m.taskList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.taskList.SetShowTitle(false)
	m.taskList.SetShowHelp(false)
	m.taskList.SetShowStatusBar(false)
	m.taskList.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "Done", Width: 6},
		{Title: "Subtask", Width: 40},
	}
	m.subtaskTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithHeight(8))

	m.taskInput = textinput.New()
	m.taskInput.Prompt = "add> "
	m.taskInput.CharLimit = 256
	m.taskInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.tracker = progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
	m.helpModel = help.New()
	m.descViewport = viewport.New(54, 6)
}

func densityDimensions(level int) (listWidth int, listHeight int, tableHeight int) {
	switch level {
	case 2:
		return 60, 16, 10
	case 3:
		return 64, 20, 12
	default:
		return 56, 12, 8
	}
}

func (m *Model) cycleDensity() {
	m.uiDensity++
	if m.uiDensity > 3 {
		m.uiDensity = 1
	}
	m.Status = StatusBar{Text: fmt.Sprintf("density level: %d", m.uiDensity)}
}

// syncBubbleData copies Model state into the bubbles components before render.
func (m *Model) syncBubbleData() {
	listWidth, listHeight, tableHeight := densityDimensions(m.uiDensity)
	m.taskList.SetSize(listWidth, listHeight)
	m.subtaskTable.SetHeight(tableHeight)

	visible := m.VisibleTasks()
	m.clampCursor(len(visible))
	items := make([]list.Item, 0, len(visible))
	for _, t := range visible {
		items = append(items, listItem{title: taskTitle(t), description: taskDetail(t)})
	}
	m.taskList.SetItems(items)
	if len(items) > 0 {
		m.taskList.Select(m.Cursor)
	}

	rows := make([]table.Row, 0)
	if sel, ok := m.selectedTask(); ok && sel.IsMonthly() {
		for _, sub := range sel.DailyTasks {
			done := " "
			if sel.IsSubtaskDone(sub) {
				done = "x"
			}
			rows = append(rows, table.Row{"[" + done + "]", sub})
		}
	}
	m.clampSubCursor(len(rows))
	m.subtaskTable.SetRows(rows)
	if len(rows) > 0 {
		m.subtaskTable.SetCursor(m.SubCursor)
	}
	if m.Pane == PaneSubtasks {
		m.subtaskTable.Focus()
	} else {
		m.subtaskTable.Blur()
	}

	m.taskInput.Placeholder = model.Placeholder(m.Category, m.SubCategory)
	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	}
	if m.Input != InputNone {
		m.taskInput.Focus()
	} else {
		m.taskInput.Blur()
	}

	m.descViewport.SetContent(views.RenderMarkdown(categoryMarkdown(m.Category, m.SubCategory)))
}

func (m *Model) clampCursor(n int) {
	if n == 0 || m.Cursor < 0 {
		m.Cursor = 0
		return
	}
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
}

func (m *Model) clampSubCursor(n int) {
	if n == 0 || m.SubCursor < 0 {
		m.SubCursor = 0
		return
	}
	if m.SubCursor >= n {
		m.SubCursor = n - 1
	}
}

func taskTitle(t model.Task) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	return box + " " + t.Text
}

func taskDetail(t model.Task) string {
	parts := make([]string, 0, 3)
	if t.SubCategory != "" {
		parts = append(parts, t.SubCategory)
	}
	if t.DueDate != nil {
		parts = append(parts, "due "+t.DueDate.Format("Jan 2"))
	}
	if t.Progress != nil {
		parts = append(parts, fmt.Sprintf("%.0f%%", *t.Progress))
	}
	if len(parts) == 0 {
		return t.CreatedAt.Format("Jan 2 15:04")
	}
	return strings.Join(parts, " | ")
}

func categoryMarkdown(c model.Category, sub string) string {
	cfg, ok := model.ConfigFor(c)
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("### %s %s\n\n%s\n", cfg.Icon, c, cfg.Description))
	for _, sc := range cfg.SubCategories {
		if sc.Key == sub {
			b.WriteString(fmt.Sprintf("\n**%s %s**: %s\n", sc.Icon, sc.Key, sc.Description))
		}
	}
	return b.String()
}
