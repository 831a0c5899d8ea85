package update

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/tabtodo/internal/model"
	"github.com/sandeepkv93/tabtodo/internal/todo"
	"github.com/sandeepkv93/tabtodo/internal/views"
)

const appTitle = "✨ My Awesome Todo List ✨"

func (m Model) render() string {
	cfg, _ := model.ConfigFor(m.Category)

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	right := []string{m.renderTracker()}
	if sub := m.renderSubtaskPanel(); sub != "" {
		right = append(right, sub)
	}
	if desc := m.descViewport.View(); strings.TrimSpace(desc) != "" {
		right = append(right, desc)
	}
	if palette := views.RenderCommandPalette(m.Palette.Active, m.commandInput.View()); palette != "" {
		right = append(right, palette)
	}
	if helpView := m.renderHelpIfVisible(); helpView != "" {
		right = append(right, helpView)
	}

	notification := ""
	if len(m.DueLog) > 0 {
		last := m.DueLog[len(m.DueLog)-1]
		notification = fmt.Sprintf("last-due: %s @ %s", last.Text, last.DueAt.Format("Jan 2"))
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("%s | %s %s | type: %s", appTitle, cfg.Icon, m.Category, subLabel(m.SubCategory)),
		CategoryTabs: m.renderCategoryTabs(),
		SubTabs:      m.renderSubTabs(),
		LeftPane:     m.renderTaskPanel(),
		RightPane:    strings.Join(right, "\n\n"),
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: notification,
		Accent:       cfg.Color,
		Footer: fmt.Sprintf("keys: %s/%s/%s tabs | [ ] type | a add | space done | d delete | %s cmd | %s help | %s quit",
			m.Keys.Home, m.Keys.Learning, m.Keys.Prayers, m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}

func subLabel(sub string) string {
	if sub == "" {
		return "all"
	}
	return sub
}

func (m Model) renderCategoryTabs() string {
	counts := todo.CountByCategory(m.Tasks)
	tabs := make([]views.TabData, 0, len(model.Categories))
	for _, c := range model.Categories {
		cfg, _ := model.ConfigFor(c)
		tabs = append(tabs, views.TabData{
			Label:    string(c),
			Icon:     cfg.Icon,
			Color:    cfg.Color,
			Badge:    counts[c],
			Selected: c == m.Category,
		})
	}
	return views.RenderTabs(tabs)
}

func (m Model) renderSubTabs() string {
	subs := model.SubCategoriesOf(m.Category)
	if len(subs) == 0 {
		return ""
	}
	cfg, _ := model.ConfigFor(m.Category)
	tabs := make([]views.TabData, 0, len(subs))
	for _, sc := range subs {
		tabs = append(tabs, views.TabData{
			Label:    sc.Key,
			Icon:     sc.Icon,
			Color:    cfg.Color,
			Selected: sc.Key == m.SubCategory,
		})
	}
	return views.RenderTabs(tabs)
}

func (m Model) renderTaskPanel() string {
	visible := m.VisibleTasks()
	rows := make([]views.TaskRowData, 0, len(visible))
	for _, t := range visible {
		row := views.TaskRowData{
			Text:        t.Text,
			Completed:   t.Completed,
			SubCategory: t.SubCategory,
			Progress:    t.Progress,
		}
		if t.DueDate != nil {
			row.DueDate = t.DueDate.Format("Jan 2")
		}
		rows = append(rows, row)
	}
	input := ""
	if m.Input != InputNone {
		input = m.taskInput.View()
	}
	title := fmt.Sprintf("%s tasks (%d)", m.Category, len(visible))
	return views.RenderTaskPanel(views.TaskPanelData{
		Title:       title,
		ListView:    m.taskList.View(),
		Items:       rows,
		Cursor:      m.Cursor,
		InputView:   input,
		EmptyPrompt: "No tasks yet. Press a to add one.",
	})
}

func (m Model) renderTracker() string {
	return views.RenderTracker(views.TrackerData{
		Completed:    m.Progress.CompletedTasks,
		Total:        m.Progress.TotalTasks,
		Points:       m.Progress.Points,
		Percent:      m.Progress.Percent,
		ProgressView: m.tracker.ViewAs(m.Progress.Percent / 100),
		Message:      m.Motivation.Text,
		Emojis:       m.Motivation.Emojis,
	})
}

func (m Model) renderSubtaskPanel() string {
	sel, ok := m.selectedTask()
	if !ok || !sel.IsMonthly() {
		return ""
	}
	data := views.SubtaskPanelData{
		ParentText: sel.Text,
		TableView:  m.subtaskTable.View(),
		Focused:    m.Pane == PaneSubtasks,
	}
	if sel.Progress != nil {
		data.Progress = *sel.Progress
	}
	if sel.DueDate != nil {
		data.DueDate = sel.DueDate.Format("Mon Jan 2")
	}
	if len(sel.DailyTasks) == 0 {
		data.TableView = "(no subtasks, press s to add)"
	}
	return views.RenderSubtaskPanel(data)
}
