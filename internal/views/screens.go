package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TabData struct {
	Label    string
	Icon     string
	Color    string
	Badge    int
	Selected bool
}

type TaskRowData struct {
	Text        string
	Completed   bool
	SubCategory string
	DueDate     string
	Progress    *float64
}

type TaskPanelData struct {
	Title       string
	ListView    string
	Items       []TaskRowData
	Cursor      int
	InputView   string
	EmptyPrompt string
}

type TrackerData struct {
	Completed    int
	Total        int
	Points       int
	Percent      float64
	ProgressView string
	Message      string
	Emojis       []string
}

type SubtaskPanelData struct {
	ParentText string
	DueDate    string
	Progress   float64
	TableView  string
	Focused    bool
}

type HelpPanelData struct {
	Pane     string
	Bindings []string
	HelpView string
}

var (
	tabStyle      = lipgloss.NewStyle().Padding(0, 1)
	tabMutedStyle = tabStyle.Foreground(lipgloss.Color("8"))
	messageStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("33")).Padding(0, 1)
	chipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// RenderTabs draws one row of tabs. The selected tab is underlined in its color.
func RenderTabs(tabs []TabData) string {
	cells := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		label := strings.TrimSpace(tab.Icon + " " + tab.Label)
		if tab.Badge > 0 {
			label = fmt.Sprintf("%s (%d)", label, tab.Badge)
		}
		if !tab.Selected {
			cells = append(cells, tabMutedStyle.Render(label))
			continue
		}
		style := tabStyle.Bold(true).Underline(true)
		if tab.Color != "" {
			style = style.Foreground(lipgloss.Color(tab.Color))
		}
		cells = append(cells, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func RenderTaskPanel(data TaskPanelData) string {
	var b strings.Builder
	b.WriteString(data.Title + "\n")
	if data.InputView != "" {
		b.WriteString(data.InputView + "\n")
	}
	if len(data.Items) == 0 {
		b.WriteString("\n" + data.EmptyPrompt)
		return strings.TrimSpace(b.String())
	}
	if data.ListView != "" {
		b.WriteString(data.ListView)
		return strings.TrimSuffix(b.String(), "\n")
	}
	for i, item := range data.Items {
		b.WriteString(RenderTaskRow(item, i == data.Cursor) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderTaskRow(item TaskRowData, selected bool) string {
	cursor := " "
	if selected {
		cursor = ">"
	}
	box := "[ ]"
	if item.Completed {
		box = "[x]"
	}
	row := fmt.Sprintf("%s %s %s", cursor, box, item.Text)
	if item.SubCategory != "" {
		row += chipStyle.Render(" #" + item.SubCategory)
	}
	if item.DueDate != "" {
		row += chipStyle.Render(" due:" + item.DueDate)
	}
	if item.Progress != nil {
		row += chipStyle.Render(fmt.Sprintf(" %.0f%%", *item.Progress))
	}
	return row
}

func RenderTracker(data TrackerData) string {
	var b strings.Builder
	b.WriteString("Today's Progress\n")
	bar := data.ProgressView
	if bar == "" {
		bar = fmt.Sprintf("%.0f%%", data.Percent)
	}
	b.WriteString(bar + "\n")
	b.WriteString(fmt.Sprintf("%d of %d tasks completed | %d points", data.Completed, data.Total, data.Points))
	if data.Message != "" {
		b.WriteString("\n" + messageStyle.Render(data.Message))
	}
	if len(data.Emojis) > 0 {
		b.WriteString("\n" + strings.Join(data.Emojis, " "))
	}
	return b.String()
}

func RenderSubtaskPanel(data SubtaskPanelData) string {
	if data.ParentText == "" {
		return ""
	}
	var b strings.Builder
	title := "subtasks: " + data.ParentText
	if data.Focused {
		title += " [active]"
	}
	b.WriteString(title + "\n")
	b.WriteString(fmt.Sprintf("progress: %.0f%%", data.Progress))
	if data.DueDate != "" {
		b.WriteString(" | due: " + data.DueDate)
	}
	b.WriteString("\n" + data.TableView)
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s pane:\n%s\n%s",
		strings.ToLower(data.Pane),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
