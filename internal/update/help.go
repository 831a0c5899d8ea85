package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/tabtodo/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.paneBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Pane:     string(m.Pane),
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Home, Action: "Home tab"},
		{Key: m.Keys.Learning, Action: "Learning tab"},
		{Key: m.Keys.Prayers, Action: "Prayers tab"},
		{Key: "tab", Action: "next category"},
		{Key: "[/]", Action: "previous/next type"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: "D", Action: "cycle density"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) paneBindings() []KeyBinding {
	switch m.Pane {
	case PaneSubtasks:
		return []KeyBinding{
			{Key: "j/k", Action: "move subtask cursor"},
			{Key: "space", Action: "toggle subtask"},
			{Key: "s", Action: "add subtask"},
			{Key: "esc", Action: "back to tasks"},
		}
	default:
		return []KeyBinding{
			{Key: "a", Action: "add task"},
			{Key: "j/k", Action: "move selection"},
			{Key: "space", Action: "toggle done"},
			{Key: "d", Action: "delete task"},
			{Key: "s", Action: "add subtask to monthly task"},
			{Key: "enter", Action: "open subtasks of monthly task"},
		}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.paneBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.paneBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
