package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tabtodo/internal/commands"
	"github.com/sandeepkv93/tabtodo/internal/model"
)

func (m Model) openPalette() Model {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active"}
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		m.commandInput, _ = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m, nil
	}

	var follow tea.Cmd
	prevErr := m.LastError
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			changed, c := m.addTask(a.Text)
			if !changed {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "task text is empty"}
			}
			follow = c
			return commands.Result{Message: fmt.Sprintf("added %s task: %s", m.Category, a.Text)}, nil
		},
		Subtask: func(s commands.SubtaskArgs) (commands.Result, error) {
			c, err := m.addSubtaskToSelected(s.Text)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			follow = c
			return commands.Result{Message: fmt.Sprintf("added subtask: %s", s.Text)}, nil
		},
		Category: func(c commands.CategoryArgs) (commands.Result, error) {
			cat, err := model.ParseCategory(c.Name)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown category %q", c.Name)}
			}
			m.selectCategory(cat)
			return commands.Result{Message: fmt.Sprintf("category: %s", cat)}, nil
		},
		SubType: func(s commands.SubTypeArgs) (commands.Result, error) {
			if s.All {
				m.selectSubCategory("")
				return commands.Result{Message: fmt.Sprintf("showing all %s tasks", m.Category)}, nil
			}
			sub, ok := model.ResolveSubCategory(m.Category, s.Name)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("%s has no type %q", m.Category, s.Name)}
			}
			m.selectSubCategory(sub)
			return commands.Result{Message: fmt.Sprintf("type: %s", sub)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.logger.Debug("palette command failed", "input", raw, "err", err)
	} else if m.LastError == prevErr {
		// A failed save keeps its error status.
		m.Status = StatusBar{Text: res.Message}
	}

	m.closePalette()
	return m, follow
}
