package update

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tabtodo/internal/model"
	"github.com/sandeepkv93/tabtodo/internal/scheduler"
	"github.com/sandeepkv93/tabtodo/internal/todo"
)

var errSaveBlocked = errors.New("load failed, restart to retry")

// dispatch runs a through the reducer and persists the result. It reports
// whether the collection changed.
func (m *Model) dispatch(a todo.Action) (bool, tea.Cmd) {
	next := m.reducer.Reduce(m.Tasks, a)
	if reflect.DeepEqual(next, m.Tasks) {
		m.logger.Debug("no-op action", "action", actionName(a))
		return false, nil
	}
	m.Tasks = next
	m.logger.Debug("applied action", "action", actionName(a), "tasks", len(m.Tasks))
	m.persist()
	m.syncDue()
	return true, m.refreshProgress()
}

// persist writes the collection. After a failed load the slot may still hold
// tasks this Model never saw, so writes stay blocked to avoid overwriting them.
func (m *Model) persist() {
	if m.store == nil {
		return
	}
	if m.loadErr != nil {
		m.LastError = fmt.Errorf("%w: %v", errSaveBlocked, m.loadErr)
		m.Status = StatusBar{Text: fmt.Sprintf("not saved: %v", m.LastError), IsError: true}
		m.logger.Warn("save skipped", "err", m.loadErr)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := m.store.Save(ctx, m.Tasks); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: fmt.Sprintf("save failed: %v", err), IsError: true}
		m.logger.Error("save tasks", "err", err)
	}
}

// syncDue keeps one pending notice per open monthly task. Completed and
// deleted tasks lose theirs.
func (m *Model) syncDue() {
	if m.Scheduler == nil || !m.cfg.DueNotices {
		return
	}
	n, err := m.Scheduler.Sync(scheduler.DueEvents(m.Tasks, m.reducer.Now()))
	if err != nil {
		m.logger.Warn("sync due notices", "err", err)
		return
	}
	m.logger.Debug("synced due notices", "added", n, "pending", m.Scheduler.Pending())
}

func actionName(a todo.Action) string {
	switch a.(type) {
	case todo.Add:
		return "add"
	case todo.Toggle:
		return "toggle"
	case todo.Delete:
		return "delete"
	case todo.AddSubtask:
		return "add_subtask"
	case todo.ToggleSubtask:
		return "toggle_subtask"
	default:
		return fmt.Sprintf("%T", a)
	}
}

func (m *Model) addTask(text string) (bool, tea.Cmd) {
	prevErr := m.LastError
	changed, cmd := m.dispatch(todo.Add{Text: text, Category: m.Category, SubCategory: m.SubCategory})
	if changed {
		// The new task is last in insertion order, so select it.
		m.Cursor = len(m.VisibleTasks()) - 1
		if m.LastError == prevErr {
			m.Status = StatusBar{Text: fmt.Sprintf("added: %s", strings.TrimSpace(text))}
		}
	}
	return changed, cmd
}

func (m *Model) toggleSelected() tea.Cmd {
	sel, ok := m.selectedTask()
	if !ok {
		return nil
	}
	_, cmd := m.dispatch(todo.Toggle{ID: sel.ID})
	return cmd
}

func (m *Model) deleteSelected() tea.Cmd {
	sel, ok := m.selectedTask()
	if !ok {
		return nil
	}
	prevErr := m.LastError
	changed, cmd := m.dispatch(todo.Delete{ID: sel.ID})
	if changed && m.LastError == prevErr {
		m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", sel.Text)}
	}
	return cmd
}

func (m *Model) addSubtaskToSelected(text string) (tea.Cmd, error) {
	sel, ok := m.selectedTask()
	if !ok || !sel.IsMonthly() {
		return nil, fmt.Errorf("select a monthly task first")
	}
	changed, cmd := m.dispatch(todo.AddSubtask{ParentID: sel.ID, Text: text})
	if !changed {
		return nil, fmt.Errorf("subtask %q not added", strings.TrimSpace(text))
	}
	return cmd, nil
}

func (m *Model) toggleSelectedSubtask() tea.Cmd {
	sel, ok := m.selectedTask()
	if !ok || !sel.IsMonthly() {
		return nil
	}
	_, cmd := m.dispatch(todo.ToggleSubtask{ParentID: sel.ID, Index: m.SubCursor})
	return cmd
}

func (m *Model) selectCategory(c model.Category) {
	if !c.IsValid() || c == m.Category {
		return
	}
	m.Category = c
	m.SubCategory = model.DefaultSubCategory(c)
	m.Cursor = 0
	m.SubCursor = 0
	m.Pane = PaneTasks
	m.Progress = todo.Summarize(m.VisibleTasks(), m.cfg.PointsPerTask)
}

func (m *Model) cycleCategory(step int) {
	idx := 0
	for i, c := range model.Categories {
		if c == m.Category {
			idx = i
		}
	}
	n := len(model.Categories)
	m.selectCategory(model.Categories[((idx+step)%n+n)%n])
}

// selectSubCategory sets the sub-type tab. An empty value shows every task
// of the category.
func (m *Model) selectSubCategory(sub string) {
	m.SubCategory = sub
	m.Cursor = 0
	m.SubCursor = 0
	m.Pane = PaneTasks
	m.Progress = todo.Summarize(m.VisibleTasks(), m.cfg.PointsPerTask)
}

func (m *Model) cycleSubCategory(step int) {
	subs := model.SubCategoriesOf(m.Category)
	if len(subs) == 0 {
		return
	}
	idx := -1
	for i, sc := range subs {
		if sc.Key == m.SubCategory {
			idx = i
		}
	}
	n := len(subs)
	if idx < 0 {
		idx = 0
		if step < 0 {
			idx = n - 1
		}
		m.selectSubCategory(subs[idx].Key)
		return
	}
	m.selectSubCategory(subs[((idx+step)%n+n)%n].Key)
}
