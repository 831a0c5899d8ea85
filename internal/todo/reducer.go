// Package todo holds the pure state transitions of the task collection.
package todo

import (
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/tabtodo/internal/model"
)

type Action interface {
	isAction()
}

type Add struct {
	Text        string
	Category    model.Category
	SubCategory string
}

type Toggle struct {
	ID string
}

type Delete struct {
	ID string
}

type AddSubtask struct {
	ParentID string
	Text     string
}

type ToggleSubtask struct {
	ParentID string
	Index    int
}

func (Add) isAction()           {}
func (Toggle) isAction()        {}
func (Delete) isAction()        {}
func (AddSubtask) isAction()    {}
func (ToggleSubtask) isAction() {}

// Reducer computes the next collection from the current one. Unknown ids are
// silent no-ops. The input slice is never modified.
type Reducer struct {
	Now func() time.Time
}

func NewReducer() Reducer {
	return Reducer{Now: time.Now}
}

// now drops the monotonic clock reading, which JSON cannot carry.
func (r Reducer) now() time.Time {
	clock := r.Now
	if clock == nil {
		clock = time.Now
	}
	return clock().Round(0)
}

func (r Reducer) Reduce(tasks []model.Task, a Action) []model.Task {
	next := cloneAll(tasks)
	switch act := a.(type) {
	case Add:
		return r.add(next, act)
	case Toggle:
		return toggle(next, act.ID)
	case Delete:
		return remove(next, act.ID)
	case AddSubtask:
		return addSubtask(next, act.ParentID, act.Text)
	case ToggleSubtask:
		return toggleSubtask(next, act.ParentID, act.Index)
	default:
		return next
	}
}

// NewID derives an id from the clock. Two adds in the same millisecond collide.
func NewID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

func (r Reducer) add(tasks []model.Task, a Add) []model.Task {
	text := strings.TrimSpace(a.Text)
	if text == "" {
		return tasks
	}
	now := r.now()
	task := model.Task{
		ID:          NewID(now),
		Text:        text,
		Category:    a.Category,
		CreatedAt:   now,
		SubCategory: a.SubCategory,
	}
	if task.IsMonthly() {
		due := model.EndOfMonth(now)
		task.DueDate = &due
		task.DailyTasks = []string{}
		task.CompletedDailyTasks = []string{}
	}
	return append(tasks, task)
}

func toggle(tasks []model.Task, id string) []model.Task {
	i := indexOf(tasks, id)
	if i < 0 {
		return tasks
	}
	tasks[i].Completed = !tasks[i].Completed
	if tasks[i].IsMonthly() {
		tasks[i].RecomputeProgress()
	}
	return tasks
}

func remove(tasks []model.Task, id string) []model.Task {
	out := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

func addSubtask(tasks []model.Task, parentID, text string) []model.Task {
	i := indexOf(tasks, parentID)
	if i < 0 || !tasks[i].IsMonthly() {
		return tasks
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return tasks
	}
	// Completion is tracked by text, so a repeated text would be ambiguous.
	for _, existing := range tasks[i].DailyTasks {
		if existing == trimmed {
			return tasks
		}
	}
	tasks[i].DailyTasks = append(tasks[i].DailyTasks, trimmed)
	if tasks[i].CompletedDailyTasks == nil {
		tasks[i].CompletedDailyTasks = []string{}
	}
	return tasks
}

func toggleSubtask(tasks []model.Task, parentID string, index int) []model.Task {
	i := indexOf(tasks, parentID)
	if i < 0 || !tasks[i].IsMonthly() {
		return tasks
	}
	parent := &tasks[i]
	if index < 0 || index >= len(parent.DailyTasks) {
		return tasks
	}
	text := parent.DailyTasks[index]
	if parent.IsSubtaskDone(text) {
		kept := make([]string, 0, len(parent.CompletedDailyTasks))
		for _, done := range parent.CompletedDailyTasks {
			if done != text {
				kept = append(kept, done)
			}
		}
		parent.CompletedDailyTasks = kept
	} else {
		parent.CompletedDailyTasks = append(parent.CompletedDailyTasks, text)
	}
	parent.RecomputeProgress()
	return tasks
}

func indexOf(tasks []model.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(tasks []model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks)+1)
	for _, t := range tasks {
		out = append(out, t.Clone())
	}
	return out
}

// Find returns a copy of the task with the given id.
func Find(tasks []model.Task, id string) (model.Task, bool) {
	i := indexOf(tasks, id)
	if i < 0 {
		return model.Task{}, false
	}
	return tasks[i].Clone(), true
}
