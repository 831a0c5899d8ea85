package update

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/tabtodo/internal/logging"
	"github.com/sandeepkv93/tabtodo/internal/model"
	"github.com/sandeepkv93/tabtodo/internal/scheduler"
	"github.com/sandeepkv93/tabtodo/internal/storage"
	"github.com/sandeepkv93/tabtodo/internal/todo"
)

type Pane string

const (
	PaneTasks    Pane = "tasks"
	PaneSubtasks Pane = "subtasks"
)

type InputMode string

const (
	InputNone    InputMode = ""
	InputTask    InputMode = "task"
	InputSubtask InputMode = "subtask"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Home     string
	Learning string
	Prayers  string
	Palette  string
	Help     string
	Quit     string
}

// TaskStore is the persistence the Model needs. *storage.TaskStore satisfies it.
type TaskStore interface {
	Load(ctx context.Context) (storage.LoadResult, error)
	Save(ctx context.Context, tasks []model.Task) error
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Motivation is the transient message shown after progress changes.
type Motivation struct {
	Text   string
	Emojis []string
	seq    int
}

func (mv Motivation) Visible() bool {
	return mv.Text != ""
}

type Model struct {
	Tasks       []model.Task
	Category    model.Category
	SubCategory string
	Cursor      int
	SubCursor   int
	Pane        Pane
	Input       InputMode
	Palette     CommandPaletteState
	HelpVisible bool
	Motivation  Motivation
	Progress    todo.DailyProgress
	DueLog      []scheduler.DueEvent
	Scheduler   *scheduler.Engine
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	cfg     RuntimeConfig
	store   TaskStore
	loadErr error
	logger  *log.Logger
	reducer todo.Reducer
	pick    func(n int) int

	taskList     list.Model
	subtaskTable table.Model
	taskInput    textinput.Model
	commandInput textinput.Model
	tracker      progress.Model
	helpModel    help.Model
	descViewport viewport.Model
	uiDensity    int
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type DueMsg struct {
	Event scheduler.DueEvent
}

type dismissMotivationMsg struct {
	seq int
}

func NewModel() Model {
	cfg := DefaultRuntimeConfig()
	m := Model{
		Tasks:     []model.Task{},
		Category:  cfg.StartCategory(),
		Pane:      PaneTasks,
		cfg:       cfg,
		logger:    logging.Discard(),
		reducer:   todo.NewReducer(),
		pick:      rand.Intn,
		uiDensity: 1,
		Keys: GlobalKeyMap{
			Home:     "1",
			Learning: "2",
			Prayers:  "3",
			Palette:  "/",
			Help:     "?",
			Quit:     "q",
		},
	}
	m.SubCategory = model.DefaultSubCategory(m.Category)
	m.initBubbleComponents()
	m.Progress = todo.Summarize(m.VisibleTasks(), m.cfg.PointsPerTask)
	m.syncBubbleData()
	return m
}

// NewModelWithConfig loads the collection from store. A load failure leaves an
// empty collection, an error status and saving disabled; snapshot warnings are
// only logged.
func NewModelWithConfig(store TaskStore, engine *scheduler.Engine, logger *log.Logger, cfg RuntimeConfig) Model {
	m := NewModel()
	m.cfg = cfg
	m.store = store
	m.Scheduler = engine
	if logger != nil {
		m.logger = logger
	}
	m.Category = cfg.StartCategory()
	m.SubCategory = model.DefaultSubCategory(m.Category)

	if store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		res, err := store.Load(ctx)
		cancel()
		if err != nil {
			m.LastError = err
			m.loadErr = err
			m.Status = StatusBar{Text: fmt.Sprintf("load failed: %v", err), IsError: true}
			m.logger.Error("load tasks", "err", err)
		} else {
			m.Tasks = res.Tasks
			for _, w := range res.Warnings {
				m.logger.Warn("snapshot", "warning", w)
			}
			m.logger.Info("loaded tasks", "count", len(m.Tasks))
		}
	}
	m.syncDue()
	m.Progress = todo.Summarize(m.VisibleTasks(), m.cfg.PointsPerTask)
	m.syncBubbleData()
	return m
}

const storeTimeout = 2 * time.Second

func (m Model) Config() RuntimeConfig {
	return m.cfg
}

// VisibleTasks is the current tab's slice of the collection.
func (m Model) VisibleTasks() []model.Task {
	return todo.Filter(m.Tasks, m.Category, m.SubCategory)
}

func (m Model) selectedTask() (model.Task, bool) {
	visible := m.VisibleTasks()
	if m.Cursor < 0 || m.Cursor >= len(visible) {
		return model.Task{}, false
	}
	return visible[m.Cursor], true
}
