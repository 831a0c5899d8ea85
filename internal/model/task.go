package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidCategory    = errors.New("model: invalid category")
	ErrInvalidSubCategory = errors.New("model: invalid subcategory")
	ErrInvalidProgress    = errors.New("model: invalid progress")
)

type Category string

const (
	CategoryHome     Category = "Home"
	CategoryLearning Category = "Learning"
	CategoryPrayers  Category = "Prayers"
)

// Categories lists the closed category set in tab order.
var Categories = []Category{CategoryHome, CategoryLearning, CategoryPrayers}

func (c Category) IsValid() bool {
	switch c {
	case CategoryHome, CategoryLearning, CategoryPrayers:
		return true
	default:
		return false
	}
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(raw string) (Category, error) {
	trimmed := strings.TrimSpace(raw)
	for _, c := range Categories {
		if strings.EqualFold(string(c), trimmed) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
}

const (
	SubCategoryDaily   = "daily"
	SubCategoryMonthly = "monthly"
)

type Task struct {
	ID                  string     `json:"id"`
	Text                string     `json:"text"`
	Completed           bool       `json:"completed"`
	Category            Category   `json:"category"`
	CreatedAt           time.Time  `json:"createdAt"`
	DueDate             *time.Time `json:"dueDate,omitempty"`
	SubCategory         string     `json:"subCategory,omitempty"`
	Progress            *float64   `json:"progress,omitempty"`
	DailyTasks          []string   `json:"dailyTasks"`
	CompletedDailyTasks []string   `json:"completedDailyTasks"`
}

// IsMonthly reports whether the task carries the monthly sub-type, the only
// sub-type that owns subtasks.
func (t Task) IsMonthly() bool {
	return t.SubCategory == SubCategoryMonthly
}

// IsSubtaskDone reports membership by text, not by position.
func (t Task) IsSubtaskDone(text string) bool {
	for _, done := range t.CompletedDailyTasks {
		if done == text {
			return true
		}
	}
	return false
}

// RecomputeProgress derives Progress from the subtask lists. A nil subtask
// list leaves Progress undefined.
func (t *Task) RecomputeProgress() {
	if t.DailyTasks == nil {
		t.Progress = nil
		return
	}
	pct := 0.0
	if total := len(t.DailyTasks); total > 0 {
		pct = float64(len(t.CompletedDailyTasks)) / float64(total) * 100
	}
	t.Progress = &pct
}

// Clone returns a deep copy so reducers can hand out new states without
// aliasing the old ones.
func (t Task) Clone() Task {
	out := t
	if t.DueDate != nil {
		due := *t.DueDate
		out.DueDate = &due
	}
	if t.Progress != nil {
		p := *t.Progress
		out.Progress = &p
	}
	if t.DailyTasks != nil {
		out.DailyTasks = append(make([]string, 0, len(t.DailyTasks)), t.DailyTasks...)
	}
	if t.CompletedDailyTasks != nil {
		out.CompletedDailyTasks = append(make([]string, 0, len(t.CompletedDailyTasks)), t.CompletedDailyTasks...)
	}
	return out
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, t.Category)
	}
	if t.SubCategory != "" && !HasSubCategory(t.Category, t.SubCategory) {
		return fmt.Errorf("%w: %q for %s", ErrInvalidSubCategory, t.SubCategory, t.Category)
	}
	if t.Progress != nil && (*t.Progress < 0 || *t.Progress > 100) {
		return fmt.Errorf("%w: %v", ErrInvalidProgress, *t.Progress)
	}
	for _, done := range t.CompletedDailyTasks {
		if !containsText(t.DailyTasks, done) {
			return fmt.Errorf("model: completed subtask %q is not in the subtask list", done)
		}
	}
	return nil
}

func containsText(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
