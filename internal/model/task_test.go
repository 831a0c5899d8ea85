package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:          "1770638400000",
		Text:        "Finish Go course",
		Category:    CategoryLearning,
		SubCategory: SubCategoryMonthly,
		CreatedAt:   now,
		DailyTasks:  []string{"chapter 1", "chapter 2"},
	}
	task.CompletedDailyTasks = []string{"chapter 1"}
	task.RecomputeProgress()
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateInvalidEnums(t *testing.T) {
	task := Task{ID: "1", Text: "Sweep", Category: Category("Garage")}
	if err := task.Validate(); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got: %v", err)
	}

	task.Category = CategoryHome
	task.SubCategory = SubCategoryMonthly
	if err := task.Validate(); !errors.Is(err, ErrInvalidSubCategory) {
		t.Fatalf("expected ErrInvalidSubCategory, got: %v", err)
	}

	task.SubCategory = ""
	bad := 140.0
	task.Progress = &bad
	if err := task.Validate(); !errors.Is(err, ErrInvalidProgress) {
		t.Fatalf("expected ErrInvalidProgress, got: %v", err)
	}
}

func TestTaskValidateCompletedSubtaskMustBeListed(t *testing.T) {
	task := Task{
		ID:                  "1",
		Text:                "Read",
		Category:            CategoryLearning,
		SubCategory:         SubCategoryMonthly,
		DailyTasks:          []string{"a"},
		CompletedDailyTasks: []string{"b"},
	}
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for completed subtask outside the list")
	}
}

func TestRecomputeProgress(t *testing.T) {
	task := Task{}
	task.RecomputeProgress()
	if task.Progress != nil {
		t.Fatalf("expected nil progress without subtasks, got %v", *task.Progress)
	}

	task.DailyTasks = []string{}
	task.RecomputeProgress()
	if task.Progress == nil || *task.Progress != 0 {
		t.Fatalf("expected 0 progress for empty subtask list, got %v", task.Progress)
	}

	task.DailyTasks = []string{"a", "b", "c", "d"}
	task.CompletedDailyTasks = []string{"a", "c", "d"}
	task.RecomputeProgress()
	if task.Progress == nil || *task.Progress != 75 {
		t.Fatalf("expected 75 progress, got %v", task.Progress)
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	due := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	orig := Task{ID: "1", DueDate: &due, DailyTasks: []string{"a"}, CompletedDailyTasks: []string{}}
	orig.RecomputeProgress()

	cp := orig.Clone()
	cp.DailyTasks[0] = "changed"
	*cp.DueDate = cp.DueDate.AddDate(0, 1, 0)
	*cp.Progress = 50

	if orig.DailyTasks[0] != "a" {
		t.Fatalf("clone aliased subtasks: %v", orig.DailyTasks)
	}
	if !orig.DueDate.Equal(due) {
		t.Fatalf("clone aliased due date: %v", orig.DueDate)
	}
	if *orig.Progress != 0 {
		t.Fatalf("clone aliased progress: %v", *orig.Progress)
	}
	if cp.CompletedDailyTasks == nil {
		t.Fatal("clone dropped empty completed list")
	}
}

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
	}{
		{"home", CategoryHome},
		{" LEARNING ", CategoryLearning},
		{"Prayers", CategoryPrayers},
	}
	for _, tc := range cases {
		got, err := ParseCategory(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q = %s, want %s", tc.in, got, tc.want)
		}
	}
	if _, err := ParseCategory("work"); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}
