package views

import (
	"strings"
	"testing"
)

func TestRenderTaskRowChips(t *testing.T) {
	progress := 50.0
	row := RenderTaskRow(TaskRowData{
		Text:        "Go course",
		SubCategory: "monthly",
		DueDate:     "Oct 31",
		Progress:    &progress,
	}, true)
	for _, want := range []string{"> [ ] Go course", "#monthly", "due:Oct 31", "50%"} {
		if !strings.Contains(row, want) {
			t.Fatalf("expected %q in %q", want, row)
		}
	}

	done := RenderTaskRow(TaskRowData{Text: "Sweep", Completed: true}, false)
	if !strings.HasPrefix(done, "  [x] Sweep") {
		t.Fatalf("unexpected completed row: %q", done)
	}
}

func TestRenderTaskPanelEmpty(t *testing.T) {
	out := RenderTaskPanel(TaskPanelData{Title: "Home tasks (0)", EmptyPrompt: "nothing here"})
	if !strings.Contains(out, "nothing here") {
		t.Fatalf("expected empty prompt, got %q", out)
	}
}

func TestRenderTabsShowsBadges(t *testing.T) {
	out := RenderTabs([]TabData{
		{Label: "Home", Icon: "🏠", Badge: 2, Selected: true},
		{Label: "Learning", Icon: "📚"},
	})
	if !strings.Contains(out, "Home (2)") || !strings.Contains(out, "Learning") {
		t.Fatalf("unexpected tabs: %q", out)
	}
}

func TestRenderTrackerCelebration(t *testing.T) {
	out := RenderTracker(TrackerData{
		Completed: 2,
		Total:     2,
		Points:    20,
		Percent:   100,
		Message:   "Level up! ⭐",
		Emojis:    []string{"🎉", "🏆"},
	})
	for _, want := range []string{"2 of 2 tasks completed | 20 points", "100%", "Level up!", "🎉 🏆"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if RenderMarkdown("   ") != "" {
		t.Fatal("expected empty output for blank markdown")
	}
}
