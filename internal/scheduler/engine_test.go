package scheduler

import (
	"testing"
	"time"

	"github.com/sandeepkv93/tabtodo/internal/model"
)

func TestEngineEmitsInDueOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(DueEvent{TaskID: "later", DueAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(DueEvent{TaskID: "sooner", DueAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.TaskID != "sooner" || second.TaskID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.TaskID, second.TaskID)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	due := time.Now().UTC().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(DueEvent{
			TaskID: string(rune('a' + i)),
			DueAt:  due,
		}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleSkipsTaskAlreadyQueued(t *testing.T) {
	engine := NewEngine(4)
	due := time.Now().Add(time.Hour)
	for i := 0; i < 3; i++ {
		if err := engine.Schedule(DueEvent{TaskID: "1", DueAt: due}); err != nil {
			t.Fatalf("schedule: %v", err)
		}
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected one pending event, got %d", engine.Pending())
	}
}

func TestDroppedNoticeCanBeScheduledAgain(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	due := time.Now().Add(10 * time.Millisecond)
	for _, id := range []string{"kept", "lost"} {
		if err := engine.Schedule(DueEvent{TaskID: id, DueAt: due}); err != nil {
			t.Fatalf("schedule %s: %v", id, err)
		}
	}
	deadline := time.Now().Add(time.Second)
	for engine.Dropped() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if engine.Dropped() != 1 || engine.Pending() != 0 {
		t.Fatalf("expected one drop and an empty queue, got dropped=%d pending=%d", engine.Dropped(), engine.Pending())
	}

	dropped := "lost"
	if first := waitEvent(t, engine.C(), time.Second); first.TaskID == "lost" {
		dropped = "kept"
	}
	if err := engine.Schedule(DueEvent{TaskID: dropped, DueAt: time.Now().Add(time.Hour)}); err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected dropped task to be queued again, got %d", engine.Pending())
	}
}

func TestSyncCancelsAndMovesNotices(t *testing.T) {
	engine := NewEngine(4)
	base := time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC)
	added, err := engine.Sync([]DueEvent{
		{TaskID: "1", DueAt: base},
		{TaskID: "2", DueAt: base},
	})
	if err != nil || added != 2 {
		t.Fatalf("expected two added, got %d err=%v", added, err)
	}

	added, err = engine.Sync([]DueEvent{{TaskID: "2", DueAt: base}})
	if err != nil || added != 0 || engine.Pending() != 1 {
		t.Fatalf("expected task 1 cancelled, got added=%d pending=%d err=%v", added, engine.Pending(), err)
	}

	moved := base.Add(24 * time.Hour)
	added, err = engine.Sync([]DueEvent{{TaskID: "2", DueAt: moved}, {TaskID: "3", DueAt: base}})
	if err != nil || added != 2 || engine.Pending() != 2 {
		t.Fatalf("expected moved and new notice, got added=%d pending=%d err=%v", added, engine.Pending(), err)
	}

	if _, err := engine.Sync([]DueEvent{{TaskID: "bad"}}); err != ErrInvalidDueTime {
		t.Fatalf("expected ErrInvalidDueTime, got %v", err)
	}
	if engine.Pending() != 2 {
		t.Fatalf("rejected sync should leave the queue alone, got %d", engine.Pending())
	}

	if _, err := engine.Sync(nil); err != nil || engine.Pending() != 0 {
		t.Fatalf("expected empty sync to clear the queue, got pending=%d err=%v", engine.Pending(), err)
	}
}

func TestSyncAfterStop(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	if _, err := engine.Sync(nil); err != ErrEngineStopped {
		t.Fatalf("expected ErrEngineStopped, got %v", err)
	}
}

func TestScheduleValidatesDueTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(DueEvent{TaskID: "bad"}); err != ErrInvalidDueTime {
		t.Fatalf("expected ErrInvalidDueTime, got %v", err)
	}
}

func TestScheduleAfterStop(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	err := engine.Schedule(DueEvent{TaskID: "x", DueAt: time.Now().Add(time.Minute)})
	if err != ErrEngineStopped {
		t.Fatalf("expected ErrEngineStopped, got %v", err)
	}
}

func TestDueEventsPicksOpenMonthlyTasks(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	future := model.EndOfMonth(now)
	past := now.Add(-time.Hour)
	tasks := []model.Task{
		{ID: "1", Text: "course", Category: model.CategoryLearning, SubCategory: model.SubCategoryMonthly, DueDate: &future},
		{ID: "2", Text: "done", Category: model.CategoryLearning, SubCategory: model.SubCategoryMonthly, DueDate: &future, Completed: true},
		{ID: "3", Text: "late", Category: model.CategoryLearning, SubCategory: model.SubCategoryMonthly, DueDate: &past},
		{ID: "4", Text: "daily", Category: model.CategoryLearning, SubCategory: model.SubCategoryDaily},
		{ID: "5", Text: "mop", Category: model.CategoryHome},
	}

	events := DueEvents(tasks, now)
	if len(events) != 1 || events[0].TaskID != "1" || !events[0].DueAt.Equal(future) {
		t.Fatalf("unexpected due events: %+v", events)
	}
}

func waitEvent(t *testing.T, ch <-chan DueEvent, timeout time.Duration) DueEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return DueEvent{}
	}
}
