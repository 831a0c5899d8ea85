package scheduler

import (
	"time"

	"github.com/sandeepkv93/tabtodo/internal/model"
)

// DueEvents lists the incomplete monthly tasks whose due date is after now.
func DueEvents(tasks []model.Task, now time.Time) []DueEvent {
	out := make([]DueEvent, 0)
	for _, t := range tasks {
		if t.Completed || !t.IsMonthly() || t.DueDate == nil {
			continue
		}
		if !t.DueDate.After(now) {
			continue
		}
		out = append(out, DueEvent{TaskID: t.ID, Text: t.Text, DueAt: *t.DueDate})
	}
	return out
}
