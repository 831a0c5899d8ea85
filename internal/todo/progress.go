package todo

import "github.com/sandeepkv93/tabtodo/internal/model"

const DefaultPointsPerTask = 10

type DailyProgress struct {
	CompletedTasks int
	TotalTasks     int
	Points         int
	Percent        float64
}

func (p DailyProgress) AllDone() bool {
	return p.TotalTasks > 0 && p.CompletedTasks == p.TotalTasks
}

func Summarize(tasks []model.Task, pointsPerTask int) DailyProgress {
	if pointsPerTask <= 0 {
		pointsPerTask = DefaultPointsPerTask
	}
	out := DailyProgress{TotalTasks: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			out.CompletedTasks++
		}
	}
	out.Points = out.CompletedTasks * pointsPerTask
	if out.TotalTasks > 0 {
		out.Percent = float64(out.CompletedTasks) / float64(out.TotalTasks) * 100
	}
	return out
}
