package todo

import "github.com/sandeepkv93/tabtodo/internal/model"

// Filter keeps tasks of the category, narrowed to subCategory when it is set.
func Filter(tasks []model.Task, category model.Category, subCategory string) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Category != category {
			continue
		}
		if subCategory != "" && t.SubCategory != subCategory {
			continue
		}
		out = append(out, t.Clone())
	}
	return out
}

// CountByCategory is used for tab badges.
func CountByCategory(tasks []model.Task) map[model.Category]int {
	out := make(map[model.Category]int, len(model.Categories))
	for _, t := range tasks {
		if !t.Completed {
			out[t.Category]++
		}
	}
	return out
}
