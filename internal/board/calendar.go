package board

import (
	"sort"

	"doabli/internal/models"
)

// DueBetween returns tasks due in [from, to], earliest first.
func DueBetween(tasks []models.Task, from, to models.Date) []models.Task {
	out := []models.Task{}
	for _, t := range tasks {
		if t.DueDate == nil || t.DueDate.IsZero() {
			continue
		}
		if t.DueDate.Before(from) || to.Before(*t.DueDate) {
			continue
		}
		out = append(out, t)
	}
	sortByDue(out)
	return out
}

// OnDay returns tasks due on day.
func OnDay(tasks []models.Task, day models.Date) []models.Task {
	return DueBetween(tasks, day, day)
}

// Upcoming returns at most limit tasks due after today, earliest first.
func Upcoming(tasks []models.Task, today models.Date, limit int) []models.Task {
	out := []models.Task{}
	for _, t := range tasks {
		if t.DueDate != nil && today.Before(*t.DueDate) {
			out = append(out, t)
		}
	}
	sortByDue(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sortByDue(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].DueDate, tasks[j].DueDate
		if !a.Equal(b.Time) {
			return a.Before(*b)
		}
		return tasks[i].Position < tasks[j].Position
	})
}
