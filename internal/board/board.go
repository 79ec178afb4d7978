// Package board models the kanban and calendar views over a task list.
package board

import (
	"sort"

	"doabli/internal/models"
)

// Column is one kanban lane.
type Column struct {
	Status models.TaskStatus `json:"status"`
	Tasks  []models.Task     `json:"tasks"`
}

// Partition groups tasks into the fixed lanes, each ordered by position.
// Tasks whose status is not a known lane are left out.
func Partition(tasks []models.Task) []Column {
	index := make(map[models.TaskStatus]int, len(models.Statuses))
	cols := make([]Column, len(models.Statuses))
	for i, s := range models.Statuses {
		index[s] = i
		cols[i] = Column{Status: s, Tasks: []models.Task{}}
	}
	for _, t := range tasks {
		i, ok := index[models.NormalizeStatus(string(t.Status))]
		if !ok {
			continue
		}
		cols[i].Tasks = append(cols[i].Tasks, t)
	}
	for i := range cols {
		lane := cols[i].Tasks
		sort.SliceStable(lane, func(a, b int) bool {
			if lane[a].Position != lane[b].Position {
				return lane[a].Position < lane[b].Position
			}
			return lane[a].ID < lane[b].ID
		})
	}
	return cols
}

// Overdue reports a task that is not done and was due before today.
func Overdue(t models.Task, today models.Date) bool {
	if t.DueDate == nil || t.DueDate.IsZero() {
		return false
	}
	if models.NormalizeStatus(string(t.Status)) == models.StatusDone {
		return false
	}
	return t.DueDate.Before(today)
}
