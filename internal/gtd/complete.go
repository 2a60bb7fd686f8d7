package gtd

import (
	"errors"
	"sort"
	"time"

	"gtd/internal/models"
)

// ErrNotCompletable is returned when a task has no completion target: it
// sits in the inbox, or its project has no countsAsDone column.
var ErrNotCompletable = errors.New("task has no done column to complete into")

// DoneColumn returns the project's completion target. When several columns
// are flagged countsAsDone the first in column order wins; the model does
// not enforce exclusivity.
func DoneColumn(p models.Project) (models.Column, bool) {
	cols := make([]models.Column, len(p.Columns))
	copy(cols, p.Columns)
	sort.SliceStable(cols, func(i, j int) bool {
		return cols[i].Position < cols[j].Position
	})
	for _, c := range cols {
		if c.CountsAsDone {
			return c, true
		}
	}
	return models.Column{}, false
}

// Complete applies the completion rule to a copy of the task: move it into
// the project's done column, stamp completedAt, drop it from today, refresh
// updatedAt. project may be nil for inbox tasks. There is no inverse;
// clearing completedAt is a plain partial update and does not move the task
// back out of the done column.
func Complete(task models.Task, project *models.Project, now time.Time) (models.Task, error) {
	if task.ProjectID == nil || project == nil {
		return task, ErrNotCompletable
	}
	done, ok := DoneColumn(*project)
	if !ok {
		return task, ErrNotCompletable
	}

	columnID := done.ID
	completedAt := now
	task.ColumnID = &columnID
	task.CompletedAt = &completedAt
	task.InToday = false
	task.UpdatedAt = now
	return task, nil
}
