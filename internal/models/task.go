package models

import "time"

const (
	EnergyLow    = "low"
	EnergyMedium = "medium"
	EnergyHigh   = "high"
)

// Task is the unit of work. ProjectID == nil means the task sits in the
// inbox; ColumnID must be nil whenever ProjectID is nil.
//
// Due and scheduled dates are calendar dates supplied by the user and kept
// as strings (RFC3339 or YYYY-MM-DD); interpretation against the wall clock
// happens in the today selector, not here.
type Task struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description,omitempty"`
	ProjectID     *string   `json:"projectId"`
	ColumnID      *string   `json:"columnId"`
	DueDate       *string   `json:"dueDate,omitempty"`
	ScheduledDate *string   `json:"scheduledDate,omitempty"`
	EnergyLevel   *string   `json:"energyLevel,omitempty"`
	ContextTags   []string  `json:"contextTags"`
	TimeEstimate  *int      `json:"timeEstimate,omitempty"`
	Position      int       `json:"position"`
	InToday       bool      `json:"inToday"`
	Archived      bool      `json:"archived"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Completed reports whether the task has been completed.
func (t Task) Completed() bool {
	return t.CompletedAt != nil
}
