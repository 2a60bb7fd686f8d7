package models

import "time"

// TimeEntry is an immutable closed (or manually recorded) tracking interval.
// Duration is wall-clock elapsed milliseconds.
type TimeEntry struct {
	ID        string     `json:"id"`
	TaskID    *string    `json:"taskId,omitempty"`
	ProjectID *string    `json:"projectId,omitempty"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Duration  *int64     `json:"duration,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ActiveTimer is the process-wide open interval; stopping it produces the
// TimeEntry. The server keeps it purely in memory, the local store carries
// it across runs.
type ActiveTimer struct {
	TaskID    *string   `json:"taskId,omitempty"`
	ProjectID *string   `json:"projectId,omitempty"`
	StartTime time.Time `json:"startTime"`
}
