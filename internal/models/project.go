package models

import "time"

const (
	ViewBoard = "board"
	ViewList  = "list"
)

// Column is owned by its project and serialized as part of the project's
// columns JSON blob; it has no independent lifecycle.
type Column struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Color        string `json:"color"`
	Position     int    `json:"position"`
	CountsAsDone bool   `json:"countsAsDone"`
	WipLimit     *int   `json:"wipLimit,omitempty"`
}

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Color       string    `json:"color"`
	Icon        *string   `json:"icon,omitempty"`
	Columns     []Column  `json:"columns"`
	DefaultView string    `json:"defaultView"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DefaultColumns is the column set new projects get when the caller
// supplies none.
func DefaultColumns(newID func() string) []Column {
	return []Column{
		{ID: newID(), Name: "Backlog", Color: "#6b7280", Position: 0},
		{ID: newID(), Name: "To Do", Color: "#3b82f6", Position: 1},
		{ID: newID(), Name: "In Progress", Color: "#f59e0b", Position: 2},
		{ID: newID(), Name: "Done", Color: "#22c55e", Position: 3, CountsAsDone: true},
	}
}
