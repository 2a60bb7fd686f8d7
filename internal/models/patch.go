package models

import (
	"encoding/json"
	"time"
)

// Field is a tri-state JSON value used by partial updates: a field can be
// absent from the body (Set == false), present as null (Null == true), or
// present with a value. Plain pointer fields cannot distinguish the first
// two cases, and clearing nullable fields like columnId or completedAt is
// part of the update contract.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if string(b) == "null" {
		f.Null = true
		return nil
	}
	return json.Unmarshal(b, &f.Value)
}

// Ptr returns the field as a nullable pointer, valid only when Set.
func (f Field[T]) Ptr() *T {
	if f.Null {
		return nil
	}
	v := f.Value
	return &v
}

// TaskPatch carries a partial task update. Every applied patch refreshes
// UpdatedAt, even when no field is present.
type TaskPatch struct {
	Title         *string       `json:"title"`
	Description   Field[string] `json:"description"`
	ProjectID     Field[string] `json:"projectId"`
	ColumnID      Field[string] `json:"columnId"`
	DueDate       Field[string] `json:"dueDate"`
	ScheduledDate Field[string] `json:"scheduledDate"`
	EnergyLevel   Field[string] `json:"energyLevel"`
	ContextTags   *[]string     `json:"contextTags"`
	TimeEstimate  Field[int]    `json:"timeEstimate"`
	Position      *int          `json:"position"`
	InToday       *bool         `json:"inToday"`
	Archived      *bool         `json:"archived"`
	CompletedAt   Field[time.Time] `json:"completedAt"`
}

// MovesBucket reports whether the patch relocates the task to another
// (project, column) bucket.
func (p TaskPatch) MovesBucket() bool {
	return p.ProjectID.Set || p.ColumnID.Set
}

func (p TaskPatch) Apply(t *Task, now time.Time) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description.Set {
		t.Description = p.Description.Ptr()
	}
	if p.ProjectID.Set {
		t.ProjectID = p.ProjectID.Ptr()
	}
	if p.ColumnID.Set {
		t.ColumnID = p.ColumnID.Ptr()
	}
	// Inbox tasks carry no column, whatever the patch said.
	if t.ProjectID == nil {
		t.ColumnID = nil
	}
	if p.DueDate.Set {
		t.DueDate = p.DueDate.Ptr()
	}
	if p.ScheduledDate.Set {
		t.ScheduledDate = p.ScheduledDate.Ptr()
	}
	if p.EnergyLevel.Set {
		t.EnergyLevel = p.EnergyLevel.Ptr()
	}
	if p.ContextTags != nil {
		t.ContextTags = *p.ContextTags
	}
	if p.TimeEstimate.Set {
		t.TimeEstimate = p.TimeEstimate.Ptr()
	}
	if p.Position != nil {
		t.Position = *p.Position
	}
	if p.InToday != nil {
		t.InToday = *p.InToday
	}
	if p.Archived != nil {
		t.Archived = *p.Archived
	}
	if p.CompletedAt.Set {
		t.CompletedAt = p.CompletedAt.Ptr()
	}
	t.UpdatedAt = now
}

// ProjectPatch carries a partial project update. Columns replaces the whole
// owned column list, mirroring the columns JSON blob at the storage layer.
type ProjectPatch struct {
	Name        *string       `json:"name"`
	Description Field[string] `json:"description"`
	Color       *string       `json:"color"`
	Icon        Field[string] `json:"icon"`
	Columns     *[]Column     `json:"columns"`
	DefaultView *string       `json:"defaultView"`
	Archived    *bool         `json:"archived"`
}

func (p ProjectPatch) Apply(pr *Project, now time.Time) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Description.Set {
		pr.Description = p.Description.Ptr()
	}
	if p.Color != nil {
		pr.Color = *p.Color
	}
	if p.Icon.Set {
		pr.Icon = p.Icon.Ptr()
	}
	if p.Columns != nil {
		pr.Columns = *p.Columns
	}
	if p.DefaultView != nil {
		pr.DefaultView = *p.DefaultView
	}
	if p.Archived != nil {
		pr.Archived = *p.Archived
	}
	pr.UpdatedAt = now
}

// SettingsPatch carries a partial settings update.
type SettingsPatch struct {
	TodayTaskLimit      *int    `json:"todayTaskLimit"`
	AutoIncludeDueToday *bool   `json:"autoIncludeDueToday"`
	Theme               *string `json:"theme"`
	StartOfWeek         *int    `json:"startOfWeek"`
}

func (p SettingsPatch) Apply(s *Settings) {
	if p.TodayTaskLimit != nil {
		s.TodayTaskLimit = *p.TodayTaskLimit
		if s.TodayTaskLimit < 1 {
			s.TodayTaskLimit = 1
		}
	}
	if p.AutoIncludeDueToday != nil {
		s.AutoIncludeDueToday = *p.AutoIncludeDueToday
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.StartOfWeek != nil {
		s.StartOfWeek = *p.StartOfWeek
	}
}
