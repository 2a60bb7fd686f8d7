package store

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"gtd/internal/gtd"
	"gtd/internal/models"
)

// Store owns the authoritative in-memory collections and the single active
// timer for this profile. All mutations are applied in memory first and
// then written through to Persistence; a failed write is logged and the
// in-memory state stands, so a crash can lose the last operation. One
// Store serves one caller at a time; it does no locking of its own.
type Store struct {
	logger zerolog.Logger
	p      Persistence

	projects    []models.Project
	tasks       []models.Task
	timeEntries []models.TimeEntry
	settings    models.Settings
	timer       gtd.Timer
}

// Load reads every collection from persistence into memory. Missing
// settings fall back to the defaults.
func Load(logger zerolog.Logger, p Persistence) (*Store, error) {
	projects, err := p.Projects()
	if err != nil {
		return nil, err
	}
	tasks, err := p.Tasks()
	if err != nil {
		return nil, err
	}
	entries, err := p.TimeEntries()
	if err != nil {
		return nil, err
	}
	settings, err := p.Settings()
	if err != nil {
		return nil, err
	}
	if settings == nil {
		defaults := models.DefaultSettings()
		settings = &defaults
	}
	active, err := p.ActiveTimer()
	if err != nil {
		return nil, err
	}

	s := &Store{
		logger:      logger,
		p:           p,
		projects:    projects,
		tasks:       tasks,
		timeEntries: entries,
		settings:    *settings,
	}
	s.timer.Resume(active)
	return s, nil
}

// TaskDraft is the caller-supplied part of a new task.
type TaskDraft struct {
	Title         string
	Description   *string
	ProjectID     *string
	ColumnID      *string
	DueDate       *string
	ScheduledDate *string
	EnergyLevel   *string
	ContextTags   []string
	TimeEstimate  *int
	InToday       bool
}

// ProjectDraft is the caller-supplied part of a new project.
type ProjectDraft struct {
	Name        string
	Description *string
	Color       string
	Icon        *string
}

// --- projects ---

func (s *Store) AddProject(draft ProjectDraft) *models.Project {
	now := time.Now()
	project := models.Project{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Description: draft.Description,
		Color:       draft.Color,
		Icon:        draft.Icon,
		Columns:     models.DefaultColumns(uuid.NewString),
		DefaultView: models.ViewBoard,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if project.Color == "" {
		project.Color = "#6366f1"
	}
	s.projects = append(s.projects, project)
	s.persistProject(project)
	return &project
}

func (s *Store) Projects(includeArchived bool) []models.Project {
	out := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if includeArchived || !p.Archived {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Store) Project(id string) (*models.Project, bool) {
	for i := range s.projects {
		if s.projects[i].ID == id {
			p := s.projects[i]
			return &p, true
		}
	}
	return nil, false
}

func (s *Store) UpdateProject(id string, patch models.ProjectPatch) (*models.Project, error) {
	i := s.projectIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}

	before := s.projects[i].Columns
	patch.Apply(&s.projects[i], time.Now())
	project := s.projects[i]

	if patch.Columns != nil {
		s.detachRemovedColumns(project.ID, before, project.Columns)
	}

	s.persistProject(project)
	return &project, nil
}

// DeleteProject detaches the project's tasks rather than deleting them:
// projectId and columnId become nil, the tasks move to the inbox. Time
// entries keep running totals but lose the project reference.
func (s *Store) DeleteProject(id string) error {
	i := s.projectIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.projects = append(s.projects[:i], s.projects[i+1:]...)

	now := time.Now()
	for j := range s.tasks {
		if s.tasks[j].ProjectID != nil && *s.tasks[j].ProjectID == id {
			s.tasks[j].ProjectID = nil
			s.tasks[j].ColumnID = nil
			s.tasks[j].UpdatedAt = now
			s.persistTask(s.tasks[j])
		}
	}
	for j := range s.timeEntries {
		if s.timeEntries[j].ProjectID != nil && *s.timeEntries[j].ProjectID == id {
			s.timeEntries[j].ProjectID = nil
			s.persistTimeEntry(s.timeEntries[j])
		}
	}

	if err := s.p.DeleteProject(id); err != nil {
		s.logger.Error().
			Err(err).
			Str("project_id", id).
			Msg("failed to delete project from persistence")
	}
	return nil
}

// --- columns ---

func (s *Store) AddColumn(projectID string, col models.Column) (*models.Column, error) {
	i := s.projectIndex(projectID)
	if i < 0 {
		return nil, ErrNotFound
	}

	col.ID = uuid.NewString()
	col.Position = gtd.NextColumnPosition(s.projects[i].Columns)
	s.projects[i].Columns = append(s.projects[i].Columns, col)
	s.projects[i].UpdatedAt = time.Now()

	s.persistProject(s.projects[i])
	return &col, nil
}

func (s *Store) ReorderColumns(projectID string, orderedIDs []string) error {
	i := s.projectIndex(projectID)
	if i < 0 {
		return ErrNotFound
	}

	s.projects[i].Columns = gtd.ReorderColumns(s.projects[i].Columns, orderedIDs)
	s.projects[i].UpdatedAt = time.Now()

	s.persistProject(s.projects[i])
	return nil
}

func (s *Store) DeleteColumn(projectID, columnID string) error {
	i := s.projectIndex(projectID)
	if i < 0 {
		return ErrNotFound
	}

	cols := s.projects[i].Columns
	kept := cols[:0]
	for _, c := range cols {
		if c.ID != columnID {
			kept = append(kept, c)
		}
	}
	s.projects[i].Columns = kept
	s.projects[i].UpdatedAt = time.Now()
	s.detachColumn(projectID, columnID)

	s.persistProject(s.projects[i])
	return nil
}

// --- tasks ---

func (s *Store) AddTask(draft TaskDraft) (*models.Task, error) {
	if draft.Title == "" {
		return nil, ErrTitleRequired
	}

	columnID := draft.ColumnID
	if draft.ProjectID == nil {
		columnID = nil
	}

	now := time.Now()
	task := models.Task{
		ID:            uuid.NewString(),
		Title:         draft.Title,
		Description:   draft.Description,
		ProjectID:     draft.ProjectID,
		ColumnID:      columnID,
		DueDate:       draft.DueDate,
		ScheduledDate: draft.ScheduledDate,
		EnergyLevel:   draft.EnergyLevel,
		ContextTags:   draft.ContextTags,
		TimeEstimate:  draft.TimeEstimate,
		InToday:       draft.InToday,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if task.ContextTags == nil {
		task.ContextTags = []string{}
	}
	task.Position = gtd.NextPosition(s.tasks, gtd.TaskBucket(task))

	s.tasks = append(s.tasks, task)
	s.persistTask(task)
	return &task, nil
}

// Tasks returns non-archived tasks ordered by position.
func (s *Store) Tasks() []models.Task {
	out := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Archived {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out
}

// Bucket returns the bucket's tasks ordered by position. Positions may be
// gapped after moves; order still holds.
func (s *Store) Bucket(b gtd.Bucket) []models.Task {
	out := make([]models.Task, 0)
	for _, t := range s.tasks {
		if b.Contains(t) && !t.Archived {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out
}

func (s *Store) Task(id string) (*models.Task, bool) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			t := s.tasks[i]
			return &t, true
		}
	}
	return nil, false
}

func (s *Store) UpdateTask(id string, patch models.TaskPatch) (*models.Task, error) {
	i := s.taskIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}

	task := s.tasks[i]
	moved := patch.MovesBucket()
	patch.Apply(&task, time.Now())
	if moved && patch.Position == nil {
		// Append to the destination while s.tasks still holds the pre-move
		// row, so the task does not count itself into the bucket's max.
		task.Position = gtd.NextPosition(s.tasks, gtd.TaskBucket(task))
	}

	s.tasks[i] = task
	s.persistTask(task)
	return &task, nil
}

func (s *Store) DeleteTask(id string) error {
	i := s.taskIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	if err := s.p.DeleteTask(id); err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task from persistence")
	}
	return nil
}

// MoveTask relocates the task to the end of the destination bucket. The
// source bucket keeps its gap until the next full reorder; readers sort by
// position and never assume density.
func (s *Store) MoveTask(id string, projectID, columnID *string) (*models.Task, error) {
	i := s.taskIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	if projectID == nil {
		columnID = nil
	}

	// The append position is computed before the task joins the
	// destination, so it cannot count itself into the bucket's max.
	dest := gtd.Bucket{ProjectID: projectID, ColumnID: columnID}
	position := gtd.NextPosition(s.tasks, dest)
	s.tasks[i].ProjectID = projectID
	s.tasks[i].ColumnID = columnID
	s.tasks[i].Position = position
	s.tasks[i].UpdatedAt = time.Now()

	task := s.tasks[i]
	s.persistTask(task)
	return &task, nil
}

// ReorderTasks applies drag-and-drop ordering: orderedIDs is the bucket's
// full membership in display order. Every affected task is persisted
// independently; a partial persistence failure does not roll back
// siblings.
func (s *Store) ReorderTasks(b gtd.Bucket, orderedIDs []string) {
	now := time.Now()
	for _, pl := range gtd.Reorder(s.tasks, b, orderedIDs) {
		i := s.taskIndex(pl.ID)
		if i < 0 {
			continue
		}
		s.tasks[i].Position = pl.Position
		s.tasks[i].UpdatedAt = now
		s.persistTask(s.tasks[i])
	}
}

func (s *Store) AddToToday(id string) (*models.Task, error) {
	inToday := true
	return s.UpdateTask(id, models.TaskPatch{InToday: &inToday})
}

func (s *Store) RemoveFromToday(id string) (*models.Task, error) {
	inToday := false
	return s.UpdateTask(id, models.TaskPatch{InToday: &inToday})
}

func (s *Store) CompleteTask(id string) (*models.Task, error) {
	i := s.taskIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}

	var project *models.Project
	if s.tasks[i].ProjectID != nil {
		project, _ = s.Project(*s.tasks[i].ProjectID)
	}

	completed, err := gtd.Complete(s.tasks[i], project, time.Now())
	if err != nil {
		return nil, err
	}
	s.tasks[i] = completed

	s.persistTask(completed)
	return &completed, nil
}

// Today computes the derived working set for now. It is recomputed on
// every call; a session crossing midnight just passes the new clock.
func (s *Store) Today(now time.Time) gtd.TodayList {
	return gtd.SelectToday(s.tasks, s.settings, now)
}

// --- timer ---

// StartTimer opens a timer for the task, closing and recording any running
// interval first.
func (s *Store) StartTimer(taskID string) (*models.ActiveTimer, error) {
	task, ok := s.Task(taskID)
	if !ok {
		return nil, ErrNotFound
	}

	if closed := s.timer.Start(&task.ID, task.ProjectID, time.Now()); closed != nil {
		s.timeEntries = append(s.timeEntries, *closed)
		s.persistTimeEntry(*closed)
	}

	active := s.timer.Active()
	if err := s.p.SaveActiveTimer(*active); err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to persist active timer")
	}
	return active, nil
}

// StopTimer closes the running timer and records its entry. It returns
// gtd.ErrTimerNotRunning when idle.
func (s *Store) StopTimer() (*models.TimeEntry, error) {
	entry, err := s.timer.Stop(time.Now())
	if err != nil {
		return nil, err
	}
	s.timeEntries = append(s.timeEntries, *entry)
	s.persistTimeEntry(*entry)
	if err := s.p.ClearActiveTimer(); err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to clear persisted timer")
	}
	return entry, nil
}

func (s *Store) ActiveTimer() *models.ActiveTimer {
	return s.timer.Active()
}

// --- time entries ---

func (s *Store) AddTimeEntry(entry models.TimeEntry) *models.TimeEntry {
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()
	s.timeEntries = append(s.timeEntries, entry)
	s.persistTimeEntry(entry)
	return &entry
}

// TimeEntries returns entries newest first.
func (s *Store) TimeEntries() []models.TimeEntry {
	out := make([]models.TimeEntry, len(s.timeEntries))
	copy(out, s.timeEntries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})
	return out
}

// --- settings ---

func (s *Store) Settings() models.Settings {
	return s.settings
}

func (s *Store) UpdateSettings(patch models.SettingsPatch) models.Settings {
	patch.Apply(&s.settings)
	if err := s.p.SaveSettings(s.settings); err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to persist settings")
	}
	return s.settings
}

// --- internals ---

func (s *Store) projectIndex(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) taskIndex(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) detachRemovedColumns(projectID string, before, after []models.Column) {
	kept := make(map[string]bool, len(after))
	for _, c := range after {
		kept[c.ID] = true
	}
	for _, c := range before {
		if !kept[c.ID] {
			s.detachColumn(projectID, c.ID)
		}
	}
}

func (s *Store) detachColumn(projectID, columnID string) {
	now := time.Now()
	for i := range s.tasks {
		t := &s.tasks[i]
		if t.ProjectID != nil && *t.ProjectID == projectID &&
			t.ColumnID != nil && *t.ColumnID == columnID {
			t.ColumnID = nil
			t.UpdatedAt = now
			s.persistTask(*t)
		}
	}
}

func (s *Store) persistProject(p models.Project) {
	if err := s.p.SaveProject(p); err != nil {
		s.logger.Error().
			Err(err).
			Str("project_id", p.ID).
			Msg("failed to persist project")
	}
}

func (s *Store) persistTask(t models.Task) {
	if err := s.p.SaveTask(t); err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", t.ID).
			Msg("failed to persist task")
	}
}

func (s *Store) persistTimeEntry(e models.TimeEntry) {
	if err := s.p.SaveTimeEntry(e); err != nil {
		s.logger.Error().
			Err(err).
			Str("entry_id", e.ID).
			Msg("failed to persist time entry")
	}
}
