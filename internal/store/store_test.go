package store

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"gtd/internal/gtd"
	"gtd/internal/models"
)

// fakePersistence keeps every collection in maps and counts writes, so
// tests can assert what reached the durable side.
type fakePersistence struct {
	projects map[string]models.Project
	tasks    map[string]models.Task
	entries  map[string]models.TimeEntry
	settings *models.Settings
	timer    *models.ActiveTimer
	writes   int
}

func newFakePersistence() *fakePersistence {
	return &fakePersistence{
		projects: map[string]models.Project{},
		tasks:    map[string]models.Task{},
		entries:  map[string]models.TimeEntry{},
	}
}

func (f *fakePersistence) Projects() ([]models.Project, error) {
	out := make([]models.Project, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePersistence) Tasks() ([]models.Task, error) {
	out := make([]models.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakePersistence) TimeEntries() ([]models.TimeEntry, error) {
	out := make([]models.TimeEntry, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakePersistence) Settings() (*models.Settings, error) {
	return f.settings, nil
}

func (f *fakePersistence) ActiveTimer() (*models.ActiveTimer, error) {
	return f.timer, nil
}

func (f *fakePersistence) SaveActiveTimer(t models.ActiveTimer) error {
	f.timer = &t
	f.writes++
	return nil
}

func (f *fakePersistence) ClearActiveTimer() error {
	f.timer = nil
	return nil
}

func (f *fakePersistence) SaveProject(p models.Project) error {
	f.projects[p.ID] = p
	f.writes++
	return nil
}

func (f *fakePersistence) DeleteProject(id string) error {
	delete(f.projects, id)
	return nil
}

func (f *fakePersistence) SaveTask(t models.Task) error {
	f.tasks[t.ID] = t
	f.writes++
	return nil
}

func (f *fakePersistence) DeleteTask(id string) error {
	delete(f.tasks, id)
	return nil
}

func (f *fakePersistence) SaveTimeEntry(e models.TimeEntry) error {
	f.entries[e.ID] = e
	f.writes++
	return nil
}

func (f *fakePersistence) SaveSettings(s models.Settings) error {
	f.settings = &s
	f.writes++
	return nil
}

func newTestStore(t *testing.T) (*Store, *fakePersistence) {
	t.Helper()
	p := newFakePersistence()
	s, err := Load(zerolog.Nop(), p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s, p
}

func TestLoadSeedsDefaultSettings(t *testing.T) {
	s, _ := newTestStore(t)
	got := s.Settings()
	want := models.DefaultSettings()
	if got != want {
		t.Fatalf("settings = %+v, want %+v", got, want)
	}
}

func TestAddProjectDefaults(t *testing.T) {
	s, p := newTestStore(t)
	project := s.AddProject(ProjectDraft{Name: "Errands"})

	if project.Color != "#6366f1" {
		t.Errorf("color = %q, want default", project.Color)
	}
	if project.DefaultView != models.ViewBoard {
		t.Errorf("defaultView = %q, want board", project.DefaultView)
	}
	if len(project.Columns) != 4 {
		t.Fatalf("columns = %d, want 4", len(project.Columns))
	}
	if !project.Columns[3].CountsAsDone {
		t.Error("last default column should count as done")
	}
	if _, ok := p.projects[project.ID]; !ok {
		t.Error("project not persisted")
	}
}

func TestDeleteProjectDetachesTasks(t *testing.T) {
	s, p := newTestStore(t)
	project := s.AddProject(ProjectDraft{Name: "Work"})
	colID := project.Columns[0].ID
	task, err := s.AddTask(TaskDraft{Title: "report", ProjectID: &project.ID, ColumnID: &colID})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	s.AddTimeEntry(models.TimeEntry{TaskID: &task.ID, ProjectID: &project.ID, StartTime: time.Now()})

	if err := s.DeleteProject(project.ID); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}

	got, ok := s.Task(task.ID)
	if !ok {
		t.Fatal("task deleted along with project")
	}
	if got.ProjectID != nil || got.ColumnID != nil {
		t.Errorf("task kept references: project=%v column=%v", got.ProjectID, got.ColumnID)
	}
	if len(s.TimeEntries()) != 1 {
		t.Fatal("time entry deleted along with project")
	}
	if s.TimeEntries()[0].ProjectID != nil {
		t.Error("time entry kept project reference")
	}
	if _, ok := p.projects[project.ID]; ok {
		t.Error("project still in persistence")
	}
	if p.tasks[task.ID].ProjectID != nil {
		t.Error("detached task not persisted")
	}
}

func TestDeleteColumnDetachesItsTasks(t *testing.T) {
	s, _ := newTestStore(t)
	project := s.AddProject(ProjectDraft{Name: "Work"})
	col := project.Columns[1]
	other := project.Columns[2]
	inCol, _ := s.AddTask(TaskDraft{Title: "a", ProjectID: &project.ID, ColumnID: &col.ID})
	elsewhere, _ := s.AddTask(TaskDraft{Title: "b", ProjectID: &project.ID, ColumnID: &other.ID})

	if err := s.DeleteColumn(project.ID, col.ID); err != nil {
		t.Fatalf("DeleteColumn: %v", err)
	}

	got, _ := s.Project(project.ID)
	if len(got.Columns) != 3 {
		t.Errorf("columns = %d, want 3", len(got.Columns))
	}
	a, _ := s.Task(inCol.ID)
	if a.ColumnID != nil {
		t.Error("task in deleted column kept its column reference")
	}
	if a.ProjectID == nil || *a.ProjectID != project.ID {
		t.Error("task lost its project on column delete")
	}
	b, _ := s.Task(elsewhere.ID)
	if b.ColumnID == nil || *b.ColumnID != other.ID {
		t.Error("task in surviving column was detached")
	}
}

func TestAddTaskAppendsPerBucket(t *testing.T) {
	s, _ := newTestStore(t)
	project := s.AddProject(ProjectDraft{Name: "Work"})
	colID := project.Columns[0].ID

	first, _ := s.AddTask(TaskDraft{Title: "one", ProjectID: &project.ID, ColumnID: &colID})
	second, _ := s.AddTask(TaskDraft{Title: "two", ProjectID: &project.ID, ColumnID: &colID})
	inbox, _ := s.AddTask(TaskDraft{Title: "loose"})

	if first.Position != 0 || second.Position != 1 {
		t.Errorf("column positions = %d, %d, want 0, 1", first.Position, second.Position)
	}
	if inbox.Position != 0 {
		t.Errorf("inbox position = %d, want 0", inbox.Position)
	}
	if inbox.ColumnID != nil {
		t.Error("inbox task has a column")
	}
}

func TestAddTaskRequiresTitle(t *testing.T) {
	s, _ := newTestStore(t)
	if _, err := s.AddTask(TaskDraft{}); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("err = %v, want ErrTitleRequired", err)
	}
}

func TestMoveTaskAppendsToDestination(t *testing.T) {
	s, _ := newTestStore(t)
	project := s.AddProject(ProjectDraft{Name: "Work"})
	src := project.Columns[0].ID
	dst := project.Columns[1].ID
	s.AddTask(TaskDraft{Title: "sitting", ProjectID: &project.ID, ColumnID: &dst})
	task, _ := s.AddTask(TaskDraft{Title: "mover", ProjectID: &project.ID, ColumnID: &src})

	moved, err := s.MoveTask(task.ID, &project.ID, &dst)
	if err != nil {
		t.Fatalf("MoveTask: %v", err)
	}
	if moved.Position != 1 {
		t.Errorf("position = %d, want appended at 1", moved.Position)
	}
	if moved.ColumnID == nil || *moved.ColumnID != dst {
		t.Error("task not in destination column")
	}
}

func TestMoveTaskIntoEmptyColumnStartsAtZero(t *testing.T) {
	s, _ := newTestStore(t)
	project := s.AddProject(ProjectDraft{Name: "Work"})
	src := project.Columns[0].ID
	dst := project.Columns[1].ID

	var last *models.Task
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		last, _ = s.AddTask(TaskDraft{Title: title, ProjectID: &project.ID, ColumnID: &src})
	}
	if last.Position != 4 {
		t.Fatalf("last position = %d, want 4", last.Position)
	}

	moved, err := s.MoveTask(last.ID, &project.ID, &dst)
	if err != nil {
		t.Fatalf("MoveTask: %v", err)
	}
	if moved.Position != 0 {
		t.Errorf("position = %d, want 0 in an empty column", moved.Position)
	}
}

func TestUpdateTaskMoveIntoEmptyColumnStartsAtZero(t *testing.T) {
	s, _ := newTestStore(t)
	project := s.AddProject(ProjectDraft{Name: "Work"})
	src := project.Columns[0].ID
	dst := project.Columns[1].ID

	var last *models.Task
	for _, title := range []string{"a", "b", "c", "d"} {
		last, _ = s.AddTask(TaskDraft{Title: title, ProjectID: &project.ID, ColumnID: &src})
	}

	patch := models.TaskPatch{ColumnID: models.Field[string]{Set: true, Value: dst}}
	moved, err := s.UpdateTask(last.ID, patch)
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if moved.Position != 0 {
		t.Errorf("position = %d, want 0 in an empty column", moved.Position)
	}
	if moved.ColumnID == nil || *moved.ColumnID != dst {
		t.Error("task not in destination column")
	}
}

func TestUpdateTaskKeepsInboxTaskColumnless(t *testing.T) {
	s, _ := newTestStore(t)
	project := s.AddProject(ProjectDraft{Name: "Work"})
	task, _ := s.AddTask(TaskDraft{Title: "loose"})

	patch := models.TaskPatch{ColumnID: models.Field[string]{Set: true, Value: project.Columns[0].ID}}
	updated, err := s.UpdateTask(task.ID, patch)
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.ColumnID != nil {
		t.Errorf("columnId = %q, want nil on an inbox task", *updated.ColumnID)
	}
}

func TestReorderTasksNormalizesPositions(t *testing.T) {
	s, _ := newTestStore(t)
	project := s.AddProject(ProjectDraft{Name: "Work"})
	colID := project.Columns[0].ID
	a, _ := s.AddTask(TaskDraft{Title: "a", ProjectID: &project.ID, ColumnID: &colID})
	b, _ := s.AddTask(TaskDraft{Title: "b", ProjectID: &project.ID, ColumnID: &colID})
	c, _ := s.AddTask(TaskDraft{Title: "c", ProjectID: &project.ID, ColumnID: &colID})

	bucket := gtd.Bucket{ProjectID: &project.ID, ColumnID: &colID}
	s.ReorderTasks(bucket, []string{c.ID, a.ID, b.ID})

	got := s.Bucket(bucket)
	wantOrder := []string{c.ID, a.ID, b.ID}
	for i, task := range got {
		if task.ID != wantOrder[i] {
			t.Errorf("slot %d holds %q, want %q", i, task.Title, wantOrder[i])
		}
		if task.Position != i {
			t.Errorf("slot %d position = %d, want %d", i, task.Position, i)
		}
	}
}

func TestCompleteTaskMovesToDoneColumn(t *testing.T) {
	s, _ := newTestStore(t)
	project := s.AddProject(ProjectDraft{Name: "Work"})
	colID := project.Columns[0].ID
	task, _ := s.AddTask(TaskDraft{Title: "finish me", ProjectID: &project.ID, ColumnID: &colID, InToday: true})

	done, err := s.CompleteTask(task.ID)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if done.CompletedAt == nil {
		t.Fatal("completedAt not set")
	}
	if done.ColumnID == nil || *done.ColumnID != project.Columns[3].ID {
		t.Error("task not moved to the done column")
	}
	if done.InToday {
		t.Error("completed task still in today")
	}
}

func TestCompleteInboxTaskFails(t *testing.T) {
	s, _ := newTestStore(t)
	task, _ := s.AddTask(TaskDraft{Title: "loose"})
	if _, err := s.CompleteTask(task.ID); !errors.Is(err, gtd.ErrNotCompletable) {
		t.Fatalf("err = %v, want ErrNotCompletable", err)
	}
}

func TestTimerCyclePersistsEntries(t *testing.T) {
	s, p := newTestStore(t)
	project := s.AddProject(ProjectDraft{Name: "Work"})
	colID := project.Columns[0].ID
	one, _ := s.AddTask(TaskDraft{Title: "one", ProjectID: &project.ID, ColumnID: &colID})
	two, _ := s.AddTask(TaskDraft{Title: "two", ProjectID: &project.ID, ColumnID: &colID})

	active, err := s.StartTimer(one.ID)
	if err != nil {
		t.Fatalf("StartTimer: %v", err)
	}
	if active.TaskID == nil || *active.TaskID != one.ID {
		t.Fatal("active timer not tracking started task")
	}

	// Starting on another task closes the first interval.
	if _, err := s.StartTimer(two.ID); err != nil {
		t.Fatalf("StartTimer: %v", err)
	}
	if len(s.TimeEntries()) != 1 {
		t.Fatalf("entries after restart = %d, want 1", len(s.TimeEntries()))
	}

	entry, err := s.StopTimer()
	if err != nil {
		t.Fatalf("StopTimer: %v", err)
	}
	if entry.TaskID == nil || *entry.TaskID != two.ID {
		t.Error("stopped entry belongs to wrong task")
	}
	if s.ActiveTimer() != nil {
		t.Error("timer still active after stop")
	}
	if len(p.entries) != 2 {
		t.Errorf("persisted entries = %d, want 2", len(p.entries))
	}
	if p.timer != nil {
		t.Error("persisted timer not cleared after stop")
	}
}

func TestTimerResumesAcrossReload(t *testing.T) {
	p := newFakePersistence()
	s, err := Load(zerolog.Nop(), p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	task, _ := s.AddTask(TaskDraft{Title: "deep work"})
	if _, err := s.StartTimer(task.ID); err != nil {
		t.Fatalf("StartTimer: %v", err)
	}

	reloaded, err := Load(zerolog.Nop(), p)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	active := reloaded.ActiveTimer()
	if active == nil {
		t.Fatal("timer lost across reload")
	}
	if active.TaskID == nil || *active.TaskID != task.ID {
		t.Error("resumed timer tracks wrong task")
	}
	if _, err := reloaded.StopTimer(); err != nil {
		t.Fatalf("StopTimer after resume: %v", err)
	}
	if len(reloaded.TimeEntries()) != 1 {
		t.Error("resumed timer produced no entry")
	}
}

func TestStopTimerWhenIdle(t *testing.T) {
	s, _ := newTestStore(t)
	if _, err := s.StopTimer(); !errors.Is(err, gtd.ErrTimerNotRunning) {
		t.Fatalf("err = %v, want ErrTimerNotRunning", err)
	}
}

func TestTodayHonorsLimit(t *testing.T) {
	s, _ := newTestStore(t)
	limit := 2
	s.UpdateSettings(models.SettingsPatch{TodayTaskLimit: &limit})
	for _, title := range []string{"a", "b", "c"} {
		task, _ := s.AddTask(TaskDraft{Title: title})
		if _, err := s.AddToToday(task.ID); err != nil {
			t.Fatalf("AddToToday: %v", err)
		}
	}

	today := s.Today(time.Now())
	if len(today.Visible) != 2 {
		t.Errorf("visible = %d, want 2", len(today.Visible))
	}
	if len(today.Overflow) != 1 {
		t.Errorf("overflow = %d, want 1", len(today.Overflow))
	}
}

func TestUpdateSettingsPersists(t *testing.T) {
	s, p := newTestStore(t)
	theme := "light"
	got := s.UpdateSettings(models.SettingsPatch{Theme: &theme})
	if got.Theme != "light" {
		t.Errorf("theme = %q, want light", got.Theme)
	}
	if p.settings == nil || p.settings.Theme != "light" {
		t.Error("settings not persisted")
	}
}

func TestStoreSurvivesReload(t *testing.T) {
	p := newFakePersistence()
	s, err := Load(zerolog.Nop(), p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	project := s.AddProject(ProjectDraft{Name: "Work"})
	task, _ := s.AddTask(TaskDraft{Title: "persisted", ProjectID: &project.ID})

	reloaded, err := Load(zerolog.Nop(), p)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, ok := reloaded.Project(project.ID); !ok {
		t.Error("project lost across reload")
	}
	got, ok := reloaded.Task(task.ID)
	if !ok {
		t.Fatal("task lost across reload")
	}
	if got.Title != "persisted" {
		t.Errorf("title = %q", got.Title)
	}
}
