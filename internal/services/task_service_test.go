package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"gtd/internal/models"
	"gtd/internal/storage/sqlite"
)

func newTestServices(t *testing.T) (TaskService, ProjectService) {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	projects := NewProjectService(zerolog.Nop(), db)
	return NewTaskService(zerolog.Nop(), db, projects), projects
}

func TestUpdateTaskRejectsUnknownProject(t *testing.T) {
	tasks, _ := newTestServices(t)
	ctx := context.Background()

	task, err := tasks.CreateTask(ctx, CreateTaskParams{Title: "loose"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	ghost := "00000000-0000-0000-0000-000000000000"
	patch := models.TaskPatch{ProjectID: models.Field[string]{Set: true, Value: ghost}}
	if _, err := tasks.UpdateTask(ctx, task.ID, patch); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("err = %v, want ErrProjectNotFound", err)
	}

	// The rejected patch must not have been written.
	got, err := tasks.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.ProjectID != nil {
		t.Errorf("projectId = %q, want nil", *got.ProjectID)
	}
}

func TestUpdateTaskKeepsInboxTaskColumnless(t *testing.T) {
	tasks, projects := newTestServices(t)
	ctx := context.Background()

	project, err := projects.CreateProject(ctx, CreateProjectParams{Name: "Work"})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	task, err := tasks.CreateTask(ctx, CreateTaskParams{Title: "loose"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	// Patching only columnId on an inbox task must not attach a column.
	patch := models.TaskPatch{ColumnID: models.Field[string]{Set: true, Value: project.Columns[0].ID}}
	updated, err := tasks.UpdateTask(ctx, task.ID, patch)
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.ColumnID != nil {
		t.Errorf("columnId = %q, want nil", *updated.ColumnID)
	}

	got, err := tasks.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.ColumnID != nil {
		t.Errorf("stored columnId = %q, want nil", *got.ColumnID)
	}
}

func TestUpdateTaskAppendsWhenMovingToEmptyColumn(t *testing.T) {
	tasks, projects := newTestServices(t)
	ctx := context.Background()

	project, err := projects.CreateProject(ctx, CreateProjectParams{Name: "Work"})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	src := project.Columns[0].ID
	dst := project.Columns[1].ID

	var last *models.Task
	for _, title := range []string{"a", "b", "c", "d"} {
		last, err = tasks.CreateTask(ctx, CreateTaskParams{
			Title:     title,
			ProjectID: &project.ID,
			ColumnID:  &src,
		})
		if err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
	}
	if last.Position != 3 {
		t.Fatalf("last position = %d, want 3", last.Position)
	}

	patch := models.TaskPatch{ColumnID: models.Field[string]{Set: true, Value: dst}}
	moved, err := tasks.UpdateTask(ctx, last.ID, patch)
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
