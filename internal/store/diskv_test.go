package store

import (
	"testing"
	"time"

	"gtd/internal/models"
)

func TestDiskvPersistenceRoundTrip(t *testing.T) {
	p, err := OpenDiskv(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskv: %v", err)
	}

	task := models.Task{
		ID:          "11111111-2222-3333-4444-555555555555",
		Title:       "persisted",
		ContextTags: []string{},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := p.SaveTask(task); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}

	tasks, err := p.Tasks()
	if err != nil {
		t.Fatalf("Tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Fatalf("tasks = %+v, want the saved task", tasks)
	}

	if err := p.DeleteTask(task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	tasks, err = p.Tasks()
	if err != nil {
		t.Fatalf("Tasks after delete: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("tasks after delete = %d, want 0", len(tasks))
	}
}

func TestLoadAllSurvivesCorruptDocument(t *testing.T) {
	p, err := OpenDiskv(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskv: %v", err)
	}
	dp := p.(*diskvPersistence)

	good := models.Task{ID: "aaaa-bbbb", Title: "good", ContextTags: []string{}}
	if err := p.SaveTask(good); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}
	if err := dp.d.Write("tasks-corrupt", []byte("{not json")); err != nil {
		t.Fatalf("write corrupt doc: %v", err)
	}

	// The decode error must end the walk cleanly.
	if _, err := p.Tasks(); err == nil {
		t.Fatal("expected a decode error for the corrupt document")
	}

	// A later walk over the repaired collection still works.
	if err := dp.d.Erase("tasks-corrupt"); err != nil {
		t.Fatalf("erase corrupt doc: %v", err)
	}
	tasks, err := p.Tasks()
	if err != nil {
		t.Fatalf("Tasks after repair: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != good.ID {
		t.Fatalf("tasks = %+v, want the good task", tasks)
	}
}
