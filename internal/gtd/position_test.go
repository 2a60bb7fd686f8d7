package gtd

import (
	"testing"

	"gtd/internal/models"
)

func strptr(s string) *string { return &s }

func taskIn(id string, projectID, columnID *string, pos int) models.Task {
	return models.Task{ID: id, Title: id, ProjectID: projectID, ColumnID: columnID, Position: pos}
}

func TestNextPosition(t *testing.T) {
	p1 := strptr("p1")
	c1 := strptr("c1")
	c2 := strptr("c2")

	tasks := []models.Task{
		taskIn("a", p1, c1, 0),
		taskIn("b", p1, c1, 1),
		taskIn("c", p1, c2, 5), // gapped bucket
		taskIn("d", nil, nil, 2),
	}

	cases := []struct {
		name   string
		bucket Bucket
		want   int
	}{
		{"dense bucket", Bucket{ProjectID: p1, ColumnID: c1}, 2},
		{"gapped bucket appends past the gap", Bucket{ProjectID: p1, ColumnID: c2}, 6},
		{"inbox bucket", Bucket{}, 3},
		{"empty bucket is implicit and valid", Bucket{ProjectID: strptr("nope"), ColumnID: c1}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NextPosition(tasks, tc.bucket); got != tc.want {
				t.Errorf("NextPosition() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestReorderAssignsDensePositions(t *testing.T) {
	p1 := strptr("p1")
	c1 := strptr("c1")
	bucket := Bucket{ProjectID: p1, ColumnID: c1}

	tasks := []models.Task{
		taskIn("a", p1, c1, 0),
		taskIn("b", p1, c1, 3), // gap left by an earlier move
		taskIn("c", p1, c1, 4),
	}

	got := Reorder(tasks, bucket, []string{"c", "a", "b"})
	want := []Placement{{"c", 0}, {"a", 1}, {"b", 2}}
	if len(got) != len(want) {
		t.Fatalf("Reorder() returned %d placements, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("placement %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestReorderIgnoresForeignIDs(t *testing.T) {
	p1 := strptr("p1")
	c1 := strptr("c1")
	bucket := Bucket{ProjectID: p1, ColumnID: c1}

	tasks := []models.Task{
		taskIn("a", p1, c1, 0),
		taskIn("b", p1, c1, 1),
		taskIn("other", p1, strptr("c2"), 0),
	}

	got := Reorder(tasks, bucket, []string{"b", "other", "ghost", "a"})
	want := []Placement{{"b", 0}, {"a", 1}}
	if len(got) != len(want) {
		t.Fatalf("Reorder() returned %d placements, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("placement %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

// Simulates append/move traffic and checks that a closing full-membership
// reorder always lands on exactly 0..n-1 with no duplicates.
func TestReorderNormalizesAfterChurn(t *testing.T) {
	p1 := strptr("p1")
	c1 := strptr("c1")
	c2 := strptr("c2")
	src := Bucket{ProjectID: p1, ColumnID: c1}
	dst := Bucket{ProjectID: p1, ColumnID: c2}

	var tasks []models.Task
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		tasks = append(tasks, taskIn(id, p1, c1, NextPosition(tasks, src)))
	}

	// Move b and d out, leaving gaps in the source bucket.
	for i := range tasks {
		if tasks[i].ID == "b" || tasks[i].ID == "d" {
			tasks[i].Position = NextPosition(tasks, dst)
			tasks[i].ColumnID = c2
		}
	}

	members := []string{"e", "a", "c"}
	placements := Reorder(tasks, src, members)
	if len(placements) != len(members) {
		t.Fatalf("Reorder() returned %d placements, want %d", len(placements), len(members))
	}
	seen := make(map[int]bool)
	for i, pl := range placements {
		if pl.Position != i {
			t.Errorf("placement %d has position %d, want %d", i, pl.Position, i)
		}
		if seen[pl.Position] {
			t.Errorf("duplicate position %d", pl.Position)
		}
		seen[pl.Position] = true
	}
}

func TestNextColumnPosition(t *testing.T) {
	if got := NextColumnPosition(nil); got != 0 {
		t.Errorf("NextColumnPosition(nil) = %d, want 0", got)
	}
	cols := []models.Column{{ID: "x", Position: 0}, {ID: "y", Position: 3}}
	if got := NextColumnPosition(cols); got != 4 {
		t.Errorf("NextColumnPosition() = %d, want 4", got)
	}
}

func TestReorderColumns(t *testing.T) {
	cols := []models.Column{
		{ID: "backlog", Position: 0},
		{ID: "doing", Position: 1},
		{ID: "done", Position: 2},
	}

	t.Run("full membership", func(t *testing.T) {
		got := ReorderColumns(cols, []string{"done", "backlog", "doing"})
		wantOrder := []string{"done", "backlog", "doing"}
		for i, id := range wantOrder {
			if got[i].ID != id || got[i].Position != i {
				t.Errorf("column %d = %s@%d, want %s@%d", i, got[i].ID, got[i].Position, id, i)
			}
		}
	})

	t.Run("unknown ids ignored, missing kept at tail", func(t *testing.T) {
		got := ReorderColumns(cols, []string{"ghost", "done"})
		wantOrder := []string{"done", "backlog", "doing"}
		if len(got) != 3 {
			t.Fatalf("ReorderColumns() dropped columns: got %d, want 3", len(got))
		}
		for i, id := range wantOrder {
			if got[i].ID != id || got[i].Position != i {
				t.Errorf("column %d = %s@%d, want %s@%d", i, got[i].ID, got[i].Position, id, i)
			}
		}
	})
}
