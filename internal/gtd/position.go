// Package gtd holds the ordering, today-selection, timer, and completion
// rules shared by the REST server and the local store. Everything here is
// deterministic and side-effect free except Timer, which owns the single
// active-timer slot.
package gtd

import "gtd/internal/models"

// Bucket identifies an ordering scope for task positions: a (project,
// column) pair. The inbox is the (nil, nil) bucket. A bucket nobody has
// written to yet is implicitly empty and always valid.
type Bucket struct {
	ProjectID *string
	ColumnID  *string
}

// TaskBucket returns the bucket the task currently sits in.
func TaskBucket(t models.Task) Bucket {
	return Bucket{ProjectID: t.ProjectID, ColumnID: t.ColumnID}
}

// Contains reports whether the task belongs to this bucket.
func (b Bucket) Contains(t models.Task) bool {
	return eqID(b.ProjectID, t.ProjectID) && eqID(b.ColumnID, t.ColumnID)
}

func eqID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// NextPosition returns the append position for the bucket: one past the
// highest position in use, or 0 for an empty bucket. Creating a task and
// moving a task into a bucket both use this.
func NextPosition(tasks []models.Task, b Bucket) int {
	next := 0
	for _, t := range tasks {
		if b.Contains(t) && t.Position >= next {
			next = t.Position + 1
		}
	}
	return next
}

// Placement is a single position assignment produced by a reorder.
type Placement struct {
	ID       string
	Position int
}

// Reorder takes the bucket's membership as an ordered id list and assigns
// position = index. Ids that do not name a task currently in the bucket are
// ignored. When orderedIDs really is the bucket's full membership the
// resulting positions are exactly 0..n-1; callers that pass a partial list
// get a partial assignment and keep whatever gaps that leaves.
func Reorder(tasks []models.Task, b Bucket, orderedIDs []string) []Placement {
	members := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if b.Contains(t) {
			members[t.ID] = true
		}
	}

	placements := make([]Placement, 0, len(orderedIDs))
	pos := 0
	for _, id := range orderedIDs {
		if !members[id] {
			continue
		}
		placements = append(placements, Placement{ID: id, Position: pos})
		pos++
	}
	return placements
}

// NextColumnPosition is the column analog of NextPosition, scoped to a
// project's own column list.
func NextColumnPosition(cols []models.Column) int {
	next := 0
	for _, c := range cols {
		if c.Position >= next {
			next = c.Position + 1
		}
	}
	return next
}

// ReorderColumns reassigns column positions to match orderedIDs and returns
// the columns in that order. Unknown ids are ignored; columns missing from
// the list keep their place at the tail in their previous relative order.
func ReorderColumns(cols []models.Column, orderedIDs []string) []models.Column {
	byID := make(map[string]models.Column, len(cols))
	for _, c := range cols {
		byID[c.ID] = c
	}

	out := make([]models.Column, 0, len(cols))
	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		c, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, c)
	}
	for _, c := range cols {
		if !seen[c.ID] {
			out = append(out, c)
		}
	}
	for i := range out {
		out[i].Position = i
	}
	return out
}
