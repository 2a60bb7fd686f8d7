// Package store is the client-local deployment profile: an in-memory
// authoritative entity store backed by an on-disk key-value database. It
// applies the same core rules as the REST server but persists through a
// Persistence implementation instead of SQL, and is what the gtd CLI runs
// against. The two profiles are independent, unsynchronized copies.
package store

import (
	"errors"

	"gtd/internal/models"
)

var (
	// ErrNotFound reports that no entity with the given id exists.
	ErrNotFound = errors.New("store: not found")
	// ErrTitleRequired rejects tasks created with an empty title.
	ErrTitleRequired = errors.New("store: task title is required")
)

// Persistence is the durable side of the local store: four collections of
// JSON documents keyed by entity id. Writes are fire-and-forget relative to
// the in-memory state; the store applies mutations first and only logs
// persistence failures.
type Persistence interface {
	Projects() ([]models.Project, error)
	Tasks() ([]models.Task, error)
	TimeEntries() ([]models.TimeEntry, error)
	// Settings returns nil when no settings document has been written yet.
	Settings() (*models.Settings, error)
	// ActiveTimer returns nil when no timer is open. Unlike the server,
	// the local store must carry the open interval across process runs.
	ActiveTimer() (*models.ActiveTimer, error)

	SaveProject(models.Project) error
	DeleteProject(id string) error
	SaveTask(models.Task) error
	DeleteTask(id string) error
	SaveTimeEntry(models.TimeEntry) error
	SaveSettings(models.Settings) error
	SaveActiveTimer(models.ActiveTimer) error
	ClearActiveTimer() error
}
