package gtd

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"gtd/internal/models"
)

// ErrTimerNotRunning is returned by Stop when no timer is open.
var ErrTimerNotRunning = errors.New("no timer running")

// Timer enforces the at-most-one-running-timer invariant. The zero value is
// an idle timer. It is owned by whichever store or service instance created
// it rather than living at package level, so multiple independent stores
// can coexist in one process.
//
// Timer itself does not persist anything; it hands closed intervals back to
// the caller as TimeEntry values.
type Timer struct {
	active *models.ActiveTimer
}

// Active returns a copy of the open timer, or nil when idle.
func (t *Timer) Active() *models.ActiveTimer {
	if t.active == nil {
		return nil
	}
	cp := *t.active
	return &cp
}

// Resume seeds the timer from a previously saved open interval; nil leaves
// it idle. Used when a store reloads state from disk.
func (t *Timer) Resume(active *models.ActiveTimer) {
	if active == nil {
		t.active = nil
		return
	}
	cp := *active
	t.active = &cp
}

// Running reports whether a timer is open.
func (t *Timer) Running() bool {
	return t.active != nil
}

// Start opens a timer for the given task and/or project at now. If a timer
// is already running it is closed first, exactly as Stop would close it,
// and the resulting entry is returned; intervals never overlap. The
// returned entry is nil when the timer was idle.
func (t *Timer) Start(taskID, projectID *string, now time.Time) *models.TimeEntry {
	var closed *models.TimeEntry
	if t.active != nil {
		closed = t.close(now)
	}
	t.active = &models.ActiveTimer{
		TaskID:    taskID,
		ProjectID: projectID,
		StartTime: now,
	}
	return closed
}

// Stop closes the open timer at now and returns the single TimeEntry for
// the interval. Stopping an idle timer is a rejected precondition: it
// returns ErrTimerNotRunning and changes nothing.
func (t *Timer) Stop(now time.Time) (*models.TimeEntry, error) {
	if t.active == nil {
		return nil, ErrTimerNotRunning
	}
	return t.close(now), nil
}

func (t *Timer) close(now time.Time) *models.TimeEntry {
	duration := now.Sub(t.active.StartTime).Milliseconds()
	if duration < 0 {
		duration = 0
	}
	end := now
	entry := &models.TimeEntry{
		ID:        uuid.NewString(),
		TaskID:    t.active.TaskID,
		ProjectID: t.active.ProjectID,
		StartTime: t.active.StartTime,
		EndTime:   &end,
		Duration:  &duration,
		CreatedAt: now,
	}
	t.active = nil
	return entry
}
