package gtd

import (
	"sort"
	"time"

	"gtd/internal/models"
)

const dayLayout = "2006-01-02"

// TodayList is the derived working set for the current calendar day, split
// at the configured limit. It is recomputed on every call; nothing caches
// it, so a session running across midnight just passes a fresh now.
type TodayList struct {
	Visible  []models.Task
	Overflow []models.Task
}

// SelectToday computes the today set from the full task list and settings.
//
// A task qualifies when it is neither archived nor completed, and either
// carries the manual inToday flag, is due today while autoIncludeDueToday
// is on, or is scheduled for today. Qualifying tasks are ordered by their
// stored position; the first todayTaskLimit of them are visible, the rest
// overflow. A limit below 1 is treated as 1.
func SelectToday(tasks []models.Task, settings models.Settings, now time.Time) TodayList {
	qualifying := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if qualifiesForToday(t, settings, now) {
			qualifying = append(qualifying, t)
		}
	}

	sort.SliceStable(qualifying, func(i, j int) bool {
		return qualifying[i].Position < qualifying[j].Position
	})

	limit := settings.TodayTaskLimit
	if limit < 1 {
		limit = 1
	}
	if limit > len(qualifying) {
		limit = len(qualifying)
	}
	return TodayList{
		Visible:  qualifying[:limit],
		Overflow: qualifying[limit:],
	}
}

func qualifiesForToday(t models.Task, settings models.Settings, now time.Time) bool {
	if t.Archived || t.Completed() {
		return false
	}
	if t.InToday {
		return true
	}
	if settings.AutoIncludeDueToday && t.DueDate != nil && OnDay(*t.DueDate, now) {
		return true
	}
	return t.ScheduledDate != nil && OnDay(*t.ScheduledDate, now)
}

// OnDay reports whether the date string falls on the same calendar day as
// now, in now's location. Accepts RFC3339 or plain YYYY-MM-DD; unparseable
// values never match.
func OnDay(value string, now time.Time) bool {
	var day time.Time
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		day = t.In(now.Location())
	} else if t, err := time.ParseInLocation(dayLayout, value, now.Location()); err == nil {
		day = t
	} else {
		return false
	}

	y1, m1, d1 := day.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
