package tracker

import "time"

// DateLayout is the ISO date format used for habit completion days.
const DateLayout = "2006-01-02"

// MonthDay is one selectable day in the habit calendar grid.
type MonthDay struct {
	Day  int    // 1..N
	Date string // YYYY-MM-DD
}

// MonthGrid describes the current month's habit calendar: the days of the
// month and the day-of-week offset of day 1 under a Monday-first week.
type MonthGrid struct {
	Year   int
	Month  time.Month
	Offset int // 0=Monday .. 6=Sunday
	Days   []MonthDay
}

// Calendar computes the month grid for the month containing now.
// The raw weekday index (0=Sunday) is remapped so Sunday becomes offset 6
// and all other days shift down by one.
func Calendar(now time.Time) MonthGrid {
	year, month, _ := now.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	offset := int(first.Weekday()) - 1
	if first.Weekday() == time.Sunday {
		offset = 6
	}

	grid := MonthGrid{
		Year:   year,
		Month:  month,
		Offset: offset,
		Days:   make([]MonthDay, 0, daysInMonth),
	}
	for d := 1; d <= daysInMonth; d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, now.Location())
		grid.Days = append(grid.Days, MonthDay{Day: d, Date: day.Format(DateLayout)})
	}
	return grid
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date string.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ToggleDate adds date to the matching task's completed-dates set if absent,
// removes it if present. Applying it twice restores the original set.
// Returns false if no task matches.
func ToggleDate(t Tracker, taskID, date string) (Tracker, bool) {
	tasks := t.CloneTasks()
	found := false
	for i, task := range tasks {
		if task.ID != taskID {
			continue
		}
		found = true
		dates := make([]string, 0, len(task.CompletedDates)+1)
		removed := false
		for _, d := range task.CompletedDates {
			if d == date {
				removed = true
				continue
			}
			dates = append(dates, d)
		}
		if !removed {
			dates = append(dates, date)
		}
		tasks[i].CompletedDates = dates
		break
	}
	t.Tasks = tasks
	return t, found
}

// DedupeDates drops duplicate date strings, preserving first-seen order.
// Imported payloads may violate the set invariant; normal operation never
// produces duplicates.
func DedupeDates(dates []string) []string {
	if len(dates) == 0 {
		return dates
	}
	seen := make(map[string]bool, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// ExpandSet tracks which habit tasks are shown expanded. It is a view-layer
// concern keyed by task id, kept outside the Task entity and never persisted.
type ExpandSet map[string]struct{}

// NewExpandSet returns an empty expand set.
func NewExpandSet() ExpandSet {
	return make(ExpandSet)
}

// Has reports whether the task id is expanded.
func (s ExpandSet) Has(taskID string) bool {
	_, ok := s[taskID]
	return ok
}

// Toggle flips the expanded state of one task id.
func (s ExpandSet) Toggle(taskID string) {
	if s.Has(taskID) {
		delete(s, taskID)
	} else {
		s[taskID] = struct{}{}
	}
}

// Add marks one task id expanded.
func (s ExpandSet) Add(taskID string) {
	s[taskID] = struct{}{}
}

// ExpandAll expands every currently active (non-completed) task.
func (s ExpandSet) ExpandAll(tasks []Task) {
	for _, t := range tasks {
		if !t.Completed {
			s[t.ID] = struct{}{}
		}
	}
}

// CollapseAll collapses every currently active (non-completed) task.
func (s ExpandSet) CollapseAll(tasks []Task) {
	for _, t := range tasks {
		if !t.Completed {
			delete(s, t.ID)
		}
	}
}

// AllActiveExpanded reports whether every active task is expanded.
// False when there are no active tasks.
func (s ExpandSet) AllActiveExpanded(tasks []Task) bool {
	active := 0
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		active++
		if !s.Has(t.ID) {
			return false
		}
	}
	return active > 0
}
