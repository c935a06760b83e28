package ops

import (
	"time"

	"github.com/fantrack/fantrack/internal/errors"
	"github.com/fantrack/fantrack/internal/tracker"
)

// ToggleHabitDateInput contains parameters for the ToggleHabitDate operation.
type ToggleHabitDateInput struct {
	TrackerID string // required
	TaskID    string // required
	Date      string // required, YYYY-MM-DD; empty means today
}

// ToggleHabitDateOutput contains the result of the ToggleHabitDate operation.
type ToggleHabitDateOutput struct {
	Task    tracker.Task    `json:"task"`
	Tracker tracker.Tracker `json:"tracker"`
}

// ToggleHabitDate marks or unmarks one calendar day for a habit task.
// The same call applied twice restores the original state.
func ToggleHabitDate(s *Session, input ToggleHabitDateInput) (*ToggleHabitDateOutput, error) {
	t, ok := s.findTracker(input.TrackerID)
	if !ok {
		return nil, errors.NewNotFound(input.TrackerID)
	}
	if t.Kind != tracker.KindHabit {
		return nil, errors.NewInvalidRequest("tracker is not a habit tracker")
	}

	date := input.Date
	if date == "" {
		date = time.Now().Format(tracker.DateLayout)
	}
	if !tracker.ValidDate(date) {
		return nil, errors.NewValidation("date must be YYYY-MM-DD")
	}

	updated, found := tracker.ToggleDate(t, input.TaskID, date)
	if !found {
		return nil, errors.NewNotFound(input.TaskID)
	}

	s.Trackers = tracker.Replace(s.Trackers, updated)
	s.persistTrackers()

	var task tracker.Task
	for _, candidate := range updated.Tasks {
		if candidate.ID == input.TaskID {
			task = candidate
			break
		}
	}
	return &ToggleHabitDateOutput{Task: task, Tracker: updated}, nil
}

// HabitCalendarInput contains parameters for the HabitCalendar operation.
type HabitCalendarInput struct {
	TrackerID string // required
	TaskID    string // required
}

// HabitCalendarOutput contains the result of the HabitCalendar operation.
type HabitCalendarOutput struct {
	Grid      tracker.MonthGrid `json:"grid"`
	Completed map[string]bool   `json:"completed"`
	Streak    int               `json:"streak"`
}

// HabitCalendar returns the current month grid for one habit task with
// its completed days, plus the run of consecutive completed days ending
// today or yesterday.
func HabitCalendar(s *Session, input HabitCalendarInput) (*HabitCalendarOutput, error) {
	return habitCalendarAt(s, input, time.Now())
}

func habitCalendarAt(s *Session, input HabitCalendarInput, now time.Time) (*HabitCalendarOutput, error) {
	t, ok := s.findTracker(input.TrackerID)
	if !ok {
		return nil, errors.NewNotFound(input.TrackerID)
	}
	if t.Kind != tracker.KindHabit {
		return nil, errors.NewInvalidRequest("tracker is not a habit tracker")
	}

	var task *tracker.Task
	for i := range t.Tasks {
		if t.Tasks[i].ID == input.TaskID {
			task = &t.Tasks[i]
			break
		}
	}
	if task == nil {
		return nil, errors.NewNotFound(input.TaskID)
	}

	completed := make(map[string]bool, len(task.CompletedDates))
	for _, d := range task.CompletedDates {
		completed[d] = true
	}

	return &HabitCalendarOutput{
		Grid:      tracker.Calendar(now),
		Completed: completed,
		Streak:    streak(completed, now),
	}, nil
}

// streak counts consecutive completed days walking backwards. A streak
// survives an incomplete today, so finishing yesterday still shows the
// run until the day is over.
func streak(completed map[string]bool, now time.Time) int {
	day := now
	if !completed[day.Format(tracker.DateLayout)] {
		day = day.AddDate(0, 0, -1)
	}
	count := 0
	for completed[day.Format(tracker.DateLayout)] {
		count++
		day = day.AddDate(0, 0, -1)
	}
	return count
}
