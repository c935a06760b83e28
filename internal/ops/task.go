package ops

import (
	"github.com/fantrack/fantrack/internal/errors"
	"github.com/fantrack/fantrack/internal/tracker"
)

// AddTaskInput contains parameters for the AddTask operation.
type AddTaskInput struct {
	TrackerID string   // required
	Text      string   // required
	Value     *float64 // optional unit value
	Quantity  int      // 0 or 1 means a single unit
}

// AddTaskOutput contains the result of the AddTask operation.
type AddTaskOutput struct {
	Task    tracker.Task    `json:"task"`
	Tracker tracker.Tracker `json:"tracker"`
}

// AddTask appends a task to a tracker. New tasks start uncompleted.
func AddTask(s *Session, input AddTaskInput) (*AddTaskOutput, error) {
	text := cleanText(input.Text)
	if text == "" {
		return nil, errors.NewValidation("task text is required")
	}
	if input.Value != nil && *input.Value < 0 {
		return nil, errors.NewValidation("value must not be negative")
	}
	if input.Quantity < 0 {
		return nil, errors.NewValidation("quantity must not be negative")
	}

	t, ok := s.findTracker(input.TrackerID)
	if !ok {
		return nil, errors.NewNotFound(input.TrackerID)
	}

	id, err := newID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	qty := input.Quantity
	if qty == 0 {
		qty = 1
	}
	updated, task := tracker.AddTask(t, id, text, input.Value, qty)

	s.Trackers = tracker.Replace(s.Trackers, updated)
	s.persistTrackers()

	return &AddTaskOutput{Task: task, Tracker: updated}, nil
}

// UpdateTaskInput contains parameters for the UpdateTask operation.
// Value and Quantity always overwrite: a nil Value clears the stored
// value, a Quantity of 0 or 1 resets to a single unit.
type UpdateTaskInput struct {
	TrackerID string // required
	TaskID    string // required
	Text      string // required
	Value     *float64
	Quantity  int
}

// UpdateTaskOutput contains the result of the UpdateTask operation.
type UpdateTaskOutput struct {
	Tracker tracker.Tracker `json:"tracker"`
}

// UpdateTask rewrites a task's text, value, and quantity.
func UpdateTask(s *Session, input UpdateTaskInput) (*UpdateTaskOutput, error) {
	text := cleanText(input.Text)
	if text == "" {
		return nil, errors.NewValidation("task text is required")
	}
	if input.Value != nil && *input.Value < 0 {
		return nil, errors.NewValidation("value must not be negative")
	}
	if input.Quantity < 0 {
		return nil, errors.NewValidation("quantity must not be negative")
	}

	t, ok := s.findTracker(input.TrackerID)
	if !ok {
		return nil, errors.NewNotFound(input.TrackerID)
	}

	qty := input.Quantity
	if qty == 0 {
		qty = 1
	}
	updated, found := tracker.UpdateTask(t, input.TaskID, text, input.Value, qty)
	if !found {
		return nil, errors.NewNotFound(input.TaskID)
	}

	s.Trackers = tracker.Replace(s.Trackers, updated)
	s.persistTrackers()

	return &UpdateTaskOutput{Tracker: updated}, nil
}

// ToggleTaskInput contains parameters for the ToggleTask operation.
type ToggleTaskInput struct {
	TrackerID string // required
	TaskID    string // required
}

// ToggleTaskOutput contains the result of the ToggleTask operation.
type ToggleTaskOutput struct {
	Task    tracker.Task    `json:"task"`
	Tracker tracker.Tracker `json:"tracker"`
}

// ToggleTask flips a task's completion flag.
func ToggleTask(s *Session, input ToggleTaskInput) (*ToggleTaskOutput, error) {
	t, ok := s.findTracker(input.TrackerID)
	if !ok {
		return nil, errors.NewNotFound(input.TrackerID)
	}

	updated, found := tracker.ToggleTask(t, input.TaskID)
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
	return &ToggleTaskOutput{Task: task, Tracker: updated}, nil
}

// DeleteTaskInput contains parameters for the DeleteTask operation.
type DeleteTaskInput struct {
	TrackerID string // required
	TaskID    string // required
}

// DeleteTaskOutput contains the result of the DeleteTask operation.
type DeleteTaskOutput struct {
	Tracker tracker.Tracker `json:"tracker"`
}

// DeleteTask removes one task. Single-task deletion is immediate; only
// the bulk operations stage a confirmation.
func DeleteTask(s *Session, input DeleteTaskInput) (*DeleteTaskOutput, error) {
	t, ok := s.findTracker(input.TrackerID)
	if !ok {
		return nil, errors.NewNotFound(input.TrackerID)
	}

	updated, found := tracker.DeleteTask(t, input.TaskID)
	if !found {
		return nil, errors.NewNotFound(input.TaskID)
	}

	s.Trackers = tracker.Replace(s.Trackers, updated)
	s.persistTrackers()

	return &DeleteTaskOutput{Tracker: updated}, nil
}
