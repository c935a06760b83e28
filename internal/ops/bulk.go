package ops

import (
	"fmt"

	"github.com/fantrack/fantrack/internal/errors"
	"github.com/fantrack/fantrack/internal/tracker"
)

// ClearCompletedInput contains parameters for the ClearCompleted operation.
type ClearCompletedInput struct {
	TrackerID string // required
	Confirm   bool
}

// ClearCompletedOutput contains the result of the ClearCompleted operation.
type ClearCompletedOutput struct {
	Removed int             `json:"removed"`
	Tracker tracker.Tracker `json:"tracker"`
	Pending *PendingAction  `json:"pending,omitempty"`
}

// ClearCompleted removes every completed task from a tracker. Without
// Confirm the operation is staged.
func ClearCompleted(s *Session, input ClearCompletedInput) (*ClearCompletedOutput, error) {
	t, ok := s.findTracker(input.TrackerID)
	if !ok {
		return nil, errors.NewNotFound(input.TrackerID)
	}

	completed := 0
	for _, task := range t.Tasks {
		if task.Completed {
			completed++
		}
	}

	if !input.Confirm {
		p := s.stage(&PendingAction{
			Kind:      ActionClearCompleted,
			TrackerID: t.ID,
			Summary:   fmt.Sprintf("remove %d completed task(s) from %q", completed, t.Title),
		})
		return &ClearCompletedOutput{Removed: 0, Tracker: t, Pending: p}, nil
	}

	updated := tracker.ClearCompleted(t)
	s.Trackers = tracker.Replace(s.Trackers, updated)
	s.persistTrackers()

	return &ClearCompletedOutput{Removed: completed, Tracker: updated}, nil
}

// DeleteAllTasksInput contains parameters for the DeleteAllTasks operation.
type DeleteAllTasksInput struct {
	TrackerID string // required
	Confirm   bool
}

// DeleteAllTasksOutput contains the result of the DeleteAllTasks operation.
type DeleteAllTasksOutput struct {
	Removed int             `json:"removed"`
	Tracker tracker.Tracker `json:"tracker"`
	Pending *PendingAction  `json:"pending,omitempty"`
}

// DeleteAllTasks empties a tracker's task list. Without Confirm the
// operation is staged.
func DeleteAllTasks(s *Session, input DeleteAllTasksInput) (*DeleteAllTasksOutput, error) {
	t, ok := s.findTracker(input.TrackerID)
	if !ok {
		return nil, errors.NewNotFound(input.TrackerID)
	}

	if !input.Confirm {
		p := s.stage(&PendingAction{
			Kind:      ActionDeleteAllTasks,
			TrackerID: t.ID,
			Summary:   fmt.Sprintf("delete all %d task(s) from %q", len(t.Tasks), t.Title),
		})
		return &DeleteAllTasksOutput{Removed: 0, Tracker: t, Pending: p}, nil
	}

	removed := len(t.Tasks)
	updated := tracker.DeleteAllTasks(t)
	s.Trackers = tracker.Replace(s.Trackers, updated)
	s.persistTrackers()

	return &DeleteAllTasksOutput{Removed: removed, Tracker: updated}, nil
}
