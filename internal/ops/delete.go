package ops

import (
	"fmt"

	"github.com/fantrack/fantrack/internal/errors"
	"github.com/fantrack/fantrack/internal/tracker"
)

// DeleteTrackerInput contains parameters for the DeleteTracker operation.
type DeleteTrackerInput struct {
	ID      string // required
	Confirm bool   // false stages the deletion instead of executing it
}

// DeleteTrackerOutput contains the result of the DeleteTracker operation.
type DeleteTrackerOutput struct {
	Deleted bool           `json:"deleted"`
	Pending *PendingAction `json:"pending,omitempty"`
}

// DeleteTracker removes a tracker and all its tasks. Without Confirm the
// deletion is staged and returned for the caller to present; nothing is
// removed until the action is confirmed.
func DeleteTracker(s *Session, input DeleteTrackerInput) (*DeleteTrackerOutput, error) {
	t, ok := s.findTracker(input.ID)
	if !ok {
		return nil, errors.NewNotFound(input.ID)
	}

	if !input.Confirm {
		p := s.stage(&PendingAction{
			Kind:      ActionDeleteTracker,
			TrackerID: t.ID,
			Summary:   fmt.Sprintf("delete tracker %q and its %d task(s)", t.Title, len(t.Tasks)),
		})
		return &DeleteTrackerOutput{Deleted: false, Pending: p}, nil
	}

	s.Trackers = tracker.Remove(s.Trackers, t.ID)
	s.persistTrackers()

	return &DeleteTrackerOutput{Deleted: true}, nil
}
