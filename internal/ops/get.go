package ops

import (
	"github.com/fantrack/fantrack/internal/errors"
	"github.com/fantrack/fantrack/internal/tracker"
)

// GetTrackerInput contains parameters for the GetTracker operation.
type GetTrackerInput struct {
	ID string // required
}

// GetTrackerOutput contains the result of the GetTracker operation.
type GetTrackerOutput struct {
	Tracker    tracker.Tracker `json:"tracker"`
	TotalValue float64         `json:"total_value"`
}

// GetTracker returns one tracker with its full task list. The total is
// computed over all tasks regardless of completion.
func GetTracker(s *Session, input GetTrackerInput) (*GetTrackerOutput, error) {
	t, ok := s.findTracker(input.ID)
	if !ok {
		return nil, errors.NewNotFound(input.ID)
	}
	return &GetTrackerOutput{
		Tracker:    t,
		TotalValue: t.TotalValue(),
	}, nil
}
