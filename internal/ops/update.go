package ops

import (
	"github.com/fantrack/fantrack/internal/errors"
	"github.com/fantrack/fantrack/internal/tracker"
)

// UpdateTrackerInput contains parameters for the UpdateTracker operation.
// Nil fields are left unchanged.
type UpdateTrackerInput struct {
	ID       string // required
	Title    *string
	Color    *string
	Icon     *string
	Currency *string
}

// UpdateTrackerOutput contains the result of the UpdateTracker operation.
type UpdateTrackerOutput struct {
	Tracker tracker.Tracker `json:"tracker"`
}

// UpdateTracker applies a partial update to a tracker's presentation
// fields. Tasks and creation metadata are never touched here.
func UpdateTracker(s *Session, input UpdateTrackerInput) (*UpdateTrackerOutput, error) {
	t, ok := s.findTracker(input.ID)
	if !ok {
		return nil, errors.NewNotFound(input.ID)
	}

	if input.Title != nil {
		title := cleanText(*input.Title)
		if title == "" {
			return nil, errors.NewValidation("title must not be empty")
		}
		t.Title = title
	}
	if input.Color != nil {
		t.Color = *input.Color
	}
	if input.Icon != nil {
		if !tracker.ValidIcon(*input.Icon) {
			return nil, errors.NewValidation("unknown icon: " + *input.Icon)
		}
		t.Icon = *input.Icon
	}
	if input.Currency != nil {
		t.Currency = *input.Currency
	}

	s.Trackers = tracker.Replace(s.Trackers, t)
	s.persistTrackers()

	return &UpdateTrackerOutput{Tracker: t}, nil
}
