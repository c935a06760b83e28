package ops

import (
	"github.com/fantrack/fantrack/internal/errors"
	"github.com/fantrack/fantrack/internal/tracker"
)

// CreateTrackerInput contains parameters for the CreateTracker operation.
type CreateTrackerInput struct {
	Title    string       // required
	Kind     tracker.Kind // required
	Color    string       // optional, defaults to the first palette entry
	Icon     string       // optional, defaults per kind
	Currency string       // optional, only meaningful for financial kinds
}

// CreateTrackerOutput contains the result of the CreateTracker operation.
type CreateTrackerOutput struct {
	Tracker tracker.Tracker `json:"tracker"`
}

// CreateTracker creates a tracker and prepends it to the collection, so
// the newest tracker appears first on the dashboard.
func CreateTracker(s *Session, input CreateTrackerInput) (*CreateTrackerOutput, error) {
	title := cleanText(input.Title)
	if title == "" {
		return nil, errors.NewValidation("title is required")
	}
	if !tracker.ValidKind(input.Kind) {
		return nil, errors.NewValidation("unknown tracker type: " + string(input.Kind))
	}

	icon := input.Icon
	if icon == "" {
		icon = tracker.DefaultIcon(input.Kind)
	} else if !tracker.ValidIcon(icon) {
		return nil, errors.NewValidation("unknown icon: " + icon)
	}

	color := input.Color
	if color == "" {
		color = tracker.DefaultColor()
	}

	id, err := newID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	t := tracker.Tracker{
		ID:        id,
		Title:     title,
		Kind:      input.Kind,
		Color:     color,
		Icon:      icon,
		Currency:  input.Currency,
		Tasks:     []tracker.Task{},
		CreatedAt: nowMillis(),
	}

	s.Trackers = tracker.Insert(s.Trackers, t)
	s.persistTrackers()

	return &CreateTrackerOutput{Tracker: t}, nil
}
