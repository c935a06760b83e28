package ops

import (
	"github.com/fantrack/fantrack/internal/errors"
	"github.com/fantrack/fantrack/internal/tracker"
)

// TrackerViewInput contains parameters for the TrackerView operation.
type TrackerViewInput struct {
	TrackerID     string // required
	Search        string
	Sort          tracker.SortKey // created (default), name, value
	HideCompleted bool
}

// TrackerViewOutput contains the result of the TrackerView operation.
type TrackerViewOutput struct {
	Tracker    tracker.Tracker  `json:"tracker"`
	View       tracker.TaskView `json:"view"`
	TotalValue float64          `json:"total_value"`
}

// TrackerView computes the detail view for one tracker: search, sort,
// and the active/completed split. The total value always covers the
// full task list, not the filtered view.
func TrackerView(s *Session, input TrackerViewInput) (*TrackerViewOutput, error) {
	t, ok := s.findTracker(input.TrackerID)
	if !ok {
		return nil, errors.NewNotFound(input.TrackerID)
	}

	sortKey := input.Sort
	if sortKey == "" {
		sortKey = tracker.SortCreated
	}
	if !tracker.ValidSortKey(sortKey) {
		return nil, errors.NewInvalidRequest("sort must be one of: created, name, value")
	}

	view := tracker.BuildView(t.Tasks, tracker.Query{
		Search:        input.Search,
		Sort:          sortKey,
		HideCompleted: input.HideCompleted,
		Language:      s.Settings.Language,
	})

	return &TrackerViewOutput{
		Tracker:    t,
		View:       view,
		TotalValue: t.TotalValue(),
	}, nil
}
