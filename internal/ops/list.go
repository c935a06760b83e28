package ops

import (
	"sort"
	"strings"

	"github.com/fantrack/fantrack/internal/errors"
	"github.com/fantrack/fantrack/internal/tracker"
)

// Dashboard sort orders.
const (
	DashSortNewest = "newest"
	DashSortOldest = "oldest"
	DashSortName   = "name"
)

// ListTrackersInput contains parameters for the ListTrackers operation.
type ListTrackersInput struct {
	Search string       // case-insensitive title substring
	Kind   tracker.Kind // empty means all kinds
	Sort   string       // newest (default), oldest, name
}

// TrackerSummary is one dashboard row.
type TrackerSummary struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Kind       tracker.Kind `json:"type"`
	Color      string       `json:"color"`
	Icon       string       `json:"icon"`
	Currency   string       `json:"currency,omitempty"`
	CreatedAt  int64        `json:"createdAt"`
	TaskCount  int          `json:"task_count"`
	DoneCount  int          `json:"done_count"`
	TotalValue float64      `json:"total_value"`
}

// ListTrackersOutput contains the result of the ListTrackers operation.
type ListTrackersOutput struct {
	Items []TrackerSummary `json:"items"`
	Total int              `json:"total"`
	Sort  string           `json:"sort"`
}

// ListTrackers builds the dashboard: kind filter, then title search,
// then sort. Filtering and sorting never touch the stored collection.
func ListTrackers(s *Session, input ListTrackersInput) (*ListTrackersOutput, error) {
	if input.Kind != "" && !tracker.ValidKind(input.Kind) {
		return nil, errors.NewInvalidRequest("unknown tracker type: " + string(input.Kind))
	}
	sortKey := input.Sort
	if sortKey == "" {
		sortKey = DashSortNewest
	}
	if sortKey != DashSortNewest && sortKey != DashSortOldest && sortKey != DashSortName {
		return nil, errors.NewInvalidRequest("sort must be one of: newest, oldest, name")
	}

	needle := strings.ToLower(cleanText(input.Search))

	filtered := make([]tracker.Tracker, 0, len(s.Trackers))
	for _, t := range s.Trackers {
		if input.Kind != "" && t.Kind != input.Kind {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(t.Title), needle) {
			continue
		}
		filtered = append(filtered, t)
	}

	switch sortKey {
	case DashSortName:
		coll := tracker.NewCollator(s.Settings.Language)
		sort.SliceStable(filtered, func(i, j int) bool {
			return coll.CompareString(filtered[i].Title, filtered[j].Title) < 0
		})
	case DashSortOldest:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt < filtered[j].CreatedAt
		})
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt > filtered[j].CreatedAt
		})
	}

	items := make([]TrackerSummary, 0, len(filtered))
	for _, t := range filtered {
		done := 0
		for _, task := range t.Tasks {
			if task.Completed {
				done++
			}
		}
		items = append(items, TrackerSummary{
			ID:         t.ID,
			Title:      t.Title,
			Kind:       t.Kind,
			Color:      t.Color,
			Icon:       t.Icon,
			Currency:   t.Currency,
			CreatedAt:  t.CreatedAt,
			TaskCount:  len(t.Tasks),
			DoneCount:  done,
			TotalValue: t.TotalValue(),
		})
	}

	return &ListTrackersOutput{
		Items: items,
		Total: len(items),
		Sort:  sortKey,
	}, nil
}
