package tracker

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the task ordering for a derived view.
type SortKey string

const (
	SortCreated SortKey = "created" // id order; ULIDs make this creation-time order
	SortName    SortKey = "name"    // locale-aware alphabetical
	SortValue   SortKey = "value"   // effective value, descending
)

// ValidSortKey reports whether k is a recognized sort key.
func ValidSortKey(k SortKey) bool {
	return k == SortCreated || k == SortName || k == SortValue
}

// Query describes the inputs of a derived task view.
type Query struct {
	// Search is a case-insensitive substring match on task text.
	// Empty retains all tasks.
	Search string

	// Sort defaults to SortCreated when empty.
	Sort SortKey

	// HideCompleted is a presentation hint carried through to the view;
	// the split itself is always computed in full.
	HideCompleted bool

	// Language selects the collation locale for SortName ("en", "ru").
	Language string
}

// TaskView is a read-only projection of a tracker's tasks: filtered, sorted,
// and split into active/completed partitions. Never stored, recomputed on
// every read.
type TaskView struct {
	Active        []Task
	Completed     []Task
	ShowCompleted bool
}

// Filtered returns the total number of tasks that survived the search filter.
func (v TaskView) Filtered() int {
	return len(v.Active) + len(v.Completed)
}

// NewCollator builds a collator for the given language tag. Unknown tags
// fall back to English rather than failing.
func NewCollator(lang string) *collate.Collator {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return collate.New(tag)
}

// BuildView derives the visible task lists from a tracker's raw tasks.
// Steps: filter by search substring, sort by the requested key, then split
// into active and completed preserving the sorted order within each
// partition. The input slice is never mutated.
func BuildView(tasks []Task, q Query) TaskView {
	filtered := make([]Task, 0, len(tasks))
	needle := strings.ToLower(q.Search)
	for _, t := range tasks {
		if needle == "" || strings.Contains(strings.ToLower(t.Text), needle) {
			filtered = append(filtered, t)
		}
	}

	switch q.Sort {
	case SortName:
		coll := NewCollator(q.Language)
		sort.SliceStable(filtered, func(i, j int) bool {
			return coll.CompareString(filtered[i].Text, filtered[j].Text) < 0
		})
	case SortValue:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].EffectiveValue() > filtered[j].EffectiveValue()
		})
	default: // SortCreated
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].ID < filtered[j].ID
		})
	}

	view := TaskView{
		Active:        make([]Task, 0, len(filtered)),
		Completed:     make([]Task, 0, len(filtered)),
		ShowCompleted: !q.HideCompleted,
	}
	for _, t := range filtered {
		if t.Completed {
			view.Completed = append(view.Completed, t)
		} else {
			view.Active = append(view.Active, t)
		}
	}
	return view
}
