package web

import (
	"html/template"
	"net/http"
	"time"

	"github.com/fantrack/fantrack/internal/errors"
	"github.com/fantrack/fantrack/internal/ops"
	"github.com/fantrack/fantrack/internal/tracker"
)

// Handlers contains HTTP route handlers for the read-only viewer.
type Handlers struct {
	session  *ops.Session
	renderer *Renderer
}

// HandleList handles GET /trackers, the dashboard.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	kind := r.URL.Query().Get("type")
	sort := r.URL.Query().Get("sort")

	result, err := ops.ListTrackers(h.session, ops.ListTrackersInput{
		Search: search,
		Kind:   tracker.Kind(kind),
		Sort:   sort,
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "list", ListPageData{
		PageData: PageData{
			Title:   "Trackers",
			Version: h.renderer.version,
		},
		Items:  result.Items,
		Total:  result.Total,
		Search: search,
		Kind:   kind,
		Sort:   result.Sort,
		Kinds:  tracker.Kinds,
	})
}

// HandleDetail handles GET /trackers/{id}, a single tracker view.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("tracker ID is required"))
		return
	}

	search := r.URL.Query().Get("search")
	sort := r.URL.Query().Get("sort")
	hideCompleted := parseBoolParam(r, "hide_completed")

	result, err := ops.TrackerView(h.session, ops.TrackerViewInput{
		TrackerID:     id,
		Search:        search,
		Sort:          tracker.SortKey(sort),
		HideCompleted: hideCompleted,
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	var note template.HTML
	if result.Tracker.NoteContent != "" {
		note = renderMarkdown(result.Tracker.NoteContent)
	}

	h.renderer.renderPage(w, "detail", DetailPageData{
		PageData: PageData{
			Title:   result.Tracker.Title,
			Version: h.renderer.version,
		},
		Tracker:       result.Tracker,
		View:          result.View,
		TotalValue:    result.TotalValue,
		RenderedNote:  note,
		Search:        search,
		Sort:          sort,
		HideCompleted: hideCompleted,
		IsNote:        result.Tracker.Kind == tracker.KindNote,
		IsHabit:       result.Tracker.Kind == tracker.KindHabit,
		HasFinancials: result.Tracker.Kind.HasFinancials(),
	})
}

// HandleCalendar handles GET /trackers/{id}/habits/{task}, the month grid
// for one habit task.
func (h *Handlers) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	taskID := r.PathValue("task")
	if id == "" || taskID == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("tracker and task IDs are required"))
		return
	}

	result, err := ops.HabitCalendar(h.session, ops.HabitCalendarInput{
		TrackerID: id,
		TaskID:    taskID,
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	tr, err := ops.GetTracker(h.session, ops.GetTrackerInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	var task tracker.Task
	for _, t := range tr.Tracker.Tasks {
		if t.ID == taskID {
			task = t
			break
		}
	}

	monthName := time.Date(result.Grid.Year, result.Grid.Month, 1, 0, 0, 0, 0, time.UTC).
		Format("January 2006")

	h.renderer.renderPage(w, "calendar", CalendarPageData{
		PageData: PageData{
			Title:   task.Text,
			Version: h.renderer.version,
		},
		Tracker:   tr.Tracker,
		Task:      task,
		MonthName: monthName,
		Weeks:     calendarWeeks(result.Grid, result.Completed),
		Streak:    result.Streak,
	})
}

// calendarWeeks lays the month grid out as rows of seven cells, padding
// the first row with blanks up to the grid offset.
func calendarWeeks(grid tracker.MonthGrid, completed map[string]bool) [][]calendarCell {
	cells := make([]calendarCell, 0, grid.Offset+len(grid.Days))
	for i := 0; i < grid.Offset; i++ {
		cells = append(cells, calendarCell{})
	}
	for _, d := range grid.Days {
		cells = append(cells, calendarCell{Day: d.Day, Done: completed[d.Date]})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, calendarCell{})
	}

	weeks := make([][]calendarCell, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}

// parseBoolParam parses a boolean query parameter.
func parseBoolParam(r *http.Request, name string) bool {
	s := r.URL.Query().Get(name)
	return s == "true" || s == "1"
}
