package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fantrack/fantrack/internal/config"
	"github.com/fantrack/fantrack/internal/ops"
	"github.com/fantrack/fantrack/internal/store"
	"github.com/fantrack/fantrack/internal/tracker"
)

// testServer builds a viewer over a temporary store and returns its
// handler plus the backing session for seeding.
func testServer(t *testing.T) (http.Handler, *ops.Session) {
	t.Helper()

	st, err := store.Init(t.TempDir())
	if err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	session := ops.NewSession(st, config.DefaultConfig())
	srv := NewServer(session, "test", "127.0.0.1:0")
	return srv.Handler, session
}

func seedTracker(t *testing.T, s *ops.Session, title string, kind tracker.Kind) tracker.Tracker {
	t.Helper()
	out, err := ops.CreateTracker(s, ops.CreateTrackerInput{Title: title, Kind: kind})
	if err != nil {
		t.Fatalf("CreateTracker failed: %v", err)
	}
	return out.Tracker
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleList_RendersTrackers(t *testing.T) {
	h, s := testServer(t)
	seedTracker(t, s, "Groceries", tracker.KindShopping)
	seedTracker(t, s, "Chores", tracker.KindTodo)

	rec := get(t, h, "/trackers")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Groceries") || !strings.Contains(body, "Chores") {
		t.Errorf("body missing trackers:\n%s", body)
	}
}

func TestHandleList_SearchFilters(t *testing.T) {
	h, s := testServer(t)
	seedTracker(t, s, "Groceries", tracker.KindShopping)
	seedTracker(t, s, "Chores", tracker.KindTodo)

	rec := get(t, h, "/trackers?search=groc")
	body := rec.Body.String()
	if !strings.Contains(body, "Groceries") || strings.Contains(body, "Chores") {
		t.Errorf("search not applied:\n%s", body)
	}
}

func TestHandleDetail_RendersTasks(t *testing.T) {
	h, s := testServer(t)
	created := seedTracker(t, s, "Groceries", tracker.KindShopping)
	if _, err := ops.AddTask(s, ops.AddTaskInput{TrackerID: created.ID, Text: "Milk"}); err != nil {
		t.Fatal(err)
	}

	rec := get(t, h, "/trackers/"+created.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Milk") {
		t.Errorf("body missing task:\n%s", rec.Body.String())
	}
}

func TestHandleDetail_RendersNoteMarkdown(t *testing.T) {
	h, s := testServer(t)
	created := seedTracker(t, s, "Recipes", tracker.KindNote)
	if _, err := ops.SetNote(s, ops.SetNoteInput{TrackerID: created.ID, Content: "# Pancakes"}); err != nil {
		t.Fatal(err)
	}

	rec := get(t, h, "/trackers/"+created.ID)
	if !strings.Contains(rec.Body.String(), "<h1>Pancakes</h1>") {
		t.Errorf("note not rendered as markdown:\n%s", rec.Body.String())
	}
}

func TestHandleDetail_NotFound(t *testing.T) {
	h, _ := testServer(t)

	rec := get(t, h, "/trackers/nope")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleDetail_JSONErrorNegotiation(t *testing.T) {
	h, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/trackers/nope", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "NOT_FOUND") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestHandleCalendar(t *testing.T) {
	h, s := testServer(t)
	created := seedTracker(t, s, "Morning", tracker.KindHabit)
	added, err := ops.AddTask(s, ops.AddTaskInput{TrackerID: created.ID, Text: "Run"})
	if err != nil {
		t.Fatal(err)
	}

	rec := get(t, h, "/trackers/"+created.ID+"/habits/"+added.Task.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Run") {
		t.Errorf("body missing task name:\n%s", rec.Body.String())
	}
}

func TestSecurityHeaders(t *testing.T) {
	h, _ := testServer(t)

	rec := get(t, h, "/trackers")
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing X-Frame-Options")
	}
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Error("missing Content-Security-Policy")
	}
}

func TestRootRedirects(t *testing.T) {
	h, _ := testServer(t)

	rec := get(t, h, "/")
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/trackers" {
		t.Errorf("Location = %q", loc)
	}
}

func TestCalendarWeeks_PadsToFullRows(t *testing.T) {
	grid := tracker.MonthGrid{
		Year:   2026,
		Month:  2,
		Offset: 2,
		Days: []tracker.MonthDay{
			{Day: 1, Date: "2026-02-01"},
			{Day: 2, Date: "2026-02-02"},
			{Day: 3, Date: "2026-02-03"},
		},
	}
	weeks := calendarWeeks(grid, map[string]bool{"2026-02-02": true})

	if len(weeks) != 1 {
		t.Fatalf("weeks = %d, want 1", len(weeks))
	}
	row := weeks[0]
	if row[0].Day != 0 || row[1].Day != 0 {
		t.Errorf("offset cells not blank: %+v", row)
	}
	if row[2].Day != 1 || !row[3].Done || row[3].Day != 2 {
		t.Errorf("row = %+v", row)
	}
	if row[5].Day != 0 || row[6].Day != 0 {
		t.Errorf("trailing cells not padded: %+v", row)
	}
}
