package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/fantrack/fantrack/internal/config"
	"github.com/fantrack/fantrack/internal/ops"
	"github.com/fantrack/fantrack/internal/store"
	"github.com/fantrack/fantrack/internal/tracker"
)

// setupTestApp creates a CLI app over a temporary store.
func setupTestApp(t *testing.T) (*cli.App, *ops.Session) {
	t.Helper()

	st, err := store.Init(t.TempDir())
	if err != nil {
		t.Fatalf("failed to init test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cfg := config.DefaultConfig()
	cfg.AllowUnsafePaths = true // Allow temp dirs in tests

	session := ops.NewSession(st, cfg)
	return newCLIApp(session, cfg), session
}

// runCLI runs the app with the given args and captures stdout.
func runCLI(t *testing.T, app *cli.App, args ...string) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := app.Run(append([]string{"fantrack"}, args...))

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	return buf.String(), err
}

func TestCLICreate(t *testing.T) {
	app, _ := setupTestApp(t)

	out, err := runCLI(t, app, "create", "--type=SHOPPING", "Groceries")
	if err != nil {
		t.Fatalf("create command failed: %v", err)
	}

	var output ops.CreateTrackerOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if output.Tracker.ID == "" || output.Tracker.Title != "Groceries" {
		t.Errorf("tracker = %+v", output.Tracker)
	}
	if output.Tracker.Kind != tracker.KindShopping {
		t.Errorf("kind = %q", output.Tracker.Kind)
	}
}

func TestCLICreate_UnknownType(t *testing.T) {
	app, _ := setupTestApp(t)

	_, err := runCLI(t, app, "create", "--type=GROCERY", "Groceries")
	if err == nil {
		t.Fatal("expected an error for unknown type")
	}
	if !strings.Contains(err.Error(), "VALIDATION") {
		t.Errorf("err = %v", err)
	}
}

func TestCLIListAndGet(t *testing.T) {
	app, session := setupTestApp(t)
	created, err := ops.CreateTracker(session, ops.CreateTrackerInput{Title: "Chores", Kind: tracker.KindTodo})
	if err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, app, "list", "--type=TODO")
	if err != nil {
		t.Fatalf("list command failed: %v", err)
	}
	var list ops.ListTrackersOutput
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if list.Total != 1 || list.Items[0].Title != "Chores" {
		t.Errorf("list = %+v", list)
	}

	out, err = runCLI(t, app, "get", created.Tracker.ID)
	if err != nil {
		t.Fatalf("get command failed: %v", err)
	}
	var got ops.GetTrackerOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if got.Tracker.Title != "Chores" {
		t.Errorf("tracker = %+v", got.Tracker)
	}
}

func TestCLIGet_NotFound(t *testing.T) {
	app, _ := setupTestApp(t)

	_, err := runCLI(t, app, "get", "nope")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "NOT_FOUND") {
		t.Errorf("err = %v", err)
	}
}

func TestCLITaskAddAndToggle(t *testing.T) {
	app, session := setupTestApp(t)
	created, err := ops.CreateTracker(session, ops.CreateTrackerInput{Title: "Groceries", Kind: tracker.KindShopping})
	if err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, app, "task", "add", "--value=2.5", "--quantity=2", created.Tracker.ID, "Milk")
	if err != nil {
		t.Fatalf("task add failed: %v", err)
	}
	var added ops.AddTaskOutput
	if err := json.Unmarshal([]byte(out), &added); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if added.Task.Text != "Milk" || added.Task.EffectiveValue() != 5 {
		t.Errorf("task = %+v", added.Task)
	}

	out, err = runCLI(t, app, "task", "toggle", created.Tracker.ID, added.Task.ID)
	if err != nil {
		t.Fatalf("task toggle failed: %v", err)
	}
	var toggled ops.ToggleTaskOutput
	if err := json.Unmarshal([]byte(out), &toggled); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if !toggled.Task.Completed {
		t.Error("task not completed after toggle")
	}
}

func TestCLIDelete_TwoPhase(t *testing.T) {
	app, session := setupTestApp(t)
	created, err := ops.CreateTracker(session, ops.CreateTrackerInput{Title: "Groceries", Kind: tracker.KindShopping})
	if err != nil {
		t.Fatal(err)
	}

	// Without --yes the deletion is staged
	out, err := runCLI(t, app, "delete", created.Tracker.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	var staged ops.DeleteTrackerOutput
	if err := json.Unmarshal([]byte(out), &staged); err != nil {
		t.Fatal(err)
	}
	if staged.Deleted || staged.Pending == nil {
		t.Fatalf("staged = %+v", staged)
	}
	if len(session.Trackers) != 1 {
		t.Fatal("tracker must survive staging")
	}

	// pending confirm executes it
	if _, err := runCLI(t, app, "pending", "confirm"); err != nil {
		t.Fatalf("pending confirm failed: %v", err)
	}
	if len(session.Trackers) != 0 {
		t.Error("tracker not deleted after confirm")
	}
}

func TestCLIDelete_Immediate(t *testing.T) {
	app, session := setupTestApp(t)
	created, err := ops.CreateTracker(session, ops.CreateTrackerInput{Title: "Groceries", Kind: tracker.KindShopping})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, app, "delete", "--yes", created.Tracker.ID); err != nil {
		t.Fatalf("delete --yes failed: %v", err)
	}
	if len(session.Trackers) != 0 {
		t.Error("tracker not deleted")
	}
}

func TestCLIPendingCancel(t *testing.T) {
	app, session := setupTestApp(t)
	created, err := ops.CreateTracker(session, ops.CreateTrackerInput{Title: "Groceries", Kind: tracker.KindShopping})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, app, "delete", created.Tracker.ID); err != nil {
		t.Fatal(err)
	}
	out, err := runCLI(t, app, "pending", "cancel")
	if err != nil {
		t.Fatalf("pending cancel failed: %v", err)
	}
	if !strings.Contains(out, "true") {
		t.Errorf("output = %s", out)
	}
	if session.Pending() != nil {
		t.Error("pending action not discarded")
	}
}

func TestCLISettingsSet(t *testing.T) {
	app, session := setupTestApp(t)

	out, err := runCLI(t, app, "settings", "set", "--theme=aurora", "--language=ru")
	if err != nil {
		t.Fatalf("settings set failed: %v", err)
	}
	var updated ops.UpdateSettingsOutput
	if err := json.Unmarshal([]byte(out), &updated); err != nil {
		t.Fatal(err)
	}
	if updated.Settings.ThemeID != "aurora" || updated.Settings.Language != "ru" {
		t.Errorf("settings = %+v", updated.Settings)
	}
	if session.Settings.ThemeID != "aurora" {
		t.Error("session settings not updated")
	}
}

func TestCLIExportImport(t *testing.T) {
	app, session := setupTestApp(t)
	if _, err := ops.CreateTracker(session, ops.CreateTrackerInput{Title: "Groceries", Kind: tracker.KindShopping}); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "backup.json")
	out, err := runCLI(t, app, "export", "--path", path)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	var exported ops.ExportOutput
	if err := json.Unmarshal([]byte(out), &exported); err != nil {
		t.Fatal(err)
	}
	if exported.Trackers != 1 {
		t.Errorf("exported = %+v", exported)
	}

	dstApp, dstSession := setupTestApp(t)
	if _, err := runCLI(t, dstApp, "import", "--path", path, "--yes"); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if len(dstSession.Trackers) != 1 || dstSession.Trackers[0].Title != "Groceries" {
		t.Errorf("imported trackers = %+v", dstSession.Trackers)
	}
}

func TestCLIHabitToggle(t *testing.T) {
	app, session := setupTestApp(t)
	created, err := ops.CreateTracker(session, ops.CreateTrackerInput{Title: "Morning", Kind: tracker.KindHabit})
	if err != nil {
		t.Fatal(err)
	}
	added, err := ops.AddTask(session, ops.AddTaskInput{TrackerID: created.Tracker.ID, Text: "Run"})
	if err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, app, "habit", "toggle", "--date=2026-08-10", created.Tracker.ID, added.Task.ID)
	if err != nil {
		t.Fatalf("habit toggle failed: %v", err)
	}
	var toggled ops.ToggleHabitDateOutput
	if err := json.Unmarshal([]byte(out), &toggled); err != nil {
		t.Fatal(err)
	}
	if len(toggled.Task.CompletedDates) != 1 || toggled.Task.CompletedDates[0] != "2026-08-10" {
		t.Errorf("task = %+v", toggled.Task)
	}
}

func TestCLINoteFromFlag(t *testing.T) {
	app, session := setupTestApp(t)
	created, err := ops.CreateTracker(session, ops.CreateTrackerInput{Title: "Recipes", Kind: tracker.KindNote})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, app, "note", "--content=# Pancakes", created.Tracker.ID); err != nil {
		t.Fatalf("note failed: %v", err)
	}
	got, _ := ops.GetTracker(session, ops.GetTrackerInput{ID: created.Tracker.ID})
	if got.Tracker.NoteContent != "# Pancakes" {
		t.Errorf("NoteContent = %q", got.Tracker.NoteContent)
	}
}

func TestIsCLIMode(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{"no args", []string{"fantrack"}, false},
		{"known command", []string{"fantrack", "list"}, true},
		{"nested command", []string{"fantrack", "task", "add"}, true},
		{"help flag", []string{"fantrack", "--help"}, true},
		{"version flag", []string{"fantrack", "-v"}, true},
		{"unknown arg", []string{"fantrack", "bogus"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			if got := isCLIMode(); got != tt.expected {
				t.Errorf("isCLIMode() = %v, want %v", got, tt.expected)
			}
		})
	}
}
