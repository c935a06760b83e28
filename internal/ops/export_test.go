package ops

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fantrack/fantrack/internal/errors"
	"github.com/fantrack/fantrack/internal/tracker"
)

// allowDir adds dir to the session's export/import allowlist.
func allowDir(s *Session, dir string) {
	s.Cfg.AllowedPaths = append(s.Cfg.AllowedPaths, dir)
}

func TestExport_WritesBackupDocument(t *testing.T) {
	s := newTestSession(t)
	dir := t.TempDir()
	allowDir(s, dir)

	created := seedTracker(t, s, "Groceries", tracker.KindShopping)
	seedTask(t, s, created.ID, "Milk")

	path := filepath.Join(dir, "backup.json")
	out, err := Export(s, ExportInput{Path: path})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if out.Path != path || out.Trackers != 1 {
		t.Errorf("out = %+v", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	var payload BackupPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("backup is not valid JSON: %v", err)
	}
	if payload.Trackers == nil || len(*payload.Trackers) != 1 {
		t.Fatalf("payload.Trackers = %+v", payload.Trackers)
	}
	if (*payload.Trackers)[0].Title != "Groceries" {
		t.Errorf("tracker = %+v", (*payload.Trackers)[0])
	}
	if payload.Settings == nil {
		t.Error("payload missing settings")
	}
	// Pretty-printed for hand inspection
	if !strings.Contains(string(data), "\n  ") {
		t.Error("backup should be indented")
	}
}

func TestExport_OverwritesAtomically(t *testing.T) {
	s := newTestSession(t)
	dir := t.TempDir()
	allowDir(s, dir)
	path := filepath.Join(dir, "backup.json")

	if _, err := Export(s, ExportInput{Path: path}); err != nil {
		t.Fatalf("first export failed: %v", err)
	}
	seedTracker(t, s, "Later", tracker.KindTodo)
	if _, err := Export(s, ExportInput{Path: path}); err != nil {
		t.Fatalf("second export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if !strings.Contains(string(data), "Later") {
		t.Error("backup not replaced")
	}

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("stray temp file: %s", e.Name())
		}
	}
}

func TestExport_PathValidation(t *testing.T) {
	s := newTestSession(t)
	dir := t.TempDir()
	allowDir(s, dir)

	cases := []struct {
		name string
		path string
	}{
		{"wrong extension", filepath.Join(dir, "backup.txt")},
		{"traversal", filepath.Join(dir, "..", "backup.json")},
		{"outside allowed dirs", filepath.Join(t.TempDir(), "backup.json")},
		{"subdirectory of allowed dir", filepath.Join(dir, "sub", "backup.json")},
	}
	for _, tc := range cases {
		if _, err := Export(s, ExportInput{Path: tc.path}); !errors.Is(err, errors.ErrInvalidRequest) {
			t.Errorf("%s: err = %v, want invalid request", tc.name, err)
		}
	}
}

func TestExport_UnsafePathsBypassDirectoryCheck(t *testing.T) {
	s := newTestSession(t)
	s.Cfg.AllowUnsafePaths = true

	path := filepath.Join(t.TempDir(), "anywhere.json")
	if _, err := Export(s, ExportInput{Path: path}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("backup missing: %v", err)
	}
}

func TestDefaultExportPath_Filename(t *testing.T) {
	path, err := defaultExportPath(mustDate(t, "2024-03-09"))
	if err != nil {
		t.Fatalf("defaultExportPath failed: %v", err)
	}
	if filepath.Base(path) != "fantrack_backup_2024-03-09.json" {
		t.Errorf("filename = %q", filepath.Base(path))
	}
}
