package ops

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/fantrack/fantrack/internal/errors"
	"github.com/fantrack/fantrack/internal/tracker"
)

// BackupPayload is the on-disk backup document. Both keys are optional
// on import; an absent key leaves the corresponding state untouched.
type BackupPayload struct {
	Trackers *[]tracker.Tracker   `json:"trackers,omitempty"`
	Settings *tracker.AppSettings `json:"settings,omitempty"`
}

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Path string // optional, default: ~/.fantrack/exports/fantrack_backup_<date>.json
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string `json:"path"`
	Trackers   int    `json:"trackers"`
	ExportedAt int64  `json:"exported_at"`
}

// Export writes the full application state to a backup file: the
// tracker collection and the settings document, pretty-printed. The
// write goes to a temp file first and is renamed into place, so a
// failure never corrupts an existing backup.
func Export(s *Session, input ExportInput) (*ExportOutput, error) {
	now := time.Now()

	exportPath := input.Path
	if exportPath == "" {
		var err error
		exportPath, err = defaultExportPath(now)
		if err != nil {
			return nil, err
		}
	}

	// Validate ALL paths (both user-provided and default) for security
	if err := ValidatePath(exportPath, PathCheckWrite, s.Cfg); err != nil {
		return nil, err
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	trackers := s.Trackers
	if trackers == nil {
		trackers = []tracker.Tracker{}
	}
	settings := s.Settings
	payload := BackupPayload{
		Trackers: &trackers,
		Settings: &settings,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	// Write to temp file first, then atomic rename to preserve any
	// existing file on failure
	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := exportPath + "." + hex.EncodeToString(randBytes) + ".tmp"
	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(data); err != nil {
		return nil, errors.NewInternal(err)
	}
	if _, err := file.Write([]byte("\n")); err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := file.Sync(); err != nil {
		return nil, errors.NewInternal(err)
	}

	// Close before atomic replace (required on Windows; fine elsewhere).
	if err := file.Close(); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	// Check if destination is a symlink (os.Rename would follow it)
	if info, err := os.Lstat(exportPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return nil, errors.NewInternal(fmt.Errorf("export path is a symlink"))
	}

	// On Windows, os.Rename fails if the destination exists. Fail safely
	// (preserving the existing file) instead of doing a non-atomic
	// delete+rename that could lose the original.
	if err := os.Rename(tempPath, exportPath); err != nil {
		if runtime.GOOS == "windows" {
			if _, statErr := os.Stat(exportPath); statErr == nil {
				return nil, errors.NewInvalidRequest("export destination already exists; choose a new path or delete the existing file")
			}
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	success = true
	return &ExportOutput{
		Path:       exportPath,
		Trackers:   len(trackers),
		ExportedAt: now.Unix(),
	}, nil
}

// defaultExportPath generates the default backup path.
// Format: ~/.fantrack/exports/fantrack_backup_<YYYY-MM-DD>.json
func defaultExportPath(now time.Time) (string, error) {
	dir, err := DefaultExportsDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("fantrack_backup_%s.json", now.Format("2006-01-02"))
	return filepath.Join(dir, filename), nil
}
