package ops

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fantrack/fantrack/internal/errors"
	"github.com/fantrack/fantrack/internal/tracker"
)

// maxImportBytes bounds backup files to keep a hostile payload from
// exhausting memory. Real backups are a few hundred kilobytes.
const maxImportBytes = 32 << 20

// StagedImport holds a parsed backup payload awaiting confirmation.
type StagedImport struct {
	Path    string
	Payload BackupPayload
}

// StageImportInput contains parameters for the StageImport operation.
type StageImportInput struct {
	Path string // required
}

// StageImportOutput contains the result of the StageImport operation.
type StageImportOutput struct {
	Pending     *PendingAction `json:"pending"`
	Trackers    int            `json:"trackers"`     // trackers in the payload, -1 if key absent
	HasSettings bool           `json:"has_settings"` // settings key present
}

// StageImport reads and validates a backup file and stages it. Import
// is a whole-state replace: confirming discards the current collection
// for every key present in the payload. A key absent from the payload
// leaves that part of the state untouched. Nothing changes until the
// staged action is confirmed.
func StageImport(s *Session, input StageImportInput) (*StageImportOutput, error) {
	if err := ValidatePath(input.Path, PathCheckRead, s.Cfg); err != nil {
		return nil, err
	}

	file, err := openFileNoFollowRead(input.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImportBytes+1))
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to read import file: %w", err))
	}
	if len(data) > maxImportBytes {
		return nil, errors.NewImport("backup file is too large")
	}

	payload, err := parseBackup(data)
	if err != nil {
		return nil, err
	}

	count := -1
	if payload.Trackers != nil {
		count = len(*payload.Trackers)
	}

	summary := "replace settings from backup"
	if count >= 0 {
		summary = fmt.Sprintf("replace all trackers with %d from backup", count)
		if payload.Settings != nil {
			summary += " and replace settings"
		}
	}

	s.staged = &StagedImport{Path: input.Path, Payload: payload}
	p := s.stage(&PendingAction{Kind: ActionImport, Summary: summary})

	return &StageImportOutput{
		Pending:     p,
		Trackers:    count,
		HasSettings: payload.Settings != nil,
	}, nil
}

// parseBackup decodes and validates a backup document. Entries are
// normalized on the way in: unknown icons fall back to the kind default,
// duplicate habit dates are dropped, invalid settings identifiers revert
// to defaults. Structural problems are import errors.
func parseBackup(data []byte) (BackupPayload, error) {
	var payload BackupPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return BackupPayload{}, errors.NewImport(fmt.Sprintf("invalid JSON: %v", err))
	}
	if payload.Trackers == nil && payload.Settings == nil {
		return BackupPayload{}, errors.NewImport("backup contains neither trackers nor settings")
	}

	if payload.Trackers != nil {
		list := *payload.Trackers
		seen := make(map[string]bool, len(list))
		for i := range list {
			t := &list[i]
			if t.ID == "" {
				return BackupPayload{}, errors.NewImport(fmt.Sprintf("tracker %d: missing id", i))
			}
			if seen[t.ID] {
				return BackupPayload{}, errors.NewImport(fmt.Sprintf("tracker %d: duplicate id %q", i, t.ID))
			}
			seen[t.ID] = true
			if t.Title == "" {
				return BackupPayload{}, errors.NewImport(fmt.Sprintf("tracker %q: missing title", t.ID))
			}
			if !tracker.ValidKind(t.Kind) {
				return BackupPayload{}, errors.NewImport(fmt.Sprintf("tracker %q: unknown type %q", t.ID, t.Kind))
			}
			if !tracker.ValidIcon(t.Icon) {
				t.Icon = tracker.DefaultIcon(t.Kind)
			}
			if t.Color == "" {
				t.Color = tracker.DefaultColor()
			}
			if t.Tasks == nil {
				t.Tasks = []tracker.Task{}
			}
			taskSeen := make(map[string]bool, len(t.Tasks))
			for j := range t.Tasks {
				task := &t.Tasks[j]
				if task.ID == "" {
					return BackupPayload{}, errors.NewImport(fmt.Sprintf("tracker %q: task %d missing id", t.ID, j))
				}
				if taskSeen[task.ID] {
					return BackupPayload{}, errors.NewImport(fmt.Sprintf("tracker %q: duplicate task id %q", t.ID, task.ID))
				}
				taskSeen[task.ID] = true
				task.CompletedDates = tracker.DedupeDates(task.CompletedDates)
			}
		}
		payload.Trackers = &list
	}

	if payload.Settings != nil {
		st := *payload.Settings
		defaults := tracker.DefaultSettings()
		if !tracker.ValidTheme(st.ThemeID) {
			st.ThemeID = defaults.ThemeID
		}
		if !tracker.ValidPattern(st.PatternID) {
			st.PatternID = defaults.PatternID
		}
		if !tracker.ValidLanguage(st.Language) {
			st.Language = defaults.Language
		}
		payload.Settings = &st
	}

	return payload, nil
}

// ImportResult contains the result of confirming a staged import.
type ImportResult struct {
	Trackers    int  `json:"trackers"` // -1 when the key was absent
	HasSettings bool `json:"has_settings"`
}

// ConfirmImport applies the staged backup payload. Present keys replace
// the corresponding state wholesale; absent keys are left alone. Both
// documents are persisted after the swap.
func ConfirmImport(s *Session) (*ImportResult, error) {
	if s.staged == nil {
		return nil, errors.NewInvalidRequest("no staged import to confirm")
	}
	payload := s.staged.Payload

	result := &ImportResult{Trackers: -1}
	if payload.Trackers != nil {
		s.Trackers = *payload.Trackers
		s.persistTrackers()
		result.Trackers = len(s.Trackers)
	}
	if payload.Settings != nil {
		s.Settings = *payload.Settings
		s.persistSettings()
		result.HasSettings = true
	}

	s.clearPending()
	return result, nil
}

// CancelImport discards a staged import without applying it.
func CancelImport(s *Session) {
	s.clearPending()
}
