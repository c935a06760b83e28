package ops

import (
	"testing"

	"github.com/fantrack/fantrack/internal/errors"
	"github.com/fantrack/fantrack/internal/tracker"
)

func TestUpdateSettings_PartialUpdate(t *testing.T) {
	s := newTestSession(t)

	theme := "aurora"
	out, err := UpdateSettings(s, UpdateSettingsInput{ThemeID: &theme})
	if err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}

	if out.Settings.ThemeID != "aurora" {
		t.Errorf("ThemeID = %q", out.Settings.ThemeID)
	}
	// Untouched fields keep defaults
	if out.Settings.Language != tracker.DefaultSettings().Language {
		t.Errorf("Language = %q, want default", out.Settings.Language)
	}
}

func TestUpdateSettings_RejectsUnknownIdentifiers(t *testing.T) {
	s := newTestSession(t)
	before := s.Settings

	bad := "neon"
	if _, err := UpdateSettings(s, UpdateSettingsInput{ThemeID: &bad}); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("bad theme: err = %v", err)
	}
	if _, err := UpdateSettings(s, UpdateSettingsInput{PatternID: &bad}); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("bad pattern: err = %v", err)
	}
	if _, err := UpdateSettings(s, UpdateSettingsInput{Language: &bad}); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("bad language: err = %v", err)
	}
	if s.Settings != before {
		t.Error("failed update must not change settings")
	}
}

func TestUpdateSettings_APIKeySetAndClear(t *testing.T) {
	s := newTestSession(t)

	key := "secret"
	if _, err := UpdateSettings(s, UpdateSettingsInput{APIKey: &key}); err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	if s.Settings.APIKey != "secret" {
		t.Errorf("APIKey = %q", s.Settings.APIKey)
	}

	empty := ""
	if _, err := UpdateSettings(s, UpdateSettingsInput{APIKey: &empty}); err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	if s.Settings.APIKey != "" {
		t.Error("empty key should clear the credential")
	}
}

func TestGetSettings(t *testing.T) {
	s := newTestSession(t)
	if got := GetSettings(s); got.Settings != s.Settings {
		t.Errorf("GetSettings = %+v", got.Settings)
	}
}
