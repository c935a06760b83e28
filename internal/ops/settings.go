package ops

import (
	"github.com/fantrack/fantrack/internal/errors"
	"github.com/fantrack/fantrack/internal/tracker"
)

// GetSettingsOutput contains the result of the GetSettings operation.
type GetSettingsOutput struct {
	Settings tracker.AppSettings `json:"settings"`
}

// GetSettings returns the current settings.
func GetSettings(s *Session) *GetSettingsOutput {
	return &GetSettingsOutput{Settings: s.Settings}
}

// UpdateSettingsInput contains parameters for the UpdateSettings
// operation. Nil fields are left unchanged.
type UpdateSettingsInput struct {
	ThemeID   *string
	PatternID *string
	APIKey    *string // empty string clears the stored credential
	Language  *string
}

// UpdateSettingsOutput contains the result of the UpdateSettings operation.
type UpdateSettingsOutput struct {
	Settings tracker.AppSettings `json:"settings"`
}

// UpdateSettings applies a partial settings update. Identifier fields
// are validated against their closed sets before anything is persisted.
func UpdateSettings(s *Session, input UpdateSettingsInput) (*UpdateSettingsOutput, error) {
	next := s.Settings

	if input.ThemeID != nil {
		if !tracker.ValidTheme(*input.ThemeID) {
			return nil, errors.NewValidation("unknown theme: " + *input.ThemeID)
		}
		next.ThemeID = *input.ThemeID
	}
	if input.PatternID != nil {
		if !tracker.ValidPattern(*input.PatternID) {
			return nil, errors.NewValidation("unknown pattern: " + *input.PatternID)
		}
		next.PatternID = *input.PatternID
	}
	if input.APIKey != nil {
		next.APIKey = *input.APIKey
	}
	if input.Language != nil {
		if !tracker.ValidLanguage(*input.Language) {
			return nil, errors.NewValidation("unsupported language: " + *input.Language)
		}
		next.Language = *input.Language
	}

	s.Settings = next
	s.persistSettings()

	return &UpdateSettingsOutput{Settings: next}, nil
}
