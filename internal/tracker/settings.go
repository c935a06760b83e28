package tracker

// AppSettings is the process-wide user configuration. It is loaded once at
// startup, mutated by whole-object replace, and persisted after every
// mutation. Field names follow the persisted JSON shape.
type AppSettings struct {
	ThemeID   string `json:"themeId"`
	PatternID string `json:"patternId"`
	APIKey    string `json:"userApiKey,omitempty"` // AI suggestion credential
	Language  string `json:"language"`             // "en" or "ru"
}

// Closed identifier sets for settings. Values outside these sets are
// rejected when settings are replaced.
var (
	ThemeIDs   = []string{"deep-space", "aurora", "sunset", "ocean", "forest", "midnight"}
	PatternIDs = []string{"none", "dots", "grid", "waves", "diagonal"}
	Languages  = []string{"en", "ru"}
)

// DefaultSettings returns the settings used before any are persisted.
func DefaultSettings() AppSettings {
	return AppSettings{
		ThemeID:   "deep-space",
		PatternID: "none",
		Language:  "en",
	}
}

// ValidTheme reports whether id is a known theme identifier.
func ValidTheme(id string) bool {
	return contains(ThemeIDs, id)
}

// ValidPattern reports whether id is a known background pattern identifier.
func ValidPattern(id string) bool {
	return contains(PatternIDs, id)
}

// ValidLanguage reports whether lang is a supported language tag.
func ValidLanguage(lang string) bool {
	return contains(Languages, lang)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
