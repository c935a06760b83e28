package tracker

import "testing"

func TestValidKind(t *testing.T) {
	for _, k := range Kinds {
		if !ValidKind(k) {
			t.Errorf("ValidKind(%q) = false", k)
		}
	}
	if ValidKind("GROCERY") {
		t.Error("ValidKind should reject unknown kinds")
	}
	if ValidKind(Kind("shopping")) {
		t.Error("kinds are case-sensitive")
	}
}

func TestHasFinancials(t *testing.T) {
	cases := []struct {
		kind Kind
		want bool
	}{
		{KindShopping, true},
		{KindTravel, true},
		{KindTodo, false},
		{KindHabit, false},
		{KindNote, false},
	}
	for _, tc := range cases {
		if got := tc.kind.HasFinancials(); got != tc.want {
			t.Errorf("%s.HasFinancials() = %v, want %v", tc.kind, got, tc.want)
		}
	}
}

func TestDefaultIcon(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{KindShopping, "ShoppingCart"},
		{KindTravel, "Plane"},
		{KindHabit, "Activity"},
		{KindNote, "FileText"},
		{KindTodo, "CheckSquare"},
		{Kind("UNKNOWN"), "CheckSquare"},
	}
	for _, tc := range cases {
		if got := DefaultIcon(tc.kind); got != tc.want {
			t.Errorf("DefaultIcon(%s) = %q, want %q", tc.kind, got, tc.want)
		}
	}
	for _, tc := range cases {
		if !ValidIcon(tc.want) {
			t.Errorf("default icon %q is not in the permitted set", tc.want)
		}
	}
}

func TestValidIcon(t *testing.T) {
	if !ValidIcon("Ghost") {
		t.Error("Ghost should be permitted")
	}
	if ValidIcon("NotAnIcon") {
		t.Error("unknown icons should be rejected")
	}
	if ValidIcon("") {
		t.Error("empty icon should be rejected")
	}
}

func TestEffectiveValue(t *testing.T) {
	cases := []struct {
		name string
		task Task
		want float64
	}{
		{"value and quantity", Task{Value: floatPtr(3), Quantity: intPtr(2)}, 6},
		{"value only", Task{Value: floatPtr(2)}, 2},
		{"quantity only", Task{Quantity: intPtr(5)}, 0},
		{"neither", Task{}, 0},
	}
	for _, tc := range cases {
		if got := tc.task.EffectiveValue(); got != tc.want {
			t.Errorf("%s: EffectiveValue = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDefaultColor(t *testing.T) {
	if DefaultColor() != Colors[0] {
		t.Errorf("DefaultColor = %q, want first palette entry", DefaultColor())
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if !ValidTheme(s.ThemeID) {
		t.Errorf("default theme %q not in ThemeIDs", s.ThemeID)
	}
	if !ValidPattern(s.PatternID) {
		t.Errorf("default pattern %q not in PatternIDs", s.PatternID)
	}
	if !ValidLanguage(s.Language) {
		t.Errorf("default language %q not in Languages", s.Language)
	}
	if s.APIKey != "" {
		t.Error("default settings must not carry a credential")
	}
}

func TestSettingsValidation(t *testing.T) {
	if ValidTheme("hotdog-stand") {
		t.Error("unknown theme accepted")
	}
	if ValidPattern("plaid") {
		t.Error("unknown pattern accepted")
	}
	if ValidLanguage("fr") {
		t.Error("unsupported language accepted")
	}
	if !ValidLanguage("ru") {
		t.Error("ru should be supported")
	}
}
