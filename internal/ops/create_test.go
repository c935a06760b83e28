package ops

import (
	"testing"

	"github.com/fantrack/fantrack/internal/errors"
	"github.com/fantrack/fantrack/internal/tracker"
)

func TestCreateTracker(t *testing.T) {
	s := newTestSession(t)

	out, err := CreateTracker(s, CreateTrackerInput{
		Title:    "  Groceries  ",
		Kind:     tracker.KindShopping,
		Currency: "$",
	})
	if err != nil {
		t.Fatalf("CreateTracker failed: %v", err)
	}

	got := out.Tracker
	if got.Title != "Groceries" {
		t.Errorf("Title = %q, want trimmed", got.Title)
	}
	if got.ID == "" {
		t.Error("ID not assigned")
	}
	if got.Icon != "ShoppingCart" {
		t.Errorf("Icon = %q, want default for shopping", got.Icon)
	}
	if got.Color != tracker.DefaultColor() {
		t.Errorf("Color = %q, want default", got.Color)
	}
	if got.CreatedAt == 0 {
		t.Error("CreatedAt not set")
	}
	if len(got.Tasks) != 0 {
		t.Errorf("Tasks = %v, want empty", got.Tasks)
	}
}

func TestCreateTracker_PrependsToCollection(t *testing.T) {
	s := newTestSession(t)

	seedTracker(t, s, "First", tracker.KindTodo)
	seedTracker(t, s, "Second", tracker.KindTodo)

	if s.Trackers[0].Title != "Second" {
		t.Errorf("Trackers[0] = %q, want newest first", s.Trackers[0].Title)
	}
}

func TestCreateTracker_Validation(t *testing.T) {
	s := newTestSession(t)

	cases := []struct {
		name  string
		input CreateTrackerInput
	}{
		{"empty title", CreateTrackerInput{Title: "  ", Kind: tracker.KindTodo}},
		{"unknown kind", CreateTrackerInput{Title: "x", Kind: "GROCERY"}},
		{"unknown icon", CreateTrackerInput{Title: "x", Kind: tracker.KindTodo, Icon: "Nope"}},
	}
	for _, tc := range cases {
		if _, err := CreateTracker(s, tc.input); !errors.Is(err, errors.ErrValidation) {
			t.Errorf("%s: err = %v, want validation error", tc.name, err)
		}
	}
	if len(s.Trackers) != 0 {
		t.Error("failed creates must not touch the collection")
	}
}

func TestCreateTracker_ExplicitIconAndColor(t *testing.T) {
	s := newTestSession(t)

	out, err := CreateTracker(s, CreateTrackerInput{
		Title: "Reading",
		Kind:  tracker.KindHabit,
		Icon:  "Ghost",
		Color: tracker.Colors[1],
	})
	if err != nil {
		t.Fatalf("CreateTracker failed: %v", err)
	}
	if out.Tracker.Icon != "Ghost" {
		t.Errorf("Icon = %q", out.Tracker.Icon)
	}
	if out.Tracker.Color != tracker.Colors[1] {
		t.Errorf("Color = %q", out.Tracker.Color)
	}
}
