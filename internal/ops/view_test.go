package ops

import (
	"testing"

	"github.com/fantrack/fantrack/internal/errors"
	"github.com/fantrack/fantrack/internal/tracker"
)

func TestTrackerView(t *testing.T) {
	s := newTestSession(t)
	created := seedTracker(t, s, "Groceries", tracker.KindShopping)

	value := 3.0
	if _, err := AddTask(s, AddTaskInput{TrackerID: created.ID, Text: "Milk", Value: &value, Quantity: 2}); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	done := seedTask(t, s, created.ID, "Eggs")
	if _, err := ToggleTask(s, ToggleTaskInput{TrackerID: created.ID, TaskID: done.ID}); err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}

	out, err := TrackerView(s, TrackerViewInput{TrackerID: created.ID})
	if err != nil {
		t.Fatalf("TrackerView failed: %v", err)
	}

	if len(out.View.Active) != 1 || out.View.Active[0].Text != "Milk" {
		t.Errorf("Active = %+v", out.View.Active)
	}
	if len(out.View.Completed) != 1 || out.View.Completed[0].Text != "Eggs" {
		t.Errorf("Completed = %+v", out.View.Completed)
	}
	if out.TotalValue != 6 {
		t.Errorf("TotalValue = %v, want 6", out.TotalValue)
	}
}

func TestTrackerView_SearchDoesNotAffectTotal(t *testing.T) {
	s := newTestSession(t)
	created := seedTracker(t, s, "Groceries", tracker.KindShopping)

	milk, bread := 3.0, 2.0
	if _, err := AddTask(s, AddTaskInput{TrackerID: created.ID, Text: "Milk", Value: &milk}); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if _, err := AddTask(s, AddTaskInput{TrackerID: created.ID, Text: "Bread", Value: &bread}); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	out, err := TrackerView(s, TrackerViewInput{TrackerID: created.ID, Search: "milk"})
	if err != nil {
		t.Fatalf("TrackerView failed: %v", err)
	}
	if out.View.Filtered() != 1 {
		t.Errorf("Filtered = %d, want 1", out.View.Filtered())
	}
	if out.TotalValue != 5 {
		t.Errorf("TotalValue = %v, want 5 (full list, not the filtered view)", out.TotalValue)
	}
}

func TestTrackerView_InvalidSort(t *testing.T) {
	s := newTestSession(t)
	created := seedTracker(t, s, "Groceries", tracker.KindShopping)

	if _, err := TrackerView(s, TrackerViewInput{TrackerID: created.ID, Sort: "price"}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("err = %v, want invalid request", err)
	}
}
