package ops

import (
	"github.com/fantrack/fantrack/internal/errors"
)

// ActionKind identifies a destructive operation awaiting confirmation.
type ActionKind string

const (
	ActionDeleteTracker  ActionKind = "delete_tracker"
	ActionClearCompleted ActionKind = "clear_completed"
	ActionDeleteAllTasks ActionKind = "delete_all_tasks"
	ActionImport         ActionKind = "import"
)

// PendingAction describes a staged destructive operation. Destructive
// operations run in two phases: the first call stages the action and
// returns it for display, a confirming call executes it. Staging a new
// action replaces any previously staged one.
type PendingAction struct {
	Kind      ActionKind `json:"kind"`
	TrackerID string     `json:"tracker_id,omitempty"`
	Summary   string     `json:"summary"`
}

// Pending returns the currently staged action, or nil.
func (s *Session) Pending() *PendingAction {
	return s.pending
}

// stage records a pending action, replacing any previous one. Staging a
// non-import action discards a staged import payload.
func (s *Session) stage(p *PendingAction) *PendingAction {
	s.pending = p
	if p.Kind != ActionImport {
		s.staged = nil
	}
	return p
}

// clearPending drops the staged action and any staged import payload.
func (s *Session) clearPending() {
	s.pending = nil
	s.staged = nil
}

// ConfirmOutput contains the result of confirming a pending action.
type ConfirmOutput struct {
	Applied PendingAction `json:"applied"`
}

// ConfirmPending executes the staged action.
func ConfirmPending(s *Session) (*ConfirmOutput, error) {
	p := s.pending
	if p == nil {
		return nil, errors.NewInvalidRequest("no pending action to confirm")
	}

	var err error
	switch p.Kind {
	case ActionDeleteTracker:
		_, err = DeleteTracker(s, DeleteTrackerInput{ID: p.TrackerID, Confirm: true})
	case ActionClearCompleted:
		_, err = ClearCompleted(s, ClearCompletedInput{TrackerID: p.TrackerID, Confirm: true})
	case ActionDeleteAllTasks:
		_, err = DeleteAllTasks(s, DeleteAllTasksInput{TrackerID: p.TrackerID, Confirm: true})
	case ActionImport:
		_, err = ConfirmImport(s)
	default:
		err = errors.NewInternal(nil)
	}
	if err != nil {
		return nil, err
	}

	s.clearPending()
	return &ConfirmOutput{Applied: *p}, nil
}

// CancelPending discards the staged action without executing it.
// Cancelling with nothing staged is a no-op.
func CancelPending(s *Session) {
	s.clearPending()
}
