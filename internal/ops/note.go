package ops

import (
	"github.com/fantrack/fantrack/internal/errors"
	"github.com/fantrack/fantrack/internal/tracker"
)

// SetNoteInput contains parameters for the SetNote operation.
type SetNoteInput struct {
	TrackerID string // required
	Content   string // replaces the note body; empty clears it
}

// SetNoteOutput contains the result of the SetNote operation.
type SetNoteOutput struct {
	Tracker tracker.Tracker `json:"tracker"`
}

// SetNote replaces a tracker's free-form note body. Any tracker kind
// may carry a note, though the note kind is the primary user.
func SetNote(s *Session, input SetNoteInput) (*SetNoteOutput, error) {
	t, ok := s.findTracker(input.TrackerID)
	if !ok {
		return nil, errors.NewNotFound(input.TrackerID)
	}

	t.NoteContent = input.Content
	s.Trackers = tracker.Replace(s.Trackers, t)
	s.persistTrackers()

	return &SetNoteOutput{Tracker: t}, nil
}
