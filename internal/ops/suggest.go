package ops

import (
	"context"
	"log"
	"strings"

	"github.com/fantrack/fantrack/internal/errors"
	"github.com/fantrack/fantrack/internal/tracker"
)

// SuggestInput contains parameters for the Suggest operation.
type SuggestInput struct {
	TrackerID string // required
	Prompt    string // required
	Apply     bool   // insert the suggestions into the tracker
}

// SuggestOutput contains the result of the Suggest operation.
type SuggestOutput struct {
	Suggestions []string         `json:"suggestions"`
	Tracker     *tracker.Tracker `json:"tracker,omitempty"` // present when applied
}

// Suggest asks the AI collaborator for content matching the tracker's
// kind. With Apply, note trackers get the lines joined into the note
// body as paragraphs and every other kind gets one new task per line.
// A collaborator failure degrades to an empty list and never touches
// tracker state.
func Suggest(ctx context.Context, s *Session, input SuggestInput) (*SuggestOutput, error) {
	prompt := cleanText(input.Prompt)
	if prompt == "" {
		return nil, errors.NewValidation("prompt is required")
	}

	t, ok := s.findTracker(input.TrackerID)
	if !ok {
		return nil, errors.NewNotFound(input.TrackerID)
	}

	if s.Suggest == nil {
		return &SuggestOutput{Suggestions: []string{}}, nil
	}
	lines, err := s.Suggest.Suggest(ctx, s.Settings.APIKey, prompt, t.Kind, s.Settings.Language)
	if err != nil {
		log.Printf("suggest: %v", errors.NewSuggestion(err))
		return &SuggestOutput{Suggestions: []string{}}, nil
	}
	if lines == nil {
		lines = []string{}
	}

	out := &SuggestOutput{Suggestions: lines}
	if !input.Apply || len(lines) == 0 {
		return out, nil
	}

	if t.Kind == tracker.KindNote {
		body := strings.Join(lines, "\n\n")
		if t.NoteContent != "" {
			body = t.NoteContent + "\n\n" + body
		}
		t.NoteContent = body
	} else {
		for _, line := range lines {
			line = cleanText(line)
			if line == "" {
				continue
			}
			id, err := newID()
			if err != nil {
				return nil, errors.NewInternal(err)
			}
			t, _ = tracker.AddTask(t, id, line, nil, 1)
		}
	}

	s.Trackers = tracker.Replace(s.Trackers, t)
	s.persistTrackers()

	out.Tracker = &t
	return out, nil
}
