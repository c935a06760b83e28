// Package suggest generates task suggestions for a tracker via a
// generative language model. The rest of the application only depends on
// the Client interface, so tests and offline builds can substitute stubs.
package suggest

import (
	"context"
	"fmt"

	"github.com/fantrack/fantrack/internal/tracker"
)

// Client produces suggestion lines for a prompt. Every result is a flat
// list of strings: list items for task kinds, paragraphs for notes.
// The credential travels with each call because the user can change it
// in settings at any point during a session.
type Client interface {
	Suggest(ctx context.Context, apiKey, prompt string, kind tracker.Kind, language string) ([]string, error)
}

// MissingKeyPlaceholder is the single line returned instead of real
// suggestions when no API credential is configured. Localized so it can
// be inserted into the tracker as-is.
func MissingKeyPlaceholder(language string) string {
	if language == "ru" {
		return "API ключ не найден. Укажите его в настройках."
	}
	return "API Key missing. Please set it in settings."
}

// systemInstruction builds the model instruction for one tracker kind.
// Note trackers ask for paragraphs; every other kind asks for list items.
// Both come back as a JSON array of strings.
func systemInstruction(kind tracker.Kind, language string) string {
	lang := "English"
	if language == "ru" {
		lang = "Russian"
	}
	s := fmt.Sprintf("You are a helpful assistant. Answer in %s. ", lang)

	if kind == tracker.KindNote {
		return s + "Write a detailed note, recipe, or guide based on the user request. " +
			"Return the content as a JSON array of strings, where each string is a paragraph or a section."
	}

	s += "Reply ONLY with a JSON array of strings (list items). "
	switch kind {
	case tracker.KindShopping:
		s += "Suggest a shopping list. List only item names."
	case tracker.KindTravel:
		s += "Suggest a travel packing checklist."
	case tracker.KindHabit:
		s += "Suggest good habits to track related to the request."
	case tracker.KindTodo:
		s += "Suggest subtasks for a goal/todo."
	default:
		s += "Suggest list items."
	}
	return s
}
