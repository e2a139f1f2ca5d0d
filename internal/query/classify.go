package query

import (
	"strings"

	"github.com/abhisek/learnix/internal/tasks"
)

// progressEvent is the structured form of a free-text progress message.
// The backend streams prose; substring matching here is a bridging concern
// until it emits discriminated events natively.
type progressEvent int

const (
	eventNone progressEvent = iota
	eventSubmitted
	eventLessonsReady
	eventRelatedReady
	eventRelatedDelayed
)

const relatedDelayedReason = "Related questions are taking longer than expected"

// classifyProgress maps a progress message to an event. Patterns are
// checked in a fixed order; the first match wins for messages that would
// match more than one.
func classifyProgress(text string) progressEvent {
	switch {
	case strings.Contains(text, "submitted"):
		return eventSubmitted
	case strings.Contains(text, "Lessons ready"):
		return eventLessonsReady
	case strings.Contains(text, "Related questions ready"):
		return eventRelatedReady
	case strings.Contains(text, "may take longer"):
		return eventRelatedDelayed
	default:
		return eventNone
	}
}

// applyProgressEvent drives task tracker transitions for one event.
func applyProgressEvent(tracker *tasks.Tracker, ev progressEvent) {
	switch ev {
	case eventSubmitted:
		tracker.UpdateTaskProgress(tasks.TypeLessons, 20)
		tracker.UpdateTaskProgress(tasks.TypeRelatedQuestions, 10)

	case eventLessonsReady:
		tracker.MarkTaskCompleted(tasks.TypeLessons)
		tracker.UpdateTaskProgress(tasks.TypeRelatedQuestions, 50)
		// Flashcards generation is unblocked once lessons exist.
		tracker.UpdateTaskProgress(tasks.TypeFlashcards, 10)

	case eventRelatedReady:
		tracker.MarkTaskCompleted(tasks.TypeRelatedQuestions)
		bumpFlashcardsIfLessonsDone(tracker)

	case eventRelatedDelayed:
		tracker.MarkTaskFailed(tasks.TypeRelatedQuestions, relatedDelayedReason)
		bumpFlashcardsIfLessonsDone(tracker)
	}
}

func bumpFlashcardsIfLessonsDone(tracker *tasks.Tracker) {
	if t, ok := tracker.TaskByType(tasks.TypeLessons); ok && t.Status == tasks.StatusCompleted {
		tracker.UpdateTaskProgress(tasks.TypeFlashcards, 30)
	}
}
