package shell

import (
	"go.uber.org/zap"

	"github.com/abhisek/learnix/internal/api"
	"github.com/abhisek/learnix/internal/cache"
)

// View is one of the app's named top-level views.
type View string

const (
	ViewHome        View = "home"
	ViewExplanation View = "explanation"
	ViewFlashcards  View = "flashcards"
	ViewQuiz        View = "quiz"
	ViewExplore     View = "explore"
	ViewLibrary     View = "library"
	ViewLessons     View = "lessons"
)

// ProgressStore is the lesson-progress slice of the offline cache the
// shell consumes.
type ProgressStore interface {
	ProgressForTopic(topic string) (*cache.LessonProgress, bool, error)
	LatestProgress() (*cache.LessonProgress, bool, error)
}

// Shell is the top-level view-state switch: the current view plus the
// auxiliary session fields the page screens read and write.
type Shell struct {
	progress ProgressStore
	log      *zap.Logger

	view    View
	history []View

	currentTopic      string
	currentQueryID    string
	currentStepIndex  int
	currentFlashcards *api.ContentResponse
	isUserQuery       bool
}

// New creates a shell starting at the home view.
func New(progress ProgressStore, log *zap.Logger) *Shell {
	if log == nil {
		log = zap.NewNop()
	}
	return &Shell{
		progress: progress,
		log:      log,
		view:     ViewHome,
	}
}

// View returns the current view.
func (s *Shell) View() View { return s.view }

// CurrentTopic returns the active topic, "" if none.
func (s *Shell) CurrentTopic() string { return s.currentTopic }

// CurrentQueryID returns the backend query id for the active topic.
func (s *Shell) CurrentQueryID() string { return s.currentQueryID }

// CurrentStepIndex returns the active lesson step.
func (s *Shell) CurrentStepIndex() int { return s.currentStepIndex }

// CurrentFlashcards returns the flashcards payload for the flashcards view.
func (s *Shell) CurrentFlashcards() *api.ContentResponse { return s.currentFlashcards }

// IsUserQuery reports whether the active session came from a user-initiated
// query rather than an internal continue-lesson action.
func (s *Shell) IsUserQuery() bool { return s.isUserQuery }

// SetQueryID records the resolved backend query id for the active topic.
func (s *Shell) SetQueryID(queryID string) { s.currentQueryID = queryID }

// StartExploration enters the explanation view for a topic. If a progress
// entry exists for the topic the session resumes at its recorded step and
// is marked user-initiated; otherwise it starts at step 0, flagged as a
// user query unless the transition came from an internal continue-lesson
// action.
func (s *Shell) StartExploration(topic string, fromContinue bool) {
	entry, ok, err := s.progress.ProgressForTopic(topic)
	if err != nil {
		s.log.Warn("progress lookup failed", zap.String("topic", topic), zap.Error(err))
		ok = false
	}

	s.currentTopic = topic
	if ok {
		s.currentStepIndex = entry.LastStepIndex
		s.currentQueryID = entry.QueryID
		s.isUserQuery = true
	} else {
		s.currentStepIndex = 0
		s.isUserQuery = !fromContinue
	}
	s.navigate(ViewExplanation)
}

// ShowExplanation enters the explanation view. With no current topic it
// falls back to resuming the most recently created progress entry, or to
// home when none exist.
func (s *Shell) ShowExplanation() {
	if s.currentTopic != "" {
		s.navigate(ViewExplanation)
		return
	}

	entry, ok, err := s.progress.LatestProgress()
	if err != nil {
		s.log.Warn("latest progress lookup failed", zap.Error(err))
		ok = false
	}
	if !ok {
		s.navigate(ViewHome)
		return
	}

	s.currentTopic = entry.Topic
	s.currentQueryID = entry.QueryID
	s.currentStepIndex = entry.LastStepIndex
	s.isUserQuery = true
	s.navigate(ViewExplanation)
}

// ShowHome enters the home view.
func (s *Shell) ShowHome() { s.navigate(ViewHome) }

// ShowExplore enters the topic-query view.
func (s *Shell) ShowExplore() { s.navigate(ViewExplore) }

// ShowLibrary enters the saved-progress library view.
func (s *Shell) ShowLibrary() { s.navigate(ViewLibrary) }

// ShowLessons enters the recent-lessons view.
func (s *Shell) ShowLessons() { s.navigate(ViewLessons) }

// GenerateFlashcards enters the flashcards view with the given payload.
func (s *Shell) GenerateFlashcards(cards *api.ContentResponse) {
	s.currentFlashcards = cards
	s.navigate(ViewFlashcards)
}

// StartQuiz enters the quiz view.
func (s *Shell) StartQuiz() { s.navigate(ViewQuiz) }

// NextStep advances the lesson step.
func (s *Shell) NextStep() { s.currentStepIndex++ }

// JumpToStep jumps to a specific lesson step.
func (s *Shell) JumpToStep(index int) {
	if index < 0 {
		index = 0
	}
	s.currentStepIndex = index
}

// GoBack returns to the previous view, or home when there is no history.
func (s *Shell) GoBack() {
	if len(s.history) == 0 {
		s.view = ViewHome
		return
	}
	s.view = s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
}

func (s *Shell) navigate(v View) {
	if v == s.view {
		return
	}
	s.history = append(s.history, s.view)
	s.view = v
}
