package shell

import (
	"errors"
	"testing"

	"github.com/abhisek/learnix/internal/api"
	"github.com/abhisek/learnix/internal/cache"
)

type stubProgress struct {
	byTopic map[string]*cache.LessonProgress
	latest  *cache.LessonProgress
	err     error
}

func (s *stubProgress) ProgressForTopic(topic string) (*cache.LessonProgress, bool, error) {
	if s.err != nil {
		return nil, false, s.err
	}
	p, ok := s.byTopic[topic]
	return p, ok, nil
}

func (s *stubProgress) LatestProgress() (*cache.LessonProgress, bool, error) {
	if s.err != nil {
		return nil, false, s.err
	}
	return s.latest, s.latest != nil, nil
}

func newTestShell(progress *stubProgress) *Shell {
	if progress == nil {
		progress = &stubProgress{}
	}
	if progress.byTopic == nil {
		progress.byTopic = make(map[string]*cache.LessonProgress)
	}
	return New(progress, nil)
}

func TestNew_StartsAtHome(t *testing.T) {
	s := newTestShell(nil)
	if s.View() != ViewHome {
		t.Errorf("expected home, got %s", s.View())
	}
}

func TestStartExploration_FreshTopic(t *testing.T) {
	s := newTestShell(nil)

	s.StartExploration("gravity", false)

	if s.View() != ViewExplanation {
		t.Errorf("expected explanation view, got %s", s.View())
	}
	if s.CurrentTopic() != "gravity" {
		t.Errorf("expected gravity, got %q", s.CurrentTopic())
	}
	if s.CurrentStepIndex() != 0 {
		t.Errorf("expected step 0, got %d", s.CurrentStepIndex())
	}
	if !s.IsUserQuery() {
		t.Error("expected user-initiated flag")
	}
}

func TestStartExploration_ResumesSavedProgress(t *testing.T) {
	s := newTestShell(&stubProgress{byTopic: map[string]*cache.LessonProgress{
		"gravity": {Topic: "gravity", QueryID: "q-7", LastStepIndex: 3},
	}})

	s.StartExploration("gravity", true)

	if s.CurrentStepIndex() != 3 {
		t.Errorf("expected resume at step 3, got %d", s.CurrentStepIndex())
	}
	if s.CurrentQueryID() != "q-7" {
		t.Errorf("expected q-7, got %q", s.CurrentQueryID())
	}
	// A resumed session counts as user-initiated regardless of origin.
	if !s.IsUserQuery() {
		t.Error("expected user-initiated flag on resume")
	}
}

func TestStartExploration_FromContinueWithoutProgress(t *testing.T) {
	s := newTestShell(nil)

	s.StartExploration("gravity", true)

	if s.IsUserQuery() {
		t.Error("expected internal transition flag")
	}
}

func TestStartExploration_LookupErrorActsAsMiss(t *testing.T) {
	s := newTestShell(&stubProgress{err: errors.New("db closed")})

	s.StartExploration("gravity", false)

	if s.View() != ViewExplanation || s.CurrentStepIndex() != 0 {
		t.Errorf("expected fresh session, got view=%s step=%d", s.View(), s.CurrentStepIndex())
	}
}

func TestShowExplanation_KeepsActiveTopic(t *testing.T) {
	s := newTestShell(nil)
	s.StartExploration("gravity", false)
	s.ShowHome()

	s.ShowExplanation()

	if s.View() != ViewExplanation {
		t.Errorf("expected explanation, got %s", s.View())
	}
	if s.CurrentTopic() != "gravity" {
		t.Errorf("expected gravity, got %q", s.CurrentTopic())
	}
}

func TestShowExplanation_FallsBackToLatestProgress(t *testing.T) {
	s := newTestShell(&stubProgress{latest: &cache.LessonProgress{
		Topic: "entropy", QueryID: "q-2", LastStepIndex: 1,
	}})

	s.ShowExplanation()

	if s.View() != ViewExplanation {
		t.Errorf("expected explanation, got %s", s.View())
	}
	if s.CurrentTopic() != "entropy" || s.CurrentStepIndex() != 1 {
		t.Errorf("expected entropy at step 1, got %q step %d", s.CurrentTopic(), s.CurrentStepIndex())
	}
}

func TestShowExplanation_NoTopicNoProgressGoesHome(t *testing.T) {
	s := newTestShell(nil)
	s.ShowExplore()

	s.ShowExplanation()

	if s.View() != ViewHome {
		t.Errorf("expected home fallback, got %s", s.View())
	}
}

func TestGenerateFlashcards_CarriesPayload(t *testing.T) {
	s := newTestShell(nil)
	resp := &api.ContentResponse{QueryID: "q-1"}

	s.GenerateFlashcards(resp)

	if s.View() != ViewFlashcards {
		t.Errorf("expected flashcards view, got %s", s.View())
	}
	if s.CurrentFlashcards() != resp {
		t.Error("expected payload carried on shell")
	}
}

func TestSteps(t *testing.T) {
	s := newTestShell(nil)
	s.StartExploration("gravity", false)

	s.NextStep()
	s.NextStep()
	if s.CurrentStepIndex() != 2 {
		t.Errorf("expected step 2, got %d", s.CurrentStepIndex())
	}

	s.JumpToStep(5)
	if s.CurrentStepIndex() != 5 {
		t.Errorf("expected step 5, got %d", s.CurrentStepIndex())
	}

	s.JumpToStep(-3)
	if s.CurrentStepIndex() != 0 {
		t.Errorf("expected clamp to 0, got %d", s.CurrentStepIndex())
	}
}

func TestGoBack_PopsHistory(t *testing.T) {
	s := newTestShell(nil)
	s.ShowExplore()
	s.StartExploration("gravity", false)

	s.GoBack()
	if s.View() != ViewExplore {
		t.Errorf("expected explore, got %s", s.View())
	}

	s.GoBack()
	if s.View() != ViewHome {
		t.Errorf("expected home, got %s", s.View())
	}

	// Empty history falls back to home.
	s.GoBack()
	if s.View() != ViewHome {
		t.Errorf("expected home, got %s", s.View())
	}
}

func TestNavigate_SameViewIsNoop(t *testing.T) {
	s := newTestShell(nil)
	s.ShowExplore()
	s.ShowExplore()

	s.GoBack()
	if s.View() != ViewHome {
		t.Errorf("expected home after one back, got %s", s.View())
	}
}
