package explanation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/learnix/internal/api"
	"github.com/abhisek/learnix/internal/cache"
	"github.com/abhisek/learnix/internal/content"
	"github.com/abhisek/learnix/internal/router"
	"github.com/abhisek/learnix/internal/screen"
	"github.com/abhisek/learnix/internal/shell"
	"github.com/abhisek/learnix/internal/ui/layout"
	"github.com/abhisek/learnix/internal/ui/theme"
)

type lessonsMsg struct {
	lessons []content.Lesson
	errMsg  string
}

type flashcardsMsg struct {
	cards  *api.ContentResponse
	errMsg string
}

// LessonBackend is the API slice the explanation screen fetches lessons
// through.
type LessonBackend interface {
	Lessons(ctx context.Context, queryID string) (*api.ContentResponse, error)
}

// CardSource fetches flashcards for a lesson.
type CardSource interface {
	LessonFlashcards(ctx context.Context, queryID string, lessonIndex int) *api.ContentResponse
	State() (loading bool, errMsg string)
}

// ExplanationScreen walks the user through the lesson steps of the active
// topic.
type ExplanationScreen struct {
	shell   *shell.Shell
	backend LessonBackend
	cards   CardSource
	store   *cache.Store
	log     *zap.Logger

	lessons  []content.Lesson
	loading  bool
	errMsg   string
	fetching bool
}

var _ screen.Screen = (*ExplanationScreen)(nil)
var _ screen.KeyHintProvider = (*ExplanationScreen)(nil)

// New creates a new ExplanationScreen for the shell's active topic.
func New(sh *shell.Shell, backend LessonBackend, cards CardSource, store *cache.Store, log *zap.Logger) *ExplanationScreen {
	if log == nil {
		log = zap.NewNop()
	}
	return &ExplanationScreen{
		shell:   sh,
		backend: backend,
		cards:   cards,
		store:   store,
		log:     log,
	}
}

func (e *ExplanationScreen) Init() tea.Cmd {
	queryID := e.shell.CurrentQueryID()
	if queryID == "" {
		e.errMsg = "No lesson content available for this topic yet."
		return nil
	}

	e.loading = true
	backend := e.backend
	return func() tea.Msg {
		resp, err := backend.Lessons(context.Background(), queryID)
		if err != nil {
			return lessonsMsg{errMsg: deriveFetchError(err)}
		}
		return lessonsMsg{lessons: content.DecodeLessons(resp.Content)}
	}
}

func (e *ExplanationScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lessonsMsg:
		e.loading = false
		e.lessons = msg.lessons
		e.errMsg = msg.errMsg
		if e.errMsg == "" && len(e.lessons) == 0 {
			e.errMsg = "No lesson content available for this topic yet."
		}
		return e, nil

	case flashcardsMsg:
		e.fetching = false
		if msg.errMsg != "" {
			e.errMsg = msg.errMsg
			return e, nil
		}
		cards := msg.cards
		return e, func() tea.Msg {
			return router.ShowFlashcardsMsg{Cards: cards}
		}

	case tea.KeyMsg:
		return e.handleKey(msg)
	}

	return e, nil
}

func (e *ExplanationScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if e.loading || e.fetching || len(e.lessons) == 0 {
		return e, nil
	}

	switch msg.String() {
	case "n", "right":
		if e.shell.CurrentStepIndex() < len(e.lessons)-1 {
			e.shell.NextStep()
			e.saveProgress()
		}
	case "p", "left":
		if e.shell.CurrentStepIndex() > 0 {
			e.shell.JumpToStep(e.shell.CurrentStepIndex() - 1)
			e.saveProgress()
		}
	case "f":
		return e, e.fetchFlashcards()
	case "q":
		return e, func() tea.Msg {
			return router.ShowViewMsg{View: shell.ViewQuiz}
		}
	}

	return e, nil
}

func (e *ExplanationScreen) fetchFlashcards() tea.Cmd {
	e.fetching = true
	e.errMsg = ""
	queryID := e.shell.CurrentQueryID()
	step := e.stepIndex()
	cards := e.cards
	return func() tea.Msg {
		resp := cards.LessonFlashcards(context.Background(), queryID, step)
		if resp == nil {
			_, errMsg := cards.State()
			return flashcardsMsg{errMsg: errMsg}
		}
		return flashcardsMsg{cards: resp}
	}
}

// saveProgress records the current step; failures are logged and ignored.
func (e *ExplanationScreen) saveProgress() {
	if e.store == nil {
		return
	}
	err := e.store.SaveProgress(e.shell.CurrentTopic(), e.shell.CurrentQueryID(), e.shell.CurrentStepIndex())
	if err != nil {
		e.log.Warn("failed to save progress",
			zap.String("topic", e.shell.CurrentTopic()),
			zap.Error(err))
	}
}

// stepIndex clamps the shell's step index to the decoded lesson range.
func (e *ExplanationScreen) stepIndex() int {
	idx := e.shell.CurrentStepIndex()
	if idx >= len(e.lessons) {
		idx = len(e.lessons) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

func (e *ExplanationScreen) View(width, height int) string {
	if e.loading {
		return centered(theme.Subtitle.Render("Loading lessons..."), width, height)
	}
	if e.errMsg != "" && len(e.lessons) == 0 {
		return centered(theme.Incorrect.Render(e.errMsg), width, height)
	}
	if len(e.lessons) == 0 {
		return centered(theme.Subtitle.Render("Nothing to show."), width, height)
	}

	idx := e.stepIndex()
	lesson := e.lessons[idx]

	var b strings.Builder

	step := theme.Hint.Render(fmt.Sprintf("Step %d of %d", idx+1, len(e.lessons)))
	b.WriteString(step + "\n\n")
	b.WriteString(theme.Title.Align(lipgloss.Left).Render(lesson.Title) + "\n\n")
	b.WriteString(theme.Body.Width(width-8).Render(lesson.Overview) + "\n")

	if len(lesson.KeyConcepts) > 0 {
		b.WriteString("\n" + theme.Body.Bold(true).Render("Key concepts") + "\n")
		for _, c := range lesson.KeyConcepts {
			b.WriteString(theme.Body.Width(width - 10).Render("  • " + c) + "\n")
		}
	}

	if len(lesson.Examples) > 0 {
		b.WriteString("\n" + theme.Body.Bold(true).Render("Examples") + "\n")
		for _, ex := range lesson.Examples {
			b.WriteString(theme.Body.Width(width - 10).Render("  › " + ex) + "\n")
		}
	}

	if e.fetching {
		b.WriteString("\n" + theme.Hint.Render("Fetching flashcards...") + "\n")
	} else if e.errMsg != "" {
		b.WriteString("\n" + theme.Incorrect.Render(e.errMsg) + "\n")
	}

	card := theme.Card.Width(width - 6).Render(b.String())
	return lipgloss.NewStyle().MarginLeft(2).MarginTop(1).Render(card)
}

func (e *ExplanationScreen) Title() string {
	return "Explanation"
}

func (e *ExplanationScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "n/p", Description: "Step"},
		{Key: "f", Description: "Flashcards"},
		{Key: "q", Description: "Quiz"},
		{Key: "Esc", Description: "Back"},
	}
}

func centered(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func deriveFetchError(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if err != nil {
		return err.Error()
	}
	return "An unexpected error occurred."
}
