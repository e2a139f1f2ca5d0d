package explore

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/learnix/internal/cache"
	"github.com/abhisek/learnix/internal/query"
	"github.com/abhisek/learnix/internal/router"
	"github.com/abhisek/learnix/internal/screen"
	"github.com/abhisek/learnix/internal/shell"
	"github.com/abhisek/learnix/internal/tasks"
	"github.com/abhisek/learnix/internal/ui/components"
	"github.com/abhisek/learnix/internal/ui/layout"
	"github.com/abhisek/learnix/internal/ui/theme"
)

const pollEvery = 100 * time.Millisecond

type phase int

const (
	phaseInput phase = iota
	phaseSubmitting
	phaseError
)

type tickMsg struct{}

// ExploreScreen lets the user submit a topic query and watches the
// workflow until content is ready.
type ExploreScreen struct {
	workflow *query.Workflow
	shell    *shell.Shell
	store    *cache.Store
	log      *zap.Logger
	userID   string

	input components.TextInput
	phase phase
	topic string
}

var _ screen.Screen = (*ExploreScreen)(nil)
var _ screen.KeyHintProvider = (*ExploreScreen)(nil)

// New creates a new ExploreScreen.
func New(wf *query.Workflow, sh *shell.Shell, store *cache.Store, userID string, log *zap.Logger) *ExploreScreen {
	if log == nil {
		log = zap.NewNop()
	}
	return &ExploreScreen{
		workflow: wf,
		shell:    sh,
		store:    store,
		log:      log,
		userID:   userID,
		input:    components.NewTextInput("What do you want to learn about?", 200),
		phase:    phaseInput,
	}
}

func (e *ExploreScreen) Init() tea.Cmd {
	return e.input.Init()
}

func (e *ExploreScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch e.phase {
	case phaseInput:
		return e.updateInput(msg)
	case phaseSubmitting:
		return e.updateSubmitting(msg)
	case phaseError:
		return e.updateError(msg)
	}
	return e, nil
}

func (e *ExploreScreen) updateInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		topic := strings.TrimSpace(e.input.Value())
		if topic == "" {
			return e, nil
		}
		e.topic = topic
		e.phase = phaseSubmitting
		e.workflow.SubmitQuery(topic, e.userID)
		return e, tick()
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return e, cmd
}

func (e *ExploreScreen) updateSubmitting(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tickMsg); !ok {
		return e, nil
	}

	st := e.workflow.State()

	if st.Err != "" {
		e.phase = phaseError
		return e, nil
	}

	if st.Done() {
		// Persist a fresh progress entry so the session can be resumed
		// later; failures are logged, the session continues.
		if e.store != nil {
			if err := e.store.SaveProgress(e.topic, st.QueryID, 0); err != nil {
				e.log.Warn("failed to save progress", zap.String("topic", e.topic), zap.Error(err))
			}
		}
		e.shell.SetQueryID(st.QueryID)
		topic := e.topic
		return e, func() tea.Msg {
			return router.StartExplorationMsg{Topic: topic}
		}
	}

	return e, tick()
}

func (e *ExploreScreen) updateError(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return e, nil
	}
	if kmsg.String() == "enter" {
		e.workflow.ClearError()
		e.phase = phaseInput
		e.input.SetValue("")
		return e, e.input.Init()
	}
	return e, nil
}

func (e *ExploreScreen) View(width, height int) string {
	var content string

	switch e.phase {
	case phaseInput:
		content = e.viewInput(width)
	case phaseSubmitting:
		content = e.viewSubmitting(width)
	case phaseError:
		content = e.viewError(width)
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Left, lipgloss.Center).
		Render(content)
}

func (e *ExploreScreen) viewInput(width int) string {
	prompt := theme.Body.Render("  Enter a topic to explore:")
	box := theme.Card.Width(width - 8).Render(e.input.View())
	hint := theme.Hint.Render("  Press Enter to submit")
	return prompt + "\n\n" + lipgloss.NewStyle().MarginLeft(2).Render(box) + "\n\n" + hint
}

func (e *ExploreScreen) viewSubmitting(width int) string {
	st := e.workflow.State()

	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render("  "+e.topic) + "\n\n")
	b.WriteString(theme.Subtitle.Align(lipgloss.Left).Render("  "+st.Progress) + "\n\n")

	barWidth := width - 12
	if barWidth > 60 {
		barWidth = 60
	}

	for _, task := range e.workflow.Tracker().Snapshot() {
		bar := components.NewProgressBar(taskLabel(task.Type), float64(task.Progress)/100, true, barWidth)
		bar.Failed = task.Status == tasks.StatusFailed
		b.WriteString("  " + bar.View() + "\n")
		if task.Status == tasks.StatusFailed && task.FailureReason != "" {
			b.WriteString("  " + theme.Hint.Render(task.FailureReason) + "\n")
		}
	}

	return b.String()
}

func (e *ExploreScreen) viewError(width int) string {
	msg := theme.Incorrect.Render("  " + e.workflow.State().Err)
	hint := theme.Hint.Render("  Press Enter to try again")
	return msg + "\n\n" + hint
}

func (e *ExploreScreen) Title() string {
	return "Explore"
}

func (e *ExploreScreen) KeyHints() []layout.KeyHint {
	switch e.phase {
	case phaseSubmitting:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Cancel"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case phaseError:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func tick() tea.Cmd {
	return tea.Tick(pollEvery, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func taskLabel(typ tasks.ContentTaskType) string {
	switch typ {
	case tasks.TypeLessons:
		return "Lessons          "
	case tasks.TypeRelatedQuestions:
		return "Related questions"
	case tasks.TypeFlashcards:
		return "Flashcards       "
	case tasks.TypeQuiz:
		return "Quiz             "
	}
	return string(typ)
}
