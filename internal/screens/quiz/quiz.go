package quiz

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnix/internal/api"
	"github.com/abhisek/learnix/internal/content"
	"github.com/abhisek/learnix/internal/router"
	"github.com/abhisek/learnix/internal/screen"
	"github.com/abhisek/learnix/internal/shell"
	"github.com/abhisek/learnix/internal/ui/components"
	"github.com/abhisek/learnix/internal/ui/layout"
	"github.com/abhisek/learnix/internal/ui/theme"
)

type quizMsg struct {
	quiz   *content.Quiz
	errMsg string
}

// QuizSource fetches a quiz for a lesson.
type QuizSource interface {
	QuizForLesson(ctx context.Context, queryID string, lessonIndex int) *api.ContentResponse
	State() (loading bool, errMsg string)
}

// question is one normalized quiz question; true/false questions become
// two-option choices.
type question struct {
	choice      components.MultiChoice
	explanation string
}

// QuizScreen runs the quiz for the active lesson step.
type QuizScreen struct {
	shell  *shell.Shell
	source QuizSource

	questions []question
	index     int
	score     int
	answered  bool
	finished  bool
	loading   bool
	errMsg    string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen for the shell's active topic and step.
func New(sh *shell.Shell, source QuizSource) *QuizScreen {
	return &QuizScreen{shell: sh, source: source}
}

func (q *QuizScreen) Init() tea.Cmd {
	queryID := q.shell.CurrentQueryID()
	if queryID == "" {
		q.errMsg = "No quiz available for this topic yet."
		return nil
	}

	q.loading = true
	source := q.source
	step := q.shell.CurrentStepIndex()
	return func() tea.Msg {
		resp := source.QuizForLesson(context.Background(), queryID, step)
		if resp == nil {
			_, errMsg := source.State()
			return quizMsg{errMsg: errMsg}
		}
		return quizMsg{quiz: content.DecodeQuiz(resp.Content)}
	}
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizMsg:
		q.loading = false
		if msg.errMsg != "" {
			q.errMsg = msg.errMsg
			return q, nil
		}
		q.questions = buildQuestions(msg.quiz)
		if len(q.questions) == 0 {
			q.errMsg = "No quiz available for this topic yet."
		}
		return q, nil

	case tea.KeyMsg:
		return q.handleKey(msg)
	}

	return q, nil
}

func (q *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if q.loading || len(q.questions) == 0 {
		return q, nil
	}

	if q.finished {
		if msg.String() == "enter" {
			return q, func() tea.Msg { return router.BackMsg{} }
		}
		return q, nil
	}

	cur := &q.questions[q.index]

	if q.answered {
		if msg.String() == "enter" {
			if q.index == len(q.questions)-1 {
				q.finished = true
			} else {
				q.index++
				q.answered = false
			}
		}
		return q, nil
	}

	var cmd tea.Cmd
	cur.choice, cmd = cur.choice.Update(msg)
	if cur.choice.Submitted {
		q.answered = true
		if cur.choice.IsCorrect() {
			q.score++
		}
	}
	return q, cmd
}

func (q *QuizScreen) View(width, height int) string {
	if q.loading {
		return centered(theme.Subtitle.Render("Loading quiz..."), width, height)
	}
	if q.errMsg != "" {
		return centered(theme.Incorrect.Render(q.errMsg), width, height)
	}
	if len(q.questions) == 0 {
		return centered(theme.Subtitle.Render("Nothing to show."), width, height)
	}

	if q.finished {
		summary := theme.Title.Render(fmt.Sprintf("Score: %d / %d", q.score, len(q.questions))) +
			"\n\n" + theme.Hint.Render("Press Enter to go back")
		return centered(summary, width, height)
	}

	cur := q.questions[q.index]

	counter := theme.Hint.Render(fmt.Sprintf("Question %d of %d", q.index+1, len(q.questions)))
	body := counter + "\n\n" + cur.choice.View()

	if q.answered {
		verdict := theme.Incorrect.Render("Incorrect.")
		if cur.choice.IsCorrect() {
			verdict = theme.Correct.Render("Correct!")
		}
		body += "\n" + verdict
		if cur.explanation != "" {
			body += "\n" + theme.Body.Width(width-16).Render(cur.explanation)
		}
		body += "\n\n" + theme.Hint.Render("Press Enter to continue")
	}

	card := theme.Card.Width(width - 8).Render(body)
	return lipgloss.NewStyle().MarginLeft(2).MarginTop(1).Render(card)
}

func (q *QuizScreen) Title() string {
	return "Quiz"
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Esc", Description: "Back"},
	}
}

// buildQuestions flattens a decoded quiz into a uniform question list,
// true/false first.
func buildQuestions(quiz *content.Quiz) []question {
	if quiz == nil {
		return nil
	}

	out := make([]question, 0, len(quiz.TrueFalseQuestions)+len(quiz.MultipleChoiceQuestions))

	for _, tf := range quiz.TrueFalseQuestions {
		correct := 1
		if tf.CorrectAnswer {
			correct = 0
		}
		out = append(out, question{
			choice:      components.NewMultiChoice(tf.Question, []string{"True", "False"}, correct),
			explanation: tf.Explanation,
		})
	}

	for _, mc := range quiz.MultipleChoiceQuestions {
		if len(mc.Options) == 0 {
			continue
		}
		out = append(out, question{
			choice:      components.NewMultiChoice(mc.Question, mc.Options, mc.CorrectAnswer),
			explanation: mc.Explanation,
		})
	}

	return out
}

func centered(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
