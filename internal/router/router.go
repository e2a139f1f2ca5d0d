package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnix/internal/api"
	"github.com/abhisek/learnix/internal/screen"
	"github.com/abhisek/learnix/internal/shell"
)

// Navigation messages. Screens emit these; the router applies them to the
// shell view-model and activates the screen for the resulting view.

// StartExplorationMsg enters the explanation view for a topic.
type StartExplorationMsg struct {
	Topic string
	// FromContinue marks internal continue-lesson transitions, which are
	// not flagged as user-initiated queries.
	FromContinue bool
}

// ShowViewMsg switches to a named view directly (home, explore, library,
// lessons, explanation, quiz).
type ShowViewMsg struct {
	View shell.View
}

// ShowFlashcardsMsg enters the flashcards view with a fetched payload.
type ShowFlashcardsMsg struct {
	Cards *api.ContentResponse
}

// BackMsg returns to the previous view.
type BackMsg struct{}

// Factory builds the screen for a view each time it is entered.
type Factory func() screen.Screen

// Router maps the shell's current view to an active screen and applies
// navigation messages to the shell.
type Router struct {
	shell     *shell.Shell
	factories map[shell.View]Factory
	active    screen.Screen
}

// New creates a router and activates the screen for the shell's current
// view.
func New(sh *shell.Shell, factories map[shell.View]Factory) *Router {
	r := &Router{shell: sh, factories: factories}
	r.active = r.build(sh.View())
	return r
}

// Active returns the currently active screen.
func (r *Router) Active() screen.Screen {
	return r.active
}

// Shell returns the underlying shell view-model.
func (r *Router) Shell() *shell.Shell {
	return r.shell
}

// Update applies navigation messages to the shell and forwards everything
// else to the active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case StartExplorationMsg:
		r.shell.StartExploration(msg.Topic, msg.FromContinue)
		return r.activate()

	case ShowViewMsg:
		switch msg.View {
		case shell.ViewHome:
			r.shell.ShowHome()
		case shell.ViewExplore:
			r.shell.ShowExplore()
		case shell.ViewLibrary:
			r.shell.ShowLibrary()
		case shell.ViewLessons:
			r.shell.ShowLessons()
		case shell.ViewExplanation:
			r.shell.ShowExplanation()
		case shell.ViewQuiz:
			r.shell.StartQuiz()
		}
		return r.activate()

	case ShowFlashcardsMsg:
		r.shell.GenerateFlashcards(msg.Cards)
		return r.activate()

	case BackMsg:
		r.shell.GoBack()
		return r.activate()
	}

	if r.active == nil {
		return nil
	}
	updated, cmd := r.active.Update(msg)
	r.active = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	if r.active == nil {
		return ""
	}
	return r.active.View(width, height)
}

// activate rebuilds the active screen for the shell's current view and
// runs its Init.
func (r *Router) activate() tea.Cmd {
	r.active = r.build(r.shell.View())
	if r.active == nil {
		return nil
	}
	return r.active.Init()
}

func (r *Router) build(v shell.View) screen.Screen {
	f, ok := r.factories[v]
	if !ok {
		return nil
	}
	return f()
}
