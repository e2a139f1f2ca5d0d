package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnix/internal/cache"
	"github.com/abhisek/learnix/internal/router"
	"github.com/abhisek/learnix/internal/screen"
	"github.com/abhisek/learnix/internal/shell"
	"github.com/abhisek/learnix/internal/ui/components"
	"github.com/abhisek/learnix/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu  components.Menu
	stats cache.Stats
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen, reading cached stats and the most recent
// progress entry for the continue-learning item.
func New(store *cache.Store) *HomeScreen {
	var stats cache.Stats
	if store != nil {
		stats, _ = store.Stats()
	}

	continueLabel := "CONTINUE LEARNING"
	continueDisabled := true
	var continueTopic string
	if store != nil {
		if entry, ok, err := store.LatestProgress(); err == nil && ok {
			continueDisabled = false
			continueTopic = entry.Topic
			continueLabel = fmt.Sprintf("CONTINUE: %s", strings.ToUpper(entry.Topic))
		}
	}

	items := []components.MenuItem{
		{Label: "EXPLORE A TOPIC", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.ShowViewMsg{View: shell.ViewExplore}
			}
		}},
		{Label: continueLabel, Disabled: continueDisabled, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.StartExplorationMsg{Topic: continueTopic, FromContinue: true}
			}
		}},
		{Label: "LIBRARY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.ShowViewMsg{View: shell.ViewLibrary}
			}
		}},
		{Label: "RECENT LESSONS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.ShowViewMsg{View: shell.ViewLessons}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:  components.NewMenu(items),
		stats: stats,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	title := theme.Title.Width(width).Render("L E A R N I X")
	subtitle := theme.Subtitle.Width(width).Render("Ask anything. Learn everything.")

	statsLine := theme.Hint.Width(width).Align(lipgloss.Center).Render(fmt.Sprintf(
		"%d cached queries · %d saved topics",
		h.stats.Mappings, h.stats.ProgressEntries,
	))

	menu := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(theme.Card.Render(h.menu.View()))

	content := strings.Join([]string{title, subtitle, "", statsLine, "", menu}, "\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Left, lipgloss.Center).
		Render(content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
