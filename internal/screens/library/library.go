package library

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnix/internal/cache"
	"github.com/abhisek/learnix/internal/router"
	"github.com/abhisek/learnix/internal/screen"
	"github.com/abhisek/learnix/internal/ui/layout"
	"github.com/abhisek/learnix/internal/ui/theme"
)

const maxEntries = 20

// LibraryScreen lists saved lesson progress so a topic can be resumed.
type LibraryScreen struct {
	entries  []cache.LessonProgress
	selected int
	errMsg   string
}

var _ screen.Screen = (*LibraryScreen)(nil)
var _ screen.KeyHintProvider = (*LibraryScreen)(nil)

// New creates a LibraryScreen with the most recent progress entries.
func New(store *cache.Store) *LibraryScreen {
	l := &LibraryScreen{}
	if store == nil {
		return l
	}
	entries, err := store.RecentProgress(maxEntries)
	if err != nil {
		l.errMsg = "Could not read the library."
		return l
	}
	l.entries = entries
	return l
}

func (l *LibraryScreen) Init() tea.Cmd {
	return nil
}

func (l *LibraryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(l.entries) == 0 {
		return l, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if l.selected > 0 {
			l.selected--
		}
	case "down", "j":
		if l.selected < len(l.entries)-1 {
			l.selected++
		}
	case "enter":
		topic := l.entries[l.selected].Topic
		return l, func() tea.Msg {
			return router.StartExplorationMsg{Topic: topic, FromContinue: true}
		}
	}

	return l, nil
}

func (l *LibraryScreen) View(width, height int) string {
	if l.errMsg != "" {
		return centered(theme.Incorrect.Render(l.errMsg), width, height)
	}
	if len(l.entries) == 0 {
		return centered(theme.Subtitle.Render("Nothing saved yet. Explore a topic first!"), width, height)
	}

	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render("Saved topics") + "\n\n")

	for i, entry := range l.entries {
		line := fmt.Sprintf("%s  (step %d)", entry.Topic, entry.LastStepIndex+1)
		if i == l.selected {
			b.WriteString(theme.Selected.Render("  ▸ "+line) + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("    "+line) + "\n")
		}
	}

	card := theme.Card.Width(width - 8).Render(b.String())
	return lipgloss.NewStyle().MarginLeft(2).MarginTop(1).Render(card)
}

func (l *LibraryScreen) Title() string {
	return "Library"
}

func (l *LibraryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Resume"},
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
