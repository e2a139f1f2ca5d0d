package lessonlist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnix/internal/api"
	"github.com/abhisek/learnix/internal/content"
	"github.com/abhisek/learnix/internal/router"
	"github.com/abhisek/learnix/internal/screen"
	"github.com/abhisek/learnix/internal/shell"
	"github.com/abhisek/learnix/internal/ui/layout"
	"github.com/abhisek/learnix/internal/ui/theme"
)

const pageSize = 10

type recentMsg struct {
	items  []item
	errMsg string
}

type item struct {
	queryID   string
	title     string
	createdAt string
}

// HistoryBackend is the API slice the lesson-list screen fetches history
// through.
type HistoryBackend interface {
	RecentLessons(ctx context.Context, limit int) (*api.ContentList, error)
}

// LessonListScreen lists recently generated lessons from the backend.
type LessonListScreen struct {
	shell   *shell.Shell
	backend HistoryBackend

	items    []item
	selected int
	loading  bool
	errMsg   string
}

var _ screen.Screen = (*LessonListScreen)(nil)
var _ screen.KeyHintProvider = (*LessonListScreen)(nil)

// New creates a LessonListScreen.
func New(sh *shell.Shell, backend HistoryBackend) *LessonListScreen {
	return &LessonListScreen{shell: sh, backend: backend}
}

func (l *LessonListScreen) Init() tea.Cmd {
	l.loading = true
	backend := l.backend
	return func() tea.Msg {
		list, err := backend.RecentLessons(context.Background(), pageSize)
		if err != nil {
			return recentMsg{errMsg: "Could not load recent lessons."}
		}
		return recentMsg{items: decodeItems(list)}
	}
}

func (l *LessonListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recentMsg:
		l.loading = false
		l.items = msg.items
		l.errMsg = msg.errMsg
		return l, nil

	case tea.KeyMsg:
		if l.loading || len(l.items) == 0 {
			return l, nil
		}
		switch msg.String() {
		case "up", "k":
			if l.selected > 0 {
				l.selected--
			}
		case "down", "j":
			if l.selected < len(l.items)-1 {
				l.selected++
			}
		case "enter":
			picked := l.items[l.selected]
			l.shell.SetQueryID(picked.queryID)
			return l, func() tea.Msg {
				return router.StartExplorationMsg{Topic: picked.title, FromContinue: true}
			}
		}
	}

	return l, nil
}

func (l *LessonListScreen) View(width, height int) string {
	if l.loading {
		return centered(theme.Subtitle.Render("Loading recent lessons..."), width, height)
	}
	if l.errMsg != "" {
		return centered(theme.Incorrect.Render(l.errMsg), width, height)
	}
	if len(l.items) == 0 {
		return centered(theme.Subtitle.Render("No lessons generated yet."), width, height)
	}

	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render("Recent lessons") + "\n\n")

	for i, it := range l.items {
		line := it.title
		if it.createdAt != "" {
			line = fmt.Sprintf("%s  ·  %s", it.title, it.createdAt)
		}
		if i == l.selected {
			b.WriteString(theme.Selected.Render("  ▸ "+line) + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("    "+line) + "\n")
		}
	}

	card := theme.Card.Width(width - 8).Render(b.String())
	return lipgloss.NewStyle().MarginLeft(2).MarginTop(1).Render(card)
}

func (l *LessonListScreen) Title() string {
	return "Lessons"
}

func (l *LessonListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

// decodeItems flattens history entries into display rows, using the first
// lesson title as the row label.
func decodeItems(list *api.ContentList) []item {
	if list == nil {
		return nil
	}
	out := make([]item, 0, len(list.Items))
	for _, raw := range list.Items {
		var resp api.ContentResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			continue
		}
		title := resp.QueryID
		if lessons := content.DecodeLessons(resp.Content); len(lessons) > 0 {
			title = lessons[0].Title
		}
		out = append(out, item{
			queryID:   resp.QueryID,
			title:     title,
			createdAt: shortDate(resp.CreatedAt),
		})
	}
	return out
}

// shortDate trims an ISO timestamp down to its date part.
func shortDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

func centered(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
