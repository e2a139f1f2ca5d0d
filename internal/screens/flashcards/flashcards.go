package flashcards

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnix/internal/content"
	"github.com/abhisek/learnix/internal/screen"
	"github.com/abhisek/learnix/internal/shell"
	"github.com/abhisek/learnix/internal/ui/layout"
	"github.com/abhisek/learnix/internal/ui/theme"
)

// FlashcardsScreen shows the fetched flashcards one at a time, flipping
// between term and explanation.
type FlashcardsScreen struct {
	cards   []content.Card
	index   int
	flipped bool
}

var _ screen.Screen = (*FlashcardsScreen)(nil)
var _ screen.KeyHintProvider = (*FlashcardsScreen)(nil)

// New creates a FlashcardsScreen from the shell's current flashcards
// payload.
func New(sh *shell.Shell) *FlashcardsScreen {
	var cards []content.Card
	if resp := sh.CurrentFlashcards(); resp != nil {
		cards = content.DecodeCards(resp.Content)
	}
	return &FlashcardsScreen{cards: cards}
}

func (f *FlashcardsScreen) Init() tea.Cmd {
	return nil
}

func (f *FlashcardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(f.cards) == 0 {
		return f, nil
	}

	switch kmsg.String() {
	case "enter", " ":
		f.flipped = !f.flipped
	case "n", "right":
		if f.index < len(f.cards)-1 {
			f.index++
			f.flipped = false
		}
	case "p", "left":
		if f.index > 0 {
			f.index--
			f.flipped = false
		}
	}

	return f, nil
}

func (f *FlashcardsScreen) View(width, height int) string {
	if len(f.cards) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.Subtitle.Render("No flashcards available."))
	}

	card := f.cards[f.index]

	counter := theme.Hint.Render(fmt.Sprintf("Card %d of %d", f.index+1, len(f.cards)))

	face := theme.Title.Align(lipgloss.Center).Render(card.Term)
	if f.flipped {
		face = theme.Body.Align(lipgloss.Center).Render(card.Explanation)
	}

	cardWidth := width - 20
	if cardWidth > 64 {
		cardWidth = 64
	}
	box := theme.Card.
		Width(cardWidth).
		Align(lipgloss.Center, lipgloss.Center).
		Padding(2, 4).
		Render(face)

	side := theme.Hint.Render("term")
	if f.flipped {
		side = theme.Hint.Render("explanation")
	}

	content := counter + "\n\n" + box + "\n" + side

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (f *FlashcardsScreen) Title() string {
	return "Flashcards"
}

func (f *FlashcardsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Flip"},
		{Key: "n/p", Description: "Card"},
		{Key: "Esc", Description: "Back"},
	}
}
