package app

import (
	"fmt"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/learnix/internal/api"
	"github.com/abhisek/learnix/internal/cache"
	"github.com/abhisek/learnix/internal/config"
	"github.com/abhisek/learnix/internal/content"
	"github.com/abhisek/learnix/internal/logging"
	"github.com/abhisek/learnix/internal/query"
	"github.com/abhisek/learnix/internal/router"
	"github.com/abhisek/learnix/internal/screen"
	"github.com/abhisek/learnix/internal/screens/explanation"
	"github.com/abhisek/learnix/internal/screens/explore"
	"github.com/abhisek/learnix/internal/screens/flashcards"
	"github.com/abhisek/learnix/internal/screens/home"
	"github.com/abhisek/learnix/internal/screens/lessonlist"
	"github.com/abhisek/learnix/internal/screens/library"
	"github.com/abhisek/learnix/internal/screens/quiz"
	"github.com/abhisek/learnix/internal/shell"
	"github.com/abhisek/learnix/internal/tasks"
	"github.com/abhisek/learnix/internal/ui/layout"
)

// Options configures a Run.
type Options struct {
	Config config.Config
	DBPath string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

func newAppModel(r *router.Router) AppModel {
	return AppModel{router: r}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Shell().View() != shell.ViewHome {
				return m, func() tea.Msg { return router.BackMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.router.Shell().CurrentTopic(), m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hinter, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hinter.KeyHints()
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	frame := layout.RenderFrame(header, m.router.View(m.width, contentHeight), footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run wires the services together and starts the Bubble Tea program.
func Run(opts Options) error {
	cfg := opts.Config
	if cfg.UserID == "" {
		// Anonymous per-run identity for backend query attribution.
		cfg.UserID = "anon-" + uuid.NewString()
	}

	dbPath := opts.DBPath
	if dbPath == "" {
		var err error
		dbPath, err = cache.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve db path: %w", err)
		}
	}
	if err := cache.EnsureDir(dbPath); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	log, err := logging.New(cfg.LogMode, filepath.Dir(dbPath))
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	store, err := cache.Open(dbPath, log)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer func() { _ = store.Close() }()

	client := api.New(api.Config{
		BaseURL:              cfg.APIBaseURL,
		Timeout:              cfg.RequestTimeout,
		PollInterval:         cfg.PollInterval,
		SubmitTimeout:        cfg.SubmitTimeout,
		RelatedQuestionsWait: cfg.RelatedQuestionsWait,
	}, log)

	tracker := tasks.NewTracker()
	workflow := query.NewWorkflow(client, store, tracker, query.DefaultConfig(), log)
	fetcher := content.NewFetcher(client, log)
	sh := shell.New(store, log)

	factories := map[shell.View]router.Factory{
		shell.ViewHome: func() screen.Screen {
			return home.New(store)
		},
		shell.ViewExplore: func() screen.Screen {
			return explore.New(workflow, sh, store, cfg.UserID, log)
		},
		shell.ViewExplanation: func() screen.Screen {
			return explanation.New(sh, client, fetcher, store, log)
		},
		shell.ViewFlashcards: func() screen.Screen {
			return flashcards.New(sh)
		},
		shell.ViewQuiz: func() screen.Screen {
			return quiz.New(sh, fetcher)
		},
		shell.ViewLibrary: func() screen.Screen {
			return library.New(store)
		},
		shell.ViewLessons: func() screen.Screen {
			return lessonlist.New(sh, client)
		},
	}

	r := router.New(sh, factories)

	log.Info("starting learnix",
		zap.String("api_url", cfg.APIBaseURL),
		zap.String("db_path", dbPath))

	p := tea.NewProgram(newAppModel(r))
	if _, err := p.Run(); err != nil {
		log.Error("program exited with error", zap.Error(err))
		return err
	}
	return nil
}
