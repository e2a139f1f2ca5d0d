package query

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/learnix/internal/api"
	"github.com/abhisek/learnix/internal/tasks"
)

// Backend is the slice of the API client the workflow consumes.
type Backend interface {
	HealthCheck(ctx context.Context) error
	Lessons(ctx context.Context, queryID string) (*api.ContentResponse, error)
	RelatedQuestions(ctx context.Context, queryID string) (*api.ContentResponse, error)
	SubmitQueryAndWait(ctx context.Context, req api.QueryRequest, onProgress func(string)) (*api.SubmitResult, error)
}

// MappingStore is the offline cache slice the workflow consumes.
type MappingStore interface {
	CachedQueryID(query string) (string, bool, error)
	SaveQueryMapping(query, queryID string) error
}

// Workflow orchestrates one query session: cache probe, health check,
// tracked submission with progress classification, and post-submission
// reconciliation. A generation counter supersedes prior submissions: a new
// SubmitQuery or Reset invalidates late callbacks and pending stage timers
// from earlier runs.
type Workflow struct {
	backend  Backend
	mappings MappingStore
	tracker  *tasks.Tracker
	cfg      Config
	log      *zap.Logger

	mu         sync.Mutex
	state      State
	generation uint64
}

// NewWorkflow creates a workflow. A nil logger falls back to a no-op logger.
func NewWorkflow(backend Backend, mappings MappingStore, tracker *tasks.Tracker, cfg Config, log *zap.Logger) *Workflow {
	if log == nil {
		log = zap.NewNop()
	}
	return &Workflow{
		backend:  backend,
		mappings: mappings,
		tracker:  tracker,
		cfg:      cfg,
		log:      log,
	}
}

// State returns a copy of the current workflow state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Tracker exposes the task tracker for progress display.
func (w *Workflow) Tracker() *tasks.Tracker {
	return w.tracker
}

// ClearError clears the error message, leaving all other fields untouched.
func (w *Workflow) ClearError() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Err = ""
}

// Reset restores the initial empty state, resets the task tracker, and
// supersedes any in-flight submission so its late writes are dropped.
func (w *Workflow) Reset() {
	w.mu.Lock()
	w.generation++
	w.state = State{}
	w.mu.Unlock()
	w.tracker.Reset()
}

// SubmitQuery starts a query session. It returns immediately; progress and
// results are observed via State and the tracker. A second call supersedes
// the first.
func (w *Workflow) SubmitQuery(query, userID string) {
	w.mu.Lock()
	w.generation++
	gen := w.generation
	// Prior content stays visible until the new session resolves; only the
	// transient fields reset.
	w.state.Loading = true
	w.state.Err = ""
	w.state.Progress = "Checking for cached query..."
	w.mu.Unlock()

	go w.run(gen, query, userID)
}

// current reports whether gen is still the live generation.
func (w *Workflow) current(gen uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.generation == gen
}

// commit applies a state mutation if gen is still live. Returns false when
// the write was dropped because a newer submission superseded this one.
func (w *Workflow) commit(gen uint64, mutate func(*State)) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.generation != gen {
		return false
	}
	mutate(&w.state)
	return true
}

func (w *Workflow) run(gen uint64, query, userID string) {
	ctx := context.Background()

	// Cache probe. Lookup failures are treated as misses, never surfaced.
	if done := w.tryCachedQuery(ctx, gen, query); done {
		return
	}

	// Connectivity probe is advisory only.
	w.commit(gen, func(s *State) { s.Progress = "Checking backend connection..." })
	if err := w.backend.HealthCheck(ctx); err != nil {
		w.log.Warn("health check failed", zap.Error(err))
		w.commit(gen, func(s *State) {
			s.Progress = "Backend connection check failed, submitting anyway..."
		})
	}

	w.commit(gen, func(s *State) { s.Progress = "Submitting new query to backend..." })

	if w.current(gen) {
		w.tracker.StartTracking(fmt.Sprintf("query-%d", time.Now().UnixMilli()))
	}

	result, err := w.backend.SubmitQueryAndWait(ctx, api.QueryRequest{Query: query, UserID: userID}, func(text string) {
		if !w.commit(gen, func(s *State) { s.Progress = text }) {
			return
		}
		applyProgressEvent(w.tracker, classifyProgress(text))
	})
	if err != nil {
		w.fail(gen, err)
		return
	}

	w.reconcile(ctx, gen, query, result)
}

// tryCachedQuery resolves the query from the offline cache. Returns true
// when cached content fully satisfied the session and no submission is
// needed.
func (w *Workflow) tryCachedQuery(ctx context.Context, gen uint64, query string) bool {
	cachedID, ok, err := w.mappings.CachedQueryID(query)
	if err != nil {
		w.log.Warn("cache lookup failed", zap.Error(err))
		return false
	}
	if !ok {
		return false
	}

	w.commit(gen, func(s *State) { s.Progress = "Found cached query, loading content..." })

	// Both fetches run concurrently and settle independently; a failed
	// related-questions fetch does not spoil a lessons hit.
	var (
		wg         sync.WaitGroup
		lessons    *api.ContentResponse
		related    *api.ContentResponse
		lessonsErr error
		relatedErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		lessons, lessonsErr = w.backend.Lessons(ctx, cachedID)
	}()
	go func() {
		defer wg.Done()
		related, relatedErr = w.backend.RelatedQuestions(ctx, cachedID)
	}()
	wg.Wait()

	if lessonsErr != nil {
		// Stale or incomplete cache entry; fall back to a fresh
		// submission without surfacing an error.
		w.log.Info("cached lessons fetch failed, submitting fresh",
			zap.String("query_id", cachedID),
			zap.Error(lessonsErr))
		return false
	}
	if relatedErr != nil {
		w.log.Debug("cached related questions unavailable",
			zap.String("query_id", cachedID),
			zap.Error(relatedErr))
	}

	w.commit(gen, func(s *State) {
		s.Loading = false
		s.QueryID = cachedID
		s.Lessons = lessons
		s.RelatedQuestions = related
		s.Progress = "Cached content loaded!"
	})
	return true
}

// reconcile finishes a successful submission: related-questions bookkeeping,
// the staged flashcards/quiz simulation, best-effort cache persistence, and
// the terminal state commit.
func (w *Workflow) reconcile(ctx context.Context, gen uint64, query string, result *api.SubmitResult) {
	if w.current(gen) {
		if result.Lessons != nil && result.RelatedQuestions == nil {
			if t, ok := w.tracker.TaskByType(tasks.TypeRelatedQuestions); ok && !t.Status.Terminal() {
				w.tracker.MarkTaskFailed(tasks.TypeRelatedQuestions, "Related questions could not be generated.")
			}
		}
		if result.Lessons != nil {
			w.tracker.UpdateTaskProgress(tasks.TypeFlashcards, 50)
			go w.runStagedCompletion(gen)
		}
	}

	// Persistence is best-effort: log and continue.
	if result.QueryID != "" {
		if err := w.mappings.SaveQueryMapping(query, result.QueryID); err != nil {
			w.log.Warn("failed to persist query mapping",
				zap.String("query_id", result.QueryID),
				zap.Error(err))
		}
	}

	w.commit(gen, func(s *State) {
		s.Loading = false
		s.QueryID = result.QueryID
		s.Lessons = result.Lessons
		s.RelatedQuestions = result.RelatedQuestions
		s.Progress = "Query completed!"
	})
}

// runStagedCompletion advances flashcards and quiz progress on a fixed
// schedule. The backend emits no signal for these pipelines. Each step
// re-checks the generation so a reset or new submission suppresses stale
// updates.
func (w *Workflow) runStagedCompletion(gen uint64) {
	steps := []struct {
		delay time.Duration
		apply func()
	}{
		{w.cfg.FlashcardsMidDelay, func() {
			w.tracker.UpdateTaskProgress(tasks.TypeFlashcards, 80)
		}},
		{w.cfg.FlashcardsDoneDelay, func() {
			w.tracker.MarkTaskCompleted(tasks.TypeFlashcards)
			w.tracker.UpdateTaskProgress(tasks.TypeQuiz, 30)
		}},
		{w.cfg.QuizMidDelay, func() {
			w.tracker.UpdateTaskProgress(tasks.TypeQuiz, 70)
		}},
		{w.cfg.QuizDoneDelay, func() {
			w.tracker.MarkTaskCompleted(tasks.TypeQuiz)
		}},
	}

	for _, step := range steps {
		time.Sleep(step.delay)
		if !w.current(gen) {
			return
		}
		step.apply()
	}
}

// fail commits the error path: surfaced message, cleared progress, tracker
// reset discarding partial task records.
func (w *Workflow) fail(gen uint64, err error) {
	msg := deriveErrorMessage(err)
	w.log.Error("query submission failed", zap.Error(err))

	if !w.commit(gen, func(s *State) {
		s.Loading = false
		s.Err = msg
		s.Progress = ""
	}) {
		return
	}
	w.tracker.Reset()
}
