package tasks

import (
	"sync"
	"time"
)

// ContentTaskType identifies one of the independently tracked generation
// pipelines for a query.
type ContentTaskType string

const (
	TypeLessons          ContentTaskType = "lessons"
	TypeRelatedQuestions ContentTaskType = "related_questions"
	TypeFlashcards       ContentTaskType = "flashcards"
	TypeQuiz             ContentTaskType = "quiz"
)

// AllTypes lists the content task types in display order.
var AllTypes = []ContentTaskType{
	TypeLessons,
	TypeRelatedQuestions,
	TypeFlashcards,
	TypeQuiz,
}

// Status is the lifecycle state of one content task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether the status is a final state.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Task is the tracked status and progress of one content type within one
// query session.
type Task struct {
	Type          ContentTaskType
	Status        Status
	Progress      int // 0-100
	FailureReason string
	UpdatedAt     time.Time
}

// Tracker holds task records for the active query session, keyed by content
// type. All methods are safe for concurrent use; reads return copies.
type Tracker struct {
	mu        sync.Mutex
	sessionID string
	tasks     map[ContentTaskType]*Task
}

// NewTracker creates an empty tracker with no active session.
func NewTracker() *Tracker {
	return &Tracker{tasks: make(map[ContentTaskType]*Task)}
}

// StartTracking begins a new session, creating a pending record for every
// content type. Any previous session's records are discarded.
func (t *Tracker) StartTracking(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessionID = sessionID
	t.tasks = make(map[ContentTaskType]*Task, len(AllTypes))
	now := time.Now()
	for _, typ := range AllTypes {
		t.tasks[typ] = &Task{Type: typ, Status: StatusPending, UpdatedAt: now}
	}
}

// UpdateTaskProgress sets a task's progress percent and moves it to
// in_progress. Tasks in a terminal state are not touched.
func (t *Tracker) UpdateTaskProgress(typ ContentTaskType, percent int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	task, ok := t.tasks[typ]
	if !ok || task.Status.Terminal() {
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	task.Status = StatusInProgress
	task.Progress = percent
	task.UpdatedAt = time.Now()
}

// MarkTaskCompleted moves a task to completed with full progress.
func (t *Tracker) MarkTaskCompleted(typ ContentTaskType) {
	t.mu.Lock()
	defer t.mu.Unlock()
	task, ok := t.tasks[typ]
	if !ok || task.Status.Terminal() {
		return
	}
	task.Status = StatusCompleted
	task.Progress = 100
	task.UpdatedAt = time.Now()
}

// MarkTaskFailed moves a task to failed with the given reason.
func (t *Tracker) MarkTaskFailed(typ ContentTaskType, reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	task, ok := t.tasks[typ]
	if !ok || task.Status.Terminal() {
		return
	}
	task.Status = StatusFailed
	task.FailureReason = reason
	task.UpdatedAt = time.Now()
}

// TaskByType returns a copy of the record for one content type.
func (t *Tracker) TaskByType(typ ContentTaskType) (Task, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	task, ok := t.tasks[typ]
	if !ok {
		return Task{}, false
	}
	return *task, true
}

// Snapshot returns copies of all task records in display order. Types with
// no record (no active session) are omitted.
func (t *Tracker) Snapshot() []Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Task, 0, len(t.tasks))
	for _, typ := range AllTypes {
		if task, ok := t.tasks[typ]; ok {
			out = append(out, *task)
		}
	}
	return out
}

// SessionID returns the identifier of the active session, or "" if none.
func (t *Tracker) SessionID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessionID
}

// Reset discards all task records and the session id.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessionID = ""
	t.tasks = make(map[ContentTaskType]*Task)
}
