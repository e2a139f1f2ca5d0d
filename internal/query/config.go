package query

import "time"

// Config holds workflow tuning knobs. The stage delays drive the simulated
// flashcards/quiz completion sequence after a successful submission; the
// backend emits no signal for those pipelines, so their progress is
// advanced on a fixed schedule.
type Config struct {
	FlashcardsMidDelay  time.Duration // 50% -> 80%
	FlashcardsDoneDelay time.Duration // 80% -> completed, quiz 30%
	QuizMidDelay        time.Duration // quiz 30% -> 70%
	QuizDoneDelay       time.Duration // quiz 70% -> completed
}

// DefaultConfig returns the standard staging schedule.
func DefaultConfig() Config {
	return Config{
		FlashcardsMidDelay:  1000 * time.Millisecond,
		FlashcardsDoneDelay: 2000 * time.Millisecond,
		QuizMidDelay:        1000 * time.Millisecond,
		QuizDoneDelay:       1500 * time.Millisecond,
	}
}
