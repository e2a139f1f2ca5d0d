package api

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Progress messages emitted during SubmitQueryAndWait. Downstream
// classification keys on these phrases, so they are constants rather than
// inline strings.
const (
	msgSubmitted      = "Query submitted, generating lessons and related questions..."
	msgLessonsReady   = "Lessons ready! Fetching content..."
	msgRelatedReady   = "Related questions ready!"
	msgRelatedDelayed = "Related questions may take longer to generate"
)

// SubmitQueryAndWait submits a query and polls content status until the
// lessons are generated, invoking onProgress with human-readable status text
// along the way. Related questions get a bounded grace period after lessons
// are ready; if they miss it the result carries nil RelatedQuestions and a
// "may take longer" progress message is emitted instead of an error.
func (c *Client) SubmitQueryAndWait(ctx context.Context, req QueryRequest, onProgress func(string)) (*SubmitResult, error) {
	if onProgress == nil {
		onProgress = func(string) {}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.SubmitTimeout)
	defer cancel()

	resp, err := c.SubmitQuery(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.QueryID == "" {
		return nil, statusError(0, "backend returned no query id")
	}
	onProgress(msgSubmitted)

	c.log.Info("query submitted",
		zap.String("query_id", resp.QueryID))

	var (
		lessons      *ContentResponse
		related      *ContentResponse
		lessonsDone  time.Time
		relatedState = relatedPending
	)

	for lessons == nil || relatedState == relatedPending {
		select {
		case <-ctx.Done():
			if lessons != nil {
				// Lessons made it; give up on related questions only.
				onProgress(msgRelatedDelayed)
				return &SubmitResult{QueryID: resp.QueryID, Lessons: lessons, RelatedQuestions: related}, nil
			}
			return nil, statusError(0, fmt.Sprintf("timed out waiting for content: %v", ctx.Err()))
		case <-time.After(c.cfg.PollInterval):
		}

		status, err := c.ContentStatus(ctx, resp.QueryID)
		if err != nil {
			return nil, err
		}

		if lessons == nil && status.LessonsGenerated {
			onProgress(msgLessonsReady)
			lessons, err = c.Lessons(ctx, resp.QueryID)
			if err != nil {
				return nil, err
			}
			lessonsDone = time.Now()
		}

		if relatedState == relatedPending && status.RelatedQuestionsGenerated {
			related, err = c.RelatedQuestions(ctx, resp.QueryID)
			if err != nil {
				return nil, err
			}
			relatedState = relatedReady
			onProgress(msgRelatedReady)
		}

		// Once lessons exist, stop waiting for stragglers after the
		// grace period.
		if lessons != nil && relatedState == relatedPending && time.Since(lessonsDone) > c.cfg.RelatedQuestionsWait {
			relatedState = relatedGivenUp
			onProgress(msgRelatedDelayed)
		}
	}

	return &SubmitResult{QueryID: resp.QueryID, Lessons: lessons, RelatedQuestions: related}, nil
}

type relatedWaitState int

const (
	relatedPending relatedWaitState = iota
	relatedReady
	relatedGivenUp
)
