package query

import "github.com/abhisek/learnix/internal/api"

// State is the observable state of the query workflow. Loading is true
// while any submission step is in flight; the workflow's terminal write
// always sets it back to false. Err holds the last user-facing error
// message ("" means none). Progress is the human-readable status of the
// current step, overwritten on every transition.
type State struct {
	Loading          bool
	Err              string
	QueryID          string
	Lessons          *api.ContentResponse
	RelatedQuestions *api.ContentResponse
	Progress         string
}

// Done reports whether the workflow has a resolved query with lessons.
func (s State) Done() bool {
	return !s.Loading && s.Err == "" && s.QueryID != "" && s.Lessons != nil
}
