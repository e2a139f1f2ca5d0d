package content

import "encoding/json"

// Lesson is one decoded lesson from a lessons payload.
type Lesson struct {
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	KeyConcepts []string `json:"key_concepts"`
	Examples    []string `json:"examples"`
}

// RelatedQuestion is one decoded related question.
type RelatedQuestion struct {
	Question  string `json:"question"`
	Category  string `json:"category"`
	FocusArea string `json:"focus_area"`
}

// Card is one decoded flashcard.
type Card struct {
	Term        string `json:"term"`
	Explanation string `json:"explanation"`
}

// TrueFalseQuestion is one true/false quiz question.
type TrueFalseQuestion struct {
	Question      string `json:"question"`
	CorrectAnswer bool   `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// MultipleChoiceQuestion is one multiple-choice quiz question.
// CorrectAnswer is an index into Options.
type MultipleChoiceQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// Quiz is a decoded quiz payload.
type Quiz struct {
	TrueFalseQuestions      []TrueFalseQuestion      `json:"true_false_questions"`
	MultipleChoiceQuestions []MultipleChoiceQuestion `json:"multiple_choice_questions"`
}

// DecodeLessons decodes a lessons content payload. The backend emits either
// {"lessons": [...]} or a bare list; both are accepted. Undecodable input
// yields an empty slice rather than an error — screens degrade gracefully.
func DecodeLessons(raw json.RawMessage) []Lesson {
	if len(raw) == 0 {
		return nil
	}
	var wrapped struct {
		Lessons []Lesson `json:"lessons"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Lessons) > 0 {
		return wrapped.Lessons
	}
	var bare []Lesson
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare
	}
	return nil
}

// DecodeRelatedQuestions decodes a related-questions payload, accepting
// {"related_questions": [...]} or a bare list.
func DecodeRelatedQuestions(raw json.RawMessage) []RelatedQuestion {
	if len(raw) == 0 {
		return nil
	}
	var wrapped struct {
		RelatedQuestions []RelatedQuestion `json:"related_questions"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.RelatedQuestions) > 0 {
		return wrapped.RelatedQuestions
	}
	var bare []RelatedQuestion
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare
	}
	return nil
}

// DecodeCards decodes a flashcards payload, accepting {"cards": [...]} or
// a bare list.
func DecodeCards(raw json.RawMessage) []Card {
	if len(raw) == 0 {
		return nil
	}
	var wrapped struct {
		Cards []Card `json:"cards"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Cards) > 0 {
		return wrapped.Cards
	}
	var bare []Card
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare
	}
	return nil
}

// DecodeQuiz decodes a quiz payload, accepting {"quiz": {...}} or a bare
// quiz object. Returns nil when no questions decode.
func DecodeQuiz(raw json.RawMessage) *Quiz {
	if len(raw) == 0 {
		return nil
	}
	var wrapped struct {
		Quiz Quiz `json:"quiz"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && !wrapped.Quiz.empty() {
		return &wrapped.Quiz
	}
	var bare Quiz
	if err := json.Unmarshal(raw, &bare); err == nil && !bare.empty() {
		return &bare
	}
	return nil
}

func (q Quiz) empty() bool {
	return len(q.TrueFalseQuestions) == 0 && len(q.MultipleChoiceQuestions) == 0
}
