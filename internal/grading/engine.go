package grading

import (
	"encoding/json"
	"strings"

	"github.com/ULMS-DEV/exam-service/internal/model"
)

// SubmittedAnswer is the decoded form of one student answer as it crosses the
// service boundary: option ids for selection types, free text, or a structured
// JSON payload for matching/ordering.
type SubmittedAnswer struct {
	SelectedOptions  []string
	TextAnswer       string
	StructuredAnswer json.RawMessage
}

// Result is the outcome of auto-grading a single answer.
type Result struct {
	IsCorrect bool
	Marks     float64
}

// FillBlankKey is the correct-answer payload for FILL_IN_BLANK questions.
type FillBlankKey struct {
	AcceptedAnswers []string `json:"acceptedAnswers"`
}

// MatchPair is one left-right association in a MATCHING key or submission.
type MatchPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// MatchingKey is the correct-answer payload for MATCHING questions.
type MatchingKey struct {
	Matches []MatchPair `json:"matches"`
}

// OrderingKey is the correct-answer payload for ORDERING questions.
type OrderingKey struct {
	Order []string `json:"order"`
}

// Grade evaluates a submitted answer against its question's correctness data.
// It returns nil when the answer must be graded manually: free-text types,
// missing payloads, or payloads the engine cannot decode. Each answer is graded
// independently; the function has no side effects.
func Grade(q *model.Question, sub SubmittedAnswer) *Result {
	switch q.Type {
	case model.QuestionMultipleChoice, model.QuestionTrueFalse:
		return gradeSingleChoice(q, sub.SelectedOptions)
	case model.QuestionMultiSelect:
		return gradeMultiSelect(q, sub.SelectedOptions)
	case model.QuestionFillInBlank:
		return gradeFillInBlank(q, sub.TextAnswer)
	case model.QuestionMatching:
		return gradeMatching(q, sub.StructuredAnswer)
	case model.QuestionOrdering:
		return gradeOrdering(q, sub.StructuredAnswer)
	case model.QuestionShortAnswer, model.QuestionEssay:
		return nil
	default:
		return nil
	}
}

func gradeSingleChoice(q *model.Question, selected []string) *Result {
	correct := len(selected) == 1 && containsString(q.CorrectOptions, selected[0])
	if correct {
		return &Result{IsCorrect: true, Marks: q.Marks}
	}
	return &Result{IsCorrect: false, Marks: 0}
}

func gradeMultiSelect(q *model.Question, selected []string) *Result {
	if selected == nil {
		return nil
	}

	correctSet := make(map[string]struct{}, len(q.CorrectOptions))
	for _, opt := range q.CorrectOptions {
		correctSet[opt] = struct{}{}
	}
	answerSet := make(map[string]struct{}, len(selected))
	for _, opt := range selected {
		answerSet[opt] = struct{}{}
	}

	correctPicked, wrongPicked := 0, 0
	for opt := range answerSet {
		if _, ok := correctSet[opt]; ok {
			correctPicked++
		} else {
			wrongPicked++
		}
	}

	if correctPicked == len(correctSet) && wrongPicked == 0 {
		return &Result{IsCorrect: true, Marks: q.Marks}
	}
	if q.PartialCredit {
		marks := float64(correctPicked-wrongPicked) / float64(len(correctSet)) * q.Marks
		if marks < 0 {
			marks = 0
		}
		return &Result{IsCorrect: false, Marks: marks}
	}
	return &Result{IsCorrect: false, Marks: 0}
}

func gradeFillInBlank(q *model.Question, textAnswer string) *Result {
	if strings.TrimSpace(textAnswer) == "" {
		return nil
	}

	var key FillBlankKey
	if err := json.Unmarshal(q.CorrectAnswer, &key); err != nil {
		return nil
	}

	submitted := strings.TrimSpace(textAnswer)
	if !q.CaseSensitive {
		submitted = strings.ToLower(submitted)
	}
	for _, accepted := range key.AcceptedAnswers {
		candidate := accepted
		if !q.CaseSensitive {
			candidate = strings.ToLower(candidate)
		}
		if submitted == candidate {
			return &Result{IsCorrect: true, Marks: q.Marks}
		}
	}
	return &Result{IsCorrect: false, Marks: 0}
}

// gradeMatching compares submitted left-right pairs against the key. Full
// marks require every keyed pair to be present and correct; with partial
// credit, marks are proportional to the number of correct pairs.
func gradeMatching(q *model.Question, structured json.RawMessage) *Result {
	if len(structured) == 0 {
		return nil
	}
	var key MatchingKey
	if err := json.Unmarshal(q.CorrectAnswer, &key); err != nil || len(key.Matches) == 0 {
		return nil
	}
	var sub MatchingKey
	if err := json.Unmarshal(structured, &sub); err != nil {
		return nil
	}

	submitted := make(map[string]string, len(sub.Matches))
	for _, pair := range sub.Matches {
		submitted[pair.Left] = pair.Right
	}

	correctPairs := 0
	for _, pair := range key.Matches {
		if submitted[pair.Left] == pair.Right {
			correctPairs++
		}
	}

	allCorrect := correctPairs == len(key.Matches) && len(submitted) == len(key.Matches)
	switch {
	case allCorrect:
		return &Result{IsCorrect: true, Marks: q.Marks}
	case q.PartialCredit:
		marks := float64(correctPairs) / float64(len(key.Matches)) * q.Marks
		return &Result{IsCorrect: false, Marks: marks}
	default:
		return &Result{IsCorrect: false, Marks: 0}
	}
}

// gradeOrdering requires exact positional equality with the keyed order. With
// partial credit, each position holding the correct item earns its share.
func gradeOrdering(q *model.Question, structured json.RawMessage) *Result {
	if len(structured) == 0 {
		return nil
	}
	var key OrderingKey
	if err := json.Unmarshal(q.CorrectAnswer, &key); err != nil || len(key.Order) == 0 {
		return nil
	}
	var sub OrderingKey
	if err := json.Unmarshal(structured, &sub); err != nil {
		return nil
	}

	correctPositions := 0
	for i, id := range key.Order {
		if i < len(sub.Order) && sub.Order[i] == id {
			correctPositions++
		}
	}

	allCorrect := correctPositions == len(key.Order) && len(sub.Order) == len(key.Order)
	switch {
	case allCorrect:
		return &Result{IsCorrect: true, Marks: q.Marks}
	case q.PartialCredit:
		marks := float64(correctPositions) / float64(len(key.Order)) * q.Marks
		return &Result{IsCorrect: false, Marks: marks}
	default:
		return &Result{IsCorrect: false, Marks: 0}
	}
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
