package grading

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/ULMS-DEV/exam-service/internal/model"
	"gorm.io/datatypes"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func assertResult(t *testing.T, got *Result, wantCorrect bool, wantMarks float64) {
	t.Helper()
	if got == nil {
		t.Fatalf("expected a graded result, got nil (manual)")
	}
	if got.IsCorrect != wantCorrect {
		t.Errorf("IsCorrect = %v, want %v", got.IsCorrect, wantCorrect)
	}
	if !almostEqual(got.Marks, wantMarks) {
		t.Errorf("Marks = %v, want %v", got.Marks, wantMarks)
	}
}

func assertManual(t *testing.T, got *Result) {
	t.Helper()
	if got != nil {
		t.Fatalf("expected nil (manual grading), got %+v", got)
	}
}

func TestGrade_SingleChoice(t *testing.T) {
	q := &model.Question{
		Type:           model.QuestionMultipleChoice,
		Marks:          5,
		CorrectOptions: []string{"b"},
	}

	tests := []struct {
		name        string
		selected    []string
		wantCorrect bool
		wantMarks   float64
	}{
		{name: "correct option", selected: []string{"b"}, wantCorrect: true, wantMarks: 5},
		{name: "wrong option", selected: []string{"a"}, wantCorrect: false, wantMarks: 0},
		{name: "two options selected", selected: []string{"a", "b"}, wantCorrect: false, wantMarks: 0},
		{name: "nothing selected", selected: nil, wantCorrect: false, wantMarks: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Grade(q, SubmittedAnswer{SelectedOptions: tc.selected})
			assertResult(t, got, tc.wantCorrect, tc.wantMarks)
		})
	}
}

func TestGrade_TrueFalse(t *testing.T) {
	q := &model.Question{
		Type:           model.QuestionTrueFalse,
		Marks:          5,
		CorrectOptions: []string{"true"},
	}

	got := Grade(q, SubmittedAnswer{SelectedOptions: []string{"true"}})
	assertResult(t, got, true, 5)

	got = Grade(q, SubmittedAnswer{SelectedOptions: []string{"false"}})
	assertResult(t, got, false, 0)
}

func TestGrade_MultiSelect(t *testing.T) {
	withPartial := &model.Question{
		Type:           model.QuestionMultiSelect,
		Marks:          10,
		CorrectOptions: []string{"b", "c", "e"},
		PartialCredit:  true,
	}
	noPartial := &model.Question{
		Type:           model.QuestionMultiSelect,
		Marks:          10,
		CorrectOptions: []string{"b", "c", "e"},
	}

	tests := []struct {
		name        string
		q           *model.Question
		selected    []string
		wantCorrect bool
		wantMarks   float64
	}{
		{name: "all correct", q: withPartial, selected: []string{"b", "c", "e"}, wantCorrect: true, wantMarks: 10},
		{name: "all correct any order", q: withPartial, selected: []string{"e", "b", "c"}, wantCorrect: true, wantMarks: 10},
		{name: "missing one with partial credit", q: withPartial, selected: []string{"b", "c"}, wantCorrect: false, wantMarks: 20.0 / 3.0},
		{name: "one wrong with partial credit", q: withPartial, selected: []string{"b", "c", "d"}, wantCorrect: false, wantMarks: 10.0 / 3.0},
		{name: "all wrong with partial credit clamps at zero", q: withPartial, selected: []string{"a", "d"}, wantCorrect: false, wantMarks: 0},
		{name: "missing one without partial credit", q: noPartial, selected: []string{"b", "c"}, wantCorrect: false, wantMarks: 0},
		{name: "same size one wrong", q: noPartial, selected: []string{"b", "c", "d"}, wantCorrect: false, wantMarks: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Grade(tc.q, SubmittedAnswer{SelectedOptions: tc.selected})
			assertResult(t, got, tc.wantCorrect, tc.wantMarks)
		})
	}

	t.Run("missing payload is manual", func(t *testing.T) {
		assertManual(t, Grade(withPartial, SubmittedAnswer{}))
	})
}

func TestGrade_FillInBlank(t *testing.T) {
	q := &model.Question{
		Type:          model.QuestionFillInBlank,
		Marks:         5,
		CorrectAnswer: datatypes.JSON([]byte(`{"acceptedAnswers":["Big O","Big-O","O"]}`)),
	}

	tests := []struct {
		name        string
		text        string
		wantCorrect bool
	}{
		{name: "case-insensitive match", text: "big o", wantCorrect: true},
		{name: "surrounding whitespace trimmed", text: " Big-O ", wantCorrect: true},
		{name: "single letter variant", text: "O", wantCorrect: true},
		{name: "wrong answer", text: "Theta", wantCorrect: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Grade(q, SubmittedAnswer{TextAnswer: tc.text})
			wantMarks := 0.0
			if tc.wantCorrect {
				wantMarks = 5
			}
			assertResult(t, got, tc.wantCorrect, wantMarks)
		})
	}

	t.Run("empty text is manual", func(t *testing.T) {
		assertManual(t, Grade(q, SubmittedAnswer{TextAnswer: "   "}))
	})

	t.Run("case sensitive rejects wrong case", func(t *testing.T) {
		sensitive := &model.Question{
			Type:          model.QuestionFillInBlank,
			Marks:         5,
			CaseSensitive: true,
			CorrectAnswer: datatypes.JSON([]byte(`{"acceptedAnswers":["FIFO"]}`)),
		}
		assertResult(t, Grade(sensitive, SubmittedAnswer{TextAnswer: "fifo"}), false, 0)
		assertResult(t, Grade(sensitive, SubmittedAnswer{TextAnswer: "FIFO"}), true, 5)
	})
}

func TestGrade_Matching(t *testing.T) {
	key := `{"matches":[{"left":"1","right":"b"},{"left":"2","right":"c"},{"left":"3","right":"a"},{"left":"4","right":"d"}]}`
	withPartial := &model.Question{
		Type:          model.QuestionMatching,
		Marks:         10,
		CorrectAnswer: datatypes.JSON([]byte(key)),
		PartialCredit: true,
	}
	noPartial := &model.Question{
		Type:          model.QuestionMatching,
		Marks:         10,
		CorrectAnswer: datatypes.JSON([]byte(key)),
	}

	tests := []struct {
		name        string
		q           *model.Question
		payload     string
		wantCorrect bool
		wantMarks   float64
	}{
		{
			name: "all pairs correct", q: withPartial,
			payload:     `{"matches":[{"left":"1","right":"b"},{"left":"2","right":"c"},{"left":"3","right":"a"},{"left":"4","right":"d"}]}`,
			wantCorrect: true, wantMarks: 10,
		},
		{
			name: "half correct with partial credit", q: withPartial,
			payload:     `{"matches":[{"left":"1","right":"b"},{"left":"2","right":"c"},{"left":"3","right":"d"},{"left":"4","right":"a"}]}`,
			wantCorrect: false, wantMarks: 5,
		},
		{
			name: "half correct without partial credit", q: noPartial,
			payload:     `{"matches":[{"left":"1","right":"b"},{"left":"2","right":"c"},{"left":"3","right":"d"},{"left":"4","right":"a"}]}`,
			wantCorrect: false, wantMarks: 0,
		},
		{
			name: "incomplete submission is not fully correct", q: withPartial,
			payload:     `{"matches":[{"left":"1","right":"b"}]}`,
			wantCorrect: false, wantMarks: 2.5,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Grade(tc.q, SubmittedAnswer{StructuredAnswer: json.RawMessage(tc.payload)})
			assertResult(t, got, tc.wantCorrect, tc.wantMarks)
		})
	}

	t.Run("missing payload is manual", func(t *testing.T) {
		assertManual(t, Grade(withPartial, SubmittedAnswer{}))
	})

	t.Run("undecodable payload is manual", func(t *testing.T) {
		assertManual(t, Grade(withPartial, SubmittedAnswer{StructuredAnswer: json.RawMessage(`{"matches":`)}))
	})
}

func TestGrade_Ordering(t *testing.T) {
	key := `{"order":["2","4","3","5","1"]}`
	withPartial := &model.Question{
		Type:          model.QuestionOrdering,
		Marks:         10,
		CorrectAnswer: datatypes.JSON([]byte(key)),
		PartialCredit: true,
	}
	noPartial := &model.Question{
		Type:          model.QuestionOrdering,
		Marks:         10,
		CorrectAnswer: datatypes.JSON([]byte(key)),
	}

	tests := []struct {
		name        string
		q           *model.Question
		payload     string
		wantCorrect bool
		wantMarks   float64
	}{
		{name: "exact order", q: withPartial, payload: `{"order":["2","4","3","5","1"]}`, wantCorrect: true, wantMarks: 10},
		{name: "two positions swapped with partial credit", q: withPartial, payload: `{"order":["2","4","3","1","5"]}`, wantCorrect: false, wantMarks: 6},
		{name: "swapped without partial credit", q: noPartial, payload: `{"order":["2","4","3","1","5"]}`, wantCorrect: false, wantMarks: 0},
		{name: "fully reversed with partial credit", q: withPartial, payload: `{"order":["1","5","3","4","2"]}`, wantCorrect: false, wantMarks: 2},
		{name: "short submission never fully correct", q: withPartial, payload: `{"order":["2","4"]}`, wantCorrect: false, wantMarks: 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Grade(tc.q, SubmittedAnswer{StructuredAnswer: json.RawMessage(tc.payload)})
			assertResult(t, got, tc.wantCorrect, tc.wantMarks)
		})
	}

	t.Run("missing payload is manual", func(t *testing.T) {
		assertManual(t, Grade(withPartial, SubmittedAnswer{}))
	})
}

func TestGrade_ManualOnlyTypes(t *testing.T) {
	for _, qType := range []model.QuestionType{model.QuestionShortAnswer, model.QuestionEssay} {
		t.Run(string(qType), func(t *testing.T) {
			q := &model.Question{Type: qType, Marks: 15}
			assertManual(t, Grade(q, SubmittedAnswer{TextAnswer: "a thorough essay about data structures"}))
		})
	}
}
