package grading

import (
	"testing"

	"github.com/ULMS-DEV/exam-service/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func TestAggregate(t *testing.T) {
	exam := &model.Exam{TotalMarks: 100, PassingMarks: 60}

	t.Run("all graded and passing", func(t *testing.T) {
		answers := []model.Answer{
			{IsCorrect: boolPtr(true), MarksAwarded: 40},
			{IsCorrect: boolPtr(true), MarksAwarded: 25},
			{IsCorrect: boolPtr(false), MarksAwarded: 0},
		}
		score := Aggregate(exam, answers)
		if !almostEqual(score.TotalScore, 65) {
			t.Errorf("TotalScore = %v, want 65", score.TotalScore)
		}
		if !almostEqual(score.Percentage, 65) {
			t.Errorf("Percentage = %v, want 65", score.Percentage)
		}
		if !score.IsPassed {
			t.Error("IsPassed = false, want true")
		}
		if !score.IsGraded {
			t.Error("IsGraded = false, want true")
		}
	})

	t.Run("ungraded answer blocks IsGraded but counts marks", func(t *testing.T) {
		answers := []model.Answer{
			{IsCorrect: boolPtr(true), MarksAwarded: 50},
			{IsCorrect: nil, MarksAwarded: 0}, // pending manual grading
		}
		score := Aggregate(exam, answers)
		if score.IsGraded {
			t.Error("IsGraded = true, want false while an answer is ungraded")
		}
		if !almostEqual(score.TotalScore, 50) {
			t.Errorf("TotalScore = %v, want 50", score.TotalScore)
		}
	})

	t.Run("score equal to passing marks passes", func(t *testing.T) {
		answers := []model.Answer{{IsCorrect: boolPtr(true), MarksAwarded: 60}}
		score := Aggregate(exam, answers)
		if !score.IsPassed {
			t.Error("IsPassed = false, want true at the passing boundary")
		}
	})

	t.Run("one mark below passing fails", func(t *testing.T) {
		answers := []model.Answer{{IsCorrect: boolPtr(true), MarksAwarded: 59}}
		score := Aggregate(exam, answers)
		if score.IsPassed {
			t.Error("IsPassed = true, want false below the passing marks")
		}
	})

	t.Run("idempotent on unchanged answer set", func(t *testing.T) {
		answers := []model.Answer{
			{IsCorrect: boolPtr(true), MarksAwarded: 33.3},
			{IsCorrect: nil, MarksAwarded: 0},
			{IsCorrect: boolPtr(false), MarksAwarded: 1.7},
		}
		first := Aggregate(exam, answers)
		second := Aggregate(exam, answers)
		if first != second {
			t.Errorf("recomputation changed the result: %+v vs %+v", first, second)
		}
	})

	t.Run("empty answer set", func(t *testing.T) {
		score := Aggregate(exam, nil)
		if score.TotalScore != 0 || score.Percentage != 0 {
			t.Errorf("expected zero score for empty answer set, got %+v", score)
		}
		if !score.IsGraded {
			t.Error("IsGraded = false, want true for an empty answer set")
		}
	})
}
