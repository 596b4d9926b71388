package service

import (
	"testing"
	"time"

	"github.com/ULMS-DEV/exam-service/internal/apperror"
	"github.com/ULMS-DEV/exam-service/internal/dto"
	"github.com/ULMS-DEV/exam-service/internal/model"
	"github.com/google/uuid"
)

func newGradingServiceForTest(examRepo *mockExamRepo, sessionRepo *mockSessionRepo, answerRepo *mockAnswerRepo, scores *mockScoreService, now time.Time) *gradingService {
	svc := NewGradingService(examRepo, sessionRepo, answerRepo, scores).(*gradingService)
	svc.now = fixedClock(now)
	return svc
}

func TestGradeAnswer(t *testing.T) {
	now := time.Date(2025, 2, 20, 14, 0, 0, 0, time.UTC)

	t.Run("missing answer is not found", func(t *testing.T) {
		svc := newGradingServiceForTest(&mockExamRepo{}, &mockSessionRepo{}, &mockAnswerRepo{}, &mockScoreService{}, now)
		_, err := svc.GradeAnswer(uuid.New(), dto.GradeAnswerDTO{InstructorID: "instructor-1"})
		assertCode(t, err, apperror.CodeNotFound)
	})

	t.Run("grade is persisted and the session score recomputed", func(t *testing.T) {
		answer := &model.Answer{
			ID:            uuid.New(),
			ExamSessionID: uuid.New(),
			QuestionID:    uuid.New(),
			TextAnswer:    "a thorough essay",
		}
		answers := &mockAnswerRepo{answer: answer}
		scores := &mockScoreService{}
		svc := newGradingServiceForTest(&mockExamRepo{}, &mockSessionRepo{}, answers, scores, now)

		correct := true
		resp, err := svc.GradeAnswer(answer.ID, dto.GradeAnswerDTO{
			InstructorID: "instructor-1",
			IsCorrect:    &correct,
			MarksAwarded: 12,
			Feedback:     "Well argued.",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp == nil {
			t.Fatal("expected a graded answer response")
		}

		if len(answers.grades) != 1 {
			t.Fatalf("expected 1 grade write, got %d", len(answers.grades))
		}
		grade := answers.grades[0]
		if grade.id != answer.ID || grade.marksAwarded != 12 || grade.gradedBy != "instructor-1" || grade.feedback != "Well argued." {
			t.Errorf("unexpected grade write: %+v", grade)
		}
		if grade.isCorrect == nil || !*grade.isCorrect {
			t.Error("IsCorrect not carried through")
		}

		if len(scores.recomputed) != 1 || scores.recomputed[0] != answer.ExamSessionID {
			t.Errorf("score recompute calls = %v, want [%s]", scores.recomputed, answer.ExamSessionID)
		}
	})
}

func TestGetExamSubmissions(t *testing.T) {
	now := time.Date(2025, 2, 20, 14, 0, 0, 0, time.UTC)

	t.Run("missing exam is not found", func(t *testing.T) {
		svc := newGradingServiceForTest(&mockExamRepo{}, &mockSessionRepo{}, &mockAnswerRepo{}, &mockScoreService{}, now)
		_, err := svc.GetExamSubmissions(uuid.New())
		assertCode(t, err, apperror.CodeNotFound)
	})

	t.Run("sessions map with full answers", func(t *testing.T) {
		exam := &model.Exam{ID: uuid.New(), Title: "Midterm"}
		total := 42.0
		session := model.ExamSession{
			ID:         uuid.New(),
			ExamID:     exam.ID,
			StudentID:  "student-1",
			Status:     model.SessionCompleted,
			TotalScore: &total,
			Answers: []model.Answer{
				{ID: uuid.New(), QuestionID: uuid.New(), TextAnswer: "queue"},
			},
		}
		sessions := &mockSessionRepo{byExam: []model.ExamSession{session}}
		svc := newGradingServiceForTest(&mockExamRepo{exam: exam}, sessions, &mockAnswerRepo{}, &mockScoreService{}, now)

		subs, err := svc.GetExamSubmissions(exam.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(subs) != 1 {
			t.Fatalf("got %d submissions, want 1", len(subs))
		}
		// Instructor view keeps scores visible regardless of IsGraded.
		if subs[0].TotalScore == nil || *subs[0].TotalScore != total {
			t.Errorf("TotalScore = %v, want %v", subs[0].TotalScore, total)
		}
		if len(subs[0].Answers) != 1 || subs[0].Answers[0].TextAnswer != "queue" {
			t.Errorf("answers not mapped: %+v", subs[0].Answers)
		}
	})
}
