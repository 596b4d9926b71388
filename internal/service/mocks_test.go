package service

import (
	"context"
	"time"

	"github.com/ULMS-DEV/exam-service/internal/grading"
	"github.com/ULMS-DEV/exam-service/internal/model"
	"github.com/ULMS-DEV/exam-service/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type mockExamRepo struct {
	exam         *model.Exam
	sessionCount int64
	created      *model.Exam
	updated      *model.Exam
	rows         []repository.ExamWithCounts
}

func (m *mockExamRepo) Create(exam *model.Exam) error {
	if exam.ID == uuid.Nil {
		exam.ID = uuid.New()
	}
	m.created = exam
	return nil
}

func (m *mockExamRepo) Update(exam *model.Exam) error {
	m.updated = exam
	return nil
}

func (m *mockExamRepo) FindByID(id uuid.UUID) (*model.Exam, error) {
	if m.exam == nil || m.exam.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return m.exam, nil
}

func (m *mockExamRepo) FindByIDWithQuestions(id uuid.UUID) (*model.Exam, error) {
	return m.FindByID(id)
}

func (m *mockExamRepo) FindByCoursesWithCounts(courseIDs []string) ([]repository.ExamWithCounts, error) {
	return m.rows, nil
}

func (m *mockExamRepo) CountSessions(examID uuid.UUID) (int64, error) {
	return m.sessionCount, nil
}

type statusUpdate struct {
	id     uuid.UUID
	status model.SessionStatus
	endsAt *time.Time
}

type mockSessionRepo struct {
	existing      *model.ExamSession
	created       *model.ExamSession
	byStudent     []model.ExamSession
	byExam        []model.ExamSession
	statusUpdates []statusUpdate
	scoreUpdates  []grading.SessionScore
}

func (m *mockSessionRepo) CreateIfAbsent(session *model.ExamSession) (bool, error) {
	if m.existing != nil {
		return false, nil
	}
	session.ID = uuid.New()
	m.created = session
	return true, nil
}

func (m *mockSessionRepo) FindByKey(examID uuid.UUID, studentID string, attemptNumber int) (*model.ExamSession, error) {
	if m.existing == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.existing, nil
}

func (m *mockSessionRepo) FindByID(id uuid.UUID) (*model.ExamSession, error) {
	return m.FindByKey(uuid.Nil, "", 0)
}

func (m *mockSessionRepo) FindByIDWithExamQuestions(id uuid.UUID) (*model.ExamSession, error) {
	if m.existing == nil || m.existing.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return m.existing, nil
}

func (m *mockSessionRepo) FindByStudent(studentID string) ([]model.ExamSession, error) {
	return m.byStudent, nil
}

func (m *mockSessionRepo) FindByExamWithAnswers(examID uuid.UUID) ([]model.ExamSession, error) {
	return m.byExam, nil
}

func (m *mockSessionRepo) UpdateStatus(id uuid.UUID, status model.SessionStatus, actualEndTime *time.Time) error {
	m.statusUpdates = append(m.statusUpdates, statusUpdate{id: id, status: status, endsAt: actualEndTime})
	return nil
}

func (m *mockSessionRepo) UpdateScore(id uuid.UUID, score grading.SessionScore) error {
	m.scoreUpdates = append(m.scoreUpdates, score)
	return nil
}

type gradeCall struct {
	id           uuid.UUID
	isCorrect    *bool
	marksAwarded float64
	feedback     string
	gradedBy     string
}

type mockAnswerRepo struct {
	answer    *model.Answer
	bySession []model.Answer
	upserted  []model.Answer
	grades    []gradeCall
}

func (m *mockAnswerRepo) UpsertBatch(answers []model.Answer) error {
	m.upserted = append(m.upserted, answers...)
	return nil
}

func (m *mockAnswerRepo) FindByID(id uuid.UUID) (*model.Answer, error) {
	if m.answer == nil || m.answer.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return m.answer, nil
}

func (m *mockAnswerRepo) FindBySession(sessionID uuid.UUID) ([]model.Answer, error) {
	return m.bySession, nil
}

func (m *mockAnswerRepo) Grade(id uuid.UUID, isCorrect *bool, marksAwarded float64, feedback, gradedBy string, gradedAt time.Time) error {
	m.grades = append(m.grades, gradeCall{id: id, isCorrect: isCorrect, marksAwarded: marksAwarded, feedback: feedback, gradedBy: gradedBy})
	return nil
}

type mockScoreService struct {
	recomputed []uuid.UUID
	score      grading.SessionScore
}

func (m *mockScoreService) Recompute(sessionID uuid.UUID) (grading.SessionScore, error) {
	m.recomputed = append(m.recomputed, sessionID)
	return m.score, nil
}

type mockCourseClient struct {
	courses []string
	err     error
}

func (m *mockCourseClient) GetEnrollmentsForStudent(ctx context.Context, studentID string) ([]string, error) {
	return m.courses, m.err
}
