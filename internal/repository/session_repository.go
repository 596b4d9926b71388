package repository

import (
	"time"

	"github.com/ULMS-DEV/exam-service/internal/grading"
	"github.com/ULMS-DEV/exam-service/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository interface {
	// CreateIfAbsent inserts the session unless one already exists for the same
	// (exam, student, attempt) key. It reports whether this call created the
	// row, so concurrent starts resolve to a single winner at the database.
	CreateIfAbsent(session *model.ExamSession) (created bool, err error)
	FindByKey(examID uuid.UUID, studentID string, attemptNumber int) (*model.ExamSession, error)
	FindByID(id uuid.UUID) (*model.ExamSession, error)
	FindByIDWithExamQuestions(id uuid.UUID) (*model.ExamSession, error)
	FindByStudent(studentID string) ([]model.ExamSession, error)
	FindByExamWithAnswers(examID uuid.UUID) ([]model.ExamSession, error)
	UpdateStatus(id uuid.UUID, status model.SessionStatus, actualEndTime *time.Time) error
	UpdateScore(id uuid.UUID, score grading.SessionScore) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) CreateIfAbsent(session *model.ExamSession) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "exam_id"}, {Name: "student_id"}, {Name: "attempt_number"}},
		DoNothing: true,
	}).Create(session)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *sessionRepository) FindByKey(examID uuid.UUID, studentID string, attemptNumber int) (*model.ExamSession, error) {
	var session model.ExamSession
	err := r.db.
		Preload("Exam.Questions").
		Preload("Answers").
		Where("exam_id = ? AND student_id = ? AND attempt_number = ?", examID, studentID, attemptNumber).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindByID(id uuid.UUID) (*model.ExamSession, error) {
	var session model.ExamSession
	if err := r.db.First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindByIDWithExamQuestions(id uuid.UUID) (*model.ExamSession, error) {
	var session model.ExamSession
	err := r.db.
		Preload("Exam.Questions").
		First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindByStudent(studentID string) ([]model.ExamSession, error) {
	var sessions []model.ExamSession
	err := r.db.
		Preload("Exam").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) FindByExamWithAnswers(examID uuid.UUID) ([]model.ExamSession, error) {
	var sessions []model.ExamSession
	err := r.db.
		Preload("Answers.Question").
		Where("exam_id = ?", examID).
		Order("created_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) UpdateStatus(id uuid.UUID, status model.SessionStatus, actualEndTime *time.Time) error {
	updates := map[string]any{"status": status}
	if actualEndTime != nil {
		updates["actual_end_time"] = *actualEndTime
	}
	return r.db.Model(&model.ExamSession{}).Where("id = ?", id).Updates(updates).Error
}

func (r *sessionRepository) UpdateScore(id uuid.UUID, score grading.SessionScore) error {
	return r.db.Model(&model.ExamSession{}).Where("id = ?", id).Updates(map[string]any{
		"total_score": score.TotalScore,
		"percentage":  score.Percentage,
		"is_passed":   score.IsPassed,
		"is_graded":   score.IsGraded,
	}).Error
}
