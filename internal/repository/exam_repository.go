package repository

import (
	"github.com/ULMS-DEV/exam-service/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExamWithCounts is an exam row augmented with its question and session counts
// for course-level listings.
type ExamWithCounts struct {
	model.Exam
	QuestionCount int64 `json:"question_count"`
	SessionCount  int64 `json:"session_count"`
}

type ExamRepository interface {
	Create(exam *model.Exam) error
	Update(exam *model.Exam) error
	FindByID(id uuid.UUID) (*model.Exam, error)
	FindByIDWithQuestions(id uuid.UUID) (*model.Exam, error)
	FindByCoursesWithCounts(courseIDs []string) ([]ExamWithCounts, error)
	CountSessions(examID uuid.UUID) (int64, error)
}

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(exam *model.Exam) error {
	// GORM creates the associated questions in the same insert batch when
	// exam.Questions is populated.
	return r.db.Create(exam).Error
}

func (r *examRepository) Update(exam *model.Exam) error {
	return r.db.Save(exam).Error
}

func (r *examRepository) FindByID(id uuid.UUID) (*model.Exam, error) {
	var exam model.Exam
	if err := r.db.First(&exam, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindByIDWithQuestions(id uuid.UUID) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.created_at ASC")
	}).First(&exam, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindByCoursesWithCounts(courseIDs []string) ([]ExamWithCounts, error) {
	var results []ExamWithCounts
	err := r.db.Model(&model.Exam{}).
		Select("exams.*, " +
			"(SELECT COUNT(*) FROM questions WHERE questions.exam_id = exams.id AND questions.deleted_at IS NULL) AS question_count, " +
			"(SELECT COUNT(*) FROM exam_sessions WHERE exam_sessions.exam_id = exams.id AND exam_sessions.deleted_at IS NULL) AS session_count").
		Where("exams.course_id IN ?", courseIDs).
		Where("exams.deleted_at IS NULL").
		Order("exams.start_time ASC").
		Scan(&results).Error
	return results, err
}

func (r *examRepository) CountSessions(examID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.ExamSession{}).Where("exam_id = ?", examID).Count(&count).Error
	return count, err
}
