package repository

import (
	"time"

	"github.com/ULMS-DEV/exam-service/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepository interface {
	// UpsertBatch writes a full submission in one transaction. Each answer is
	// keyed by (session, question), so resubmitting a question overwrites the
	// earlier answer instead of inserting a duplicate.
	UpsertBatch(answers []model.Answer) error
	FindByID(id uuid.UUID) (*model.Answer, error)
	FindBySession(sessionID uuid.UUID) ([]model.Answer, error)
	Grade(id uuid.UUID, isCorrect *bool, marksAwarded float64, feedback, gradedBy string, gradedAt time.Time) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) UpsertBatch(answers []model.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range answers {
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "exam_session_id"}, {Name: "question_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"selected_options", "text_answer", "structured_answer",
					"is_correct", "marks_awarded", "graded_at", "updated_at",
				}),
			}).Create(&answers[i]).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *answerRepository) FindByID(id uuid.UUID) (*model.Answer, error) {
	var answer model.Answer
	if err := r.db.Preload("Question").First(&answer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) FindBySession(sessionID uuid.UUID) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.Where("exam_session_id = ?", sessionID).Find(&answers).Error
	return answers, err
}

func (r *answerRepository) Grade(id uuid.UUID, isCorrect *bool, marksAwarded float64, feedback, gradedBy string, gradedAt time.Time) error {
	return r.db.Model(&model.Answer{}).Where("id = ?", id).Updates(map[string]any{
		"is_correct":    isCorrect,
		"marks_awarded": marksAwarded,
		"feedback":      feedback,
		"graded_by":     gradedBy,
		"graded_at":     gradedAt,
	}).Error
}
