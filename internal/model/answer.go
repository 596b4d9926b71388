package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Answer is one student's response to one question within one session; a
// session holds at most one answer per question and resubmission overwrites.
// IsCorrect nil means the answer has not been graded yet.
type Answer struct {
	ID               uuid.UUID      `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	ExamSessionID    uuid.UUID      `json:"exam_session_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_session_question"`
	QuestionID       uuid.UUID      `json:"question_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_session_question"`
	Question         Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	SelectedOptions  pq.StringArray `json:"selected_options,omitempty" gorm:"type:text[]"`
	TextAnswer       string         `json:"text_answer,omitempty" gorm:"type:text"`
	StructuredAnswer datatypes.JSON `json:"structured_answer,omitempty"`
	IsCorrect        *bool          `json:"is_correct,omitempty"`
	MarksAwarded     float64        `json:"marks_awarded"`
	GradedAt         *time.Time     `json:"graded_at,omitempty"`
	GradedBy         string         `json:"graded_by,omitempty"`
	Feedback         string         `json:"feedback,omitempty" gorm:"type:text"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
