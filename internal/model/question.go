package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuestionType enumerates the supported question variants. The grading engine
// switches exhaustively over these values.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionMultiSelect    QuestionType = "MULTI_SELECT"
	QuestionTrueFalse      QuestionType = "TRUE_FALSE"
	QuestionFillInBlank    QuestionType = "FILL_IN_BLANK"
	QuestionMatching       QuestionType = "MATCHING"
	QuestionOrdering       QuestionType = "ORDERING"
	QuestionShortAnswer    QuestionType = "SHORT_ANSWER"
	QuestionEssay          QuestionType = "ESSAY"
)

// Question belongs to exactly one Exam. Options and CorrectAnswer hold the
// type-specific payloads as JSON: a choice list for selection types, left/right
// pairs for MATCHING, orderable items for ORDERING, and accepted answer strings
// for FILL_IN_BLANK. Free-text types carry no options at all.
type Question struct {
	ID             uuid.UUID      `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	ExamID         uuid.UUID      `json:"exam_id" gorm:"type:uuid;not null;index"`
	Type           QuestionType   `json:"type" gorm:"not null"`
	Text           string         `json:"text" gorm:"type:text;not null"`
	Marks          float64        `json:"marks" gorm:"not null"`
	Options        datatypes.JSON `json:"options,omitempty"`
	CorrectOptions pq.StringArray `json:"correct_options,omitempty" gorm:"type:text[]"`
	CorrectAnswer  datatypes.JSON `json:"correct_answer,omitempty"`
	Explanation    string         `json:"explanation,omitempty" gorm:"type:text"`
	CaseSensitive  bool           `json:"case_sensitive" gorm:"default:false"`
	PartialCredit  bool           `json:"partial_credit" gorm:"default:false"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// AutoGradable reports whether the grading engine can fully determine
// correctness for this question type without an instructor.
func (t QuestionType) AutoGradable() bool {
	switch t {
	case QuestionMultipleChoice, QuestionTrueFalse, QuestionMultiSelect,
		QuestionFillInBlank, QuestionMatching, QuestionOrdering:
		return true
	default:
		return false
	}
}
