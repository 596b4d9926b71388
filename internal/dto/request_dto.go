package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// QuestionCreateDTO is one question inside an exam draft. Options and
// CorrectAnswer arrive as raw JSON and are decoded by the grading engine.
type QuestionCreateDTO struct {
	Type           string          `json:"type" binding:"required,oneof=MULTIPLE_CHOICE MULTI_SELECT TRUE_FALSE FILL_IN_BLANK MATCHING ORDERING SHORT_ANSWER ESSAY"`
	Text           string          `json:"text" binding:"required"`
	Marks          float64         `json:"marks" binding:"required,gt=0"`
	Options        json.RawMessage `json:"options,omitempty"`
	CorrectOptions []string        `json:"correct_options,omitempty"`
	CorrectAnswer  json.RawMessage `json:"correct_answer,omitempty"`
	Explanation    string          `json:"explanation,omitempty"`
	CaseSensitive  bool            `json:"case_sensitive"`
	PartialCredit  bool            `json:"partial_credit"`
}

// ExamCreateDTO is the instructor request to create an exam with its questions.
type ExamCreateDTO struct {
	Title        string              `json:"title" binding:"required"`
	Description  string              `json:"description,omitempty"`
	CourseID     string              `json:"course_id" binding:"required"`
	Duration     int                 `json:"duration" binding:"required,gt=0"` // minutes
	TotalMarks   float64             `json:"total_marks" binding:"required,gt=0"`
	PassingMarks float64             `json:"passing_marks" binding:"gte=0"`
	StartTime    time.Time           `json:"start_time" binding:"required"`
	EndTime      time.Time           `json:"end_time" binding:"required"`
	Questions    []QuestionCreateDTO `json:"questions" binding:"omitempty,dive"`
}

// ExamUpdateDTO updates exam metadata. Rejected once any session exists.
type ExamUpdateDTO struct {
	Title        string    `json:"title" binding:"required"`
	Description  string    `json:"description,omitempty"`
	Duration     int       `json:"duration" binding:"required,gt=0"`
	TotalMarks   float64   `json:"total_marks" binding:"required,gt=0"`
	PassingMarks float64   `json:"passing_marks" binding:"gte=0"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	EndTime      time.Time `json:"end_time" binding:"required"`
}

// SessionStartDTO starts (or resumes) a student's attempt at an exam.
type SessionStartDTO struct {
	StudentID string `json:"student_id" binding:"required"`
}

// AnswerSubmitDTO is one answer within a bulk submission.
type AnswerSubmitDTO struct {
	QuestionID       uuid.UUID       `json:"question_id" binding:"required"`
	SelectedOptions  []string        `json:"selected_options,omitempty"`
	TextAnswer       string          `json:"text_answer,omitempty"`
	StructuredAnswer json.RawMessage `json:"structured_answer,omitempty"`
}

// ExamSubmitDTO is the all-or-nothing answer set for a session.
type ExamSubmitDTO struct {
	StudentID string            `json:"student_id" binding:"required"`
	Answers   []AnswerSubmitDTO `json:"answers" binding:"required,min=1,dive"`
}

// GradeAnswerDTO is the instructor's manual grade for a single answer.
type GradeAnswerDTO struct {
	InstructorID string  `json:"instructor_id" binding:"required"`
	IsCorrect    *bool   `json:"is_correct,omitempty"`
	MarksAwarded float64 `json:"marks_awarded" binding:"gte=0"`
	Feedback     string  `json:"feedback,omitempty"`
}
