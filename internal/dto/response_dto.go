package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// QuestionStudentDTO is the redacted question view: correct options, the
// correct-answer payload and the explanation never appear here, whatever the
// session status.
type QuestionStudentDTO struct {
	ID            uuid.UUID       `json:"id"`
	ExamID        uuid.UUID       `json:"exam_id"`
	Type          string          `json:"type"`
	Text          string          `json:"text"`
	Marks         float64         `json:"marks"`
	Options       json.RawMessage `json:"options,omitempty"`
	CaseSensitive bool            `json:"case_sensitive"`
	PartialCredit bool            `json:"partial_credit"`
}

// QuestionInstructorDTO is the full question view including grading keys.
type QuestionInstructorDTO struct {
	ID             uuid.UUID       `json:"id"`
	ExamID         uuid.UUID       `json:"exam_id"`
	Type           string          `json:"type"`
	Text           string          `json:"text"`
	Marks          float64         `json:"marks"`
	Options        json.RawMessage `json:"options,omitempty"`
	CorrectOptions []string        `json:"correct_options,omitempty"`
	CorrectAnswer  json.RawMessage `json:"correct_answer,omitempty"`
	Explanation    string          `json:"explanation,omitempty"`
	CaseSensitive  bool            `json:"case_sensitive"`
	PartialCredit  bool            `json:"partial_credit"`
}

// ExamResponseDTO is the instructor-facing exam with full questions.
type ExamResponseDTO struct {
	ID           uuid.UUID               `json:"id"`
	Title        string                  `json:"title"`
	Description  string                  `json:"description,omitempty"`
	CourseID     string                  `json:"course_id"`
	Duration     int                     `json:"duration"`
	TotalMarks   float64                 `json:"total_marks"`
	PassingMarks float64                 `json:"passing_marks"`
	StartTime    time.Time               `json:"start_time"`
	EndTime      time.Time               `json:"end_time"`
	Questions    []QuestionInstructorDTO `json:"questions,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
}

// ExamSummaryDTO lists an exam with its question and session counts.
type ExamSummaryDTO struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	CourseID      string    `json:"course_id"`
	Duration      int       `json:"duration"`
	TotalMarks    float64   `json:"total_marks"`
	PassingMarks  float64   `json:"passing_marks"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	QuestionCount int64     `json:"question_count"`
	SessionCount  int64     `json:"session_count"`
}

// SessionResponseDTO is the student-facing session view. Questions are
// redacted; score fields stay null while manual grading is pending.
type SessionResponseDTO struct {
	ID                 uuid.UUID            `json:"id"`
	ExamID             uuid.UUID            `json:"exam_id"`
	StudentID          string               `json:"student_id"`
	AttemptNumber      int                  `json:"attempt_number"`
	Status             string               `json:"status"`
	ScheduledStartTime time.Time            `json:"scheduled_start_time"`
	ScheduledEndTime   time.Time            `json:"scheduled_end_time"`
	ActualStartTime    time.Time            `json:"actual_start_time"`
	ActualEndTime      *time.Time           `json:"actual_end_time,omitempty"`
	TotalScore         *float64             `json:"total_score,omitempty"`
	Percentage         *float64             `json:"percentage,omitempty"`
	IsPassed           *bool                `json:"is_passed,omitempty"`
	IsGraded           bool                 `json:"is_graded"`
	Questions          []QuestionStudentDTO `json:"questions,omitempty"`
}

// SessionSummaryDTO lists one of a student's sessions across exams.
type SessionSummaryDTO struct {
	ID                 uuid.UUID  `json:"id"`
	ExamID             uuid.UUID  `json:"exam_id"`
	ExamTitle          string     `json:"exam_title,omitempty"`
	AttemptNumber      int        `json:"attempt_number"`
	Status             string     `json:"status"`
	ScheduledStartTime time.Time  `json:"scheduled_start_time"`
	ScheduledEndTime   time.Time  `json:"scheduled_end_time"`
	ActualStartTime    time.Time  `json:"actual_start_time"`
	ActualEndTime      *time.Time `json:"actual_end_time,omitempty"`
	TotalScore         *float64   `json:"total_score,omitempty"`
	Percentage         *float64   `json:"percentage,omitempty"`
	IsPassed           *bool      `json:"is_passed,omitempty"`
}

// AnswerResponseDTO is an answer with its grading outcome.
type AnswerResponseDTO struct {
	ID               uuid.UUID       `json:"id"`
	ExamSessionID    uuid.UUID       `json:"exam_session_id"`
	QuestionID       uuid.UUID       `json:"question_id"`
	SelectedOptions  []string        `json:"selected_options,omitempty"`
	TextAnswer       string          `json:"text_answer,omitempty"`
	StructuredAnswer json.RawMessage `json:"structured_answer,omitempty"`
	IsCorrect        *bool           `json:"is_correct,omitempty"`
	MarksAwarded     float64         `json:"marks_awarded"`
	GradedAt         *time.Time      `json:"graded_at,omitempty"`
	GradedBy         string          `json:"graded_by,omitempty"`
	Feedback         string          `json:"feedback,omitempty"`
}

// SubmissionDTO is the instructor view of one session with full answers.
type SubmissionDTO struct {
	ID              uuid.UUID           `json:"id"`
	ExamID          uuid.UUID           `json:"exam_id"`
	StudentID       string              `json:"student_id"`
	AttemptNumber   int                 `json:"attempt_number"`
	Status          string              `json:"status"`
	ActualStartTime time.Time           `json:"actual_start_time"`
	ActualEndTime   *time.Time          `json:"actual_end_time,omitempty"`
	TotalScore      *float64            `json:"total_score,omitempty"`
	Percentage      *float64            `json:"percentage,omitempty"`
	IsPassed        *bool               `json:"is_passed,omitempty"`
	IsGraded        bool                `json:"is_graded"`
	Answers         []AnswerResponseDTO `json:"answers,omitempty"`
}

// SubmitResultDTO acknowledges a successful bulk submission.
type SubmitResultDTO struct {
	Success     bool      `json:"success"`
	Message     string    `json:"message"`
	SessionID   uuid.UUID `json:"session_id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// SeedResultDTO summarizes the fixture load.
type SeedResultDTO struct {
	Message string            `json:"message"`
	Exams   []SeedExamSummary `json:"exams"`
}

type SeedExamSummary struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	QuestionCount int       `json:"question_count"`
}
